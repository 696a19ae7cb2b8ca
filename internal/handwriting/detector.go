// Package handwriting locates handwritten regions inside normalized page
// images and recognizes them through the shared OCR pool.
package handwriting

import (
	"context"
	"image"
	"log/slog"

	"github.com/rootuip/docintel/internal/core/domain"
	"github.com/rootuip/docintel/internal/core/ports"
	"github.com/rootuip/docintel/internal/ocr"
	"github.com/rootuip/docintel/internal/preprocess"
)

const (
	// candidate boxes below this size are discarded before scoring
	minRegionWidth  = 50
	minRegionHeight = 20

	// model score required to treat a region as handwritten
	scoreThreshold = 0.7

	// handwriting recognition runs with a restricted character set and the
	// LSTM engine mode
	recognitionWhitelist = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz .,"

	regionTensorSize = 64
)

// Detector implements ports.HandwritingDetector. The stage is optional: it
// runs only when enabled and a handwriting-capable model is configured.
type Detector struct {
	model     ports.HandwritingModel
	pool      *ocr.Pool
	languages []string
	enabled   bool
	logger    *slog.Logger
}

func New(model ports.HandwritingModel, pool *ocr.Pool, languages []string, enabled bool, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		model:     model,
		pool:      pool,
		languages: languages,
		enabled:   enabled,
		logger:    logger,
	}
}

// Detect finds candidate regions by contour extraction over the inverted
// binary image, keeps those the model scores as handwritten, and recognizes
// each independently. A failed region never aborts the others.
func (d *Detector) Detect(ctx context.Context, img *image.Gray) ([]domain.HandwritingRegion, bool) {
	if !d.enabled || d.model == nil || !d.model.Available() || d.pool == nil || img == nil {
		return nil, false
	}

	var regions []domain.HandwritingRegion
	for _, rect := range contourBoxes(img) {
		if rect.Dx() <= minRegionWidth || rect.Dy() <= minRegionHeight {
			continue
		}
		roi, ok := img.SubImage(rect).(*image.Gray)
		if !ok {
			continue
		}

		score, err := d.model.Score(ctx, preprocess.Tensor(roi, regionTensorSize))
		if err != nil {
			d.logger.Warn("handwriting scoring failed for region", "bounds", rect, "error", err)
			continue
		}
		if score < scoreThreshold {
			continue
		}

		text, err := d.pool.Submit(ctx, roi, ocr.RecognizeOptions{
			Languages: d.languages,
			Whitelist: recognitionWhitelist,
			LSTMOnly:  true,
		})
		if err != nil {
			d.logger.Warn("handwriting recognition failed for region", "bounds", rect, "error", err)
		}

		regions = append(regions, domain.HandwritingRegion{
			Bounds: domain.BoundingBox{
				X:      rect.Min.X,
				Y:      rect.Min.Y,
				Width:  rect.Dx(),
				Height: rect.Dy(),
			},
			Text:       text,
			Confidence: score,
		})
	}
	return regions, len(regions) > 0
}

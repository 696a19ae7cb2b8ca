// Package usecase implements the document pipeline: read, preprocess,
// classify, extract, detect handwriting, decide workflow actions.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rootuip/docintel/internal/core/domain"
	"github.com/rootuip/docintel/internal/core/ports"
)

const defaultBatchSize = 10

// Pipeline orchestrates the processing stages. Recognizer may be nil when OCR
// is disabled; every other dependency is required.
type Pipeline struct {
	reader      ports.DocumentReader
	pre         ports.Preprocessor
	classifier  ports.Classifier
	extractor   ports.FieldExtractor
	handwriting ports.HandwritingDetector
	rules       ports.RuleEngine
	recognizer  ports.TextRecognizer
	stats       *Stats
	logger      *slog.Logger
	batchSize   int
}

func NewPipeline(
	reader ports.DocumentReader,
	pre ports.Preprocessor,
	classifier ports.Classifier,
	extractor ports.FieldExtractor,
	handwriting ports.HandwritingDetector,
	rules ports.RuleEngine,
	recognizer ports.TextRecognizer,
	batchSize int,
	logger *slog.Logger,
) *Pipeline {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Pipeline{
		reader:      reader,
		pre:         pre,
		classifier:  classifier,
		extractor:   extractor,
		handwriting: handwriting,
		rules:       rules,
		recognizer:  recognizer,
		stats:       &Stats{},
		logger:      logger,
		batchSize:   batchSize,
	}
}

// Stats returns a snapshot of the lifetime counters.
func (p *Pipeline) Stats() StatsSnapshot { return p.stats.Snapshot() }

// ProcessOne runs the full pipeline for a single document. It never returns
// an error: failures are captured in the result so batch runs keep going.
func (p *Pipeline) ProcessOne(ctx context.Context, path string) (result domain.ProcessingResult) {
	start := time.Now()
	id := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline stage panicked", "path", path, "panic", r)
			result = p.failure(id, path, start, fmt.Errorf("internal error: %v", r))
		}
	}()
	defer func() {
		p.stats.processed.Add(1)
		if !result.Success {
			p.stats.errors.Add(1)
		}
	}()

	raw, err := p.reader.Read(path)
	if err != nil {
		p.logger.Warn("document read failed", "path", path, "error", err)
		return p.failure(id, path, start, err)
	}

	pre := p.pre.Prepare(raw)

	cls := p.classifier.Classify(ctx, pre)
	if cls.TypeID != domain.TypeUnknown {
		p.stats.classified.Add(1)
	}

	// OCR text feeds extraction only; classification already ran on the
	// document as read.
	extractText := pre.CleanedText
	if extractText == "" && raw.Image != nil && p.recognizer != nil {
		text, err := p.recognizer.Recognize(ctx, raw.Image)
		if err != nil {
			p.logger.Warn("ocr fallback failed", "path", path, "error", err)
		} else {
			extractText = p.pre.CleanText(text)
		}
	}

	ext := p.extractor.Extract(ctx, extractText, cls.TypeID)
	if len(ext.Fields) > 0 {
		p.stats.extracted.Add(1)
	}

	var hw *domain.HandwritingResult
	if p.handwriting != nil && pre.NormalizedImage != nil {
		regions, detected := p.handwriting.Detect(ctx, pre.NormalizedImage)
		hw = &domain.HandwritingResult{Detected: detected, Regions: regions}
	}

	actions := p.rules.Decide(cls, ext)

	p.logger.Info("document processed",
		"path", path,
		"type", cls.TypeID,
		"confidence", cls.Confidence,
		"fields", len(ext.Fields),
		"actions", len(actions),
	)

	return domain.ProcessingResult{
		ID:               id,
		Success:          true,
		DocumentPath:     path,
		Classification:   &cls,
		Extraction:       &ext,
		Handwriting:      hw,
		Workflow:         actions,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Metadata: &domain.Metadata{
			Pages:  raw.PageCount,
			Size:   raw.ByteSize,
			Format: raw.Format,
		},
	}
}

func (p *Pipeline) failure(id, path string, start time.Time, err error) domain.ProcessingResult {
	return domain.ProcessingResult{
		ID:               id,
		DocumentPath:     path,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Error:            err.Error(),
	}
}

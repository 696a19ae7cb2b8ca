package ports

import (
	"context"
	"image"

	"github.com/rootuip/docintel/internal/core/domain"
)

// DocumentReader normalizes a file into a RawDocument, dispatching on its
// extension.
type DocumentReader interface {
	Read(path string) (domain.RawDocument, error)
}

// Preprocessor cleans text and normalizes images ahead of analysis. It is
// deterministic and never invokes OCR.
type Preprocessor interface {
	Prepare(raw domain.RawDocument) domain.PreprocessedDocument
	CleanText(text string) string
}

// Classifier determines the document type.
type Classifier interface {
	Classify(ctx context.Context, pre domain.PreprocessedDocument) domain.Classification
}

// FieldExtractor produces the field map for a classified document.
type FieldExtractor interface {
	Extract(ctx context.Context, text string, typeID string) domain.ExtractionResult
}

// HandwritingDetector locates and recognizes handwritten regions.
type HandwritingDetector interface {
	Detect(ctx context.Context, img *image.Gray) ([]domain.HandwritingRegion, bool)
}

// RuleEngine maps classification and extraction to workflow actions. Pure.
type RuleEngine interface {
	Decide(cls domain.Classification, ext domain.ExtractionResult) []domain.WorkflowAction
}

// TextRecognizer converts a normalized image into text, blocking until a
// recognition worker accepts the job.
type TextRecognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// ClassificationModel is the optional trained classifier backend. Call sites
// branch on Available instead of nil-checking.
type ClassificationModel interface {
	Available() bool
	Predict(ctx context.Context, input domain.ImageTensor) ([]float64, error)
}

// ExtractionModel is the optional trained field extraction backend.
type ExtractionModel interface {
	Available() bool
	ExtractFields(ctx context.Context, text string, typeID string) (map[domain.FieldName]string, error)
}

// HandwritingModel scores a region as handwritten versus printed.
type HandwritingModel interface {
	Available() bool
	Score(ctx context.Context, region domain.ImageTensor) (float64, error)
}

// DocumentQueue delivers document paths to the worker and publishes results
// back to the surrounding business-process layer.
type DocumentQueue interface {
	SubscribeDocuments(ctx context.Context, handler func(context.Context, string) error) error
	PublishResult(ctx context.Context, result domain.ProcessingResult) error
}

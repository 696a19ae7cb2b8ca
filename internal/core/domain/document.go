package domain

import "image"

// Format identifies which reader produced a RawDocument.
type Format string

const (
	FormatImage       Format = "image"
	FormatPDF         Format = "pdf"
	FormatWord        Format = "word"
	FormatSpreadsheet Format = "spreadsheet"
	FormatText        Format = "text"
)

// FieldName names an extractable field of a document type.
type FieldName string

// TypeUnknown is returned by classification when no signal exists at all.
const TypeUnknown = "unknown"

// RawDocument is the normalized output of a format reader. At least one of
// Text or Image is set.
type RawDocument struct {
	Format    Format
	Text      string
	Image     image.Image
	PageCount int
	ByteSize  int64
}

// PreprocessedDocument holds the cleaned inputs the analysis stages consume.
// CleanedText keeps the original casing; Tokens are lowercased.
type PreprocessedDocument struct {
	CleanedText     string
	Tokens          []string
	NormalizedImage *image.Gray
}

// TypeScore is a document type candidate with its probability.
type TypeScore struct {
	TypeID     string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// Classification assigns a document to a type. Alternatives hold the next
// candidates by probability, best excluded, at most three.
type Classification struct {
	TypeID       string      `json:"type"`
	Confidence   float64     `json:"confidence"`
	Alternatives []TypeScore `json:"alternatives,omitempty"`
}

// ExtractionResult maps field names to extracted values. Confidence is the
// completeness ratio: found fields over fields expected for the type.
type ExtractionResult struct {
	Fields     map[FieldName]string `json:"fields"`
	Confidence float64              `json:"confidence"`
}

// BoundingBox locates a region inside a page image, in pixels.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// HandwritingRegion is one recognized handwritten area.
type HandwritingRegion struct {
	Bounds     BoundingBox `json:"bounds"`
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence"`
}

// HandwritingResult aggregates all handwritten regions found on a document.
type HandwritingResult struct {
	Detected bool                `json:"detected"`
	Regions  []HandwritingRegion `json:"regions"`
}

// WorkflowAction is a downstream instruction decided by the rule engine.
// The pipeline never executes actions itself.
type WorkflowAction struct {
	Action   string            `json:"action"`
	Data     map[string]string `json:"data,omitempty"`
	Priority string            `json:"priority,omitempty"`
	Reason   string            `json:"reason,omitempty"`
	Fields   []FieldName       `json:"fields,omitempty"`
}

// Metadata carries document facts that survive a successful run.
type Metadata struct {
	Pages  int    `json:"pages"`
	Size   int64  `json:"size"`
	Format Format `json:"format"`
}

// ProcessingResult is the terminal artifact returned per document.
type ProcessingResult struct {
	ID               string             `json:"id"`
	Success          bool               `json:"success"`
	DocumentPath     string             `json:"documentPath"`
	Classification   *Classification    `json:"classification,omitempty"`
	Extraction       *ExtractionResult  `json:"extraction,omitempty"`
	Handwriting      *HandwritingResult `json:"handwriting,omitempty"`
	Workflow         []WorkflowAction   `json:"workflow,omitempty"`
	ProcessingTimeMs int64              `json:"processingTimeMs"`
	Metadata         *Metadata          `json:"metadata,omitempty"`
	Error            string             `json:"error,omitempty"`
}

// ActionableDocument links a document to the workflow actions it produced.
type ActionableDocument struct {
	DocumentPath string           `json:"document"`
	Actions      []WorkflowAction `json:"actions"`
}

// BatchSummary aggregates a ProcessMany run. AvgProcessingMs is computed over
// successful documents only.
type BatchSummary struct {
	Total           int                  `json:"total"`
	Successful      int                  `json:"successful"`
	Failed          int                  `json:"failed"`
	ByType          map[string]int       `json:"byType"`
	AvgProcessingMs float64              `json:"avgProcessingTimeMs"`
	RequiresAction  []ActionableDocument `json:"requiresAction,omitempty"`
}

// Progress is reported after each completed batch window.
type Progress struct {
	Processed  int     `json:"processed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// ImageTensor is the flattened grayscale input handed to model backends.
// Pixels are row-major values in [0,1].
type ImageTensor struct {
	Width  int
	Height int
	Pixels []float64
}

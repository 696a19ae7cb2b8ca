// Package preprocess cleans document text and normalizes page images before
// classification, extraction, and OCR.
package preprocess

import (
	"github.com/rootuip/docintel/internal/core/domain"
)

// Preprocessor implements ports.Preprocessor.
type Preprocessor struct{}

func New() *Preprocessor { return &Preprocessor{} }

// Prepare cleans the text path and normalizes the image path of a raw
// document. Either side may be absent.
func (p *Preprocessor) Prepare(raw domain.RawDocument) domain.PreprocessedDocument {
	pre := domain.PreprocessedDocument{}
	if raw.Text != "" {
		pre.CleanedText = CleanText(raw.Text)
		pre.Tokens = Tokenize(pre.CleanedText)
	}
	if raw.Image != nil {
		pre.NormalizedImage = Normalize(raw.Image)
	}
	return pre
}

// CleanText exposes the text normalization for the orchestrator, which needs
// to clean OCR output the same way reader text is cleaned.
func (p *Preprocessor) CleanText(text string) string { return CleanText(text) }

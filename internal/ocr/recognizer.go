package ocr

import (
	"context"
	"image"
)

// Recognizer binds the pool to the configured language set. It is the
// ports.TextRecognizer the orchestrator uses when a document arrives with an
// image but no text.
type Recognizer struct {
	pool      *Pool
	languages []string
}

func NewRecognizer(pool *Pool, languages []string) *Recognizer {
	return &Recognizer{pool: pool, languages: languages}
}

func (r *Recognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	return r.pool.Submit(ctx, img, RecognizeOptions{Languages: r.languages})
}

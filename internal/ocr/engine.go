// Package ocr provides the recognition engine abstraction and the fixed-size
// worker pool shared by the text and handwriting stages.
package ocr

import (
	"context"
	"image"
)

// RecognizeOptions tune a single recognition call.
type RecognizeOptions struct {
	// Languages passed to the engine, e.g. ["eng", "spa"].
	Languages []string
	// Whitelist restricts recognition to the given characters when non-empty.
	Whitelist string
	// LSTMOnly selects the neural recognition mode, used for handwriting.
	LSTMOnly bool
}

// Engine converts an image region into text.
type Engine interface {
	Recognize(ctx context.Context, img image.Image, opts RecognizeOptions) (string, error)
}

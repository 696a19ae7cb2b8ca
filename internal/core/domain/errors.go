package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat covers unrecognized extensions and corrupt payloads.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrReadFailure covers I/O errors while reading a document.
	ErrReadFailure = errors.New("read failure")
	// ErrOCRFailure covers recognition worker errors and submission timeouts.
	ErrOCRFailure = errors.New("ocr failure")
	// ErrModelUnavailable marks inference backend failures. It degrades the
	// calling stage to its fallback and never fails a document on its own.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrTemporary marks transient infrastructure failures worth retrying.
	ErrTemporary = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

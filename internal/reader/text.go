package reader

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rootuip/docintel/internal/core/domain"
)

// readText is the fallback for unrecognized extensions: treat the payload as
// plain text. Binary content is refused rather than half-read.
func (r *Reader) readText(path string, size int64) (domain.RawDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrReadFailure, "read text file", err)
	}
	if !utf8.Valid(raw) {
		return domain.RawDocument{}, domain.WrapError(domain.ErrUnsupportedFormat, "read text file", fmt.Errorf("binary content in %s", path))
	}

	return domain.RawDocument{
		Format:    domain.FormatText,
		Text:      strings.TrimSpace(string(raw)),
		PageCount: 1,
		ByteSize:  size,
	}, nil
}

package reader

import (
	"bytes"

	"github.com/ledongthuc/pdf"

	"github.com/rootuip/docintel/internal/core/domain"
)

// readPDF extracts the embedded text layer synchronously.
func (r *Reader) readPDF(path string, size int64) (domain.RawDocument, error) {
	f, doc, err := pdf.Open(path)
	if err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrUnsupportedFormat, "open pdf", err)
	}
	defer f.Close()

	plain, err := doc.GetPlainText()
	if err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrUnsupportedFormat, "extract pdf text", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrReadFailure, "read pdf text", err)
	}

	return domain.RawDocument{
		Format:    domain.FormatPDF,
		Text:      buf.String(),
		PageCount: doc.NumPage(),
		ByteSize:  size,
	}, nil
}

// Package reader normalizes heterogeneous input files into RawDocuments.
// One reader per format; dispatch is a closed extension table.
package reader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rootuip/docintel/internal/core/domain"
)

type readFunc func(path string, size int64) (domain.RawDocument, error)

// Reader implements ports.DocumentReader.
type Reader struct {
	logger   *slog.Logger
	byExt    map[string]readFunc
	fallback readFunc
}

func New(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Reader{logger: logger}
	r.byExt = map[string]readFunc{
		"pdf":  r.readPDF,
		"doc":  r.readWord,
		"docx": r.readWord,
		"xls":  r.readSpreadsheet,
		"xlsx": r.readSpreadsheet,
		"jpg":  r.readImage,
		"jpeg": r.readImage,
		"png":  r.readImage,
		"tiff": r.readImage,
		"tif":  r.readImage,
	}
	r.fallback = r.readText
	return r
}

// Read stats the file, dispatches on its extension, and returns a normalized
// document. Unreadable or corrupt files yield an error, never partial output.
func (r *Reader) Read(path string) (domain.RawDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrReadFailure, "stat document", err)
	}
	if info.IsDir() {
		return domain.RawDocument{}, domain.WrapError(domain.ErrReadFailure, "stat document", fmt.Errorf("%s is a directory", path))
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	read, ok := r.byExt[ext]
	if !ok {
		read = r.fallback
	}

	doc, err := read(path, info.Size())
	if err != nil {
		return domain.RawDocument{}, err
	}
	if doc.Text == "" && doc.Image == nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrUnsupportedFormat, "read document", fmt.Errorf("no text or image content in %s", path))
	}
	r.logger.Debug("document read", "path", path, "format", doc.Format, "pages", doc.PageCount, "bytes", doc.ByteSize)
	return doc, nil
}

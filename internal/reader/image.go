package reader

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/tiff"

	"github.com/rootuip/docintel/internal/core/domain"
)

// readImage decodes a scanned page into an in-memory bitmap. Text stays
// empty; recognition happens later through the OCR pool.
func (r *Reader) readImage(path string, size int64) (domain.RawDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrReadFailure, "open image", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrUnsupportedFormat, "decode image", err)
	}

	return domain.RawDocument{
		Format:    domain.FormatImage,
		Image:     img,
		PageCount: 1,
		ByteSize:  size,
	}, nil
}

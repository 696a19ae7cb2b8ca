package reader

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/rootuip/docintel/internal/core/domain"
)

// readWord extracts text from an OOXML word-processed document. The payload
// is a zip archive carrying word/document.xml; legacy binary .doc files are
// not a zip and are reported as unsupported.
func (r *Reader) readWord(path string, size int64) (domain.RawDocument, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrUnsupportedFormat, "open word document", err)
	}
	defer archive.Close()

	var docEntry *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docEntry = f
			break
		}
	}
	if docEntry == nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrUnsupportedFormat, "open word document", fmt.Errorf("word/document.xml missing in %s", path))
	}

	rc, err := docEntry.Open()
	if err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrReadFailure, "open document part", err)
	}
	defer rc.Close()

	text, err := wordText(rc)
	if err != nil {
		return domain.RawDocument{}, domain.WrapError(domain.ErrUnsupportedFormat, "parse word document", err)
	}

	return domain.RawDocument{
		Format:    domain.FormatWord,
		Text:      text,
		PageCount: 1,
		ByteSize:  size,
	}, nil
}

// wordText walks the WordprocessingML token stream collecting run text and
// inserting a line break at each paragraph end.
func wordText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}

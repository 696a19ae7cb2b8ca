package reader

import (
	"archive/zip"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rootuip/docintel/internal/core/domain"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadPlainTextFallback(t *testing.T) {
	path := writeFile(t, "manifest.txt", []byte("PACKING LIST\nPackages: 12\n"))
	r := New(nil)

	doc, err := r.Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if doc.Format != domain.FormatText {
		t.Fatalf("format = %q", doc.Format)
	}
	if !strings.Contains(doc.Text, "PACKING LIST") {
		t.Fatalf("text = %q", doc.Text)
	}
	if doc.PageCount != 1 || doc.ByteSize == 0 {
		t.Fatalf("unexpected metadata %+v", doc)
	}
}

func TestReadUnknownExtensionUsesFallback(t *testing.T) {
	path := writeFile(t, "notes.md", []byte("bill of lading draft"))
	r := New(nil)

	doc, err := r.Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if doc.Format != domain.FormatText {
		t.Fatalf("format = %q", doc.Format)
	}
}

func TestReadMissingFile(t *testing.T) {
	r := New(nil)
	_, err := r.Read(filepath.Join(t.TempDir(), "absent.pdf"))
	if !domain.IsKind(err, domain.ErrReadFailure) {
		t.Fatalf("expected read failure, got %v", err)
	}
}

func TestReadDirectory(t *testing.T) {
	r := New(nil)
	_, err := r.Read(t.TempDir())
	if !domain.IsKind(err, domain.ErrReadFailure) {
		t.Fatalf("expected read failure, got %v", err)
	}
}

func TestReadBinaryContentRejected(t *testing.T) {
	path := writeFile(t, "blob.dat", []byte{0x00, 0xff, 0xfe, 0x01, 0x80})
	r := New(nil)

	_, err := r.Read(path)
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}

func TestReadEmptyFileRejected(t *testing.T) {
	path := writeFile(t, "empty.txt", nil)
	r := New(nil)

	_, err := r.Read(path)
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format for contentless file, got %v", err)
	}
}

func TestReadPNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 12, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			img.SetGray(x, y, color.Gray{Y: 200})
		}
	}
	path := filepath.Join(t.TempDir(), "scan.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	doc, err := New(nil).Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if doc.Format != domain.FormatImage {
		t.Fatalf("format = %q", doc.Format)
	}
	if doc.Image == nil || doc.Image.Bounds().Dx() != 12 {
		t.Fatalf("unexpected image %v", doc.Image)
	}
	if doc.Text != "" {
		t.Fatalf("image documents carry no text, got %q", doc.Text)
	}
}

func TestReadCorruptImage(t *testing.T) {
	path := writeFile(t, "broken.png", []byte("not a png at all"))
	_, err := New(nil).Read(path)
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}

func TestReadWordDocument(t *testing.T) {
	const documentXML = `<?xml version="1.0"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` +
		`<w:p><w:r><w:t>BILL OF LADING</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Shipper: </w:t></w:r><w:r><w:t>Acme Corp</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	path := filepath.Join(t.TempDir(), "bl.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	entry, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip entry: %v", err)
	}
	if _, err := entry.Write([]byte(documentXML)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	f.Close()

	doc, err := New(nil).Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if doc.Format != domain.FormatWord {
		t.Fatalf("format = %q", doc.Format)
	}
	want := "BILL OF LADING\nShipper: Acme Corp"
	if doc.Text != want {
		t.Fatalf("text = %q, want %q", doc.Text, want)
	}
}

func TestReadLegacyDocRejected(t *testing.T) {
	path := writeFile(t, "old.doc", []byte("\xd0\xcf\x11\xe0 legacy compound file"))
	_, err := New(nil).Read(path)
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}

func TestReadSpreadsheet(t *testing.T) {
	wb := excelize.NewFile()
	if err := wb.SetCellValue("Sheet1", "A1", "Invoice No"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := wb.SetCellValue("Sheet1", "B1", "INV-2024-001"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	path := filepath.Join(t.TempDir(), "invoice.xlsx")
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	wb.Close()

	doc, err := New(nil).Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if doc.Format != domain.FormatSpreadsheet {
		t.Fatalf("format = %q", doc.Format)
	}
	if doc.PageCount != 1 {
		t.Fatalf("pages = %d", doc.PageCount)
	}
	if !strings.Contains(doc.Text, "INV-2024-001") {
		t.Fatalf("serialized sheet missing cell value: %q", doc.Text)
	}
}

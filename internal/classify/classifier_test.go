package classify

import (
	"context"
	"fmt"
	"image"
	"testing"

	"github.com/rootuip/docintel/internal/catalog"
	"github.com/rootuip/docintel/internal/core/domain"
	"github.com/rootuip/docintel/internal/preprocess"
)

type fakeModel struct {
	available bool
	probs     []float64
	err       error
	calls     int
}

func (f *fakeModel) Available() bool { return f.available }

func (f *fakeModel) Predict(context.Context, domain.ImageTensor) ([]float64, error) {
	f.calls++
	return f.probs, f.err
}

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func preFromText(text string) domain.PreprocessedDocument {
	cleaned := preprocess.CleanText(text)
	return domain.PreprocessedDocument{
		CleanedText: cleaned,
		Tokens:      preprocess.Tokenize(cleaned),
	}
}

func TestClassifyBillOfLadingByKeywords(t *testing.T) {
	c := New(loadCatalog(t), nil, nil)

	cls := c.Classify(context.Background(), preFromText(
		"BILL OF LADING\nShipper: Acme Corp\nConsignee: Globex Inc\nVessel: EVER GIVEN\nPort of Loading: Shanghai"))
	if cls.TypeID != "bill_of_lading" {
		t.Fatalf("expected bill_of_lading, got %q", cls.TypeID)
	}
	if cls.Confidence <= 0 || cls.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", cls.Confidence)
	}
	if len(cls.Alternatives) == 0 || len(cls.Alternatives) > 3 {
		t.Fatalf("unexpected alternative count %d", len(cls.Alternatives))
	}
	for _, alt := range cls.Alternatives {
		if alt.TypeID == cls.TypeID {
			t.Fatalf("best type repeated in alternatives")
		}
		if alt.Confidence > cls.Confidence {
			t.Fatalf("alternative outranks best: %v > %v", alt.Confidence, cls.Confidence)
		}
	}
}

func TestClassifyDangerousGoods(t *testing.T) {
	c := New(loadCatalog(t), nil, nil)

	cls := c.Classify(context.Background(), preFromText(
		"DANGEROUS GOODS DECLARATION\nUN 1263 Class 3\nIMDG code applies, hazmat handling required"))
	if cls.TypeID != "dangerous_goods" {
		t.Fatalf("expected dangerous_goods, got %q", cls.TypeID)
	}
}

func TestClassifyEmptyDocumentIsUnknown(t *testing.T) {
	c := New(loadCatalog(t), nil, nil)

	cls := c.Classify(context.Background(), domain.PreprocessedDocument{})
	if cls.TypeID != domain.TypeUnknown {
		t.Fatalf("expected unknown, got %q", cls.TypeID)
	}
	if cls.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %v", cls.Confidence)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := New(loadCatalog(t), nil, nil)
	pre := preFromText("packing list packages gross weight dimensions")

	first := c.Classify(context.Background(), pre)
	for i := 0; i < 5; i++ {
		again := c.Classify(context.Background(), pre)
		if again.TypeID != first.TypeID || again.Confidence != first.Confidence {
			t.Fatalf("classification changed between runs: %+v vs %+v", first, again)
		}
	}
}

func TestClassifyPrefersModelWhenImagePresent(t *testing.T) {
	cat := loadCatalog(t)
	ids := cat.TypeIDs()
	probs := make([]float64, len(ids))
	target := -1
	for i, id := range ids {
		probs[i] = 0.01
		if id == "sea_waybill" {
			probs[i] = 0.9
			target = i
		}
	}
	if target < 0 {
		t.Fatalf("sea_waybill missing from catalog")
	}
	model := &fakeModel{available: true, probs: probs}
	c := New(cat, model, nil)

	pre := preFromText("bill of lading shipper consignee")
	pre.NormalizedImage = image.NewGray(image.Rect(0, 0, 8, 8))

	cls := c.Classify(context.Background(), pre)
	if model.calls != 1 {
		t.Fatalf("expected one model call, got %d", model.calls)
	}
	if cls.TypeID != "sea_waybill" {
		t.Fatalf("expected model verdict sea_waybill, got %q", cls.TypeID)
	}
	if cls.Confidence != 0.9 {
		t.Fatalf("expected model confidence 0.9, got %v", cls.Confidence)
	}
}

func TestClassifyFallsBackOnModelError(t *testing.T) {
	model := &fakeModel{available: true, err: fmt.Errorf("backend down")}
	c := New(loadCatalog(t), model, nil)

	pre := preFromText("bill of lading shipper consignee vessel")
	pre.NormalizedImage = image.NewGray(image.Rect(0, 0, 8, 8))

	cls := c.Classify(context.Background(), pre)
	if cls.TypeID != "bill_of_lading" {
		t.Fatalf("expected keyword fallback bill_of_lading, got %q", cls.TypeID)
	}
}

func TestClassifyFallsBackOnVectorSizeMismatch(t *testing.T) {
	model := &fakeModel{available: true, probs: []float64{1}}
	c := New(loadCatalog(t), model, nil)

	pre := preFromText("commercial invoice seller buyer amount")
	pre.NormalizedImage = image.NewGray(image.Rect(0, 0, 8, 8))

	cls := c.Classify(context.Background(), pre)
	if cls.TypeID != "commercial_invoice" {
		t.Fatalf("expected keyword fallback commercial_invoice, got %q", cls.TypeID)
	}
}

func TestClassifySkipsModelWithoutImage(t *testing.T) {
	model := &fakeModel{available: true, probs: []float64{1}}
	c := New(loadCatalog(t), model, nil)

	c.Classify(context.Background(), preFromText("warehouse receipt storage location"))
	if model.calls != 0 {
		t.Fatalf("model must not run without an image, got %d calls", model.calls)
	}
}

package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rootuip/docintel/internal/core/domain"
)

func TestTypeClassifierPredict(t *testing.T) {
	var capturedWidth float64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/classify" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedWidth, _ = payload["width"].(float64)
		_, _ = w.Write([]byte(`{"probabilities":[0.1,0.7,0.2]}`))
	}))
	defer server.Close()

	classifier := NewTypeClassifier(New(server.URL, Options{}))
	if !classifier.Available() {
		t.Fatalf("expected availability with a base url")
	}

	probs, err := classifier.Predict(context.Background(), domain.ImageTensor{Width: 224, Height: 224, Pixels: make([]float64, 4)})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(probs) != 3 || probs[1] != 0.7 {
		t.Fatalf("unexpected probabilities %v", probs)
	}
	if capturedWidth != 224 {
		t.Fatalf("expected tensor width in request, got %v", capturedWidth)
	}
}

func TestFieldModelExtractFields(t *testing.T) {
	var capturedType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/extract" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedType, _ = payload["type"].(string)
		_, _ = w.Write([]byte(`{"fields":{"blNumber":"AB1234567","shipper":"Acme Corp"}}`))
	}))
	defer server.Close()

	model := NewFieldModel(New(server.URL, Options{}))
	fields, err := model.ExtractFields(context.Background(), "BILL OF LADING", "bill_of_lading")
	if err != nil {
		t.Fatalf("ExtractFields() error = %v", err)
	}
	if capturedType != "bill_of_lading" {
		t.Fatalf("expected document type in request, got %q", capturedType)
	}
	if fields["blNumber"] != "AB1234567" || fields["shipper"] != "Acme Corp" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestHandwritingScorerScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/handwriting" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"score":0.83}`))
	}))
	defer server.Close()

	scorer := NewHandwritingScorer(New(server.URL, Options{}))
	score, err := scorer.Score(context.Background(), domain.ImageTensor{Width: 64, Height: 64, Pixels: make([]float64, 8)})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score != 0.83 {
		t.Fatalf("unexpected score %v", score)
	}
}

func TestCallWrapsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusBadGateway)
	}))
	defer server.Close()

	classifier := NewTypeClassifier(New(server.URL, Options{}))
	_, err := classifier.Predict(context.Background(), domain.ImageTensor{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected model unavailable kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestAvailabilityWithoutBaseURL(t *testing.T) {
	client := New("", Options{})
	if NewTypeClassifier(client).Available() {
		t.Fatalf("classifier must be unavailable without a base url")
	}
	if NewFieldModel(client).Available() {
		t.Fatalf("field model must be unavailable without a base url")
	}
	if NewHandwritingScorer(client).Available() {
		t.Fatalf("scorer must be unavailable without a base url")
	}
}

func TestClassifyInferenceErrorClassification(t *testing.T) {
	class := classifyInferenceError(httpStatusError{operation: "classify", status: 503})
	if !class.Retryable || !class.RecordFailure {
		t.Fatalf("5xx must retry and count, got %+v", class)
	}

	class = classifyInferenceError(httpStatusError{operation: "classify", status: 429})
	if !class.Retryable || class.RecordFailure {
		t.Fatalf("429 must retry without counting, got %+v", class)
	}

	class = classifyInferenceError(httpStatusError{operation: "classify", status: 400})
	if class.Retryable {
		t.Fatalf("4xx must not retry, got %+v", class)
	}

	class = classifyInferenceError(context.Canceled)
	if class.Retryable || class.RecordFailure {
		t.Fatalf("cancellation is neither retried nor counted, got %+v", class)
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAX_WORKERS", "")
	t.Setenv("OCR_LANGUAGES", "")
	t.Setenv("OCR_JOB_TIMEOUT", "")
	t.Setenv("CONFIDENCE_THRESHOLD", "")
	t.Setenv("BATCH_SIZE", "")

	cfg := Load()
	if cfg.MaxWorkers != 4 {
		t.Fatalf("expected default max workers 4, got %d", cfg.MaxWorkers)
	}
	if cfg.OCRLanguages != "eng" {
		t.Fatalf("expected default ocr languages eng, got %q", cfg.OCRLanguages)
	}
	if cfg.OCRJobTimeout != 30*time.Second {
		t.Fatalf("expected default ocr job timeout 30s, got %v", cfg.OCRJobTimeout)
	}
	if cfg.ConfidenceThreshold != 0.85 {
		t.Fatalf("expected default confidence threshold 0.85, got %v", cfg.ConfidenceThreshold)
	}
	if cfg.BatchSize != 10 {
		t.Fatalf("expected default batch size 10, got %d", cfg.BatchSize)
	}
	if !cfg.EnableOCR {
		t.Fatalf("expected ocr enabled by default")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("MAX_WORKERS", "8")
	t.Setenv("OCR_LANGUAGES", "eng+deu")
	t.Setenv("OCR_JOB_TIMEOUT", "45s")
	t.Setenv("ENABLE_HANDWRITING", "false")
	t.Setenv("INFERENCE_RATE_LIMIT", "2.5")

	cfg := Load()
	if cfg.MaxWorkers != 8 {
		t.Fatalf("expected max workers 8, got %d", cfg.MaxWorkers)
	}
	if cfg.OCRLanguages != "eng+deu" {
		t.Fatalf("expected ocr languages override, got %q", cfg.OCRLanguages)
	}
	if cfg.OCRJobTimeout != 45*time.Second {
		t.Fatalf("expected ocr job timeout 45s, got %v", cfg.OCRJobTimeout)
	}
	if cfg.EnableHandwriting {
		t.Fatalf("expected handwriting disabled")
	}
	if cfg.InferenceRateLimit != 2.5 {
		t.Fatalf("expected inference rate limit 2.5, got %v", cfg.InferenceRateLimit)
	}
}

func TestLoadFallsBackOnUnparseableValues(t *testing.T) {
	t.Setenv("MAX_WORKERS", "not-a-number")
	t.Setenv("OCR_JOB_TIMEOUT", "soon")
	t.Setenv("ENABLE_OCR", "definitely")

	cfg := Load()
	if cfg.MaxWorkers != 4 {
		t.Fatalf("expected fallback max workers 4, got %d", cfg.MaxWorkers)
	}
	if cfg.OCRJobTimeout != 30*time.Second {
		t.Fatalf("expected fallback ocr job timeout 30s, got %v", cfg.OCRJobTimeout)
	}
	if !cfg.EnableOCR {
		t.Fatalf("expected fallback ocr enabled")
	}
}

package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	LogLevel string

	MaxWorkers int
	BatchSize  int

	EnableOCR     bool
	OCRLanguages  string
	OCRJobTimeout time.Duration
	OCRQueueDepth int

	EnableHandwriting bool

	ConfidenceThreshold       float64
	ExtractionVerifyThreshold float64

	InferenceURL       string
	InferenceRateLimit float64

	NATSURL           string
	NATSSubject       string
	NATSResultSubject string

	WorkerMetricsPort string
}

func Load() Config {
	return Config{
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		MaxWorkers: mustEnvInt("MAX_WORKERS", 4),
		BatchSize:  mustEnvInt("BATCH_SIZE", 10),

		EnableOCR:     mustEnvBool("ENABLE_OCR", true),
		OCRLanguages:  mustEnv("OCR_LANGUAGES", "eng"),
		OCRJobTimeout: mustEnvDuration("OCR_JOB_TIMEOUT", 30*time.Second),
		OCRQueueDepth: mustEnvInt("OCR_QUEUE_DEPTH", 16),

		EnableHandwriting: mustEnvBool("ENABLE_HANDWRITING", true),

		ConfidenceThreshold:       mustEnvFloat("CONFIDENCE_THRESHOLD", 0.85),
		ExtractionVerifyThreshold: mustEnvFloat("EXTRACTION_VERIFY_THRESHOLD", 0.7),

		InferenceURL:       mustEnv("INFERENCE_URL", ""),
		InferenceRateLimit: mustEnvFloat("INFERENCE_RATE_LIMIT", 10),

		NATSURL:           mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject:       mustEnv("NATS_SUBJECT", "documents.process"),
		NATSResultSubject: mustEnv("NATS_RESULT_SUBJECT", "documents.results"),

		WorkerMetricsPort: mustEnv("WORKER_METRICS_PORT", "9090"),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

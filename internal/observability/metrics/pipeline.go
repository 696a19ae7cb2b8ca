package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineMetrics observes document processing on a private registry so the
// worker exposes only its own series.
type PipelineMetrics struct {
	registry *prometheus.Registry

	processTotal    *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	processInFlight prometheus.Gauge
	ocrQueueDepth   prometheus.Gauge
}

func NewPipelineMetrics() *PipelineMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docintel",
			Subsystem: "pipeline",
			Name:      "document_process_total",
			Help:      "Total processed documents by status and document type.",
		},
		[]string{"status", "type"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docintel",
			Subsystem: "pipeline",
			Name:      "document_process_duration_seconds",
			Help:      "Document processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docintel",
			Subsystem: "pipeline",
			Name:      "document_process_in_flight",
			Help:      "Number of documents currently in the pipeline.",
		},
	)
	ocrQueueDepth := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docintel",
			Subsystem: "pipeline",
			Name:      "ocr_queue_depth",
			Help:      "Recognition jobs waiting for an OCR worker.",
		},
	)

	registry.MustRegister(processTotal, processDuration, processInFlight, ocrQueueDepth)

	return &PipelineMetrics{
		registry:        registry,
		processTotal:    processTotal,
		processDuration: processDuration,
		processInFlight: processInFlight,
		ocrQueueDepth:   ocrQueueDepth,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *PipelineMetrics) FinishDocument(docType string, duration time.Duration, success bool) {
	m.processInFlight.Dec()

	status := "success"
	if !success {
		status = "error"
	}

	m.processTotal.WithLabelValues(status, docType).Inc()
	m.processDuration.WithLabelValues(status).Observe(duration.Seconds())
}

func (m *PipelineMetrics) SetOCRQueueDepth(depth int) {
	m.ocrQueueDepth.Set(float64(depth))
}

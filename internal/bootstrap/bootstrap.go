// Package bootstrap assembles the pipeline from configuration. The CLI and
// the queue worker share the same wiring.
package bootstrap

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rootuip/docintel/internal/catalog"
	"github.com/rootuip/docintel/internal/classify"
	"github.com/rootuip/docintel/internal/config"
	"github.com/rootuip/docintel/internal/core/ports"
	"github.com/rootuip/docintel/internal/core/usecase"
	"github.com/rootuip/docintel/internal/extract"
	"github.com/rootuip/docintel/internal/handwriting"
	"github.com/rootuip/docintel/internal/infrastructure/inference"
	"github.com/rootuip/docintel/internal/infrastructure/queue/nats"
	"github.com/rootuip/docintel/internal/infrastructure/resilience"
	"github.com/rootuip/docintel/internal/observability/logging"
	"github.com/rootuip/docintel/internal/observability/metrics"
	"github.com/rootuip/docintel/internal/ocr"
	"github.com/rootuip/docintel/internal/preprocess"
	"github.com/rootuip/docintel/internal/reader"
	"github.com/rootuip/docintel/internal/workflow"
)

type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Pipeline *usecase.Pipeline
	OCRPool  *ocr.Pool

	closeFn func()
}

// New wires the pipeline without any queue attachment.
func New(cfg config.Config, service string) (*App, error) {
	logger := logging.NewJSONLogger(service, cfg.LogLevel)

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Config{Logger: logger})

	var (
		clsModel ports.ClassificationModel
		extModel ports.ExtractionModel
		hwModel  ports.HandwritingModel
	)
	if cfg.InferenceURL != "" {
		client := inference.New(cfg.InferenceURL, inference.Options{
			RequestsPerSecond:  cfg.InferenceRateLimit,
			ResilienceExecutor: executor,
		})
		clsModel = inference.NewTypeClassifier(client)
		extModel = inference.NewFieldModel(client)
		hwModel = inference.NewHandwritingScorer(client)
	}

	var (
		pool       *ocr.Pool
		recognizer ports.TextRecognizer
	)
	languages := strings.Split(cfg.OCRLanguages, "+")
	if cfg.EnableOCR {
		pool = ocr.NewPool(ocr.NewTesseractEngine(), cfg.MaxWorkers, cfg.OCRQueueDepth, cfg.OCRJobTimeout, logging.Named(logger, "ocr"))
		recognizer = ocr.NewRecognizer(pool, languages)
	}

	pipeline := usecase.NewPipeline(
		reader.New(logging.Named(logger, "reader")),
		preprocess.New(),
		classify.New(cat, clsModel, logging.Named(logger, "classify")),
		extract.New(cat, extModel, logging.Named(logger, "extract")),
		handwriting.New(hwModel, pool, languages, cfg.EnableHandwriting, logging.Named(logger, "handwriting")),
		workflow.NewEngine(cat, cfg.ConfidenceThreshold, cfg.ExtractionVerifyThreshold),
		recognizer,
		cfg.BatchSize,
		logging.Named(logger, "pipeline"),
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Pipeline: pipeline,
		OCRPool:  pool,
		closeFn: func() {
			if pool != nil {
				pool.Shutdown()
			}
		},
	}, nil
}

// Worker extends App with the queue and metrics the long-running worker needs.
type Worker struct {
	*App
	Queue   *nats.Queue
	Metrics *metrics.PipelineMetrics
}

func NewWorker(cfg config.Config) (*Worker, error) {
	app, err := New(cfg, "docintel-worker")
	if err != nil {
		return nil, err
	}

	executor := resilience.NewExecutor(resilience.Config{Logger: app.Logger})
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, cfg.NATSResultSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	return &Worker{
		App:     app,
		Queue:   queue,
		Metrics: metrics.NewPipelineMetrics(),
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func (w *Worker) Close() {
	if w.Queue != nil {
		w.Queue.Close()
	}
	w.App.Close()
}

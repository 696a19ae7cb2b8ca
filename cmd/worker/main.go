package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rootuip/docintel/internal/bootstrap"
	"github.com/rootuip/docintel/internal/config"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker, err := bootstrap.NewWorker(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer worker.Close()

	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: worker.Metrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	log.Printf("worker subscribed to %s", cfg.NATSSubject)
	err = worker.Queue.SubscribeDocuments(ctx, func(handlerCtx context.Context, path string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		worker.Metrics.StartDocument()
		start := time.Now()
		result := worker.Pipeline.ProcessOne(processCtx, path)

		docType := "unknown"
		if result.Classification != nil {
			docType = result.Classification.TypeID
		}
		worker.Metrics.FinishDocument(docType, time.Since(start), result.Success)
		if worker.OCRPool != nil {
			worker.Metrics.SetOCRQueueDepth(worker.OCRPool.QueueDepth())
		}

		return worker.Queue.PublishResult(processCtx, result)
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}

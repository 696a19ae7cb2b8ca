// Command docproc processes documents given as arguments and prints one JSON
// result per line, followed by the batch summary.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rootuip/docintel/internal/bootstrap"
	"github.com/rootuip/docintel/internal/config"
	"github.com/rootuip/docintel/internal/core/domain"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <document> [document ...]\n", os.Args[0])
		os.Exit(2)
	}
	paths := os.Args[1:]

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg, "docproc")
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	enc := json.NewEncoder(os.Stdout)
	results, summary := app.Pipeline.ProcessMany(ctx, paths, func(p domain.Progress) {
		fmt.Fprintf(os.Stderr, "processed %d/%d (%.0f%%)\n", p.Processed, p.Total, p.Percentage)
	})
	for _, result := range results {
		if err := enc.Encode(result); err != nil {
			log.Fatalf("encode result: %v", err)
		}
	}
	if err := enc.Encode(summary); err != nil {
		log.Fatalf("encode summary: %v", err)
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
}

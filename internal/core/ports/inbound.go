package ports

import (
	"context"

	"github.com/rootuip/docintel/internal/core/domain"
)

// DocumentProcessor is the inbound contract for the pipeline orchestrator.
type DocumentProcessor interface {
	ProcessOne(ctx context.Context, path string) domain.ProcessingResult
	ProcessMany(ctx context.Context, paths []string, onProgress func(domain.Progress)) ([]domain.ProcessingResult, domain.BatchSummary)
}

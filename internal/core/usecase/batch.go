package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rootuip/docintel/internal/core/domain"
)

// ProcessMany processes documents in windows of the configured batch size,
// documents within a window concurrently. Results come back in input order.
// onProgress, when non-nil, fires after each completed window. Cancellation is
// honored between windows; documents never reached are reported as failed.
func (p *Pipeline) ProcessMany(ctx context.Context, paths []string, onProgress func(domain.Progress)) ([]domain.ProcessingResult, domain.BatchSummary) {
	results := make([]domain.ProcessingResult, len(paths))

	done := 0
	for start := 0; start < len(paths); start += p.batchSize {
		if err := ctx.Err(); err != nil {
			for i := done; i < len(paths); i++ {
				results[i] = domain.ProcessingResult{
					DocumentPath: paths[i],
					Error:        err.Error(),
				}
			}
			done = len(paths)
			break
		}

		end := min(start+p.batchSize, len(paths))
		// Documents already in flight run to completion; cancellation only
		// takes effect at the next window boundary.
		winCtx := context.WithoutCancel(ctx)
		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = p.ProcessOne(winCtx, paths[i])
				return nil
			})
		}
		// ProcessOne never errors, so Wait only synchronizes the window.
		_ = g.Wait()

		done = end
		if onProgress != nil {
			onProgress(domain.Progress{
				Processed:  done,
				Total:      len(paths),
				Percentage: float64(done) / float64(len(paths)) * 100,
			})
		}
	}

	return results, summarize(results)
}

func summarize(results []domain.ProcessingResult) domain.BatchSummary {
	summary := domain.BatchSummary{
		Total:  len(results),
		ByType: make(map[string]int),
	}
	var totalMs int64
	for _, r := range results {
		if !r.Success {
			summary.Failed++
			continue
		}
		summary.Successful++
		totalMs += r.ProcessingTimeMs
		if r.Classification != nil {
			summary.ByType[r.Classification.TypeID]++
		}
		if len(r.Workflow) > 0 {
			summary.RequiresAction = append(summary.RequiresAction, domain.ActionableDocument{
				DocumentPath: r.DocumentPath,
				Actions:      r.Workflow,
			})
		}
	}
	if summary.Successful > 0 {
		summary.AvgProcessingMs = float64(totalMs) / float64(summary.Successful)
	}
	return summary
}

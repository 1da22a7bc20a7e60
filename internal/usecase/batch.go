package usecase

import (
	"context"
	"sort"

	"hire-rank/internal/pkg/workerpool"

	"go.uber.org/zap"
)

type BatchFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

type BatchReport struct {
	Processed int            `json:"processed"`
	Failed    int            `json:"failed"`
	Skipped   int            `json:"skipped"`
	Failures  []BatchFailure `json:"failures"`
}

// runBatch runs fn for every key on a bounded pool. Item failures are
// recorded and never stop sibling items. A done ctx stops dispatch and the
// partial report is returned with ctx.Err().
func runBatch(ctx context.Context, workers int, logger *zap.Logger, keys []string, fn func(ctx context.Context, key string) error) (BatchReport, error) {
	report := BatchReport{Failures: []BatchFailure{}}
	if len(keys) == 0 {
		return report, ctx.Err()
	}
	if workers > len(keys) {
		workers = len(keys)
	}

	pool := workerpool.New(workers, 0)
	out := pool.Run(ctx)

	go func() {
		defer pool.Close()
		for _, key := range keys {
			key := key
			if !pool.Submit(ctx, key, func(ctx context.Context) error { return fn(ctx, key) }) {
				return
			}
		}
	}()

	for res := range out {
		if res.Err != nil {
			report.Failed++
			report.Failures = append(report.Failures, BatchFailure{Key: res.Key, Error: res.Err.Error()})
			logger.Warn("batch item failed", zap.String("key", res.Key), zap.Error(res.Err))
			continue
		}
		report.Processed++
	}

	sort.Slice(report.Failures, func(i, j int) bool { return report.Failures[i].Key < report.Failures[j].Key })
	return report, ctx.Err()
}

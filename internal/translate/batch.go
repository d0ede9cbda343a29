package translate

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mgpai22/cuetrack/internal/logging"
)

// sends one prompt to a model and returns the raw reply text
type completeFunc func(ctx context.Context, prompt string) (string, error)

// splits items into batches and runs them with bounded parallelism,
// request pacing and per-batch retries
type batchRunner struct {
	options Options
	logger  *logging.Logger
	limiter *rate.Limiter
}

func newBatchRunner(opts Options) *batchRunner {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	// tokens per second = RPM / 60
	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(opts.RequestsPerMinute) / 60.0)
	}

	return &batchRunner{
		options: opts,
		logger:  logger,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (r *batchRunner) batches(items []TranslationItem) [][]TranslationItem {
	size := r.options.BatchSize
	var batches [][]TranslationItem
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}

// run translates items and returns the results in input order
func (r *batchRunner) run(
	ctx context.Context,
	items []TranslationItem,
	complete completeFunc,
) ([]TranslationResult, error) {
	if len(items) == 0 {
		return []TranslationResult{}, nil
	}

	batches := r.batches(items)
	perBatch := make([][]TranslationResult, len(batches))

	r.logger.Debugw("starting translation",
		"items", len(items),
		"batches", len(batches),
		"concurrency", r.options.Concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.options.Concurrency)

	for i, batch := range batches {
		g.Go(func() error {
			results, err := r.translateBatch(gctx, batch, complete)
			if err != nil {
				return fmt.Errorf("batch %d/%d failed: %w", i+1, len(batches), err)
			}
			// each goroutine owns its slot
			perBatch[i] = results
			r.logger.Debugw("batch completed",
				"batch", fmt.Sprintf("%d/%d", i+1, len(batches)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]TranslationResult, 0, len(items))
	for _, results := range perBatch {
		all = append(all, results...)
	}
	return all, nil
}

func (r *batchRunner) translateBatch(
	ctx context.Context,
	items []TranslationItem,
	complete completeFunc,
) ([]TranslationResult, error) {
	prompt := BuildPrompt(r.options, items)

	var lastErr error
	for attempt := 0; attempt < r.options.MaxRetries; attempt++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		text, err := complete(ctx, prompt)
		if err == nil {
			var results []TranslationResult
			results, err = parseResponseText(text, items)
			if err == nil {
				return results, nil
			}
		}

		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == r.options.MaxRetries-1 {
			break
		}

		backoff := r.options.RetryBackoff << uint(attempt)
		r.logger.Warnw("batch failed, retrying",
			"attempt", attempt+1,
			"backoff", backoff,
			"error", err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, fmt.Errorf(
		"failed after %d attempts: %w",
		r.options.MaxRetries,
		lastErr,
	)
}

package video

import (
	"context"
	"log/slog"
	"time"

	"github.com/lysyi3m/news-digest/app/catalog"
)

type Searcher interface {
	Search(ctx context.Context, topic string, size int) ([]Candidate, error)
}

type Aggregator struct {
	searcher  Searcher
	topics    []string
	maxVideos int
	maxRounds int
	baseSize  int
	timeout   time.Duration
	budget    time.Duration
}

func NewAggregator(searcher Searcher, cfg catalog.Videos) *Aggregator {
	return &Aggregator{
		searcher:  searcher,
		topics:    cfg.Topics,
		maxVideos: cfg.MaxVideos,
		maxRounds: cfg.MaxRounds,
		baseSize:  cfg.BaseSearchSize,
		timeout:   cfg.GetTimeout(),
	}
}

// WorstCase is the longest Collect can take when every lookup stalls until
// its timeout.
func (a *Aggregator) WorstCase() time.Duration {
	return time.Duration(a.maxRounds*len(a.topics)) * a.timeout
}

// WithBudget bounds the total time Collect spends searching. When the budget
// runs out no further lookups start and the videos collected so far are
// returned. Zero means no bound beyond the caller's context.
func (a *Aggregator) WithBudget(budget time.Duration) *Aggregator {
	a.budget = budget
	return a
}

// Collect searches topics in configured order, widening the search size
// every round, until maxVideos unique videos are collected or maxRounds
// rounds have run. A failed lookup contributes nothing.
func (a *Aggregator) Collect(ctx context.Context) Result {
	startedAt := time.Now()

	searchCtx := ctx
	if a.budget > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, a.budget)
		defer cancel()
	}

	result := Result{Videos: make([]Video, 0, a.maxVideos)}
	seen := make(map[string]struct{})

rounds:
	for round := 1; round <= a.maxRounds && len(result.Videos) < a.maxVideos; round++ {
		result.Rounds = round
		size := a.baseSize * round

		for _, topic := range a.topics {
			if len(result.Videos) >= a.maxVideos {
				break rounds
			}
			if searchCtx.Err() != nil {
				if ctx.Err() == nil {
					slog.Warn("Video search budget exhausted", "budget", a.budget, "round", round, "videos", len(result.Videos))
				}
				break rounds
			}

			result.Lookups++
			candidates, err := a.search(searchCtx, topic, size)
			if err != nil {
				slog.Warn("Failed to search videos", "topic", topic, "round", round, "error", err)
				result.Failures++
				continue
			}

			for _, c := range candidates {
				if len(result.Videos) >= a.maxVideos {
					break
				}
				id := c.identity()
				if id == "" {
					continue
				}
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				result.Videos = append(result.Videos, c.normalize())
			}
		}
	}

	result.CompletedAt = time.Now()

	slog.Info("Video aggregation completed",
		"videos", len(result.Videos),
		"rounds", result.Rounds,
		"lookups", result.Lookups,
		"failures", result.Failures,
		"duration", time.Since(startedAt))

	return result
}

func (a *Aggregator) search(ctx context.Context, topic string, size int) ([]Candidate, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	candidates, err := a.searcher.Search(timeoutCtx, topic, size)
	if err != nil {
		return nil, err
	}
	if err := timeoutCtx.Err(); err != nil {
		return nil, err
	}
	return candidates, nil
}

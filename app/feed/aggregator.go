package feed

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/news-digest/app/catalog"
)

type Aggregator struct {
	sources   []catalog.Source
	fetcher   Fetcher
	matcher   *Matcher
	extractor *ContentExtractor
	workers   int
}

// NewAggregator keeps sources in the given order; that order is preserved in
// every view of the Result. extractor may be nil.
func NewAggregator(sources []catalog.Source, fetcher Fetcher, matcher *Matcher, extractor *ContentExtractor, workers int) *Aggregator {
	if workers <= 0 {
		workers = 1
	}
	return &Aggregator{
		sources:   sources,
		fetcher:   fetcher,
		matcher:   matcher,
		extractor: extractor,
		workers:   workers,
	}
}

type fetchOutcome struct {
	entries  []Entry
	err      error
	duration time.Duration
}

func (a *Aggregator) Run(ctx context.Context) Result {
	startedAt := time.Now()

	outcomes := a.fetchAll(ctx)

	stats := make([]SourceStats, len(a.sources))
	perSource := make([][]Article, len(a.sources))
	dedup := NewDeduplicator()

	for i, src := range a.sources {
		out := outcomes[i]
		stats[i] = SourceStats{Source: src.Name, Duration: out.duration}

		if out.err != nil {
			slog.Warn("Failed to fetch feed", "source", src.Name, "url", src.URL, "error", out.err)
			stats[i].Error = out.err.Error()
			continue
		}

		stats[i].Fetched = len(out.entries)
		perSource[i] = a.consume(src, out.entries, dedup)
		stats[i].Accepted = len(perSource[i])
	}

	a.extractSummaries(ctx, perSource)

	var all []Article
	interestingBySource := make([][]Article, len(a.sources))
	for i := range a.sources {
		for _, article := range perSource[i] {
			all = append(all, article)
			if a.matcher.IsInteresting(article) {
				interestingBySource[i] = append(interestingBySource[i], article)
			}
		}
		stats[i].Interesting = len(interestingBySource[i])
	}

	// Every source that produced articles stays visible in the interesting
	// view, even without a keyword hit.
	for i := range a.sources {
		if len(interestingBySource[i]) == 0 && len(perSource[i]) > 0 {
			interestingBySource[i] = perSource[i][:1]
			stats[i].Fallback = true
		}
	}

	var interesting []Article
	for i := range a.sources {
		interesting = append(interesting, interestingBySource[i]...)
	}

	var region []Article
	for _, article := range all {
		if a.matcher.IsRegionRelated(article) {
			region = append(region, article)
		}
	}

	result := Result{
		All:         all,
		Interesting: interesting,
		Region:      region,
		Sources:     stats,
		CompletedAt: time.Now(),
	}

	slog.Info("News aggregation completed",
		"sources", len(a.sources),
		"all", len(result.All),
		"interesting", len(result.Interesting),
		"region", len(result.Region),
		"unique_keys", dedup.Len(),
		"duration", time.Since(startedAt))

	return result
}

// fetchAll runs one fetch per source in parallel. Outcomes are stored by
// source index, so completion order never leaks into the merge.
func (a *Aggregator) fetchAll(ctx context.Context) []fetchOutcome {
	outcomes := make([]fetchOutcome, len(a.sources))

	var g errgroup.Group
	g.SetLimit(a.workers)

	for i, src := range a.sources {
		g.Go(func() error {
			started := time.Now()
			entries, err := a.fetcher.Fetch(ctx, src)
			outcomes[i] = fetchOutcome{entries: entries, err: err, duration: time.Since(started)}
			slog.Debug("Feed fetched", "source", src.Name, "entries", len(entries), "duration", outcomes[i].duration)
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

// consume walks entries in feed order until the source limit of accepted
// articles is reached; later entries are never inspected.
func (a *Aggregator) consume(src catalog.Source, entries []Entry, dedup *Deduplicator) []Article {
	var accepted []Article
	for _, entry := range entries {
		if len(accepted) >= src.Limit {
			break
		}

		article := entry.Article(src.Name)
		if !dedup.Accept(article) {
			continue
		}
		accepted = append(accepted, article)
	}
	return accepted
}

func (a *Aggregator) extractSummaries(ctx context.Context, perSource [][]Article) {
	if a.extractor == nil {
		return
	}

	var g errgroup.Group
	g.SetLimit(a.workers)

	for i, src := range a.sources {
		if !src.ExtractContent {
			continue
		}
		for j := range perSource[i] {
			if perSource[i][j].Summary != "" {
				continue
			}
			article := &perSource[i][j]
			g.Go(func() error {
				summary, err := a.extractor.Extract(ctx, article.Link, src.GetTimeout())
				if err != nil {
					slog.Debug("Failed to extract summary", "source", src.Name, "url", article.Link, "error", err)
					return nil
				}
				article.Summary = summary
				return nil
			})
		}
	}

	_ = g.Wait()
}

package tasks

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/news-digest/app/database"
	"github.com/lysyi3m/news-digest/app/feed"
	"github.com/lysyi3m/news-digest/app/snapshot"
	"github.com/lysyi3m/news-digest/app/video"
)

// HistoryKeep is how many refresh runs the history ledger retains.
const HistoryKeep = 100

// RefreshTask runs one refresh cycle: news, then videos, then a single
// publish of the new snapshot.
type RefreshTask struct {
	Task
	news    NewsAggregator
	videos  VideoAggregator
	store   *snapshot.Store
	history HistoryRecorder
}

// NewRefreshTask builds a refresh task; history may be nil.
func NewRefreshTask(trigger string, news NewsAggregator, videos VideoAggregator, store *snapshot.Store, history HistoryRecorder) *RefreshTask {
	return &RefreshTask{
		Task:    NewTask(TaskTypeRefresh, trigger),
		news:    news,
		videos:  videos,
		store:   store,
		history: history,
	}
}

func (t *RefreshTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	startedAt := time.Now()

	newsResult := t.news.Run(ctx)
	if err := ctx.Err(); err != nil {
		t.record(startedAt, newsResult, video.Result{}, err)
		return fmt.Errorf("refresh cancelled after news aggregation: %w", err)
	}

	// A deadline that fires during video collection only cuts the video list
	// short; the news is complete and still gets published. Shutdown does not.
	var cycleErr error
	videoResult := t.videos.Collect(ctx)
	if err := ctx.Err(); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			t.record(startedAt, newsResult, videoResult, err)
			return fmt.Errorf("refresh cancelled after video aggregation: %w", err)
		}
		cycleErr = fmt.Errorf("video aggregation cut short: %w", err)
		slog.Warn("Publishing with partial videos", "videos", len(videoResult.Videos), "error", err)
	}

	snap := snapshot.New(newsResult, videoResult, cmp.Or(newsResult.CompletedAt, time.Now()))
	t.store.Publish(snap)

	t.record(startedAt, newsResult, videoResult, cycleErr)

	slog.Info("Task completed",
		"type", string(t.Type),
		"trigger", t.Trigger,
		"duration", t.GetDuration(),
		"articles", snap.ArticleCount(),
		"interesting", snap.InterestingCount(),
		"region", snap.RegionCount(),
		"videos", snap.VideoCount(),
		"timestamp", snap.Timestamp)

	return nil
}

// record writes the cycle to the history ledger. Failures are logged only;
// the ledger never blocks a publish.
func (t *RefreshTask) record(startedAt time.Time, news feed.Result, videos video.Result, cycleErr error) {
	if t.history == nil {
		return
	}

	run := database.Run{
		StartedAt:        startedAt,
		CompletedAt:      time.Now(),
		ArticleCount:     len(news.All),
		InterestingCount: len(news.Interesting),
		RegionCount:      len(news.Region),
		VideoCount:       len(videos.Videos),
		VideoFailures:    videos.Failures,
		Sources:          make([]database.SourceFetch, 0, len(news.Sources)),
	}
	if cycleErr != nil {
		run.Error = cycleErr.Error()
	}
	for _, s := range news.Sources {
		run.Sources = append(run.Sources, database.SourceFetch{
			Source:      s.Source,
			Fetched:     s.Fetched,
			Accepted:    s.Accepted,
			Interesting: s.Interesting,
			Fallback:    s.Fallback,
			Error:       s.Error,
			Duration:    s.Duration,
		})
	}

	// The cycle context may already be cancelled; the ledger write gets its own.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := t.history.InsertRun(ctx, run); err != nil {
		slog.Warn("Failed to record refresh run", "error", err)
		return
	}

	if pruned, err := t.history.PruneRuns(ctx, HistoryKeep); err != nil {
		slog.Warn("Failed to prune refresh history", "error", err)
	} else if pruned > 0 {
		slog.Debug("Refresh history pruned", "deleted", pruned)
	}
}

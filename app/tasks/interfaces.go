package tasks

import (
	"context"

	"github.com/lysyi3m/news-digest/app/database"
	"github.com/lysyi3m/news-digest/app/feed"
	"github.com/lysyi3m/news-digest/app/video"
)

// TaskSchedulerInterface is what main and the api server see of the scheduler.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	Trigger(trigger string) error
}

type NewsAggregator interface {
	Run(ctx context.Context) feed.Result
}

type VideoAggregator interface {
	Collect(ctx context.Context) video.Result
}

// HistoryRecorder is satisfied by *database.RunRepository.
type HistoryRecorder interface {
	InsertRun(ctx context.Context, run database.Run) (int64, error)
	PruneRuns(ctx context.Context, keep int) (int64, error)
}

var (
	_ NewsAggregator  = (*feed.Aggregator)(nil)
	_ VideoAggregator = (*video.Aggregator)(nil)
	_ HistoryRecorder = (*database.RunRepository)(nil)
)

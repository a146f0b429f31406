package api

import (
	"context"

	"github.com/lysyi3m/news-digest/app/database"
	"github.com/lysyi3m/news-digest/app/feed"
	"github.com/lysyi3m/news-digest/app/snapshot"
	"github.com/lysyi3m/news-digest/app/tasks"
)

type GeneratorInterface interface {
	Run(channel feed.Channel, articles []feed.Article) (string, error)
}

type SnapshotReader interface {
	Read() *snapshot.Snapshot
}

type HistoryReader interface {
	ListRecentRuns(ctx context.Context, limit int) ([]database.Run, error)
	GetRunCount(ctx context.Context) (int, error)
	GetLastRun(ctx context.Context) (*database.Run, error)
}

var (
	_ GeneratorInterface = (*feed.Generator)(nil)
	_ SnapshotReader     = (*snapshot.Store)(nil)
	_ HistoryReader      = (*database.RunRepository)(nil)
)

// RefreshTrigger is the part of the scheduler the manual refresh endpoint uses.
type RefreshTrigger interface {
	Trigger(trigger string) error
}

var _ RefreshTrigger = (tasks.TaskSchedulerInterface)(nil)

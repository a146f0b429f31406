package api

import (
	"github.com/lysyi3m/news-digest/app/catalog"
	"github.com/lysyi3m/news-digest/app/feed"
)

type Handler struct {
	store     SnapshotReader
	catalog   *catalog.Catalog
	generator GeneratorInterface
	history   HistoryReader
	refresher RefreshTrigger
	version   string
}

// NewHandler wires the read side of the service. history and refresher may
// be nil; their endpoints then report the feature as unavailable.
func NewHandler(store SnapshotReader, cat *catalog.Catalog, history HistoryReader, refresher RefreshTrigger, version string) *Handler {
	return &Handler{
		store:     store,
		catalog:   cat,
		generator: feed.NewGenerator(),
		history:   history,
		refresher: refresher,
		version:   version,
	}
}

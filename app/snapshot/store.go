package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/lysyi3m/news-digest/app/feed"
	"github.com/lysyi3m/news-digest/app/video"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	EmptyMessage    = "No interesting articles right now."
)

// Snapshot is the result of one refresh cycle. It is never modified after
// Publish; a new cycle builds a new Snapshot.
type Snapshot struct {
	AllArticles         []feed.Article `json:"all_articles"`
	InterestingArticles []feed.Article `json:"interesting_articles"`
	RegionArticles      []feed.Article `json:"region_articles"`
	Videos              []video.Video  `json:"videos"`
	Timestamp           string         `json:"timestamp"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// New builds a snapshot from one cycle's results, stamped with at.
func New(news feed.Result, videos video.Result, at time.Time) Snapshot {
	return Snapshot{
		AllArticles:         orEmpty(news.All),
		InterestingArticles: orEmpty(news.Interesting),
		RegionArticles:      orEmpty(news.Region),
		Videos:              orEmpty(videos.Videos),
		Timestamp:           at.Format(TimestampLayout),
		UpdatedAt:           at,
	}
}

func (s *Snapshot) ArticleCount() int     { return len(s.AllArticles) }
func (s *Snapshot) InterestingCount() int { return len(s.InterestingArticles) }
func (s *Snapshot) RegionCount() int      { return len(s.RegionArticles) }
func (s *Snapshot) VideoCount() int       { return len(s.Videos) }

// Empty reports whether there is nothing interesting to show.
func (s *Snapshot) Empty() bool {
	return len(s.InterestingArticles) == 0
}

// Published reports whether the snapshot came from a refresh cycle.
func (s *Snapshot) Published() bool {
	return !s.UpdatedAt.IsZero()
}

type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store holding an empty snapshot, so Read never
// returns nil.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(&Snapshot{
		AllArticles:         []feed.Article{},
		InterestingArticles: []feed.Article{},
		RegionArticles:      []feed.Article{},
		Videos:              []video.Video{},
	})
	return s
}

func (s *Store) Read() *Snapshot {
	return s.current.Load()
}

func (s *Store) Publish(snap Snapshot) {
	s.current.Store(&snap)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

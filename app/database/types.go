package database

import "time"

// Run is one refresh cycle as recorded in the history ledger.
type Run struct {
	ID               int64
	StartedAt        time.Time
	CompletedAt      time.Time
	ArticleCount     int
	InterestingCount int
	RegionCount      int
	VideoCount       int
	VideoFailures    int
	Error            string // set when the cycle was cut short
	Sources          []SourceFetch
}

type SourceFetch struct {
	Source      string
	Fetched     int
	Accepted    int
	Interesting int
	Fallback    bool
	Error       string
	Duration    time.Duration
}

func (r Run) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

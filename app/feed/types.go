package feed

import (
	"strings"
	"time"
)

// Entry is a feed item normalized by the Parser, before any trimming or
// identity checks.
type Entry struct {
	Title     string
	Link      string
	Summary   string // description, falling back to content
	Published string // published text, falling back to updated text
}

type Article struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Summary   string `json:"summary"`
	Published string `json:"published"` // source-native text, never parsed
	Source    string `json:"source"`
}

// Article trims the identity fields so every later comparison sees the
// same values.
func (e Entry) Article(source string) Article {
	return Article{
		Title:     strings.TrimSpace(e.Title),
		Link:      strings.TrimSpace(e.Link),
		Summary:   strings.TrimSpace(e.Summary),
		Published: e.Published,
		Source:    source,
	}
}

type SourceStats struct {
	Source      string
	Fetched     int
	Accepted    int
	Interesting int
	Fallback    bool
	Error       string
	Duration    time.Duration
}

type Result struct {
	All         []Article
	Interesting []Article
	Region      []Article
	Sources     []SourceStats
	CompletedAt time.Time
}

package feed

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Matcher classifies articles by plain substring search over the lowercased
// title and summary. There is no tokenization, so short keywords also hit
// inside longer words ("ai" in "said", "fun" in "fund").
type Matcher struct {
	keywords       []string
	regionKeywords []string
	regionSources  map[string]struct{}
}

func NewMatcher(keywords, regionKeywords, regionSources []string) *Matcher {
	m := &Matcher{
		keywords:       lowerAll(keywords),
		regionKeywords: lowerAll(regionKeywords),
		regionSources:  make(map[string]struct{}, len(regionSources)),
	}
	for _, s := range regionSources {
		m.regionSources[s] = struct{}{}
	}
	return m
}

func (m *Matcher) IsInteresting(a Article) bool {
	return containsAny(searchText(a), m.keywords)
}

// IsRegionRelated reports a keyword hit or a region-native source.
func (m *Matcher) IsRegionRelated(a Article) bool {
	if containsAny(searchText(a), m.regionKeywords) {
		return true
	}
	_, ok := m.regionSources[a.Source]
	return ok
}

func searchText(a Article) string {
	return lower(a.Title + " " + a.Summary)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// lower applies full Unicode case mapping; a Caser is not safe for
// concurrent use, so each call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, lower(w))
	}
	return out
}

package feed

import "cmp"

// Deduplicator tracks article identity across all sources of one refresh
// cycle. An article is rejected when its key (link, or title when the link
// is empty) or its title was seen before.
type Deduplicator struct {
	keys   map[string]struct{}
	titles map[string]struct{}
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		keys:   make(map[string]struct{}),
		titles: make(map[string]struct{}),
	}
}

// Accept expects an Article built by Entry.Article (trimmed fields).
func (d *Deduplicator) Accept(a Article) bool {
	key := cmp.Or(a.Link, a.Title)
	if key == "" {
		return false
	}
	if _, dup := d.keys[key]; dup {
		return false
	}
	if _, dup := d.titles[a.Title]; dup {
		return false
	}

	d.keys[key] = struct{}{}
	d.titles[a.Title] = struct{}{}
	return true
}

func (d *Deduplicator) Len() int {
	return len(d.keys)
}

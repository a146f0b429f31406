package feed

import "testing"

func TestDeduplicator_Accept(t *testing.T) {
	d := NewDeduplicator()

	steps := []struct {
		name    string
		article Article
		want    bool
	}{
		{"first article", Article{Title: "A", Link: "http://x/1", Source: "S1"}, true},
		{"same link other source", Article{Title: "B", Link: "http://x/1", Source: "S2"}, false},
		{"same title other link", Article{Title: "A", Link: "http://x/2", Source: "S2"}, false},
		{"new article", Article{Title: "C", Link: "http://x/3", Source: "S2"}, true},
		{"title-only key", Article{Title: "D"}, true},
		{"title-only duplicate", Article{Title: "D"}, false},
		{"link equal to earlier title-only key", Article{Title: "E", Link: "D"}, false},
		{"empty identity", Article{}, false},
	}

	for _, step := range steps {
		if got := d.Accept(step.article); got != step.want {
			t.Errorf("%s: Accept(%+v) = %v, want %v", step.name, step.article, got, step.want)
		}
	}

	if d.Len() != 3 {
		t.Errorf("Expected 3 accepted keys, got %d", d.Len())
	}
}

func TestDeduplicator_EmptyTitleIsTracked(t *testing.T) {
	d := NewDeduplicator()

	if !d.Accept(Article{Link: "http://x/1"}) {
		t.Fatal("Expected link-only article to be accepted")
	}
	// The empty title of the first article is recorded like any other title.
	if d.Accept(Article{Link: "http://x/2"}) {
		t.Error("Expected second untitled article to be rejected")
	}
}

package feed

import "testing"

func TestMatcher_IsInteresting(t *testing.T) {
	matcher := NewMatcher([]string{"science", "AI", "green energy"}, nil, nil)

	tests := []struct {
		name    string
		article Article
		want    bool
	}{
		{"title hit", Article{Title: "New Science Museum opens"}, true},
		{"summary hit", Article{Title: "Museum opens", Summary: "A place for SCIENCE"}, true},
		{"uppercase keyword lowered", Article{Title: "Advances in ai"}, true},
		{"substring inside word", Article{Title: "Officials said nothing"}, true},
		{"phrase", Article{Summary: "The push for green energy"}, true},
		{"phrase split by title and summary", Article{Title: "green", Summary: "energy"}, true},
		{"no hit", Article{Title: "Football results", Summary: "Scores"}, false},
		{"empty", Article{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matcher.IsInteresting(tt.article); got != tt.want {
				t.Errorf("IsInteresting(%+v) = %v, want %v", tt.article, got, tt.want)
			}
		})
	}
}

func TestMatcher_IsRegionRelated(t *testing.T) {
	matcher := NewMatcher(nil, []string{"nepal", "kathmandu"}, []string{"Kantipur"})

	tests := []struct {
		name    string
		article Article
		want    bool
	}{
		{"keyword hit", Article{Title: "Floods in Nepal", Source: "BBC World"}, true},
		{"keyword in summary", Article{Summary: "Kathmandu traffic", Source: "Al Jazeera"}, true},
		{"region source without keyword", Article{Title: "Stock market update", Source: "Kantipur"}, true},
		{"other source without keyword", Article{Title: "Stock market update", Source: "BBC World"}, false},
		{"source name is case sensitive", Article{Title: "Update", Source: "kantipur"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matcher.IsRegionRelated(tt.article); got != tt.want {
				t.Errorf("IsRegionRelated(%+v) = %v, want %v", tt.article, got, tt.want)
			}
		})
	}
}

func TestMatcher_EmptyKeywordIgnored(t *testing.T) {
	matcher := NewMatcher([]string{""}, []string{""}, nil)

	if matcher.IsInteresting(Article{Title: "anything"}) {
		t.Error("Empty keyword should not match")
	}
	if matcher.IsRegionRelated(Article{Title: "anything"}) {
		t.Error("Empty region keyword should not match")
	}
}

func TestMatcher_UnicodeLowercase(t *testing.T) {
	matcher := NewMatcher([]string{"ÉCOLE", "nepālī"}, nil, nil)

	if !matcher.IsInteresting(Article{Title: "Une école rouvre"}) {
		t.Error("Expected accented keyword to match case-insensitively")
	}
	if !matcher.IsInteresting(Article{Summary: "NEPĀLĪ language"}) {
		t.Error("Expected uppercase text with diacritics to match")
	}
}

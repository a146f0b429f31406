package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(c.Sources) != 7 {
		t.Fatalf("Expected 7 sources, got %d", len(c.Sources))
	}
	if c.Sources[0].Name != "Al Jazeera" {
		t.Errorf("Expected first source 'Al Jazeera', got '%s'", c.Sources[0].Name)
	}
	if c.Sources[5].Name != "NYT Education" || c.Sources[5].Limit != 3 {
		t.Errorf("Expected 'NYT Education' with limit 3, got '%s' with limit %d", c.Sources[5].Name, c.Sources[5].Limit)
	}
	if len(c.Region.Sources) != 3 {
		t.Errorf("Expected 3 region sources, got %d", len(c.Region.Sources))
	}
	if c.Videos.MaxVideos != 10 {
		t.Errorf("Expected max videos 10, got %d", c.Videos.MaxVideos)
	}
	if len(c.Videos.Topics) != 15 {
		t.Errorf("Expected 15 topics, got %d", len(c.Videos.Topics))
	}
	if c.RefreshInterval() != 6*time.Hour {
		t.Errorf("Expected 6h refresh interval, got %v", c.RefreshInterval())
	}
}

func TestParse_AppliesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
sources:
  - name: One
    url: https://example.com/one.xml
  - name: Two
    url: https://example.com/two.xml
    limit: 2
videos:
  topics: [space]
`))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if c.Sources[0].Limit != DefaultSourceLimit {
		t.Errorf("Expected default limit %d, got %d", DefaultSourceLimit, c.Sources[0].Limit)
	}
	if c.Sources[1].Limit != 2 {
		t.Errorf("Expected limit 2, got %d", c.Sources[1].Limit)
	}
	if c.Sources[0].GetTimeout() != 30*time.Second {
		t.Errorf("Expected 30s default timeout, got %v", c.Sources[0].GetTimeout())
	}
	if c.Videos.MaxRounds != DefaultMaxRounds || c.Videos.BaseSearchSize != DefaultBaseSearchSize {
		t.Errorf("Expected video defaults, got rounds=%d size=%d", c.Videos.MaxRounds, c.Videos.BaseSearchSize)
	}
	if got := strings.Join(c.SourceNames(), ","); got != "One,Two" {
		t.Errorf("Expected source order 'One,Two', got '%s'", got)
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "sources:\n  - url: https://example.com/feed\n",
			want: "name is required",
		},
		{
			name: "missing url",
			yaml: "sources:\n  - name: A\n",
			want: "url is required",
		},
		{
			name: "bad scheme",
			yaml: "sources:\n  - name: A\n    url: ftp://example.com/feed\n",
			want: "scheme",
		},
		{
			name: "duplicate name",
			yaml: "sources:\n  - name: A\n    url: https://a.example.com\n  - name: A\n    url: https://b.example.com\n",
			want: "duplicate",
		},
		{
			name: "negative limit",
			yaml: "sources:\n  - name: A\n    url: https://a.example.com\n    limit: -1\n",
			want: "non-negative",
		},
		{
			name: "negative max videos",
			yaml: "videos:\n  max_videos: -3\n",
			want: "non-negative",
		},
		{
			name: "malformed yaml",
			yaml: "sources: [",
			want: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yml")
	data := "refresh_interval_hours: 2\nsources:\n  - name: Local\n    url: http://localhost/feed\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if c.RefreshInterval() != 2*time.Hour {
		t.Errorf("Expected 2h refresh interval, got %v", c.RefreshInterval())
	}
	if len(c.Sources) != 1 || c.Sources[0].Name != "Local" {
		t.Errorf("Expected single 'Local' source, got %+v", c.Sources)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

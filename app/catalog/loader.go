package catalog

import (
	_ "embed"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSourceLimit    = 5
	DefaultMaxVideos      = 10
	DefaultMaxRounds      = 3
	DefaultBaseSearchSize = 20
)

//go:embed default.yml
var defaultCatalog []byte

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", displayPath(path), err)
	}

	slog.Debug("Catalog loaded",
		"path", displayPath(path),
		"sources", len(c.Sources),
		"keywords", len(c.Keywords),
		"region_keywords", len(c.Region.Keywords),
		"topics", len(c.Videos.Topics))

	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&c)

	if err := validate(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

func applyDefaults(c *Catalog) {
	for i := range c.Sources {
		if c.Sources[i].Limit == 0 {
			c.Sources[i].Limit = DefaultSourceLimit
		}
	}
	if c.Videos.MaxVideos == 0 {
		c.Videos.MaxVideos = DefaultMaxVideos
	}
	if c.Videos.MaxRounds == 0 {
		c.Videos.MaxRounds = DefaultMaxRounds
	}
	if c.Videos.BaseSearchSize == 0 {
		c.Videos.BaseSearchSize = DefaultBaseSearchSize
	}
}

func validate(c *Catalog) error {
	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("source %q: duplicate name", s.Name)
		}
		seen[s.Name] = true

		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
	}

	nonNegativeFields := map[string]int{
		"refresh interval": c.RefreshIntervalHours,
		"max videos":       c.Videos.MaxVideos,
		"max rounds":       c.Videos.MaxRounds,
		"base search size": c.Videos.BaseSearchSize,
		"video timeout":    c.Videos.Timeout,
	}
	for i, s := range c.Sources {
		nonNegativeFields[fmt.Sprintf("source %d limit", i)] = s.Limit
		nonNegativeFields[fmt.Sprintf("source %d timeout", i)] = s.Timeout
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	return nil
}

func displayPath(path string) string {
	if path == "" {
		return "<embedded>"
	}
	return path
}

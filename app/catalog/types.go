package catalog

import "time"

type Catalog struct {
	RefreshIntervalHours int      `yaml:"refresh_interval_hours"`
	Sources              []Source `yaml:"sources"`
	Keywords             []string `yaml:"keywords"`
	Region               Region   `yaml:"region"`
	Videos               Videos   `yaml:"videos"`
}

// Source is one configured feed. The position in Catalog.Sources is the
// iteration order used by every refresh cycle.
type Source struct {
	Name           string `yaml:"name"`
	URL            string `yaml:"url"`
	Limit          int    `yaml:"limit"`
	Timeout        int    `yaml:"timeout"`         // seconds
	ExtractContent bool   `yaml:"extract_content"` // fill empty summaries from the article page
}

type Region struct {
	Name     string   `yaml:"name"`
	Sources  []string `yaml:"sources"`
	Keywords []string `yaml:"keywords"`
}

type Videos struct {
	Topics         []string `yaml:"topics"`
	MaxVideos      int      `yaml:"max_videos"`
	MaxRounds      int      `yaml:"max_rounds"`
	BaseSearchSize int      `yaml:"base_search_size"`
	Timeout        int      `yaml:"timeout"` // seconds, per topic lookup
}

func (s Source) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.Timeout) * time.Second
}

func (v Videos) GetTimeout() time.Duration {
	if v.Timeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(v.Timeout) * time.Second
}

func (c *Catalog) RefreshInterval() time.Duration {
	if c.RefreshIntervalHours <= 0 {
		return 6 * time.Hour
	}
	return time.Duration(c.RefreshIntervalHours) * time.Hour
}

func (c *Catalog) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for _, s := range c.Sources {
		names = append(names, s.Name)
	}
	return names
}

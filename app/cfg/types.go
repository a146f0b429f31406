package cfg

import "time"

type Cfg struct {
	// Server
	Port          string
	ManualRefresh bool

	// Content catalog and history ledger
	ConfigPath string
	DBPath     string

	// Refresh cycle
	RefreshInterval int // hours, 0 = use the catalog value
	FetchWorkers    int
	TaskTimeout     int // seconds

	// Video search
	YouTubeAPIKey string
	YtDlpPath     string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

func (c *Cfg) GetTaskTimeout() time.Duration {
	if c.TaskTimeout <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.TaskTimeout) * time.Second
}

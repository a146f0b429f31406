package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port          string `long:"port" env:"PORT" default:"5000" description:"HTTP server port"`
	ManualRefresh bool   `long:"manual-refresh" env:"MANUAL_REFRESH" description:"Expose POST /api/refresh to enqueue a refresh cycle"`

	// Content catalog and history ledger
	ConfigPath string `long:"config" env:"CONFIG_PATH" description:"Path to the content catalog YAML (sources, keywords, topics); embedded defaults when empty"`
	DBPath     string `long:"db-path" env:"DB_PATH" default:":memory:" description:"SQLite database for the refresh history ledger"`

	// Refresh cycle configuration
	RefreshInterval int `long:"refresh-interval" env:"REFRESH_INTERVAL_HOURS" description:"Refresh interval in hours (overrides the catalog value)"`
	FetchWorkers    int `long:"fetch-workers" env:"FETCH_WORKERS" default:"4" description:"Number of feeds fetched in parallel"`
	TaskTimeout     int `long:"task-timeout" env:"TASK_TIMEOUT" default:"600" description:"Upper bound for one refresh cycle in seconds"`

	// Video search configuration
	YouTubeAPIKey string `long:"youtube-api-key" env:"YOUTUBE_API_KEY" description:"YouTube Data API key; yt-dlp is used when empty"`
	YtDlpPath     string `long:"yt-dlp-path" env:"YT_DLP_PATH" default:"yt-dlp" description:"Path to the yt-dlp executable"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"News Digest/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Kathmandu)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return parse(nil)
}

func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.RefreshInterval < 0 {
		return nil, fmt.Errorf("refresh interval must be non-negative, got %d", raw.RefreshInterval)
	}
	if raw.FetchWorkers <= 0 {
		raw.FetchWorkers = 1
	}

	cfg := &Cfg{
		Port:            raw.Port,
		ManualRefresh:   raw.ManualRefresh,
		ConfigPath:      raw.ConfigPath,
		DBPath:          raw.DBPath,
		RefreshInterval: raw.RefreshInterval,
		FetchWorkers:    raw.FetchWorkers,
		TaskTimeout:     raw.TaskTimeout,
		YouTubeAPIKey:   raw.YouTubeAPIKey,
		YtDlpPath:       raw.YtDlpPath,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}

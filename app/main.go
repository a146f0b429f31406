package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/news-digest/app/api"
	"github.com/lysyi3m/news-digest/app/catalog"
	"github.com/lysyi3m/news-digest/app/cfg"
	"github.com/lysyi3m/news-digest/app/database"
	"github.com/lysyi3m/news-digest/app/feed"
	"github.com/lysyi3m/news-digest/app/snapshot"
	"github.com/lysyi3m/news-digest/app/tasks"
	"github.com/lysyi3m/news-digest/app/video"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogging(appCfg.Debug)

	slog.Info("Starting News Digest server", "version", appCfg.Version)

	cat, err := catalog.Load(appCfg.ConfigPath)
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}
	if appCfg.RefreshInterval > 0 {
		cat.RefreshIntervalHours = appCfg.RefreshInterval
	}
	slog.Info("Catalog loaded",
		"sources", len(cat.Sources),
		"keywords", len(cat.Keywords),
		"topics", len(cat.Videos.Topics),
		"refresh_interval", cat.RefreshInterval())

	db, err := database.Open(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	runRepo := database.NewRunRepository(db)

	httpClient := &http.Client{}
	matcher := feed.NewMatcher(cat.Keywords, cat.Region.Keywords, cat.Region.Sources)
	fetcher := feed.NewHTTPFetcher(httpClient, feed.NewParser(), appCfg.UserAgent)
	extractor := feed.NewContentExtractor(httpClient, appCfg.UserAgent)
	newsAggregator := feed.NewAggregator(cat.Sources, fetcher, matcher, extractor, appCfg.FetchWorkers)

	searcher, err := newSearcher(appCfg)
	if err != nil {
		slog.Error("Failed to create video searcher", "error", err)
		os.Exit(1)
	}
	// Videos get half of the cycle so a stalled search never eats the news.
	videoBudget := appCfg.GetTaskTimeout() / 2
	videoAggregator := video.NewAggregator(searcher, cat.Videos)
	if worst := videoAggregator.WorstCase(); worst > videoBudget {
		slog.Warn("Video search may exceed its budget; lookups stop once it runs out",
			"worst_case", worst, "budget", videoBudget, "task_timeout", appCfg.GetTaskTimeout())
		videoAggregator.WithBudget(videoBudget)
	}

	store := snapshot.NewStore()

	scheduler := tasks.NewScheduler(func(trigger string) tasks.TaskInterface {
		return tasks.NewRefreshTask(trigger, newsAggregator, videoAggregator, store, runRepo)
	}, cat.RefreshInterval(), appCfg.GetTaskTimeout())
	scheduler.Start()
	defer scheduler.Stop()

	var refresher api.RefreshTrigger
	if appCfg.ManualRefresh {
		refresher = scheduler
	}
	apiHandler := api.NewHandler(store, cat, runRepo, refresher, appCfg.Version)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler and database are closed via defer
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

// newSearcher prefers the YouTube Data API and falls back to yt-dlp when no
// API key is configured.
func newSearcher(c *cfg.Cfg) (video.Searcher, error) {
	if c.YouTubeAPIKey != "" {
		slog.Info("Using YouTube Data API for video search")
		searcher, err := video.NewYouTubeSearcher(context.Background(), c.YouTubeAPIKey)
		if err != nil {
			return nil, err
		}
		return searcher, nil
	}
	slog.Info("Using yt-dlp for video search", "path", c.YtDlpPath)
	return video.NewYtDlpSearcher(c.YtDlpPath), nil
}

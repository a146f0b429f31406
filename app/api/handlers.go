package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/news-digest/app/feed"
	"github.com/lysyi3m/news-digest/app/snapshot"
	"github.com/lysyi3m/news-digest/app/tasks"
)

const defaultStatsLimit = 10

func (h *Handler) GetIndex(c *gin.Context) {
	snap := h.store.Read()

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Snapshot":     snap,
		"LastUpdate":   lastUpdate(snap),
		"EmptyMessage": snapshot.EmptyMessage,
		"RegionName":   h.catalog.Region.Name,
		"Sources":      h.catalog.Sources,
		"Keywords":     h.catalog.Keywords,
		"Topics":       h.catalog.Videos.Topics,
		"Version":      h.version,
	})
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	snap := h.store.Read()

	c.JSON(http.StatusOK, gin.H{
		"timestamp":            snap.Timestamp,
		"updated_at":           updatedAt(snap),
		"interesting_count":    snap.InterestingCount(),
		"message":              emptyMessage(snap),
		"interesting_articles": snap.InterestingArticles,
		"all_articles":         snap.AllArticles,
		"region_articles":      snap.RegionArticles,
		"videos":               snap.Videos,
	})
}

// GetFeed renders one article view of the current snapshot as RSS.
func (h *Handler) GetFeed(c *gin.Context) {
	view := c.Param("view")
	snap := h.store.Read()

	var articles []feed.Article
	var title string
	switch view {
	case "interesting.xml":
		articles, title = snap.InterestingArticles, "Interesting articles"
	case "all.xml":
		articles, title = snap.AllArticles, "All articles"
	case "region.xml":
		articles, title = snap.RegionArticles, fmt.Sprintf("%s articles", h.catalog.Region.Name)
	default:
		c.Status(http.StatusNotFound)
		return
	}

	base := baseURL(c)
	channel := feed.Channel{
		Title:       "News Digest: " + title,
		Link:        base + "/",
		SelfLink:    base + c.Request.URL.Path,
		Description: title + " from the latest refresh",
		Generator:   "News Digest " + h.version,
		UpdatedAt:   snap.UpdatedAt,
	}

	rss, err := h.generator.Run(channel, articles)
	if err != nil {
		slog.Error("RSS generation error", "view", view, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(articles)))
	if snap.Published() {
		c.Header("X-Last-Updated", snap.UpdatedAt.Format(time.RFC3339))
	}

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	snap := h.store.Read()

	health := map[string]interface{}{
		"timestamp":          time.Now().In(time.Local).Format(time.RFC3339),
		"last_update":        lastUpdate(snap),
		"articles":           snap.ArticleCount(),
		"interesting":        snap.InterestingCount(),
		"region":             snap.RegionCount(),
		"videos":             snap.VideoCount(),
		"loaded_sources":     len(h.catalog.Sources),
		"sources":            h.catalog.SourceNames(),
		"manual_refresh":     h.refresher != nil,
		"refresh_interval_h": int(h.catalog.RefreshInterval().Hours()),
	}

	if h.history != nil {
		if runCount, err := h.history.GetRunCount(c.Request.Context()); err == nil {
			health["refresh_runs"] = runCount
		}
		if last, err := h.history.GetLastRun(c.Request.Context()); err == nil && last != nil {
			health["last_run"] = gin.H{
				"started_at": last.StartedAt.Format(time.RFC3339),
				"duration":   last.Duration().String(),
				"error":      last.Error,
			}
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Refresh history is not available"})
		return
	}

	limit := defaultStatsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = min(n, 100)
	}

	runs, err := h.history.ListRecentRuns(c.Request.Context(), limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	out := make([]gin.H, 0, len(runs))
	for _, run := range runs {
		sources := make([]gin.H, 0, len(run.Sources))
		for _, s := range run.Sources {
			sources = append(sources, gin.H{
				"source":      s.Source,
				"fetched":     s.Fetched,
				"accepted":    s.Accepted,
				"interesting": s.Interesting,
				"fallback":    s.Fallback,
				"error":       s.Error,
				"duration":    s.Duration.String(),
			})
		}

		out = append(out, gin.H{
			"id":             run.ID,
			"started_at":     run.StartedAt.Format(time.RFC3339),
			"duration":       run.Duration().String(),
			"articles":       run.ArticleCount,
			"interesting":    run.InterestingCount,
			"region":         run.RegionCount,
			"videos":         run.VideoCount,
			"video_failures": run.VideoFailures,
			"error":          run.Error,
			"sources":        sources,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  out,
		"total": len(out),
	})
}

func (h *Handler) APIRefresh(c *gin.Context) {
	if err := h.refresher.Trigger(tasks.TriggerManual); err != nil {
		slog.Warn("Manual refresh rejected", "error", err)
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Refresh already pending",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Refresh enqueued",
	})
}

func lastUpdate(snap *snapshot.Snapshot) string {
	if !snap.Published() {
		return "Never"
	}
	return snap.Timestamp
}

func updatedAt(snap *snapshot.Snapshot) interface{} {
	if !snap.Published() {
		return nil
	}
	return snap.UpdatedAt.Format(time.RFC3339)
}

func emptyMessage(snap *snapshot.Snapshot) string {
	if snap.Empty() {
		return snapshot.EmptyMessage
	}
	return ""
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

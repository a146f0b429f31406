package video

import "time"

type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Channel   string `json:"channel"`
	Published string `json:"published"` // YYYY-MM-DD or "Unknown date"
}

// Candidate is one raw search hit. Field names follow yt-dlp's info dict so
// its JSON decodes directly; other searchers map onto the same shape.
type Candidate struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	WebpageURL string `json:"webpage_url"`
	Title      string `json:"title"`
	Uploader   string `json:"uploader"`
	UploaderID string `json:"uploader_id"`
	UploadDate string `json:"upload_date"` // YYYYMMDD
}

type Result struct {
	Videos      []Video
	Lookups     int
	Failures    int
	Rounds      int
	CompletedAt time.Time
}

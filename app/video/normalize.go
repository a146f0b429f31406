package video

import "cmp"

const (
	unknownTitle   = "No title"
	unknownChannel = "Unknown channel"
	unknownDate    = "Unknown date"
	watchURL       = "https://www.youtube.com/watch?v="
)

// identity returns the id used for dedup: id, then url, then webpage url.
func (c Candidate) identity() string {
	return cmp.Or(c.ID, c.URL, c.WebpageURL)
}

// normalize maps a candidate with a non-empty identity onto a Video.
func (c Candidate) normalize() Video {
	id := c.identity()
	return Video{
		ID:        id,
		Title:     cmp.Or(c.Title, unknownTitle),
		Link:      cmp.Or(c.URL, c.WebpageURL, watchURL+id),
		Channel:   cmp.Or(c.Uploader, c.UploaderID, unknownChannel),
		Published: formatUploadDate(c.UploadDate),
	}
}

func formatUploadDate(s string) string {
	if len(s) < 8 {
		return unknownDate
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:8]
}

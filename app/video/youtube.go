package video

import (
	"context"
	"fmt"
	"html"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// search.list accepts at most 50 results per page.
const maxPageSize = 50

var _ Searcher = (*YouTubeSearcher)(nil)

// YouTubeSearcher looks topics up through the YouTube Data API v3.
type YouTubeSearcher struct {
	service *youtube.Service
}

func NewYouTubeSearcher(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeSearcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &YouTubeSearcher{service: service}, nil
}

// Search pages through search.list until size results are collected or the
// result set ends.
func (s *YouTubeSearcher) Search(ctx context.Context, topic string, size int) ([]Candidate, error) {
	var candidates []Candidate
	pageToken := ""

	for len(candidates) < size {
		call := s.service.Search.List([]string{"snippet"}).
			Q(topic).
			Type("video").
			MaxResults(int64(min(size-len(candidates), maxPageSize))).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("search.list failed for topic %q: %w", topic, err)
		}

		for _, item := range resp.Items {
			candidates = append(candidates, searchResultCandidate(item))
		}

		if resp.NextPageToken == "" || len(resp.Items) == 0 {
			break
		}
		pageToken = resp.NextPageToken
	}

	if len(candidates) > size {
		candidates = candidates[:size]
	}
	return candidates, nil
}

func searchResultCandidate(item *youtube.SearchResult) Candidate {
	var c Candidate
	if item == nil {
		return c
	}

	if item.Id != nil && item.Id.VideoId != "" {
		c.ID = item.Id.VideoId
		c.URL = watchURL + item.Id.VideoId
	}

	if item.Snippet != nil {
		c.Title = html.UnescapeString(item.Snippet.Title)
		c.Uploader = item.Snippet.ChannelTitle
		c.UploaderID = item.Snippet.ChannelId
		if published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			c.UploadDate = published.UTC().Format("20060102")
		}
	}

	return c
}

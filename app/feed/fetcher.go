package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/lysyi3m/news-digest/app/catalog"
)

type Fetcher interface {
	Fetch(ctx context.Context, source catalog.Source) ([]Entry, error)
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Upper bounds for a single response body.
const (
	maxFeedBytes    int64 = 10 << 20
	maxArticleBytes int64 = 5 << 20
)

type HTTPFetcher struct {
	httpClient *http.Client
	parser     *Parser
	userAgent  string
	maxBytes   int64
}

func NewHTTPFetcher(httpClient *http.Client, parser *Parser, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: httpClient,
		parser:     parser,
		userAgent:  userAgent,
		maxBytes:   maxFeedBytes,
	}
}

// Fetch makes a single attempt bounded by the source timeout.
func (f *HTTPFetcher) Fetch(ctx context.Context, source catalog.Source) ([]Entry, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, source.GetTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := readLimited(resp.Body, f.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return f.parser.Run(data)
}

// readLimited reads at most limit bytes and fails when the body is longer.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return data, nil
}

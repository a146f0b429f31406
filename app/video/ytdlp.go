package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

var _ Searcher = (*YtDlpSearcher)(nil)

// YtDlpSearcher shells out to yt-dlp in flat-playlist mode, so no video page
// is fetched and no API key is needed.
type YtDlpSearcher struct {
	binary string
}

func NewYtDlpSearcher(binary string) *YtDlpSearcher {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &YtDlpSearcher{binary: binary}
}

func (s *YtDlpSearcher) Search(ctx context.Context, topic string, size int) ([]Candidate, error) {
	query := fmt.Sprintf("ytsearch%d:%s", size, topic)

	cmd := exec.CommandContext(ctx, s.binary, "--flat-playlist", "-J", "--no-warnings", "--quiet", query)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("yt-dlp failed: %w", err)
	}

	return decodePlaylist(stdout.Bytes())
}

type playlist struct {
	Entries []*Candidate `json:"entries"`
}

func decodePlaylist(data []byte) ([]Candidate, error) {
	var p playlist
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode yt-dlp output: %w", err)
	}

	candidates := make([]Candidate, 0, len(p.Entries))
	for _, e := range p.Entries {
		if e == nil {
			continue
		}
		candidates = append(candidates, *e)
	}
	return candidates, nil
}

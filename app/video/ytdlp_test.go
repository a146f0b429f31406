package video

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const playlistJSON = `{
  "_type": "playlist",
  "id": "science",
  "entries": [
    {"id": "a1", "url": "https://www.youtube.com/watch?v=a1", "title": "First", "uploader": "Chan", "upload_date": "20240101"},
    {"id": "a2", "url": "https://www.youtube.com/watch?v=a2", "title": "Second", "uploader": null, "upload_date": null},
    null
  ]
}`

func TestDecodePlaylist(t *testing.T) {
	candidates, err := decodePlaylist([]byte(playlistJSON))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].UploadDate != "20240101" || candidates[0].Uploader != "Chan" {
		t.Errorf("Unexpected first candidate: %+v", candidates[0])
	}
	if candidates[1].Uploader != "" || candidates[1].UploadDate != "" {
		t.Errorf("Null fields should decode as empty, got %+v", candidates[1])
	}

	if _, err := decodePlaylist([]byte("not json")); err == nil {
		t.Error("Expected error for invalid output")
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}

	path := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	return path
}

func TestYtDlpSearcher_Search(t *testing.T) {
	// The script echoes its last argument as the playlist id.
	script := writeScript(t, `for last; do :; done
printf '{"id": "%s", "entries": [{"id": "x1", "title": "Clip"}]}' "$last"
`)

	searcher := NewYtDlpSearcher(script)
	candidates, err := searcher.Search(context.Background(), "green energy", 40)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(candidates) != 1 || candidates[0].ID != "x1" {
		t.Errorf("Unexpected candidates: %+v", candidates)
	}
}

func TestYtDlpSearcher_Failure(t *testing.T) {
	script := writeScript(t, "echo 'ERROR: no network' >&2\nexit 1\n")

	searcher := NewYtDlpSearcher(script)
	if _, err := searcher.Search(context.Background(), "topic", 20); err == nil {
		t.Error("Expected error when yt-dlp exits non-zero")
	}
}

func TestYtDlpSearcher_MissingBinary(t *testing.T) {
	searcher := NewYtDlpSearcher(filepath.Join(t.TempDir(), "missing"))
	if _, err := searcher.Search(context.Background(), "topic", 20); err == nil {
		t.Error("Expected error for missing binary")
	}
}

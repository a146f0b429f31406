package video

import "testing"

func TestCandidateNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Candidate
		want Video
	}{
		{
			name: "full record",
			in: Candidate{
				ID:         "abc",
				URL:        "https://www.youtube.com/watch?v=abc",
				Title:      "A video",
				Uploader:   "Channel",
				UploaderID: "@channel",
				UploadDate: "20240115",
			},
			want: Video{
				ID:        "abc",
				Title:     "A video",
				Link:      "https://www.youtube.com/watch?v=abc",
				Channel:   "Channel",
				Published: "2024-01-15",
			},
		},
		{
			name: "defaults",
			in:   Candidate{ID: "xyz"},
			want: Video{
				ID:        "xyz",
				Title:     "No title",
				Link:      "https://www.youtube.com/watch?v=xyz",
				Channel:   "Unknown channel",
				Published: "Unknown date",
			},
		},
		{
			name: "uploader id and webpage url fallbacks",
			in: Candidate{
				ID:         "id1",
				WebpageURL: "https://www.youtube.com/watch?v=id1",
				UploaderID: "@fallback",
				UploadDate: "2024",
			},
			want: Video{
				ID:        "id1",
				Title:     "No title",
				Link:      "https://www.youtube.com/watch?v=id1",
				Channel:   "@fallback",
				Published: "Unknown date",
			},
		},
		{
			name: "identity from url",
			in:   Candidate{URL: "https://youtu.be/q"},
			want: Video{
				ID:        "https://youtu.be/q",
				Title:     "No title",
				Link:      "https://youtu.be/q",
				Channel:   "Unknown channel",
				Published: "Unknown date",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.normalize(); got != tt.want {
				t.Errorf("normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatUploadDate(t *testing.T) {
	tests := map[string]string{
		"20231231":   "2023-12-31",
		"2023123199": "2023-12-31",
		"2023":       "Unknown date",
		"":           "Unknown date",
	}

	for in, want := range tests {
		if got := formatUploadDate(in); got != want {
			t.Errorf("formatUploadDate(%q) = %q, want %q", in, got, want)
		}
	}
}

package platform

import "testing"

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "valid playlist URL with watch parameter",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID",
			expected: true,
		},
		{
			name:     "valid playlist URL with playlist parameter",
			url:      "https://www.youtube.com/playlist?list=PLAYLIST_ID",
			expected: true,
		},
		{
			name:     "invalid URL without playlist parameter",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID",
			expected: false,
		},
		{
			name:     "empty URL",
			url:      "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsPlaylistURL(tt.url)
			if result != tt.expected {
				t.Errorf("expected %v, got %v for URL: %s", tt.expected, result, tt.url)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expected    string
		expectError bool
	}{
		{
			name:     "extract playlist ID from watch URL",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID",
			expected: "PLAYLIST_ID",
		},
		{
			name:     "extract playlist ID from playlist URL",
			url:      "https://www.youtube.com/playlist?list=PLAYLIST_ID",
			expected: "PLAYLIST_ID",
		},
		{
			name:     "extract playlist ID with additional parameters",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&index=1&t=30",
			expected: "PLAYLIST_ID",
		},
		{
			name:     "extract playlist ID with multiple list parameters",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&list=OTHER_ID",
			expected: "PLAYLIST_ID",
		},
		{
			name:        "URL without playlist parameter",
			url:         "https://www.youtube.com/watch?v=VIDEO_ID",
			expectError: true,
		},
		{
			name:        "empty playlist parameter",
			url:         "https://www.youtube.com/playlist?list=",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractPlaylistID(tt.url)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got id %q", id)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, id)
			}
		})
	}
}

func TestVideoURL(t *testing.T) {
	if got := VideoURL("abc123"); got != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("unexpected URL: %s", got)
	}
}

func TestValidateLocator(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=1", false},
		{"  https://youtu.be/1  ", false},
		{"http://example.com/video", false},
		{"", true},
		{"   ", true},
		{"ftp://example.com/file", true},
		{"not a url", true},
		{"https://", true},
	}

	for _, tt := range tests {
		err := ValidateLocator(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLocator(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

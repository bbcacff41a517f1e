package engine

import "testing"

func TestParseInfo_SingleItem(t *testing.T) {
	data := `{
		"id": "abc",
		"title": "Video Title",
		"duration": 125.4,
		"duration_string": "2:05",
		"webpage_url": "https://www.youtube.com/watch?v=abc",
		"formats": [
			{"format_id": "18", "ext": "mp4", "vcodec": "avc1", "acodec": "mp4a", "height": 360, "vbr": 0.5},
			{"format_id": "140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a", "abr": 129.5, "height": null}
		]
	}`

	info, err := ParseInfo([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info == nil {
		t.Fatal("expected info")
	}
	if StringValue(info.Title) != "Video Title" {
		t.Errorf("unexpected title %q", StringValue(info.Title))
	}
	if FloatValue(info.Duration) != 125.4 {
		t.Errorf("unexpected duration %v", FloatValue(info.Duration))
	}
	if info.IsPlaylist() {
		t.Error("single item should not be a playlist")
	}
	if len(info.Formats) != 2 {
		t.Fatalf("expected 2 formats, got %d", len(info.Formats))
	}
	if info.Formats[1].Height != nil {
		t.Error("null height should decode to nil")
	}
	if FloatValue(info.Formats[1].ABR) != 129.5 {
		t.Errorf("unexpected abr %v", FloatValue(info.Formats[1].ABR))
	}
}

func TestParseInfo_Playlist(t *testing.T) {
	data := `{"_type": "playlist", "title": "Mix", "entries": [{"id": "a", "url": "https://youtu.be/a"}, null, {"id": "c"}]}`

	info, err := ParseInfo([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.IsPlaylist() {
		t.Fatal("expected playlist")
	}
	if len(info.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(info.Entries))
	}
	if info.Entries[1] != nil {
		t.Error("null entry should decode to nil")
	}
}

func TestParseInfo_EmptyPlaylist(t *testing.T) {
	info, err := ParseInfo([]byte(`{"_type": "playlist", "entries": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.IsPlaylist() {
		t.Error("an empty entries list is still a playlist")
	}
}

func TestParseInfo_EmptyResults(t *testing.T) {
	for _, input := range []string{"", "   \n", "null", " null\n"} {
		info, err := ParseInfo([]byte(input))
		if err != nil {
			t.Errorf("ParseInfo(%q) unexpected error: %v", input, err)
		}
		if info != nil {
			t.Errorf("ParseInfo(%q) expected nil info", input)
		}
	}
}

func TestParseInfo_Invalid(t *testing.T) {
	if _, err := ParseInfo([]byte("{not json")); err == nil {
		t.Error("expected decode error")
	}
}

func TestProgressSample_Total(t *testing.T) {
	tests := []struct {
		name     string
		sample   ProgressSample
		expected int64
	}{
		{"exact total", ProgressSample{TotalBytes: 100, TotalBytesEstimate: 90}, 100},
		{"estimate only", ProgressSample{TotalBytesEstimate: 90}, 90},
		{"unknown", ProgressSample{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sample.Total(); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

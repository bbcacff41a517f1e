package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ytget/yt-fetcher/internal/model"
)

func newTestNative(fetch playlistFetcher) *Native {
	n := NewNative(NativeConfig{Timeout: time.Second}, nil)
	n.fetch = fetch
	return n
}

func TestNative_ProbePlaylist(t *testing.T) {
	var gotID string
	n := newTestNative(func(ctx context.Context, playlistID string) ([]playlistEntry, error) {
		gotID = playlistID
		return []playlistEntry{
			{VideoID: "a1", Title: "Rammstein - Sonne (Official Video)"},
			{VideoID: "", Title: "deleted"},
			{VideoID: "b2", Title: "Rammstein - Mein Herz brennt"},
		}, nil
	})

	info, err := n.Probe(context.Background(), "https://www.youtube.com/watch?v=a1&list=PL123&index=2", model.Options{ListFlat: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "PL123" {
		t.Errorf("expected playlist ID PL123, got %s", gotID)
	}
	if !info.IsPlaylist() {
		t.Fatal("expected playlist result")
	}
	if len(info.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(info.Entries))
	}
	if info.Entries[1] != nil {
		t.Error("entry without video ID should be nil")
	}
	if StringValue(info.Entries[0].URL) != "https://www.youtube.com/watch?v=a1" {
		t.Errorf("unexpected entry URL %s", StringValue(info.Entries[0].URL))
	}
	if StringValue(info.Title) != "Rammstein -"+PlaylistSuffix {
		t.Errorf("unexpected playlist title %q", StringValue(info.Title))
	}
}

func TestNative_ProbeSingleItemUnsupported(t *testing.T) {
	n := newTestNative(func(ctx context.Context, playlistID string) ([]playlistEntry, error) {
		t.Fatal("fetch should not be called")
		return nil, nil
	})

	_, err := n.Probe(context.Background(), "https://www.youtube.com/watch?v=a1", model.Options{})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestNative_ProbeFetchError(t *testing.T) {
	boom := errors.New("network down")
	n := newTestNative(func(ctx context.Context, playlistID string) ([]playlistEntry, error) {
		return nil, boom
	})

	_, err := n.Probe(context.Background(), "https://www.youtube.com/playlist?list=PL1", model.Options{})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped fetch error, got %v", err)
	}
}

func TestNative_Download(t *testing.T) {
	n := newTestNative(nil)
	err := n.Download(context.Background(), "https://www.youtube.com/watch?v=a1", model.Options{}, nil)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestPlaylistTitle(t *testing.T) {
	tests := []struct {
		name     string
		titles   []string
		expected string
	}{
		{"no videos", nil, "Playlist PL1"},
		{"single video", []string{"Song"}, "Song Playlist"},
		{"long common prefix", []string{"Artist Name - Song A", "Artist Name - Song B"}, "Artist Name - Song Playlist"},
		{"short common prefix", []string{"Abc one", "Abc two"}, "Abc one Playlist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := playlistTitle("PL1", tt.titles); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected string
	}{
		{"hello world", "hello there", "hello "},
		{"same", "same", "same"},
		{"abc", "xyz", ""},
		{"", "abc", ""},
		{"Şarkı bir", "Şarkı iki", "Şarkı "},
	}

	for _, tt := range tests {
		if got := commonPrefix(tt.s1, tt.s2); got != tt.expected {
			t.Errorf("commonPrefix(%q, %q) = %q, expected %q", tt.s1, tt.s2, got, tt.expected)
		}
	}
}

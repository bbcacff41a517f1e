package model

import "testing"

func TestNewMediaItemInfo(t *testing.T) {
	tests := []struct {
		name             string
		title            string
		seconds          int
		expectedTitle    string
		expectedDuration string
	}{
		{"full metadata", "Video Title", 125, "Video Title", "02:05"},
		{"missing title", "", 3725, DefaultTitle, "01:02:05"},
		{"missing duration", "Clip", 0, "Clip", DefaultDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewMediaItemInfo(tt.title, "https://youtube.com/watch?v=1", tt.seconds)
			if item.Title != tt.expectedTitle {
				t.Errorf("expected title %q, got %q", tt.expectedTitle, item.Title)
			}
			if item.DurationDisplay != tt.expectedDuration {
				t.Errorf("expected duration %q, got %q", tt.expectedDuration, item.DurationDisplay)
			}
			if !item.Selected {
				t.Error("new items should be selected")
			}
			if item.ID == "" {
				t.Error("expected an identifier")
			}
		})
	}
}

func TestMediaItemInfo_IdentifierIsPerItem(t *testing.T) {
	a := NewMediaItemInfo("Same Title", "https://youtube.com/watch?v=a", 10)
	b := NewMediaItemInfo("Same Title", "https://youtube.com/watch?v=b", 10)
	if a.ID == b.ID {
		t.Error("items sharing a title must still have distinct IDs")
	}
}

func TestSelectionSummary(t *testing.T) {
	a := NewMediaItemInfo("A", "u1", 125)
	b := NewMediaItemInfo("B", "u2", 60)
	c := NewMediaItemInfo("C", "u3", 3600)
	c.SetSelected(false)
	d := &MediaItemInfo{Title: "D", DurationDisplay: "01:00", Selected: true}

	count, seconds := SelectionSummary([]*MediaItemInfo{a, b, c, nil, d})
	if count != 3 {
		t.Errorf("expected 3 selected items, got %d", count)
	}
	if seconds != 125+60+60 {
		t.Errorf("expected %d seconds, got %d", 125+60+60, seconds)
	}

	if got := SelectedItems([]*MediaItemInfo{c}); len(got) != 0 {
		t.Errorf("expected no selected items, got %d", len(got))
	}
}

func TestProgressEvent_Percent(t *testing.T) {
	tests := []struct {
		current, total int64
		expected       int
	}{
		{0, 100, 0},
		{55, 100, 55},
		{512, 1024, 50},
		{10, 0, 0},
		{10, -1, 0},
	}
	for _, tt := range tests {
		p := ProgressEvent{Current: tt.current, Total: tt.total}
		if got := p.Percent(); got != tt.expected {
			t.Errorf("Percent(%d/%d) = %d, expected %d", tt.current, tt.total, got, tt.expected)
		}
	}
}

package model

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{-5, "00:00"},
		{0, "00:00"},
		{30, "00:30"},
		{125, "02:05"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
		{7323, "02:02:03"},
	}

	for _, test := range tests {
		result := FormatDuration(test.seconds)
		if result != test.expected {
			t.Errorf("FormatDuration(%d) = %s, expected %s", test.seconds, result, test.expected)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"02:05", 125},
		{"01:02:05", 3725},
		{"00:00", 0},
		{"", 0},
		{"Unknown", 0},
		{"1:2:3:4", 0},
		{"aa:bb", 0},
	}

	for _, test := range tests {
		result := ParseDuration(test.input)
		if result != test.expected {
			t.Errorf("ParseDuration(%q) = %d, expected %d", test.input, result, test.expected)
		}
	}
}

func TestFormatDurationRoundTrip(t *testing.T) {
	for _, seconds := range []int{0, 59, 60, 125, 3599, 3600, 3725, 86399} {
		if got := ParseDuration(FormatDuration(seconds)); got != seconds {
			t.Errorf("ParseDuration(FormatDuration(%d)) = %d", seconds, got)
		}
	}
}

func TestFormatETA(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{30, "00:30"},
		{90, "01:30"},
		{3661, "01:01:01"},
	}

	for _, test := range tests {
		result := FormatETA(test.etaSec)
		if result != test.expected {
			t.Errorf("FormatETA(%d) = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size     float64
		expected string
	}{
		{0, "0.0 B"},
		{512, "512.0 B"},
		{1023, "1023.0 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2.0 TB"},
	}

	for _, test := range tests {
		result := FormatBytes(test.size)
		if result != test.expected {
			t.Errorf("FormatBytes(%v) = %s, expected %s", test.size, result, test.expected)
		}
	}
}

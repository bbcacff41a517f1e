package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Time formatting constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
	UnknownETA       = "—"
)

// Byte size units, each step divides by 1024
var byteUnits = []string{"B", "KB", "MB", "GB"}

// FormatDuration formats seconds as mm:ss, or hh:mm:ss from one hour up
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// ParseDuration converts "mm:ss" or "hh:mm:ss" back to seconds; anything else is 0
func ParseDuration(s string) int {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// FormatETA formats remaining seconds, or "—" when unknown
func FormatETA(seconds int) string {
	if seconds <= 0 {
		return UnknownETA
	}
	return FormatDuration(seconds)
}

// FormatBytes renders a byte count with a binary prefix and one decimal place
func FormatBytes(size float64) string {
	for _, unit := range byteUnits {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

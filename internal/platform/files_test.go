package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	// Should end with "Downloads"
	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestOpenFolder_NonExistentFolder(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	err := OpenFolder(missing)
	if err == nil {
		t.Fatal("Expected error for non-existent folder, got nil")
	}
	if !strings.Contains(err.Error(), "folder does not exist") {
		t.Errorf("Error message should contain 'folder does not exist', got: %v", err)
	}
}

func TestOpenFolder_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	if err := OpenFolder(file); err == nil {
		t.Error("Expected error when opening a regular file as folder")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain title", "My Video", "My Video"},
		{"path separators", "AC/DC - Back\\In Black", "AC_DC - Back_In Black"},
		{"reserved characters", `What? "Yes": <no>|*`, "What_ _Yes__ _no___"},
		{"control characters", "line\nbreak\ttab", "line_break_tab"},
		{"trailing dots", "ends with dots...", "ends with dots"},
		{"unicode kept", "Şarkı – Müzik", "Şarkı – Müzik"},
		{"empty", "", "untitled"},
		{"only separator", "/", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeFilename_Length(t *testing.T) {
	long := strings.Repeat("ü", MaxFilenameLength+50)
	got := SanitizeFilename(long)
	if n := len([]rune(got)); n != MaxFilenameLength {
		t.Errorf("Expected %d runes, got %d", MaxFilenameLength, n)
	}
}

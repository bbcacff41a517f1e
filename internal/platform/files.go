package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// Filename limits
const (
	MaxFilenameLength = 200
	ReplacementRune   = '_'
)

// reservedRunes cannot appear in a filename on at least one supported OS
const reservedRunes = `/\:*?"<>|`

// OpenFolder opens a directory in the system file manager
func OpenFolder(dirPath string) error {
	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("folder does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a folder: %s", absPath)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Start()
	case OSWindows:
		return exec.Command(ExplorerCommand, absPath).Start()
	case OSLinux:
		return openFolderLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFolderLinux tries xdg-open first, then common file managers
func openFolderLinux(dir string) error {
	if _, err := exec.LookPath(XDGOpenCommand); err == nil {
		return exec.Command(XDGOpenCommand, dir).Start()
	}
	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Start()
		}
	}
	return fmt.Errorf("no suitable file manager found")
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// SanitizeFilename replaces path separators, reserved and control characters,
// trims trailing dots and spaces, and caps the length.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
			b.WriteRune(ReplacementRune)
		case strings.ContainsRune(reservedRunes, r):
			b.WriteRune(ReplacementRune)
		default:
			b.WriteRune(r)
		}
	}

	clean := strings.TrimRight(strings.TrimSpace(b.String()), ". ")
	if clean == "" || clean == string(ReplacementRune) {
		return "untitled"
	}

	runes := []rune(clean)
	if len(runes) > MaxFilenameLength {
		clean = string(runes[:MaxFilenameLength])
	}
	return clean
}

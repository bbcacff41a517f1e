package platform

// Package platform contains OS and locator glue: playlist URL detection,
// filesystem helpers, filename sanitization and revealing folders in the
// system file manager.

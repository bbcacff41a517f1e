package download

// Package download runs media downloads through the extraction engine as
// background tasks, one per item, and turns the engine's raw progress samples
// into transfer statistics (speed, ETA, percent) for the UI and CLI.

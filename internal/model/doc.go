package model

// Package model defines domain data structures shared by the coordinators,
// the dispatcher and the UI: job descriptors and engine options, normalized
// media metadata, task events and status enums, plus the display helpers
// that turn raw numbers (seconds, bytes) into labels.

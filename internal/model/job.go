package model

import (
	"fmt"

	"github.com/google/uuid"
)

// JobMode tells the engine whether to fetch metadata or media
type JobMode string

const (
	ModeProbe    JobMode = "probe"
	ModeDownload JobMode = "download"
)

// PostProcessorKind selects what the engine does with a finished download
type PostProcessorKind string

const (
	// PostProcessExtractAudio converts the download to an audio-only file
	PostProcessExtractAudio PostProcessorKind = "extract_audio"

	// PostProcessRemuxVideo rewraps the streams into another container without re-encoding
	PostProcessRemuxVideo PostProcessorKind = "remux_video"
)

// PostProcessorSpec describes one post-processing step.
// Codec is the target audio codec or video container, Quality is only
// meaningful for audio extraction (e.g. "192").
type PostProcessorSpec struct {
	Kind    PostProcessorKind
	Codec   string
	Quality string
}

// Options enumerates the engine settings the application knows about
type Options struct {
	IgnoreErrors      bool
	Quiet             bool
	NoWarnings        bool
	ListFlat          bool // list playlist entries without resolving each one
	NoPlaylist        bool // treat a locator carrying a playlist as a single item
	FormatSelector    string
	OutputTemplate    string
	RestrictFilenames bool
	PostProcessors    []PostProcessorSpec
}

// Clone returns a deep copy of the options
func (o Options) Clone() Options {
	c := o
	if o.PostProcessors != nil {
		c.PostProcessors = make([]PostProcessorSpec, len(o.PostProcessors))
		copy(c.PostProcessors, o.PostProcessors)
	}
	return c
}

// JobDescriptor is an immutable record of what to fetch
type JobDescriptor struct {
	id      string
	locator string
	mode    JobMode
	options Options
}

// NewJobDescriptor creates a descriptor owning a private copy of opts
func NewJobDescriptor(locator string, mode JobMode, opts Options) JobDescriptor {
	return JobDescriptor{
		id:      uuid.NewString(),
		locator: locator,
		mode:    mode,
		options: opts.Clone(),
	}
}

// ID returns the descriptor identifier
func (j JobDescriptor) ID() string { return j.id }

// Locator returns the URL to fetch
func (j JobDescriptor) Locator() string { return j.locator }

// Mode returns probe or download
func (j JobDescriptor) Mode() JobMode { return j.mode }

// Options returns a copy of the engine options
func (j JobDescriptor) Options() Options { return j.options.Clone() }

// String implements fmt.Stringer for logging
func (j JobDescriptor) String() string {
	return fmt.Sprintf("%s %s", j.mode, j.locator)
}

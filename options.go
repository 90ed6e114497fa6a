package carousel

import (
	"github.com/tsawler/carousel/logger"
	"github.com/tsawler/carousel/reader"
)

// Mode selects how page-level extraction failures are treated.
type Mode string

const (
	// ModeStrict fails the whole operation on the first page error.
	ModeStrict Mode = "strict"

	// ModeBestEffort substitutes empty text for pages that fail and
	// keeps going. The error is logged (and, in the Processor, recorded
	// per page) instead of aborting the document.
	ModeBestEffort Mode = "best-effort"
)

// docOptions holds the configuration assembled from Options at open time.
type docOptions struct {
	inlineLimit int
	scratchDir  string
	maxDepth    int
	mode        Mode
	logFn       logger.LogFunc
}

// defaultDocOptions returns the options used when none are given: strict
// extraction with the reader's standard spill threshold and resolve depth.
func defaultDocOptions() docOptions {
	return docOptions{
		inlineLimit: reader.DefaultInlineStreamLimit,
		maxDepth:    100,
		mode:        ModeStrict,
	}
}

// Option configures a Document at open time.
type Option func(*docOptions)

// WithInlineStreamLimit sets the stream payload size above which data is
// spilled to scratch storage instead of being held in memory.
func WithInlineStreamLimit(n int) Option {
	return func(o *docOptions) {
		o.inlineLimit = n
	}
}

// WithScratchDir places spilled stream payloads under dir instead of the
// system temporary directory.
func WithScratchDir(dir string) Option {
	return func(o *docOptions) {
		o.scratchDir = dir
	}
}

// WithMaxResolveDepth sets the recursion limit for deep reference
// resolution (default: 100).
func WithMaxResolveDepth(depth int) Option {
	return func(o *docOptions) {
		o.maxDepth = depth
	}
}

// WithMode selects strict or best-effort handling of page extraction
// failures (default: ModeStrict).
func WithMode(mode Mode) Option {
	return func(o *docOptions) {
		o.mode = mode
	}
}

// WithLogger installs f as the package logger. The logger is shared
// process-wide; passing it here just ties installation to open time.
func WithLogger(f logger.LogFunc) Option {
	return func(o *docOptions) {
		o.logFn = f
	}
}

// buildDocOptions applies opts over the defaults and installs the logger
// when one was given.
func buildDocOptions(opts []Option) docOptions {
	o := defaultDocOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logFn != nil {
		logger.SetLogger(o.logFn)
	}
	return o
}

// readerOptions converts the document options into reader options.
func (o docOptions) readerOptions() []reader.Option {
	ropts := []reader.Option{
		reader.WithInlineStreamLimit(o.inlineLimit),
		reader.WithMaxResolveDepth(o.maxDepth),
	}
	if o.scratchDir != "" {
		ropts = append(ropts, reader.WithScratchDir(o.scratchDir))
	}
	return ropts
}

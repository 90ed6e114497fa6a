package carousel

import (
	"github.com/go-playground/validator/v10"

	"github.com/tsawler/carousel/logger"
	"github.com/tsawler/carousel/reader"
)

// Config bounds the batch Processor and the per-document readers it opens.
type Config struct {
	// MaxConcurrentDocuments caps how many documents are processed at
	// once. Each in-flight document holds its own reader and caches.
	MaxConcurrentDocuments int `validate:"min=1,max=64"`

	// InlineStreamLimit is the stream payload size in bytes above which
	// data is spilled to scratch storage instead of held in memory.
	InlineStreamLimit int `validate:"min=0"`

	// MaxResolveDepth bounds recursive reference resolution.
	MaxResolveDepth int `validate:"min=1,max=1000"`

	// Mode selects strict or best-effort handling of page failures.
	Mode Mode `validate:"oneof=strict best-effort"`

	// ScratchDir places spilled stream payloads under this directory.
	// Empty means the system temporary directory.
	ScratchDir string

	// Logger receives debug and error events. Nil leaves the installed
	// logger in place.
	Logger logger.LogFunc
}

// NewDefaultConfig returns a config suited to batch workloads: a few
// documents in flight, best-effort page handling.
func NewDefaultConfig() Config {
	return Config{
		MaxConcurrentDocuments: 4,
		InlineStreamLimit:      reader.DefaultInlineStreamLimit,
		MaxResolveDepth:        100,
		Mode:                   ModeBestEffort,
	}
}

// Validate checks the config against its declared bounds.
func (cfg Config) Validate() error {
	validate := validator.New()
	return validate.Struct(cfg)
}

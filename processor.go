package carousel

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/tsawler/carousel/logger"
)

// ExtractorStrategy defines how to extract text from a single page.
// Strategies differ in how failures are treated (strict vs. best-effort).
type ExtractorStrategy interface {
	ExtractPage(doc *Document, index int) (string, error)
}

// StrictExtractor propagates every page failure to the caller.
type StrictExtractor struct{}

func (StrictExtractor) ExtractPage(doc *Document, index int) (string, error) {
	return doc.PageText(index)
}

// BestEffortExtractor tolerates page failures: the error is still
// returned for bookkeeping, but the page's text becomes the empty string
// so extraction can continue.
type BestEffortExtractor struct{}

func (BestEffortExtractor) ExtractPage(doc *Document, index int) (string, error) {
	text, err := doc.PageText(index)
	if err != nil {
		logger.Debug("best-effort: page extraction failed, substituting empty text", "page", index+1, "err", err)
		return "", err
	}
	return text, nil
}

// Result is the outcome of extracting one document.
type Result struct {
	// Path is the input path this result belongs to.
	Path string

	// Text is the extracted text, pages separated by blank lines.
	Text string

	// PageErrors maps 1-indexed page numbers to their extraction
	// failures. Populated only in best-effort mode; those pages
	// contribute no text.
	PageErrors map[int]error

	// Err is set when the document as a whole failed: the file could not
	// be opened, a page failed in strict mode, or the context was
	// cancelled before the document finished.
	Err error
}

// Processor extracts text from batches of documents concurrently. Each
// document is confined to one goroutine, since reader caches are not safe
// for concurrent use; the semaphore bounds how many documents are in
// flight at once.
type Processor struct {
	cfg       Config
	sem       *semaphore.Weighted
	extractor ExtractorStrategy
}

// NewProcessor validates the config and creates a Processor using the
// extraction strategy its Mode selects.
func NewProcessor(cfg Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var extractor ExtractorStrategy
	switch cfg.Mode {
	case ModeStrict:
		extractor = StrictExtractor{}
	case ModeBestEffort:
		extractor = BestEffortExtractor{}
	}

	if cfg.Logger != nil {
		logger.SetLogger(cfg.Logger)
	}

	logger.Debug("processor initialized",
		"mode", cfg.Mode, "max_concurrent_documents", cfg.MaxConcurrentDocuments)

	return &Processor{
		cfg:       cfg,
		sem:       semaphore.NewWeighted(int64(cfg.MaxConcurrentDocuments)),
		extractor: extractor,
	}, nil
}

// Process extracts text from every path and returns the results in input
// order regardless of completion order. Cancelling the context marks the
// results of documents that never started with the context's error; the
// same error is also returned.
func (p *Processor) Process(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			logger.Debug("failed to acquire document slot", "path", path, "err", err)
			for j := i; j < len(paths); j++ {
				results[j] = Result{Path: paths[j], Err: err}
			}
			break
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer p.sem.Release(1)
			results[i] = p.extractDocument(ctx, path)
		}(i, path)
	}
	wg.Wait()

	return results, ctx.Err()
}

// ProcessStream extracts documents concurrently and emits results on the
// returned channel in input order: a finished document is held back until
// every earlier one has been emitted. The channel closes after the last
// result.
func (p *Processor) ProcessStream(ctx context.Context, paths []string) <-chan Result {
	out := make(chan Result)
	results := make(chan indexedResult, len(paths))

	go func() {
		var wg sync.WaitGroup
		for i, path := range paths {
			if err := p.sem.Acquire(ctx, 1); err != nil {
				logger.Debug("failed to acquire document slot", "path", path, "err", err)
				for j := i; j < len(paths); j++ {
					results <- indexedResult{j, Result{Path: paths[j], Err: err}}
				}
				break
			}

			wg.Add(1)
			go func(i int, path string) {
				defer wg.Done()
				defer p.sem.Release(1)
				results <- indexedResult{i, p.extractDocument(ctx, path)}
			}(i, path)
		}
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(out)
		emitInOrder(results, out)
	}()

	return out
}

type indexedResult struct {
	index  int
	result Result
}

// emitInOrder forwards results in input order: each arrival is parked
// until every earlier index has been emitted.
func emitInOrder(results <-chan indexedResult, out chan<- Result) {
	parked := make(map[int]Result)
	next := 0
	for res := range results {
		parked[res.index] = res.result
		for {
			r, ok := parked[next]
			if !ok {
				break
			}
			out <- r
			delete(parked, next)
			next++
		}
	}
}

// extractDocument opens one document and extracts its pages sequentially.
// The document gets a Reader of its own: object and page caches are
// mutated during extraction and must not be shared across goroutines.
func (p *Processor) extractDocument(ctx context.Context, path string) Result {
	result := Result{Path: path}

	doc, err := Open(path, p.documentOptions()...)
	if err != nil {
		result.Err = err
		return result
	}
	defer doc.Close()

	count, err := doc.PageCount()
	if err != nil {
		result.Err = err
		return result
	}

	var sb strings.Builder
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}

		text, err := p.extractor.ExtractPage(doc, i)
		if err != nil {
			if p.cfg.Mode == ModeStrict {
				result.Err = fmt.Errorf("page %d: %w", i+1, err)
				return result
			}
			if result.PageErrors == nil {
				result.PageErrors = make(map[int]error)
			}
			result.PageErrors[i+1] = err
			continue
		}

		if sb.Len() > 0 && len(text) > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	result.Text = sb.String()
	return result
}

// documentOptions converts the processor config into per-document options.
func (p *Processor) documentOptions() []Option {
	opts := []Option{
		WithInlineStreamLimit(p.cfg.InlineStreamLimit),
		WithMaxResolveDepth(p.cfg.MaxResolveDepth),
		WithMode(p.cfg.Mode),
	}
	if p.cfg.ScratchDir != "" {
		opts = append(opts, WithScratchDir(p.cfg.ScratchDir))
	}
	return opts
}

package carousel

import (
	"fmt"
	"strings"
	"time"

	"github.com/tsawler/carousel/core"
	"github.com/tsawler/carousel/font"
	"github.com/tsawler/carousel/logger"
	"github.com/tsawler/carousel/pages"
	"github.com/tsawler/carousel/reader"
)

// Document is an open PDF document. It wraps a reader.Reader and exposes
// page access, text extraction, and document metadata. A Document is not
// safe for concurrent use: object and page caches are mutated on access.
type Document struct {
	reader     *reader.Reader
	ownsReader bool
	mode       Mode
	catalog    *pages.Catalog
}

// Open opens the PDF file at path.
//
// Example:
//
//	doc, err := carousel.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
func Open(path string, opts ...Option) (*Document, error) {
	o := buildDocOptions(opts)
	r, err := reader.Open(path, o.readerOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &Document{reader: r, ownsReader: true, mode: o.mode}, nil
}

// OpenBytes opens a PDF document held in memory.
func OpenBytes(data []byte, opts ...Option) (*Document, error) {
	o := buildDocOptions(opts)
	r, err := reader.NewReaderBytes(data, o.readerOptions()...)
	if err != nil {
		return nil, err
	}
	return &Document{reader: r, ownsReader: true, mode: o.mode}, nil
}

// FromReader wraps an already-open reader.Reader. The caller keeps
// ownership: Close on the returned Document does not close r. Reader-level
// options (spill threshold, scratch dir, resolve depth) have no effect
// here; only document-level ones such as WithMode apply.
func FromReader(r *reader.Reader, opts ...Option) *Document {
	o := buildDocOptions(opts)
	return &Document{reader: r, mode: o.mode}
}

// Close releases the document's resources, including scratch storage
// holding spilled stream payloads. It is safe to call Close multiple
// times. Documents created with FromReader leave the reader open.
func (d *Document) Close() error {
	if !d.ownsReader || d.reader == nil {
		return nil
	}
	err := d.reader.Close()
	d.reader = nil
	d.ownsReader = false
	return err
}

// Reader returns the underlying reader for callers that need the lower
// layer directly (object access, fragments, images).
func (d *Document) Reader() *reader.Reader {
	return d.reader
}

// Version returns the PDF version from the file header.
func (d *Document) Version() reader.PDFVersion {
	return d.reader.Version()
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() (int, error) {
	return d.reader.PageCount()
}

// Page returns the page at the given index (0-based).
func (d *Document) Page(index int) (*pages.Page, error) {
	return d.reader.GetPage(index)
}

// PageText extracts the text of the page at the given index (0-based),
// with line grouping and space insertion applied.
func (d *Document) PageText(index int) (string, error) {
	page, err := d.reader.GetPage(index)
	if err != nil {
		return "", err
	}
	return d.reader.ExtractText(page)
}

// Text extracts the text of every page, pages separated by blank lines.
// In strict mode (the default) the first failing page fails the whole
// extraction; in best-effort mode failing pages contribute no text.
//
// Example:
//
//	text, err := doc.Text()
func (d *Document) Text() (string, error) {
	count, err := d.PageCount()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 0; i < count; i++ {
		text, err := d.PageText(i)
		if err != nil {
			if d.mode == ModeBestEffort {
				logger.Debug("substituting empty text for failed page", "page", i+1, "err", err)
				continue
			}
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}

		if sb.Len() > 0 && len(text) > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

// Catalog returns the document catalog, built lazily on first use.
func (d *Document) Catalog() (*pages.Catalog, error) {
	if d.catalog != nil {
		return d.catalog, nil
	}

	dict, err := d.reader.GetCatalog()
	if err != nil {
		return nil, err
	}
	d.catalog = pages.NewCatalog(dict, d.reader)
	return d.catalog, nil
}

// IsTagged reports whether the document declares tagged-PDF markup
// (a catalog /MarkInfo dictionary with /Marked true).
func (d *Document) IsTagged() bool {
	catalog, err := d.Catalog()
	if err != nil {
		return false
	}
	return catalog.IsTagged()
}

// StructTreeRoot returns the document's structure tree root. For a
// document without one the returned error wraps core.ErrNotTaggedDocument
// so callers can test with errors.Is.
func (d *Document) StructTreeRoot() (core.Dict, error) {
	catalog, err := d.Catalog()
	if err != nil {
		return nil, err
	}
	return catalog.StructTreeRoot()
}

// Info holds the fields of the document information dictionary. Values
// are decoded as PDF text strings: UTF-16 when they carry a byte order
// mark, PDFDocEncoding otherwise. Absent entries are empty. Dates keep
// the raw PDF date form; ParseDate converts them.
type Info struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	CreationDate string
	ModDate      string
}

// Info returns the document information dictionary. A document without
// one yields a zero Info, not an error.
func (d *Document) Info() (*Info, error) {
	dict, err := d.reader.GetInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to read info dictionary: %w", err)
	}
	if dict == nil {
		return &Info{}, nil
	}

	return &Info{
		Title:        d.infoString(dict, "Title"),
		Author:       d.infoString(dict, "Author"),
		Subject:      d.infoString(dict, "Subject"),
		Keywords:     d.infoString(dict, "Keywords"),
		Creator:      d.infoString(dict, "Creator"),
		Producer:     d.infoString(dict, "Producer"),
		CreationDate: d.infoString(dict, "CreationDate"),
		ModDate:      d.infoString(dict, "ModDate"),
	}, nil
}

// infoString resolves one info entry and decodes it as a PDF text string.
// Anything that is not a string resolves to "".
func (d *Document) infoString(dict core.Dict, key string) string {
	obj := dict.Get(key)
	if obj == nil {
		return ""
	}

	resolved, err := d.reader.Resolve(obj)
	if err != nil {
		return ""
	}

	data, ok := core.StringBytes(resolved)
	if !ok {
		return ""
	}
	return font.DecodeTextString(data)
}

// ParseDate parses a PDF date string such as "D:20240310142359+01'00'".
// Everything after the year is optional; omitted fields default to their
// minimums and an omitted timezone means UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimPrefix(s, "D:")

	digits := func(from, n int) (int, bool) {
		if from+n > len(s) {
			return 0, false
		}
		v := 0
		for _, c := range s[from : from+n] {
			if c < '0' || c > '9' {
				return 0, false
			}
			v = v*10 + int(c-'0')
		}
		return v, true
	}

	year, ok := digits(0, 4)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date string %q: no year", s)
	}

	month, day := 1, 1
	var hour, min, sec int
	pos := 4
	for _, field := range []*int{&month, &day, &hour, &min, &sec} {
		v, ok := digits(pos, 2)
		if !ok {
			break
		}
		*field = v
		pos += 2
	}

	loc := time.UTC
	if pos < len(s) {
		switch s[pos] {
		case 'Z':
			// UTC
		case '+', '-':
			oh, ok := digits(pos+1, 2)
			if !ok {
				return time.Time{}, fmt.Errorf("invalid date string %q: bad timezone offset", s)
			}
			om := 0
			if pos+3 < len(s) && s[pos+3] == '\'' {
				om, _ = digits(pos+4, 2)
			}
			offset := (oh*60 + om) * 60
			if s[pos] == '-' {
				offset = -offset
			}
			loc = time.FixedZone("", offset)
		default:
			return time.Time{}, fmt.Errorf("invalid date string %q: unexpected %q after time", s, s[pos])
		}
	}

	return time.Date(year, time.Month(month), day, hour, min, sec, 0, loc), nil
}

// Must panics if err is non-nil, otherwise returns val. Intended for
// examples and tools where failing loudly is the right response.
//
// Example:
//
//	doc := carousel.Must(carousel.Open("document.pdf"))
//	defer doc.Close()
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

package reader

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/tsawler/carousel/core"
	"github.com/tsawler/carousel/logger"
	"github.com/tsawler/carousel/pages"
	"github.com/tsawler/carousel/resolver"
	"github.com/tsawler/carousel/text"
)

// PDFVersion represents a PDF version
type PDFVersion struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7")
func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// DefaultInlineStreamLimit is the payload size above which stream data is
// spilled to scratch storage instead of being kept in memory.
const DefaultInlineStreamLimit = 1 << 20

// Option configures a Reader
type Option func(*Reader)

// WithInlineStreamLimit sets the spill threshold for stream payloads.
// Payloads larger than n bytes are written to scratch storage.
func WithInlineStreamLimit(n int) Option {
	return func(r *Reader) {
		r.inlineLimit = n
	}
}

// WithScratchDir places spilled stream payloads under dir instead of the
// system temporary directory.
func WithScratchDir(dir string) Option {
	return func(r *Reader) {
		r.scratch = newScratchStore(dir)
	}
}

// WithMaxResolveDepth sets the recursion limit for deep resolution
// (default: 100)
func WithMaxResolveDepth(depth int) Option {
	return func(r *Reader) {
		r.maxDepth = depth
	}
}

// Reader represents a PDF document held in memory
type Reader struct {
	data        []byte
	xrefTable   *core.XRefTable
	trailer     core.Dict
	version     PDFVersion
	objCache    map[int]core.Object        // Cache for loaded objects
	objStmCache map[int]*core.ObjectStream // Cache for object stream containers
	loading     map[int]bool               // Objects currently being parsed
	scratch     *scratchStore
	inlineLimit int
	maxDepth    int
	resolver    *resolver.ObjectResolver
	pageTree    *pages.PageTree // Cached page tree
}

// Ensure Reader implements the resolver interfaces its collaborators need
var (
	_ pages.ObjectResolver   = (*Reader)(nil)
	_ core.ReferenceResolver = (*Reader)(nil)
	_ resolver.ObjectReader  = (*Reader)(nil)
)

// NewReader creates a new PDF reader from the full contents of r
func NewReader(rd io.Reader, opts ...Option) (*Reader, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return NewReaderBytes(data, opts...)
}

// NewReaderBytes creates a new PDF reader over an in-memory document
func NewReaderBytes(data []byte, opts ...Option) (*Reader, error) {
	reader := &Reader{
		data:        data,
		objCache:    make(map[int]core.Object),
		objStmCache: make(map[int]*core.ObjectStream),
		loading:     make(map[int]bool),
		inlineLimit: DefaultInlineStreamLimit,
		maxDepth:    100,
	}
	for _, opt := range opts {
		opt(reader)
	}
	if reader.scratch == nil {
		reader.scratch = newScratchStore("")
	}
	reader.resolver = resolver.NewResolver(reader, resolver.WithMaxDepth(reader.maxDepth))

	// Parse PDF header
	version, err := reader.parseHeader()
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	reader.version = version

	// Load XRef table
	xrefTable, err := reader.loadXRef()
	if err != nil {
		return nil, fmt.Errorf("failed to load xref: %w", err)
	}
	reader.xrefTable = xrefTable
	reader.trailer = xrefTable.Trailer

	return reader, nil
}

// Open opens a PDF file and returns a Reader
func Open(filename string, opts ...Option) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return NewReaderBytes(data, opts...)
}

// Close releases scratch storage holding spilled stream payloads. The
// Reader must not be used after Close: streams that were spilled can no
// longer be decoded.
func (r *Reader) Close() error {
	if r.scratch != nil {
		return r.scratch.Close()
	}
	return nil
}

// parseHeader parses the PDF header (%PDF-x.y)
func (r *Reader) parseHeader() (PDFVersion, error) {
	if len(r.data) < 8 {
		return PDFVersion{}, fmt.Errorf("header too short: %d bytes", len(r.data))
	}

	// Parse header format: %PDF-x.y
	headerStr := string(r.data[:8])
	if !strings.HasPrefix(headerStr, "%PDF-") {
		return PDFVersion{}, fmt.Errorf("invalid PDF header: %s", headerStr)
	}

	// Extract version
	versionStr := headerStr[5:] // After "%PDF-"
	re := regexp.MustCompile(`(\d+)\.(\d+)`)
	matches := re.FindStringSubmatch(versionStr)
	if len(matches) < 3 {
		return PDFVersion{}, fmt.Errorf("invalid version format: %s", versionStr)
	}

	var major, minor int
	fmt.Sscanf(matches[1], "%d", &major)
	fmt.Sscanf(matches[2], "%d", &minor)

	return PDFVersion{Major: major, Minor: minor}, nil
}

// loadXRef loads the cross-reference table, following the /Prev chain of
// incremental updates and merging so the newest entries win
func (r *Reader) loadXRef() (*core.XRefTable, error) {
	xrefParser := core.NewXRefParser(r.data)
	tables, err := xrefParser.ParseAllXRefs()
	if err != nil {
		return nil, fmt.Errorf("failed to parse xref: %w", err)
	}

	table := core.MergeXRefTables(tables...)
	logger.Debug(fmt.Sprintf("loaded xref: %d entries across %d sections", table.Size(), len(tables)))
	return table, nil
}

// Version returns the PDF version
func (r *Reader) Version() PDFVersion {
	return r.version
}

// Trailer returns the trailer dictionary
func (r *Reader) Trailer() core.Dict {
	return r.trailer
}

// GetObject loads an object by its number
// Uses caching to avoid re-reading objects
func (r *Reader) GetObject(objNum int) (core.Object, error) {
	// Check cache first
	if obj, ok := r.objCache[objNum]; ok {
		return obj, nil
	}

	// A stream Length that refers back to its own object would recurse
	// through here forever
	if r.loading[objNum] {
		return nil, fmt.Errorf("circular reference while loading object %d", objNum)
	}
	r.loading[objNum] = true
	defer delete(r.loading, objNum)

	// Look up in XRef table
	entry, ok := r.xrefTable.Get(objNum)
	if !ok {
		return nil, fmt.Errorf("object %d not found in xref table", objNum)
	}

	if !entry.InUse {
		return nil, fmt.Errorf("object %d is not in use", objNum)
	}

	var obj core.Object
	var err error
	if entry.Type == core.XRefEntryCompressed {
		obj, err = r.loadCompressedObject(objNum, entry)
	} else {
		obj, err = r.loadObjectAt(objNum, entry)
	}
	if err != nil {
		return nil, err
	}

	// Cache the object
	r.objCache[objNum] = obj

	return obj, nil
}

// loadObjectAt parses the indirect object at the entry's byte offset
func (r *Reader) loadObjectAt(objNum int, entry *core.XRefEntry) (core.Object, error) {
	logger.Debug(fmt.Sprintf("loading object %d at offset %d", objNum, entry.Offset))

	parser := core.NewParser(r.data)
	parser.SetReferenceResolver(r)
	parser.SetStreamStore(r.scratch, r.inlineLimit)
	if err := parser.Seek(int(entry.Offset)); err != nil {
		return nil, fmt.Errorf("failed to seek to object %d: %w", objNum, err)
	}

	// Parse the indirect object
	indObj, err := parser.ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("failed to parse object %d: %w", objNum, err)
	}

	// Verify object number matches
	if indObj.Ref.Number != objNum {
		return nil, fmt.Errorf("object number mismatch: expected %d, got %d", objNum, indObj.Ref.Number)
	}

	return indObj.Object, nil
}

// loadCompressedObject loads an object stored inside an object stream. For
// compressed entries the xref Offset field holds the container's object
// number and Generation the member index.
func (r *Reader) loadCompressedObject(objNum int, entry *core.XRefEntry) (core.Object, error) {
	container := int(entry.Offset)
	objStm, err := r.objectStream(container)
	if err != nil {
		return nil, fmt.Errorf("failed to load object stream %d for object %d: %w", container, objNum, err)
	}

	obj, num, err := objStm.GetObjectByIndex(entry.Generation)
	if err == nil && num == objNum {
		return obj, nil
	}

	// The recorded index did not pan out; scan the container's member
	// table for the number instead
	logger.Debug(fmt.Sprintf("object %d not at index %d of object stream %d, scanning", objNum, entry.Generation, container))
	obj, _, err = objStm.GetObjectByNumber(objNum)
	if err != nil {
		return nil, fmt.Errorf("object %d not found in object stream %d: %w", objNum, container, err)
	}
	return obj, nil
}

// objectStream returns the parsed object stream container with the given
// object number, loading and caching it on first use
func (r *Reader) objectStream(objNum int) (*core.ObjectStream, error) {
	if objStm, ok := r.objStmCache[objNum]; ok {
		return objStm, nil
	}

	obj, err := r.GetObject(objNum)
	if err != nil {
		return nil, err
	}
	stream, ok := obj.(*core.Stream)
	if !ok {
		return nil, fmt.Errorf("object %d is not a stream: %T", objNum, obj)
	}

	objStm, err := core.NewObjectStream(stream)
	if err != nil {
		return nil, err
	}
	r.objStmCache[objNum] = objStm
	return objStm, nil
}

// ResolveReference resolves an indirect reference
func (r *Reader) ResolveReference(ref core.IndirectRef) (core.Object, error) {
	return r.GetObject(ref.Number)
}

// GetCatalog returns the document catalog (root object)
func (r *Reader) GetCatalog() (core.Dict, error) {
	rootRef := r.trailer.Get("Root")
	if rootRef == nil {
		return nil, fmt.Errorf("trailer missing /Root entry")
	}

	ref, ok := rootRef.(core.IndirectRef)
	if !ok {
		return nil, fmt.Errorf("invalid /Root type: %T", rootRef)
	}

	obj, err := r.ResolveReference(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog: %w", err)
	}

	catalog, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("catalog is not a dictionary: %T", obj)
	}

	return catalog, nil
}

// GetInfo returns the document info dictionary (metadata)
func (r *Reader) GetInfo() (core.Dict, error) {
	infoRef := r.trailer.Get("Info")
	if infoRef == nil {
		return nil, nil // Info is optional
	}

	ref, ok := infoRef.(core.IndirectRef)
	if !ok {
		return nil, fmt.Errorf("invalid /Info type: %T", infoRef)
	}

	obj, err := r.ResolveReference(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve info: %w", err)
	}

	info, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("info is not a dictionary: %T", obj)
	}

	return info, nil
}

// NumObjects returns the total number of objects in the PDF
func (r *Reader) NumObjects() int {
	sizeObj := r.trailer.Get("Size")
	if sizeObj == nil {
		return 0
	}

	size, ok := sizeObj.(core.Int)
	if !ok {
		return 0
	}

	return int(size)
}

// FileSize returns the size of the PDF document in bytes
func (r *Reader) FileSize() int64 {
	return int64(len(r.data))
}

// XRefTable returns the cross-reference table
// Exposed for debugging/inspection
func (r *Reader) XRefTable() *core.XRefTable {
	return r.xrefTable
}

// ClearCache clears the object caches
// Useful for freeing memory when processing large PDFs
func (r *Reader) ClearCache() {
	r.objCache = make(map[int]core.Object)
	r.objStmCache = make(map[int]*core.ObjectStream)
}

// CacheSize returns the number of cached objects
func (r *Reader) CacheSize() int {
	return len(r.objCache)
}

// ObjectStreamCacheSize returns the number of cached object stream containers
func (r *Reader) ObjectStreamCacheSize() int {
	return len(r.objStmCache)
}

// Resolve resolves an object if it's an indirect reference, otherwise returns it as-is
// Implements pages.ObjectResolver interface
func (r *Reader) Resolve(obj core.Object) (core.Object, error) {
	return r.resolver.Resolve(obj)
}

// ResolveDeep recursively resolves all indirect references in an object
// Implements pages.ObjectResolver interface
func (r *Reader) ResolveDeep(obj core.Object) (core.Object, error) {
	return r.resolver.ResolveDeep(obj)
}

// PageCount returns the number of pages in the PDF
func (r *Reader) PageCount() (int, error) {
	if err := r.ensurePageTree(); err != nil {
		return 0, err
	}
	return r.pageTree.Count()
}

// GetPage returns the page at the given index (0-based)
func (r *Reader) GetPage(index int) (*pages.Page, error) {
	if err := r.ensurePageTree(); err != nil {
		return nil, err
	}
	return r.pageTree.GetPage(index)
}

// ensurePageTree loads the page tree if not already loaded
func (r *Reader) ensurePageTree() error {
	if r.pageTree != nil {
		return nil
	}

	// Get catalog
	catalog, err := r.GetCatalog()
	if err != nil {
		return fmt.Errorf("failed to get catalog: %w", err)
	}

	// Get pages dict
	pagesRef := catalog.Get("Pages")
	if pagesRef == nil {
		return fmt.Errorf("catalog missing /Pages entry")
	}

	pagesObj, err := r.Resolve(pagesRef)
	if err != nil {
		return fmt.Errorf("failed to resolve pages: %w", err)
	}

	pagesDict, ok := pagesObj.(core.Dict)
	if !ok {
		return fmt.Errorf("pages is not a dictionary: %T", pagesObj)
	}

	// Create page tree
	r.pageTree = pages.NewPageTree(pagesDict, r)
	return nil
}

// runExtractor decodes the page's content streams, registers its fonts and
// runs text extraction over the concatenated bytes. Returns nil for a page
// with no content.
func (r *Reader) runExtractor(page *pages.Page) (*text.Extractor, error) {
	// Get content streams
	contents, err := page.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to get contents: %w", err)
	}
	if len(contents) == 0 {
		return nil, nil // Empty page
	}

	// Decode and concatenate all content streams
	var allData []byte
	for _, stream := range contents {
		data, err := stream.Decoded()
		if err != nil {
			return nil, fmt.Errorf("failed to decode content stream: %w", err)
		}
		allData = append(allData, data...)
	}

	if len(allData) == 0 {
		return nil, nil
	}

	// Create extractor and register fonts
	extractor := text.NewExtractor()

	// Register fonts from page resources
	resolverFunc := func(ref core.IndirectRef) (core.Object, error) {
		return r.ResolveReference(ref)
	}
	if err := extractor.RegisterFontsFromPage(page, resolverFunc); err != nil {
		// Non-fatal: fall back to default font handling
		logger.Debug(fmt.Sprintf("font registration failed: %v", err))
	}

	if _, err := extractor.ExtractFromBytes(allData); err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	return extractor, nil
}

// ExtractTextFragments extracts text fragments from a page
// This is a convenience method that handles content stream decoding and font registration
func (r *Reader) ExtractTextFragments(page *pages.Page) ([]text.TextFragment, error) {
	extractor, err := r.runExtractor(page)
	if err != nil || extractor == nil {
		return nil, err
	}
	return extractor.GetFragments(), nil
}

// ExtractText extracts the text content of a page as a single string,
// with line grouping and space insertion applied
func (r *Reader) ExtractText(page *pages.Page) (string, error) {
	extractor, err := r.runExtractor(page)
	if err != nil || extractor == nil {
		return "", err
	}
	return extractor.GetText(), nil
}

package pages

import (
	"fmt"

	"github.com/tsawler/carousel/contentstream"
	"github.com/tsawler/carousel/core"
	"github.com/tsawler/carousel/font"
)

// maxTreeDepth bounds page tree traversal and parent chain walks so a
// cyclic Kids or Parent link cannot recurse forever.
const maxTreeDepth = 64

// ObjectResolver interface for resolving indirect references
type ObjectResolver interface {
	Resolve(obj core.Object) (core.Object, error)
	ResolveDeep(obj core.Object) (core.Object, error)
	ResolveReference(ref core.IndirectRef) (core.Object, error)
}

// Catalog represents the PDF document catalog (root of document structure)
type Catalog struct {
	dict     core.Dict
	resolver ObjectResolver
}

// NewCatalog creates a new catalog from a dictionary
func NewCatalog(dict core.Dict, resolver ObjectResolver) *Catalog {
	return &Catalog{
		dict:     dict,
		resolver: resolver,
	}
}

// Type returns the catalog type (should be "Catalog")
func (c *Catalog) Type() string {
	if name, ok := c.dict.GetName("Type"); ok {
		return string(name)
	}
	return ""
}

// Pages returns the page tree root
func (c *Catalog) Pages() (core.Dict, error) {
	pagesRef := c.dict.Get("Pages")
	if pagesRef == nil {
		return nil, fmt.Errorf("catalog missing /Pages entry")
	}

	pagesObj, err := c.resolver.Resolve(pagesRef)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve /Pages: %w", err)
	}

	pagesDict, ok := pagesObj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("invalid /Pages type: %T", pagesObj)
	}

	return pagesDict, nil
}

// Metadata returns the metadata stream if present
func (c *Catalog) Metadata() (*core.Stream, error) {
	metadataRef := c.dict.Get("Metadata")
	if metadataRef == nil {
		return nil, nil // Optional
	}

	metadataObj, err := c.resolver.Resolve(metadataRef)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve /Metadata: %w", err)
	}

	stream, ok := metadataObj.(*core.Stream)
	if !ok {
		return nil, fmt.Errorf("invalid /Metadata type: %T", metadataObj)
	}

	return stream, nil
}

// Version returns the version entry if present
func (c *Catalog) Version() string {
	if name, ok := c.dict.GetName("Version"); ok {
		return string(name)
	}
	return ""
}

// IsTagged reports whether the document declares tagged-PDF markup:
// a /MarkInfo dictionary with /Marked true.
func (c *Catalog) IsTagged() bool {
	markInfoObj := c.dict.Get("MarkInfo")
	if markInfoObj == nil {
		return false
	}

	resolved, err := c.resolver.Resolve(markInfoObj)
	if err != nil {
		return false
	}

	markInfo, ok := resolved.(core.Dict)
	if !ok {
		return false
	}

	marked, ok := markInfo.GetBool("Marked")
	return ok && bool(marked)
}

// StructTreeRoot returns the document's structure tree root. A document
// without one is not tagged; the returned error wraps
// core.ErrNotTaggedDocument so callers can test with errors.Is.
func (c *Catalog) StructTreeRoot() (core.Dict, error) {
	rootObj := c.dict.Get("StructTreeRoot")
	if rootObj == nil {
		return nil, fmt.Errorf("catalog has no structure tree: %w", core.ErrNotTaggedDocument)
	}

	resolved, err := c.resolver.Resolve(rootObj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve /StructTreeRoot: %w", err)
	}

	rootDict, ok := resolved.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("invalid /StructTreeRoot type: %T", resolved)
	}

	return rootDict, nil
}

// PageTree represents the PDF page tree
type PageTree struct {
	root     core.Dict
	resolver ObjectResolver
	pages    []*Page // Cached flattened page list
}

// NewPageTree creates a new page tree from the root pages dictionary
func NewPageTree(root core.Dict, resolver ObjectResolver) *PageTree {
	return &PageTree{
		root:     root,
		resolver: resolver,
	}
}

// Count returns the total number of pages
func (t *PageTree) Count() (int, error) {
	countObj := t.root.Get("Count")
	if countObj == nil {
		return 0, fmt.Errorf("page tree missing /Count entry")
	}

	resolved, err := t.resolver.Resolve(countObj)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve /Count: %w", err)
	}

	count, ok := resolved.(core.Int)
	if !ok {
		return 0, fmt.Errorf("invalid /Count type: %T", resolved)
	}

	return int(count), nil
}

// GetPage returns the page at the given index (0-based)
func (t *PageTree) GetPage(index int) (*Page, error) {
	if t.pages == nil {
		if err := t.loadPages(); err != nil {
			return nil, err
		}
	}

	if index < 0 || index >= len(t.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(t.pages))
	}

	return t.pages[index], nil
}

// Pages returns all pages as a slice
func (t *PageTree) Pages() ([]*Page, error) {
	if t.pages == nil {
		if err := t.loadPages(); err != nil {
			return nil, err
		}
	}

	return t.pages, nil
}

// loadPages traverses the page tree and builds the flattened page list
func (t *PageTree) loadPages() error {
	t.pages = make([]*Page, 0)

	if err := t.traversePageNode(t.root, nil, 0); err != nil {
		return fmt.Errorf("failed to traverse page tree: %w", err)
	}

	return nil
}

// traversePageNode recursively traverses a page tree node. parent is the
// parent Pages dictionary, recorded on each leaf for inheritable attribute
// lookups when the page dict carries no Parent link of its own.
func (t *PageTree) traversePageNode(node core.Dict, parent core.Dict, depth int) error {
	if depth > maxTreeDepth {
		return fmt.Errorf("page tree deeper than %d levels", maxTreeDepth)
	}

	kind, _ := node.GetName("Type")
	if kind == "" {
		// Writers sometimes omit /Type on tree nodes; infer from /Kids.
		if node.Has("Kids") {
			kind = "Pages"
		} else {
			kind = "Page"
		}
	}

	switch string(kind) {
	case "Pages":
		kidsObj := node.Get("Kids")
		if kidsObj == nil {
			return fmt.Errorf("Pages node missing /Kids entry")
		}

		kidsResolved, err := t.resolver.Resolve(kidsObj)
		if err != nil {
			return fmt.Errorf("failed to resolve /Kids: %w", err)
		}

		kids, ok := kidsResolved.(core.Array)
		if !ok {
			return fmt.Errorf("invalid /Kids type: %T", kidsResolved)
		}

		for i, kidObj := range kids {
			kidResolved, err := t.resolver.Resolve(kidObj)
			if err != nil {
				return fmt.Errorf("failed to resolve kid %d: %w", i, err)
			}

			kidDict, ok := kidResolved.(core.Dict)
			if !ok {
				return fmt.Errorf("invalid kid type: %T", kidResolved)
			}

			if err := t.traversePageNode(kidDict, node, depth+1); err != nil {
				return err
			}
		}

	case "Page":
		t.pages = append(t.pages, NewPage(node, parent, t.resolver))

	default:
		return fmt.Errorf("unexpected page node type: %s", kind)
	}

	return nil
}

// Page represents a single PDF page. Content streams, decoded operations
// and font lookups are loaded lazily and cached on the page; the caches are
// never invalidated and are not safe for concurrent use.
type Page struct {
	dict     core.Dict
	parent   core.Dict // Parent Pages node recorded at traversal time
	resolver ObjectResolver

	contents       []*core.Stream
	contentsLoaded bool
	ops            []contentstream.Operation
	opsLoaded      bool
	fonts          map[string]*FontInfo
}

// NewPage creates a new page from a dictionary
func NewPage(dict core.Dict, parent core.Dict, resolver ObjectResolver) *Page {
	return &Page{
		dict:     dict,
		parent:   parent,
		resolver: resolver,
		fonts:    make(map[string]*FontInfo),
	}
}

// Type returns the page type (should be "Page")
func (p *Page) Type() string {
	if name, ok := p.dict.GetName("Type"); ok {
		return string(name)
	}
	return ""
}

// Dict returns the page's underlying dictionary.
func (p *Page) Dict() core.Dict {
	return p.dict
}

// inherited returns the first value for key found on the page or any
// ancestor. The walk follows Parent links upward (falling back to the
// parent node recorded at traversal time when the page dict carries none)
// and stops when the chain ends, a link fails to resolve to a dictionary,
// or the depth bound is hit.
func (p *Page) inherited(key string) core.Object {
	node := p.dict
	for depth := 0; node != nil && depth <= maxTreeDepth; depth++ {
		if v := node.Get(key); v != nil {
			return v
		}
		node = p.parentOf(node, depth == 0)
	}
	return nil
}

// parentOf resolves a node's Parent link. first marks the page's own dict,
// whose missing Parent entry falls back to the traversal-recorded parent.
func (p *Page) parentOf(node core.Dict, first bool) core.Dict {
	parentObj := node.Get("Parent")
	if parentObj == nil {
		if first {
			return p.parent
		}
		return nil
	}

	resolved, err := p.resolver.Resolve(parentObj)
	if err != nil {
		return nil // Parent resolves to nothing: the chain ends here
	}

	parentDict, ok := resolved.(core.Dict)
	if !ok {
		return nil
	}
	return parentDict
}

// MediaBox returns the page media box [x1 y1 x2 y2].
// This is inheritable through the parent chain.
func (p *Page) MediaBox() ([]float64, error) {
	return p.getBox("MediaBox")
}

// CropBox returns the page crop box [x1 y1 x2 y2].
// This is inheritable, defaults to MediaBox if not present.
func (p *Page) CropBox() ([]float64, error) {
	box, err := p.getBox("CropBox")
	if err != nil {
		// CropBox defaults to MediaBox
		return p.MediaBox()
	}
	return box, nil
}

// getBox retrieves a box attribute (inheritable)
func (p *Page) getBox(name string) ([]float64, error) {
	boxObj := p.inherited(name)
	if boxObj == nil {
		return nil, fmt.Errorf("%s not found", name)
	}

	boxResolved, err := p.resolver.Resolve(boxObj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
	}

	boxArr, ok := boxResolved.(core.Array)
	if !ok {
		return nil, fmt.Errorf("invalid %s type: %T", name, boxResolved)
	}

	if boxArr.Len() != 4 {
		return nil, fmt.Errorf("invalid %s length: %d (expected 4)", name, boxArr.Len())
	}

	box := make([]float64, 4)
	for i := range box {
		n, ok := boxArr.GetNumber(i)
		if !ok {
			return nil, fmt.Errorf("invalid %s element type: %T", name, boxArr.Get(i))
		}
		box[i] = n
	}

	return box, nil
}

// Resources returns the page resources dictionary.
// This is inheritable through the parent chain.
func (p *Page) Resources() (core.Dict, error) {
	resourcesObj := p.inherited("Resources")
	if resourcesObj == nil {
		return nil, fmt.Errorf("resources not found")
	}

	resourcesResolved, err := p.resolver.Resolve(resourcesObj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Resources: %w", err)
	}

	resourcesDict, ok := resourcesResolved.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("invalid Resources type: %T", resourcesResolved)
	}

	return resourcesDict, nil
}

// Rotate returns the page rotation (0, 90, 180, or 270).
// This is inheritable through the parent chain.
func (p *Page) Rotate() int {
	rotateObj := p.inherited("Rotate")
	if rotateObj == nil {
		return 0 // Default
	}

	resolved, err := p.resolver.Resolve(rotateObj)
	if err != nil {
		return 0
	}

	if rotate, ok := resolved.(core.Int); ok {
		return int(rotate)
	}

	return 0
}

// Contents returns the page's content streams in order. The Contents entry
// is a single stream/reference or an array of references; arrays are
// flattened, and entries that resolve to nothing (broken references, null,
// non-streams) are discarded. The result is cached on the page.
func (p *Page) Contents() ([]*core.Stream, error) {
	if p.contentsLoaded {
		return p.contents, nil
	}

	contentsObj := p.dict.Get("Contents")
	if contentsObj == nil {
		p.contentsLoaded = true
		return nil, nil // Contents is optional
	}

	contentsResolved, err := p.resolver.Resolve(contentsObj)
	if err != nil {
		// The raw entry is present but points at nothing usable.
		p.contentsLoaded = true
		return nil, nil
	}

	var streams []*core.Stream
	switch v := contentsResolved.(type) {
	case *core.Stream:
		streams = []*core.Stream{v}
	case core.Array:
		for _, elem := range v {
			resolved, err := p.resolver.Resolve(elem)
			if err != nil {
				continue // Discard entries that resolve to nothing
			}
			if stream, ok := resolved.(*core.Stream); ok {
				streams = append(streams, stream)
			}
		}
	default:
		return nil, fmt.Errorf("invalid Contents type: %T", contentsResolved)
	}

	p.contents = streams
	p.contentsLoaded = true
	return streams, nil
}

// IsEmpty reports whether the page has no content: nothing loaded and no
// raw Contents entry. A Contents entry that fails to resolve still counts
// as content, so a page with a broken reference is not empty.
func (p *Page) IsEmpty() bool {
	if len(p.contents) > 0 {
		return false
	}
	return p.dict.Get("Contents") == nil
}

// Operations decodes the page's content streams in order and parses the
// concatenated operator sequence. All streams accumulate into one shared
// operation list, which is cached on the page.
func (p *Page) Operations() ([]contentstream.Operation, error) {
	if p.opsLoaded {
		return p.ops, nil
	}

	streams, err := p.Contents()
	if err != nil {
		return nil, err
	}

	var ops []contentstream.Operation
	for i, stream := range streams {
		data, err := stream.Decoded()
		if err != nil {
			return nil, fmt.Errorf("failed to decode content stream %d: %w", i, err)
		}

		parsed, err := contentstream.NewParser(data).Parse()
		if err != nil {
			return nil, fmt.Errorf("failed to parse content stream %d: %w", i, err)
		}
		ops = append(ops, parsed...)
	}

	p.ops = ops
	p.opsLoaded = true
	return ops, nil
}

// Width returns the page width (from MediaBox)
func (p *Page) Width() (float64, error) {
	box, err := p.MediaBox()
	if err != nil {
		return 0, err
	}
	return box[2] - box[0], nil
}

// Height returns the page height (from MediaBox)
func (p *Page) Height() (float64, error) {
	box, err := p.MediaBox()
	if err != nil {
		return 0, err
	}
	return box[3] - box[1], nil
}

// FontInfo is a font resolved against a page: the font dictionary found in
// the page's (or an ancestor's) resources, together with the byte to code
// point table selected by its Encoding entry.
type FontInfo struct {
	Name     string
	Dict     core.Dict
	Encoding font.Encoding
}

// Font resolves the named font against the page, walking the parent chain
// until a node's Resources carry it. Nodes without Resources or without a
// Font subdictionary are skipped. Returns nil when the whole chain lacks
// the font. Results, including misses, are cached per page.
func (p *Page) Font(name string) *FontInfo {
	if info, cached := p.fonts[name]; cached {
		return info
	}

	node := p.dict
	for depth := 0; node != nil && depth <= maxTreeDepth; depth++ {
		if fontDict := p.fontAt(node, name); fontDict != nil {
			info := &FontInfo{
				Name:     name,
				Dict:     fontDict,
				Encoding: resolveEncoding(fontDict, p.resolver),
			}
			p.fonts[name] = info
			return info
		}
		node = p.parentOf(node, depth == 0)
	}

	p.fonts[name] = nil
	return nil
}

// fontAt looks up Resources -> Font -> name on a single node. Any missing
// entry or failed resolution means the font is not here; the caller
// continues up the chain.
func (p *Page) fontAt(node core.Dict, name string) core.Dict {
	resourcesObj := node.Get("Resources")
	if resourcesObj == nil {
		return nil
	}
	resourcesResolved, err := p.resolver.Resolve(resourcesObj)
	if err != nil {
		return nil
	}
	resources, ok := resourcesResolved.(core.Dict)
	if !ok {
		return nil
	}

	fontObj := resources.Get("Font")
	if fontObj == nil {
		return nil
	}
	fontResolved, err := p.resolver.Resolve(fontObj)
	if err != nil {
		return nil
	}
	fonts, ok := fontResolved.(core.Dict)
	if !ok {
		return nil
	}

	entry := fonts.Get(name)
	if entry == nil {
		return nil
	}
	entryResolved, err := p.resolver.Resolve(entry)
	if err != nil {
		return nil
	}
	fontDict, ok := entryResolved.(core.Dict)
	if !ok {
		return nil
	}
	return fontDict
}

// resolveEncoding selects the built-in encoding named by a font's Encoding
// entry: a Name directly, or the BaseEncoding of an encoding dictionary.
// Absent or unrecognized encodings fall back to StandardEncoding.
func resolveEncoding(fontDict core.Dict, resolver ObjectResolver) font.Encoding {
	encObj := fontDict.Get("Encoding")
	if encObj == nil {
		return font.StandardEncodingTable
	}

	resolved, err := resolver.Resolve(encObj)
	if err != nil {
		return font.StandardEncodingTable
	}

	switch v := resolved.(type) {
	case core.Name:
		return font.GetEncoding(string(v))
	case core.Dict:
		if base, ok := v.GetName("BaseEncoding"); ok {
			return font.GetEncoding(string(base))
		}
	}
	return font.StandardEncodingTable
}

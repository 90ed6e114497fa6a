// Package pages provides PDF page tree traversal and page access.
//
// This package handles the hierarchical page tree structure in PDFs,
// providing access to individual pages, their content streams and their
// inherited resources.
//
// # Page Tree
//
// PDF documents organize pages in a tree structure. The [PageTree] type
// navigates this hierarchy:
//
//	tree := pages.NewPageTree(pagesDict, resolver)
//	count, _ := tree.Count()
//	page, _ := tree.GetPage(0)  // 0-indexed
//
// Traversal is depth-bounded, so a malformed tree with cyclic Kids links
// fails instead of recursing forever.
//
// # Page Access
//
// The [Page] type represents a single PDF page with:
//
//   - MediaBox - page dimensions
//   - CropBox - visible area (defaults to MediaBox)
//   - Rotation - page rotation (0, 90, 180, 270)
//   - Resources - fonts, images, etc.
//   - Contents - content streams, flattened into an ordered slice
//   - Operations - the parsed content stream operator sequence
//
// Inheritable attributes (MediaBox, CropBox, Resources, Rotate) resolve
// through the full Parent chain: the page is consulted first, then each
// ancestor in turn. The walk tolerates broken Parent links and is bounded
// so cyclic links terminate.
//
// # Font Resolution
//
// [Page.Font] resolves a font name against the page's resources and those
// of its ancestors, returning the font dictionary together with the
// built-in encoding selected by its Encoding entry:
//
//	if info := page.Font("F1"); info != nil {
//	    text := info.Encoding.DecodeString(raw)
//	}
//
// Lookups, including misses, are cached per page.
//
// # Object Resolution
//
// The [ObjectResolver] interface abstracts object lookup:
//
//	type ObjectResolver interface {
//	    Resolve(obj core.Object) (core.Object, error)
//	    ResolveDeep(obj core.Object) (core.Object, error)
//	    ResolveReference(ref core.IndirectRef) (core.Object, error)
//	}
//
// This allows the page tree to resolve indirect references without
// depending on the full reader implementation.
//
// Page caches (contents, operations, fonts) are not safe for concurrent
// use; share nothing across goroutines.
package pages

// Package reader provides high-level PDF document reading and object
// resolution.
//
// This package orchestrates the lower-level core package to provide a
// convenient API for reading PDF documents and extracting content. The
// whole document is held in memory; stream payloads above a configurable
// threshold are spilled to scratch storage and cleaned up on Close.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	reader, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
// Use [NewReader] with any io.Reader, or [NewReaderBytes] when the
// document is already in memory. Behavior is adjusted with functional
// options:
//
//	reader, err := reader.Open("big.pdf",
//	    reader.WithInlineStreamLimit(64*1024),
//	    reader.WithScratchDir("/var/tmp"),
//	)
//
// # Document Information
//
// The Reader provides access to document structure:
//
//   - Version() - PDF version (e.g., 1.7)
//   - PageCount() - number of pages
//   - GetCatalog() - document catalog dictionary
//   - GetInfo() - document info dictionary (metadata)
//   - Trailer() - trailer dictionary
//
// # Page Access
//
// Access pages by index (0-based):
//
//	page, err := reader.GetPage(0)  // First page
//
// # Object Resolution
//
// The Reader resolves indirect object references, including objects
// stored inside object streams:
//
//   - GetObject(objNum) - load object by number
//   - ResolveReference(ref) - resolve an IndirectRef
//   - Resolve(obj) - resolve if indirect, otherwise return as-is
//   - ResolveDeep(obj) - recursively resolve all references
//
// # Text Extraction
//
// Convenience methods for text extraction:
//
//   - ExtractText(page) - extract text as a string
//   - ExtractTextFragments(page) - extract positioned text fragments
//
// # Object Caching
//
// The Reader caches loaded objects and object stream containers for
// efficiency. Use ClearCache() to free memory when processing large PDFs.
// Caches are not safe for concurrent use; confine each Reader to one
// goroutine.
package reader

// Package carousel reads PDF documents. It parses the COS object graph,
// follows the cross-reference chain, resolves pages and their inherited
// resources, and extracts positioned text.
//
// Basic usage:
//
//	doc, err := carousel.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	text, err := doc.Text()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(text)
//
// Open accepts functional options for the spill threshold, scratch
// directory, resolve depth, logging, and page error handling:
//
//	doc, err := carousel.Open("document.pdf",
//	    carousel.WithInlineStreamLimit(4<<20),
//	    carousel.WithMode(carousel.ModeBestEffort),
//	)
//
// Document metadata comes from the Info dictionary with PDF text-string
// decoding applied:
//
//	info, err := doc.Info()
//	fmt.Println(info.Title, info.Author)
//
// Batches of files run through a Processor, which bounds how many
// documents are open at once and returns results in input order:
//
//	proc, err := carousel.NewProcessor(carousel.NewDefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := proc.Process(ctx, paths)
//
// The underlying layers are importable on their own: reader for document
// access and object resolution, pages for the page tree, core for the
// object model and parser, contentstream and text for content extraction.
package carousel

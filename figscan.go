// Package figscan scans a PDF book for colored pages and captioned figures.
//
// Basic usage:
//
//	result, warnings, err := figscan.Open("book.pdf").Scan()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", figscan.FormatWarnings(warnings))
//	}
//
// With options:
//
//	result, _, err := figscan.Open("book.pdf").
//	    PageOffset(20).
//	    SampleThreshold(0.01).
//	    Output("figures.html", report.FormatHTML).
//	    Scan()
//
// Color detection and caption extraction are also available on their own in
// the chroma and figures packages.
package figscan

import (
	"github.com/tsawler/figscan/pdfdoc"
)

// Open returns a Scanner for the PDF at path. The file is read on the first
// terminal operation.
//
// Example:
//
//	result, warnings, err := figscan.Open("book.pdf").Scan()
func Open(path string) *Scanner {
	return &Scanner{
		path:    path,
		options: defaultOptions(),
	}
}

// FromDocument returns a Scanner over an already open document.
//
// Example:
//
//	doc, err := pdfdoc.Open("book.pdf")
//	if err != nil {
//	    // handle error
//	}
//	result, warnings, err := figscan.FromDocument(doc).Scan()
func FromDocument(doc *pdfdoc.Document) *Scanner {
	return &Scanner{
		path:    doc.Path(),
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must panics if err is non-nil. It is meant for scripts and tests.
//
// Example:
//
//	count := figscan.Must(figscan.Open("book.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustScan is Must for Scan: it drops warnings and panics on error.
//
// Example:
//
//	result := figscan.MustScan(figscan.Open("book.pdf").Scan())
func MustScan[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

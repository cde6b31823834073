package pdfdoc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ErrOpen matches every error returned by Open and FromReader.
var ErrOpen = errors.New("pdfdoc: cannot open document")

// OpenError reports a document that could not be read.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("pdfdoc: open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrOpen) match any OpenError.
func (e *OpenError) Is(target error) bool { return target == ErrOpen }

// Document is an open PDF. Its methods are not safe for concurrent use.
type Document struct {
	path string
	ctx  *model.Context
}

// Open reads and validates the PDF at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()
	return FromReader(f, path)
}

// FromReader reads a PDF from r. name is used in errors only.
func FromReader(r io.ReadSeeker, name string) (doc *Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, &OpenError{Path: name, Err: fmt.Errorf("pdfcpu panic: %v", rec)}
		}
	}()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(r, conf)
	if err != nil {
		return nil, &OpenError{Path: name, Err: err}
	}
	if ctx.PageCount <= 0 {
		return nil, &OpenError{Path: name, Err: errors.New("document has no pages")}
	}
	return &Document{path: name, ctx: ctx}, nil
}

// Path returns the name the document was opened with.
func (d *Document) Path() string { return d.path }

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return d.ctx.PageCount }

// Page returns page n, 1-indexed.
func (d *Document) Page(n int) (page *Page, err error) {
	if n < 1 || n > d.ctx.PageCount {
		return nil, fmt.Errorf("pdfdoc: page %d out of range 1-%d", n, d.ctx.PageCount)
	}
	defer guard(fmt.Sprintf("page %d", n), &err)

	dict, _, _, err := d.ctx.PageDict(n, false)
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: page %d: %w", n, err)
	}
	if dict == nil {
		return nil, fmt.Errorf("pdfdoc: page %d: missing page dictionary", n)
	}
	return &Page{Number: n, doc: d, dict: dict, resources: d.inheritedResources(dict)}, nil
}

// maxParentDepth bounds the walk up the page tree.
const maxParentDepth = 32

// inheritedResources returns the page's /Resources, taken from the nearest
// ancestor in the page tree when the page itself has none.
func (d *Document) inheritedResources(dict types.Dict) types.Dict {
	node := dict
	for i := 0; i < maxParentDepth && node != nil; i++ {
		if res, ok := d.dictEntry(node, "Resources"); ok {
			return res
		}
		node, _ = d.dictEntry(node, "Parent")
	}
	return nil
}

// guard converts a panic inside pdfcpu into an error.
func guard(what string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("pdfdoc: %s: pdfcpu panic: %v", what, r)
	}
}

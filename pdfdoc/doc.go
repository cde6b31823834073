// Package pdfdoc reads pages, content streams, fonts and image XObjects
// from a PDF through pdfcpu.
//
//	doc, err := pdfdoc.Open("book.pdf")
//	if err != nil {
//	    // errors.Is(err, pdfdoc.ErrOpen)
//	}
//	page, err := doc.Page(40)
//	content, err := page.Content()
//	images, err := page.Images()
//
// pdfcpu parses the file, resolves objects and concatenates content streams.
// Image payloads are kept encoded and decoded on demand by Image.Raster with
// the internal filter chain, so a single undecodable image fails alone.
package pdfdoc

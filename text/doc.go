// Package text extracts the plain text of a PDF page from its content
// stream, one line per text line, for caption matching.
//
//	ex := text.NewExtractor()
//	ex.RegisterFont("F1", text.FontSpec{BaseEncoding: "WinAnsiEncoding"})
//	s, err := ex.ExtractBytes(contentData)
//
// Simple fonts decode through golang.org/x/text charmaps (WinAnsi and
// MacRoman) with /Differences applied by glyph name. Fonts carrying a
// ToUnicode CMap decode through it instead; composite fonts without one
// produce no text.
//
// Line breaks are emitted on T*, ', " and on Td, TD or Tm moves to a new
// baseline. Horizontal moves and wide TJ adjustments become a single space.
package text

// Package pdftest writes small but valid PDF files for tests.
package pdftest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Builder assembles numbered objects and writes them with a correct xref
// table.
type Builder struct {
	objects []string // index i holds object i+1
}

// Reserve allocates an object number to be filled by Set.
func (b *Builder) Reserve() int {
	b.objects = append(b.objects, "null")
	return len(b.objects)
}

// Set stores the body of object n, without the "obj" wrapper.
func (b *Builder) Set(n int, body string) {
	b.objects[n-1] = body
}

// Add stores body as a new object.
func (b *Builder) Add(body string) int {
	n := b.Reserve()
	b.Set(n, body)
	return n
}

// AddStream stores a stream object. dict holds the entries other than
// /Length, without the surrounding << >>.
func (b *Builder) AddStream(dict string, data []byte) int {
	var s strings.Builder
	fmt.Fprintf(&s, "<< %s /Length %d >>\nstream\n", dict, len(data))
	s.Write(data)
	s.WriteString("\nendstream")
	return b.Add(s.String())
}

// Bytes renders the file with root as the catalog.
func (b *Builder) Bytes(root int) []byte {
	var s strings.Builder
	s.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(b.objects)+1)
	for i, body := range b.objects {
		offsets[i+1] = s.Len()
		fmt.Fprintf(&s, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := s.Len()
	fmt.Fprintf(&s, "xref\n0 %d\n", len(b.objects)+1)
	s.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(b.objects); i++ {
		fmt.Fprintf(&s, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&s, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(b.objects)+1, root, xref)
	return []byte(s.String())
}

// Image describes an image XObject placed on a page.
type Image struct {
	Name       string // resource name, e.g. "Im1"
	Width      int
	Height     int
	BPC        int    // defaults to 8
	ColorSpace string // raw PDF value, e.g. "/DeviceRGB"; empty omits the key
	Filter     string // raw PDF value, e.g. "/FlateDecode"; empty omits the key
	Extra      string // further dictionary entries
	Data       []byte
}

// Page describes one page.
type Page struct {
	Content string
	Images  []Image
}

// Document builds a file of pages sharing one Helvetica font named F1.
func Document(pages ...Page) []byte {
	var b Builder
	catalog := b.Reserve()
	tree := b.Reserve()
	font := b.Add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var kids []string
	for _, p := range pages {
		var xobjects []string
		for _, img := range p.Images {
			bpc := img.BPC
			if bpc == 0 {
				bpc = 8
			}
			dict := fmt.Sprintf("/Type /XObject /Subtype /Image /Width %d /Height %d /BitsPerComponent %d", img.Width, img.Height, bpc)
			if img.ColorSpace != "" {
				dict += " /ColorSpace " + img.ColorSpace
			}
			if img.Filter != "" {
				dict += " /Filter " + img.Filter
			}
			if img.Extra != "" {
				dict += " " + img.Extra
			}
			n := b.AddStream(dict, img.Data)
			xobjects = append(xobjects, fmt.Sprintf("/%s %d 0 R", img.Name, n))
		}

		content := b.AddStream("", []byte(p.Content))
		resources := fmt.Sprintf("/Font << /F1 %d 0 R >>", font)
		if len(xobjects) > 0 {
			resources += " /XObject << " + strings.Join(xobjects, " ") + " >>"
		}
		page := b.Add(fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Resources << %s >> /Contents %d 0 R >>", tree, resources, content))
		kids = append(kids, fmt.Sprintf("%d 0 R", page))
	}

	b.Set(tree, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(kids)))
	b.Set(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", tree))
	return b.Bytes(catalog)
}

// TextPage returns a page showing each line with Helvetica on its own
// baseline. Parentheses and backslashes are escaped.
func TextPage(lines ...string) Page {
	var s strings.Builder
	s.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
	for i, line := range lines {
		if i > 0 {
			s.WriteString("0 -14 Td\n")
		}
		r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
		fmt.Fprintf(&s, "(%s) Tj\n", r.Replace(line))
	}
	s.WriteString("ET")
	return Page{Content: s.String()}
}

// RGB returns w*h pixels of one colour as DeviceRGB sample bytes.
func RGB(w, h int, r, g, b byte) []byte {
	out := make([]byte, 0, w*h*3)
	for i := 0; i < w*h; i++ {
		out = append(out, r, g, b)
	}
	return out
}

// Write stores data in a temporary directory and returns its path.
func Write(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

package pdfdoc

import (
	"fmt"
	"io"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/figscan/text"
)

// Page is one page of a Document.
type Page struct {
	Number int

	doc       *Document
	dict      types.Dict
	resources types.Dict
}

// Content returns the page's content streams, decoded and concatenated.
// A page without content returns nil.
func (p *Page) Content() (data []byte, err error) {
	defer guard(fmt.Sprintf("page %d content", p.Number), &err)

	r, err := pdfcpu.ExtractPageContent(p.doc.ctx, p.Number)
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: page %d content: %w", p.Number, err)
	}
	if r == nil {
		return nil, nil
	}
	data, err = io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pdfdoc: page %d content: %w", p.Number, err)
	}
	return data, nil
}

// Text returns the page text, one line per text line.
func (p *Page) Text() (string, error) {
	content, err := p.Content()
	if err != nil {
		return "", err
	}

	ex := text.NewExtractor()
	for name, spec := range p.Fonts() {
		ex.RegisterFont(name, spec)
	}
	s, err := ex.ExtractBytes(content)
	if err != nil {
		// Partial text is still useful for captions.
		return s, fmt.Errorf("pdfdoc: page %d text: %w", p.Number, err)
	}
	return s, nil
}

// Fonts describes the fonts in the page resources by resource name.
// Fonts that cannot be resolved are left out.
func (p *Page) Fonts() map[string]text.FontSpec {
	fonts := make(map[string]text.FontSpec)
	if p.resources == nil {
		return fonts
	}
	fontDict, ok := p.doc.dictEntry(p.resources, "Font")
	if !ok {
		return fonts
	}

	for name, obj := range fontDict {
		o, err := p.doc.resolve(obj)
		if err != nil {
			continue
		}
		fd, ok := o.(types.Dict)
		if !ok {
			continue
		}
		fonts[name] = p.doc.fontSpec(fd)
	}
	return fonts
}

func (d *Document) fontSpec(fd types.Dict) text.FontSpec {
	var spec text.FontSpec
	if subtype, ok := d.nameEntry(fd, "Subtype"); ok && subtype == "Type0" {
		spec.Composite = true
	}

	if enc, ok := d.entry(fd, "Encoding"); ok {
		switch v := enc.(type) {
		case types.Name:
			spec.BaseEncoding = string(v)
		case types.Dict:
			spec.BaseEncoding, _ = d.nameEntry(v, "BaseEncoding")
			if diffs, ok := d.entry(v, "Differences"); ok {
				if arr, ok := diffs.(types.Array); ok {
					spec.Differences = differences(arr)
				}
			}
		}
	}

	if sd, ok := d.streamEntry(fd, "ToUnicode"); ok {
		if len(sd.Content) == 0 && len(sd.Raw) > 0 {
			if err := sd.Decode(); err != nil {
				return spec
			}
		}
		spec.ToUnicode = sd.Content
	}
	return spec
}

// differences reads a /Differences array: a code followed by the glyph
// names for consecutive codes.
func differences(arr types.Array) map[byte]string {
	out := make(map[byte]string)
	code := -1
	for _, o := range arr {
		if n, ok := intOf(o); ok {
			code = n
			continue
		}
		if name, ok := nameOf(o); ok && code >= 0 && code <= 255 {
			out[byte(code)] = name
			code++
		}
	}
	return out
}

// Images returns the image XObjects in the page resources, ordered by
// resource name, followed by images pdfcpu attributes to the page that are
// not direct resources (for example images inside form XObjects).
func (p *Page) Images() (images []*Image, err error) {
	defer guard(fmt.Sprintf("page %d images", p.Number), &err)

	seen := make(map[int]bool)
	if p.resources != nil {
		if xobjects, ok := p.doc.dictEntry(p.resources, "XObject"); ok {
			names := make([]string, 0, len(xobjects))
			for name := range xobjects {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				raw := xobjects[name]
				objNr := 0
				if ref, ok := raw.(types.IndirectRef); ok {
					objNr = int(ref.ObjectNumber)
				}
				o, err := p.doc.resolve(raw)
				if err != nil {
					continue
				}
				sd, ok := o.(types.StreamDict)
				if !ok || !p.doc.isImage(sd) {
					continue
				}
				if objNr > 0 {
					seen[objNr] = true
				}
				images = append(images, p.doc.newImage(name, objNr, sd, p.resources))
			}
		}
	}

	for _, objNr := range p.doc.pageImageObjNrs(p.Number) {
		if seen[objNr] {
			continue
		}
		entry, ok := p.doc.ctx.Table[objNr]
		if !ok || entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok || !p.doc.isImage(sd) {
			continue
		}
		seen[objNr] = true
		images = append(images, p.doc.newImage(fmt.Sprintf("obj%d", objNr), objNr, sd, p.resources))
	}
	return images, nil
}

func (d *Document) isImage(sd types.StreamDict) bool {
	subtype, ok := d.nameEntry(sd.Dict, "Subtype")
	return ok && subtype == "Image"
}

// pageImageObjNrs lists image object numbers from pdfcpu's optimizer, in
// ascending order. It is empty when the optimizer did not run.
func (d *Document) pageImageObjNrs(pageNr int) []int {
	if d.ctx.Optimize == nil {
		return nil
	}
	nrs := append([]int(nil), pdfcpu.ImageObjNrs(d.ctx, pageNr)...)
	sort.Ints(nrs)
	return nrs
}

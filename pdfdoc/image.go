package pdfdoc

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/figscan/colorspace"
	"github.com/tsawler/figscan/contentstream"
	"github.com/tsawler/figscan/internal/filters"
	"github.com/tsawler/figscan/raster"
)

// Image is an image XObject with its payload still encoded.
type Image struct {
	Name             string // resource name, or objN for images found by object number
	ObjNr            int    // 0 for direct objects
	Width            int
	Height           int
	BitsPerComponent int
	ImageMask        bool
	ColorSpace       colorspace.Descriptor // nil when the dictionary has none
	Filters          []string
	DecodeParms      []filters.Params
	Raw              []byte

	space    raster.Space
	spaceErr error
}

// ID returns the resource name.
func (img *Image) ID() string { return img.Name }

// Dimensions returns the declared width and height.
func (img *Image) Dimensions() (int, int) { return img.Width, img.Height }

// Descriptor returns the declared colour space.
func (img *Image) Descriptor() colorspace.Descriptor { return img.ColorSpace }

// Raster decodes the payload. DCT images go through image/jpeg; everything
// else is unfiltered and interpreted with the declared colour space.
func (img *Image) Raster() (image.Image, error) {
	data, codec, err := filters.Decode(img.Raw, img.Filters, img.DecodeParms)
	if err != nil {
		return nil, err
	}

	switch codec {
	case filters.CodecDCT:
		decoded, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("pdfdoc: %s: jpeg: %w", img.Name, err)
		}
		return decoded, nil
	case filters.CodecJPX:
		return nil, fmt.Errorf("%w: %s is JPXDecode", raster.ErrUnsupported, img.Name)
	}

	if img.spaceErr != nil && !img.ImageMask {
		return nil, img.spaceErr
	}
	return raster.Samples{
		Width:            img.Width,
		Height:           img.Height,
		BitsPerComponent: img.BitsPerComponent,
		Space:            img.space,
		ImageMask:        img.ImageMask,
		Data:             data,
	}.Image()
}

func (d *Document) newImage(name string, objNr int, sd types.StreamDict, resources types.Dict) *Image {
	img := &Image{Name: name, ObjNr: objNr, Raw: sd.Raw, BitsPerComponent: 8}
	dict := sd.Dict

	img.Width, _ = d.intEntry(dict, "Width")
	img.Height, _ = d.intEntry(dict, "Height")
	if bpc, ok := d.intEntry(dict, "BitsPerComponent"); ok {
		img.BitsPerComponent = bpc
	}
	if o, ok := d.entry(dict, "ImageMask"); ok {
		img.ImageMask, _ = boolOf(o)
	}

	img.Filters, img.DecodeParms = d.filterChain(dict)
	for i, f := range img.Filters {
		if filters.Canonical(f) != "CCITTFaxDecode" {
			continue
		}
		// Fax data carries no geometry of its own.
		p := filters.Params{}
		if i < len(img.DecodeParms) && img.DecodeParms[i] != nil {
			p = img.DecodeParms[i]
		}
		if _, ok := p["Columns"]; !ok {
			p["Columns"] = img.Width
		}
		if _, ok := p["Rows"]; !ok {
			p["Rows"] = img.Height
		}
		for len(img.DecodeParms) <= i {
			img.DecodeParms = append(img.DecodeParms, nil)
		}
		img.DecodeParms[i] = p
		img.BitsPerComponent = 1
	}

	if o, ok := d.entry(dict, "ColorSpace"); ok {
		img.ColorSpace, img.space, img.spaceErr = d.colorSpace(o, resources, 0)
	} else {
		img.spaceErr = fmt.Errorf("%w: %s declares no colour space", raster.ErrUnsupported, name)
	}
	return img
}

// filterChain reads /Filter and /DecodeParms.
func (d *Document) filterChain(dict types.Dict) ([]string, []filters.Params) {
	var names []string
	if o, ok := d.entry(dict, "Filter"); ok {
		switch v := o.(type) {
		case types.Name:
			names = []string{string(v)}
		case types.Array:
			for _, e := range v {
				if n, ok := nameOf(e); ok {
					names = append(names, n)
				}
			}
		}
	}

	var params []filters.Params
	if o, ok := d.entry(dict, "DecodeParms"); ok {
		switch v := o.(type) {
		case types.Dict:
			params = []filters.Params{d.params(v)}
		case types.Array:
			for _, e := range v {
				pd, err := d.resolve(e)
				if pdict, ok := pd.(types.Dict); ok && err == nil {
					params = append(params, d.params(pdict))
				} else {
					params = append(params, nil)
				}
			}
		}
	}
	return names, params
}

func (d *Document) params(dict types.Dict) filters.Params {
	p := filters.Params{}
	for k := range dict {
		o, ok := d.entry(dict, k)
		if !ok {
			continue
		}
		switch v := o.(type) {
		case types.Integer:
			p[k] = int(v)
		case types.Float:
			p[k] = float64(v)
		case types.Boolean:
			p[k] = bool(v)
		}
	}
	return p
}

// maxColorSpaceDepth bounds nested colour space references.
const maxColorSpaceDepth = 8

var errColorSpaceDepth = errors.New("pdfdoc: colour space nested too deeply")

// colorSpace resolves a /ColorSpace value to its descriptor and the space
// the samples are interpreted in. A failure to resolve the space still
// yields the descriptor.
func (d *Document) colorSpace(o types.Object, resources types.Dict, depth int) (colorspace.Descriptor, raster.Space, error) {
	if depth > maxColorSpaceDepth {
		return nil, raster.Space{}, errColorSpaceDepth
	}
	o, err := d.resolve(o)
	if err != nil {
		return nil, raster.Space{}, err
	}

	switch v := o.(type) {
	case types.Name:
		name := string(v)
		if named, ok := d.namedColorSpace(name, resources); ok {
			return d.colorSpace(named, resources, depth+1)
		}
		space, err := raster.FromFamily(name, 0)
		return colorspace.Descriptor{name}, space, err

	case types.Array:
		desc := make(colorspace.Descriptor, 0, len(v))
		for _, e := range v {
			if n, ok := nameOf(e); ok {
				desc = append(desc, n)
			}
		}
		if len(v) == 0 {
			return nil, raster.Space{}, fmt.Errorf("%w: empty colour space array", raster.ErrUnsupported)
		}
		family, ok := nameOf(v[0])
		if !ok {
			return desc, raster.Space{}, fmt.Errorf("%w: colour space array without family name", raster.ErrUnsupported)
		}
		space, err := d.arraySpace(family, v, resources, depth)
		return desc, space, err
	}
	return nil, raster.Space{}, fmt.Errorf("%w: colour space of type %T", raster.ErrUnsupported, o)
}

func (d *Document) arraySpace(family string, arr types.Array, resources types.Dict, depth int) (raster.Space, error) {
	switch family {
	case "ICCBased":
		if len(arr) < 2 {
			return raster.Space{}, fmt.Errorf("%w: ICCBased without profile", raster.ErrUnsupported)
		}
		o, err := d.resolve(arr[1])
		if err != nil {
			return raster.Space{}, err
		}
		sd, ok := o.(types.StreamDict)
		if !ok {
			return raster.Space{}, fmt.Errorf("%w: ICCBased profile is %T", raster.ErrUnsupported, o)
		}
		n, ok := d.intEntry(sd.Dict, "N")
		if !ok {
			if alt, ok := d.entry(sd.Dict, "Alternate"); ok {
				_, space, err := d.colorSpace(alt, resources, depth+1)
				return space, err
			}
		}
		return raster.FromFamily(family, n)

	case "Indexed", "I":
		if len(arr) < 4 {
			return raster.Space{}, fmt.Errorf("%w: Indexed needs base, hival and lookup", raster.ErrUnsupported)
		}
		_, base, err := d.colorSpace(arr[1], resources, depth+1)
		if err != nil {
			return raster.Space{}, err
		}
		hiObj, err := d.resolve(arr[2])
		if err != nil {
			return raster.Space{}, err
		}
		hival, ok := intOf(hiObj)
		if !ok {
			return raster.Space{}, fmt.Errorf("%w: Indexed hival is %T", raster.ErrUnsupported, hiObj)
		}
		lookup, err := d.lookupTable(arr[3])
		if err != nil {
			return raster.Space{}, err
		}
		return raster.Indexed(base, hival, lookup)
	}
	return raster.FromFamily(family, 0)
}

// lookupTable reads an Indexed palette given as a string or a stream.
func (d *Document) lookupTable(o types.Object) ([]byte, error) {
	o, err := d.resolve(o)
	if err != nil {
		return nil, err
	}
	switch v := o.(type) {
	case types.StringLiteral:
		return contentstream.UnescapeLiteral(string(v)), nil
	case types.HexLiteral:
		return hex.DecodeString(strings.Join(strings.Fields(string(v)), ""))
	case types.StreamDict:
		names, params := d.filterChain(v.Dict)
		out, codec, err := filters.Decode(v.Raw, names, params)
		if err != nil {
			return nil, err
		}
		if codec != "" {
			return nil, fmt.Errorf("%w: %s palette", raster.ErrUnsupported, codec)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: Indexed lookup of type %T", raster.ErrUnsupported, o)
}

// namedColorSpace looks name up in the resource /ColorSpace dictionary.
// Device and CIE family names never refer to resources.
func (d *Document) namedColorSpace(name string, resources types.Dict) (types.Object, bool) {
	switch name {
	case "DeviceGray", "DeviceRGB", "DeviceCMYK", "CalGray", "CalRGB", "Lab", "Pattern":
		return nil, false
	}
	if resources == nil {
		return nil, false
	}
	spaces, ok := d.dictEntry(resources, "ColorSpace")
	if !ok {
		return nil, false
	}
	o, found := spaces.Find(name)
	return o, found && o != nil
}

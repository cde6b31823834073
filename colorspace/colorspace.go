// Package colorspace inspects the colour space declared on an image XObject
// and decides whether that declaration alone suggests colour.
package colorspace

import "strings"

// Descriptor is a declared colour space flattened to names: a single name
// such as ["DeviceRGB"], or the names of an array form such as
// ["ICCBased"] or ["Indexed", "DeviceRGB"]. A nil Descriptor means the image
// declared none.
type Descriptor []string

// Family returns the base family name: the sole name or the first element of
// the array form. It is empty for a nil or empty descriptor.
func (d Descriptor) Family() string {
	if len(d) == 0 {
		return ""
	}
	return d[0]
}

func (d Descriptor) String() string {
	switch len(d) {
	case 0:
		return "<none>"
	case 1:
		return d[0]
	}
	return "[" + strings.Join(d, " ") + "]"
}

// colorFamilies are matched as case-sensitive substrings of the family name.
// DeviceRGB is subsumed by RGB but kept to mirror the names writers use.
var colorFamilies = []string{"RGB", "Lab", "DeviceRGB"}

// HasColor reports whether family names a colour family. CalRGB and
// DeviceRGB match, Indexed and ICCBased do not even when their base or
// profile is RGB.
func HasColor(family string) bool {
	for _, f := range colorFamilies {
		if strings.Contains(family, f) {
			return true
		}
	}
	return false
}

// Hint is the provisional verdict drawn from a descriptor. It only decides a
// page when the pixel data of the same image cannot be decoded.
type Hint struct {
	Family   string
	HasColor bool
}

// Inspect extracts the family of d and matches it against the colour
// families.
func Inspect(d Descriptor) Hint {
	family := d.Family()
	return Hint{Family: family, HasColor: HasColor(family)}
}

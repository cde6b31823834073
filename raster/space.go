package raster

import (
	"errors"
	"fmt"
)

// ErrUnsupported reports a colour space or bit depth this package cannot
// turn into pixels.
var ErrUnsupported = errors.New("raster: unsupported image")

// Space is a resolved PDF colour space.
type Space struct {
	Family     string // DeviceGray, DeviceRGB, DeviceCMYK, Lab, Indexed, ...
	Components int    // samples per pixel in the image data

	// Indexed only.
	Base   *Space
	HiVal  int
	Lookup []byte
}

// DeviceGray, DeviceRGB and DeviceCMYK are the device spaces.
var (
	DeviceGray = Space{Family: "DeviceGray", Components: 1}
	DeviceRGB  = Space{Family: "DeviceRGB", Components: 3}
	DeviceCMYK = Space{Family: "DeviceCMYK", Components: 4}
)

// FromFamily resolves a colour space that is fully described by its family
// name and, for ICCBased, its component count.
func FromFamily(family string, iccComponents int) (Space, error) {
	switch family {
	case "DeviceGray", "CalGray", "G":
		return Space{Family: family, Components: 1}, nil
	case "DeviceRGB", "CalRGB", "RGB":
		return Space{Family: family, Components: 3}, nil
	case "DeviceCMYK", "CMYK":
		return Space{Family: family, Components: 4}, nil
	case "Lab":
		return Space{Family: family, Components: 3}, nil
	case "ICCBased":
		switch iccComponents {
		case 1, 3, 4:
			return Space{Family: family, Components: iccComponents}, nil
		}
		return Space{}, fmt.Errorf("%w: ICCBased with %d components", ErrUnsupported, iccComponents)
	}
	return Space{}, fmt.Errorf("%w: colour space %s", ErrUnsupported, family)
}

// Indexed builds an Indexed space over base.
func Indexed(base Space, hival int, lookup []byte) (Space, error) {
	if base.Family == "Indexed" {
		return Space{}, fmt.Errorf("%w: nested Indexed colour space", ErrUnsupported)
	}
	if hival < 0 || hival > 255 {
		return Space{}, fmt.Errorf("%w: Indexed hival %d", ErrUnsupported, hival)
	}
	b := base
	return Space{Family: "Indexed", Components: 1, Base: &b, HiVal: hival, Lookup: lookup}, nil
}

// gray reports whether pixels of this space come out as *image.Gray.
func (s Space) gray() bool {
	return s.Components == 1 && s.Family != "Indexed"
}

package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Samples is decoded image stream data plus the dictionary entries needed to
// interpret it.
type Samples struct {
	Width            int
	Height           int
	BitsPerComponent int
	Space            Space
	ImageMask        bool
	Data             []byte
}

// Image converts the samples to *image.Gray or *image.RGBA. Short data is an
// error; trailing data is ignored.
func (s Samples) Image() (image.Image, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("raster: empty image %dx%d", s.Width, s.Height)
	}

	bpc := s.BitsPerComponent
	space := s.Space
	if s.ImageMask {
		bpc = 1
		space = DeviceGray
	}
	switch bpc {
	case 1, 2, 4, 8, 16:
	default:
		return nil, fmt.Errorf("%w: %d bits per component", ErrUnsupported, bpc)
	}
	if space.Components <= 0 {
		return nil, fmt.Errorf("%w: colour space %q has no components", ErrUnsupported, space.Family)
	}

	rowBytes := (s.Width*space.Components*bpc + 7) / 8
	if need := rowBytes * s.Height; len(s.Data) < need {
		return nil, fmt.Errorf("raster: insufficient data: got %d, expected %d", len(s.Data), need)
	}

	u := unpacker{data: s.Data, rowBytes: rowBytes, bpc: bpc, scale: space.Family != "Indexed"}
	if space.gray() {
		return s.toGray(u), nil
	}
	return s.toRGBA(u, space)
}

// unpacker reads samples of any supported depth, scaling them to 0-255 unless
// they are palette indices.
type unpacker struct {
	data     []byte
	rowBytes int
	bpc      int
	scale    bool
}

func (u unpacker) sample(row, i int) byte {
	line := u.data[row*u.rowBytes:]
	switch u.bpc {
	case 8:
		return line[i]
	case 16:
		return line[2*i]
	}
	bit := i * u.bpc
	v := (line[bit/8] >> (8 - u.bpc - bit%8)) & (1<<u.bpc - 1)
	if !u.scale {
		return v
	}
	return v * byte(255/(1<<u.bpc-1))
}

func (s Samples) toGray(u unpacker) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			// Stencil masks paint 0 samples black and leave 1 samples white,
			// which is the same mapping as DeviceGray.
			img.Pix[y*img.Stride+x] = u.sample(y, x)
		}
	}
	return img
}

func (s Samples) toRGBA(u unpacker, space Space) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	n := space.Components
	px := make([]byte, n)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			for c := 0; c < n; c++ {
				px[c] = u.sample(y, x*n+c)
			}
			r, g, b, err := toRGB(space, px)
			if err != nil {
				return nil, err
			}
			o := y*img.Stride + x*4
			img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = r, g, b, 255
		}
	}
	return img, nil
}

// toRGB converts one pixel in space to 8-bit RGB.
func toRGB(space Space, px []byte) (r, g, b byte, err error) {
	switch {
	case space.Family == "Indexed":
		return indexedToRGB(space, px[0])
	case space.Family == "Lab":
		r, g, b = labToRGB(px[0], px[1], px[2])
		return r, g, b, nil
	case space.Components == 1:
		return px[0], px[0], px[0], nil
	case space.Components == 3:
		return px[0], px[1], px[2], nil
	case space.Components == 4:
		r, g, b = color.CMYKToRGB(px[0], px[1], px[2], px[3])
		return r, g, b, nil
	}
	return 0, 0, 0, fmt.Errorf("%w: %d component pixels in %s", ErrUnsupported, space.Components, space.Family)
}

func indexedToRGB(space Space, idx byte) (r, g, b byte, err error) {
	if space.Base == nil {
		return 0, 0, 0, fmt.Errorf("%w: Indexed without base", ErrUnsupported)
	}
	if int(idx) > space.HiVal {
		idx = byte(space.HiVal)
	}
	n := space.Base.Components
	off := int(idx) * n
	if off+n > len(space.Lookup) {
		return 0, 0, 0, fmt.Errorf("raster: palette index %d outside lookup of %d bytes", idx, len(space.Lookup))
	}
	return toRGB(*space.Base, space.Lookup[off:off+n])
}

// labToRGB maps 8-bit Lab samples (L* 0-100, a* and b* -128..127 over the
// default /Range) through XYZ with a D65 white onto sRGB.
func labToRGB(l8, a8, b8 byte) (r, g, b byte) {
	L := float64(l8) * 100 / 255
	A := float64(a8) - 128
	B := float64(b8) - 128

	fy := (L + 16) / 116
	fx := fy + A/500
	fz := fy - B/200
	finv := func(t float64) float64 {
		if t > 6.0/29 {
			return t * t * t
		}
		return 3 * (6.0 / 29) * (6.0 / 29) * (t - 4.0/29)
	}
	X := 0.95047 * finv(fx)
	Y := 1.0 * finv(fy)
	Z := 1.08883 * finv(fz)

	lr := 3.2406*X - 1.5372*Y - 0.4986*Z
	lg := -0.9689*X + 1.8758*Y + 0.0415*Z
	lb := 0.0557*X - 0.2040*Y + 1.0570*Z
	return gammaByte(lr), gammaByte(lg), gammaByte(lb)
}

func gammaByte(c float64) byte {
	if c <= 0.0031308 {
		c *= 12.92
	} else {
		c = 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	return byte(math.Round(math.Max(0, math.Min(1, c)) * 255))
}

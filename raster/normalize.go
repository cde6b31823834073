package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// ToRGB returns img as opaque *image.RGBA ready for pixel analysis. Gray
// images (8 and 16 bit) are reported with ok == false: they carry no colour
// to find.
//
// Alpha is dropped rather than composited. Non-premultiplied images keep
// their stored colour channels, so a fully transparent red pixel stays red.
// An *image.RGBA at the origin is returned as is. Other models are
// converted with draw.Src and then made opaque.
func ToRGB(img image.Image) (rgba *image.RGBA, ok bool) {
	switch v := img.(type) {
	case nil:
		return nil, false
	case *image.Gray, *image.Gray16:
		return nil, false
	case *image.RGBA:
		if v.Bounds().Min == (image.Point{}) {
			return v, true
		}
	case *image.NRGBA:
		return dropAlpha(v.Bounds(), func(x, y int) (r, g, b uint8) {
			c := v.NRGBAAt(x, y)
			return c.R, c.G, c.B
		}), true
	case *image.NRGBA64:
		return dropAlpha(v.Bounds(), func(x, y int) (r, g, b uint8) {
			c := v.NRGBA64At(x, y)
			return uint8(c.R >> 8), uint8(c.G >> 8), uint8(c.B >> 8)
		}), true
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst, true
}

// dropAlpha copies the colour channels at each point of bounds into a new
// opaque image anchored at the origin.
func dropAlpha(bounds image.Rectangle, at func(x, y int) (r, g, b uint8)) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := at(x, y)
			i := dst.PixOffset(x-bounds.Min.X, y-bounds.Min.Y)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = r, g, b, 0xff
		}
	}
	return dst
}

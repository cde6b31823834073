package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestSamplesGray8(t *testing.T) {
	img, err := Samples{
		Width: 2, Height: 2, BitsPerComponent: 8,
		Space: DeviceGray,
		Data:  []byte{0, 64, 128, 255},
	}.Image()
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("got %T, want *image.Gray", img)
	}
	if gray.GrayAt(1, 1).Y != 255 || gray.GrayAt(1, 0).Y != 64 {
		t.Errorf("unexpected pixels %v", gray.Pix)
	}
}

func TestSamplesBilevel(t *testing.T) {
	// 10 pixels wide: 2 bytes per row, MSB first.
	img, err := Samples{
		Width: 10, Height: 1, BitsPerComponent: 1,
		Space: DeviceGray,
		Data:  []byte{0xAA, 0x80},
	}.Image()
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	gray := img.(*image.Gray)
	want := []byte{255, 0, 255, 0, 255, 0, 255, 0, 255, 0}
	for x, w := range want {
		if got := gray.GrayAt(x, 0).Y; got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}
}

func TestSamples4BitGray(t *testing.T) {
	img, err := Samples{
		Width: 3, Height: 1, BitsPerComponent: 4,
		Space: DeviceGray,
		Data:  []byte{0xF0, 0x80},
	}.Image()
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	gray := img.(*image.Gray)
	if gray.Pix[0] != 255 || gray.Pix[1] != 0 || gray.Pix[2] != 136 {
		t.Errorf("pixels = %v, want [255 0 136]", gray.Pix)
	}
}

func TestSamplesRGB(t *testing.T) {
	img, err := Samples{
		Width: 2, Height: 1, BitsPerComponent: 8,
		Space: DeviceRGB,
		Data:  []byte{255, 0, 0, 0, 0, 255},
	}.Image()
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	rgba := img.(*image.RGBA)
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel 0 = %v", got)
	}
	if got := rgba.RGBAAt(1, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel 1 = %v", got)
	}
}

func TestSamplesRGB16(t *testing.T) {
	img, err := Samples{
		Width: 1, Height: 1, BitsPerComponent: 16,
		Space: DeviceRGB,
		Data:  []byte{0xFF, 0xFF, 0x10, 0x00, 0x00, 0x00},
	}.Image()
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if got := img.(*image.RGBA).RGBAAt(0, 0); got != (color.RGBA{255, 16, 0, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestSamplesCMYK(t *testing.T) {
	img, err := Samples{
		Width: 1, Height: 1, BitsPerComponent: 8,
		Space: DeviceCMYK,
		Data:  []byte{0, 255, 255, 0},
	}.Image()
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if got := img.(*image.RGBA).RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel = %v, want red", got)
	}
}

func TestSamplesIndexed(t *testing.T) {
	space, err := Indexed(DeviceRGB, 1, []byte{0, 0, 0, 10, 200, 30})
	if err != nil {
		t.Fatalf("Indexed failed: %v", err)
	}
	img, err := Samples{
		Width: 2, Height: 1, BitsPerComponent: 1,
		Space: space,
		Data:  []byte{0x40},
	}.Image()
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("got %T, want *image.RGBA", img)
	}
	if got := rgba.RGBAAt(1, 0); got != (color.RGBA{10, 200, 30, 255}) {
		t.Errorf("pixel 1 = %v", got)
	}
}

func TestSamplesIndexedShortLookup(t *testing.T) {
	space, _ := Indexed(DeviceRGB, 3, []byte{0, 0, 0})
	_, err := Samples{
		Width: 1, Height: 1, BitsPerComponent: 8,
		Space: space,
		Data:  []byte{2},
	}.Image()
	if err == nil {
		t.Error("expected error for index outside lookup table")
	}
}

func TestSamplesLab(t *testing.T) {
	// L*=100, a*=b*=0 is white.
	img, err := Samples{
		Width: 1, Height: 1, BitsPerComponent: 8,
		Space: Space{Family: "Lab", Components: 3},
		Data:  []byte{255, 128, 128},
	}.Image()
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	c := img.(*image.RGBA).RGBAAt(0, 0)
	if c.R < 250 || c.G < 250 || c.B < 250 {
		t.Errorf("pixel = %v, want near white", c)
	}
}

func TestSamplesImageMask(t *testing.T) {
	img, err := Samples{
		Width: 8, Height: 1, BitsPerComponent: 0,
		Space:     Space{},
		ImageMask: true,
		Data:      []byte{0x0F},
	}.Image()
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if _, ok := img.(*image.Gray); !ok {
		t.Errorf("got %T, want *image.Gray", img)
	}
}

func TestSamplesErrors(t *testing.T) {
	tests := []struct {
		name    string
		samples Samples
		unsup   bool
	}{
		{"zero size", Samples{Width: 0, Height: 4, BitsPerComponent: 8, Space: DeviceGray}, false},
		{"odd depth", Samples{Width: 1, Height: 1, BitsPerComponent: 3, Space: DeviceGray, Data: []byte{0}}, true},
		{"no components", Samples{Width: 1, Height: 1, BitsPerComponent: 8, Space: Space{Family: "Separation"}, Data: []byte{0}}, true},
		{"short data", Samples{Width: 4, Height: 4, BitsPerComponent: 8, Space: DeviceRGB, Data: []byte{1, 2, 3}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.samples.Image()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrUnsupported); got != tt.unsup {
				t.Errorf("errors.Is(ErrUnsupported) = %v, want %v (%v)", got, tt.unsup, err)
			}
		})
	}
}

func TestFromFamily(t *testing.T) {
	tests := []struct {
		family string
		icc    int
		want   int
		err    bool
	}{
		{"DeviceGray", 0, 1, false},
		{"CalRGB", 0, 3, false},
		{"DeviceCMYK", 0, 4, false},
		{"Lab", 0, 3, false},
		{"ICCBased", 3, 3, false},
		{"ICCBased", 2, 0, true},
		{"Separation", 0, 0, true},
	}
	for _, tt := range tests {
		s, err := FromFamily(tt.family, tt.icc)
		if (err != nil) != tt.err {
			t.Errorf("FromFamily(%s, %d) err = %v", tt.family, tt.icc, err)
			continue
		}
		if s.Components != tt.want {
			t.Errorf("FromFamily(%s, %d) components = %d, want %d", tt.family, tt.icc, s.Components, tt.want)
		}
	}
}

func TestToRGB(t *testing.T) {
	if _, ok := ToRGB(image.NewGray(image.Rect(0, 0, 2, 2))); ok {
		t.Error("gray image reported as RGB")
	}

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if got, ok := ToRGB(rgba); !ok || got != rgba {
		t.Error("RGBA image should be returned unchanged")
	}

	cmyk := image.NewCMYK(image.Rect(0, 0, 1, 1))
	cmyk.SetCMYK(0, 0, color.CMYK{C: 0, M: 255, Y: 255, K: 0})
	got, ok := ToRGB(cmyk)
	if !ok {
		t.Fatal("CMYK image not converted")
	}
	if c := got.RGBAAt(0, 0); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("converted pixel = %v, want red", c)
	}

	nrgba := image.NewNRGBA(image.Rect(5, 5, 6, 6))
	nrgba.SetNRGBA(5, 5, color.NRGBA{R: 0, G: 0, B: 255, A: 0})
	got, ok = ToRGB(nrgba)
	if !ok {
		t.Fatal("NRGBA image not converted")
	}
	if c := got.RGBAAt(0, 0); c != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("transparent pixel = %v, want opaque blue", c)
	}

	red := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	red.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 10, B: 10, A: 0})
	red.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 10, B: 10, A: 128})
	got, _ = ToRGB(red)
	for x := 0; x < 2; x++ {
		if c := got.RGBAAt(x, 0); c != (color.RGBA{200, 10, 10, 255}) {
			t.Errorf("pixel %d = %v, want channels kept with alpha dropped", x, c)
		}
	}

	deep := image.NewNRGBA64(image.Rect(0, 0, 1, 1))
	deep.SetNRGBA64(0, 0, color.NRGBA64{R: 0xffff, G: 0, B: 0x8000, A: 0})
	got, _ = ToRGB(deep)
	if c := got.RGBAAt(0, 0); c != (color.RGBA{255, 0, 128, 255}) {
		t.Errorf("16-bit pixel = %v, want {255 0 128 255}", c)
	}
}

package chroma

import (
	"fmt"
	"image"
)

// Thresholds tune the pixel tests.
type Thresholds struct {
	// ColorThreshold is the channel difference a pixel must exceed to count
	// as coloured in the channel-difference test.
	ColorThreshold int
	// SampleThreshold is the fraction of coloured pixels the
	// channel-difference test must exceed. The other tests scale it down.
	SampleThreshold float64
}

// DefaultThresholds returns a channel difference of 3 and a sample fraction
// of 0.001.
func DefaultThresholds() Thresholds {
	return Thresholds{ColorThreshold: 3, SampleThreshold: 0.001}
}

// Validate rejects thresholds that would make every or no image coloured.
func (t Thresholds) Validate() error {
	if t.ColorThreshold < 0 || t.ColorThreshold > 255 {
		return fmt.Errorf("chroma: color threshold %d outside 0-255", t.ColorThreshold)
	}
	if t.SampleThreshold <= 0 || t.SampleThreshold > 1 {
		return fmt.Errorf("chroma: sample threshold %g outside (0, 1]", t.SampleThreshold)
	}
	return nil
}

// Test is a named pixel predicate. A test fires when the fraction of sampled
// pixels matching Match is strictly greater than SampleThreshold*Scale.
type Test struct {
	Name  string
	Scale float64
	Match func(r, g, b int, t Thresholds) bool
}

// DefaultTests are run in order; the first to fire decides.
var DefaultTests = []Test{
	{Name: "channel-difference", Scale: 1, Match: channelDifference},
	{Name: "non-grayscale", Scale: 0.5, Match: nonGrayscale},
	{Name: "yellow-bias", Scale: 0.1, Match: yellowBias},
	{Name: "blue-bias", Scale: 0.1, Match: blueBias},
}

func channelDifference(r, g, b int, t Thresholds) bool {
	return abs(r-g) > t.ColorThreshold || abs(r-b) > t.ColorThreshold || abs(g-b) > t.ColorThreshold
}

func nonGrayscale(r, g, b int, _ Thresholds) bool {
	return r != g || g != b
}

func yellowBias(r, g, b int, _ Thresholds) bool {
	fr, fg, fb := float64(r), float64(g), float64(b)
	return fr > 0.8*fg && fg > 1.2*fb && r > 100
}

func blueBias(r, g, b int, _ Thresholds) bool {
	fr, fg, fb := float64(r), float64(g), float64(b)
	return fb > 1.2*fr && fb > 1.2*fg && b > 100
}

// Rasters above maxPixels are sampled on a grid of roughly 100 steps along
// the shorter side.
const (
	maxPixels     = 1_000_000
	sampleDivisor = 100
)

// Analysis is the result of running the tests over one raster.
type Analysis struct {
	Colored  bool
	Test     string  // name of the test that fired
	Fraction float64 // matching fraction for that test
	Sampled  int     // pixels examined per test
	Stride   int
}

// Analyzer runs pixel tests over RGB rasters.
type Analyzer struct {
	thresholds Thresholds
	tests      []Test
}

// NewAnalyzer returns an analyzer running tests (DefaultTests when nil).
func NewAnalyzer(t Thresholds, tests []Test) *Analyzer {
	if tests == nil {
		tests = DefaultTests
	}
	return &Analyzer{thresholds: t, tests: tests}
}

// Thresholds returns the thresholds the analyzer applies.
func (a *Analyzer) Thresholds() Thresholds { return a.thresholds }

// Analyze samples img and runs the tests in order, stopping at the first
// that fires. Each test counts its own pixels.
func (a *Analyzer) Analyze(img *image.RGBA) Analysis {
	grid := newSampleGrid(img)
	res := Analysis{Sampled: grid.count(), Stride: grid.stride}
	if res.Sampled == 0 {
		return res
	}
	for _, test := range a.tests {
		fired, frac := a.Evaluate(test, grid)
		if fired {
			res.Colored, res.Test, res.Fraction = true, test.Name, frac
			return res
		}
	}
	return res
}

// Evaluate runs a single test over grid.
func (a *Analyzer) Evaluate(test Test, grid SampleGrid) (bool, float64) {
	n := grid.count()
	if n == 0 {
		return false, 0
	}
	matched := 0
	grid.each(func(r, g, b int) {
		if test.Match(r, g, b, a.thresholds) {
			matched++
		}
	})
	frac := float64(matched) / float64(n)
	return frac > a.thresholds.SampleThreshold*test.Scale, frac
}

// SampleGrid is the set of pixels a test looks at.
type SampleGrid struct {
	img    *image.RGBA
	stride int
}

// NewSampleGrid returns the sampling grid Analyze uses for img.
func NewSampleGrid(img *image.RGBA) SampleGrid { return newSampleGrid(img) }

func newSampleGrid(img *image.RGBA) SampleGrid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := 1
	if w*h > maxPixels {
		stride = min(w, h) / sampleDivisor
		if stride < 1 {
			stride = 1
		}
	}
	return SampleGrid{img: img, stride: stride}
}

// Stride is the step between sampled rows and columns.
func (s SampleGrid) Stride() int { return s.stride }

func (s SampleGrid) count() int {
	b := s.img.Bounds()
	if b.Empty() {
		return 0
	}
	rows := (b.Dy() + s.stride - 1) / s.stride
	cols := (b.Dx() + s.stride - 1) / s.stride
	return rows * cols
}

func (s SampleGrid) each(fn func(r, g, b int)) {
	b := s.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += s.stride {
		row := s.img.Pix[(y-b.Min.Y)*s.img.Stride:]
		for x := 0; x < b.Dx(); x += s.stride {
			p := row[x*4 : x*4+3]
			fn(int(p[0]), int(p[1]), int(p[2]))
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

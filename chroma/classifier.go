package chroma

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/tsawler/figscan/colorspace"
	"github.com/tsawler/figscan/contentstream"
	"github.com/tsawler/figscan/raster"
)

// Image is an embedded image as the classifier sees it.
type Image interface {
	// ID names the image in diagnostics, e.g. its resource name.
	ID() string
	Dimensions() (width, height int)
	// Descriptor is the declared colour space, nil when absent.
	Descriptor() colorspace.Descriptor
	// Raster decodes the pixel data.
	Raster() (image.Image, error)
}

// Page supplies what the classifier inspects on one page.
type Page interface {
	Content() ([]byte, error)
	Images() ([]Image, error)
}

// Signals that decide a verdict. Pixel verdicts use PixelSignal.
const (
	SignalContentStream = "content-stream"
	SignalColorSpace    = "colorspace-fallback"
)

// PixelSignal names the verdict of a pixel test.
func PixelSignal(test string) string { return "pixels:" + test }

// Stage is where the classifier is in a page.
type Stage int

const (
	ScanningVectors Stage = iota
	ScanningImages
	Done
)

func (s Stage) String() string {
	switch s {
	case ScanningVectors:
		return "scanning-vectors"
	case ScanningImages:
		return "scanning-images"
	case Done:
		return "done"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Action is what happened to one image.
type Action string

const (
	ActionSkippedEmpty   Action = "skipped-empty"
	ActionSkippedNotRGB  Action = "skipped-not-rgb"
	ActionAnalyzed       Action = "analyzed"
	ActionDecodeFailed   Action = "decode-failed"
	ActionFallbackColour Action = "colorspace-fallback"
)

// Outcome records how one image was handled.
type Outcome struct {
	Image    string
	Width    int
	Height   int
	Hint     colorspace.Hint
	Action   Action
	Analysis *Analysis
	Err      error
}

// Verdict is the classification of a page.
type Verdict struct {
	Colored bool
	Signal  string // empty when not coloured
	Scan    contentstream.ColorScan

	// ContentErr and ImagesErr are recoverable failures reading the page.
	ContentErr error
	ImagesErr  error

	Outcomes []Outcome
}

// Err joins every failure recorded for the page.
func (v Verdict) Err() error {
	errs := []error{v.ContentErr, v.ImagesErr}
	for _, o := range v.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("image %s: %w", o.Image, o.Err))
		}
	}
	return errors.Join(errs...)
}

// Classifier decides page colour. It is safe for sequential reuse across
// pages.
type Classifier struct {
	analyzer *Analyzer
	logger   *slog.Logger
}

// NewClassifier returns a classifier using the default tests. A nil logger
// uses slog.Default().
func NewClassifier(t Thresholds, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{analyzer: NewAnalyzer(t, nil), logger: logger}
}

// WithAnalyzer replaces the analyzer, for custom test lists.
func (c *Classifier) WithAnalyzer(a *Analyzer) *Classifier {
	c.analyzer = a
	return c
}

// Classify walks page through scanning-vectors, scanning-images and done.
// It never fails: every error lands in the verdict and the colour defaults
// to false.
func (c *Classifier) Classify(page Page) Verdict {
	var v Verdict
	stage := ScanningVectors

	for stage != Done {
		switch stage {
		case ScanningVectors:
			stage = c.scanVectors(page, &v)
		case ScanningImages:
			c.scanImages(page, &v)
			stage = Done
		}
	}
	return v
}

func (c *Classifier) scanVectors(page Page, v *Verdict) Stage {
	content, err := page.Content()
	if err != nil {
		v.ContentErr = err
		c.logger.Debug("content stream unavailable", "error", err)
		return ScanningImages
	}

	scan, err := contentstream.ScanColor(content)
	v.Scan = scan
	if err != nil {
		// The scan covers every operation around the damage.
		c.logger.Debug("content stream partly unparseable", "error", err)
	}
	if scan.Colored {
		v.Colored, v.Signal = true, SignalContentStream
		return Done
	}
	return ScanningImages
}

func (c *Classifier) scanImages(page Page, v *Verdict) {
	images, err := page.Images()
	if err != nil {
		v.ImagesErr = err
		c.logger.Debug("image enumeration failed", "error", err)
	}

	// Once one image declares a colour family, a decode failure on any
	// later image falls back to it.
	declared := false
	for _, img := range images {
		out := c.classifyImage(img, declared)
		declared = declared || out.Hint.HasColor
		v.Outcomes = append(v.Outcomes, out)
		if out.Err != nil {
			c.logger.Debug("image not analysed", "image", out.Image, "action", out.Action, "error", out.Err)
		}

		switch {
		case out.Action == ActionFallbackColour:
			v.Colored, v.Signal = true, SignalColorSpace
			return
		case out.Analysis != nil && out.Analysis.Colored:
			v.Colored, v.Signal = true, PixelSignal(out.Analysis.Test)
			return
		}
	}
}

// classifyImage decodes and analyses one image. declared reports whether an
// earlier image on the page declared a colour family.
func (c *Classifier) classifyImage(img Image, declared bool) Outcome {
	out := Outcome{Image: img.ID()}
	out.Width, out.Height = img.Dimensions()
	if out.Width <= 0 || out.Height <= 0 {
		out.Action = ActionSkippedEmpty
		return out
	}

	out.Hint = colorspace.Inspect(img.Descriptor())

	decoded, err := decode(img)
	if err != nil {
		out.Err = err
		out.Action = ActionDecodeFailed
		if declared || out.Hint.HasColor {
			out.Action = ActionFallbackColour
		}
		return out
	}

	rgba, ok := raster.ToRGB(decoded)
	if !ok {
		out.Action = ActionSkippedNotRGB
		return out
	}

	res := c.analyzer.Analyze(rgba)
	out.Analysis = &res
	out.Action = ActionAnalyzed
	return out
}

// decode turns a decoder panic into an error so one broken image cannot
// abort the page.
func decode(img Image) (decoded image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			decoded, err = nil, fmt.Errorf("decoder panic: %v", r)
		}
	}()
	decoded, err = img.Raster()
	if err == nil && decoded == nil {
		err = errors.New("decoder returned no image")
	}
	return decoded, err
}

package figscan

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/tsawler/figscan/chroma"
	"github.com/tsawler/figscan/ocr"
	"github.com/tsawler/figscan/pdfdoc"
)

// pageSource presents a pdfdoc page to the classifier.
type pageSource struct {
	page *pdfdoc.Page
}

func (s pageSource) Content() ([]byte, error) {
	return s.page.Content()
}

func (s pageSource) Images() ([]chroma.Image, error) {
	images, err := s.page.Images()
	out := make([]chroma.Image, len(images))
	for i, img := range images {
		out[i] = img
	}
	return out, err
}

// recognizer reads text from a raster.
type recognizer interface {
	RecognizeImage(img image.Image) (string, error)
	Close() error
}

func openOCR(lang string) (recognizer, error) {
	c, err := ocr.New(lang)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// recognizePage runs OCR over every image on the page and joins the text.
// Images that cannot be decoded or read are reported in the joined error.
func recognizePage(r recognizer, page *pdfdoc.Page) (string, error) {
	images, err := page.Images()
	if err != nil {
		return "", err
	}

	var texts []string
	var errs []error
	for _, img := range images {
		if w, h := img.Dimensions(); w == 0 || h == 0 {
			continue
		}
		raster, err := img.Raster()
		if err != nil {
			errs = append(errs, fmt.Errorf("image %s: %w", img.ID(), err))
			continue
		}
		s, err := r.RecognizeImage(raster)
		if err != nil {
			errs = append(errs, fmt.Errorf("image %s: %w", img.ID(), err))
			continue
		}
		if s != "" {
			texts = append(texts, s)
		}
	}
	return strings.Join(texts, "\n"), errors.Join(errs...)
}

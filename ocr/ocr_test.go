//go:build ocr

package ocr

import (
	"image"
	"image/color"
	"testing"
)

// blockImage is white with one black rectangle; OCR may read nothing from it.
func blockImage(width, height int) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for x := 10; x < 50; x++ {
		for y := 10; y < 30; y++ {
			img.SetGray(x, y, color.Gray{})
		}
	}
	return img
}

func TestNew(t *testing.T) {
	client, err := New("eng")
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()
}

func TestRecognizeImage(t *testing.T) {
	client, err := New("eng")
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	if _, err := client.RecognizeImage(blockImage(100, 50)); err != nil {
		t.Errorf("RecognizeImage: %v", err)
	}
}

func TestCloseNil(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}
}

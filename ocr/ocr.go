//go:build ocr

// Package ocr recognizes text in page images with Tesseract through
// gosseract. It is used for pages whose content streams carry no text, such
// as scanned pages where a figure caption only exists as pixels.
//
// Tesseract must be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps one Tesseract instance. It is not safe for concurrent use.
type Client struct {
	client *gosseract.Client
}

// New creates a client for lang, a "+" separated list such as "eng+deu".
// An empty lang keeps Tesseract's default. Close the client when done.
func New(lang string) (*Client, error) {
	c := &Client{client: gosseract.NewClient()}
	if lang != "" {
		if err := c.SetLanguage(lang); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

// Close releases the Tesseract instance. It is safe on a nil client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// SetLanguage changes the recognition language.
func (c *Client) SetLanguage(lang string) error {
	if err := c.client.SetLanguage(lang); err != nil {
		return fmt.Errorf("ocr: set language %q: %w", lang, err)
	}
	return nil
}

// Recognize runs OCR on encoded image bytes (PNG, JPEG, TIFF).
func (c *Client) Recognize(data []byte) (string, error) {
	if err := c.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("ocr: set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// RecognizeImage runs OCR on a decoded raster.
func (c *Client) RecognizeImage(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("ocr: encode png: %w", err)
	}
	return c.Recognize(buf.Bytes())
}

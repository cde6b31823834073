//go:build !ocr

// Package ocr recognizes text in page images with Tesseract.
//
// This build has no OCR support and every call returns ErrOCRNotEnabled.
// Rebuild with the "ocr" tag to enable it:
//
//	go build -tags ocr ./...
package ocr

import (
	"errors"
	"image"
)

// ErrOCRNotEnabled is returned when the binary was built without the ocr tag.
var ErrOCRNotEnabled = errors.New("ocr: support not enabled; rebuild with -tags ocr")

// Client is the disabled OCR client.
type Client struct{}

// New always fails with ErrOCRNotEnabled.
func New(lang string) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op, safe on a nil client.
func (c *Client) Close() error { return nil }

// SetLanguage returns ErrOCRNotEnabled.
func (c *Client) SetLanguage(lang string) error { return ErrOCRNotEnabled }

// Recognize returns ErrOCRNotEnabled.
func (c *Client) Recognize(data []byte) (string, error) { return "", ErrOCRNotEnabled }

// RecognizeImage returns ErrOCRNotEnabled.
func (c *Client) RecognizeImage(img image.Image) (string, error) { return "", ErrOCRNotEnabled }

//go:build !ocr

package ocr

import (
	"errors"
	"image"
	"testing"
)

func TestStubNew(t *testing.T) {
	client, err := New("eng")
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Fatalf("expected ErrOCRNotEnabled, got %v", err)
	}
	if client != nil {
		t.Error("expected nil client")
	}
}

func TestStubMethods(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}

	c := &Client{}
	if err := c.SetLanguage("eng"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage: %v", err)
	}
	if _, err := c.Recognize([]byte{1}); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Recognize: %v", err)
	}
	if _, err := c.RecognizeImage(image.NewGray(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeImage: %v", err)
	}
}

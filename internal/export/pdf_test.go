package export

import (
	"bytes"
	"image"
	"testing"
)

func TestPDFProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48))); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestPDFRejectsEmptyImage(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, image.NewRGBA(image.Rectangle{})); err == nil {
		t.Fatal("expected error for empty image")
	}
}

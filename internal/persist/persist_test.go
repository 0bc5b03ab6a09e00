package persist

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"sync"
	"testing"
)

type captureUploader struct {
	mu    sync.Mutex
	blobs []Blob
	block chan struct{}
	err   error
}

func (c *captureUploader) Upload(ctx context.Context, b Blob) error {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blobs = append(c.blobs, b)
	return c.err
}

func TestSaveEncodesJPEG(t *testing.T) {
	up := &captureUploader{}
	br := NewBridge()
	canvas := image.NewRGBA(image.Rect(0, 0, 800, 600))
	blob, err := br.Save(context.Background(), canvas, "/photos/cat.png", "parent-42", up)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if blob.ParentID != "parent-42" {
		t.Errorf("ParentID = %q", blob.ParentID)
	}
	img, err := jpeg.Decode(bytes.NewReader(blob.Data))
	if err != nil {
		t.Fatalf("decode saved blob: %v", err)
	}
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 600 {
		t.Errorf("decoded size %v, want 800x600", img.Bounds())
	}
	if len(up.blobs) != 1 {
		t.Fatalf("uploader got %d blobs, want 1", len(up.blobs))
	}
}

func TestDeriveFilename(t *testing.T) {
	cases := []struct {
		source, id, want string
	}{
		{"/photos/cat.png", "abc12345", "cat-marked-abc12345.jpg"},
		{"holiday.jpeg", "x", "holiday-marked-x.jpg"},
		{"noext", "id", "noext-marked-id.jpg"},
		{"", "id", "image-marked-id.jpg"},
	}
	for _, c := range cases {
		if got := DeriveFilename(c.source, c.id); got != c.want {
			t.Errorf("DeriveFilename(%q, %q) = %q, want %q", c.source, c.id, got, c.want)
		}
	}
}

func TestSecondSaveRejectedWhileInFlight(t *testing.T) {
	up := &captureUploader{block: make(chan struct{})}
	br := NewBridge()
	canvas := image.NewRGBA(image.Rect(0, 0, 10, 10))

	done := make(chan error, 1)
	go func() {
		_, err := br.Save(context.Background(), canvas, "a.png", "", up)
		done <- err
	}()
	for !br.Saving() {
	}
	if _, err := br.Save(context.Background(), canvas, "b.png", "", up); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("second save error = %v, want ErrSaveInFlight", err)
	}
	close(up.block)
	if err := <-done; err != nil {
		t.Fatalf("first save: %v", err)
	}
	// After completion a new save goes through again.
	if _, err := br.Save(context.Background(), canvas, "c.png", "", up); err != nil {
		t.Fatalf("save after completion: %v", err)
	}
}

func TestEncodeMarksInFlightUntilDispatch(t *testing.T) {
	br := NewBridge()
	canvas := image.NewRGBA(image.Rect(0, 0, 8, 8))
	blob, err := br.Encode(canvas, "a.png", "p1")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !br.Saving() {
		t.Fatal("not in flight after Encode")
	}
	if _, err := br.Encode(canvas, "b.png", ""); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("second Encode error = %v, want ErrSaveInFlight", err)
	}
	up := &captureUploader{}
	if err := br.Dispatch(context.Background(), blob, up); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if br.Saving() {
		t.Error("still in flight after Dispatch")
	}
	if len(up.blobs) != 1 || up.blobs[0].ParentID != "p1" {
		t.Errorf("uploader got %+v", up.blobs)
	}
}

func TestUploadErrorSurfaced(t *testing.T) {
	up := &captureUploader{err: errors.New("boom")}
	br := NewBridge()
	_, err := br.Save(context.Background(), image.NewRGBA(image.Rect(0, 0, 4, 4)), "a.png", "", up)
	if err == nil {
		t.Fatal("expected upload error")
	}
	if br.Saving() {
		t.Error("bridge stuck in saving state after failure")
	}
}

// Package persist flattens the composited canvas into a derivative
// JPEG and hands it to an uploader. The engine performs no disk or
// network IO itself; uploaders do.
package persist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// DefaultQuality is the fixed JPEG quality of derivative images.
const DefaultQuality = 95

// ErrSaveInFlight is returned when Save is called while a previous
// save has not completed.
var ErrSaveInFlight = errors.New("save already in flight")

// Blob is one flattened derivative ready for upload.
type Blob struct {
	Data     []byte
	Filename string
	ParentID string
}

// Uploader receives the derivative. Implementations live outside the
// engine (directory writer, LAN service, ...).
type Uploader interface {
	Upload(ctx context.Context, b Blob) error
}

// Bridge encodes and dispatches saves. At most one save is in flight
// at a time; concurrent attempts fail fast with ErrSaveInFlight.
type Bridge struct {
	Quality int

	saving atomic.Bool
}

// NewBridge returns a bridge at the default quality.
func NewBridge() *Bridge {
	return &Bridge{Quality: DefaultQuality}
}

// Encode flattens canvas to a JPEG blob and marks the save in flight.
// The canvas is read only during this call; once the blob exists the
// canvas may change freely, so hosts encode on the goroutine that owns
// the canvas and dispatch the blob from wherever they like. The
// in-flight flag stays set until Dispatch finishes.
func (br *Bridge) Encode(canvas image.Image, source, parentID string) (Blob, error) {
	if !br.saving.CompareAndSwap(false, true) {
		return Blob{}, ErrSaveInFlight
	}
	quality := br.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		br.saving.Store(false)
		return Blob{}, fmt.Errorf("encode derivative: %w", err)
	}
	return Blob{
		Data:     buf.Bytes(),
		Filename: DeriveFilename(source, ShortID()),
		ParentID: parentID,
	}, nil
}

// Dispatch hands an encoded blob to the uploader and ends the
// in-flight save, success or not. It touches nothing but the blob and
// the atomic flag, so it is safe off the encoding goroutine.
func (br *Bridge) Dispatch(ctx context.Context, b Blob, up Uploader) error {
	defer br.saving.Store(false)
	if err := up.Upload(ctx, b); err != nil {
		return fmt.Errorf("upload %s: %w", b.Filename, err)
	}
	return nil
}

// Save is the synchronous path: encode then dispatch on the caller's
// goroutine. Nothing the editor holds is mutated, so a failed save can
// be retried as-is.
func (br *Bridge) Save(ctx context.Context, canvas image.Image, source, parentID string, up Uploader) (Blob, error) {
	b, err := br.Encode(canvas, source, parentID)
	if err != nil {
		return Blob{}, err
	}
	if err := br.Dispatch(ctx, b, up); err != nil {
		return Blob{}, err
	}
	return b, nil
}

// Saving reports whether a save is currently in flight.
func (br *Bridge) Saving() bool {
	return br.saving.Load()
}

// DeriveFilename builds the derivative name from the source image's
// base name: "photo.png" becomes "photo-marked-<id>.jpg". The original
// file is never overwritten.
func DeriveFilename(source, id string) string {
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if stem == "" || stem == "." {
		stem = "image"
	}
	return fmt.Sprintf("%s-marked-%s.jpg", stem, id)
}

// ShortID returns an 8-character unique id for derivative filenames.
func ShortID() string {
	return uuid.NewString()[:8]
}

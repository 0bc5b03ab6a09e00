// Package source loads base images for markup. Decoding happens off
// the event loop; completion is reported through a callback so the
// editor enables input only once a valid image exists.
package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

// Decode reads a PNG or JPEG image.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decoded %s image is empty", format)
	}
	return img, nil
}

// LoadFile decodes the image at path.
func LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	return img, nil
}

// Load decodes the image at path on its own goroutine and calls done
// exactly once with either the image or the error. The callback runs
// on the loader goroutine; hosts marshal it back onto their event
// loop.
func Load(path string, done func(image.Image, error)) {
	go func() {
		done(LoadFile(path))
	}()
}

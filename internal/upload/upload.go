// Package upload provides the persist.Uploader implementations the
// editor ships with: a directory writer for local saves and a LAN
// service client that discovers a photo-storage endpoint over mDNS
// and transfers the derivative over a websocket.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/photomark/internal/persist"
)

// Dir writes derivatives into a directory, one file per blob, named
// by the blob's derived filename.
type Dir struct {
	Path string
}

// Upload writes exactly the blob bytes to Path/Filename.
func (d Dir) Upload(_ context.Context, b persist.Blob) error {
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return fmt.Errorf("create save dir %q: %w", d.Path, err)
	}
	dst := filepath.Join(d.Path, b.Filename)
	if err := os.WriteFile(dst, b.Data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", dst, err)
	}
	return nil
}

// File writes the blob to one exact path, ignoring the derived
// filename. Used by CLI output flags.
type File struct {
	Path string
}

func (f File) Upload(_ context.Context, b persist.Blob) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.Path, b.Data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", f.Path, err)
	}
	return nil
}

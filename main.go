// Quick-start entry: photomark-view opens an image straight in the
// markup window with local saves, no configuration. The full CLI lives
// in cmd/photomark.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/example/photomark/internal/editor"
	"github.com/example/photomark/internal/source"
	"github.com/example/photomark/internal/theme"
	"github.com/example/photomark/internal/ui"
	"github.com/example/photomark/internal/upload"
)

func main() {
	saveDir := flag.String("save-dir", "", "directory for saved derivatives (defaults to the image's directory)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-save-dir dir] <image>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	path := flag.Arg(0)

	img, err := source.LoadFile(path)
	if err != nil {
		log.Fatalf("load %s: %v", path, err)
	}

	ed := editor.New()
	ed.SetImage(img, filepath.Base(path), "")

	dir := *saveDir
	if dir == "" {
		dir = filepath.Dir(path)
	}

	w := ui.New(ed,
		ui.WithTheme(theme.Default()),
		ui.WithUploader(upload.Dir{Path: dir}),
		ui.WithSourcePath(path),
	)
	w.Run()
}

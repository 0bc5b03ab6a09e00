package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/photomark/internal/editor"
	"github.com/example/photomark/internal/persist"
	"github.com/example/photomark/internal/ui"
	"github.com/example/photomark/internal/upload"
)

// editCmd opens the interactive markup window.
type editCmd struct {
	*root
	fs       *flag.FlagSet
	file     string
	saveDir  string
	endpoint string
	discover bool
	parentID string
}

func (c *editCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	c := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to open")
	fs.StringVar(&c.saveDir, "save-dir", "", "directory for saved derivatives (defaults to the image's directory)")
	fs.StringVar(&c.endpoint, "endpoint", "", "upload service address host:port, bypassing discovery")
	fs.BoolVar(&c.discover, "discover", false, "discover the upload service over mDNS instead of saving locally")
	fs.StringVar(&c.parentID, "parent", "", "parent record id attached to saved derivatives")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() == 1 {
		c.file = fs.Arg(0)
	}
	if c.file == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *editCmd) Run() error {
	cfg := c.root.config
	ed := editor.New()
	ed.SetQuality(cfg.Quality)
	if cfg.DefaultColor != "" {
		if err := ed.SetColor(cfg.DefaultColor); err != nil {
			fmt.Fprintf(os.Stderr, "warning: invalid default_color %q: %v\n", cfg.DefaultColor, err)
		}
	}
	ed.SetWidth(cfg.DefaultWidth)
	if cfg.WheelStep > 0 {
		ed.Router().WheelStep = cfg.WheelStep
	}

	// The window decodes the image off its event loop; input stays
	// disabled until the load lands.
	w := ui.New(ed,
		ui.WithTheme(c.root.activeTheme),
		ui.WithUploader(c.uploader()),
		ui.WithNotifier(c.root.notifier),
		ui.WithSourcePath(c.file),
		ui.WithParentID(c.parentID),
	)
	w.Run()
	return nil
}

// uploader picks the save destination: a direct endpoint beats
// discovery beats the local directory writer.
func (c *editCmd) uploader() persist.Uploader {
	cfg := c.root.config
	endpoint := c.endpoint
	if endpoint == "" {
		endpoint = cfg.Upload.Endpoint
	}
	if endpoint != "" {
		return upload.Service{Endpoint: endpoint}
	}
	if c.discover || cfg.Upload.Discover {
		return upload.Service{}
	}
	dir := c.saveDir
	if dir == "" {
		dir = cfg.SaveDir
	}
	if dir == "" {
		dir = filepath.Dir(c.file)
	}
	return upload.Dir{Path: dir}
}

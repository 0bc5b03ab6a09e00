package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/photomark/internal/export"
	"github.com/example/photomark/internal/source"
)

// exportCmd flattens an image file to a single-page PDF.
type exportCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	output string
}

func (c *exportCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	c := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to export")
	fs.StringVar(&c.output, "output", "", "output PDF path (defaults to the input name with .pdf)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() == 1 {
		c.file = fs.Arg(0)
	}
	if c.file == "" {
		return nil, &UsageError{of: c}
	}
	if c.output == "" {
		c.output = strings.TrimSuffix(c.file, filepath.Ext(c.file)) + ".pdf"
	}
	return c, nil
}

func (c *exportCmd) Run() error {
	img, err := source.LoadFile(c.file)
	if err != nil {
		return err
	}
	out, err := os.Create(c.output)
	if err != nil {
		return err
	}
	defer func(out *os.File) {
		if err := out.Close(); err != nil {
			log.Printf("error closing %q: %v", out.Name(), err)
		}
	}(out)
	if err := export.PDF(out, img); err != nil {
		return err
	}
	saved := c.output
	if abs, err := filepath.Abs(c.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	return nil
}

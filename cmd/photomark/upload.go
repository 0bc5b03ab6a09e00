package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/photomark/internal/persist"
	"github.com/example/photomark/internal/upload"
)

// uploadCmd sends an existing file to the LAN photo-storage service.
type uploadCmd struct {
	*root
	fs       *flag.FlagSet
	file     string
	endpoint string
	parentID string
	timeout  time.Duration
}

func (c *uploadCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseUploadCmd(args []string, r *root) (*uploadCmd, error) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	c := &uploadCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	endpoint := ""
	if r != nil && r.config != nil {
		endpoint = r.config.Upload.Endpoint
	}
	fs.StringVar(&c.file, "file", "", "file to upload")
	fs.StringVar(&c.endpoint, "endpoint", endpoint, "service address host:port, bypassing mDNS discovery")
	fs.StringVar(&c.parentID, "parent", "", "parent record id attached to the upload")
	fs.DurationVar(&c.timeout, "timeout", 10*time.Second, "discovery and transfer deadline")
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

func (c *uploadCmd) Run() error {
	data, err := os.ReadFile(c.file)
	if err != nil {
		return err
	}
	blob := persist.Blob{
		Data:     data,
		Filename: filepath.Base(c.file),
		ParentID: c.parentID,
	}
	svc := upload.Service{Endpoint: c.endpoint, Timeout: c.timeout}
	ctx, cancel := context.WithTimeout(context.Background(), 2*c.timeout)
	defer cancel()
	if err := svc.Upload(ctx, blob); err != nil {
		c.notifyError(err.Error())
		return err
	}
	fmt.Fprintf(os.Stderr, "uploaded %s\n", blob.Filename)
	c.notifyUpload(blob.Filename)
	return nil
}

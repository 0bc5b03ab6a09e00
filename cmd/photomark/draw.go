package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/photomark/internal/annotation"
	"github.com/example/photomark/internal/editor"
	"github.com/example/photomark/internal/gesture"
	"github.com/example/photomark/internal/persist"
	"github.com/example/photomark/internal/source"
	"github.com/example/photomark/internal/upload"
	"github.com/example/photomark/internal/viewport"
)

// drawCmd applies one markup shape to an image headlessly, driving the
// same gesture engine the window uses, and saves the derivative JPEG.
type drawCmd struct {
	file      string
	output    string
	colorSpec string
	color     color.RGBA
	width     float64
	quality   int
	shape     string
	coords    []int
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") {
		c, err := annotation.ParseHex(spec)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	defaultColor := "#FF0000"
	defaultWidth := 4.0
	defaultQuality := persist.DefaultQuality
	if r != nil && r.config != nil {
		if r.config.DefaultColor != "" {
			defaultColor = r.config.DefaultColor
		}
		if r.config.DefaultWidth > 0 {
			defaultWidth = r.config.DefaultWidth
		}
		if r.config.Quality > 0 {
			defaultQuality = r.config.Quality
		}
	}
	fs.StringVar(&d.file, "file", "", "input image file")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to a derived name next to the input)")
	fs.StringVar(&d.colorSpec, "color", defaultColor, "ink color name or hex value")
	fs.Float64Var(&d.width, "width", defaultWidth, "stroke width in canvas pixels")
	fs.IntVar(&d.quality, "quality", defaultQuality, "JPEG quality of the derivative, 1-100")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.shape = strings.ToLower(positionals[0])
	remaining := positionals[1:]
	switch d.shape {
	case "path", "erase":
		d.coords, err = expectCoordPairs(remaining, d.shape)
	case "circle":
		d.coords, err = expectInts(remaining, 3, d.shape)
		if err == nil && d.coords[2] <= 0 {
			return nil, fmt.Errorf("radius must be positive")
		}
	default:
		return nil, fmt.Errorf("unsupported shape %q", d.shape)
	}
	if err != nil {
		return nil, err
	}
	colorVal, err := parseColor(d.colorSpec)
	if err != nil {
		return nil, err
	}
	d.color = colorVal
	if d.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if d.width <= 0 {
		d.width = 1
	}
	if d.quality < 1 || d.quality > 100 {
		return nil, fmt.Errorf("quality must be between 1 and 100")
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	img, err := source.LoadFile(d.file)
	if err != nil {
		return err
	}
	ed := editor.New()
	ed.SetQuality(d.quality)
	ed.SetImage(img, filepath.Base(d.file), "")
	ed.SetColorRGBA(d.color)
	ed.SetWidth(d.width)

	switch d.shape {
	case "path":
		ed.SetTool(gesture.ToolPath)
		stroke(ed.Router(), d.coords)
	case "erase":
		ed.SetTool(gesture.ToolErase)
		stroke(ed.Router(), d.coords)
	case "circle":
		ed.SetTool(gesture.ToolCircle)
		cx, cy, radius := d.coords[0], d.coords[1], d.coords[2]
		r := ed.Router()
		r.Down(pointerAt(float64(cx), float64(cy)))
		edge := pointerAt(float64(cx+radius), float64(cy))
		r.Move(edge)
		r.Up(edge)
	}

	var up persist.Uploader
	if d.output != "" {
		up = upload.File{Path: d.output}
	} else {
		up = upload.Dir{Path: filepath.Dir(d.file)}
	}
	blob, err := ed.Save(context.Background(), up)
	if err != nil {
		d.notifyError(err.Error())
		return err
	}
	saved := d.output
	if saved == "" {
		saved = filepath.Join(filepath.Dir(d.file), blob.Filename)
	}
	if abs, err := filepath.Abs(saved); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	d.notifySave(saved, ed.Canvas())
	return nil
}

// stroke replays a polyline through the router as one press-drag-release.
func stroke(r *gesture.Router, coords []int) {
	r.Down(pointerAt(float64(coords[0]), float64(coords[1])))
	for i := 2; i < len(coords); i += 2 {
		r.Move(pointerAt(float64(coords[i]), float64(coords[i+1])))
	}
	last := len(coords) - 2
	r.Up(pointerAt(float64(coords[last]), float64(coords[last+1])))
}

// pointerAt builds a single-touch event at canvas coordinates. Headless
// markup runs at zoom 1 with no pan, so client and canvas coincide.
func pointerAt(x, y float64) gesture.Event {
	c := viewport.Point{X: x, Y: y}
	return gesture.Event{
		Canvas:  annotation.Point{X: x, Y: y},
		Client:  c,
		Touches: []viewport.Point{c},
	}
}

func expectInts(args []string, n int, shape string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", shape, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func expectCoordPairs(args []string, shape string) ([]int, error) {
	if len(args) < 4 || len(args)%2 != 0 {
		return nil, fmt.Errorf("%s requires at least two x y coordinate pairs", shape)
	}
	vals := make([]int, len(args))
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

var drawFlagNames = map[string]struct{}{
	"file":    {},
	"output":  {},
	"color":   {},
	"width":   {},
	"quality": {},
}

// splitDrawArgs separates known flags from shape positionals so flags
// may appear after the shape name.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		// Normalise to single dash form for the flag parser.
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}

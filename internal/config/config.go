package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/photomark/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Upload bool
	Error  bool
}

// Upload holds LAN upload settings. With Endpoint set the service is
// dialed directly; with Discover the endpoint is found over mDNS.
type Upload struct {
	Endpoint string
	Discover bool
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	SaveDir      string
	Quality      int
	DefaultColor string
	DefaultWidth float64
	WheelStep    float64
	Notify       Notify
	Upload       Upload
	Themes       map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:        "", // empty falls back to Default
		Quality:      95,
		DefaultColor: "#FF0000",
		DefaultWidth: 4,
		WheelStep:    0.25,
		Notify: Notify{
			Save:  true,
			Error: true,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "quality = %d\n", c.Quality)
	fmt.Fprintf(&sb, "default_color = %s\n", c.DefaultColor)
	fmt.Fprintf(&sb, "default_width = %g\n", c.DefaultWidth)
	fmt.Fprintf(&sb, "wheel_step = %g\n", c.WheelStep)
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "upload = %v\n", c.Notify.Upload)
	fmt.Fprintf(&sb, "error = %v\n", c.Notify.Error)
	sb.WriteString("\n")

	// Upload section
	sb.WriteString("[upload]\n")
	if c.Upload.Endpoint != "" {
		fmt.Fprintf(&sb, "endpoint = %s\n", c.Upload.Endpoint)
	}
	fmt.Fprintf(&sb, "discover = %v\n", c.Upload.Discover)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Background: %s\n", toHex(t.Background))
		fmt.Fprintf(&sb, "Foreground: %s\n", toHex(t.Foreground))
		fmt.Fprintf(&sb, "ToolbarBackground: %s\n", toHex(t.ToolbarBackground))
		fmt.Fprintf(&sb, "ButtonBackground: %s\n", toHex(t.ButtonBackground))
		fmt.Fprintf(&sb, "ButtonBackgroundHover: %s\n", toHex(t.ButtonBackgroundHover))
		fmt.Fprintf(&sb, "ButtonBackgroundPress: %s\n", toHex(t.ButtonBackgroundPress))
		fmt.Fprintf(&sb, "ButtonActive: %s\n", toHex(t.ButtonActive))
		fmt.Fprintf(&sb, "ButtonText: %s\n", toHex(t.ButtonText))
		fmt.Fprintf(&sb, "ButtonBorder: %s\n", toHex(t.ButtonBorder))
		fmt.Fprintf(&sb, "CheckerLight: %s\n", toHex(t.CheckerLight))
		fmt.Fprintf(&sb, "CheckerDark: %s\n", toHex(t.CheckerDark))
		sb.WriteString("\n")
	}

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

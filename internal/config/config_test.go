package config

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/marked
quality = 90
default_color = #00FF00
default_width = 6
wheel_step = 0.5

[notify]
save = false
upload = true
error = true

[upload]
endpoint = 192.168.1.20:8811
discover = true

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/marked" {
		t.Errorf("Expected save_dir '/tmp/marked', got '%s'", cfg.SaveDir)
	}
	if cfg.Quality != 90 {
		t.Errorf("Expected quality 90, got %d", cfg.Quality)
	}
	if cfg.DefaultColor != "#00FF00" {
		t.Errorf("Expected default_color '#00FF00', got %q", cfg.DefaultColor)
	}
	if cfg.DefaultWidth != 6 {
		t.Errorf("Expected default_width 6, got %v", cfg.DefaultWidth)
	}
	if cfg.WheelStep != 0.5 {
		t.Errorf("Expected wheel_step 0.5, got %v", cfg.WheelStep)
	}

	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Upload {
		t.Error("Expected notify.upload to be true")
	}
	if !cfg.Notify.Error {
		t.Error("Expected notify.error to be true")
	}

	if cfg.Upload.Endpoint != "192.168.1.20:8811" {
		t.Errorf("Unexpected upload endpoint %q", cfg.Upload.Endpoint)
	}
	if !cfg.Upload.Discover {
		t.Error("Expected upload.discover to be true")
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for _, input := range []string{
		"quality = 0",
		"quality = 101",
		"quality = abc",
		"default_color = red",
		"default_width = -2",
		"wheel_step = zero",
		"[notify]\nsave = maybe",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q): expected error", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/marked
quality = 85
default_color = #3366FF
default_width = 3
wheel_step = 0.25

[notify]
save = true
upload = true
error = false

[upload]
endpoint = photobox.local:9000
discover = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Quality != cfg2.Quality {
		t.Errorf("Quality mismatch: %d vs %d", cfg.Quality, cfg2.Quality)
	}
	if cfg.DefaultColor != cfg2.DefaultColor {
		t.Errorf("DefaultColor mismatch: %q vs %q", cfg.DefaultColor, cfg2.DefaultColor)
	}
	if cfg.DefaultWidth != cfg2.DefaultWidth {
		t.Errorf("DefaultWidth mismatch: %v vs %v", cfg.DefaultWidth, cfg2.DefaultWidth)
	}
	if cfg.WheelStep != cfg2.WheelStep {
		t.Errorf("WheelStep mismatch: %v vs %v", cfg.WheelStep, cfg2.WheelStep)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Upload != cfg2.Upload {
		t.Errorf("Upload mismatch: %+v vs %+v", cfg.Upload, cfg2.Upload)
	}

	// Check theme persistence
	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if t1.Background != t2.Background {
		t.Errorf("Theme background mismatch: %v vs %v", t1.Background, t2.Background)
	}
}

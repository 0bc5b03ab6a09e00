package theme

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	src := `
# comment
Name: Custom
Background: #101010
ButtonActive: #FF000080
`
	th, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "Custom" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x10, 0x10, 255}) {
		t.Errorf("Background = %v", th.Background)
	}
	if th.ButtonActive != (color.RGBA{0xFF, 0, 0, 0x80}) {
		t.Errorf("ButtonActive = %v", th.ButtonActive)
	}
	// Unset keys keep defaults.
	if th.Foreground != Default().Foreground {
		t.Errorf("Foreground = %v, want default", th.Foreground)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: red")); err == nil {
		t.Fatal("expected error for non-hex color")
	}
}

func TestBuiltin(t *testing.T) {
	if got := Builtin(""); got == nil || got.Name != "Default" {
		t.Errorf("Builtin(\"\") = %v", got)
	}
	if got := Builtin("DARK"); got == nil || got.Name != "Dark" {
		t.Errorf("Builtin(\"DARK\") = %v", got)
	}
	if got := Builtin("nope"); got != nil {
		t.Errorf("Builtin(\"nope\") = %v, want nil", got)
	}
}

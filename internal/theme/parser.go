package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strings"

	"github.com/example/photomark/internal/annotation"
)

// Parse reads a theme definition: one "Key: #RRGGBB" or "Key: #RRGGBBAA"
// pair per line, keys matching the Theme field names. Unknown keys are
// skipped for forward compatibility; hex parsing is shared with the
// annotation color model.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	fields := reflect.ValueOf(t).Elem()
	rgbaType := reflect.TypeOf(color.RGBA{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if key == "Name" {
			t.Name = value
			continue
		}
		field := fields.FieldByName(key)
		if !field.IsValid() || field.Type() != rgbaType {
			continue
		}
		col, err := annotation.ParseHex(value)
		if err != nil {
			return nil, fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		field.Set(reflect.ValueOf(col))
	}
	return t, scanner.Err()
}

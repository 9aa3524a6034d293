package properties

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gogpu/gg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for table files that are neither
	// TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported defaults file format")
	// ErrUnknownProperty is returned for property names with no decoder.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrInvalidValue is returned when a property value has the wrong shape.
	ErrInvalidValue = errors.New("invalid property value")
)

// tableFile is the on-disk layout of a defaults table:
//
//	[defaults.sized_box]
//	background = "#203040"
//	padding = [4, 8]
type tableFile struct {
	Defaults map[string]map[string]any `toml:"defaults" yaml:"defaults"`
}

// Decoder converts a raw configuration value into a Property.
type Decoder func(raw any) (Property, error)

var decoders = map[Kind]Decoder{
	KindBackground: func(raw any) (Property, error) {
		c, err := decodeColor(raw)
		return Background{Color: c}, err
	},
	KindBorderColor: func(raw any) (Property, error) {
		c, err := decodeColor(raw)
		return BorderColor{Color: c}, err
	},
	KindBorderWidth: func(raw any) (Property, error) {
		v, err := decodeNumber(raw)
		return BorderWidth{Width: v}, err
	},
	KindCornerRadius: func(raw any) (Property, error) {
		v, err := decodeNumber(raw)
		return CornerRadius{Radius: v}, err
	},
	KindPadding: decodePadding,
}

// RegisterDecoder makes the loader understand a new property name.
// Call it during setup only.
func RegisterDecoder(k Kind, d Decoder) {
	decoders[k] = d
}

// LoadTable reads a defaults table from path. The format is chosen by
// extension: .toml, .yaml or .yml.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var t *Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		t, err = ParseTOML(data)
	case ".yaml", ".yml":
		t, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return t, nil
}

// ParseTOML decodes a TOML defaults table.
func ParseTOML(data []byte) (*Table, error) {
	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.build()
}

// ParseYAML decodes a YAML defaults table.
func ParseYAML(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.build()
}

func (f tableFile) build() (*Table, error) {
	t := NewTable()
	// Sorted so that the first error reported is stable.
	kinds := make([]string, 0, len(f.Defaults))
	for k := range f.Defaults {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	for _, widgetKind := range kinds {
		props := f.Defaults[widgetKind]
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			p, err := Decode(Kind(name), props[name])
			if err != nil {
				return nil, fmt.Errorf("defaults.%s: %w", widgetKind, err)
			}
			t.Set(widgetKind, p)
		}
	}
	return t, nil
}

// Decode converts one raw configuration value into the property named k.
func Decode(k Kind, raw any) (Property, error) {
	d, ok := decoders[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, k)
	}
	p, err := d(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k, err)
	}
	return p, nil
}

func decodeColor(raw any) (gg.RGBA, error) {
	s, ok := raw.(string)
	if !ok {
		return gg.RGBA{}, fmt.Errorf("%w: color must be a hex string, got %T", ErrInvalidValue, raw)
	}
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("%w: bad hex color %q", ErrInvalidValue, s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return gg.RGBA{}, fmt.Errorf("%w: bad hex color %q", ErrInvalidValue, s)
		}
	}
	return gg.Hex(hex), nil
}

func decodeNumber(raw any) (float64, error) {
	switch v := raw.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: expected a number, got %T", ErrInvalidValue, raw)
	}
}

// decodePadding accepts a single number, [vertical, horizontal] or
// [top, right, bottom, left].
func decodePadding(raw any) (Property, error) {
	if list, ok := raw.([]any); ok {
		vals := make([]float64, len(list))
		for i, item := range list {
			v, err := decodeNumber(item)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		switch len(vals) {
		case 1:
			return PaddingAll(vals[0]), nil
		case 2:
			return PaddingXY(vals[1], vals[0]), nil
		case 4:
			return Padding{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
		default:
			return nil, fmt.Errorf("%w: padding takes 1, 2 or 4 values, got %d", ErrInvalidValue, len(vals))
		}
	}
	v, err := decodeNumber(raw)
	if err != nil {
		return nil, err
	}
	return PaddingAll(v), nil
}

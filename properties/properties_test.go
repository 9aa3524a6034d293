package properties

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
)

func TestRefFallsBackToDefaults(t *testing.T) {
	defaults := NewTable().
		Set("box", BorderWidth{Width: 2}).
		Set("box", Background{Color: gg.Hex("#00f")})
	local := Map{}
	local.Set(BorderWidth{Width: 5})

	ref := NewRef(local, defaults.For("box"))

	if got := Get[BorderWidth](ref); got.Width != 5 {
		t.Errorf("override BorderWidth = %v, want 5", got.Width)
	}
	if got := Get[Background](ref); got.Color != gg.Hex("#00f") {
		t.Errorf("default Background = %v", got.Color)
	}
	if _, ok := Lookup[CornerRadius](ref); ok {
		t.Error("CornerRadius should be absent")
	}
	if got := Get[CornerRadius](ref); got.Radius != 0 {
		t.Errorf("absent property should be zero, got %v", got)
	}
}

func TestMutInsertRemove(t *testing.T) {
	var local Map
	defaults := Map{KindPadding: PaddingAll(3)}
	m := NewMut(&local, defaults)

	if _, replaced := m.Insert(PaddingAll(10)); replaced {
		t.Error("first insert should not replace")
	}
	if local == nil {
		t.Fatal("Insert should allocate the override map")
	}
	if got := Get[Padding](m.Ref()); got.Top != 10 {
		t.Errorf("Padding after insert = %v", got)
	}

	old, ok := m.Remove(KindPadding)
	if !ok || old.(Padding).Top != 10 {
		t.Errorf("Remove = %v, %v", old, ok)
	}
	if got := Get[Padding](m.Ref()); got.Top != 3 {
		t.Errorf("Padding after remove should fall back to default, got %v", got)
	}
	if len(defaults) != 1 {
		t.Error("defaults must never be modified")
	}
}

func TestDefaultTable(t *testing.T) {
	orig := DefaultTable()
	defer SetDefaultTable(orig)

	custom := NewTable().Set("image", CornerRadius{Radius: 4})
	SetDefaultTable(custom)
	if DefaultTable() != custom {
		t.Error("SetDefaultTable did not install table")
	}
	SetDefaultTable(nil)
	if DefaultTable() == nil || len(DefaultTable().Kinds()) != 0 {
		t.Error("SetDefaultTable(nil) should install an empty table")
	}
}

func TestNilTable(t *testing.T) {
	var tbl *Table
	if tbl.For("x") != nil || tbl.Kinds() != nil {
		t.Error("nil table should have no defaults")
	}
}

const tomlTable = `
[defaults.sized_box]
background = "#ff0000"
border_width = 2
padding = [4, 8]

[defaults.flex]
corner_radius = 6.5
padding = 3
`

const yamlTable = `
defaults:
  sized_box:
    background: "#ff0000"
    border_width: 2
    padding: [4, 8]
  flex:
    corner_radius: 6.5
    padding: 3
`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		parse func([]byte) (*Table, error)
		data  string
	}{
		{"toml", ParseTOML, tomlTable},
		{"yaml", ParseYAML, yamlTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := tt.parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			box := NewRef(nil, tbl.For("sized_box"))
			if got := Get[Background](box).Color; got != gg.Hex("ff0000") {
				t.Errorf("background = %v", got)
			}
			if got := Get[BorderWidth](box).Width; got != 2 {
				t.Errorf("border_width = %v", got)
			}
			if got := Get[Padding](box); got != PaddingXY(8, 4) {
				t.Errorf("padding = %+v", got)
			}
			flex := NewRef(nil, tbl.For("flex"))
			if got := Get[CornerRadius](flex).Radius; got != 6.5 {
				t.Errorf("corner_radius = %v", got)
			}
			if got := Get[Padding](flex); got != PaddingAll(3) {
				t.Errorf("padding = %+v", got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"unknown property", "[defaults.x]\nshadow = 1\n", ErrUnknownProperty},
		{"color not string", "[defaults.x]\nbackground = 1\n", ErrInvalidValue},
		{"bad hex", "[defaults.x]\nbackground = \"#zzz\"\n", ErrInvalidValue},
		{"number as string", "[defaults.x]\nborder_width = \"2\"\n", ErrInvalidValue},
		{"padding arity", "[defaults.x]\npadding = [1, 2, 3]\n", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTOML([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	for _, p := range []string{write("a.toml", tomlTable), write("b.yml", yamlTable)} {
		tbl, err := LoadTable(p)
		if err != nil {
			t.Fatalf("LoadTable(%s): %v", p, err)
		}
		if len(tbl.Kinds()) != 2 {
			t.Errorf("LoadTable(%s) kinds = %v", p, tbl.Kinds())
		}
	}

	if _, err := LoadTable(write("c.json", "{}")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("json err = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := LoadTable(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

type opacity struct{ v float64 }

func (opacity) Kind() Kind { return "opacity" }

func TestRegisterDecoder(t *testing.T) {
	RegisterDecoder("opacity", func(raw any) (Property, error) {
		v, err := decodeNumber(raw)
		return opacity{v: v}, err
	})
	defer delete(decoders, "opacity")

	tbl, err := ParseYAML([]byte("defaults:\n  label:\n    opacity: 0.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := Get[opacity](NewRef(nil, tbl.For("label"))); got.v != 0.5 {
		t.Errorf("opacity = %v", got.v)
	}
}

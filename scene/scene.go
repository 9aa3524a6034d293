// Package scene describes widget trees in TOML or YAML files and builds
// them into retained pods.
//
//	[window]
//	width = 320
//	height = 240
//
//	[root]
//	type = "column"
//	gap = 8
//	props = { background = "#1e1e2e", padding = 12 }
//
//	[[root.children]]
//	type = "box"
//	height = 40
//	class = "bg-rose-400 rounded-md md:p-4"
//
//	[[root.children]]
//	type = "image"
//	src = "logo.png"
//	fit = "contain"
//	flex = 1
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agiangrant/arbor/layout"
	"github.com/agiangrant/arbor/properties"
	"github.com/agiangrant/arbor/retained"
	"github.com/agiangrant/arbor/tw"
	"github.com/agiangrant/arbor/widgets"
	"github.com/gogpu/gg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownWidget is returned for node types with no builder.
	ErrUnknownWidget = errors.New("unknown widget type")
	// ErrInvalidNode is returned for nodes whose fields do not fit their type.
	ErrInvalidNode = errors.New("invalid scene node")
)

// Scene is a parsed scene file.
type Scene struct {
	Window Window `toml:"window" yaml:"window"`
	// Defaults is an optional property table file, relative to the scene.
	Defaults string `toml:"defaults" yaml:"defaults"`
	Root     Node   `toml:"root" yaml:"root"`

	dir string
}

// Window is the viewport the scene is laid out in.
type Window struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

// Size returns the window size, falling back to retained.DefaultWindowSize
// for unset dimensions.
func (w Window) Size() layout.Size {
	s := retained.DefaultWindowSize
	if w.Width > 0 {
		s.Width = w.Width
	}
	if w.Height > 0 {
		s.Height = w.Height
	}
	return s
}

// Node is one widget in a scene. Which fields apply depends on Type:
// "box", "row", "column" or "image".
type Node struct {
	Type  string `toml:"type" yaml:"type"`
	Label string `toml:"label" yaml:"label"`

	// box
	Width  *float64 `toml:"width" yaml:"width"`
	Height *float64 `toml:"height" yaml:"height"`
	Expand bool     `toml:"expand" yaml:"expand"`

	// row, column
	Gap        float64 `toml:"gap" yaml:"gap"`
	MainAlign  string  `toml:"main_align" yaml:"main_align"`
	CrossAlign string  `toml:"cross_align" yaml:"cross_align"`

	// image
	Src string `toml:"src" yaml:"src"`
	Fit string `toml:"fit" yaml:"fit"`
	Alt string `toml:"alt" yaml:"alt"`

	// Flex is the share of leftover space when the parent is a row or column.
	Flex      float64   `toml:"flex" yaml:"flex"`
	Translate []float64 `toml:"translate" yaml:"translate"`
	Disabled  bool      `toml:"disabled" yaml:"disabled"`
	// Class is a utility class string; see package tw. Props override it.
	Class    string         `toml:"class" yaml:"class"`
	Props    map[string]any `toml:"props" yaml:"props"`
	Children []Node         `toml:"children" yaml:"children"`
}

// Load reads a scene file. The format is chosen by extension: .toml,
// .yaml or .yml.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var s *Scene
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		s, err = ParseTOML(data)
	case ".yaml", ".yml":
		s, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("%s: %w", path, properties.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// ParseTOML decodes a TOML scene. Relative paths resolve against the
// working directory.
func ParseTOML(data []byte) (*Scene, error) {
	var s Scene
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseYAML decodes a YAML scene.
func ParseYAML(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// resolve makes path relative to the scene file.
func (s *Scene) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || s.dir == "" {
		return path
	}
	return filepath.Join(s.dir, path)
}

// LoadDefaults reads the scene's property table, or returns nil when the
// scene names none.
func (s *Scene) LoadDefaults() (*properties.Table, error) {
	if s.Defaults == "" {
		return nil, nil
	}
	return properties.LoadTable(s.resolve(s.Defaults))
}

// Build returns a fresh pod tree for the scene's own window. Every call
// builds new widgets, so one scene can back several render roots.
func (s *Scene) Build() (*retained.WidgetPod, error) {
	return s.BuildFor(s.Window.Size())
}

// BuildFor builds the tree for a viewport of the given size. The width
// selects which responsive classes apply.
func (s *Scene) BuildFor(viewport layout.Size) (*retained.WidgetPod, error) {
	b := &builder{Scene: s, width: viewport.Width}
	pod, _, err := b.build(&s.Root, "root")
	return pod, err
}

type builder struct {
	*Scene
	width float64
}

func (s *builder) build(n *Node, path string) (*retained.WidgetPod, float64, error) {
	w, err := s.widget(n, path)
	if err != nil {
		return nil, 0, err
	}

	var opts retained.WidgetOptions
	opts.Disabled = n.Disabled
	switch len(n.Translate) {
	case 0:
	case 2:
		opts.Transform = gg.Translate(n.Translate[0], n.Translate[1])
	default:
		return nil, 0, fmt.Errorf("%s: %w: translate takes 2 values, got %d", path, ErrInvalidNode, len(n.Translate))
	}

	props, err := decodeProps(n.Props)
	if err != nil {
		return nil, 0, fmt.Errorf("%s.props: %w", path, err)
	}
	return retained.NewPodWithOptions(w, opts).
		WithProps(tw.Properties(n.Class, s.width)...).
		WithProps(props...), n.Flex, nil
}

func (s *builder) widget(n *Node, path string) (retained.Widget, error) {
	switch n.Type {
	case "box", "":
		return s.box(n, path)
	case "row", "column":
		return s.flex(n, path)
	case "image":
		return s.image(n, path)
	default:
		return nil, fmt.Errorf("%s: %w: %q", path, ErrUnknownWidget, n.Type)
	}
}

func (s *builder) box(n *Node, path string) (retained.Widget, error) {
	if len(n.Children) > 1 {
		return nil, fmt.Errorf("%s: %w: box takes at most one child", path, ErrInvalidNode)
	}
	b := widgets.Empty()
	if len(n.Children) == 1 {
		child, _, err := s.build(&n.Children[0], path+".children[0]")
		if err != nil {
			return nil, err
		}
		b = widgets.NewSizedBoxWithPod(child)
	}
	if n.Expand {
		b.Expand()
	}
	if n.Width != nil {
		b.Width(*n.Width)
	}
	if n.Height != nil {
		b.Height(*n.Height)
	}
	return b.Label(n.Label), nil
}

func (s *builder) flex(n *Node, path string) (retained.Widget, error) {
	f := widgets.Row()
	if n.Type == "column" {
		f = widgets.Column()
	}
	main, err := widgets.ParseMainAlign(n.MainAlign)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrInvalidNode, err)
	}
	cross, err := widgets.ParseCrossAlign(n.CrossAlign)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrInvalidNode, err)
	}
	f.WithGap(n.Gap).WithMainAlign(main).WithCrossAlign(cross)

	for i := range n.Children {
		child, flex, err := s.build(&n.Children[i], fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		if flex > 0 {
			f.WithFlexChild(child, flex)
		} else {
			f.WithChildPod(child)
		}
	}
	return f, nil
}

func (s *builder) image(n *Node, path string) (retained.Widget, error) {
	if len(n.Children) > 0 {
		return nil, fmt.Errorf("%s: %w: image takes no children", path, ErrInvalidNode)
	}
	fit := layout.FitFill
	if n.Fit != "" {
		var err error
		if fit, err = layout.ParseObjectFit(n.Fit); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", path, ErrInvalidNode, err)
		}
	}

	img := widgets.NewImage(nil)
	if n.Src != "" {
		var err error
		if img, err = widgets.LoadImage(s.resolve(n.Src)); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return img.Fit(fit).Alt(n.Alt), nil
}

func decodeProps(raw map[string]any) ([]properties.Property, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make([]properties.Property, 0, len(names))
	for _, name := range names {
		p, err := properties.Decode(properties.Kind(name), raw[name])
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}

// Package skin builds the initial widget tree from a declarative YAML
// layout document. The layout names each widget's variant, bounds,
// store binding, and action; it is evaluated once at startup and the
// resulting tree is mutated in place for the rest of the run.
//
// Pixel assets (bitmaps, fonts) are not handled here; the renderer
// resolves those separately.
package skin

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-veneer/veneer/pkg/errors"
	"github.com/go-veneer/veneer/pkg/geometry"
	"github.com/go-veneer/veneer/pkg/tree"
	"github.com/go-veneer/veneer/pkg/widget"
)

// RectDef positions a widget in root coordinates.
type RectDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// WidgetDef describes one widget and its children. Type is one of
// "container", "static_text", "text_input", "button".
type WidgetDef struct {
	Type     string      `yaml:"type"`
	Rect     RectDef     `yaml:"rect"`
	Text     string      `yaml:"text,omitempty"`
	Label    string      `yaml:"label,omitempty"`
	Binding  string      `yaml:"binding,omitempty"`
	Action   string      `yaml:"action,omitempty"`
	Children []WidgetDef `yaml:"children,omitempty"`
}

// WindowDef describes the host window the skin expects.
type WindowDef struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Skin is a loaded layout document.
type Skin struct {
	Name    string      `yaml:"name"`
	Window  WindowDef   `yaml:"window"`
	Widgets []WidgetDef `yaml:"widgets"`
}

// Load reads and parses a skin layout file.
func Load(path string) (*Skin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.Error{
			Op:   "skin.Load",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("failed to read %s: %w", path, err),
		}
	}

	var s Skin
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &errors.Error{
			Op:   "skin.Load",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("failed to parse %s: %w", path, err),
		}
	}
	return &s, nil
}

// Build constructs the widget tree described by the skin. Fails on the
// first unknown widget type; a partially built tree is never returned.
func (s *Skin) Build() (*tree.Tree, error) {
	t := tree.New()
	for _, def := range s.Widgets {
		if err := buildNode(t, tree.NodeID{}, def); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func buildNode(t *tree.Tree, parent tree.NodeID, def WidgetDef) error {
	w, err := makeWidget(def)
	if err != nil {
		return err
	}

	bounds := geometry.RectFromLTWH(def.Rect.X, def.Rect.Y, def.Rect.W, def.Rect.H)
	id := t.Insert(parent, w, bounds)
	for _, child := range def.Children {
		if err := buildNode(t, id, child); err != nil {
			return err
		}
	}
	return nil
}

func makeWidget(def WidgetDef) (widget.Widget, error) {
	switch def.Type {
	case "container":
		return widget.NewContainer(), nil
	case "static_text":
		return widget.NewStaticText(def.Binding, def.Text), nil
	case "text_input":
		return widget.NewTextInput(def.Binding), nil
	case "button":
		return widget.NewButton(def.Label, def.Action), nil
	default:
		return nil, &errors.Error{
			Op:   "skin.Build",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("unknown widget type %q", def.Type),
		}
	}
}

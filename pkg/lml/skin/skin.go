// Package skin loads widget style definitions from YAML files. A skin
// maps widget kinds to named styles; builders select styles by name and
// renderers read the style fields.
package skin

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style holds the visual parameters a renderer may honor. Fields are
// generic across widget kinds; unused fields stay zero.
type Style struct {
	FontColor  string  `yaml:"font_color"`
	Background string  `yaml:"background"`
	Border     string  `yaml:"border"`
	Padding    float64 `yaml:"padding"`
	Bold       bool    `yaml:"bold"`
}

// Skin is a set of named styles per widget kind.
type Skin struct {
	// Styles maps widget kind (e.g. "label", "table") to style name to
	// style definition.
	Styles map[string]map[string]Style `yaml:"styles"`
}

// Default returns a minimal skin with a default style for each built-in
// widget kind.
func Default() *Skin {
	kinds := []string{"label", "button", "table", "tree", "group", "scrollpane", "progressbar", "slider"}
	styles := make(map[string]map[string]Style, len(kinds))
	for _, kind := range kinds {
		styles[kind] = map[string]Style{"default": {}}
	}
	return &Skin{Styles: styles}
}

// Parse reads a skin from YAML bytes.
func Parse(data []byte) (*Skin, error) {
	var s Skin
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing skin: %w", err)
	}
	if s.Styles == nil {
		s.Styles = make(map[string]map[string]Style)
	}
	return &s, nil
}

// Load reads a skin from a YAML file.
func Load(path string) (*Skin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skin file: %w", err)
	}
	return Parse(data)
}

// Style looks up a named style for a widget kind, falling back to the
// kind's "default" style. The second result reports whether any style
// was found.
func (s *Skin) Style(kind, name string) (Style, bool) {
	kindStyles, ok := s.Styles[kind]
	if !ok {
		return Style{}, false
	}
	if style, ok := kindStyles[name]; ok {
		return style, true
	}
	style, ok := kindStyles["default"]
	return style, ok
}

// Has reports whether the skin defines the exact kind/name pair, without
// the default fallback.
func (s *Skin) Has(kind, name string) bool {
	_, ok := s.Styles[kind][name]
	return ok
}

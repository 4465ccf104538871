// Package styles holds the lipgloss styles used for terminal output.
//
// Styles have semantic names (Linked, Conflict, FilePath...) and are declared
// in the embedded styles.yaml against a small palette of adaptive colors, so
// each one reads well on light and dark backgrounds.
package styles

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is one palette entry.
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is one named style. Foreground refers to a palette entry.
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Width      int    `yaml:"width,omitempty"`
}

// Config is the layout of a styles file.
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// StyleRegistry maps semantic names to lipgloss styles
var StyleRegistry = map[string]lipgloss.Style{}

//go:embed styles.yaml
var embeddedStyles []byte

func init() {
	// The embedded file is covered by tests; a broken one leaves every
	// style plain.
	_ = LoadStylesFromData(embeddedStyles)
}

// LoadStyles replaces the registry with the styles declared in path.
func LoadStyles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read styles file %s: %w", path, err)
	}
	return LoadStylesFromData(data)
}

// LoadStylesFromData replaces the registry with the styles declared in data.
// On error the registry is left untouched.
func LoadStylesFromData(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse styles data: %w", err)
	}

	registry := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		style := lipgloss.NewStyle().Bold(def.Bold).Italic(def.Italic)

		if def.Foreground != "" {
			color, ok := config.Colors[def.Foreground]
			if !ok {
				return fmt.Errorf("style %s uses undefined color %s", name, def.Foreground)
			}
			style = style.Foreground(lipgloss.AdaptiveColor{Light: color.Light, Dark: color.Dark})
		}
		if def.Width > 0 {
			style = style.Width(def.Width)
		}

		registry[name] = style
	}

	StyleRegistry = registry
	return nil
}

// GetStyle returns the named style, or an empty style for unknown names.
func GetStyle(name string) lipgloss.Style {
	if style, ok := StyleRegistry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package theme holds the dashboard colour and typography tokens.
package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown theme format")

// Colors is the dashboard palette.
type Colors struct {
	Primary    string `json:"primary"    yaml:"primary"`
	Accent     string `json:"accent"     yaml:"accent"`
	Background string `json:"background" yaml:"background"`
	Text       string `json:"text"       yaml:"text"`
}

// Theme is the full set of tokens injected into every page.
type Theme struct {
	Colors     Colors `json:"colors"      yaml:"colors"`
	Font       string `json:"font"        yaml:"font"`
	GlassStyle string `json:"glass_style" yaml:"glass_style"`
}

// Default is the HepaGuard theme.
var Default = Theme{
	Colors: Colors{
		Primary:    "#ff4b4b",
		Accent:     "#4ecdc4",
		Background: "#ffffff",
		Text:       "#2c3e50",
	},
	Font: "Outfit, sans-serif",
	GlassStyle: `background: rgba(255, 255, 255, 0.65);
backdrop-filter: blur(12px);
border-radius: 20px;
border: 1px solid rgba(255, 255, 255, 0.18);
box-shadow: 0 8px 32px 0 rgba(31, 38, 135, 0.15);
`,
}

// Export returns the tokens as a nested map.
func (t Theme) Export() map[string]any {
	return map[string]any{
		"colors": map[string]string{
			"primary":    t.Colors.Primary,
			"accent":     t.Colors.Accent,
			"background": t.Colors.Background,
			"text":       t.Colors.Text,
		},
		"font":        t.Font,
		"glass_style": t.GlassStyle,
	}
}

// InlineGlassStyle returns the glass style collapsed to a single line for
// use in a style attribute.
func (t Theme) InlineGlassStyle() string {
	return strings.Join(strings.Fields(t.GlassStyle), " ")
}

// Encode writes the theme to w as "yaml" or "json".
func (t Theme) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("failed to encode theme: %w", err)
		}

		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(t)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// Decode reads a theme previously written by Encode. Missing fields keep
// the Default values.
func Decode(r io.Reader) (Theme, error) {
	t := Default

	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return Theme{}, fmt.Errorf("failed to decode theme: %w", err)
	}

	return t, nil
}

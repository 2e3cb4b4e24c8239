// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package theme

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExport(t *testing.T) {
	t.Parallel()

	got := Default.Export()

	colors, ok := got["colors"].(map[string]string)
	if !ok {
		t.Fatalf("expected colors map, got %T", got["colors"])
	}

	want := map[string]string{
		"primary":    "#ff4b4b",
		"accent":     "#4ecdc4",
		"background": "#ffffff",
		"text":       "#2c3e50",
	}
	if diff := cmp.Diff(want, colors); diff != "" {
		t.Fatalf("colors mismatch (-want +got):\n%s", diff)
	}

	if got["font"] != "Outfit, sans-serif" {
		t.Fatalf("unexpected font %v", got["font"])
	}

	if !strings.Contains(got["glass_style"].(string), "backdrop-filter: blur(12px);") {
		t.Fatalf("unexpected glass style %v", got["glass_style"])
	}
}

func TestEncodeRoundTripYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Default.Encode(&buf, "yaml"); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if !strings.Contains(buf.String(), "primary:") || !strings.Contains(buf.String(), "#ff4b4b") {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if diff := cmp.Diff(Default, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Default.Encode(&buf, "JSON"); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if decoded["font"] != Default.Font {
		t.Fatalf("unexpected font %v", decoded["font"])
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	t.Parallel()

	if err := Default.Encode(&bytes.Buffer{}, "toml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestDecodePartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	got, err := Decode(strings.NewReader("colors:\n  primary: '#000000'\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if got.Colors.Primary != "#000000" || got.Colors.Accent != Default.Colors.Accent || got.Font != Default.Font {
		t.Fatalf("unexpected theme %+v", got)
	}
}

func TestInlineGlassStyle(t *testing.T) {
	t.Parallel()

	got := Default.InlineGlassStyle()
	if strings.Contains(got, "\n") {
		t.Fatalf("expected a single line, got %q", got)
	}

	if !strings.HasPrefix(got, "background: rgba(255, 255, 255, 0.65);") {
		t.Fatalf("unexpected inline style %q", got)
	}
}

// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: launcher/icon.go
// Summary: Glyph icons for panel launchers and lock-screen user entries.

package launcher

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FallbackGlyph is the crossed square substituted when an icon cannot be
// loaded, so panel layout never fails.
const FallbackGlyph = "⊠"

// Icon is a small glyph rendered on a panel or dialog, with the name it is
// labelled by on hover.
type Icon struct {
	Glyph string
	Name  string
}

// Width returns the icon's cell width.
func (i Icon) Width() int {
	return runewidth.StringWidth(i.Glyph)
}

// LoadIcon reads an icon file (first line = glyph) and falls back to a
// generated crossed-square glyph on any failure.
func LoadIcon(path string) Icon {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		log.Printf("Launcher: Failed to load icon %q: %v", path, err)
		return Icon{Glyph: FallbackGlyph, Name: name}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		glyph := strings.TrimSpace(scanner.Text())
		if glyph != "" && runewidth.StringWidth(glyph) <= 4 {
			return Icon{Glyph: glyph, Name: name}
		}
	}

	log.Printf("Launcher: Icon %q is empty or too wide, using fallback", path)
	return Icon{Glyph: FallbackGlyph, Name: name}
}

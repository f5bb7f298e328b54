// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/background.go
// Summary: The per-output, per-user wallpaper surface.

package shell

import (
	"bufio"
	"log"
	"math"
	"os"

	"github.com/gdamore/tcell/v2"
)

// Background fill modes, from the "background-type" config key.
const (
	backgroundScale = iota
	backgroundScaleCrop
	backgroundTile
	backgroundInvalid = -1
)

const defaultBackgroundColor = 0xff002244

// Background is the wallpaper owned by one (output, user) pair.
type Background struct {
	Surface
	desktop  *Desktop
	username string
	painted  bool

	image    string
	color    uint32
	fillType int

	texture [][]rune
}

func newBackground(d *Desktop) *Background {
	b := &Background{
		desktop:  d,
		username: d.user,
	}
	b.ID = d.allocSurfaceID()
	b.Title = "background"

	// Per-user overrides win over the global keys. Presence decides, not
	// the value, so an explicit transparent or empty override sticks.
	shellSec := d.cfg.Section("shell")
	if _, ok := shellSec["background-image-"+b.username]; ok {
		b.image = d.cfg.GetString("shell", "background-image-"+b.username, "")
	} else {
		b.image = d.cfg.GetString("shell", "background-image", "")
	}
	if _, ok := shellSec["background-color-"+b.username]; ok {
		b.color = d.cfg.GetColor("shell", "background-color-"+b.username, defaultBackgroundColor)
	} else {
		b.color = d.cfg.GetColor("shell", "background-color", defaultBackgroundColor)
	}

	switch fillType := d.cfg.GetString("shell", "background-type", "tile"); fillType {
	case "scale":
		b.fillType = backgroundScale
	case "scale-crop":
		b.fillType = backgroundScaleCrop
	case "tile":
		b.fillType = backgroundTile
	default:
		b.fillType = backgroundInvalid
		log.Printf("Shell: Invalid background-type: %s", fillType)
	}

	d.registerSurface(b)
	return b
}

// Username returns the user this background was created for.
func (b *Background) Username() string { return b.username }

// Painted reports whether the background has completed its first paint.
func (b *Background) Painted() bool { return b.painted }

// Configure resizes the background to the output size and repaints.
func (b *Background) Configure(edges uint32, width, height int32) {
	b.resize(int(width), int(height))
	b.draw()
}

func (b *Background) draw() {
	if b.Cols == 0 || b.Rows == 0 {
		return
	}

	style := argbStyle(b.color)
	b.fill(' ', style)

	if b.texture == nil && b.image != "" {
		texture, err := loadTexture(b.image)
		if err != nil {
			log.Printf("Shell: Failed to load background %q: %v", b.image, err)
			b.image = ""
		} else {
			b.texture = texture
		}
	}

	if b.texture != nil && b.fillType != backgroundInvalid {
		b.paintTexture(style)
	}

	if !b.painted {
		b.painted = true
		b.desktop.surfacePainted(b.ID)
	}
}

func (b *Background) paintTexture(style tcell.Style) {
	th := len(b.texture)
	if th == 0 {
		return
	}
	tw := len(b.texture[0])
	if tw == 0 {
		return
	}

	// Uniform scale on the tighter axis, centered, for scale-crop.
	s := math.Min(float64(tw)/float64(b.Cols), float64(th)/float64(b.Rows))
	tx := (float64(tw) - s*float64(b.Cols)) / 2
	ty := (float64(th) - s*float64(b.Rows)) / 2

	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			var sx, sy int
			switch b.fillType {
			case backgroundTile:
				sx, sy = x%tw, y%th
			case backgroundScale:
				sx = x * tw / b.Cols
				sy = y * th / b.Rows
			case backgroundScaleCrop:
				sx = clampIndex(int(tx+s*float64(x)), tw)
				sy = clampIndex(int(ty+s*float64(y)), th)
			}
			if ch := b.texture[sy][sx]; ch != 0 {
				b.Buf[y][x] = Cell{Ch: ch, Style: style}
			}
		}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// loadTexture reads a text-art wallpaper into a rectangular rune grid.
func loadTexture(path string) ([][]rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var grid [][]rune
	width := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		row := []rune(scanner.Text())
		if len(row) > width {
			width = len(row)
		}
		grid = append(grid, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for i, row := range grid {
		if len(row) < width {
			padded := make([]rune, width)
			copy(padded, row)
			for j := len(row); j < width; j++ {
				padded[j] = ' '
			}
			grid[i] = padded
		}
	}
	return grid, nil
}

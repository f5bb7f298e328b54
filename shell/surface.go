// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/surface.go
// Summary: Cell buffers and the drawable surface base shared by panels,
// backgrounds and dialogs.

package shell

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one rendered character cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Drawable is a shell-owned surface registered with the compositor. The
// compositor addresses it by surface ID in configure and key events.
type Drawable interface {
	SurfaceID() uint32
	Configure(edges uint32, width, height int32)
}

// Surface is the drawable base embedded by every shell surface. Buffer
// mutation happens only on the shell event loop.
type Surface struct {
	ID    uint32
	Title string
	Cols  int
	Rows  int
	Buf   [][]Cell

	// Forwarded from the owning output; only the authoritative pair of an
	// output is kept current.
	Transform int32
	Scale     int32
}

func (s *Surface) SurfaceID() uint32 { return s.ID }

func (s *Surface) resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.Cols, s.Rows = cols, rows
	s.Buf = make([][]Cell, rows)
	for y := range s.Buf {
		s.Buf[y] = make([]Cell, cols)
	}
}

func (s *Surface) fill(ch rune, style tcell.Style) {
	for y := range s.Buf {
		for x := range s.Buf[y] {
			s.Buf[y][x] = Cell{Ch: ch, Style: style}
		}
	}
}

// drawText writes text starting at (x, y), clipping at the right edge. Wide
// runes occupy their full width; the trailing half of a clipped wide rune is
// dropped.
func (s *Surface) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= s.Rows {
		return
	}
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if x+w > s.Cols {
			return
		}
		if x >= 0 {
			s.Buf[y][x] = Cell{Ch: ch, Style: style}
			for i := 1; i < w; i++ {
				s.Buf[y][x+i] = Cell{Ch: ' ', Style: style}
			}
		}
		x += w
	}
}

func (s *Surface) setTransform(transform int32) { s.Transform = transform }
func (s *Surface) setScale(scale int32)         { s.Scale = scale }

// argbStyle builds a background style from a 32-bit ARGB config color. The
// alpha channel is the compositor's concern and is dropped here.
func argbStyle(color uint32) tcell.Style {
	rgb := tcell.NewRGBColor(
		int32((color>>16)&0xff),
		int32((color>>8)&0xff),
		int32(color&0xff),
	)
	return tcell.StyleDefault.Background(rgb)
}

// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/background_test.go
// Summary: Wallpaper configuration and fill mode tests.

package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/waveshell/waveshell/config"
)

func writeWallpaper(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wall.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBackgroundPerUserOverrides(t *testing.T) {
	cfg := config.Config{"shell": config.Section{
		"background-color":       "0xff111111",
		"background-color-alice": "0xff222222",
	}}
	d, _ := testDesktop(t, cfg, 2)
	d.HandleOutputAdded(1)

	if got := d.Outputs()[0].Background().color; got != 0xff111111 {
		t.Fatalf("guest background color = %#x, want ff111111", got)
	}

	d.HandleUserSwitched("alice")
	d.runDeferred()
	if got := d.Outputs()[0].Background().color; got != 0xff222222 {
		t.Fatalf("alice background color = %#x, want ff222222", got)
	}
}

func TestBackgroundTileFill(t *testing.T) {
	path := writeWallpaper(t, "ab\ncd\n")
	cfg := config.Config{"shell": config.Section{
		"background-image": path,
		"background-type":  "tile",
	}}
	d, _ := testDesktop(t, cfg, 2)
	d.HandleOutputAdded(1)

	b := d.Outputs()[0].Background()
	b.Configure(0, 4, 4)

	if b.Buf[0][0].Ch != 'a' || b.Buf[0][2].Ch != 'a' {
		t.Fatalf("tile row 0 = %q %q, want a a", b.Buf[0][0].Ch, b.Buf[0][2].Ch)
	}
	if b.Buf[3][3].Ch != 'd' {
		t.Fatalf("tile cell (3,3) = %q, want d", b.Buf[3][3].Ch)
	}
}

func TestBackgroundScaleFill(t *testing.T) {
	path := writeWallpaper(t, "ab\ncd\n")
	cfg := config.Config{"shell": config.Section{
		"background-image": path,
		"background-type":  "scale",
	}}
	d, _ := testDesktop(t, cfg, 2)
	d.HandleOutputAdded(1)

	b := d.Outputs()[0].Background()
	b.Configure(0, 4, 4)

	// Each source cell stretches over a 2x2 block.
	if b.Buf[0][1].Ch != 'a' || b.Buf[0][2].Ch != 'b' {
		t.Fatalf("scale row 0 = %q %q, want a b", b.Buf[0][1].Ch, b.Buf[0][2].Ch)
	}
	if b.Buf[3][0].Ch != 'c' || b.Buf[3][3].Ch != 'd' {
		t.Fatalf("scale row 3 = %q %q, want c d", b.Buf[3][0].Ch, b.Buf[3][3].Ch)
	}
}

func TestBackgroundInvalidTypeFallsBackToFlatFill(t *testing.T) {
	path := writeWallpaper(t, "ab\n")
	cfg := config.Config{"shell": config.Section{
		"background-image": path,
		"background-type":  "sideways",
	}}
	d, _ := testDesktop(t, cfg, 2)
	d.HandleOutputAdded(1)

	b := d.Outputs()[0].Background()
	b.Configure(0, 4, 2)
	for y := range b.Buf {
		for x := range b.Buf[y] {
			if b.Buf[y][x].Ch != ' ' {
				t.Fatalf("cell (%d,%d) = %q, want flat fill", y, x, b.Buf[y][x].Ch)
			}
		}
	}
}

func TestBackgroundMissingImagePaintsColor(t *testing.T) {
	cfg := config.Config{"shell": config.Section{
		"background-image": "/nonexistent/wall.txt",
	}}
	d, _ := testDesktop(t, cfg, 2)
	d.HandleOutputAdded(1)

	b := d.Outputs()[0].Background()
	b.Configure(0, 4, 2)
	if !b.Painted() {
		t.Fatal("a failed image load must not block the first paint")
	}
	if b.image != "" {
		t.Fatal("a failed image load should clear the image path")
	}
}

func TestLoadTexturePadsRaggedRows(t *testing.T) {
	path := writeWallpaper(t, "abcd\nxy\n")
	grid, err := loadTexture(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != 2 || len(grid[0]) != 4 || len(grid[1]) != 4 {
		t.Fatalf("grid shape = %dx%d, want 2x4", len(grid), len(grid[0]))
	}
	if grid[1][2] != ' ' || grid[1][3] != ' ' {
		t.Fatal("short rows should be padded with blanks")
	}
}

func TestBackgroundTransparentOverrideHonored(t *testing.T) {
	cfg := config.Config{"shell": config.Section{
		"background-color":       "0xff111111",
		"background-color-alice": "0x00000000",
	}}
	d, _ := testDesktop(t, cfg, 2)
	d.HandleOutputAdded(1)
	d.HandleUserSwitched("alice")
	d.runDeferred()

	// The override is present with an all-zero value; it must win over the
	// global key rather than being read as unset.
	if got := d.Outputs()[0].Background().color; got != 0 {
		t.Fatalf("alice background color = %#x, want explicit 0", got)
	}
}

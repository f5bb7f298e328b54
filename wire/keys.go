// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wire/keys.go
// Summary: Maps protocol keysyms to display key codes.

package wire

import "github.com/gdamore/tcell/v2"

// X11 keysym values carried on the wire for non-character keys.
const (
	symBackspace = 0xff08
	symTab       = 0xff09
	symReturn    = 0xff0d
	symEscape    = 0xff1b
	symLeft      = 0xff51
	symUp        = 0xff52
	symRight     = 0xff53
	symDown      = 0xff54
	symKPEnter   = 0xff8d
	symDelete    = 0xffff
)

// keyForSym translates a wire key event into a tcell key code plus rune. An
// unknown keysym with no character yields KeyNUL, which no surface acts on.
func keyForSym(keysym, r uint32) (tcell.Key, rune) {
	switch keysym {
	case symEscape:
		return tcell.KeyEscape, 0
	case symReturn, symKPEnter:
		return tcell.KeyEnter, 0
	case symBackspace:
		return tcell.KeyBackspace2, 0
	case symDelete:
		return tcell.KeyDelete, 0
	case symTab:
		return tcell.KeyTab, 0
	case symLeft:
		return tcell.KeyLeft, 0
	case symRight:
		return tcell.KeyRight, 0
	case symUp:
		return tcell.KeyUp, 0
	case symDown:
		return tcell.KeyDown, 0
	}
	if r != 0 {
		return tcell.KeyRune, rune(r)
	}
	return tcell.KeyNUL, 0
}

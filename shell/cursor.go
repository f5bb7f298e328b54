// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/cursor.go
// Summary: Maps protocol grab-cursor kinds to display cursors.

package shell

import "github.com/waveshell/waveshell/proto"

// Cursor identifies a display cursor shown while the grab surface has focus.
type Cursor int

const (
	CursorLeftPtr Cursor = iota
	CursorBlank
	CursorWatch
	CursorDragging
	CursorTop
	CursorBottom
	CursorLeft
	CursorRight
	CursorTopLeft
	CursorTopRight
	CursorBottomLeft
	CursorBottomRight
)

func cursorForKind(kind uint32) Cursor {
	switch kind {
	case proto.CursorNone:
		return CursorBlank
	case proto.CursorBusy:
		return CursorWatch
	case proto.CursorMove:
		return CursorDragging
	case proto.CursorResizeTop:
		return CursorTop
	case proto.CursorResizeBottom:
		return CursorBottom
	case proto.CursorResizeLeft:
		return CursorLeft
	case proto.CursorResizeRight:
		return CursorRight
	case proto.CursorResizeTopLeft:
		return CursorTopLeft
	case proto.CursorResizeTopRight:
		return CursorTopRight
	case proto.CursorResizeBottomLeft:
		return CursorBottomLeft
	case proto.CursorResizeBottomRight:
		return CursorBottomRight
	default:
		return CursorLeftPtr
	}
}

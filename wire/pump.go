// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wire/pump.go
// Summary: The compositor-to-client read pump. Decoded events are posted as
// closures onto the desktop loop.

package wire

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/waveshell/waveshell/proto"
	"github.com/waveshell/waveshell/shell"
)

// Serve reads compositor events until the connection closes and dispatches
// each one onto the desktop loop. A clean peer close returns nil.
func (c *Conn) Serve(d *shell.Desktop) error {
	for {
		hdr, payload, err := proto.ReadMessage(c.c)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("wire: read event: %w", err)
		}
		if err := c.dispatch(d, hdr.Type, payload); err != nil {
			log.Printf("Wire: Dropping malformed message type %d: %v", hdr.Type, err)
		}
	}
}

func (c *Conn) dispatch(d *shell.Desktop, msgType proto.MessageType, payload []byte) error {
	switch msgType {
	case proto.MsgConfigure:
		m, err := proto.DecodeConfigure(payload)
		if err != nil {
			return err
		}
		d.Post(func() { d.HandleConfigure(m.Edges, m.Surface, m.Width, m.Height) })

	case proto.MsgPrepareLockSurface:
		d.Post(d.HandlePrepareLockSurface)

	case proto.MsgGrabCursor:
		m, err := proto.DecodeGrabCursor(payload)
		if err != nil {
			return err
		}
		d.Post(func() { d.HandleGrabCursor(m.Cursor) })

	case proto.MsgUserSwitched:
		m, err := proto.DecodeUserSwitched(payload)
		if err != nil {
			return err
		}
		d.Post(func() { d.HandleUserSwitched(m.Name) })

	case proto.MsgOutputAdded:
		m, err := proto.DecodeOutputAdded(payload)
		if err != nil {
			return err
		}
		d.Post(func() { d.HandleOutputAdded(m.Output) })

	case proto.MsgOutputRemoved:
		m, err := proto.DecodeOutputRemoved(payload)
		if err != nil {
			return err
		}
		d.Post(func() { d.HandleOutputRemoved(m.Output) })

	case proto.MsgOutputGeometry:
		m, err := proto.DecodeOutputGeometry(payload)
		if err != nil {
			return err
		}
		d.Post(func() { d.HandleOutputGeometry(m.Output, m.Transform) })

	case proto.MsgOutputScale:
		m, err := proto.DecodeOutputScale(payload)
		if err != nil {
			return err
		}
		d.Post(func() { d.HandleOutputScale(m.Output, m.Scale) })

	case proto.MsgKeyEvent:
		m, err := proto.DecodeKeyEvent(payload)
		if err != nil {
			return err
		}
		key, r := keyForSym(m.Keysym, m.Rune)
		d.Post(func() { d.HandleKey(m.Surface, key, r, m.Pressed) })

	default:
		log.Printf("Wire: Ignoring unexpected message type %d", msgType)
	}
	return nil
}

// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: proto/messages.go
// Summary: Message payloads and their encode/decode pairs for the
// desktop-shell protocol.

package proto

import (
	"bytes"
	"encoding/binary"
	"errors"
)

var (
	errStringTooLong = errors.New("proto: string exceeds 64KB limit")
	errPayloadShort  = errors.New("proto: payload too short")
)

// Cursor kinds delivered by GrabCursor. The compositor picks one while a
// surface grab is in progress; the shell maps it to a display cursor.
const (
	CursorNone uint32 = iota
	CursorBusy
	CursorMove
	CursorResizeTop
	CursorResizeBottom
	CursorResizeLeft
	CursorResizeRight
	CursorResizeTopLeft
	CursorResizeTopRight
	CursorResizeBottomLeft
	CursorResizeBottomRight
	CursorArrow
)

// Hello initiates the handshake from shell client to compositor. The client
// asks for WantedVersion; the compositor answers with what it grants.
type Hello struct {
	ClientID      [16]byte
	ClientName    string
	WantedVersion uint32
}

// Welcome acknowledges the handshake and carries the granted interface
// version. Desktop-ready signalling requires version 2.
type Welcome struct {
	ServerName string
	Version    uint32
}

// SetPanel registers a surface as the panel for an output.
type SetPanel struct {
	Output  uint32
	Surface uint32
}

// SetBackground registers a surface as the background for an output.
type SetBackground struct {
	Output  uint32
	Surface uint32
}

// SetLockSurface registers the surface shown while the session is locked.
type SetLockSurface struct {
	Surface uint32
}

// SetGrabSurface registers the surface that receives pointer focus during
// compositor-driven grabs.
type SetGrabSurface struct {
	Surface uint32
}

// SwitchUser asks the compositor to activate the named user's session.
type SwitchUser struct {
	Name string
}

// Configure tells the shell to resize one of its surfaces.
type Configure struct {
	Edges   uint32
	Surface uint32
	Width   int32
	Height  int32
}

// GrabCursor announces which cursor the shell should show on the grab surface.
type GrabCursor struct {
	Cursor uint32
}

// UserSwitched notifies the shell that another user's session became active.
type UserSwitched struct {
	Name string
}

// OutputAdded announces a new output global.
type OutputAdded struct {
	Output uint32
}

// OutputRemoved announces that an output global disappeared.
type OutputRemoved struct {
	Output uint32
}

// OutputGeometry carries an output transform change.
type OutputGeometry struct {
	Output    uint32
	Transform int32
}

// OutputScale carries an output scale change.
type OutputScale struct {
	Output uint32
	Scale  int32
}

// KeyEvent delivers keyboard input for a shell-owned surface (the lock and
// password dialogs are the only consumers).
type KeyEvent struct {
	Surface uint32
	Keysym  uint32
	Rune    uint32
	Pressed bool
}

func encodeString(buf *bytes.Buffer, value string) error {
	if len(value) > 0xFFFF {
		return errStringTooLong
	}
	if err := binary.Write(buf, binary.LittleEndian, uint16(len(value))); err != nil {
		return err
	}
	if len(value) > 0 {
		if _, err := buf.WriteString(value); err != nil {
			return err
		}
	}
	return nil
}

func decodeString(b []byte) (string, []byte, error) {
	if len(b) < 2 {
		return "", nil, errPayloadShort
	}
	length := binary.LittleEndian.Uint16(b[:2])
	b = b[2:]
	if len(b) < int(length) {
		return "", nil, errPayloadShort
	}
	return string(b[:length]), b[length:], nil
}

func encodeU32s(values ...uint32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}
	return out
}

func decodeU32s(b []byte, dst ...*uint32) error {
	if len(b) < 4*len(dst) {
		return errPayloadShort
	}
	for i, p := range dst {
		*p = binary.LittleEndian.Uint32(b[4*i:])
	}
	return nil
}

func EncodeHello(h Hello) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 24+len(h.ClientName)))
	buf.Write(h.ClientID[:])
	if err := encodeString(buf, h.ClientName); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, h.WantedVersion); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeHello(b []byte) (Hello, error) {
	var h Hello
	if len(b) < 16 {
		return h, errPayloadShort
	}
	copy(h.ClientID[:], b[:16])
	name, rest, err := decodeString(b[16:])
	if err != nil {
		return h, err
	}
	h.ClientName = name
	if len(rest) < 4 {
		return h, errPayloadShort
	}
	h.WantedVersion = binary.LittleEndian.Uint32(rest[:4])
	return h, nil
}

func EncodeWelcome(w Welcome) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 8+len(w.ServerName)))
	if err := encodeString(buf, w.ServerName); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, w.Version); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeWelcome(b []byte) (Welcome, error) {
	var w Welcome
	name, rest, err := decodeString(b)
	if err != nil {
		return w, err
	}
	w.ServerName = name
	if len(rest) < 4 {
		return w, errPayloadShort
	}
	w.Version = binary.LittleEndian.Uint32(rest[:4])
	return w, nil
}

func EncodeSetPanel(m SetPanel) ([]byte, error) {
	return encodeU32s(m.Output, m.Surface), nil
}

func DecodeSetPanel(b []byte) (SetPanel, error) {
	var m SetPanel
	err := decodeU32s(b, &m.Output, &m.Surface)
	return m, err
}

func EncodeSetBackground(m SetBackground) ([]byte, error) {
	return encodeU32s(m.Output, m.Surface), nil
}

func DecodeSetBackground(b []byte) (SetBackground, error) {
	var m SetBackground
	err := decodeU32s(b, &m.Output, &m.Surface)
	return m, err
}

func EncodeSetLockSurface(m SetLockSurface) ([]byte, error) {
	return encodeU32s(m.Surface), nil
}

func DecodeSetLockSurface(b []byte) (SetLockSurface, error) {
	var m SetLockSurface
	err := decodeU32s(b, &m.Surface)
	return m, err
}

func EncodeSetGrabSurface(m SetGrabSurface) ([]byte, error) {
	return encodeU32s(m.Surface), nil
}

func DecodeSetGrabSurface(b []byte) (SetGrabSurface, error) {
	var m SetGrabSurface
	err := decodeU32s(b, &m.Surface)
	return m, err
}

func EncodeSwitchUser(m SwitchUser) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 2+len(m.Name)))
	if err := encodeString(buf, m.Name); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeSwitchUser(b []byte) (SwitchUser, error) {
	var m SwitchUser
	name, _, err := decodeString(b)
	if err != nil {
		return m, err
	}
	m.Name = name
	return m, nil
}

func EncodeConfigure(m Configure) ([]byte, error) {
	return encodeU32s(m.Edges, m.Surface, uint32(m.Width), uint32(m.Height)), nil
}

func DecodeConfigure(b []byte) (Configure, error) {
	var m Configure
	var w, h uint32
	if err := decodeU32s(b, &m.Edges, &m.Surface, &w, &h); err != nil {
		return m, err
	}
	m.Width = int32(w)
	m.Height = int32(h)
	return m, nil
}

func EncodeGrabCursor(m GrabCursor) ([]byte, error) {
	return encodeU32s(m.Cursor), nil
}

func DecodeGrabCursor(b []byte) (GrabCursor, error) {
	var m GrabCursor
	err := decodeU32s(b, &m.Cursor)
	return m, err
}

func EncodeUserSwitched(m UserSwitched) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 2+len(m.Name)))
	if err := encodeString(buf, m.Name); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeUserSwitched(b []byte) (UserSwitched, error) {
	var m UserSwitched
	name, _, err := decodeString(b)
	if err != nil {
		return m, err
	}
	m.Name = name
	return m, nil
}

func EncodeOutputAdded(m OutputAdded) ([]byte, error) {
	return encodeU32s(m.Output), nil
}

func DecodeOutputAdded(b []byte) (OutputAdded, error) {
	var m OutputAdded
	err := decodeU32s(b, &m.Output)
	return m, err
}

func EncodeOutputRemoved(m OutputRemoved) ([]byte, error) {
	return encodeU32s(m.Output), nil
}

func DecodeOutputRemoved(b []byte) (OutputRemoved, error) {
	var m OutputRemoved
	err := decodeU32s(b, &m.Output)
	return m, err
}

func EncodeOutputGeometry(m OutputGeometry) ([]byte, error) {
	return encodeU32s(m.Output, uint32(m.Transform)), nil
}

func DecodeOutputGeometry(b []byte) (OutputGeometry, error) {
	var m OutputGeometry
	var tr uint32
	if err := decodeU32s(b, &m.Output, &tr); err != nil {
		return m, err
	}
	m.Transform = int32(tr)
	return m, nil
}

func EncodeOutputScale(m OutputScale) ([]byte, error) {
	return encodeU32s(m.Output, uint32(m.Scale)), nil
}

func DecodeOutputScale(b []byte) (OutputScale, error) {
	var m OutputScale
	var sc uint32
	if err := decodeU32s(b, &m.Output, &sc); err != nil {
		return m, err
	}
	m.Scale = int32(sc)
	return m, nil
}

func EncodeKeyEvent(m KeyEvent) ([]byte, error) {
	pressed := uint32(0)
	if m.Pressed {
		pressed = 1
	}
	return encodeU32s(m.Surface, m.Keysym, m.Rune, pressed), nil
}

func DecodeKeyEvent(b []byte) (KeyEvent, error) {
	var m KeyEvent
	var pressed uint32
	if err := decodeU32s(b, &m.Surface, &m.Keysym, &m.Rune, &pressed); err != nil {
		return m, err
	}
	m.Pressed = pressed != 0
	return m, nil
}

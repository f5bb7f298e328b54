// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: proto/protocol.go
// Summary: Frame codec for the desktop-shell protocol between the shell
// client and the compositor.

package proto

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
)

const (
	magic      uint32 = 0x57534801 // "WSH\x01"
	headerSize        = 16
)

// MaxPayloadLen bounds a frame's declared payload length. Shell messages are
// tiny; anything near this limit is a corrupt or hostile header, rejected
// before the payload buffer is allocated.
const MaxPayloadLen uint32 = 1 << 20

// Flag bits for the header Flags byte.
const (
	FlagChecksum uint8 = 0x01
)

// WireVersion is the frame-format version implemented by this package. It is
// distinct from the negotiated shell interface version carried in the
// Hello/Welcome handshake.
const WireVersion uint8 = 1

// InterfaceVersion is the highest shell interface version this client speaks.
// Version 2 adds desktop_ready, lock and switch_user.
const InterfaceVersion uint32 = 2

// MessageType enumerates the messages exchanged between the shell client and
// the compositor.
type MessageType uint8

const (
	// Handshake
	MsgHello MessageType = iota
	MsgWelcome
	// Client -> compositor
	MsgSetPanel
	MsgSetBackground
	MsgSetLockSurface
	MsgSetGrabSurface
	MsgLock
	MsgUnlock
	MsgSwitchUser
	MsgDesktopReady
	// Compositor -> client
	MsgConfigure
	MsgPrepareLockSurface
	MsgGrabCursor
	MsgUserSwitched
	MsgOutputAdded
	MsgOutputRemoved
	MsgOutputGeometry
	MsgOutputScale
	MsgKeyEvent
)

// Header describes the fixed portion of every frame on the wire.
type Header struct {
	Version    uint8
	Type       MessageType
	Flags      uint8
	Reserved   uint8
	PayloadLen uint32
	Checksum   uint32
}

var (
	ErrInvalidMagic     = errors.New("proto: invalid magic")
	ErrUnsupportedVer   = errors.New("proto: unsupported wire version")
	ErrShortPayload     = errors.New("proto: payload shorter than declared length")
	ErrPayloadTooLarge  = errors.New("proto: declared payload length exceeds limit")
	ErrChecksumMismatch = errors.New("proto: checksum mismatch")
)

// WriteMessage serialises the header and payload to w. The payload slice is
// written as-is; callers retain ownership of the buffer.
func WriteMessage(w io.Writer, hdr Header, payload []byte) error {
	hdr.PayloadLen = uint32(len(payload))

	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:], magic)
	buf[4] = hdr.Version
	buf[5] = byte(hdr.Type)
	buf[6] = hdr.Flags
	buf[7] = hdr.Reserved
	binary.LittleEndian.PutUint32(buf[8:12], hdr.PayloadLen)

	checksum := hdr.Checksum
	if hdr.Flags&FlagChecksum != 0 {
		crc := crc32.NewIEEE()
		_, _ = crc.Write(buf[4:12])
		if len(payload) > 0 {
			_, _ = crc.Write(payload)
		}
		checksum = crc.Sum32()
	}
	binary.LittleEndian.PutUint32(buf[12:16], checksum)

	if _, err := w.Write(buf); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// ReadMessage reads a header and payload from r. The returned payload is a
// freshly allocated slice sized to the declared payload length.
func ReadMessage(r io.Reader) (Header, []byte, error) {
	var hdr Header
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return hdr, nil, err
	}

	if binary.LittleEndian.Uint32(buf[0:4]) != magic {
		return hdr, nil, ErrInvalidMagic
	}

	hdr.Version = buf[4]
	hdr.Type = MessageType(buf[5])
	hdr.Flags = buf[6]
	hdr.Reserved = buf[7]
	hdr.PayloadLen = binary.LittleEndian.Uint32(buf[8:12])
	hdr.Checksum = binary.LittleEndian.Uint32(buf[12:16])

	if hdr.Version != WireVersion {
		return hdr, nil, ErrUnsupportedVer
	}
	if hdr.PayloadLen > MaxPayloadLen {
		return hdr, nil, ErrPayloadTooLarge
	}

	payload := make([]byte, hdr.PayloadLen)
	if hdr.PayloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return hdr, nil, ErrShortPayload
			}
			return hdr, nil, err
		}
	}

	if hdr.Flags&FlagChecksum != 0 {
		crc := crc32.NewIEEE()
		_, _ = crc.Write(buf[4:12])
		if len(payload) > 0 {
			_, _ = crc.Write(payload)
		}
		if crc.Sum32() != hdr.Checksum {
			return hdr, nil, ErrChecksumMismatch
		}
	}

	return hdr, payload, nil
}

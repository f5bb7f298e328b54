// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: proto/protocol_test.go
// Summary: Exercises the frame codec to guard against regressions.

package proto

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	header := Header{
		Version: WireVersion,
		Type:    MsgUserSwitched,
		Flags:   FlagChecksum,
	}
	payload := []byte("hello world")

	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	gotHeader, gotPayload, err := ReadMessage(buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if gotHeader.Type != header.Type {
		t.Fatalf("header mismatch: %+v vs %+v", gotHeader, header)
	}
	if !bytes.Equal(gotPayload, payload) {
		t.Fatalf("payload mismatch: %q vs %q", gotPayload, payload)
	}
}

func TestReadMessageInvalidMagic(t *testing.T) {
	data := make([]byte, headerSize)
	buf := bytes.NewReader(data)
	if _, _, err := ReadMessage(buf); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestReadMessageUnsupportedVersion(t *testing.T) {
	header := Header{Version: WireVersion, Type: MsgLock, Flags: FlagChecksum}
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw := buf.Bytes()
	raw[4] = WireVersion + 1

	if _, _, err := ReadMessage(bytes.NewReader(raw)); !errors.Is(err, ErrUnsupportedVer) {
		t.Fatalf("expected ErrUnsupportedVer, got %v", err)
	}
}

func TestChecksumMismatch(t *testing.T) {
	header := Header{Version: WireVersion, Type: MsgConfigure, Flags: FlagChecksum}
	payload := []byte("configure")
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF

	if _, _, err := ReadMessage(bytes.NewReader(raw)); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestTruncatedPayload(t *testing.T) {
	header := Header{Version: WireVersion, Type: MsgSwitchUser, Flags: FlagChecksum}
	payload := []byte("alice")
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw := buf.Bytes()
	if _, _, err := ReadMessage(bytes.NewReader(raw[:len(raw)-2])); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("expected ErrShortPayload, got %v", err)
	}
}

func TestOversizedPayloadRejectedBeforeAllocation(t *testing.T) {
	header := Header{Version: WireVersion, Type: MsgSwitchUser}
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Declare a payload far beyond the limit without supplying one. The
	// reader must reject the header instead of allocating the buffer.
	raw := buf.Bytes()
	binary.LittleEndian.PutUint32(raw[8:12], MaxPayloadLen+1)

	if _, _, err := ReadMessage(bytes.NewReader(raw)); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

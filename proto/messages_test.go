// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: proto/messages_test.go
// Summary: Spot checks for the message payload codecs.

package proto

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestHelloRoundTrip(t *testing.T) {
	var id [16]byte
	copy(id[:], "shell-client-01!")
	in := Hello{ClientID: id, ClientName: "waveshell", WantedVersion: InterfaceVersion}

	raw, err := EncodeHello(in)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	out, err := DecodeHello(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestWelcomeVersionNegotiation(t *testing.T) {
	raw, err := EncodeWelcome(Welcome{ServerName: "compositor", Version: 1})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	out, err := DecodeWelcome(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out.Version != 1 {
		t.Fatalf("expected granted version 1, got %d", out.Version)
	}
}

func TestConfigureRoundTrip(t *testing.T) {
	in := Configure{Edges: 3, Surface: 42, Width: 1920, Height: 32}
	raw, _ := EncodeConfigure(in)
	out, err := DecodeConfigure(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestKeyEventRoundTrip(t *testing.T) {
	in := KeyEvent{Surface: 7, Keysym: 0xFF0D, Rune: 'a', Pressed: true}
	raw, _ := EncodeKeyEvent(in)
	out, err := DecodeKeyEvent(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestDecodeShortPayload(t *testing.T) {
	if _, err := DecodeConfigure([]byte{1, 2, 3}); !errors.Is(err, errPayloadShort) {
		t.Fatalf("expected errPayloadShort, got %v", err)
	}
	if _, err := DecodeUserSwitched([]byte{9}); !errors.Is(err, errPayloadShort) {
		t.Fatalf("expected errPayloadShort, got %v", err)
	}
}

func TestUserSwitchedRoundTrip(t *testing.T) {
	raw, err := EncodeUserSwitched(UserSwitched{Name: "alice"})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	out, err := DecodeUserSwitched(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out.Name != "alice" {
		t.Fatalf("expected alice, got %q", out.Name)
	}
}

func TestDecodeStringWithLargeTrailingBuffer(t *testing.T) {
	// A correct string at the head of a payload must decode regardless of
	// how much data follows it, including remainders past 64KB whose
	// length would wrap a 16-bit counter.
	buf := make([]byte, 2+5+65533)
	binary.LittleEndian.PutUint16(buf[:2], 5)
	copy(buf[2:], "alice")

	got, rest, err := decodeString(buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != "alice" {
		t.Fatalf("string = %q, want alice", got)
	}
	if len(rest) != 65533 {
		t.Fatalf("rest length = %d, want 65533", len(rest))
	}
}

// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: launcher/spawn_test.go
// Summary: Covers asynchronous spawning and exit reaping.

package launcher

import (
	"testing"
	"time"
)

func TestSpawnDeliversExit(t *testing.T) {
	l, err := New(Icon{Glyph: "s"}, "/bin/sh -c true", false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	s := NewSpawner()
	s.Spawn(l)

	select {
	case exit := <-s.Exits():
		if exit.Code != 0 {
			t.Fatalf("expected clean exit, got %+v", exit)
		}
		if exit.PID <= 0 {
			t.Fatalf("expected valid pid, got %+v", exit)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no exit delivered")
	}
}

func TestSpawnStartFailureIsDropped(t *testing.T) {
	l, err := New(Icon{Glyph: "x"}, "/nonexistent/binary --flag", false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	s := NewSpawner()
	s.Spawn(l)

	select {
	case exit := <-s.Exits():
		t.Fatalf("start failure must not deliver an exit, got %+v", exit)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSpawnEnvironmentOverride(t *testing.T) {
	l, err := New(Icon{Glyph: "e"}, "WAVESHELL_TEST=1 /bin/sh -c true", false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	found := false
	for _, entry := range l.Env() {
		if entry == "WAVESHELL_TEST=1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected WAVESHELL_TEST=1 in child environment")
	}
}

func TestDeliverReleasesAfterClose(t *testing.T) {
	s := NewSpawner()
	// Fill the exit channel so an undrained delivery would block.
	for i := 0; i < cap(s.exits); i++ {
		s.exits <- Exit{PID: i}
	}
	s.Close()

	done := make(chan struct{})
	go func() {
		s.deliver(Exit{PID: 99})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("deliver blocked after Close")
	}
}

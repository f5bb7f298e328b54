// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/lock_test.go
// Summary: Lock screen and user switch round-trip tests.

package shell

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/waveshell/waveshell/config"
)

func TestPrepareLockPresentsUserSelection(t *testing.T) {
	d, svc := testDesktop(t, nil, 2)
	d.HandlePrepareLockSurface()

	dl := d.Dialog()
	if dl == nil {
		t.Fatal("lock announcement should create the unlock dialog")
	}
	if c, ok := svc.last("SetLockSurface"); !ok || c.surface != dl.ID {
		t.Fatalf("lock surface not registered: %+v", svc.calls)
	}
	if len(dl.Entries()) != 2 {
		t.Fatalf("entry count = %d, want 2", len(dl.Entries()))
	}
	if !dl.Entries()[0].focused {
		t.Fatal("first entry should start focused")
	}
}

func TestPrepareLockIsIdempotent(t *testing.T) {
	d, _ := testDesktop(t, nil, 2)
	d.HandlePrepareLockSurface()
	first := d.Dialog()
	d.HandlePrepareLockSurface()
	if d.Dialog() != first {
		t.Fatal("repeated lock announcements must reuse the open dialog")
	}
}

func TestLockingDisabledReleasesImmediately(t *testing.T) {
	cfg := config.Config{"shell": config.Section{"locking": false}}
	d, svc := testDesktop(t, cfg, 2)
	d.HandlePrepareLockSurface()

	if d.Dialog() != nil {
		t.Fatal("no dialog should appear with locking disabled")
	}
	if svc.count("Unlock") != 1 {
		t.Fatalf("Unlock count = %d, want 1", svc.count("Unlock"))
	}
}

func TestEntryNavigationWraps(t *testing.T) {
	d, _ := testDesktop(t, nil, 2)
	d.HandlePrepareLockSurface()
	dl := d.Dialog()

	d.HandleKey(dl.ID, tcell.KeyDown, 0, true)
	if !dl.Entries()[1].focused || dl.Entries()[0].focused {
		t.Fatal("Down should move focus to the second entry")
	}
	d.HandleKey(dl.ID, tcell.KeyDown, 0, true)
	if !dl.Entries()[0].focused {
		t.Fatal("focus should wrap past the last entry")
	}
	d.HandleKey(dl.ID, tcell.KeyUp, 0, true)
	if !dl.Entries()[1].focused {
		t.Fatal("Up should wrap to the last entry")
	}
}

func TestEnterOpensPasswordPrompt(t *testing.T) {
	d, svc := testDesktop(t, nil, 2)
	d.HandlePrepareLockSurface()
	dl := d.Dialog()

	d.HandleKey(dl.ID, tcell.KeyEnter, 0, true)
	pw := dl.Password()
	if pw == nil {
		t.Fatal("Enter should open the password prompt")
	}
	if pw.Username() != "alice" {
		t.Fatalf("prompt user = %q, want alice", pw.Username())
	}
	if c, ok := svc.last("SetLockSurface"); !ok || c.surface != pw.ID {
		t.Fatal("password prompt should become the lock surface")
	}
}

func TestPasswordInputRules(t *testing.T) {
	d, _ := testDesktop(t, nil, 2)
	d.HandlePrepareLockSurface()
	dl := d.Dialog()
	d.HandleKey(dl.ID, tcell.KeyEnter, 0, true)
	pw := dl.Password()

	for _, r := range "secret" {
		d.HandleKey(pw.ID, tcell.KeyRune, r, true)
	}
	if string(pw.text) != "secret" {
		t.Fatalf("entry = %q, want secret", pw.text)
	}

	// Non-printable and multibyte characters are rejected.
	d.HandleKey(pw.ID, tcell.KeyRune, '\x07', true)
	d.HandleKey(pw.ID, tcell.KeyRune, 'é', true)
	if string(pw.text) != "secret" {
		t.Fatalf("entry after rejected runes = %q, want secret", pw.text)
	}

	d.HandleKey(pw.ID, tcell.KeyBackspace2, 0, true)
	if string(pw.text) != "secre" {
		t.Fatalf("entry after backspace = %q, want secre", pw.text)
	}

	// The entry caps at thirty characters.
	for i := 0; i < 2*maxPasswordLen; i++ {
		d.HandleKey(pw.ID, tcell.KeyRune, 'a', true)
	}
	if len(pw.text) != maxPasswordLen {
		t.Fatalf("entry length = %d, want %d", len(pw.text), maxPasswordLen)
	}

	// Release events never reach the entry.
	d.HandleKey(pw.ID, tcell.KeyBackspace2, 0, false)
	if len(pw.text) != maxPasswordLen {
		t.Fatal("release events must be ignored")
	}
}

func TestEscapeReturnsToUserSelection(t *testing.T) {
	d, svc := testDesktop(t, nil, 2)
	d.HandlePrepareLockSurface()
	dl := d.Dialog()
	d.HandleKey(dl.ID, tcell.KeyEnter, 0, true)
	pw := dl.Password()

	d.HandleKey(pw.ID, tcell.KeyEscape, 0, true)
	if dl.Password() != nil {
		t.Fatal("Escape should drop the password prompt")
	}
	if c, ok := svc.last("SetLockSurface"); !ok || c.surface != dl.ID {
		t.Fatal("user selection should become the lock surface again")
	}
	if svc.count("SwitchUser") != 0 || svc.count("Unlock") != 0 {
		t.Fatal("Escape must not switch users or unlock")
	}
}

func TestUnlockRoundTrip(t *testing.T) {
	d, svc := testDesktop(t, nil, 2)
	d.HandleOutputAdded(1)
	d.HandlePrepareLockSurface()
	dl := d.Dialog()

	d.HandleKey(dl.ID, tcell.KeyDown, 0, true)
	d.HandleKey(dl.ID, tcell.KeyEnter, 0, true)
	pw := dl.Password()
	for _, r := range "hunter2" {
		d.HandleKey(pw.ID, tcell.KeyRune, r, true)
	}
	d.HandleKey(pw.ID, tcell.KeyEnter, 0, true)

	if c, ok := svc.last("SwitchUser"); !ok || c.user != "bob" {
		t.Fatalf("SwitchUser not sent for bob: %+v", svc.calls)
	}
	// Confirming destroys the prompt immediately; stray keys to its old
	// surface go nowhere and the selection dialog opens no new prompt
	// while the switch is in flight.
	if dl.Password() != nil {
		t.Fatal("password prompt should be destroyed on confirm")
	}
	d.HandleKey(pw.ID, tcell.KeyEnter, 0, true)
	d.HandleKey(dl.ID, tcell.KeyEnter, 0, true)
	if dl.Password() != nil {
		t.Fatal("no new prompt may open while closing")
	}
	if svc.count("SwitchUser") != 1 {
		t.Fatalf("SwitchUser count = %d, want 1", svc.count("SwitchUser"))
	}

	// The compositor confirms the switch; the acknowledgment is deferred.
	d.HandleUserSwitched("bob")
	if svc.count("Unlock") != 0 {
		t.Fatal("Unlock must not be sent inside the switch delivery")
	}
	d.runDeferred()

	if svc.count("Unlock") != 1 {
		t.Fatalf("Unlock count = %d, want 1", svc.count("Unlock"))
	}
	if d.Dialog() != nil {
		t.Fatal("dialog should be torn down after the unlock")
	}
	if d.CurrentUser() != "bob" {
		t.Fatalf("active user = %q, want bob", d.CurrentUser())
	}
}

func TestSwitchWithoutDialogStillAcknowledges(t *testing.T) {
	d, svc := testDesktop(t, nil, 2)
	d.HandleOutputAdded(1)

	d.HandleUserSwitched("alice")
	d.runDeferred()

	if svc.count("Unlock") != 1 {
		t.Fatalf("Unlock count = %d, want 1", svc.count("Unlock"))
	}
}

func TestSwitcherActivationLocks(t *testing.T) {
	d, svc := testDesktop(t, nil, 2)
	d.HandleOutputAdded(1)
	d.Outputs()[0].Panel().ActivateSwitcher()
	if svc.count("Lock") != 1 {
		t.Fatalf("Lock count = %d, want 1", svc.count("Lock"))
	}
}

func TestSwitcherRequiresVersion2(t *testing.T) {
	d, svc := testDesktop(t, nil, 1)
	d.HandleOutputAdded(1)
	d.Outputs()[0].Panel().ActivateSwitcher()
	if svc.count("Lock") != 0 {
		t.Fatal("Lock must not be requested on interface version 1")
	}
}

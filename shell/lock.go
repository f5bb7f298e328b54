// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/lock.go
// Summary: The lock-screen surfaces: user selection, password entry, and the
// deferred unlock acknowledgment.

package shell

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	maxPasswordLen  = 30
	lockDialogColor = 0xff1c1c2e
)

// UnlockDialog is the lock-screen user selection surface. At most one exists
// per desktop; it lives until the compositor confirms the user switch.
type UnlockDialog struct {
	Surface
	desktop  *Desktop
	entries  []*UserEntry
	selected int

	// closing flips when a switch request has been sent; further activations
	// are ignored until the dialog is torn down.
	closing bool

	pw *PasswordDialog
}

// UserEntry is one selectable account row in the unlock dialog.
type UserEntry struct {
	name    string
	focused bool
}

// Name returns the account name the entry activates.
func (e *UserEntry) Name() string { return e.name }

// PasswordDialog collects the password for one selected account. It replaces
// the unlock dialog as the lock surface while open.
type PasswordDialog struct {
	Surface
	desktop *Desktop
	parent  *UnlockDialog

	username string
	text     []byte
	cursor   int
}

// HandlePrepareLockSurface answers the compositor's lock announcement. With
// locking disabled in the config the session is released immediately and no
// surface is ever presented.
func (d *Desktop) HandlePrepareLockSurface() {
	if !d.locking {
		d.svc.Unlock()
		return
	}
	if d.dialog == nil {
		d.dialog = newUnlockDialog(d)
	}
	d.dispatcher.Broadcast(Event{Type: EventLockEngaged})
}

// Dialog returns the active unlock dialog, nil when the session is unlocked.
func (d *Desktop) Dialog() *UnlockDialog { return d.dialog }

func newUnlockDialog(d *Desktop) *UnlockDialog {
	dl := &UnlockDialog{desktop: d}
	dl.ID = d.allocSurfaceID()
	dl.Title = "unlock dialog"

	for _, a := range d.accounts() {
		dl.entries = append(dl.entries, &UserEntry{name: a.Name})
	}
	if len(dl.entries) > 0 {
		dl.entries[0].focused = true
	}

	d.registerSurface(dl)
	d.svc.SetLockSurface(dl.ID)
	return dl
}

// Entries returns the selectable accounts in display order.
func (dl *UnlockDialog) Entries() []*UserEntry { return dl.entries }

// Password returns the open password dialog, nil while selecting a user.
func (dl *UnlockDialog) Password() *PasswordDialog { return dl.pw }

// Configure resizes the dialog to the compositor-assigned lock geometry.
func (dl *UnlockDialog) Configure(edges uint32, width, height int32) {
	dl.resize(int(width), int(height))
	dl.draw()
}

func (dl *UnlockDialog) draw() {
	if dl.Cols == 0 || dl.Rows == 0 {
		return
	}
	style := argbStyle(lockDialogColor)
	dl.fill(' ', style)

	title := "Select a user"
	dl.drawText((dl.Cols-runewidth.StringWidth(title))/2, 0, title, style.Bold(true))

	top := dl.Rows/2 - len(dl.entries)/2
	for i, e := range dl.entries {
		rowStyle := style
		if e.focused {
			rowStyle = style.Reverse(true)
		}
		label := "  " + e.name + "  "
		dl.drawText((dl.Cols-runewidth.StringWidth(label))/2, top+i, label, rowStyle)
	}
}

func (dl *UnlockDialog) moveFocus(delta int) {
	if len(dl.entries) == 0 {
		return
	}
	dl.entries[dl.selected].focused = false
	dl.selected = (dl.selected + delta + len(dl.entries)) % len(dl.entries)
	dl.entries[dl.selected].focused = true
	dl.draw()
}

// activate opens the password prompt for the focused account.
func (dl *UnlockDialog) activate() {
	if dl.closing || len(dl.entries) == 0 || dl.pw != nil {
		return
	}
	dl.pw = newPasswordDialog(dl, dl.entries[dl.selected].name)
}

func (dl *UnlockDialog) handleKey(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyUp:
		dl.moveFocus(-1)
	case tcell.KeyDown:
		dl.moveFocus(1)
	case tcell.KeyEnter:
		dl.activate()
	}
}

func newPasswordDialog(parent *UnlockDialog, username string) *PasswordDialog {
	d := parent.desktop
	pw := &PasswordDialog{desktop: d, parent: parent, username: username}
	pw.ID = d.allocSurfaceID()
	pw.Title = "password dialog"
	d.registerSurface(pw)
	d.svc.SetLockSurface(pw.ID)
	return pw
}

// Username returns the account the prompt is for.
func (pw *PasswordDialog) Username() string { return pw.username }

// Configure resizes the prompt to the compositor-assigned lock geometry.
func (pw *PasswordDialog) Configure(edges uint32, width, height int32) {
	pw.resize(int(width), int(height))
	pw.draw()
}

func (pw *PasswordDialog) draw() {
	if pw.Cols == 0 || pw.Rows == 0 {
		return
	}
	style := argbStyle(lockDialogColor)
	pw.fill(' ', style)

	prompt := "Password for " + pw.username
	pw.drawText((pw.Cols-runewidth.StringWidth(prompt))/2, pw.Rows/2-1, prompt, style.Bold(true))
	pw.drawText((pw.Cols-maxPasswordLen)/2, pw.Rows/2+1,
		strings.Repeat("*", len(pw.text)), style)
}

// insert adds one character at the cursor. Only printable single-byte
// characters are accepted and the entry is capped at maxPasswordLen.
func (pw *PasswordDialog) insert(r rune) {
	if r < 0x20 || r > 0x7e || len(pw.text) >= maxPasswordLen {
		return
	}
	pw.text = append(pw.text, 0)
	copy(pw.text[pw.cursor+1:], pw.text[pw.cursor:])
	pw.text[pw.cursor] = byte(r)
	pw.cursor++
	pw.draw()
}

func (pw *PasswordDialog) backspace() {
	if pw.cursor == 0 {
		return
	}
	pw.text = append(pw.text[:pw.cursor-1], pw.text[pw.cursor:]...)
	pw.cursor--
	pw.draw()
}

// submit sends the user switch request and drops the prompt. The closing
// guard ensures exactly one request per lock cycle; the prompt is destroyed
// either way and does not come back until the next lock.
func (pw *PasswordDialog) submit() {
	if !pw.parent.closing {
		pw.parent.closing = true
		pw.desktop.svc.SwitchUser(pw.username)
	}
	pw.desktop.unregisterSurface(pw.ID)
	pw.parent.pw = nil
}

// dismiss drops the prompt and returns to user selection.
func (pw *PasswordDialog) dismiss() {
	pw.desktop.unregisterSurface(pw.ID)
	pw.parent.pw = nil
	pw.desktop.svc.SetLockSurface(pw.parent.ID)
}

func (pw *PasswordDialog) handleKey(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape:
		pw.dismiss()
	case tcell.KeyEnter:
		pw.submit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		pw.backspace()
	case tcell.KeyDelete, tcell.KeyLeft, tcell.KeyRight, tcell.KeyTab:
		// Navigation within the entry is not offered.
	case tcell.KeyRune:
		pw.insert(r)
	}
}

// HandleKey routes a key event to the lock surfaces. Events addressed to any
// other surface, and release events, are dropped.
func (d *Desktop) HandleKey(surfaceID uint32, key tcell.Key, r rune, pressed bool) {
	if !pressed || d.dialog == nil {
		return
	}
	if pw := d.dialog.pw; pw != nil && surfaceID == pw.ID {
		pw.handleKey(key, r)
		return
	}
	if surfaceID == d.dialog.ID {
		d.dialog.handleKey(key, r)
	}
}

// scheduleUnlockFinish queues the unlock acknowledgment for the next loop
// pass. At most one acknowledgment is in flight at a time.
func (d *Desktop) scheduleUnlockFinish() {
	if d.unlockPending {
		return
	}
	d.unlockPending = true
	d.Defer(d.finishUnlock)
}

// finishUnlock releases the session and tears down the lock surfaces. It
// always acknowledges, even when the switch happened without a dialog.
func (d *Desktop) finishUnlock() {
	d.svc.Unlock()
	if d.dialog != nil {
		if d.dialog.pw != nil {
			d.unregisterSurface(d.dialog.pw.ID)
		}
		d.unregisterSurface(d.dialog.ID)
		d.dialog = nil
	}
	d.unlockPending = false
}

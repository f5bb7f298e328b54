// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/service.go
// Summary: The compositor-side shell service consumed by the desktop.

package shell

// Service is the shell's view of the compositor. The wire package implements
// it over the desktop-shell protocol; tests substitute a recording fake.
type Service interface {
	// SetPanel registers a surface as an output's panel.
	SetPanel(output, surface uint32)
	// SetBackground registers a surface as an output's background.
	SetBackground(output, surface uint32)
	// SetLockSurface registers the surface shown while locked.
	SetLockSurface(surface uint32)
	// SetGrabSurface registers the pointer-grab focus surface.
	SetGrabSurface(surface uint32)
	// Lock asks the compositor to lock the session (interface version >= 2).
	Lock()
	// Unlock acknowledges that the shell is done presenting the lock screen.
	Unlock()
	// SwitchUser asks the compositor to activate the named user's session.
	SwitchUser(username string)
	// DesktopReady reports that every shell surface has painted at least
	// once (interface version >= 2).
	DesktopReady()
}

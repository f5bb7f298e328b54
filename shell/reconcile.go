// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/reconcile.go
// Summary: Maps an activated username to authoritative surfaces per output.

package shell

// HandleUserSwitched reconciles every output against the newly active user:
// a cached panel/background owned by that user is reused, otherwise a fresh
// one is created and cached. Old authoritative surfaces are never freed here;
// they simply stop being authoritative.
//
// The unlock acknowledgment is deferred to the next loop pass because this
// routine runs inside the shell service's own delivery path.
func (d *Desktop) HandleUserSwitched(username string) {
	d.user = username

	for _, o := range d.outputs {
		var p *Panel
		for _, cached := range o.panels {
			if cached.username == username {
				p = cached
				break
			}
		}
		if p == nil {
			p = newPanel(d)
			o.panels = append(o.panels, p)
		}
		o.panel = p
		d.svc.SetPanel(o.ID, p.ID)

		var b *Background
		for _, cached := range o.backgrounds {
			if cached.username == username {
				b = cached
				break
			}
		}
		if b == nil {
			b = newBackground(d)
			o.backgrounds = append(o.backgrounds, b)
		}
		o.background = b
		d.svc.SetBackground(o.ID, b.ID)
	}

	d.dispatcher.Broadcast(Event{Type: EventUserSwitched, Payload: username})
	d.scheduleUnlockFinish()
}

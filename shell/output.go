// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/output.go
// Summary: Output lifecycle and the per-output surface caches.

package shell

import "log"

// Output represents one physical display. The panel/background fields point
// at the authoritative pair; the slices cache every pair ever created on this
// output, in insertion order, keyed by the owning username. Cache entries are
// only destroyed with the output.
type Output struct {
	ID uint32

	panel      *Panel
	background *Background

	panels      []*Panel
	backgrounds []*Background
}

// Panel returns the authoritative panel, nil while the output is unbound.
func (o *Output) Panel() *Panel { return o.panel }

// Background returns the authoritative background, nil while unbound.
func (o *Output) Background() *Background { return o.background }

// Outputs returns the outputs in registration order.
func (d *Desktop) Outputs() []*Output { return d.outputs }

// HandleOutputAdded registers a new output. The shell global may not be bound
// yet; in that case the output stays bare until BindShell initializes it.
func (d *Desktop) HandleOutputAdded(id uint32) {
	o := &Output{ID: id}
	d.outputs = append(d.outputs, o)

	if d.svc != nil {
		d.initOutput(o)
	}

	d.dispatcher.Broadcast(Event{Type: EventOutputAdded, Payload: OutputPayload{Output: id}})
}

// initOutput creates the initial panel/background pair for the active user
// and registers it with the shell service.
func (d *Desktop) initOutput(o *Output) {
	p := newPanel(d)
	o.panels = append(o.panels, p)
	o.panel = p
	d.svc.SetPanel(o.ID, p.ID)

	b := newBackground(d)
	o.backgrounds = append(o.backgrounds, b)
	o.background = b
	d.svc.SetBackground(o.ID, b.ID)
}

// HandleOutputRemoved destroys the output and every surface cached under it.
func (d *Desktop) HandleOutputRemoved(id uint32) {
	for i, o := range d.outputs {
		if o.ID != id {
			continue
		}
		d.destroyOutput(o)
		d.outputs = append(d.outputs[:i], d.outputs[i+1:]...)
		d.dispatcher.Broadcast(Event{Type: EventOutputRemoved, Payload: OutputPayload{Output: id}})
		return
	}
	log.Printf("Shell: Removal of unknown output %d ignored", id)
}

func (d *Desktop) destroyOutput(o *Output) {
	for _, b := range o.backgrounds {
		d.unregisterSurface(b.ID)
	}
	for _, p := range o.panels {
		d.unregisterSurface(p.ID)
	}
	o.panel = nil
	o.background = nil
	o.panels = nil
	o.backgrounds = nil
}

// HandleOutputGeometry forwards a transform change to the authoritative pair.
// Cached, inactive surfaces are not updated live.
func (d *Desktop) HandleOutputGeometry(id uint32, transform int32) {
	o := d.findOutput(id)
	if o == nil {
		return
	}
	if o.panel != nil {
		o.panel.setTransform(transform)
	}
	if o.background != nil {
		o.background.setTransform(transform)
	}
}

// HandleOutputScale forwards a scale change to the authoritative pair.
func (d *Desktop) HandleOutputScale(id uint32, scale int32) {
	o := d.findOutput(id)
	if o == nil {
		return
	}
	if o.panel != nil {
		o.panel.setScale(scale)
	}
	if o.background != nil {
		o.background.setScale(scale)
	}
}

func (d *Desktop) findOutput(id uint32) *Output {
	for _, o := range d.outputs {
		if o.ID == id {
			return o
		}
	}
	return nil
}

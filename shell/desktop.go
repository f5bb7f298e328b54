// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/desktop.go
// Summary: The Desktop root object and its event loop.
// Usage: One instance per process; every compositor event is dispatched as a
// closure onto its loop.

package shell

import (
	"log"
	"sync"
	"time"

	"github.com/waveshell/waveshell/config"
	"github.com/waveshell/waveshell/launcher"
	"github.com/waveshell/waveshell/users"
)

// clockInterval drives panel clock redraws. The clock shows minutes, so a
// coarse tick is enough.
const clockInterval = 30 * time.Second

// Desktop is the process-wide shell root: the shell-service handle, the
// negotiated interface version, the active user, outputs and their cached
// surfaces, and the lock dialog when one exists.
type Desktop struct {
	svc     Service
	version uint32

	cfg      config.Config
	spawner  *launcher.Spawner
	accounts func() []users.Account

	dispatcher *EventDispatcher

	user    string
	locking bool

	outputs  []*Output
	surfaces map[uint32]Drawable
	nextID   uint32

	dialog *UnlockDialog

	grab       *grabSurface
	grabCursor Cursor

	// painted flips once the readiness barrier has fired; it never resets.
	painted bool

	tasks         chan func()
	deferred      []func()
	unlockPending bool

	quit      chan struct{}
	closeOnce sync.Once
}

// NewDesktop creates the shell root. The shell service is not bound yet;
// outputs discovered before BindShell stay bare until it is called.
func NewDesktop(cfg config.Config, spawner *launcher.Spawner) *Desktop {
	d := &Desktop{
		cfg:        cfg,
		spawner:    spawner,
		accounts:   loadAccounts,
		dispatcher: NewEventDispatcher(),
		user:       "Guest",
		locking:    cfg.GetBool("shell", "locking", true),
		surfaces:   make(map[uint32]Drawable),
		grabCursor: CursorLeftPtr,
		tasks:      make(chan func(), 64),
		quit:       make(chan struct{}),
	}
	d.dispatcher.Subscribe(readyBarrier{d})
	return d
}

func loadAccounts() []users.Account {
	accounts, err := users.Load()
	if err != nil {
		log.Printf("Shell: Failed to enumerate accounts: %v", err)
	}
	return accounts
}

// Dispatcher exposes the shell event bus.
func (d *Desktop) Dispatcher() *EventDispatcher { return d.dispatcher }

// CurrentUser returns the active username.
func (d *Desktop) CurrentUser() string { return d.user }

// GrabCursor returns the cursor currently requested for the grab surface.
func (d *Desktop) GrabCursor() Cursor { return d.grabCursor }

// BindShell attaches the compositor's shell service. Outputs discovered
// before this point get their initial panel and background now.
func (d *Desktop) BindShell(svc Service, version uint32) {
	d.svc = svc
	d.version = version

	d.grab = newGrabSurface(d)
	svc.SetGrabSurface(d.grab.ID)

	for _, o := range d.outputs {
		if o.panel == nil {
			d.initOutput(o)
		}
	}
}

// Run drives the shell until Close. Every compositor callback posted via Post
// runs here; deferred tasks run after the posting dispatch returns.
func (d *Desktop) Run() error {
	ticker := time.NewTicker(clockInterval)
	defer ticker.Stop()

	for {
		select {
		case fn := <-d.tasks:
			fn()
			d.runDeferred()
		case exit := <-d.spawner.Exits():
			log.Printf("Shell: child %d exited with status %d", exit.PID, exit.Code)
		case now := <-ticker.C:
			d.tickClocks(now)
		case <-d.quit:
			return nil
		}
	}
}

// Post queues a compositor event for dispatch on the shell loop.
func (d *Desktop) Post(fn func()) {
	select {
	case d.tasks <- fn:
	case <-d.quit:
	}
}

// Defer schedules fn to run after the current dispatch returns. Calls made
// into the shell service from fn therefore never reenter its delivery path.
func (d *Desktop) Defer(fn func()) {
	d.deferred = append(d.deferred, fn)
}

func (d *Desktop) runDeferred() {
	for len(d.deferred) > 0 {
		queue := d.deferred
		d.deferred = nil
		for _, fn := range queue {
			fn()
		}
	}
}

func (d *Desktop) Close() {
	d.closeOnce.Do(func() {
		close(d.quit)
		// No one drains child exits once the loop stops.
		d.spawner.Close()
	})
}

func (d *Desktop) allocSurfaceID() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Desktop) registerSurface(dr Drawable) {
	d.surfaces[dr.SurfaceID()] = dr
}

func (d *Desktop) unregisterSurface(id uint32) {
	delete(d.surfaces, id)
}

// HandleConfigure routes a configure event to the owning surface.
func (d *Desktop) HandleConfigure(edges, surfaceID uint32, width, height int32) {
	if dr, ok := d.surfaces[surfaceID]; ok {
		dr.Configure(edges, width, height)
	}
}

// HandleGrabCursor maps the protocol cursor kind to a display cursor.
func (d *Desktop) HandleGrabCursor(kind uint32) {
	d.grabCursor = cursorForKind(kind)
}

// surfacePainted records a surface's first paint and lets the readiness
// barrier re-evaluate.
func (d *Desktop) surfacePainted(id uint32) {
	d.dispatcher.Broadcast(Event{Type: EventSurfacePainted, Payload: PaintedPayload{Surface: id}})
}

// readyBarrier fires the one-shot desktop-ready signal once every
// authoritative panel and background has painted.
type readyBarrier struct {
	d *Desktop
}

func (b readyBarrier) OnEvent(event Event) {
	if event.Type != EventSurfacePainted {
		return
	}
	b.d.checkDesktopReady()
}

func (d *Desktop) checkDesktopReady() {
	if d.painted || !d.isDesktopPainted() {
		return
	}
	d.painted = true
	if d.version >= 2 {
		d.svc.DesktopReady()
	}
}

func (d *Desktop) isDesktopPainted() bool {
	for _, o := range d.outputs {
		if o.panel != nil && !o.panel.painted {
			return false
		}
		if o.background != nil && !o.background.painted {
			return false
		}
	}
	return true
}

func (d *Desktop) tickClocks(now time.Time) {
	for _, o := range d.outputs {
		if o.panel != nil && o.panel.clock.update(now) {
			o.panel.draw()
		}
	}
}

// grabSurface is the 1x1 surface that receives the fake pointer enter during
// compositor grabs; it only reports the desktop's current grab cursor.
type grabSurface struct {
	Surface
	desktop *Desktop
}

func newGrabSurface(d *Desktop) *grabSurface {
	g := &grabSurface{desktop: d}
	g.ID = d.allocSurfaceID()
	g.Title = "grab"
	g.resize(1, 1)
	d.registerSurface(g)
	return g
}

func (g *grabSurface) Configure(edges uint32, width, height int32) {}

// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/session.go
// Summary: Watches logind for lock requests and suspend so the shell can
// engage the lock screen without compositor involvement.

package session

import (
	"fmt"
	"log"

	"github.com/godbus/dbus/v5"
)

const (
	sessionIface = "org.freedesktop.login1.Session"
	managerIface = "org.freedesktop.login1.Manager"

	lockSignal  = sessionIface + ".Lock"
	sleepSignal = managerIface + ".PrepareForSleep"
)

// Locker is the shell-side hook the watcher drives. The wire connection's
// Lock request satisfies it.
type Locker interface {
	Lock()
}

// Watcher forwards logind lock and pre-suspend signals to a Locker. It is
// optional; a desktop without a system bus runs fine without one.
type Watcher struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
	locker  Locker
	done    chan struct{}
}

// Watch connects to the system bus and subscribes to session lock and
// suspend announcements.
func Watch(locker Locker) (*Watcher, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("session: connect system bus: %w", err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(sessionIface),
		dbus.WithMatchMember("Lock"),
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session: match lock signal: %w", err)
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(managerIface),
		dbus.WithMatchMember("PrepareForSleep"),
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session: match sleep signal: %w", err)
	}

	w := &Watcher{
		conn:    conn,
		signals: make(chan *dbus.Signal, 16),
		locker:  locker,
		done:    make(chan struct{}),
	}
	conn.Signal(w.signals)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for sig := range w.signals {
		w.handle(sig)
	}
}

// handle engages the lock on a session Lock signal and right before suspend.
// PrepareForSleep also fires with false on resume, which is not a lock cue.
func (w *Watcher) handle(sig *dbus.Signal) {
	switch sig.Name {
	case lockSignal:
		log.Printf("Session: Lock requested by logind")
		w.locker.Lock()
	case sleepSignal:
		entering, ok := firstBool(sig.Body)
		if !ok {
			log.Printf("Session: Malformed PrepareForSleep signal ignored")
			return
		}
		if entering {
			log.Printf("Session: Locking before suspend")
			w.locker.Lock()
		}
	}
}

func firstBool(body []interface{}) (bool, bool) {
	if len(body) == 0 {
		return false, false
	}
	b, ok := body[0].(bool)
	return b, ok
}

// Close disconnects from the bus and stops signal delivery.
func (w *Watcher) Close() error {
	w.conn.RemoveSignal(w.signals)
	err := w.conn.Close()
	close(w.signals)
	<-w.done
	return err
}

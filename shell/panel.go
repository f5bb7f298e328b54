// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/panel.go
// Summary: The per-output, per-user panel surface with its launcher strip,
// clock and user switcher.

package shell

import (
	"log"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/waveshell/waveshell/launcher"
)

// Panels are a single row; the compositor dictates the width via configure.
const panelRows = 1

const (
	defaultPanelColor   = 0xaa000000
	defaultLauncherIcon = ">_"
	defaultLauncherPath = "/usr/bin/foot"
)

// Panel is the top bar owned by one (output, user) pair. It lives in its
// output's cache until the output goes away.
type Panel struct {
	Surface
	desktop  *Desktop
	username string
	color    uint32
	painted  bool

	launchers []*launcher.Launcher
	clock     *Clock
	switcher  *Switcher
}

// Switcher is the user-identity affordance on the right edge of the panel.
// Activating it asks the compositor to lock so another user can be chosen.
type Switcher struct {
	username string
	icon     launcher.Icon
	focused  bool
}

func newPanel(d *Desktop) *Panel {
	p := &Panel{
		desktop:  d,
		username: d.user,
		color:    d.cfg.GetColor("shell", "panel-color", defaultPanelColor),
		clock:    newClock(),
	}
	p.ID = d.allocSurfaceID()
	p.Title = "panel"
	p.switcher = &Switcher{
		username: d.user,
		icon:     launcher.Icon{Glyph: "◉", Name: "user"},
	}
	p.addLaunchers()
	d.registerSurface(p)
	return p
}

// addLaunchers builds the launcher strip from the "launcher" sections plus
// the per-user "launcher-<user>" sections. Malformed sections are skipped;
// zero valid sections yields the single default terminal launcher.
func (p *Panel) addLaunchers() {
	sections := p.desktop.cfg.Sections("launcher")
	sections = append(sections, p.desktop.cfg.Sections("launcher-"+p.username)...)

	for _, s := range sections {
		iconPath := s.String("icon", "")
		path := s.String("path", "")
		if iconPath == "" || path == "" {
			log.Printf("Shell: Invalid launcher section (icon and path required)")
			continue
		}
		l, err := launcher.New(launcher.LoadIcon(iconPath), path, s.Bool("terminal", false))
		if err != nil {
			log.Printf("Shell: Invalid launcher path %q: %v", path, err)
			continue
		}
		p.launchers = append(p.launchers, l)
	}

	if len(p.launchers) == 0 {
		l, err := launcher.New(
			launcher.Icon{Glyph: defaultLauncherIcon, Name: "terminal"},
			defaultLauncherPath, true)
		if err != nil {
			log.Printf("Shell: Default launcher unavailable: %v", err)
			return
		}
		p.launchers = []*launcher.Launcher{l}
	}
}

// Launchers returns the panel's launcher strip in configuration order.
func (p *Panel) Launchers() []*launcher.Launcher { return p.launchers }

// Username returns the user this panel was created for.
func (p *Panel) Username() string { return p.username }

// Painted reports whether the panel has completed its first paint.
func (p *Panel) Painted() bool { return p.painted }

// ActivateLauncher starts the launcher at index i.
func (p *Panel) ActivateLauncher(i int) {
	if i < 0 || i >= len(p.launchers) {
		return
	}
	p.desktop.spawner.Spawn(p.launchers[i])
}

// ActivateSwitcher asks the compositor to lock the session so another user
// can be selected. Requires interface version 2.
func (p *Panel) ActivateSwitcher() {
	if p.desktop.version >= 2 {
		p.desktop.svc.Lock()
	}
}

// Configure resizes the panel to the compositor-assigned width and repaints.
func (p *Panel) Configure(edges uint32, width, height int32) {
	p.resize(int(width), panelRows)
	p.draw()
}

func (p *Panel) draw() {
	if p.Cols == 0 || p.Rows == 0 {
		return
	}

	style := argbStyle(p.color)
	p.fill(' ', style)

	x := 1
	for _, l := range p.launchers {
		p.drawText(x, 0, l.Icon.Glyph, style)
		x += l.Icon.Width() + 2
	}

	right := p.Cols - 1
	sw := runewidth.StringWidth(p.switcher.username) + p.switcher.icon.Width() + 1
	right -= sw
	p.drawText(right, 0, p.switcher.username+" "+p.switcher.icon.Glyph, style)

	clockText := p.clock.Text()
	right -= runewidth.StringWidth(clockText) + 2
	p.drawText(right, 0, clockText, style)

	if !p.painted {
		p.painted = true
		p.desktop.surfacePainted(p.ID)
	}
}

// Clock is the panel's time display, redrawn at minute granularity from the
// desktop loop ticker.
type Clock struct {
	text string
}

func newClock() *Clock {
	c := &Clock{}
	c.update(time.Now())
	return c
}

// update refreshes the clock text and reports whether it changed.
func (c *Clock) update(now time.Time) bool {
	text := now.Format("Mon Jan 02, 03:04 PM")
	if text == c.text {
		return false
	}
	c.text = text
	return true
}

// Text returns the current clock display text.
func (c *Clock) Text() string { return c.text }

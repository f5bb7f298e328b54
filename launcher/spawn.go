// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: launcher/spawn.go
// Summary: Starts launchers asynchronously and reaps their exits.
// Notes: Exit collection happens on watcher goroutines; logging is left to
// the shell event loop draining Exits().

package launcher

import (
	"io"
	"log"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// Exit reports one terminated child.
type Exit struct {
	PID  int
	Code int
}

// Spawner starts parsed launchers without blocking the caller and delivers
// their exits on a channel consumed by the shell event loop.
type Spawner struct {
	exits chan Exit
	quit  chan struct{}
	once  sync.Once
}

func NewSpawner() *Spawner {
	return &Spawner{
		exits: make(chan Exit, 16),
		quit:  make(chan struct{}),
	}
}

// Close releases watcher goroutines once nothing drains Exits anymore.
// Children keep running; only exit reporting stops.
func (s *Spawner) Close() {
	s.once.Do(func() { close(s.quit) })
}

// Exits delivers (pid, exit status) pairs for every child started by Spawn,
// in termination order.
func (s *Spawner) Exits() <-chan Exit { return s.exits }

// Spawn starts the launcher's process in a new session. Start failure is
// logged and the request dropped; there is no retry. Exec failure inside the
// child is observable only through the exit delivered on Exits().
func (s *Spawner) Spawn(l *Launcher) {
	argv := l.Argv()
	cmd := &exec.Cmd{
		Path: argv[0],
		Args: argv,
		Env:  l.Env(),
	}

	var ptmx io.ReadCloser
	if l.Terminal {
		f, err := pty.Start(cmd)
		if err != nil {
			log.Printf("Launcher: Failed to start %q on pty: %v", argv[0], err)
			return
		}
		ptmx = f
	} else {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
		if err := cmd.Start(); err != nil {
			log.Printf("Launcher: Failed to start %q: %v", argv[0], err)
			return
		}
	}

	go s.watch(cmd, ptmx)
}

func (s *Spawner) watch(cmd *exec.Cmd, ptmx io.ReadCloser) {
	if ptmx != nil {
		// Drain terminal output so the child never blocks on a full pty.
		go io.Copy(io.Discard, ptmx)
	}

	err := cmd.Wait()
	code := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}
	if ptmx != nil {
		ptmx.Close()
	}
	s.deliver(Exit{PID: cmd.Process.Pid, Code: code})
}

func (s *Spawner) deliver(exit Exit) {
	select {
	case s.exits <- exit:
	case <-s.quit:
	}
}

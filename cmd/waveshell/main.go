// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/waveshell/main.go
// Summary: The waveshell session client. Connects to the compositor's shell
// socket and runs the desktop loop until the connection drops.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/waveshell/waveshell/config"
	"github.com/waveshell/waveshell/launcher"
	"github.com/waveshell/waveshell/session"
	"github.com/waveshell/waveshell/shell"
	"github.com/waveshell/waveshell/wire"
)

const clientName = "waveshell"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	socketPath := flag.String("socket", defaultSocketPath(), "Compositor shell socket path")
	configPath := flag.String("config", "", "Shell config file (default: user config dir)")
	noSessionWatch := flag.Bool("no-session-watch", false, "Do not watch logind for lock requests")
	flag.Parse()

	// Interactive stderr keeps the short format; everything else gets
	// timestamps for log collection.
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	}

	if *configPath != "" {
		os.Setenv("WAVESHELL_CONFIG_PATH", *configPath)
	}
	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("Shell: Running with default config: %v", err)
	}

	conn, err := wire.Dial(*socketPath, clientName)
	if err != nil {
		return err
	}
	defer conn.Close()

	desktop := shell.NewDesktop(cfg, launcher.NewSpawner())
	desktop.BindShell(conn, conn.Version())

	// The logind watcher is best effort; a session without a system bus
	// still gets compositor-driven locking.
	if !*noSessionWatch {
		if watcher, err := session.Watch(conn); err != nil {
			log.Printf("Shell: Session watch disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Shell: Received %v, shutting down", sig)
		desktop.Close()
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- conn.Serve(desktop)
		desktop.Close()
	}()

	if err := desktop.Run(); err != nil {
		return err
	}
	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

func defaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "waveshell.sock")
	}
	return "/tmp/waveshell.sock"
}

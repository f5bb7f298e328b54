// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: launcher/launcher.go
// Summary: Parses launcher path specifications into process invocations.
// Usage: Panels build one Launcher per configured launcher section.

package launcher

import (
	"errors"
	"os"
	"strings"
)

// ErrNoExecutable is returned when a launcher spec contains environment
// assignments but no executable path.
var ErrNoExecutable = errors.New("launcher: no executable in path spec")

// Launcher is one parsed executable entry on a panel. Immutable after
// construction.
type Launcher struct {
	Spec     string
	Icon     Icon
	Terminal bool

	argv []string
	envp []string
}

// New parses spec into a Launcher. The spec's leading KEY=value tokens
// override or extend the inherited process environment; the first other token
// is the executable path.
func New(icon Icon, spec string, terminal bool) (*Launcher, error) {
	argv, envp := Parse(spec, os.Environ())
	if len(argv) == 0 {
		return nil, ErrNoExecutable
	}
	return &Launcher{
		Spec:     spec,
		Icon:     icon,
		Terminal: terminal,
		argv:     argv,
		envp:     envp,
	}, nil
}

// Argv returns the argument vector; slot 0 is the executable path.
func (l *Launcher) Argv() []string { return l.argv }

// Env returns the child environment.
func (l *Launcher) Env() []string { return l.envp }

// Parse splits spec into an argument vector and an environment vector derived
// from environ. Tokens of the form KEY=value are environment assignments only
// until the first token that is not one; from that point on every token is an
// argument, even if it contains '='. An assignment whose key matches an
// existing environment entry replaces that entry in place, otherwise it is
// appended.
func Parse(spec string, environ []string) (argv, envp []string) {
	envp = append([]string(nil), environ...)
	for _, tok := range strings.Fields(spec) {
		if len(argv) == 0 {
			if eq := strings.IndexByte(tok, '='); eq >= 0 {
				key := tok[:eq+1]
				replaced := false
				for i, entry := range envp {
					if strings.HasPrefix(entry, key) {
						envp[i] = tok
						replaced = true
						break
					}
				}
				if !replaced {
					envp = append(envp, tok)
				}
				continue
			}
		}
		argv = append(argv, tok)
	}
	return argv, envp
}

// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Built-in defaults for the shell configuration.

package config

// Shell config keys live in the "shell" section. Launcher entries are
// repeated "launcher" sections, optionally per-user as "launcher-<user>".
func applyDefaults(cfg Config) {
	cfg.RegisterDefaults("shell", Section{
		"locking":         true,
		"panel-color":     "0xaa000000",
		"background-type": "tile",
	})
}

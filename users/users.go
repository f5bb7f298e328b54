// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: users/users.go
// Summary: Enumerates system accounts eligible for the unlock dialog.

package users

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

const passwdPath = "/etc/passwd"

// Accounts with a UID outside this range are system accounts and never shown
// on the lock screen.
const (
	minUID = 1000
	maxUID = 6000
)

// Login shells that mark an account as disabled.
var disabledShells = []string{"/bin/false", "/sbin/nologin"}

// Account is a read-only projection of one system account.
type Account struct {
	Name  string
	UID   int
	Shell string
}

// Eligible parses passwd-format records from r and returns the accounts that
// may appear on the lock screen, in file order. Malformed lines are skipped.
func Eligible(r io.Reader) []Account {
	var out []Account
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 7 {
			continue
		}
		uid, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		acct := Account{Name: fields[0], UID: uid, Shell: fields[6]}
		if acct.eligible() {
			out = append(out, acct)
		}
	}
	return out
}

func (a Account) eligible() bool {
	if a.UID < minUID || a.UID > maxUID {
		return false
	}
	for _, shell := range disabledShells {
		if a.Shell == shell {
			return false
		}
	}
	return true
}

// Load enumerates eligible accounts from the system passwd database.
func Load() ([]Account, error) {
	f, err := os.Open(passwdPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Eligible(f), nil
}

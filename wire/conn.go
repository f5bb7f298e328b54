// Copyright © 2026 Waveshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wire/conn.go
// Summary: The compositor connection: socket dial, handshake, and the
// client-to-compositor half of the desktop-shell protocol.

package wire

import (
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/waveshell/waveshell/proto"
)

// Conn is an established desktop-shell protocol connection. Its request
// methods implement shell.Service; frame writes are serialised internally so
// any goroutine may call them.
type Conn struct {
	c  net.Conn
	mu sync.Mutex

	id         uuid.UUID
	serverName string
	version    uint32
}

// Dial connects to the compositor's shell socket and performs the handshake.
func Dial(path, clientName string) (*Conn, error) {
	c, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("wire: dial %s: %w", path, err)
	}
	conn, err := NewConn(c, clientName)
	if err != nil {
		c.Close()
		return nil, err
	}
	return conn, nil
}

// NewConn performs the Hello/Welcome handshake over an existing connection.
// The granted interface version is the minimum of what both sides speak.
func NewConn(c net.Conn, clientName string) (*Conn, error) {
	conn := &Conn{c: c, id: uuid.New()}

	hello := proto.Hello{
		ClientName:    clientName,
		WantedVersion: proto.InterfaceVersion,
	}
	copy(hello.ClientID[:], conn.id[:])
	payload, err := proto.EncodeHello(hello)
	if err != nil {
		return nil, fmt.Errorf("wire: encode hello: %w", err)
	}
	if err := conn.send(proto.MsgHello, payload); err != nil {
		return nil, fmt.Errorf("wire: send hello: %w", err)
	}

	hdr, payload, err := proto.ReadMessage(c)
	if err != nil {
		return nil, fmt.Errorf("wire: read welcome: %w", err)
	}
	if hdr.Type != proto.MsgWelcome {
		return nil, fmt.Errorf("wire: expected welcome, got message type %d", hdr.Type)
	}
	welcome, err := proto.DecodeWelcome(payload)
	if err != nil {
		return nil, fmt.Errorf("wire: decode welcome: %w", err)
	}

	conn.serverName = welcome.ServerName
	conn.version = welcome.Version
	if conn.version > proto.InterfaceVersion {
		conn.version = proto.InterfaceVersion
	}
	log.Printf("Wire: Connected to %q, interface version %d", conn.serverName, conn.version)
	return conn, nil
}

// Version returns the negotiated shell interface version.
func (c *Conn) Version() uint32 { return c.version }

// ServerName returns the compositor's self-reported name.
func (c *Conn) ServerName() string { return c.serverName }

// ClientID returns the identity sent in the handshake.
func (c *Conn) ClientID() uuid.UUID { return c.id }

func (c *Conn) Close() error { return c.c.Close() }

func (c *Conn) send(msgType proto.MessageType, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	hdr := proto.Header{
		Version: proto.WireVersion,
		Type:    msgType,
		Flags:   proto.FlagChecksum,
	}
	return proto.WriteMessage(c.c, hdr, payload)
}

// request encodes and sends one shell request. Shell requests have no replies;
// a write failure is logged and otherwise dropped, the read pump will surface
// the broken connection.
func (c *Conn) request(msgType proto.MessageType, payload []byte, err error) {
	if err != nil {
		log.Printf("Wire: Failed to encode message type %d: %v", msgType, err)
		return
	}
	if err := c.send(msgType, payload); err != nil {
		log.Printf("Wire: Failed to send message type %d: %v", msgType, err)
	}
}

func (c *Conn) SetPanel(output, surface uint32) {
	payload, err := proto.EncodeSetPanel(proto.SetPanel{Output: output, Surface: surface})
	c.request(proto.MsgSetPanel, payload, err)
}

func (c *Conn) SetBackground(output, surface uint32) {
	payload, err := proto.EncodeSetBackground(proto.SetBackground{Output: output, Surface: surface})
	c.request(proto.MsgSetBackground, payload, err)
}

func (c *Conn) SetLockSurface(surface uint32) {
	payload, err := proto.EncodeSetLockSurface(proto.SetLockSurface{Surface: surface})
	c.request(proto.MsgSetLockSurface, payload, err)
}

func (c *Conn) SetGrabSurface(surface uint32) {
	payload, err := proto.EncodeSetGrabSurface(proto.SetGrabSurface{Surface: surface})
	c.request(proto.MsgSetGrabSurface, payload, err)
}

func (c *Conn) Lock() {
	c.request(proto.MsgLock, nil, nil)
}

func (c *Conn) Unlock() {
	c.request(proto.MsgUnlock, nil, nil)
}

func (c *Conn) SwitchUser(username string) {
	payload, err := proto.EncodeSwitchUser(proto.SwitchUser{Name: username})
	c.request(proto.MsgSwitchUser, payload, err)
}

func (c *Conn) DesktopReady() {
	c.request(proto.MsgDesktopReady, nil, nil)
}

// Package transport defines the byte-level transport capability the EL406
// driver requires, together with a serial-port implementation.
//
// The washer attaches through an FTDI USB-serial adapter, but the driver
// only depends on the minimal capability set below: open, line
// configuration, write, bounded read, buffer purge, close. Tests swap in
// a scripted in-memory transport.
package transport

import (
	"errors"
	"time"
)

// ErrNotOpen indicates an operation on a transport that has not been
// opened, or was already closed.
var ErrNotOpen = errors.New("transport: not open")

// Parity is the serial parity mode.
type Parity int

const (
	NoParity Parity = iota
	OddParity
	EvenParity
)

// LineConfig holds the serial line parameters the driver pushes to the
// adapter during device setup.
type LineConfig struct {
	BaudRate int
	DataBits int
	StopBits int // 1 or 2
	Parity   Parity

	// FlowControl enables hardware flow control. The EL406 requires it
	// disabled.
	FlowControl bool

	// AssertRTS and AssertDTR raise the corresponding modem lines after
	// configuration.
	AssertRTS bool
	AssertDTR bool
}

// Transport is the byte-level capability set the driver consumes.
//
// Read returns up to len(p) bytes. It blocks for at most the duration set
// by SetReadTimeout and returns (0, nil) when the timeout expires with no
// data, mirroring serial-port semantics.
//
// Implementations are not required to be goroutine-safe; the driver
// serializes all access behind its own lock.
type Transport interface {
	Open() error
	Configure(cfg LineConfig) error
	SetReadTimeout(d time.Duration) error
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
	Purge() error
	Close() error
}

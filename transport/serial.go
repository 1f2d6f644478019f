package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Serial is a Transport backed by a local serial port (including FTDI
// USB-serial adapters exposed as ports by the OS).
type Serial struct {
	portName string
	port     serial.Port
}

var _ Transport = (*Serial)(nil)

// NewSerial creates a Serial transport for the named port
// (e.g. "/dev/ttyUSB0" or "COM3"). The port is not opened until Open.
func NewSerial(portName string) *Serial {
	return &Serial{portName: portName}
}

// Open opens the port. Opening an already-open transport is a no-op.
func (s *Serial) Open() error {
	if s.port != nil {
		return nil
	}

	port, err := serial.Open(s.portName, &serial.Mode{BaudRate: 9600})
	if err != nil {
		return fmt.Errorf("transport: open %s: %w", s.portName, err)
	}
	s.port = port

	return nil
}

// Configure applies the line parameters to the open port.
//
// Hardware flow control is not supported by the underlying library; the
// EL406 requires it disabled, so a config requesting it is rejected.
func (s *Serial) Configure(cfg LineConfig) error {
	if s.port == nil {
		return ErrNotOpen
	}

	if cfg.FlowControl {
		return fmt.Errorf("transport: hardware flow control not supported on %s", s.portName)
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
	}

	switch cfg.StopBits {
	case 1:
		mode.StopBits = serial.OneStopBit
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return fmt.Errorf("transport: unsupported stop bit count %d", cfg.StopBits)
	}

	switch cfg.Parity {
	case NoParity:
		mode.Parity = serial.NoParity
	case OddParity:
		mode.Parity = serial.OddParity
	case EvenParity:
		mode.Parity = serial.EvenParity
	default:
		return fmt.Errorf("transport: unsupported parity %d", cfg.Parity)
	}

	if err := s.port.SetMode(mode); err != nil {
		return fmt.Errorf("transport: set mode on %s: %w", s.portName, err)
	}

	if cfg.AssertRTS {
		if err := s.port.SetRTS(true); err != nil {
			return fmt.Errorf("transport: assert RTS on %s: %w", s.portName, err)
		}
	}
	if cfg.AssertDTR {
		if err := s.port.SetDTR(true); err != nil {
			return fmt.Errorf("transport: assert DTR on %s: %w", s.portName, err)
		}
	}

	return nil
}

// SetReadTimeout sets the maximum time a single Read call blocks.
func (s *Serial) SetReadTimeout(d time.Duration) error {
	if s.port == nil {
		return ErrNotOpen
	}

	return s.port.SetReadTimeout(d)
}

// Write writes bytes to the port.
func (s *Serial) Write(p []byte) (int, error) {
	if s.port == nil {
		return 0, ErrNotOpen
	}

	return s.port.Write(p)
}

// Read reads up to len(p) bytes from the port, blocking for at most the
// configured read timeout. A timeout yields (0, nil).
func (s *Serial) Read(p []byte) (int, error) {
	if s.port == nil {
		return 0, ErrNotOpen
	}

	return s.port.Read(p)
}

// Purge discards any pending bytes in the RX and TX buffers.
func (s *Serial) Purge() error {
	if s.port == nil {
		return ErrNotOpen
	}

	if err := s.port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("transport: reset input buffer on %s: %w", s.portName, err)
	}
	if err := s.port.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("transport: reset output buffer on %s: %w", s.portName, err)
	}

	return nil
}

// Close closes the port. Closing a transport that is not open is a no-op.
func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}

	err := s.port.Close()
	s.port = nil
	if err != nil {
		return fmt.Errorf("transport: close %s: %w", s.portName, err)
	}

	return nil
}

package el406

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/biocule/go-el406/internal/pool"
	"github.com/biocule/go-el406/wire"
)

// Response is a parsed response frame from the device.
type Response struct {
	// Command is the command code echoed in the response header.
	Command uint16
	// Data is the response payload.
	Data []byte
}

// DeviceState is the run state reported by a status poll.
type DeviceState uint16

const (
	StateInitial DeviceState = 1
	StateRunning DeviceState = 2
	StatePaused  DeviceState = 3
	StateStopped DeviceState = 4
)

func (s DeviceState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", uint16(s))
	}
}

// PollStatus is the result of a status poll (command 0x92).
type PollStatus struct {
	// Validity is the device-reported error code; 0 means no error.
	Validity uint16
	// State is the run state.
	State DeviceState
	// Status is the step-specific status byte.
	Status byte
	// Raw is the complete poll payload.
	Raw []byte
}

// pollStatusMinSize is the smallest payload a status poll may carry:
// validity (2) + state (2) + status (1).
const pollStatusMinSize = 5

func parsePollStatus(data []byte) (*PollStatus, error) {
	if len(data) < pollStatusMinSize {
		return nil, fmt.Errorf("%w: status poll payload %d bytes, want at least %d", ErrUnknownValue, len(data), pollStatusMinSize)
	}

	raw := make([]byte, len(data))
	copy(raw, data)

	return &PollStatus{
		Validity: binary.LittleEndian.Uint16(data[0:2]),
		State:    DeviceState(binary.LittleEndian.Uint16(data[2:4])),
		Status:   data[4],
		Raw:      raw,
	}, nil
}

// --- Engine entry points ---
//
// The engine handles three request shapes. All acquire the device mutex
// for the full cycle, purge the line, and begin with the framed write +
// ACK handshake.

// runFramed executes a fire-and-collect command: the device ACKs the
// header and returns its response frame immediately.
func (d *Device) runFramed(ctx context.Context, command uint16, payload []byte, timeout time.Duration) (*Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil, ErrNotConnected
	}

	return d.doExchange(ctx, command, payload, timeout)
}

// runAction executes an action command: the device ACKs immediately but
// delivers its completion frame only once the action finishes, so the
// frame wait uses the full operation timeout.
func (d *Device) runAction(ctx context.Context, command uint16, payload []byte, timeout time.Duration) (*Response, error) {
	return d.runFramed(ctx, command, payload, timeout)
}

// runStep executes a long-running physical operation. The device ACKs and
// responds immediately, then works in the background; completion is
// detected by polling the device state until it leaves RUNNING.
func (d *Device) runStep(ctx context.Context, command uint16, payload []byte, timeout time.Duration) (*PollStatus, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil, ErrNotConnected
	}

	// A new step must not start while the device is still moving liquid.
	if err := d.waitReady(ctx); err != nil {
		return nil, err
	}

	if _, err := d.doExchange(ctx, command, payload, d.cfg.ackTimeout); err != nil {
		return nil, err
	}

	if err := d.sleep(ctx, d.cfg.settleDelay); err != nil {
		return nil, err
	}

	started := time.Now()
	for {
		st, err := d.pollStatus(ctx)
		if err != nil {
			return nil, err
		}
		d.metrics.incPollCount()

		switch st.State {
		case StateInitial, StateStopped:
			return d.finishStep(command, st)

		case StateRunning:
			// Still working, keep polling.

		case StatePaused:
			d.logger.Warn("el406: device paused during step",
				"command", fmt.Sprintf("0x%02X", command),
				"status", st.Status)

		default:
			if st.Status == 0 {
				return d.finishStep(command, st)
			}
			d.logger.Debug("el406: unrecognized device state during step",
				"command", fmt.Sprintf("0x%02X", command),
				"state", uint16(st.State),
				"status", st.Status)
		}

		if elapsed := time.Since(started); elapsed >= timeout {
			d.metrics.incTimeoutCount()

			return nil, fmt.Errorf("%w: command 0x%02X incomplete after %v (budget %v)",
				ErrStepTimeout, command, elapsed.Round(time.Millisecond), timeout)
		}

		if err := d.sleep(ctx, d.cfg.pollInterval); err != nil {
			return nil, err
		}
	}
}

// finishStep inspects the terminal poll of a step operation.
func (d *Device) finishStep(command uint16, st *PollStatus) (*PollStatus, error) {
	if st.Validity != 0 {
		d.metrics.incDeviceErrCount()
		d.logger.Error("el406: step finished with device error",
			"command", fmt.Sprintf("0x%02X", command),
			"validity", fmt.Sprintf("0x%04X", st.Validity))

		return nil, &DeviceError{Code: st.Validity}
	}

	d.logger.Debug("el406: step complete",
		"command", fmt.Sprintf("0x%02X", command),
		"state", st.State.String())

	return st, nil
}

// waitReady polls the device state until it is not RUNNING. The wait has
// its own short budget so a wedged device fails fast instead of consuming
// the whole step timeout.
func (d *Device) waitReady(ctx context.Context) error {
	deadline := time.Now().Add(d.cfg.readyTimeout)

	for {
		st, err := d.pollStatus(ctx)
		if err != nil {
			return err
		}

		if st.State != StateRunning {
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("%w: device still running after %v readiness wait", ErrStepTimeout, d.cfg.readyTimeout)
		}

		if err := d.sleep(ctx, d.cfg.pollInterval); err != nil {
			return err
		}
	}
}

// pollStatus issues one status poll. Caller must hold d.mu.
func (d *Device) pollStatus(ctx context.Context) (*PollStatus, error) {
	rsp, err := d.doExchange(ctx, cmdStatusPoll, nil, d.cfg.ackTimeout)
	if err != nil {
		return nil, err
	}

	return parsePollStatus(rsp.Data)
}

// --- Single exchange ---

// doExchange performs one full request/response cycle: purge, framed
// write, ACK wait, response frame read. Caller must hold d.mu.
func (d *Device) doExchange(ctx context.Context, command uint16, payload []byte, frameTimeout time.Duration) (*Response, error) {
	d.metrics.incCommandSendCount()

	if err := d.purge(); err != nil {
		d.metrics.incCommandErrCount()
		return nil, err
	}

	if err := d.writeFrame(ctx, command, payload); err != nil {
		d.metrics.incCommandErrCount()
		return nil, err
	}

	if err := d.awaitAck(ctx, command, d.cfg.ackTimeout); err != nil {
		d.metrics.incCommandErrCount()
		return nil, err
	}

	rsp, err := d.readResponse(ctx, frameTimeout)
	if err != nil {
		d.metrics.incCommandErrCount()
		return nil, err
	}

	return rsp, nil
}

func (d *Device) purge() error {
	if err := d.tr.Purge(); err != nil {
		return &TransportError{Op: "purge", Err: err}
	}

	return nil
}

// writeFrame serializes and writes one framed command: header first, then
// after a short gap the payload. The device needs the gap to latch the
// header before payload bytes arrive.
func (d *Device) writeFrame(ctx context.Context, command uint16, payload []byte) error {
	frame, err := wire.BuildFrame(command, payload)
	if err != nil {
		return err
	}

	d.logger.Debug("el406: sending command",
		"command", fmt.Sprintf("0x%02X", command),
		"payloadLen", len(payload))

	if err := d.writeAll(frame[:wire.HeaderSize]); err != nil {
		return err
	}

	if len(payload) == 0 {
		return nil
	}

	if err := d.sleep(ctx, d.cfg.interWriteDelay); err != nil {
		return err
	}

	return d.writeAll(frame[wire.HeaderSize:])
}

func (d *Device) writeAll(data []byte) error {
	for written := 0; written < len(data); {
		n, err := d.tr.Write(data[written:])
		written += n

		if err != nil {
			return &TransportError{Op: "write", Err: err}
		}
	}

	return nil
}

// awaitAck waits for the single ACK/NAK handshake byte. Stray bytes
// before the handshake are ignored.
func (d *Device) awaitAck(ctx context.Context, command uint16, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var buf [1]byte

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%w: command 0x%02X, no handshake within %v", ErrAckTimeout, command, timeout)
		}

		if err := d.tr.SetReadTimeout(remaining); err != nil {
			return &TransportError{Op: "set read timeout", Err: err}
		}

		n, err := d.tr.Read(buf[:])
		if err != nil {
			return &TransportError{Op: "read", Err: err}
		}
		if n == 0 {
			// Read timed out; loop to re-check the deadline.
			continue
		}

		switch buf[0] {
		case wire.ACK:
			return nil

		case wire.NAK:
			d.metrics.incNakCount()

			return fmt.Errorf("%w: command 0x%02X", ErrRejected, command)

		default:
			d.logger.Debug("el406: ignoring stray byte before handshake",
				"byte", fmt.Sprintf("0x%02X", buf[0]))
		}
	}
}

// readResponse reads an 11-byte response header, derives the payload
// length from it, and reads the payload.
func (d *Device) readResponse(ctx context.Context, timeout time.Duration) (*Response, error) {
	deadline := time.Now().Add(timeout)

	header := make([]byte, wire.HeaderSize)
	if err := d.readFull(ctx, header, deadline); err != nil {
		return nil, asResponseTimeout(err, timeout)
	}

	dataLen := wire.DataLen(header)
	data := make([]byte, dataLen)
	if err := d.readFull(ctx, data, deadline); err != nil {
		return nil, asResponseTimeout(err, timeout)
	}

	frame := make([]byte, 0, len(header)+len(data))
	frame = append(frame, header...)
	frame = append(frame, data...)
	if err := wire.VerifyFrame(frame); err != nil {
		return nil, err
	}

	return &Response{
		Command: wire.Command(header),
		Data:    data,
	}, nil
}

// readFull reads exactly len(buf) bytes, bounded by deadline. The
// transport read timeout is reset before each read call.
func (d *Device) readFull(ctx context.Context, buf []byte, deadline time.Time) error {
	for read := 0; read < len(buf); {
		if err := ctx.Err(); err != nil {
			return err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return os.ErrDeadlineExceeded
		}

		if err := d.tr.SetReadTimeout(remaining); err != nil {
			return &TransportError{Op: "set read timeout", Err: err}
		}

		n, err := d.tr.Read(buf[read:])
		read += n

		if err != nil {
			return &TransportError{Op: "read", Err: err}
		}
		if n == 0 {
			return os.ErrDeadlineExceeded
		}
	}

	return nil
}

func asResponseTimeout(err error, timeout time.Duration) error {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return fmt.Errorf("%w: no frame within %v", ErrResponseTimeout, timeout)
	}

	return err
}

// sleep waits for dur or until ctx is cancelled, using the shared timer
// pool.
func (d *Device) sleep(ctx context.Context, dur time.Duration) error {
	if dur <= 0 {
		return nil
	}

	t := pool.GetTimer(dur)
	defer pool.PutTimer(t)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

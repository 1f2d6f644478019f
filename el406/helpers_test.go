package el406

import (
	"context"
	"encoding/binary"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/biocule/go-el406/transport"
	"github.com/biocule/go-el406/wire"
)

// mockTransport is a scripted in-memory transport. Tests queue the bytes
// the device would send (handshakes and response frames) up front; reads
// drain the queue in order. When the queue is empty a read blocks for the
// configured read timeout and reports zero bytes, matching serial-port
// timeout semantics.
type mockTransport struct {
	mu sync.Mutex

	opened      bool
	closed      bool
	configured  bool
	lineConfig  transport.LineConfig
	purgeCount  int
	readTimeout time.Duration

	rx []byte // scripted device->host bytes
	tx []byte // everything the host wrote
}

func newMockTransport() *mockTransport {
	return &mockTransport{}
}

func (m *mockTransport) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = true

	return nil
}

func (m *mockTransport) Configure(cfg transport.LineConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configured = true
	m.lineConfig = cfg

	return nil
}

func (m *mockTransport) SetReadTimeout(d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readTimeout = d

	return nil
}

func (m *mockTransport) Write(data []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tx = append(m.tx, data...)

	return len(data), nil
}

func (m *mockTransport) Read(buf []byte) (int, error) {
	m.mu.Lock()
	if len(m.rx) == 0 {
		// Simulate the read timeout without making tests wait the full
		// configured duration.
		wait := m.readTimeout
		if wait > 50*time.Millisecond {
			wait = 50 * time.Millisecond
		}
		m.mu.Unlock()
		time.Sleep(wait)

		return 0, nil
	}

	n := copy(buf, m.rx)
	m.rx = m.rx[n:]
	m.mu.Unlock()

	return n, nil
}

func (m *mockTransport) Purge() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeCount++

	return nil
}

func (m *mockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true

	return nil
}

// --- Scripting helpers ---

func (m *mockTransport) queueBytes(data ...byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rx = append(m.rx, data...)
}

func (m *mockTransport) queueAck() { m.queueBytes(wire.ACK) }
func (m *mockTransport) queueNak() { m.queueBytes(wire.NAK) }

// queueFrame queues a complete response frame.
func (m *mockTransport) queueFrame(t *testing.T, command uint16, data []byte) {
	t.Helper()

	frame, err := wire.BuildFrame(command, data)
	require.NoError(t, err)
	m.queueBytes(frame...)
}

// queueResponse queues the full reply to one exchange: ACK followed by
// the response frame.
func (m *mockTransport) queueResponse(t *testing.T, command uint16, data []byte) {
	t.Helper()

	m.queueAck()
	m.queueFrame(t, command, data)
}

// queueStatus queues one status poll reply.
func (m *mockTransport) queueStatus(t *testing.T, validity uint16, state DeviceState, status byte) {
	t.Helper()

	data := make([]byte, pollStatusMinSize)
	binary.LittleEndian.PutUint16(data[0:2], validity)
	binary.LittleEndian.PutUint16(data[2:4], uint16(state))
	data[4] = status

	m.queueResponse(t, cmdStatusPoll, data)
}

// writtenFrame is one parsed command frame from the transmit log.
type writtenFrame struct {
	command uint16
	payload []byte
}

// writtenFrames reassembles the frames the device received from the raw
// transmit log.
func (m *mockTransport) writtenFrames(t *testing.T) []writtenFrame {
	t.Helper()

	m.mu.Lock()
	raw := make([]byte, len(m.tx))
	copy(raw, m.tx)
	m.mu.Unlock()

	var frames []writtenFrame
	for len(raw) > 0 {
		require.GreaterOrEqual(t, len(raw), wire.HeaderSize, "truncated frame header in transmit log")

		dataLen := wire.DataLen(raw)
		total := wire.HeaderSize + dataLen
		require.GreaterOrEqual(t, len(raw), total, "truncated frame payload in transmit log")
		require.NoError(t, wire.VerifyFrame(raw[:total]))

		frames = append(frames, writtenFrame{
			command: wire.Command(raw),
			payload: raw[wire.HeaderSize:total],
		})
		raw = raw[total:]
	}

	return frames
}

// writtenCommands returns just the command codes, in write order.
func (m *mockTransport) writtenCommands(t *testing.T) []uint16 {
	t.Helper()

	frames := m.writtenFrames(t)
	cmds := make([]uint16, 0, len(frames))
	for _, f := range frames {
		cmds = append(cmds, f.command)
	}

	return cmds
}

// --- Device helpers ---

// fastOptions shrinks the engine timing so failure-path tests finish
// quickly.
func fastOptions(extra ...Option) []Option {
	opts := []Option{
		WithAckTimeout(MinAckTimeout),
		WithPollInterval(MinPollInterval),
		WithSettleDelay(0),
		WithTimeout(2 * time.Second),
	}

	return append(opts, extra...)
}

// newOpenDevice creates a device on a mock transport and runs Setup with
// the handshake script the device would produce.
func newOpenDevice(t *testing.T, opts ...Option) (*Device, *mockTransport) {
	t.Helper()

	mock := newMockTransport()
	dev, err := NewDevice(mock, fastOptions(opts...)...)
	require.NoError(t, err)

	// Setup script: ACK for the communication test, then ACK plus a
	// response frame for the clear-state command.
	mock.queueAck()
	mock.queueResponse(t, cmdClearState, nil)

	require.NoError(t, dev.Setup(context.Background()))

	return dev, mock
}

// queueStepScript queues the replies for one successful step operation:
// readiness poll, the step exchange itself, then the given poll states
// ending in a terminal one.
func queueStepScript(t *testing.T, mock *mockTransport, command uint16, states ...DeviceState) {
	t.Helper()

	mock.queueStatus(t, 0, StateInitial, 0) // readiness check
	mock.queueResponse(t, command, nil)
	for _, st := range states {
		mock.queueStatus(t, 0, st, 0)
	}
}

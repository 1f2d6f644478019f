package el406

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biocule/go-el406/wire"
)

// setupFrameCount is the number of frames Setup writes before any test
// operation runs: communication test and clear state.
const setupFrameCount = 2

func TestRunFramedRoundTrip(t *testing.T) {
	dev, mock := newOpenDevice(t)

	mock.queueResponse(t, cmdSerialNumber, []byte("EL406-1234"))

	sn, err := dev.SerialNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EL406-1234", sn)

	cmds := mock.writtenCommands(t)
	require.Len(t, cmds, setupFrameCount+1)
	assert.Equal(t, cmdSerialNumber, cmds[setupFrameCount])
}

func TestRunFramedNotConnected(t *testing.T) {
	mock := newMockTransport()
	dev, err := NewDevice(mock, fastOptions()...)
	require.NoError(t, err)

	_, err = dev.SerialNumber(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestRunFramedRejected(t *testing.T) {
	dev, mock := newOpenDevice(t)

	mock.queueNak()

	_, err := dev.SerialNumber(context.Background())
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, uint64(1), dev.GetMetrics().NakCount.Load())
}

func TestRunFramedAckTimeout(t *testing.T) {
	dev, _ := newOpenDevice(t)

	// Nothing queued: the handshake never arrives.
	_, err := dev.SerialNumber(context.Background())
	assert.ErrorIs(t, err, ErrAckTimeout)
	assert.Equal(t, uint64(1), dev.GetMetrics().CommandErrCount.Load())
}

func TestRunFramedStrayBytesBeforeAck(t *testing.T) {
	dev, mock := newOpenDevice(t)

	// Line noise before the handshake must be skipped, not treated as a
	// response.
	mock.queueBytes(0x00, 0xFF)
	mock.queueResponse(t, cmdSerialNumber, []byte("SN1"))

	sn, err := dev.SerialNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SN1", sn)
}

func TestRunFramedCorruptedResponse(t *testing.T) {
	dev, mock := newOpenDevice(t)

	frame, err := wire.BuildFrame(cmdSerialNumber, []byte("SN"))
	require.NoError(t, err)
	frame[len(frame)-1] ^= 0xFF // corrupt the payload

	mock.queueAck()
	mock.queueBytes(frame...)

	_, err = dev.SerialNumber(context.Background())
	assert.ErrorIs(t, err, wire.ErrChecksumMismatch)
}

func TestRunFramedContextCancelled(t *testing.T) {
	dev, _ := newOpenDevice(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dev.SerialNumber(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunStepPollsUntilStopped(t *testing.T) {
	dev, mock := newOpenDevice(t)

	queueStepScript(t, mock, cmdShakeSoak, StateRunning, StateRunning, StateStopped)

	err := dev.Shake(context.Background(), ShakeParams{Intensity: 2, Duration: 5})
	require.NoError(t, err)

	cmds := mock.writtenCommands(t)
	// Setup, readiness poll, step command, three completion polls.
	assert.Equal(t, []uint16{
		cmdCommTest, cmdClearState,
		cmdStatusPoll, cmdShakeSoak,
		cmdStatusPoll, cmdStatusPoll, cmdStatusPoll,
	}, cmds)
	assert.Equal(t, uint64(3), dev.GetMetrics().PollCount.Load())
}

func TestRunStepImmediateCompletion(t *testing.T) {
	dev, mock := newOpenDevice(t)

	queueStepScript(t, mock, cmdShakeSoak, StateInitial)

	err := dev.Shake(context.Background(), ShakeParams{Intensity: 1, Duration: 1})
	require.NoError(t, err)
}

func TestRunStepDeviceError(t *testing.T) {
	dev, mock := newOpenDevice(t)

	mock.queueStatus(t, 0, StateInitial, 0)
	mock.queueResponse(t, cmdShakeSoak, nil)
	mock.queueStatus(t, 0, StateRunning, 0)
	mock.queueStatus(t, 0x0210, StateStopped, 0)

	err := dev.Shake(context.Background(), ShakeParams{Intensity: 2, Duration: 5})
	require.Error(t, err)

	var devErr *DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, uint16(0x0210), devErr.Code)
	assert.Contains(t, devErr.Error(), "pressure out of range")
	assert.Equal(t, uint64(1), dev.GetMetrics().DeviceErrCount.Load())
}

func TestRunStepPausedKeepsPolling(t *testing.T) {
	dev, mock := newOpenDevice(t)

	queueStepScript(t, mock, cmdShakeSoak, StateRunning, StatePaused, StateRunning, StateStopped)

	err := dev.Shake(context.Background(), ShakeParams{Intensity: 2, Duration: 5})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), dev.GetMetrics().PollCount.Load())
}

func TestRunFramedResponseTimeout(t *testing.T) {
	dev, mock := newOpenDevice(t)

	// The device accepts the command but never sends its response frame.
	mock.queueAck()

	_, err := dev.SerialNumber(context.Background())
	assert.ErrorIs(t, err, ErrResponseTimeout)
	assert.Equal(t, uint64(1), dev.GetMetrics().CommandErrCount.Load())
}

func TestRunStepPollLoopTimeout(t *testing.T) {
	dev, mock := newOpenDevice(t, WithTimeout(MinTimeout))

	// The step is accepted but the device reports RUNNING forever; the
	// poll loop must give up once the operation budget is spent.
	mock.queueStatus(t, 0, StateInitial, 0)
	mock.queueResponse(t, cmdManifoldDispense, nil)
	for range 30 {
		mock.queueStatus(t, 0, StateRunning, 0)
	}

	err := dev.ManifoldDispense(context.Background(), ManifoldDispenseParams{
		Volume:   100,
		FlowRate: 2,
	})
	require.ErrorIs(t, err, ErrStepTimeout)
	assert.Contains(t, err.Error(), "budget")
	assert.Equal(t, uint64(1), dev.GetMetrics().TimeoutCount.Load())

	// Unlike a readiness failure, the step command itself was sent.
	assert.Contains(t, mock.writtenCommands(t), cmdManifoldDispense)
}

func TestRunStepReadinessWaitTimesOut(t *testing.T) {
	dev, mock := newOpenDevice(t, WithReadyTimeout(MinReadyTimeout))

	// The device reports RUNNING forever; the readiness wait must give
	// up on its own budget without issuing the step command.
	for range 20 {
		mock.queueStatus(t, 0, StateRunning, 0)
	}

	err := dev.Shake(context.Background(), ShakeParams{Intensity: 2, Duration: 5})
	require.ErrorIs(t, err, ErrStepTimeout)

	for _, cmd := range mock.writtenCommands(t) {
		assert.NotEqual(t, cmdShakeSoak, cmd)
	}
}

func TestAbortWritesAbortCommand(t *testing.T) {
	dev, mock := newOpenDevice(t)

	mock.queueResponse(t, cmdAbort, nil)

	require.NoError(t, dev.Abort(context.Background()))

	frames := mock.writtenFrames(t)
	require.Len(t, frames, setupFrameCount+1)
	assert.Equal(t, cmdAbort, frames[setupFrameCount].command)
	assert.Equal(t, []byte{0x00}, frames[setupFrameCount].payload)
}

func TestParsePollStatus(t *testing.T) {
	st, err := parsePollStatus([]byte{0x10, 0x02, 0x04, 0x00, 0x07})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0210), st.Validity)
	assert.Equal(t, StateStopped, st.State)
	assert.Equal(t, byte(0x07), st.Status)

	_, err = parsePollStatus([]byte{0x00, 0x00})
	assert.ErrorIs(t, err, ErrUnknownValue)
}

func TestDeviceStateString(t *testing.T) {
	assert.Equal(t, "initial", StateInitial.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "state(9)", DeviceState(9).String())
}

func TestStatusQuery(t *testing.T) {
	dev, mock := newOpenDevice(t)

	mock.queueStatus(t, 0, StateInitial, 3)

	st, err := dev.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateInitial, st.State)
	assert.Equal(t, byte(3), st.Status)
	assert.Equal(t, uint16(0), st.Validity)

	stopErr := dev.Stop(context.Background())
	require.NoError(t, stopErr)

	_, err = dev.Status(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestTransportErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &TransportError{Op: "write", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "write")
}

package el406

import (
	"context"
	"errors"
	"sync"

	"github.com/biocule/go-el406/logger"
	"github.com/biocule/go-el406/transport"
)

// defaultLineConfig is the serial line configuration the EL406 requires.
var defaultLineConfig = transport.LineConfig{
	BaudRate:    38400,
	DataBits:    8,
	StopBits:    2,
	Parity:      transport.NoParity,
	FlowControl: false,
	AssertRTS:   true,
	AssertDTR:   true,
}

// Device drives one EL406 plate washer over a byte transport.
//
// Create it with NewDevice, open the connection with Setup, and release
// it with Stop. All operation methods are safe for concurrent use; the
// device mutex serializes them in submission order.
type Device struct {
	cfg    *Config
	logger logger.Logger

	// mu guards the transport and the cached plate type. It is held for
	// the full duration of any request/response/poll cycle: only one
	// command may be in flight on the wire at a time.
	mu        sync.Mutex
	tr        transport.Transport
	connected bool
	plateType PlateType

	metrics DeviceMetrics
}

// NewDevice creates a Device on the given transport. The transport is not
// opened until Setup.
func NewDevice(tr transport.Transport, opts ...Option) (*Device, error) {
	if tr == nil {
		return nil, errors.New("el406: transport is nil")
	}

	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Device{
		cfg:       cfg,
		logger:    cfg.logger,
		tr:        tr,
		plateType: cfg.plateType,
	}, nil
}

// Setup opens and configures the serial line, verifies the device is
// talking, and clears any stale state left from a previous run.
func (d *Device) Setup(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return nil
	}

	if err := d.tr.Open(); err != nil {
		return &TransportError{Op: "open", Err: err}
	}

	if err := d.handshake(ctx); err != nil {
		// Release the port so a failed Setup can be retried and does not
		// wedge the serial line until process exit.
		if closeErr := d.tr.Close(); closeErr != nil {
			d.logger.Error("el406: closing transport after failed setup", "error", closeErr)
		}

		return err
	}

	d.connected = true
	d.logger.Info("el406: device ready", "plateType", d.plateType.String())

	return nil
}

// handshake configures the line and verifies the device is talking.
// Caller must hold d.mu and have opened the transport.
func (d *Device) handshake(ctx context.Context) error {
	if err := d.tr.Configure(defaultLineConfig); err != nil {
		return &TransportError{Op: "configure", Err: err}
	}

	if err := d.purge(); err != nil {
		return err
	}

	// Communication self-test: the device only ACKs the test frame when
	// framing and line settings agree.
	if err := d.writeFrame(ctx, cmdCommTest, nil); err != nil {
		return err
	}
	if err := d.awaitAck(ctx, cmdCommTest, d.cfg.ackTimeout); err != nil {
		return err
	}

	if _, err := d.doExchange(ctx, cmdClearState, nil, d.cfg.timeout); err != nil {
		return err
	}

	return nil
}

// Stop releases the transport. The device can be reopened with Setup.
func (d *Device) Stop(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}
	d.connected = false

	if err := d.tr.Close(); err != nil {
		return &TransportError{Op: "close", Err: err}
	}

	return nil
}

// SetPlateType changes the cached plate format. This is local state used
// to default command parameters; no command is sent to the device.
func (d *Device) SetPlateType(pt PlateType) error {
	if !pt.valid() {
		return validateRange("plate type", int(pt), int(Plate1536), int(Plate1536Flange))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.plateType = pt

	return nil
}

// PlateType returns the cached plate format.
func (d *Device) PlateType() PlateType {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.plateType
}

// Abort cancels whatever step operation is currently executing on the
// device.
func (d *Device) Abort(ctx context.Context) error {
	return d.AbortStep(ctx, 0)
}

// AbortStep cancels the step of the given type. Step type 0 aborts
// whatever is active.
func (d *Device) AbortStep(ctx context.Context, stepType byte) error {
	_, err := d.runAction(ctx, cmdAbort, []byte{stepType}, d.cfg.timeout)

	return err
}

// GetMetrics returns the metrics associated with the device.
func (d *Device) GetMetrics() *DeviceMetrics {
	return &d.metrics
}

// Settings is a JSON-serializable snapshot of the device configuration.
type Settings struct {
	PlateType    string `json:"plate_type"`
	Timeout      string `json:"timeout"`
	AckTimeout   string `json:"ack_timeout"`
	ReadyTimeout string `json:"ready_timeout"`
	PollInterval string `json:"poll_interval"`
	SettleDelay  string `json:"settle_delay"`
}

// Serialize returns a snapshot of the current configuration, suitable
// for persisting alongside run logs.
func (d *Device) Serialize() Settings {
	d.mu.Lock()
	pt := d.plateType
	d.mu.Unlock()

	return Settings{
		PlateType:    pt.String(),
		Timeout:      d.cfg.timeout.String(),
		AckTimeout:   d.cfg.ackTimeout.String(),
		ReadyTimeout: d.cfg.readyTimeout.String(),
		PollInterval: d.cfg.pollInterval.String(),
		SettleDelay:  d.cfg.settleDelay.String(),
	}
}

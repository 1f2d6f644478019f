package el406

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"
)

// SerialNumber reads the device serial number.
func (d *Device) SerialNumber(ctx context.Context) (string, error) {
	rsp, err := d.runFramed(ctx, cmdSerialNumber, nil, d.cfg.timeout)
	if err != nil {
		return "", err
	}

	sn := strings.TrimRight(string(rsp.Data), "\x00 ")
	if sn == "" {
		return "", fmt.Errorf("%w: empty serial number response", ErrUnknownValue)
	}

	return sn, nil
}

// ManifoldKind identifies the wash manifold installed in the device.
type ManifoldKind byte

const (
	Manifold96Tube  ManifoldKind = 1
	Manifold192Tube ManifoldKind = 2
	Manifold384Tube ManifoldKind = 3
)

func (k ManifoldKind) String() string {
	switch k {
	case Manifold96Tube:
		return "96-tube"
	case Manifold192Tube:
		return "192-tube"
	case Manifold384Tube:
		return "384-tube"
	default:
		return fmt.Sprintf("manifold(%d)", byte(k))
	}
}

// ManifoldType reads which wash manifold is installed.
func (d *Device) ManifoldType(ctx context.Context) (ManifoldKind, error) {
	rsp, err := d.runFramed(ctx, cmdManifoldType, nil, d.cfg.timeout)
	if err != nil {
		return 0, err
	}
	if len(rsp.Data) < 1 {
		return 0, fmt.Errorf("%w: empty manifold type response", ErrUnknownValue)
	}

	kind := ManifoldKind(rsp.Data[0])
	switch kind {
	case Manifold96Tube, Manifold192Tube, Manifold384Tube:
		return kind, nil
	default:
		return 0, fmt.Errorf("%w: manifold type byte 0x%02X", ErrUnknownValue, rsp.Data[0])
	}
}

// SensorState reports the device sensor inputs as decoded flags.
type SensorState struct {
	// VacuumOK is set when the vacuum pump holds pressure.
	VacuumOK bool
	// WasteFull is set when the waste bottle float switch trips.
	WasteFull bool
	// BufferPresent reports the level sensors of inlets A-D in order.
	BufferPresent [4]bool
	// PlateDetected is set when a plate sits on the carrier.
	PlateDetected bool
	// DoorClosed is set when the access door interlock is closed.
	DoorClosed bool
	// Raw is the undecoded sensor word.
	Raw uint16
}

// Sensor flag bits in the sensor state word.
const (
	sensorVacuumOK      = 1 << 0
	sensorWasteFull     = 1 << 1
	sensorBufferA       = 1 << 2
	sensorBufferB       = 1 << 3
	sensorBufferC       = 1 << 4
	sensorBufferD       = 1 << 5
	sensorPlateDetected = 1 << 6
	sensorDoorClosed    = 1 << 7
)

// SensorStatus reads and decodes the device sensor inputs.
func (d *Device) SensorStatus(ctx context.Context) (*SensorState, error) {
	rsp, err := d.runFramed(ctx, cmdSensorState, nil, d.cfg.timeout)
	if err != nil {
		return nil, err
	}
	if len(rsp.Data) < 2 {
		return nil, fmt.Errorf("%w: sensor state payload %d bytes, want at least 2", ErrUnknownValue, len(rsp.Data))
	}

	raw := binary.LittleEndian.Uint16(rsp.Data[0:2])

	return &SensorState{
		VacuumOK:  raw&sensorVacuumOK != 0,
		WasteFull: raw&sensorWasteFull != 0,
		BufferPresent: [4]bool{
			raw&sensorBufferA != 0,
			raw&sensorBufferB != 0,
			raw&sensorBufferC != 0,
			raw&sensorBufferD != 0,
		},
		PlateDetected: raw&sensorPlateDetected != 0,
		DoorClosed:    raw&sensorDoorClosed != 0,
		Raw:           raw,
	}, nil
}

// SelfCheck runs the device self-check routine. The completion frame
// arrives only when the check finishes, so the wait uses the full
// operation timeout. A failed check surfaces as a DeviceError carrying
// the reported code.
func (d *Device) SelfCheck(ctx context.Context) error {
	rsp, err := d.runAction(ctx, cmdSelfCheck, nil, d.cfg.timeout)
	if err != nil {
		return err
	}

	if len(rsp.Data) >= 1 && rsp.Data[0] != 0 {
		var code uint16
		if len(rsp.Data) >= 3 {
			code = binary.LittleEndian.Uint16(rsp.Data[1:3])
		}
		d.metrics.incDeviceErrCount()

		return &DeviceError{Code: code}
	}

	return nil
}

// Status issues one status poll and returns the parsed result.
func (d *Device) Status(ctx context.Context) (*PollStatus, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil, ErrNotConnected
	}

	return d.pollStatus(ctx)
}

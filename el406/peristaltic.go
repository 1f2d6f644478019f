package el406

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"
)

// PeristalticPrimeParams configures a peristaltic pump prime.
type PeristalticPrimeParams struct {
	// Buffer selects the reagent inlet. Zero value defaults to BufferA.
	Buffer Buffer
	// Volume is the prime volume in microliters, 5-3000.
	Volume float64
	// FlowRate is the pump flow rate, 1-5.
	FlowRate int
}

func (p *PeristalticPrimeParams) validate() error {
	if p.Buffer != 0 && !p.Buffer.valid() {
		return fmt.Errorf("%w: buffer 0x%02X, valid values A-D", ErrOutOfRange, byte(p.Buffer))
	}
	if err := validateVolume("volume", p.Volume, MinPeristalticVolume, MaxPeristalticVolume); err != nil {
		return err
	}

	return validateRange("flow rate", p.FlowRate, 1, MaxPeristalticFlowRate)
}

// PeristalticPrime primes the peristaltic pump lines from the selected
// buffer.
//
// Payload layout (6 bytes):
//
//	[0]   buffer code (ASCII 'A'-'D')
//	[1-2] volume (µL, u16 LE)
//	[3]   flow rate
//	[4-5] reserved
func (d *Device) PeristalticPrime(ctx context.Context, p PeristalticPrimeParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	buffer := p.Buffer
	if buffer == 0 {
		buffer = BufferA
	}

	lo, hi, err := volumeBytes(p.Volume)
	if err != nil {
		return err
	}

	payload := make([]byte, 6)
	payload[0] = byte(buffer)
	payload[1], payload[2] = lo, hi
	payload[3] = byte(p.FlowRate)

	_, err = d.runStep(ctx, cmdPeristalticPrime, payload, primeTimeout(p.Volume))

	return err
}

// PeristalticDispenseParams configures a peristaltic dispense into the
// plate.
type PeristalticDispenseParams struct {
	// Buffer selects the reagent inlet. Zero value defaults to BufferA.
	Buffer Buffer
	// Volume is the per-well volume in microliters, 5-3000.
	Volume float64
	// FlowRate is the pump flow rate, 1-5.
	FlowRate int
	// Z is the dispense height in tenths of a millimeter. 0 uses the
	// plate default.
	Z int
	// OffsetX and OffsetY shift the dispense position, in tenths of a
	// millimeter, -50 to 50.
	OffsetX int
	OffsetY int
}

func (p *PeristalticDispenseParams) validate() error {
	if p.Buffer != 0 && !p.Buffer.valid() {
		return fmt.Errorf("%w: buffer 0x%02X, valid values A-D", ErrOutOfRange, byte(p.Buffer))
	}
	if err := validateVolume("volume", p.Volume, MinPeristalticVolume, MaxPeristalticVolume); err != nil {
		return err
	}
	if err := validateRange("flow rate", p.FlowRate, 1, MaxPeristalticFlowRate); err != nil {
		return err
	}
	if p.Z != 0 {
		if err := validateRange("dispense z", p.Z, 1, MaxZHeight); err != nil {
			return err
		}
	}
	if err := validateOffset("offset x", p.OffsetX); err != nil {
		return err
	}

	return validateOffset("offset y", p.OffsetY)
}

// PeristalticDispense dispenses buffer into the selected columns through
// the peristaltic pump cassette.
//
// Payload layout (12 bytes):
//
//	[0]    buffer code
//	[1-2]  volume (µL, u16 LE)
//	[3]    flow rate
//	[4]    offset x (i8)
//	[5]    offset y (i8)
//	[6-7]  dispense Z (u16 LE)
//	[8-11] reserved
func (d *Device) PeristalticDispense(ctx context.Context, p PeristalticDispenseParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	buffer := p.Buffer
	if buffer == 0 {
		buffer = BufferA
	}
	z := p.Z
	if z == 0 {
		z = d.PlateType().DefaultDispenseZ()
	}

	lo, hi, err := volumeBytes(p.Volume)
	if err != nil {
		return err
	}

	payload := make([]byte, 12)
	payload[0] = byte(buffer)
	payload[1], payload[2] = lo, hi
	payload[3] = byte(p.FlowRate)
	payload[4] = signedByte(int8(p.OffsetX))
	payload[5] = signedByte(int8(p.OffsetY))
	binary.LittleEndian.PutUint16(payload[6:8], uint16(z))

	_, err = d.runStep(ctx, cmdPeristalticDispense, payload, d.cfg.timeout)

	return err
}

// PeristalticPurgeParams configures a peristaltic purge: running the pump
// backwards to empty the cassette lines.
type PeristalticPurgeParams struct {
	// Buffer selects the inlet to purge. Zero value defaults to BufferA.
	Buffer Buffer
	// Duration is the purge run time in seconds, 1-600.
	Duration int
	// FlowRate is the pump flow rate, 1-5.
	FlowRate int
}

func (p *PeristalticPurgeParams) validate() error {
	if p.Buffer != 0 && !p.Buffer.valid() {
		return fmt.Errorf("%w: buffer 0x%02X, valid values A-D", ErrOutOfRange, byte(p.Buffer))
	}
	if err := validateRange("duration", p.Duration, 1, MaxPurgeDuration); err != nil {
		return err
	}

	return validateRange("flow rate", p.FlowRate, 1, MaxPeristalticFlowRate)
}

// PeristalticPurge runs the pump in reverse to drain the cassette back
// into the selected buffer bottle.
//
// Payload layout (4 bytes):
//
//	[0]   buffer code
//	[1-2] duration (s, u16 LE)
//	[3]   flow rate
func (d *Device) PeristalticPurge(ctx context.Context, p PeristalticPurgeParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	buffer := p.Buffer
	if buffer == 0 {
		buffer = BufferA
	}

	payload := make([]byte, 4)
	payload[0] = byte(buffer)
	binary.LittleEndian.PutUint16(payload[1:3], uint16(p.Duration))
	payload[3] = byte(p.FlowRate)

	timeout := time.Duration(p.Duration+60) * time.Second
	_, err := d.runStep(ctx, cmdPeristalticPurge, payload, timeout)

	return err
}

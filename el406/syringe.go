package el406

import (
	"context"
	"encoding/binary"
)

// SyringePrimeParams configures a syringe drive prime.
type SyringePrimeParams struct {
	// Syringe selects the syringe drive, 1 or 2.
	Syringe int
	// Volume is the prime volume in microliters, 5-3000.
	Volume float64
	// FlowRate is the syringe flow rate, 1-9.
	FlowRate int
}

func (p *SyringePrimeParams) validate() error {
	if err := validateRange("syringe", p.Syringe, 1, 2); err != nil {
		return err
	}
	if err := validateVolume("volume", p.Volume, MinSyringeVolume, MaxSyringeVolume); err != nil {
		return err
	}

	return validateRange("flow rate", p.FlowRate, 1, MaxSyringeFlowRate)
}

// SyringePrime primes the selected syringe drive.
//
// Payload layout (8 bytes):
//
//	[0]   syringe index (1 or 2)
//	[1-2] volume (µL, u16 LE)
//	[3]   flow rate
//	[4-7] reserved
func (d *Device) SyringePrime(ctx context.Context, p SyringePrimeParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	lo, hi, err := volumeBytes(p.Volume)
	if err != nil {
		return err
	}

	payload := make([]byte, 8)
	payload[0] = byte(p.Syringe)
	payload[1], payload[2] = lo, hi
	payload[3] = byte(p.FlowRate)

	_, err = d.runStep(ctx, cmdSyringePrime, payload, primeTimeout(p.Volume))

	return err
}

// SyringeDispenseParams configures a syringe dispense into the plate.
type SyringeDispenseParams struct {
	// Syringe selects the syringe drive, 1 or 2.
	Syringe int
	// Volume is the per-well volume in microliters, 5-3000.
	Volume float64
	// FlowRate is the syringe flow rate, 1-9.
	FlowRate int
	// Z is the dispense height in tenths of a millimeter. 0 uses the
	// plate default.
	Z int
	// OffsetX and OffsetY shift the dispense position, in tenths of a
	// millimeter, -50 to 50.
	OffsetX int
	OffsetY int
	// Columns selects well columns; nil selects all, empty selects none.
	Columns []int
	// Quadrants selects plate quadrants; nil selects all.
	Quadrants []int
}

func (p *SyringeDispenseParams) validate() error {
	if err := validateRange("syringe", p.Syringe, 1, 2); err != nil {
		return err
	}
	if err := validateVolume("volume", p.Volume, MinSyringeVolume, MaxSyringeVolume); err != nil {
		return err
	}
	if err := validateRange("flow rate", p.FlowRate, 1, MaxSyringeFlowRate); err != nil {
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

// SyringeDispense dispenses reagent from the selected syringe drive into
// the selected wells.
//
// Payload layout (16 bytes):
//
//	[0]     syringe index (1 or 2)
//	[1-2]   volume (µL, u16 LE)
//	[3]     flow rate
//	[4]     offset x (i8)
//	[5]     offset y (i8)
//	[6-7]   dispense Z (u16 LE)
//	[8-13]  column mask (48-bit)
//	[14]    quadrant mask (inverted)
//	[15]    reserved
func (d *Device) SyringeDispense(ctx context.Context, p SyringeDispenseParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	pt := d.PlateType()

	z := p.Z
	if z == 0 {
		z = pt.DefaultDispenseZ()
	}

	lo, hi, err := volumeBytes(p.Volume)
	if err != nil {
		return err
	}
	cols, err := columnMask(p.Columns)
	if err != nil {
		return err
	}
	quads, err := invertedGroupMask(p.Quadrants, pt.Quadrants())
	if err != nil {
		return err
	}

	payload := make([]byte, 16)
	payload[0] = byte(p.Syringe)
	payload[1], payload[2] = lo, hi
	payload[3] = byte(p.FlowRate)
	payload[4] = signedByte(int8(p.OffsetX))
	payload[5] = signedByte(int8(p.OffsetY))
	binary.LittleEndian.PutUint16(payload[6:8], uint16(z))
	copy(payload[8:14], cols[:])
	payload[14] = quads

	_, err = d.runStep(ctx, cmdSyringeDispense, payload, d.cfg.timeout)

	return err
}

package el406

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"
)

// ManifoldPrimeParams configures a manifold prime: pushing buffer through
// the dispense manifold until the lines are full.
type ManifoldPrimeParams struct {
	// Buffer selects the reagent inlet. Zero value defaults to BufferA.
	Buffer Buffer
	// Volume is the prime volume in microliters, 10-3000.
	Volume float64
	// FlowRate is the dispense flow rate, 1-9.
	FlowRate int
}

func (p *ManifoldPrimeParams) validate() error {
	if p.Buffer != 0 && !p.Buffer.valid() {
		return fmt.Errorf("%w: buffer 0x%02X, valid values A-D", ErrOutOfRange, byte(p.Buffer))
	}
	if err := validateVolume("volume", p.Volume, MinManifoldVolume, MaxManifoldVolume); err != nil {
		return err
	}

	return validateRange("flow rate", p.FlowRate, 1, MaxDispenseFlowRate)
}

// ManifoldPrime primes the dispense manifold from the selected buffer.
//
// Payload layout (6 bytes):
//
//	[0]   buffer code (ASCII 'A'-'D')
//	[1-2] volume (µL, u16 LE)
//	[3]   flow rate
//	[4-5] reserved
func (d *Device) ManifoldPrime(ctx context.Context, p ManifoldPrimeParams) error {
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

	_, err = d.runStep(ctx, cmdManifoldPrime, payload, primeTimeout(p.Volume))

	return err
}

// primeTimeout budgets a prime by its volume: slow flow rates push about
// 50 µL/s through the manifold.
func primeTimeout(volume float64) time.Duration {
	return 120*time.Second + time.Duration(volume/50)*time.Second
}

// ManifoldDispenseParams configures a manifold dispense into the plate.
type ManifoldDispenseParams struct {
	// Buffer selects the reagent inlet. Zero value defaults to BufferA.
	Buffer Buffer
	// Volume is the per-well volume in microliters, 10-3000.
	Volume float64
	// FlowRate is the dispense flow rate, 1-9. Rate 1 requires a non-zero
	// VacuumDelayVolume.
	FlowRate int
	// VacuumDelayVolume is the volume dispensed before the vacuum vents,
	// in microliters, 0-3000.
	VacuumDelayVolume float64
	// Z is the dispense height in tenths of a millimeter. 0 uses the
	// plate default.
	Z int
	// OffsetX and OffsetY shift the dispense position, in tenths of a
	// millimeter, -50 to 50.
	OffsetX int
	OffsetY int
	// Columns selects well columns; nil selects all, empty selects none.
	Columns []int
	// Rows selects manifold rows; nil selects all.
	Rows []int
	// Quadrants selects plate quadrants; nil selects all.
	Quadrants []int
}

func (p *ManifoldDispenseParams) validate() error {
	if p.Buffer != 0 && !p.Buffer.valid() {
		return fmt.Errorf("%w: buffer 0x%02X, valid values A-D", ErrOutOfRange, byte(p.Buffer))
	}
	if err := validateVolume("volume", p.Volume, MinManifoldVolume, MaxManifoldVolume); err != nil {
		return err
	}
	if err := validateRange("flow rate", p.FlowRate, 1, MaxDispenseFlowRate); err != nil {
		return err
	}
	if err := validateVolume("vacuum delay volume", p.VacuumDelayVolume, 0, MaxVacuumDelayVolume); err != nil {
		return err
	}
	// The slowest flow rate dispenses against an open vacuum; the device
	// faults unless some volume is routed through the vacuum delay first.
	if p.FlowRate == 1 && p.VacuumDelayVolume == 0 {
		return fmt.Errorf("%w: flow rate 1 requires vacuum delay volume > 0", ErrOutOfRange)
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

// ManifoldDispense dispenses buffer into the selected wells.
//
// Payload layout (18 bytes):
//
//	[0]     buffer code
//	[1-2]   volume (µL, u16 LE)
//	[3]     flow rate
//	[4-5]   vacuum delay volume (µL, u16 LE)
//	[6]     offset x (i8)
//	[7]     offset y (i8)
//	[8-9]   dispense Z (u16 LE)
//	[10-15] column mask (48-bit)
//	[16]    row mask (inverted)
//	[17]    quadrant mask (inverted)
func (d *Device) ManifoldDispense(ctx context.Context, p ManifoldDispenseParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	pt := d.PlateType()

	buffer := p.Buffer
	if buffer == 0 {
		buffer = BufferA
	}
	z := p.Z
	if z == 0 {
		z = pt.DefaultDispenseZ()
	}

	lo, hi, err := volumeBytes(p.Volume)
	if err != nil {
		return err
	}
	vdLo, vdHi, err := volumeBytes(p.VacuumDelayVolume)
	if err != nil {
		return err
	}
	cols, err := columnMask(p.Columns)
	if err != nil {
		return err
	}
	rows, err := invertedGroupMask(p.Rows, manifoldRows)
	if err != nil {
		return err
	}
	quads, err := invertedGroupMask(p.Quadrants, pt.Quadrants())
	if err != nil {
		return err
	}

	payload := make([]byte, 18)
	payload[0] = byte(buffer)
	payload[1], payload[2] = lo, hi
	payload[3] = byte(p.FlowRate)
	payload[4], payload[5] = vdLo, vdHi
	payload[6] = signedByte(int8(p.OffsetX))
	payload[7] = signedByte(int8(p.OffsetY))
	binary.LittleEndian.PutUint16(payload[8:10], uint16(z))
	copy(payload[10:16], cols[:])
	payload[16] = rows
	payload[17] = quads

	_, err = d.runStep(ctx, cmdManifoldDispense, payload, d.cfg.timeout)

	return err
}

// ManifoldAspirateParams configures a manifold aspirate from the plate.
type ManifoldAspirateParams struct {
	// TravelRate is the carrier travel rate during aspiration, 1-7
	// (slowest first).
	TravelRate int
	// Z is the aspirate height in tenths of a millimeter. 0 uses the
	// plate default.
	Z int
	// OffsetX and OffsetY shift the aspirate position, in tenths of a
	// millimeter, -50 to 50.
	OffsetX int
	OffsetY int
	// Delay is the dwell time at aspirate height in milliseconds, 0-5000.
	Delay int
	// SecondaryMode selects the secondary aspirate pattern: 0 off,
	// 1 centered, 2 edge.
	SecondaryMode int
	// Columns selects well columns; nil selects all, empty selects none.
	Columns []int
	// Rows selects manifold rows; nil selects all.
	Rows []int
	// Quadrants selects plate quadrants; nil selects all.
	Quadrants []int
}

func (p *ManifoldAspirateParams) validate() error {
	if err := validateRange("travel rate", p.TravelRate, 1, MaxAspirateTravelRate); err != nil {
		return err
	}
	if p.Z != 0 {
		if err := validateRange("aspirate z", p.Z, 1, MaxZHeight); err != nil {
			return err
		}
	}
	if err := validateOffset("offset x", p.OffsetX); err != nil {
		return err
	}
	if err := validateOffset("offset y", p.OffsetY); err != nil {
		return err
	}
	if err := validateRange("delay", p.Delay, 0, MaxAspirateDelay); err != nil {
		return err
	}

	return validateRange("secondary aspirate mode", p.SecondaryMode, 0, 2)
}

// ManifoldAspirate aspirates the selected wells.
//
// Payload layout (16 bytes):
//
//	[0]     travel rate
//	[1]     offset x (i8)
//	[2]     offset y (i8)
//	[3-4]   aspirate Z (u16 LE)
//	[5-6]   delay (ms, u16 LE)
//	[7]     secondary aspirate mode
//	[8-13]  column mask (48-bit)
//	[14]    row mask (inverted)
//	[15]    quadrant mask (inverted)
func (d *Device) ManifoldAspirate(ctx context.Context, p ManifoldAspirateParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	pt := d.PlateType()

	z := p.Z
	if z == 0 {
		z = pt.DefaultAspirateZ()
	}

	cols, err := columnMask(p.Columns)
	if err != nil {
		return err
	}
	rows, err := invertedGroupMask(p.Rows, manifoldRows)
	if err != nil {
		return err
	}
	quads, err := invertedGroupMask(p.Quadrants, pt.Quadrants())
	if err != nil {
		return err
	}

	payload := make([]byte, 16)
	payload[0] = byte(p.TravelRate)
	payload[1] = signedByte(int8(p.OffsetX))
	payload[2] = signedByte(int8(p.OffsetY))
	binary.LittleEndian.PutUint16(payload[3:5], uint16(z))
	binary.LittleEndian.PutUint16(payload[5:7], uint16(p.Delay))
	payload[7] = byte(p.SecondaryMode)
	copy(payload[8:14], cols[:])
	payload[14] = rows
	payload[15] = quads

	timeout := time.Duration(aspirateTravelSeconds[p.TravelRate]+60) * time.Second
	_, err = d.runStep(ctx, cmdManifoldAspirate, payload, timeout)

	return err
}

// AutoCleanParams configures the manifold auto-clean routine.
type AutoCleanParams struct {
	// Buffer selects the cleaning buffer. Zero value defaults to BufferA.
	Buffer Buffer
	// SoakDuration is the per-cycle soak in seconds, 0-3600.
	SoakDuration int
	// Cycles is the number of clean cycles, 1-10.
	Cycles int
}

func (p *AutoCleanParams) validate() error {
	if p.Buffer != 0 && !p.Buffer.valid() {
		return fmt.Errorf("%w: buffer 0x%02X, valid values A-D", ErrOutOfRange, byte(p.Buffer))
	}
	if err := validateRange("soak duration", p.SoakDuration, 0, MaxAutoCleanSoak); err != nil {
		return err
	}

	return validateRange("cycles", p.Cycles, 1, MaxAutoCleanCycles)
}

// AutoClean runs the manifold self-cleaning routine.
//
// Payload layout (8 bytes):
//
//	[0]   buffer code
//	[1-2] soak duration (s, u16 LE)
//	[3]   cycles
//	[4-7] reserved
func (d *Device) AutoClean(ctx context.Context, p AutoCleanParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	buffer := p.Buffer
	if buffer == 0 {
		buffer = BufferA
	}

	payload := make([]byte, 8)
	payload[0] = byte(buffer)
	binary.LittleEndian.PutUint16(payload[1:3], uint16(p.SoakDuration))
	payload[3] = byte(p.Cycles)

	timeout := time.Duration(p.Cycles*120+p.SoakDuration+120) * time.Second
	_, err := d.runStep(ctx, cmdAutoClean, payload, timeout)

	return err
}

// ManifoldWashParams configures a full wash: repeated dispense/aspirate
// cycles with optional secondary dispense, shake and soak.
//
// Zero values resolve to plate-type defaults where documented.
type ManifoldWashParams struct {
	// Cycles is the number of wash cycles, 1-10.
	Cycles int

	// Buffer selects the dispense buffer. Zero value defaults to BufferA.
	Buffer Buffer
	// DispenseVolume is the per-well volume in microliters. 0 uses the
	// plate default.
	DispenseVolume float64
	// DispenseFlowRate is the dispense flow rate, 1-9.
	DispenseFlowRate int
	// DispenseZ is the dispense height in tenths of a millimeter. 0 uses
	// the plate default.
	DispenseZ int
	// DispenseOffsetX and DispenseOffsetY shift the dispense position,
	// -50 to 50 tenths of a millimeter.
	DispenseOffsetX int
	DispenseOffsetY int
	// DispenseDelay is the dwell after each dispense in milliseconds,
	// 0-5000.
	DispenseDelay int

	// SecondaryBuffer enables a second dispense sub-step when non-zero.
	SecondaryBuffer Buffer
	// SecondaryVolume is the secondary per-well volume in microliters.
	SecondaryVolume float64
	// SecondaryFlowRate is the secondary dispense flow rate, 1-9.
	SecondaryFlowRate int
	// SecondaryZ is the secondary dispense height. 0 uses the plate
	// default.
	SecondaryZ int
	// SecondaryOffsetX and SecondaryOffsetY shift the secondary dispense
	// position.
	SecondaryOffsetX int
	SecondaryOffsetY int
	// SecondaryDelay is the dwell after the secondary dispense in
	// milliseconds, 0-5000.
	SecondaryDelay int

	// AspirateTravelRate is the carrier travel rate during aspiration,
	// 1-7.
	AspirateTravelRate int
	// AspirateZ is the aspirate height in tenths of a millimeter. 0 uses
	// the plate default.
	AspirateZ int
	// AspirateOffsetX and AspirateOffsetY shift the aspirate position.
	AspirateOffsetX int
	AspirateOffsetY int
	// AspirateDelay is the dwell at aspirate height in milliseconds,
	// 0-5000. The final-aspirate sub-step ignores it (see encode).
	AspirateDelay int
	// SecondaryAspirateMode selects the secondary aspirate pattern:
	// 0 off, 1 centered, 2 edge.
	SecondaryAspirateMode int
	// CrosswiseAspirate rotates the final aspirate pass 90 degrees.
	CrosswiseAspirate bool

	// FinalAspirateZ is the height of the final aspirate pass. 0 uses
	// AspirateZ.
	FinalAspirateZ int
	// FinalTravelRate is the travel rate of the final aspirate pass.
	// 0 uses AspirateTravelRate.
	FinalTravelRate int

	// ShakeIntensity enables shaking between cycles when non-zero, 1-5.
	ShakeIntensity int
	// ShakeDuration is the shake time per cycle in seconds, 1-3600.
	ShakeDuration int
	// SoakDuration is the soak time per cycle in seconds, 0-7200.
	SoakDuration int
	// ShakeBeforeSoak shakes first when both are configured.
	ShakeBeforeSoak bool
}

func (p *ManifoldWashParams) validate() error {
	if err := validateRange("cycles", p.Cycles, 1, MaxWashCycles); err != nil {
		return err
	}

	if p.Buffer != 0 && !p.Buffer.valid() {
		return fmt.Errorf("%w: buffer 0x%02X, valid values A-D", ErrOutOfRange, byte(p.Buffer))
	}
	if p.DispenseVolume != 0 {
		if err := validateVolume("dispense volume", p.DispenseVolume, MinManifoldVolume, MaxManifoldVolume); err != nil {
			return err
		}
	}
	if err := validateRange("dispense flow rate", p.DispenseFlowRate, 1, MaxDispenseFlowRate); err != nil {
		return err
	}
	if p.DispenseZ != 0 {
		if err := validateRange("dispense z", p.DispenseZ, 1, MaxZHeight); err != nil {
			return err
		}
	}
	if err := validateOffset("dispense offset x", p.DispenseOffsetX); err != nil {
		return err
	}
	if err := validateOffset("dispense offset y", p.DispenseOffsetY); err != nil {
		return err
	}
	if err := validateRange("dispense delay", p.DispenseDelay, 0, MaxAspirateDelay); err != nil {
		return err
	}

	if p.SecondaryBuffer != 0 {
		if !p.SecondaryBuffer.valid() {
			return fmt.Errorf("%w: secondary buffer 0x%02X, valid values A-D", ErrOutOfRange, byte(p.SecondaryBuffer))
		}
		if err := validateVolume("secondary volume", p.SecondaryVolume, MinManifoldVolume, MaxManifoldVolume); err != nil {
			return err
		}
		if err := validateRange("secondary flow rate", p.SecondaryFlowRate, 1, MaxDispenseFlowRate); err != nil {
			return err
		}
		if p.SecondaryZ != 0 {
			if err := validateRange("secondary z", p.SecondaryZ, 1, MaxZHeight); err != nil {
				return err
			}
		}
		if err := validateOffset("secondary offset x", p.SecondaryOffsetX); err != nil {
			return err
		}
		if err := validateOffset("secondary offset y", p.SecondaryOffsetY); err != nil {
			return err
		}
		if err := validateRange("secondary delay", p.SecondaryDelay, 0, MaxAspirateDelay); err != nil {
			return err
		}
	}

	if err := validateRange("aspirate travel rate", p.AspirateTravelRate, 1, MaxAspirateTravelRate); err != nil {
		return err
	}
	if p.AspirateZ != 0 {
		if err := validateRange("aspirate z", p.AspirateZ, 1, MaxZHeight); err != nil {
			return err
		}
	}
	if err := validateOffset("aspirate offset x", p.AspirateOffsetX); err != nil {
		return err
	}
	if err := validateOffset("aspirate offset y", p.AspirateOffsetY); err != nil {
		return err
	}
	if err := validateRange("aspirate delay", p.AspirateDelay, 0, MaxAspirateDelay); err != nil {
		return err
	}
	if err := validateRange("secondary aspirate mode", p.SecondaryAspirateMode, 0, 2); err != nil {
		return err
	}
	if p.FinalAspirateZ != 0 {
		if err := validateRange("final aspirate z", p.FinalAspirateZ, 1, MaxZHeight); err != nil {
			return err
		}
	}
	if p.FinalTravelRate != 0 {
		if err := validateRange("final travel rate", p.FinalTravelRate, 1, MaxAspirateTravelRate); err != nil {
			return err
		}
	}

	if p.ShakeIntensity != 0 {
		if err := validateRange("shake intensity", p.ShakeIntensity, 1, MaxShakeIntensity); err != nil {
			return err
		}
		if err := validateRange("shake duration", p.ShakeDuration, 1, MaxShakeDuration); err != nil {
			return err
		}
	} else if p.ShakeDuration != 0 {
		return fmt.Errorf("%w: shake duration set without shake intensity", ErrOutOfRange)
	}

	return validateRange("soak duration", p.SoakDuration, 0, MaxSoakDuration)
}

// Wash payload constants.
const (
	manifoldWashPayloadSize = 102

	// washPattern is the standard full-plate wash pattern.
	washPattern uint16 = 0x0001

	// washStageEnableAll enables all four wash stages: dispense,
	// aspirate, final aspirate, return-to-home.
	washStageEnableAll uint16 = 0x000F
)

// encode assembles the 102-byte wash payload.
//
// Field table (byte offset, meaning, wire type):
//
//	Header
//	 [0-1]   plate type code (u16 LE)
//	 [2-3]   wash pattern (u16 LE, 0x0001)
//	 [4-5]   stage enable mask (u16 LE, 0x000F)
//	 [6]     cycles
//	Primary dispense
//	 [7]     buffer code (ASCII)
//	 [8-9]   dispense volume (µL, u16 LE)
//	 [10]    dispense flow rate
//	 [11]    dispense offset x (i8)
//	 [12]    dispense offset y (i8)
//	 [13-14] dispense Z (u16 LE)
//	 [15-16] dispense delay (ms, u16 LE)
//	 [17]    dispenser height (plate geometry)
//	Secondary dispense (all zero when absent)
//	 [18]    buffer code, 0 = no secondary dispense
//	 [19-20] volume (µL, u16 LE)
//	 [21]    flow rate
//	 [22]    offset x (i8)
//	 [23]    offset y (i8)
//	 [24-25] Z (u16 LE)
//	 [26-27] delay (ms, u16 LE)
//	Aspirate
//	 [28]    travel rate
//	 [29]    offset x (i8)
//	 [30]    offset y (i8)
//	 [31-32] aspirate Z (u16 LE)
//	 [33-34] delay (ms, u16 LE)
//	 [35]    secondary aspirate mode
//	 [36]    crosswise flag
//	Final aspirate
//	 [37-38] final aspirate Z (u16 LE)
//	 [39]    final travel rate
//	 [40]    offset x (i8)
//	 [41]    offset y (i8)
//	 [42-43] delay (u16 LE) — firmware quirk: always 0 on the wire
//	 [44]    crosswise flag
//	 [45]    secondary aspirate mode
//	 [46-47] reserved
//	Shake/soak
//	 [48]    shake intensity, 0 = none
//	 [49-50] shake duration (s, u16 LE)
//	 [51-52] soak duration (s, u16 LE)
//	 [53]    shake-before-soak flag
//	 [54-101] reserved, always zero
func (p *ManifoldWashParams) encode(pt PlateType) ([]byte, error) {
	buf := make([]byte, manifoldWashPayloadSize)

	// Header.
	binary.LittleEndian.PutUint16(buf[0:2], uint16(pt))
	binary.LittleEndian.PutUint16(buf[2:4], washPattern)
	binary.LittleEndian.PutUint16(buf[4:6], washStageEnableAll)
	buf[6] = byte(p.Cycles)

	// Primary dispense.
	buffer := p.Buffer
	if buffer == 0 {
		buffer = BufferA
	}
	volume := p.DispenseVolume
	if volume == 0 {
		volume = pt.DefaultDispenseVolume()
	}
	lo, hi, err := volumeBytes(volume)
	if err != nil {
		return nil, err
	}
	dispZ := p.DispenseZ
	if dispZ == 0 {
		dispZ = pt.DefaultDispenseZ()
	}

	buf[7] = byte(buffer)
	buf[8], buf[9] = lo, hi
	buf[10] = byte(p.DispenseFlowRate)
	buf[11] = signedByte(int8(p.DispenseOffsetX))
	buf[12] = signedByte(int8(p.DispenseOffsetY))
	binary.LittleEndian.PutUint16(buf[13:15], uint16(dispZ))
	binary.LittleEndian.PutUint16(buf[15:17], uint16(p.DispenseDelay))
	buf[17] = byte(pt.DispenserHeight())

	// Secondary dispense.
	if p.SecondaryBuffer != 0 {
		secLo, secHi, err := volumeBytes(p.SecondaryVolume)
		if err != nil {
			return nil, err
		}
		secZ := p.SecondaryZ
		if secZ == 0 {
			secZ = pt.DefaultDispenseZ()
		}

		buf[18] = byte(p.SecondaryBuffer)
		buf[19], buf[20] = secLo, secHi
		buf[21] = byte(p.SecondaryFlowRate)
		buf[22] = signedByte(int8(p.SecondaryOffsetX))
		buf[23] = signedByte(int8(p.SecondaryOffsetY))
		binary.LittleEndian.PutUint16(buf[24:26], uint16(secZ))
		binary.LittleEndian.PutUint16(buf[26:28], uint16(p.SecondaryDelay))
	}

	// Aspirate.
	aspZ := p.AspirateZ
	if aspZ == 0 {
		aspZ = pt.DefaultAspirateZ()
	}

	buf[28] = byte(p.AspirateTravelRate)
	buf[29] = signedByte(int8(p.AspirateOffsetX))
	buf[30] = signedByte(int8(p.AspirateOffsetY))
	binary.LittleEndian.PutUint16(buf[31:33], uint16(aspZ))
	binary.LittleEndian.PutUint16(buf[33:35], uint16(p.AspirateDelay))
	buf[35] = byte(p.SecondaryAspirateMode)
	buf[36] = boolByte(p.CrosswiseAspirate)

	// Final aspirate.
	finalZ := p.FinalAspirateZ
	if finalZ == 0 {
		finalZ = aspZ
	}
	finalRate := p.FinalTravelRate
	if finalRate == 0 {
		finalRate = p.AspirateTravelRate
	}

	binary.LittleEndian.PutUint16(buf[37:39], uint16(finalZ))
	buf[39] = byte(finalRate)
	buf[40] = signedByte(int8(p.AspirateOffsetX))
	buf[41] = signedByte(int8(p.AspirateOffsetY))
	// buf[42:44]: the firmware ignores the aspirate delay in the final
	// pass; the field is always zero on the wire.
	buf[44] = boolByte(p.CrosswiseAspirate)
	buf[45] = byte(p.SecondaryAspirateMode)

	// Shake/soak.
	buf[48] = byte(p.ShakeIntensity)
	binary.LittleEndian.PutUint16(buf[49:51], uint16(p.ShakeDuration))
	binary.LittleEndian.PutUint16(buf[51:53], uint16(p.SoakDuration))
	buf[53] = boolByte(p.ShakeBeforeSoak)

	return buf, nil
}

// washTimeout budgets one wash: about a minute per cycle, plus configured
// shake and soak time, plus slack for carrier motion.
func washTimeout(p *ManifoldWashParams) time.Duration {
	return time.Duration(p.Cycles*60+p.ShakeDuration+p.SoakDuration+120) * time.Second
}

// ManifoldWash runs a full wash on the current plate type.
func (d *Device) ManifoldWash(ctx context.Context, p ManifoldWashParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	payload, err := p.encode(d.PlateType())
	if err != nil {
		return err
	}

	_, err = d.runStep(ctx, cmdManifoldWash, payload, washTimeout(&p))

	return err
}

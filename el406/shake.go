package el406

import (
	"context"
	"encoding/binary"
	"time"
)

// shakeSoakMode selects what the shake/soak command does.
const (
	shakeModeShake        byte = 1
	shakeModeSoak         byte = 2
	shakeModeShakeAndSoak byte = 3
)

// ShakeParams configures a standalone shake, optionally combined with a
// soak.
type ShakeParams struct {
	// Intensity is the shake intensity, 1-5.
	Intensity int
	// Duration is the shake time in seconds, 1-3600.
	Duration int
	// SoakDuration adds a soak after (or before) the shake, in seconds,
	// 0-7200.
	SoakDuration int
	// SoakFirst soaks before shaking when SoakDuration is set.
	SoakFirst bool
}

func (p *ShakeParams) validate() error {
	if err := validateRange("intensity", p.Intensity, 1, MaxShakeIntensity); err != nil {
		return err
	}
	if err := validateRange("duration", p.Duration, 1, MaxShakeDuration); err != nil {
		return err
	}

	return validateRange("soak duration", p.SoakDuration, 0, MaxSoakDuration)
}

// Shake shakes the plate carrier.
//
// Payload layout (8 bytes):
//
//	[0]   mode (1 shake, 2 soak, 3 shake and soak)
//	[1]   intensity
//	[2-3] shake duration (s, u16 LE)
//	[4-5] soak duration (s, u16 LE)
//	[6]   soak-first flag
//	[7]   reserved
func (d *Device) Shake(ctx context.Context, p ShakeParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	mode := shakeModeShake
	if p.SoakDuration > 0 {
		mode = shakeModeShakeAndSoak
	}

	d.logger.Debug("el406: shake",
		"intensity", p.Intensity,
		"rpm", shakeIntensityRPM[p.Intensity],
		"duration", p.Duration)

	payload := make([]byte, 8)
	payload[0] = mode
	payload[1] = byte(p.Intensity)
	binary.LittleEndian.PutUint16(payload[2:4], uint16(p.Duration))
	binary.LittleEndian.PutUint16(payload[4:6], uint16(p.SoakDuration))
	payload[6] = boolByte(p.SoakFirst)

	timeout := time.Duration(p.Duration+p.SoakDuration+60) * time.Second
	_, err := d.runStep(ctx, cmdShakeSoak, payload, timeout)

	return err
}

// Soak lets the plate sit on the carrier for the given duration in
// seconds, 1-7200.
func (d *Device) Soak(ctx context.Context, duration int) error {
	if err := validateRange("duration", duration, 1, MaxSoakDuration); err != nil {
		return err
	}

	payload := make([]byte, 8)
	payload[0] = shakeModeSoak
	binary.LittleEndian.PutUint16(payload[4:6], uint16(duration))

	timeout := time.Duration(duration+60) * time.Second
	_, err := d.runStep(ctx, cmdShakeSoak, payload, timeout)

	return err
}

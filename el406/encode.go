package el406

import (
	"fmt"
	"math"
)

// columnCount is the number of columns the 48-bit column mask addresses.
const columnCount = 48

// manifoldRows is the number of tube rows on the wash manifold, and the
// group count for the inverted row mask.
const manifoldRows = 8

// signedByte encodes v as its two's-complement wire byte.
func signedByte(v int8) byte { return byte(v) }

// boolByte encodes a flag as 0x01/0x00.
func boolByte(v bool) byte {
	if v {
		return 1
	}

	return 0
}

// volumeBytes encodes a microliter volume as a little-endian 16-bit byte
// pair. The volume is rounded to the nearest microliter; values that
// round outside [0, 65535] are rejected.
func volumeBytes(v float64) (lo, hi byte, err error) {
	n := math.Round(v)
	if n < 0 || n > 65535 {
		return 0, 0, fmt.Errorf("%w: volume %.1f, valid range [0, 65535]", ErrOutOfRange, v)
	}

	u := uint16(n)

	return byte(u), byte(u >> 8), nil
}

// columnMask builds the 48-bit column selection mask: bit 1 = selected,
// least significant bit first, bytes in little-endian order, so column 0
// is bit 0 of byte 0 and column 47 is bit 7 of byte 5.
//
// A nil slice selects every column; an empty non-nil slice selects none.
func columnMask(cols []int) ([6]byte, error) {
	var mask [6]byte

	if cols == nil {
		for i := range mask {
			mask[i] = 0xFF
		}
		return mask, nil
	}

	for _, c := range cols {
		if c < 0 || c >= columnCount {
			return [6]byte{}, fmt.Errorf("%w: column index %d, valid range [0, %d]", ErrOutOfRange, c, columnCount-1)
		}
		mask[c/8] |= 1 << (c % 8)
	}

	return mask, nil
}

// invertedGroupMask builds the inverted row/quadrant selection byte the
// device uses: a 0 bit selects the group, a 1 bit skips it. A nil slice
// selects every group (0x00); an empty non-nil slice selects none. Bits
// at or beyond numGroups are held at 0 (selected) regardless of input.
func invertedGroupMask(groups []int, numGroups int) (byte, error) {
	if numGroups < 1 || numGroups > 8 {
		return 0, fmt.Errorf("%w: group count %d, valid range [1, 8]", ErrOutOfRange, numGroups)
	}

	if groups == nil {
		return 0x00, nil
	}

	mask := byte((1 << numGroups) - 1)
	for _, g := range groups {
		if g < 0 || g >= numGroups {
			return 0, fmt.Errorf("%w: group index %d, valid range [0, %d]", ErrOutOfRange, g, numGroups-1)
		}
		mask &^= 1 << g
	}

	return mask, nil
}

// validateRange checks an integer parameter against its inclusive bounds.
// The error names the parameter, the offending value and the valid range.
func validateRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s=%d, valid range [%d, %d]", ErrOutOfRange, name, v, lo, hi)
	}

	return nil
}

// validateVolume checks a microliter volume parameter against its
// inclusive bounds.
func validateVolume(name string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s=%g, valid range [%g, %g]", ErrOutOfRange, name, v, lo, hi)
	}

	return nil
}

// validateOffset checks a signed tenth-millimeter offset parameter.
func validateOffset(name string, v int) error {
	return validateRange(name, v, MinOffset, MaxOffset)
}

// aspirateTravelSeconds estimates how long one aspirate pass takes at a
// given travel rate (index 1..7, slowest first). Used to size step
// timeout budgets, not sent on the wire.
var aspirateTravelSeconds = [MaxAspirateTravelRate + 1]int{0, 40, 30, 22, 16, 12, 9, 7}

// shakeIntensityRPM maps shake intensity 1..5 to the nominal platform
// speed, for logging only.
var shakeIntensityRPM = [MaxShakeIntensity + 1]int{0, 100, 200, 400, 600, 800}

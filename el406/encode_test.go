package el406

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeBytes(t *testing.T) {
	tests := []struct {
		volume float64
		lo, hi byte
	}{
		{0, 0x00, 0x00},
		{5, 0x05, 0x00},
		{300, 0x2C, 0x01},
		{300.4, 0x2C, 0x01}, // rounds down
		{300.5, 0x2D, 0x01}, // rounds up
		{3000, 0xB8, 0x0B},
		{65535, 0xFF, 0xFF},
	}

	for _, tt := range tests {
		lo, hi, err := volumeBytes(tt.volume)
		require.NoError(t, err)
		assert.Equal(t, tt.lo, lo, "volume %g lo", tt.volume)
		assert.Equal(t, tt.hi, hi, "volume %g hi", tt.volume)
	}

	_, _, err := volumeBytes(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, _, err = volumeBytes(65536)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSignedByte(t *testing.T) {
	assert.Equal(t, byte(0x00), signedByte(0))
	assert.Equal(t, byte(0x32), signedByte(50))
	assert.Equal(t, byte(0xCE), signedByte(-50))
	assert.Equal(t, byte(0xFF), signedByte(-1))
}

func TestBoolByte(t *testing.T) {
	assert.Equal(t, byte(1), boolByte(true))
	assert.Equal(t, byte(0), boolByte(false))
}

func TestColumnMask(t *testing.T) {
	t.Run("nil selects all", func(t *testing.T) {
		mask, err := columnMask(nil)
		require.NoError(t, err)
		assert.Equal(t, [6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, mask)
	})

	t.Run("empty selects none", func(t *testing.T) {
		mask, err := columnMask([]int{})
		require.NoError(t, err)
		assert.Equal(t, [6]byte{}, mask)
	})

	t.Run("first and last columns", func(t *testing.T) {
		mask, err := columnMask([]int{0, 47})
		require.NoError(t, err)
		assert.Equal(t, [6]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x80}, mask)
	})

	t.Run("byte boundaries", func(t *testing.T) {
		mask, err := columnMask([]int{7, 8})
		require.NoError(t, err)
		assert.Equal(t, [6]byte{0x80, 0x01, 0x00, 0x00, 0x00, 0x00}, mask)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := columnMask([]int{48})
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = columnMask([]int{-1})
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestInvertedGroupMask(t *testing.T) {
	t.Run("nil selects all", func(t *testing.T) {
		mask, err := invertedGroupMask(nil, 8)
		require.NoError(t, err)
		assert.Equal(t, byte(0x00), mask)
	})

	t.Run("empty selects none", func(t *testing.T) {
		mask, err := invertedGroupMask([]int{}, 8)
		require.NoError(t, err)
		assert.Equal(t, byte(0xFF), mask)
	})

	t.Run("select subset", func(t *testing.T) {
		mask, err := invertedGroupMask([]int{0, 2}, 4)
		require.NoError(t, err)
		// Groups 1 and 3 skipped out of 4.
		assert.Equal(t, byte(0x0A), mask)
	})

	t.Run("select all explicitly", func(t *testing.T) {
		mask, err := invertedGroupMask([]int{0, 1, 2, 3}, 4)
		require.NoError(t, err)
		assert.Equal(t, byte(0x00), mask)
	})

	t.Run("group index out of range", func(t *testing.T) {
		_, err := invertedGroupMask([]int{4}, 4)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("bad group count", func(t *testing.T) {
		_, err := invertedGroupMask(nil, 9)
		assert.ErrorIs(t, err, ErrOutOfRange)
		_, err = invertedGroupMask(nil, 0)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, validateRange("v", 5, 1, 10))
	assert.NoError(t, validateRange("v", 1, 1, 10))
	assert.NoError(t, validateRange("v", 10, 1, 10))

	err := validateRange("cycles", 11, 1, 10)
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Contains(t, err.Error(), "cycles=11")
	assert.Contains(t, err.Error(), "[1, 10]")
}

package wire

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFrame_HeaderLayout(t *testing.T) {
	frame, err := BuildFrame(0xA4, nil)
	require.NoError(t, err)
	require.Len(t, frame, HeaderSize)

	assert.Equal(t, StartMarker, frame[0])
	assert.Equal(t, VersionMarker, frame[1])
	assert.Equal(t, uint16(0xA4), binary.LittleEndian.Uint16(frame[2:4]))
	assert.Equal(t, ConstantMarker, frame[4])
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(frame[5:7]), "reserved field must stay zero")
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(frame[7:9]))

	// Sum of bytes 0-8: 0x01+0x02+0xA4+0x00+0x01 = 0xA8.
	assert.Equal(t, uint16(0xFF58), binary.LittleEndian.Uint16(frame[9:11]))
}

func TestBuildFrame_Length(t *testing.T) {
	for _, size := range []int{0, 1, 5, 102, 255, 4096, MaxPayloadSize} {
		payload := bytes.Repeat([]byte{0xAB}, size)

		frame, err := BuildFrame(0x92, payload)
		require.NoError(t, err)
		assert.Len(t, frame, HeaderSize+size)
		assert.Equal(t, size, DataLen(frame))
	}
}

func TestBuildFrame_ChecksumSumsToZero(t *testing.T) {
	cases := []struct {
		command uint16
		payload []byte
	}{
		{0x89, []byte{0x00}},
		{0x92, nil},
		{0xA2, []byte{0x01, 0x2C, 0x01, 0x07}},
		{0xA4, bytes.Repeat([]byte{0xFF}, 102)},
		{0xFFFF, []byte{0xFF, 0xFF, 0xFF}},
	}

	for _, tc := range cases {
		frame, err := BuildFrame(tc.command, tc.payload)
		require.NoError(t, err)

		var sum uint32
		for _, b := range frame[:9] {
			sum += uint32(b)
		}
		for _, b := range frame[HeaderSize:] {
			sum += uint32(b)
		}
		sum += uint32(binary.LittleEndian.Uint16(frame[9:11]))

		assert.Zero(t, sum&0xFFFF, "command 0x%02X: frame sum must cancel", tc.command)
	}
}

func TestBuildFrame_PayloadTooLarge(t *testing.T) {
	_, err := BuildFrame(0xA4, make([]byte, MaxPayloadSize+1))
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestCommand(t *testing.T) {
	frame, err := BuildFrame(0xA2F0, nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xA2F0), Command(frame))
}

func TestVerifyFrame(t *testing.T) {
	frame, err := BuildFrame(0xA6, []byte{0x03, 0x00, 0x1D})
	require.NoError(t, err)
	require.NoError(t, VerifyFrame(frame))

	t.Run("short", func(t *testing.T) {
		assert.ErrorIs(t, VerifyFrame(frame[:5]), ErrInvalidFrame)
	})

	t.Run("bad start marker", func(t *testing.T) {
		bad := bytes.Clone(frame)
		bad[0] = 0x55
		assert.ErrorIs(t, VerifyFrame(bad), ErrInvalidFrame)
	})

	t.Run("length mismatch", func(t *testing.T) {
		bad := bytes.Clone(frame)
		binary.LittleEndian.PutUint16(bad[7:9], 7)
		assert.ErrorIs(t, VerifyFrame(bad), ErrInvalidFrame)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		bad := bytes.Clone(frame)
		bad[len(bad)-1] ^= 0x01
		assert.ErrorIs(t, VerifyFrame(bad), ErrChecksumMismatch)
	})
}

// Package wire implements the framed message format of the BioTek EL406
// serial protocol.
//
// Every command sent to the washer is a single frame: a fixed 11-byte
// header followed by a command-specific payload.
//
//	[0]    0x01          start marker
//	[1]    0x02          version marker
//	[2-3]  command       u16, little-endian
//	[4]    0x01          constant
//	[5-6]  reserved      u16, always 0
//	[7-8]  data length   u16, little-endian
//	[9-10] checksum      u16, little-endian
//
// The checksum is the two's complement of the 16-bit sum of header bytes
// 0–8 and all payload bytes, so summing an entire frame (with the checksum
// field decoded as a u16) yields 0 modulo 0x10000.
//
// After receiving a header the device answers with a single ACK (0x06) or
// NAK (0x15) byte, then on ACK echoes the same header shape followed by
// its declared payload.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Handshake bytes sent by the device after it receives a header.
const (
	// ACK signals correct reception of a command.
	ACK byte = 0x06

	// NAK signals that the device rejected the command.
	NAK byte = 0x15
)

// Fixed header marker bytes.
const (
	StartMarker    byte = 0x01
	VersionMarker  byte = 0x02
	ConstantMarker byte = 0x01
)

// HeaderSize is the fixed size of the frame header.
const HeaderSize = 11

// MaxPayloadSize is the largest payload the 16-bit length field can declare.
const MaxPayloadSize = 0xFFFF

var (
	// ErrPayloadTooLarge indicates a payload longer than the 16-bit length
	// field can represent.
	ErrPayloadTooLarge = errors.New("wire: payload too large")

	// ErrInvalidFrame indicates a frame with bad markers or a length
	// mismatch.
	ErrInvalidFrame = errors.New("wire: invalid frame")

	// ErrChecksumMismatch indicates a frame whose checksum field does not
	// match the computed checksum.
	ErrChecksumMismatch = errors.New("wire: checksum mismatch")
)

// BuildFrame serializes a command and its payload into wire format.
//
// The returned slice always has length HeaderSize + len(payload). The
// checksum field is computed on every call; frames are never mutated
// after construction. Payloads longer than MaxPayloadSize are rejected
// rather than silently truncated.
func BuildFrame(command uint16, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: got %d bytes, max %d", ErrPayloadTooLarge, len(payload), MaxPayloadSize)
	}

	frame := make([]byte, HeaderSize+len(payload))
	frame[0] = StartMarker
	frame[1] = VersionMarker
	binary.LittleEndian.PutUint16(frame[2:4], command)
	frame[4] = ConstantMarker
	// frame[5:7] reserved, left zero.
	binary.LittleEndian.PutUint16(frame[7:9], uint16(len(payload))) //nolint:gosec // bounds checked above
	copy(frame[HeaderSize:], payload)
	binary.LittleEndian.PutUint16(frame[9:11], Checksum(frame[:9], payload))

	return frame, nil
}

// Checksum computes the 16-bit frame checksum over the first 9 header
// bytes and the payload: the two's complement of their byte sum.
func Checksum(header, payload []byte) uint16 {
	var sum uint32
	for _, v := range header {
		sum += uint32(v)
	}
	for _, v := range payload {
		sum += uint32(v)
	}

	return uint16(0x10000 - (sum & 0xFFFF)) //nolint:gosec // intentional truncation
}

// Command returns the command field of a frame header.
// header must hold at least 4 bytes.
func Command(header []byte) uint16 {
	return binary.LittleEndian.Uint16(header[2:4])
}

// DataLen returns the payload length a frame header declares.
// header must hold at least 9 bytes.
func DataLen(header []byte) int {
	return int(binary.LittleEndian.Uint16(header[7:9]))
}

// VerifyFrame validates a complete frame: marker bytes, declared payload
// length against the actual length, and the checksum.
func VerifyFrame(frame []byte) error {
	if len(frame) < HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want at least %d", ErrInvalidFrame, len(frame), HeaderSize)
	}

	if frame[0] != StartMarker || frame[1] != VersionMarker || frame[4] != ConstantMarker {
		return fmt.Errorf("%w: bad marker bytes [0x%02X 0x%02X 0x%02X]", ErrInvalidFrame, frame[0], frame[1], frame[4])
	}

	if declared := DataLen(frame); declared != len(frame)-HeaderSize {
		return fmt.Errorf("%w: declared %d payload bytes, got %d", ErrInvalidFrame, declared, len(frame)-HeaderSize)
	}

	wireChecksum := binary.LittleEndian.Uint16(frame[9:11])
	calcChecksum := Checksum(frame[:9], frame[HeaderSize:])
	if wireChecksum != calcChecksum {
		return fmt.Errorf("%w: wire=0x%04X, computed=0x%04X", ErrChecksumMismatch, wireChecksum, calcChecksum)
	}

	return nil
}

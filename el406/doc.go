// Package el406 implements a driver for the BioTek EL406 microplate
// washer dispenser, speaking its binary serial protocol.
//
// # Protocol Overview
//
// Every command is a framed message: an 11-byte header (start marker,
// version, command code, payload length, checksum) followed by a
// command-specific payload. After receiving a header the device answers
// with a single handshake byte:
//
//   - ACK (0x06) — command accepted
//   - NAK (0x15) — command rejected
//
// Query commands then return a response frame immediately. Step commands
// (operations that physically move liquid: priming, dispensing,
// aspirating, washing, shaking) acknowledge immediately but complete
// asynchronously; the driver polls the device state at a fixed interval
// until the device leaves the RUNNING state, then inspects the reported
// validity code. A non-zero validity code becomes a [DeviceError].
//
// See the wire package for the exact frame layout.
//
// # Usage
//
//	tr := transport.NewSerial("/dev/ttyUSB0")
//	dev, err := el406.NewDevice(tr, el406.WithPlateType(el406.Plate96))
//	if err != nil { ... }
//	if err := dev.Setup(ctx); err != nil { ... }
//	defer dev.Stop(ctx)
//
//	err = dev.ManifoldWash(ctx, el406.ManifoldWashParams{
//		Cycles:             3,
//		DispenseFlowRate:   7,
//		AspirateTravelRate: 3,
//	})
//
// # Concurrency
//
// The device is half duplex: exactly one command may be in flight on the
// wire at a time. A single mutex guards the transport for the full
// duration of a request/response/poll cycle, so concurrent calls from
// multiple goroutines are serialized in submission order. The driver
// performs no automatic retries; every failure is surfaced to the caller.
package el406

package el406

import "fmt"

// ValidityMessage returns the human-readable message for a device
// validity code, or an "unknown error code" message for codes the table
// does not cover. Code 0 means no error.
func ValidityMessage(code uint16) string {
	if msg, ok := validityMessages[code]; ok {
		return msg
	}

	return fmt.Sprintf("unknown error code 0x%04X", code)
}

// validityMessages maps the 16-bit validity codes reported during status
// polling to their firmware messages. The table is never mutated at
// runtime.
var validityMessages = map[uint16]string{
	0x0000: "no error",

	// 0x00xx: general command handling.
	0x0001: "command not recognized",
	0x0002: "command parameter out of range",
	0x0003: "command not allowed in current state",
	0x0004: "command payload length mismatch",
	0x0005: "command checksum error",
	0x0006: "command aborted by host",
	0x0007: "command aborted by front panel",
	0x0008: "instrument busy",
	0x0009: "instrument not initialized",
	0x000A: "instrument paused",
	0x000B: "step already in progress",
	0x000C: "no step in progress",
	0x000D: "step type not supported by installed hardware",
	0x000E: "plate type not supported for this operation",
	0x000F: "operation timed out internally",

	// 0x01xx: carrier and axis motion.
	0x0100: "carrier motor stalled",
	0x0101: "carrier home sensor not found",
	0x0102: "carrier position out of range",
	0x0103: "carrier obstructed",
	0x0104: "carrier encoder fault",
	0x0105: "carrier not homed",
	0x0110: "X axis motor stalled",
	0x0111: "X axis home sensor not found",
	0x0112: "X axis position out of range",
	0x0113: "X axis encoder fault",
	0x0120: "Y axis motor stalled",
	0x0121: "Y axis home sensor not found",
	0x0122: "Y axis position out of range",
	0x0123: "Y axis encoder fault",
	0x0130: "Z axis motor stalled",
	0x0131: "Z axis home sensor not found",
	0x0132: "Z axis position out of range",
	0x0133: "Z axis encoder fault",
	0x0134: "Z axis crash detected",
	0x0135: "Z height exceeds plate clearance",
	0x0140: "manifold motor stalled",
	0x0141: "manifold home sensor not found",
	0x0142: "manifold position out of range",

	// 0x02xx: dispense subsystem.
	0x0200: "dispense pressure fault",
	0x0201: "dispense valve stuck open",
	0x0202: "dispense valve stuck closed",
	0x0203: "dispense flow rate out of range",
	0x0204: "dispense volume out of range",
	0x0205: "buffer A empty",
	0x0206: "buffer B empty",
	0x0207: "buffer C empty",
	0x0208: "buffer D empty",
	0x0209: "buffer select valve fault",
	0x020A: "dispense manifold not primed",
	0x020B: "dispense manifold clogged",
	0x020C: "dispense tube missing or blocked",
	0x020D: "bubble detected in dispense line",
	0x0210: "dispense aborted, pressure out of range",
	0x0211: "dispense aborted, vacuum not released",

	// 0x03xx: aspirate subsystem.
	0x0300: "aspirate vacuum fault",
	0x0301: "aspirate vacuum not reached",
	0x0302: "aspirate vacuum not released",
	0x0303: "aspirate travel rate out of range",
	0x0304: "aspirate manifold clogged",
	0x0305: "aspirate tube missing or blocked",
	0x0306: "waste reservoir full",
	0x0307: "waste sensor fault",
	0x0308: "final aspirate incomplete",
	0x0309: "crosswise aspirate not supported by manifold",
	0x030A: "secondary aspirate mode invalid",

	// 0x04xx: syringe drives.
	0x0400: "syringe 1 motor stalled",
	0x0401: "syringe 1 home sensor not found",
	0x0402: "syringe 1 overpressure",
	0x0403: "syringe 1 valve fault",
	0x0404: "syringe 1 not primed",
	0x0410: "syringe 2 motor stalled",
	0x0411: "syringe 2 home sensor not found",
	0x0412: "syringe 2 overpressure",
	0x0413: "syringe 2 valve fault",
	0x0414: "syringe 2 not primed",
	0x0420: "syringe volume out of range",
	0x0421: "syringe flow rate out of range",
	0x0422: "syringe selection invalid",
	0x0423: "syringe reagent empty",

	// 0x05xx: peristaltic pump.
	0x0500: "peristaltic pump motor stalled",
	0x0501: "peristaltic pump overspeed",
	0x0502: "peristaltic cassette missing",
	0x0503: "peristaltic cassette not clamped",
	0x0504: "peristaltic tube worn or leaking",
	0x0505: "peristaltic flow rate out of range",
	0x0506: "peristaltic volume out of range",
	0x0507: "peristaltic pump not primed",
	0x0508: "peristaltic purge incomplete",

	// 0x06xx: vacuum and pneumatics.
	0x0600: "vacuum pump fault",
	0x0601: "vacuum pump overcurrent",
	0x0602: "vacuum leak detected",
	0x0603: "vacuum sensor fault",
	0x0604: "vacuum accumulator out of range",
	0x0605: "pressure regulator fault",
	0x0606: "pinch valve fault",

	// 0x07xx: sensors and interlocks.
	0x0700: "plate sensor fault",
	0x0701: "no plate detected",
	0x0702: "plate misaligned",
	0x0703: "door open",
	0x0704: "door interlock fault",
	0x0705: "buffer sensor fault",
	0x0706: "temperature sensor fault",
	0x0707: "temperature out of range",
	0x0708: "fluid level sensor fault",
	0x0709: "drip tray full",

	// 0x08xx: shake and soak.
	0x0800: "shaker motor stalled",
	0x0801: "shake intensity out of range",
	0x0802: "shake duration out of range",
	0x0803: "soak duration out of range",
	0x0804: "shaker imbalance detected",

	// 0x09xx: system, memory and firmware.
	0x0900: "EEPROM read failure",
	0x0901: "EEPROM write failure",
	0x0902: "EEPROM checksum error",
	0x0903: "calibration data missing",
	0x0904: "calibration data corrupt",
	0x0905: "firmware checksum error",
	0x0906: "firmware version mismatch",
	0x0907: "internal watchdog reset",
	0x0908: "internal stack overflow",
	0x0909: "internal assertion failure",
	0x090A: "power supply voltage out of range",
	0x090B: "motor driver overtemperature",

	// 0x0Axx: communication.
	0x0A00: "communication framing error",
	0x0A01: "communication overrun",
	0x0A02: "communication parity error",
	0x0A03: "communication checksum error",
	0x0A04: "communication buffer overflow",
	0x0A05: "host command sequence error",

	// 0x0Bxx: self-check findings.
	0x0B00: "self-check failed: motion subsystem",
	0x0B01: "self-check failed: dispense subsystem",
	0x0B02: "self-check failed: aspirate subsystem",
	0x0B03: "self-check failed: syringe subsystem",
	0x0B04: "self-check failed: peristaltic subsystem",
	0x0B05: "self-check failed: vacuum subsystem",
	0x0B06: "self-check failed: sensor subsystem",
	0x0B07: "self-check failed: memory subsystem",
}

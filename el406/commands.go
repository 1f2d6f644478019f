package el406

// Device command codes. These are fixed by the EL406 firmware and must
// not change, or the hardware will misinterpret (or NAK) the frames.
const (
	cmdCommTest     uint16 = 0x80
	cmdAbort        uint16 = 0x89
	cmdClearState   uint16 = 0x8A
	cmdSelfCheck    uint16 = 0x90
	cmdSerialNumber uint16 = 0x91
	cmdStatusPoll   uint16 = 0x92
	cmdManifoldType uint16 = 0x93
	cmdSensorState  uint16 = 0x94

	cmdPeristalticPrime    uint16 = 0xA0
	cmdPeristalticDispense uint16 = 0xA1
	cmdSyringePrime        uint16 = 0xA2
	cmdSyringeDispense     uint16 = 0xA3
	cmdManifoldWash        uint16 = 0xA4
	cmdManifoldDispense    uint16 = 0xA5
	cmdManifoldAspirate    uint16 = 0xA6
	cmdManifoldPrime       uint16 = 0xA7
	cmdAutoClean           uint16 = 0xA8
	cmdShakeSoak           uint16 = 0xA9
	cmdPeristalticPurge    uint16 = 0xAA
)

// Parameter limits, enforced before anything touches the wire.
const (
	MinPeristalticVolume   = 5.0
	MaxPeristalticVolume   = 3000.0
	MaxPeristalticFlowRate = 5

	MinSyringeVolume   = 5.0
	MaxSyringeVolume   = 3000.0
	MaxSyringeFlowRate = 9

	MinManifoldVolume   = 10.0
	MaxManifoldVolume   = 3000.0
	MaxDispenseFlowRate = 9

	MaxVacuumDelayVolume = 3000.0

	MaxAspirateTravelRate = 7
	MaxAspirateDelay      = 5000 // milliseconds

	MinOffset = -50 // tenths of a millimeter
	MaxOffset = 50

	MaxZHeight = 1000 // tenths of a millimeter

	MaxWashCycles = 10

	MaxShakeIntensity = 5
	MaxShakeDuration  = 3600 // seconds
	MaxSoakDuration   = 7200 // seconds

	MaxAutoCleanCycles = 10
	MaxAutoCleanSoak   = 3600 // seconds

	MaxPurgeDuration = 600 // seconds
)

// Buffer identifies one of the four reagent inlets feeding the dispense
// manifold. The wire encoding is the ASCII letter.
type Buffer byte

const (
	BufferA Buffer = 'A'
	BufferB Buffer = 'B'
	BufferC Buffer = 'C'
	BufferD Buffer = 'D'
)

func (b Buffer) valid() bool {
	return b >= BufferA && b <= BufferD
}

func (b Buffer) String() string {
	if b.valid() {
		return string(rune(b))
	}

	return "buffer(?)"
}

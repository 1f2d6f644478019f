package el406

import "fmt"

// PlateType identifies a supported microplate format. The numeric value
// is the code the device expects on the wire.
type PlateType uint8

const (
	Plate1536       PlateType = 1
	Plate384        PlateType = 2
	Plate384PCR     PlateType = 3
	Plate96         PlateType = 4
	Plate1536Flange PlateType = 5
)

// geometry holds the fixed per-format constants used to default command
// parameters. Z heights are in tenths of a millimeter above the carrier,
// volumes in microliters.
type geometry struct {
	rows            int
	cols            int
	quadrants       int
	dispenseZ       int
	aspirateZ       int
	dispenserHeight int
	dispenseVolume  float64
}

// plateGeometries is the per-format constant table. Never mutated at
// runtime.
var plateGeometries = map[PlateType]geometry{
	Plate1536:       {rows: 32, cols: 48, quadrants: 4, dispenseZ: 108, aspirateZ: 42, dispenserHeight: 7, dispenseVolume: 10},
	Plate384:        {rows: 16, cols: 24, quadrants: 4, dispenseZ: 114, aspirateZ: 35, dispenserHeight: 9, dispenseVolume: 100},
	Plate384PCR:     {rows: 16, cols: 24, quadrants: 4, dispenseZ: 132, aspirateZ: 44, dispenserHeight: 12, dispenseVolume: 50},
	Plate96:         {rows: 8, cols: 12, quadrants: 1, dispenseZ: 121, aspirateZ: 29, dispenserHeight: 9, dispenseVolume: 300},
	Plate1536Flange: {rows: 32, cols: 48, quadrants: 4, dispenseZ: 112, aspirateZ: 46, dispenserHeight: 7, dispenseVolume: 10},
}

func (pt PlateType) valid() bool {
	_, ok := plateGeometries[pt]
	return ok
}

func (pt PlateType) String() string {
	switch pt {
	case Plate1536:
		return "1536-well"
	case Plate384:
		return "384-well"
	case Plate384PCR:
		return "384-PCR"
	case Plate96:
		return "96-well"
	case Plate1536Flange:
		return "1536-flange"
	default:
		return fmt.Sprintf("plate(%d)", uint8(pt))
	}
}

// ParsePlateType converts a plate format name (as produced by String)
// back into a PlateType.
func ParsePlateType(s string) (PlateType, error) {
	switch s {
	case "1536-well", "1536":
		return Plate1536, nil
	case "384-well", "384":
		return Plate384, nil
	case "384-PCR", "384-pcr":
		return Plate384PCR, nil
	case "96-well", "96":
		return Plate96, nil
	case "1536-flange":
		return Plate1536Flange, nil
	default:
		return 0, fmt.Errorf("%w: plate type %q", ErrUnknownValue, s)
	}
}

// MaxRows returns the number of well rows for the format, or 0 for an
// unknown format.
func (pt PlateType) MaxRows() int { return plateGeometries[pt].rows }

// MaxColumns returns the number of well columns for the format, or 0 for
// an unknown format.
func (pt PlateType) MaxColumns() int { return plateGeometries[pt].cols }

// WellCount returns rows*columns for the format.
func (pt PlateType) WellCount() int {
	g := plateGeometries[pt]
	return g.rows * g.cols
}

// Quadrants returns the number of addressable well quadrants: the
// interleaved sectors the manifold reaches in separate passes. 1 for
// 96-well plates, 4 for denser formats.
func (pt PlateType) Quadrants() int { return plateGeometries[pt].quadrants }

// DefaultDispenseZ returns the default dispense height in tenths of a
// millimeter.
func (pt PlateType) DefaultDispenseZ() int { return plateGeometries[pt].dispenseZ }

// DefaultAspirateZ returns the default aspirate height in tenths of a
// millimeter.
func (pt PlateType) DefaultAspirateZ() int { return plateGeometries[pt].aspirateZ }

// DispenserHeight returns the manifold dispenser height code for the
// format.
func (pt PlateType) DispenserHeight() int { return plateGeometries[pt].dispenserHeight }

// DefaultDispenseVolume returns the default per-well wash dispense volume
// in microliters.
func (pt PlateType) DefaultDispenseVolume() float64 { return plateGeometries[pt].dispenseVolume }

package chip8

import "fmt"

// Flavor selects which historical interpreter the machine imitates.
// The instruction set is the same, but a handful of opcodes changed
// behavior between the original COSMAC VIP interpreter and the
// interpreters written after it.
//
// see more https://chip-8.github.io/extensions/#chip-8
type Flavor uint8

const (
	FlavorCosmacVip Flavor = iota
	FlavorModern
)

func (f Flavor) String() string {
	switch f {
	case FlavorCosmacVip:
		return "cosmac-vip"
	case FlavorModern:
		return "modern"
	}
	return fmt.Sprintf("flavor(%d)", uint8(f))
}

func ParseFlavor(s string) (Flavor, error) {
	switch s {
	case "cosmac-vip", "vip":
		return FlavorCosmacVip, nil
	case "modern":
		return FlavorModern, nil
	}
	return 0, fmt.Errorf("unknown flavor %q, want cosmac-vip or modern", s)
}

// Quirks are the individual behavior switches a Flavor expands into.
// They are kept separate so a single quirk can be flipped without
// buying the whole flavor: real ROMs mix and match.
type Quirks struct {
	// 8XY6 and 8XYE copy VY into VX before shifting.
	// The VIP always did, later interpreters shift VX in place.
	ShiftReadsVY bool

	// BNNN jumps to NNN plus VX where X is the high nibble of NNN,
	// instead of NNN plus V0.
	JumpReadsVX bool

	// FX55 and FX65 leave I pointing past the transferred block
	// (I += X+1). The VIP walked I, later interpreters keep a copy.
	BulkAdvancesI bool

	// FX1E sets VF to 1 when I overflows past 0x0FFF. Not part of
	// the original instruction set; the Amiga interpreter added it
	// and at least one ROM (Spacefight 2091!) depends on it.
	IndexOverflowVF bool
}

// Quirks returns the switch settings the flavor stands for.
func (f Flavor) Quirks() Quirks {
	switch f {
	case FlavorModern:
		return Quirks{
			JumpReadsVX:     true,
			IndexOverflowVF: true,
		}
	default:
		return Quirks{
			ShiftReadsVY:  true,
			BulkAdvancesI: true,
		}
	}
}

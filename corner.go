package polyvolume

import (
	"fmt"
	"strings"

	"github.com/gogpu/polyvolume/internal/corner"
)

// CornerType selects how the volume is joined at interior path positions.
type CornerType int

const (
	// CornerMitered joins segments with one sharp ring on the plane bisecting
	// the turn. Turns close to 180 degrees produce long spikes; the ring
	// stretch is limited to 4.
	CornerMitered CornerType = iota

	// CornerRounded sweeps the outside of the turn in 5 degree steps.
	CornerRounded

	// CornerBeveled cuts the outside of the turn with a flat face.
	CornerBeveled
)

// String returns the lower-case name of the corner type.
func (c CornerType) String() string {
	return c.policy().String()
}

// ParseCornerType parses a corner type name, ignoring case.
// The empty string selects CornerMitered.
func ParseCornerType(s string) (CornerType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mitered", "miter":
		return CornerMitered, nil
	case "rounded", "round":
		return CornerRounded, nil
	case "beveled", "bevel":
		return CornerBeveled, nil
	default:
		return CornerMitered, fmt.Errorf("%w: %q", ErrUnknownCornerType, s)
	}
}

func (c CornerType) policy() corner.Policy {
	switch c {
	case CornerRounded:
		return corner.Rounded
	case CornerBeveled:
		return corner.Beveled
	case CornerMitered:
		return corner.Mitered
	default:
		return corner.Policy(-1)
	}
}

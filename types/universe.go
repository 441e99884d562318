// Package types implements the resolved type representation and the
// four-universe discipline: every type carries a universe tag (Free,
// Linear, Type, or Region) alongside its structural shape.
package types

// Universe is one of the four closed tags.
type Universe int

const (
	Free Universe = iota
	Linear
	TypeUniverse
	Region
)

func (u Universe) String() string {
	switch u {
	case Free:
		return "Free"
	case Linear:
		return "Linear"
	case TypeUniverse:
		return "Type"
	default:
		return "Region"
	}
}

// ParseUniverse converts a source spelling ("Free", "Linear", "Type",
// "Region") to a Universe tag.  Callers pass the failure up as a
// TypeError; ParseUniverse itself has no access to a span.
func ParseUniverse(s string) (Universe, bool) {
	switch s {
	case "Free":
		return Free, true
	case "Linear":
		return Linear, true
	case "Type":
		return TypeUniverse, true
	case "Region":
		return Region, true
	default:
		return 0, false
	}
}

// Compatible implements `universe_compatible`: Free subsumes
// Free only, Linear subsumes Linear only, Type matches any universe (used
// only for generic parameter binding), and all other pairs require exact
// equality.
func Compatible(declared, actual Universe) bool {
	if declared == TypeUniverse {
		return true
	}
	return declared == actual
}

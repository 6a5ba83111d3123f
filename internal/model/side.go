package model

// Side addresses one half of the arena.
type Side int8

const (
	SideNone Side = iota - 1
	SidePlayer
	SideOpponent
)

// Other returns the opposing side. SideNone maps to itself.
func (s Side) Other() Side {
	switch s {
	case SidePlayer:
		return SideOpponent
	case SideOpponent:
		return SidePlayer
	default:
		return SideNone
	}
}

// Valid reports whether s addresses a real side.
func (s Side) Valid() bool {
	return s == SidePlayer || s == SideOpponent
}

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideOpponent:
		return "opponent"
	default:
		return "none"
	}
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "player":
		*s = SidePlayer
	case "opponent":
		*s = SideOpponent
	default:
		*s = SideNone
	}
	return nil
}

// Sides lists both sides in resolution order.
var Sides = [2]Side{SidePlayer, SideOpponent}

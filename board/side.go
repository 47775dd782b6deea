package board

import "github.com/daystram/ply/position"

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// Forward returns the row delta of a pawn advance for the side.
func (s Side) Forward() position.Pos {
	if s == SideWhite {
		return -1
	}
	return 1
}

// HomeRow returns the back rank row of the side.
func (s Side) HomeRow() position.Pos {
	if s == SideWhite {
		return 7
	}
	return 0
}

// PawnRow returns the row the side's pawns start on.
func (s Side) PawnRow() position.Pos {
	return s.HomeRow() + s.Forward()
}

// FarRow returns the row on which the side's pawns promote.
func (s Side) FarRow() position.Pos {
	return s.Opposite().HomeRow()
}

package board

import "github.com/daystram/ply/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White 0-0"
	case CastleDirectionWhiteLeft:
		return "White 0-0-0"
	case CastleDirectionBlackRight:
		return "Black 0-0"
	case CastleDirectionBlackLeft:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionWhiteLeft
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

func (d CastleDirection) Side() Side {
	switch d {
	case CastleDirectionWhiteRight, CastleDirectionWhiteLeft:
		return SideWhite
	case CastleDirectionBlackRight, CastleDirectionBlackLeft:
		return SideBlack
	default:
		return SideUnknown
	}
}

// castleDirections lists the directions of each side, King side first.
var castleDirections = [2 + 1][2]CastleDirection{
	SideWhite: {CastleDirectionWhiteRight, CastleDirectionWhiteLeft},
	SideBlack: {CastleDirectionBlackRight, CastleDirectionBlackLeft},
}

// castleRoute holds the columns involved in castling on one wing.
type castleRoute struct {
	kingFrom, kingTo position.Pos
	rookFrom, rookTo position.Pos
	empty            []position.Pos // between King and Rook
	safe             []position.Pos // crossed by the King, destination included
}

var (
	routeRight = castleRoute{
		kingFrom: 4, kingTo: 6,
		rookFrom: 7, rookTo: 5,
		empty: []position.Pos{5, 6},
		safe:  []position.Pos{5, 6},
	}
	routeLeft = castleRoute{
		kingFrom: 4, kingTo: 2,
		rookFrom: 0, rookTo: 3,
		empty: []position.Pos{1, 2, 3},
		safe:  []position.Pos{3, 2},
	}
)

func (d CastleDirection) route() castleRoute {
	if d.IsRight() {
		return routeRight
	}
	return routeLeft
}

// KingHops returns the origin and destination of the King.
func (d CastleDirection) KingHops() (position.Pos, position.Pos) {
	r, row := d.route(), d.Side().HomeRow()
	return position.NewPos(row, r.kingFrom), position.NewPos(row, r.kingTo)
}

// RookHops returns the origin and destination of the Rook.
func (d CastleDirection) RookHops() (position.Pos, position.Pos) {
	r, row := d.route(), d.Side().HomeRow()
	return position.NewPos(row, r.rookFrom), position.NewPos(row, r.rookTo)
}

// castleDirectionOf returns the direction of a King move, or
// CastleDirectionUnknown when the move does not cross two files.
func castleDirectionOf(s Side, from, to position.Pos) CastleDirection {
	if from.Row() != to.Row() {
		return CastleDirectionUnknown
	}
	switch to.Col() - from.Col() {
	case 2:
		return castleDirections[s][0]
	case -2:
		return castleDirections[s][1]
	default:
		return CastleDirectionUnknown
	}
}

type CastleRights uint8

var maskCastleRights = [5]CastleRights{
	CastleDirectionWhiteRight: 0b1000,
	CastleDirectionWhiteLeft:  0b0100,
	CastleDirectionBlackRight: 0b0010,
	CastleDirectionBlackLeft:  0b0001,
}

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c *CastleRights) IsAllowed(d CastleDirection) bool {
	return *c&maskCastleRights[d] != 0
}

func (c *CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return *c&(maskCastleRights[CastleDirectionWhiteLeft]|maskCastleRights[CastleDirectionWhiteRight]) != 0
	}
	return *c&(maskCastleRights[CastleDirectionBlackLeft]|maskCastleRights[CastleDirectionBlackRight]) != 0
}

// CastleRights derives the castling rights from the has-moved flags of the
// Kings and Rooks. A right only says the pieces are unmoved and in place; it
// does not check the path or attacks.
func (b *Board) CastleRights() CastleRights {
	var c CastleRights
	for _, s := range []Side{SideWhite, SideBlack} {
		for _, d := range castleDirections[s] {
			c.Set(d, b.hasCastleRight(d))
		}
	}
	return c
}

func (b *Board) hasCastleRight(d CastleDirection) bool {
	s := d.Side()
	kingFrom, _ := d.KingHops()
	rookFrom, _ := d.RookHops()
	king, rook := b.cells[kingFrom], b.cells[rookFrom]
	return king.Is(s, PieceKing) && !king.HasMoved &&
		rook.Is(s, PieceRook) && !rook.HasMoved
}

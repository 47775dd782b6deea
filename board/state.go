package board

import "github.com/daystram/ply/position"

type State uint8

const (
	// StateUnknown is when game state is unknown.
	StateUnknown State = iota

	// StateRunning is when game is on progress.
	StateRunning

	// StateCheckWhite is when White King is in check.
	StateCheckWhite

	// StateCheckBlack is when Black King is in check.
	StateCheckBlack

	// StateCheckmateWhite is when White King is in checkmate.
	StateCheckmateWhite

	// StateCheckmateBlack is when Black King is in checkmate.
	StateCheckmateBlack

	// StateStalemate is when a side cannot move a piece and King is not in check.
	StateStalemate

	// StateFiftyMoveViolated is when the game has gone through 50 moves without any captures or pawn moves.
	StateFiftyMoveViolated

	// StateThreefoldRepetition is when the same position has occurred three times.
	StateThreefoldRepetition

	// StateInsufficientMaterial is when neither side has enough material left to checkmate.
	StateInsufficientMaterial
)

const (
	fiftyMoveRulePlies  = 100
	repetitionThreshold = 3
)

func (s State) IsRunning() bool {
	switch s {
	case StateRunning, StateCheckWhite, StateCheckBlack:
		return true
	default:
		return false
	}
}

func (s State) IsCheck() bool {
	switch s {
	case StateCheckWhite, StateCheckBlack:
		return true
	default:
		return false
	}
}

func (s State) IsCheckmate() bool {
	switch s {
	case StateCheckmateWhite, StateCheckmateBlack:
		return true
	default:
		return false
	}
}

func (s State) IsDraw() bool {
	switch s {
	case StateStalemate, StateFiftyMoveViolated, StateThreefoldRepetition, StateInsufficientMaterial:
		return true
	default:
		return false
	}
}

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "StateUnknown"
	case StateRunning:
		return "StateRunning"
	case StateCheckWhite:
		return "StateCheckWhite"
	case StateCheckBlack:
		return "StateCheckBlack"
	case StateCheckmateWhite:
		return "StateCheckmateWhite"
	case StateCheckmateBlack:
		return "StateCheckmateBlack"
	case StateStalemate:
		return "StateStalemate"
	case StateFiftyMoveViolated:
		return "StateFiftyMoveViolated"
	case StateThreefoldRepetition:
		return "StateThreefoldRepetition"
	case StateInsufficientMaterial:
		return "StateInsufficientMaterial"
	default:
		return ""
	}
}

// State classifies the position. Checkmate takes precedence over every draw
// rule, and stalemate over the remaining ones.
func (b *Board) State() State {
	turn := b.Turn()
	checked := b.IsKingChecked(turn)
	switch {
	case checked && !b.HasLegalMoves():
		if turn == SideWhite {
			return StateCheckmateWhite
		}
		return StateCheckmateBlack
	case !checked && !b.HasLegalMoves():
		return StateStalemate
	case b.IsFiftyMoveViolated():
		return StateFiftyMoveViolated
	case b.IsThreefoldRepetition():
		return StateThreefoldRepetition
	case b.IsInsufficientMaterial():
		return StateInsufficientMaterial
	case checked:
		if turn == SideWhite {
			return StateCheckWhite
		}
		return StateCheckBlack
	default:
		return StateRunning
	}
}

// IsCheckmate reports whether the side is to move, in check and has no legal
// move.
func (b *Board) IsCheckmate(s Side) bool {
	return s == b.Turn() && !b.HasLegalMoves() && b.IsKingChecked(s)
}

func (b *Board) IsStalemate() bool {
	return !b.HasLegalMoves() && !b.IsKingChecked(b.Turn())
}

func (b *Board) IsThreefoldRepetition() bool {
	return b.Repetitions() >= repetitionThreshold
}

func (b *Board) IsFiftyMoveViolated() bool {
	return b.halfMoveClock >= fiftyMoveRulePlies
}

// IsInsufficientMaterial reports a dead position: only Kings, Bishops and
// Knights remain, and either at most three men are left or the four men are
// two Kings and one Bishop per side on squares of the same colour.
func (b *Board) IsInsufficientMaterial() bool {
	var count int
	var bishops []position.Pos
	var bishopSides []Side
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		m := b.cells[pos]
		switch m.Piece {
		case PieceUnknown:
			continue
		case PieceKing, PieceKnight:
		case PieceBishop:
			bishops = append(bishops, pos)
			bishopSides = append(bishopSides, m.Side)
		default:
			return false
		}
		count++
	}
	if count <= 3 {
		return true
	}
	return count == 4 && len(bishops) == 2 &&
		bishopSides[0] != bishopSides[1] &&
		bishops[0].IsLight() == bishops[1].IsLight()
}

// IsDraw reports whether the position is drawn by any rule.
func (b *Board) IsDraw() bool {
	return b.IsStalemate() ||
		b.IsFiftyMoveViolated() ||
		b.IsThreefoldRepetition() ||
		b.IsInsufficientMaterial()
}

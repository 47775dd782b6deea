package board

import (
	"fmt"

	"github.com/daystram/ply/position"
)

// Move is a move of the man on From to To, promoting into IsPromote when set.
// The remaining flags are filled in by the move generator.
type Move struct {
	From, To position.Pos
	Piece    Piece

	IsTurn      Side
	IsCapture   bool
	IsCastle    CastleDirection
	IsEnPassant bool
	IsPromote   Piece
}

func (m Move) String() string {
	return m.Algebra()
}

func (m Move) Algebra() string {
	if m.IsCastle != CastleDirectionUnknown {
		if m.IsCastle.IsRight() {
			return "0-0"
		}
		return "0-0-0"
	}
	nt := m.Piece.SymbolAlgebra(SideWhite) // SideWhite because it returns capital symbols
	if m.IsCapture {
		if m.Piece == PiecePawn {
			nt += m.From.Col().NotationComponentX()
		} else {
			nt += m.From.Notation()
		}
		nt += "x"
	}
	nt += m.To.Notation()
	if m.IsPromote != PieceUnknown {
		nt += m.IsPromote.SymbolAlgebra(SideWhite)
	}
	if m.IsEnPassant {
		nt += " e.p."
	}
	return nt
}

func (m Move) UCI() string {
	return m.From.Notation() + m.To.Notation() + m.IsPromote.SymbolAlgebra(SideBlack)
}

// Equals compares the identity of two moves: origin, target and promotion.
func (m Move) Equals(n Move) bool {
	return m.From == n.From && m.To == n.To && m.IsPromote == n.IsPromote
}

func (m Move) IsNull() bool {
	return m.From == m.To
}

// ParseUCI parses a move in long algebraic notation, e.g. "e2e4" or "e7e8q".
func ParseUCI(s string) (position.Pos, position.Pos, Piece, error) {
	if len(s) != 4 && len(s) != 5 {
		return position.NullPos, position.NullPos, PieceUnknown, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := position.NewPosFromNotation(s[0:2])
	if err != nil {
		return position.NullPos, position.NullPos, PieceUnknown, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	to, err := position.NewPosFromNotation(s[2:4])
	if err != nil {
		return position.NullPos, position.NullPos, PieceUnknown, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	promote := PieceUnknown
	if len(s) == 5 {
		promote, err = ParsePromotion(s[4:])
		if err != nil {
			return position.NullPos, position.NullPos, PieceUnknown, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
		}
	}
	return from, to, promote, nil
}

// ParsePromotion parses a promotion piece symbol, case-insensitive.
func ParsePromotion(sym string) (Piece, error) {
	if len(sym) != 1 {
		return PieceUnknown, fmt.Errorf("%w: promotion %q", ErrInvalidMove, sym)
	}
	_, p := pieceFromSymbol(rune(sym[0]) | 0x20)
	for _, prom := range PawnPromoteCandidates {
		if p == prom {
			return p, nil
		}
	}
	return PieceUnknown, fmt.Errorf("%w: promotion %q", ErrInvalidMove, sym)
}

// Undo holds what Revert needs to take back a move: whether the mover had
// moved before, its double-step ply, the captured man with the square it stood
// on (different from To for en passant), and the previous half move clock.
type Undo struct {
	Move          Move
	WasFirstMove  bool
	DoubleStepPly int
	Captured      Man
	CapturedPos   position.Pos
	HalfMoveClock int
}

func (u Undo) IsCapture() bool {
	return u.CapturedPos != position.NullPos
}

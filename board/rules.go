package board

import "github.com/daystram/ply/position"

type direction struct {
	dRow, dCol position.Pos
}

var (
	dirsLateral  = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	dirsDiagonal = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	dirsAll      = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	dirsKnight   = []direction{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}, {2, 1}, {2, -1}, {-2, 1}, {-2, -1}}
)

// moveRule appends the pseudolegal moves of the man standing on from. Moves may
// leave the mover's own King in check.
type moveRule func(b *Board, from position.Pos, m Man, mvs []Move) []Move

var moveRules [6 + 1]moveRule

func init() {
	moveRules = [6 + 1]moveRule{
		PiecePawn:   pawnMoves,
		PieceBishop: slider(dirsDiagonal),
		PieceKnight: stepper(dirsKnight),
		PieceRook:   slider(dirsLateral),
		PieceQueen:  slider(dirsAll),
		PieceKing:   stepper(dirsAll),
	}
}

// PseudoLegalMoves returns the moves of the man on from, ignoring whether they
// leave its own King attacked. Castling is not included.
func (b *Board) PseudoLegalMoves(from position.Pos) []Move {
	m := b.cells[from]
	if m.IsEmpty() {
		return nil
	}
	return moveRules[m.Piece](b, from, m, nil)
}

func slider(dirs []direction) moveRule {
	return func(b *Board, from position.Pos, m Man, mvs []Move) []Move {
		for _, d := range dirs {
			to, ok := from.Offset(d.dRow, d.dCol)
			for ok {
				target := b.cells[to]
				if !target.IsEmpty() {
					if target.Side != m.Side {
						mvs = append(mvs, Move{From: from, To: to, Piece: m.Piece, IsTurn: m.Side, IsCapture: true})
					}
					break
				}
				mvs = append(mvs, Move{From: from, To: to, Piece: m.Piece, IsTurn: m.Side})
				to, ok = to.Offset(d.dRow, d.dCol)
			}
		}
		return mvs
	}
}

func stepper(offsets []direction) moveRule {
	return func(b *Board, from position.Pos, m Man, mvs []Move) []Move {
		for _, d := range offsets {
			to, ok := from.Offset(d.dRow, d.dCol)
			if !ok {
				continue
			}
			target := b.cells[to]
			if !target.IsEmpty() && target.Side == m.Side {
				continue
			}
			mvs = append(mvs, Move{From: from, To: to, Piece: m.Piece, IsTurn: m.Side, IsCapture: !target.IsEmpty()})
		}
		return mvs
	}
}

func pawnMoves(b *Board, from position.Pos, m Man, mvs []Move) []Move {
	fwd := m.Side.Forward()

	// advance
	if one, ok := from.Offset(fwd, 0); ok && b.cells[one].IsEmpty() {
		mvs = appendPawnMove(mvs, Move{From: from, To: one, Piece: PiecePawn, IsTurn: m.Side})
		if !m.HasMoved {
			if two, ok := from.Offset(2*fwd, 0); ok && b.cells[two].IsEmpty() {
				mvs = append(mvs, Move{From: from, To: two, Piece: PiecePawn, IsTurn: m.Side})
			}
		}
	}

	// capture
	for _, dCol := range []position.Pos{-1, 1} {
		to, ok := from.Offset(fwd, dCol)
		if !ok {
			continue
		}
		if target := b.cells[to]; !target.IsEmpty() {
			if target.Side != m.Side {
				mvs = appendPawnMove(mvs, Move{From: from, To: to, Piece: PiecePawn, IsTurn: m.Side, IsCapture: true})
			}
			continue
		}
		side, _ := from.Offset(0, dCol)
		if b.isEnPassantVictim(side, m.Side) {
			mvs = append(mvs, Move{From: from, To: to, Piece: PiecePawn, IsTurn: m.Side, IsCapture: true, IsEnPassant: true})
		}
	}
	return mvs
}

// isEnPassantVictim reports whether pos holds an enemy pawn that advanced two
// squares on the previous ply.
func (b *Board) isEnPassantVictim(pos position.Pos, s Side) bool {
	victim := b.cells[pos]
	return victim.Is(s.Opposite(), PiecePawn) &&
		victim.DoubleStepPly != NoDoubleStep && victim.DoubleStepPly == b.ply-1
}

func appendPawnMove(mvs []Move, mv Move) []Move {
	if mv.To.Row() != mv.IsTurn.FarRow() {
		return append(mvs, mv)
	}
	for _, prom := range PawnPromoteCandidates {
		mv.IsPromote = prom
		mvs = append(mvs, mv)
	}
	return mvs
}

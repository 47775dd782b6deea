package board

import (
	"fmt"

	"github.com/daystram/ply/position"
)

// Record captures, before the move is applied, everything Revert needs to
// restore the board. The move flags are recomputed from the board so a bare
// From/To/IsPromote move is enough.
func (b *Board) Record(mv Move) Undo {
	mover := b.cells[mv.From]
	mv.Piece = mover.Piece
	mv.IsTurn = mover.Side
	mv.IsEnPassant = false
	mv.IsCastle = CastleDirectionUnknown

	u := Undo{
		WasFirstMove:  !mover.HasMoved,
		DoubleStepPly: mover.DoubleStepPly,
		CapturedPos:   position.NullPos,
		HalfMoveClock: b.halfMoveClock,
	}
	switch {
	case !b.cells[mv.To].IsEmpty():
		u.CapturedPos = mv.To
	case mover.Piece == PiecePawn && mv.From.Col() != mv.To.Col():
		mv.IsEnPassant = true
		u.CapturedPos = position.NewPos(mv.From.Row(), mv.To.Col())
	case mover.Piece == PieceKing:
		mv.IsCastle = castleDirectionOf(mover.Side, mv.From, mv.To)
	}
	if u.CapturedPos != position.NullPos {
		u.Captured = b.cells[u.CapturedPos]
	}
	mv.IsCapture = u.CapturedPos != position.NullPos
	u.Move = mv
	return u
}

// Apply plays a move taken from the legal move table and returns the record
// to pass to Revert. It does not validate the move; use Play for that.
func (b *Board) Apply(mv Move) Undo {
	u := b.Record(mv)
	mv = u.Move

	man := b.cells[mv.From]
	b.cells[mv.From] = Man{}
	if u.IsCapture() {
		b.cells[u.CapturedPos] = Man{}
	}
	if mv.IsPromote != PieceUnknown {
		man = NewMan(man.Side, mv.IsPromote)
	}
	man.HasMoved = true
	if man.Piece == PiecePawn && (mv.To.Row()-mv.From.Row() == 2 || mv.From.Row()-mv.To.Row() == 2) {
		man.DoubleStepPly = b.ply
	}
	b.put(mv.To, man)

	if mv.IsCastle != CastleDirectionUnknown {
		rookFrom, rookTo := mv.IsCastle.RookHops()
		rook := b.cells[rookFrom]
		rook.HasMoved = true
		b.cells[rookFrom] = Man{}
		b.put(rookTo, rook)
	}

	if mv.Piece == PiecePawn || mv.IsCapture {
		b.halfMoveClock = 0
	} else {
		b.halfMoveClock++
	}

	b.ply++
	b.refresh()
	b.repetitions[b.Signature()]++
	return u
}

// Revert takes back the move recorded in u. It must be called on the board
// exactly as Apply left it.
func (b *Board) Revert(u Undo) {
	sig := b.Signature()
	if b.repetitions[sig]--; b.repetitions[sig] <= 0 {
		delete(b.repetitions, sig)
	}

	mv := u.Move
	man := b.cells[mv.To]
	b.cells[mv.To] = Man{}

	if mv.IsCastle != CastleDirectionUnknown {
		rookFrom, rookTo := mv.IsCastle.RookHops()
		rook := b.cells[rookTo]
		rook.HasMoved = false
		b.cells[rookTo] = Man{}
		b.put(rookFrom, rook)
	}

	if mv.IsPromote != PieceUnknown {
		man.Piece = PiecePawn
	}
	man.HasMoved = !u.WasFirstMove
	man.DoubleStepPly = u.DoubleStepPly
	b.put(mv.From, man)

	if u.IsCapture() {
		b.put(u.CapturedPos, u.Captured)
	}

	b.halfMoveClock = u.HalfMoveClock
	b.ply--
	b.refresh()
}

// Play validates and applies the move of the man on from to to. The board is
// left untouched when the move is rejected.
func (b *Board) Play(from, to position.Pos, promote Piece) (Move, error) {
	if !from.Valid() || b.cells[from].IsEmpty() {
		return Move{}, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if b.cells[from].Side != b.Turn() {
		return Move{}, fmt.Errorf("%w: %s", ErrWrongSide, from)
	}
	for _, mv := range b.LegalMovesFrom(from) {
		if mv.To == to && mv.IsPromote == promote {
			b.Apply(mv)
			return mv, nil
		}
	}
	if promote == PieceUnknown && b.cells[from].Piece == PiecePawn && to.Row() == b.Turn().FarRow() {
		return Move{}, fmt.Errorf("%w: %s%s requires a promotion piece", ErrIllegalMove, from, to)
	}
	return Move{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
}

// PlayUCI is Play for a move in long algebraic notation.
func (b *Board) PlayUCI(s string) (Move, error) {
	from, to, promote, err := ParseUCI(s)
	if err != nil {
		return Move{}, err
	}
	return b.Play(from, to, promote)
}

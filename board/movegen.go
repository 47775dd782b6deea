package board

import "github.com/daystram/ply/position"

// refresh regenerates the legal move table for the side to move. A new slice
// is allocated on every call so slices handed out earlier are never mutated.
func (b *Board) refresh() {
	s := b.Turn()
	mvs := make([]Move, 0, len(b.moves)+8)
	var pseudo []Move
	for from := position.Pos(0); from < TotalCells; from++ {
		m := b.cells[from]
		if m.IsEmpty() || m.Side != s {
			b.spans[from] = span{}
			continue
		}
		lo := len(mvs)
		pseudo = moveRules[m.Piece](b, from, m, pseudo[:0])
		for _, mv := range pseudo {
			if b.leavesKingSafe(mv) {
				mvs = append(mvs, mv)
			}
		}
		if m.Piece == PieceKing {
			mvs = b.appendCastleMoves(mvs, from, m)
		}
		b.spans[from] = span{lo: int16(lo), hi: int16(len(mvs))}
	}
	b.moves = mvs
}

// leavesKingSafe plays the move on the grid only, tests the mover's King and
// restores the grid.
func (b *Board) leavesKingSafe(mv Move) bool {
	mover := b.cells[mv.From]
	capturedPos := mv.To
	if mv.IsEnPassant {
		capturedPos = position.NewPos(mv.From.Row(), mv.To.Col())
	}
	captured := b.cells[capturedPos]

	king := b.kings[mover.Side]
	if mover.Piece == PieceKing {
		king = mv.To
	}

	b.cells[capturedPos] = Man{}
	b.cells[mv.From] = Man{}
	b.cells[mv.To] = mover
	safe := !b.IsAttacked(king, mover.Side.Opposite())
	b.cells[mv.To] = Man{}
	b.cells[capturedPos] = captured
	b.cells[mv.From] = mover
	return safe
}

func (b *Board) appendCastleMoves(mvs []Move, from position.Pos, king Man) []Move {
	if king.HasMoved || from.Col() != routeRight.kingFrom || from.Row() != king.Side.HomeRow() {
		return mvs
	}
	if b.IsKingChecked(king.Side) {
		return mvs
	}
	row := king.Side.HomeRow()
castleLoop:
	for _, d := range castleDirections[king.Side] {
		if !b.hasCastleRight(d) {
			continue
		}
		r := d.route()
		for _, col := range r.empty {
			if !b.cells[position.NewPos(row, col)].IsEmpty() {
				continue castleLoop
			}
		}
		for _, col := range r.safe {
			if b.IsAttacked(position.NewPos(row, col), king.Side.Opposite()) {
				continue castleLoop
			}
		}
		mvs = append(mvs, Move{
			From:     from,
			To:       position.NewPos(row, r.kingTo),
			Piece:    PieceKing,
			IsTurn:   king.Side,
			IsCastle: d,
		})
	}
	return mvs
}

// IsKingChecked reports whether the King of the side is attacked.
func (b *Board) IsKingChecked(s Side) bool {
	king := b.kings[s]
	if king == position.NullPos {
		return false
	}
	return b.IsAttacked(king, s.Opposite())
}

// IsAttacked reports whether any man of side by attacks pos. It scans outward
// from pos instead of generating the attacker's moves.
func (b *Board) IsAttacked(pos position.Pos, by Side) bool {
	if b.hitsRay(pos, by, dirsLateral, PieceRook) || b.hitsRay(pos, by, dirsDiagonal, PieceBishop) {
		return true
	}
	if b.hitsStep(pos, by, dirsKnight, PieceKnight) || b.hitsStep(pos, by, dirsAll, PieceKing) {
		return true
	}
	// an attacking pawn stands one row behind pos from its own point of view
	for _, dCol := range []position.Pos{-1, 1} {
		if from, ok := pos.Offset(-by.Forward(), dCol); ok && b.cells[from].Is(by, PiecePawn) {
			return true
		}
	}
	return false
}

// hitsRay checks the nearest man on each ray for p or a Queen of side by.
func (b *Board) hitsRay(pos position.Pos, by Side, dirs []direction, p Piece) bool {
	for _, d := range dirs {
		to, ok := pos.Offset(d.dRow, d.dCol)
		for ok {
			m := b.cells[to]
			if !m.IsEmpty() {
				if m.Side == by && (m.Piece == p || m.Piece == PieceQueen) {
					return true
				}
				break
			}
			to, ok = to.Offset(d.dRow, d.dCol)
		}
	}
	return false
}

func (b *Board) hitsStep(pos position.Pos, by Side, offsets []direction, p Piece) bool {
	for _, d := range offsets {
		if to, ok := pos.Offset(d.dRow, d.dCol); ok && b.cells[to].Is(by, p) {
			return true
		}
	}
	return false
}

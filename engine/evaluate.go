package engine

import (
	"github.com/daystram/ply/board"
)

const (
	scoreMaterialWeight = 3
	scoreCheck          = 1

	// scorePawn is what one pawn of material is worth in the evaluation.
	scorePawn = scoreMaterialWeight
)

// Evaluate scores the position for the side to move: -ScoreInfinite when it
// is checkmated, 0 when the position is drawn, and otherwise three points per
// unit of material ahead, one point off while its own King is in check and one
// point on while the opponent's King is.
func Evaluate(b *board.Board) int32 {
	turn := b.Turn()
	if b.IsCheckmate(turn) {
		return -ScoreInfinite
	}
	if b.IsDraw() {
		return 0
	}

	score := scoreMaterialWeight * int32(b.Material(turn)-b.Material(turn.Opposite()))
	if b.IsKingChecked(turn) {
		score -= scoreCheck
	} else if b.IsKingChecked(turn.Opposite()) {
		score += scoreCheck
	}
	return score
}

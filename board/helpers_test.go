package board

import (
	"testing"
)

func newTestBoard(t *testing.T, fen string) *Board {
	t.Helper()
	opts := []BoardOption{}
	if fen != "" {
		opts = append(opts, WithFEN(fen))
	}
	b, err := NewBoard(opts...)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return b
}

func playAll(t *testing.T, b *Board, mvs ...string) {
	t.Helper()
	for _, s := range mvs {
		if _, err := b.PlayUCI(s); err != nil {
			t.Fatalf("unexpected error playing %s: %v\n%s", s, err, b.Dump())
		}
	}
}

func hasMove(mvs []Move, uci string) bool {
	for _, mv := range mvs {
		if mv.UCI() == uci {
			return true
		}
	}
	return false
}

func findMove(t *testing.T, b *Board, uci string) Move {
	t.Helper()
	for _, mv := range b.LegalMoves() {
		if mv.UCI() == uci {
			return mv
		}
	}
	t.Fatalf("move %s not legal in %s", uci, b.FEN())
	return Move{}
}

func sameMoves(a, b []Move) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameRepetitions(a, b map[Signature]int) bool {
	if len(a) != len(b) {
		return false
	}
	for sig, n := range a {
		if b[sig] != n {
			return false
		}
	}
	return true
}

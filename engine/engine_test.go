package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/daystram/ply/board"
)

func newTestBoard(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return b
}

func silentEngine() *Engine {
	return NewEngine(&EngineConfig{Logger: func(...any) {}})
}

// minimax is the unpruned reference search, scored for the side to move at
// the root.
func minimax(b *board.Board, depth, maxDepth uint8, maximizing bool) int32 {
	if depth >= maxDepth || !b.HasLegalMoves() {
		if maximizing {
			return Evaluate(b)
		}
		return -Evaluate(b)
	}
	best := scoreUnset
	if maximizing {
		best = -scoreUnset
	}
	for _, mv := range b.LegalMoves() {
		u := b.Apply(mv)
		score := minimax(b, depth+1, maxDepth, !maximizing)
		b.Revert(u)
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

func rootMinimax(b *board.Board, maxDepth uint8) (board.Move, int32) {
	var bestMove board.Move
	bestScore := -scoreUnset
	for _, mv := range b.LegalMoves() {
		u := b.Apply(mv)
		score := minimax(b, 1, maxDepth, false)
		b.Revert(u)
		if score >= bestScore {
			bestMove, bestScore = mv, score
		}
	}
	return bestMove, bestScore
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen      string
		maxDepth uint8
	}{
		{board.DefaultStartingPositionFEN, 3},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2},
		{"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4", 3},
		{"6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1", 3},
		{"4k3/8/8/3q4/8/8/8/3RK3 b - - 0 1", 3},
	}
	for _, tt := range tests {
		tt := tt
		for depth := uint8(1); depth <= tt.maxDepth; depth++ {
			depth := depth
			t.Run(fmt.Sprintf("d=%d %s", depth, tt.fen), func(t *testing.T) {
				t.Parallel()
				b := newTestBoard(t, tt.fen)
				fen := b.FEN()

				wantMove, wantScore := rootMinimax(b, depth)
				gotMove, gotScore, err := silentEngine().search(context.Background(), b, &SearchConfig{MaxDepth: depth, Debug: true})
				if err != nil {
					t.Fatal("unexpected error:", err)
				}
				if gotMove != wantMove {
					t.Errorf("unexpected move: got=%s want=%s", gotMove.UCI(), wantMove.UCI())
				}
				if gotScore != wantScore {
					t.Errorf("unexpected score: got=%d want=%d", gotScore, wantScore)
				}
				if got := b.FEN(); got != fen {
					t.Errorf("board changed by search: got=%s want=%s", got, fen)
				}
			})
		}
	}
}

func TestAlphaBetaPrunes(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, board.DefaultStartingPositionFEN)
	e := silentEngine()
	if _, err := e.Search(context.Background(), b, &SearchConfig{MaxDepth: 3}); err != nil {
		t.Fatal("unexpected error:", err)
	}
	// an unpruned search visits 20 + 400 + 8902 nodes
	if e.Nodes() >= 20+400+8902 {
		t.Errorf("search did not prune: nodes=%d", e.Nodes())
	}
}

func TestChooseMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		fen      string
		maxDepth uint8
		want     string
	}{
		{
			name:     "back rank mate",
			fen:      "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1",
			maxDepth: 1,
			want:     "a1a8",
		},
		{
			name:     "back rank mate found deeper",
			fen:      "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1",
			maxDepth: 3,
			want:     "a1a8",
		},
		{
			name:     "fool's mate",
			fen:      "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2",
			maxDepth: 2,
			want:     "d8h4",
		},
		{
			name:     "win the queen",
			fen:      "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1",
			maxDepth: 2,
			want:     "d1d5",
		},
		{
			name:     "equal moves pick the last",
			fen:      board.DefaultStartingPositionFEN,
			maxDepth: 1,
			want:     "g1f3",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newTestBoard(t, tt.fen)
			mv, ok := ChooseMove(b, tt.maxDepth)
			if !ok {
				t.Fatal("no move found")
			}
			if mv.UCI() != tt.want {
				t.Errorf("unexpected move: got=%s want=%s", mv.UCI(), tt.want)
			}
		})
	}
}

func TestChooseMoveNoMove(t *testing.T) {
	t.Parallel()
	for _, fen := range []string{
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"R5k1/5ppp/8/8/8/8/8/4K3 b - - 0 1",
	} {
		b := newTestBoard(t, fen)
		if mv, ok := ChooseMove(b, 2); ok {
			t.Errorf("unexpected move in %s: %s", fen, mv.UCI())
		}
		_, err := silentEngine().Search(context.Background(), b, &SearchConfig{MaxDepth: 2})
		if !errors.Is(err, ErrNoMove) {
			t.Errorf("unexpected error: got=%v want=%v", err, ErrNoMove)
		}
	}
}

func TestSearchCancelled(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, board.DefaultStartingPositionFEN)
	fen := b.FEN()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := silentEngine().Search(ctx, b, &SearchConfig{MaxDepth: 4})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error: got=%v want=%v", err, context.Canceled)
	}
	if got := b.FEN(); got != fen {
		t.Errorf("board changed by cancelled search: got=%s want=%s", got, fen)
	}
	if got := len(b.LegalMoves()); got != 20 {
		t.Errorf("unexpected legal moves after cancel: got=%d want=20", got)
	}
}

func TestSearchLogging(t *testing.T) {
	t.Parallel()
	tests := []struct {
		debug      bool
		wantPrefix string
	}{
		{debug: false, wantPrefix: "info depth 2 score "},
		{debug: true, wantPrefix: "depth:2 ["},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("debug=%v", tt.debug), func(t *testing.T) {
			t.Parallel()
			var lines []string
			e := NewEngine(&EngineConfig{Logger: func(a ...any) {
				lines = append(lines, fmt.Sprint(a...))
			}})
			b := newTestBoard(t, "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
			if _, err := e.Search(context.Background(), b, &SearchConfig{MaxDepth: 2, Debug: tt.debug}); err != nil {
				t.Fatal("unexpected error:", err)
			}
			if len(lines) != 1 {
				t.Fatalf("unexpected log lines: %q", lines)
			}
			if !strings.HasPrefix(lines[0], tt.wantPrefix) {
				t.Errorf("unexpected log line: got=%q want prefix %q", lines[0], tt.wantPrefix)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		want int32
	}{
		{"starting position", board.DefaultStartingPositionFEN, 0},
		{"rook ahead", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", 15},
		{"rook behind", "4k3/8/8/8/8/8/8/R3K3 b - - 0 1", -15},
		{"in check", "4k3/8/8/8/8/8/8/4K2r w - - 0 1", -16},
		{"checkmated", "R5k1/5ppp/8/8/8/8/8/4K3 b - - 0 1", -ScoreInfinite},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 0},
		{"insufficient material", "4k3/8/8/8/8/8/8/4KN2 w - - 0 1", 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newTestBoard(t, tt.fen)
			if got := Evaluate(b); got != tt.want {
				t.Errorf("unexpected score: got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestDumpHistory(t *testing.T) {
	t.Parallel()
	b := newTestBoard(t, board.DefaultStartingPositionFEN)
	var mvs []board.Move
	bb := b.Clone()
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		mv, err := bb.PlayUCI(s)
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		mvs = append(mvs, mv)
	}

	want := "1. f3 e5 2. g4 Qh4#"
	if got := DumpHistory(b, mvs); got != want {
		t.Errorf("unexpected history: got=%q want=%q", got, want)
	}
}

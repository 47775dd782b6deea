package bench

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/ply/board"
)

// Result holds the perft node count and the move categories of the last ply.
type Result struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

func (r *Result) add(o Result) {
	r.Nodes += o.Nodes
	r.Captures += o.Captures
	r.EnPassants += o.EnPassants
	r.Castles += o.Castles
	r.Promotions += o.Promotions
	r.Checks += o.Checks
}

// count classifies a leaf move; b is the board right after the move.
func (r *Result) count(mv board.Move, b *board.Board) {
	r.Nodes++
	if mv.IsCapture {
		r.Captures++
	}
	if mv.IsEnPassant {
		r.EnPassants++
	}
	if mv.IsCastle != board.CastleDirectionUnknown {
		r.Castles++
	}
	if mv.IsPromote != board.PieceUnknown {
		r.Promotions++
	}
	if b.IsKingChecked(b.Turn()) {
		r.Checks++
	}
}

// Perft counts the leaf nodes depth plies below the position and reports the
// totals to out. With verbose set the count below each root move is reported
// too. The parallel run searches every root move on its own clone of the
// board.
func Perft(depth int, fen string, parallel, verbose bool, out chan<- string) (Result, error) {
	b, err := board.NewBoard(
		board.WithFEN(fen),
	)
	if err != nil {
		return Result{}, err
	}

	var run perftFunc
	if parallel {
		run = runPerftParallel
	} else {
		run = runPerftVerified
	}

	start := time.Now()
	res := run(b, depth, verbose, out)
	end := time.Now()

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
			depth, res.Nodes, int(float64(res.Nodes)/end.Sub(start).Seconds()),
			res.Captures, res.EnPassants, res.Castles, res.Promotions, res.Checks, end.Sub(start).Seconds())

	return res, nil
}

type perftFunc func(b *board.Board, d int, verbose bool, out chan<- string) Result

// Run walks the tree in place on b, reverting every move it applies.
func Run(b *board.Board, d int) Result {
	var res Result
	runPerft(b, d, true, false, false, nil, &res)
	return res
}

// runPerftVerified is the serial walk with the revert of every move checked
// against the position it was applied to.
func runPerftVerified(b *board.Board, d int, verbose bool, out chan<- string) Result {
	var res Result
	runPerft(b, d, true, true, verbose, out, &res)
	return res
}

func runPerft(b *board.Board, d int, root, verify, verbose bool, out chan<- string, res *Result) uint64 {
	if d == 0 {
		res.Nodes++
		return 1
	}

	var sum uint64
	for _, mv := range b.LegalMoves() {
		var before board.Signature
		var beforeFEN string
		if verify {
			before, beforeFEN = b.Signature(), b.FEN()
		}

		var child uint64
		u := b.Apply(mv)
		if d == 1 {
			child = 1
			res.count(mv, b)
		} else {
			child = runPerft(b, d-1, false, verify, verbose, out, res)
		}
		b.Revert(u)

		if verify {
			if after, afterFEN := b.Signature(), b.FEN(); after != before || afterFEN != beforeFEN {
				panic(fmt.Sprintf("revert of %s does not restore %s: got %s", mv.UCI(), beforeFEN, afterFEN))
			}
		}
		if verbose && root {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
		}
		sum += child
	}
	return sum
}

func runPerftParallel(b *board.Board, d int, verbose bool, out chan<- string) Result {
	if d == 0 {
		return Result{Nodes: 1}
	}

	var mu sync.Mutex
	var total Result
	var wg sync.WaitGroup
	for _, mv := range b.LegalMoves() {
		mv := mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			var res Result
			bb := b.Clone()
			bb.Apply(mv)
			if d == 1 {
				res.count(mv, bb)
			} else {
				runPerft(bb, d-1, false, false, false, nil, &res)
			}
			if verbose {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), res.Nodes)
			}

			mu.Lock()
			total.add(res)
			mu.Unlock()
		}()
	}
	wg.Wait()
	return total
}

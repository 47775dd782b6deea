package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/ply/board"
)

const (
	// ScoreInfinite is the score of a checkmated side. Every other score is
	// strictly inside (-ScoreInfinite, ScoreInfinite).
	ScoreInfinite int32 = 1 << 20

	DefaultMaxDepth uint8 = 3

	// scoreUnset starts the running best of a node; any child score beats it.
	scoreUnset = ScoreInfinite + 1
)

var ErrNoMove = errors.New("no legal move")

func DefaultLogger(a ...any) {
	fmt.Println(a...)
}

type PVLine struct {
	mvs []board.Move
}

func (pvl *PVLine) GetPV() board.Move {
	if len(pvl.mvs) == 0 {
		return board.Move{}
	}
	return pvl.mvs[0]
}

func (pvl *PVLine) Set(mv board.Move, nextPVL PVLine) {
	if pvl == nil {
		return
	}
	pvl.mvs = append(append(pvl.mvs[:0], mv), nextPVL.mvs...)
}

func (pvl *PVLine) Clear() {
	pvl.mvs = pvl.mvs[:0]
}

func (pvl *PVLine) Len() int {
	return len(pvl.mvs)
}

func (pvl *PVLine) Moves() []board.Move {
	return pvl.mvs
}

func (pvl *PVLine) StringUCI() string {
	if pvl == nil {
		return ""
	}
	builder := strings.Builder{}
	for i, mv := range pvl.mvs {
		_, _ = builder.WriteString(mv.UCI())
		if i < len(pvl.mvs)-1 {
			_, _ = builder.WriteRune(' ')
		}
	}
	return builder.String()
}

func (pvl *PVLine) String(b *board.Board) string {
	return DumpHistory(b, pvl.mvs)
}

// DumpHistory renders the moves in numbered algebraic notation, annotated with
// check, checkmate and draw markers. The board is not modified.
func DumpHistory(b *board.Board, mvs []board.Move) string {
	if b == nil || len(mvs) < 1 {
		return ""
	}
	builder := strings.Builder{}
	bb := b.Clone()
	fullMoveClock := bb.FullMoveClock()
	if mvs[0].IsTurn == board.SideBlack {
		_, _ = builder.WriteString(fmt.Sprintf("%d... ", fullMoveClock))
	}
	for i, mv := range mvs {
		bb.Apply(mv)
		if mv.IsTurn == board.SideWhite {
			_, _ = builder.WriteString(fmt.Sprintf("%d. %s", fullMoveClock, mv))
		} else {
			_, _ = builder.WriteString(mv.String())
			fullMoveClock++
		}
		state := bb.State()
		if state.IsCheck() {
			_, _ = builder.WriteRune('+')
		}
		if state.IsCheckmate() {
			_, _ = builder.WriteRune('#')
		}
		if state.IsDraw() {
			_, _ = builder.WriteRune('=')
		}
		if i < len(mvs)-1 {
			_, _ = builder.WriteRune(' ')
		}
	}
	return builder.String()
}

type EngineConfig struct {
	Logger func(...any)
}

type SearchConfig struct {
	// MaxDepth is the number of plies searched below the root. Zero means
	// DefaultMaxDepth.
	MaxDepth uint8

	// Debug logs a human readable summary and verifies that every revert
	// restores the position it was applied to.
	Debug bool
}

// Engine picks moves by fixed-depth minimax with alpha-beta pruning. The
// score of a node is always seen from the side to move at the root, which
// maximizes. An Engine searches one board at a time and is not safe for
// concurrent use.
type Engine struct {
	maxDepth uint8
	debug    bool
	done     <-chan struct{}
	aborted  bool

	nodes       uint64
	elapsedTime time.Duration
	logger      func(...any)
}

func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}
	if cfg.Logger == nil {
		cfg.Logger = DefaultLogger
	}

	return &Engine{
		logger: cfg.Logger,
	}
}

// ChooseMove searches b to maxDepth plies without logging. It reports false
// when the side to move has no legal move; the caller tells checkmate from
// stalemate with b.State().
func ChooseMove(b *board.Board, maxDepth uint8) (board.Move, bool) {
	e := NewEngine(&EngineConfig{Logger: func(...any) {}})
	mv, err := e.Search(context.Background(), b, &SearchConfig{MaxDepth: maxDepth})
	if err != nil {
		return board.Move{}, false
	}
	return mv, true
}

// Search returns the best move for the side to move. The board is searched in
// place and is back in its original state when Search returns. A cancelled
// context aborts the search with the context error.
func (e *Engine) Search(ctx context.Context, b *board.Board, cfg *SearchConfig) (board.Move, error) {
	mv, _, err := e.search(ctx, b, cfg)
	if err != nil {
		return board.Move{}, err
	}
	return mv, nil
}

// Nodes returns the number of nodes visited by the last search.
func (e *Engine) Nodes() uint64 {
	return e.nodes
}

func (e *Engine) search(ctx context.Context, b *board.Board, cfg *SearchConfig) (board.Move, int32, error) {
	if cfg == nil {
		cfg = &SearchConfig{}
	}
	e.maxDepth = cfg.MaxDepth
	if e.maxDepth == 0 {
		e.maxDepth = DefaultMaxDepth
	}
	e.debug = cfg.Debug
	e.done = ctx.Done()
	e.aborted = false
	e.nodes = 0

	if !b.HasLegalMoves() {
		return board.Move{}, 0, fmt.Errorf("%w: %s", ErrNoMove, b.State())
	}

	startTime := time.Now()
	var pvl, childPVL PVLine
	var bestMove board.Move
	bestScore := -scoreUnset
	alpha, beta := -scoreUnset, scoreUnset
	for _, mv := range b.LegalMoves() {
		score := e.visit(b, mv, &childPVL, 1, alpha, beta, false)
		if e.aborted {
			return board.Move{}, 0, ctx.Err()
		}

		// later moves of equal score replace earlier ones
		if score >= bestScore {
			bestMove = mv
			bestScore = score
			pvl.Set(mv, childPVL)
		}
		// keep the window one below the best so an equal score is still exact
		alpha = max(alpha, bestScore-1)
		childPVL.Clear()
	}
	e.elapsedTime = time.Since(startTime)

	if e.debug {
		e.logger(message.NewPrinter(language.English).
			Sprintf("depth:%d [%s] nodes:%d (%.0fn/s) t:%s\n    %s",
				e.maxDepth, formatScoreDebug(bestScore, pvl), e.nodes, e.rate(), e.elapsedTime, pvl.String(b)))
	} else {
		e.logger(fmt.Sprintf("info depth %d score %s time %d nodes %d nps %.0f pv %s",
			e.maxDepth, formatScoreUCI(bestScore, pvl), e.elapsedTime.Milliseconds(), e.nodes, e.rate(), pvl.StringUCI()))
	}

	return bestMove, bestScore, nil
}

// visit applies mv, scores the resulting node and reverts it.
func (e *Engine) visit(
	b *board.Board,
	mv board.Move,
	pvl *PVLine,
	depth uint8,
	alpha, beta int32,
	maximizing bool,
) int32 {
	var before board.Signature
	if e.debug {
		before = b.Signature()
	}

	u := b.Apply(mv)
	score := e.alphaBeta(b, pvl, depth, alpha, beta, maximizing)
	b.Revert(u)

	if e.debug {
		if after := b.Signature(); after != before {
			panic(fmt.Sprintf("revert of %s does not restore the position: got=%s want=%s", mv.UCI(), after, before))
		}
	}
	return score
}

// alphaBeta scores the node at depth plies below the root. A maximizing node
// stops as soon as its best reaches beta, a minimizing node as soon as its
// best drops to alpha.
func (e *Engine) alphaBeta(
	b *board.Board,
	pvl *PVLine,
	depth uint8,
	alpha, beta int32,
	maximizing bool,
) int32 {
	e.nodes++

	select {
	case <-e.done:
		e.aborted = true
		return 0
	default:
	}

	if depth >= e.maxDepth || !b.HasLegalMoves() {
		pvl.Clear()
		if maximizing {
			return Evaluate(b)
		}
		return -Evaluate(b)
	}

	var childPVL PVLine
	best := scoreUnset
	if maximizing {
		best = -scoreUnset
	}
	for _, mv := range b.LegalMoves() {
		score := e.visit(b, mv, &childPVL, depth+1, alpha, beta, !maximizing)
		if e.aborted {
			return 0
		}

		if maximizing {
			if score > best {
				best = score
				pvl.Set(mv, childPVL)
			}
			if best >= beta {
				return best
			}
			alpha = max(alpha, best)
		} else {
			if score < best {
				best = score
				pvl.Set(mv, childPVL)
			}
			if best <= alpha {
				return best
			}
			beta = min(beta, best)
		}
		childPVL.Clear()
	}
	return best
}

func (e *Engine) rate() float64 {
	return float64(e.nodes) / (e.elapsedTime + 1).Seconds()
}

func max[T constraints.Ordered](x1, x2 T) T {
	if x1 > x2 {
		return x1
	}
	return x2
}

func min[T constraints.Ordered](x1, x2 T) T {
	if x1 < x2 {
		return x1
	}
	return x2
}

func formatScoreDebug(s int32, pvl PVLine) string {
	if s == ScoreInfinite {
		return fmt.Sprintf("#+%d", (pvl.Len()+1)/2)
	}
	if s == -ScoreInfinite {
		return fmt.Sprintf("#-%d", pvl.Len()/2)
	}
	if s > 0 {
		return fmt.Sprintf("+%.2f", float64(s)/scorePawn)
	}
	if s < 0 {
		return fmt.Sprintf("%.2f", float64(s)/scorePawn)
	}
	return "0"
}

func formatScoreUCI(s int32, pvl PVLine) string {
	if s == ScoreInfinite {
		return fmt.Sprintf("mate %d", (pvl.Len()+1)/2)
	}
	if s == -ScoreInfinite {
		return fmt.Sprintf("mate -%d", pvl.Len()/2)
	}
	return fmt.Sprintf("cp %d", s*100/scorePawn)
}

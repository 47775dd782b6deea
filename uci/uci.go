package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/daystram/ply/bench"
	"github.com/daystram/ply/board"
	"github.com/daystram/ply/engine"
)

var (
	EngineName   = "Ply"
	EngineAuthor = "Danny August Ramaputra"

	defaultOptions = options{
		debug:         false,
		depth:         engine.DefaultMaxDepth,
		parallelPerft: true,
	}
)

const maxDepth = 8

type options struct {
	debug         bool
	depth         uint8
	parallelPerft bool
}

type Interface struct {
	in  io.Reader
	out io.Writer

	board   *board.Board
	engine  *engine.Engine
	options options

	outMu         sync.Mutex
	mu            sync.Mutex
	engineRunning bool
	engineCancel  context.CancelFunc
	engineWG      sync.WaitGroup
}

func NewInterface(in io.Reader, out io.Writer) *Interface {
	return &Interface{
		in:      in,
		out:     out,
		options: defaultOptions,
	}
}

// Run reads commands until quit or the end of the input. A search still
// running at that point is stopped and waited for.
func (i *Interface) Run(ctx context.Context) error {
	i.reset(ctx)
	defer i.engineWG.Wait()

	scanner := bufio.NewScanner(i.in)
	for scanner.Scan() {
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "uci":
			i.commandUCI(ctx)
		case "ucinewgame":
			i.reset(ctx)
		case "isready":
			i.commandReady(ctx)
		case "setoption":
			i.commandSetOption(ctx, args[1:])
		case "position":
			i.commandPosition(ctx, args[1:])
		case "d":
			i.commandDraw(ctx)
		case "go":
			i.commandGo(ctx, args[1:])
		case "stop":
			i.commandStop(ctx)
		case "quit":
			i.commandStop(ctx)
			return nil
		default:
			i.println(fmt.Sprintf("info string unknown command %q", args[0]))
		}
	}
	i.commandStop(ctx)
	return scanner.Err()
}

func (i *Interface) commandUCI(_ context.Context) {
	i.println(fmt.Sprintf("id name %s", EngineName))
	i.println(fmt.Sprintf("id author %s", EngineAuthor))
	i.println(fmt.Sprintf("option name Debug type check default %v", defaultOptions.debug))
	i.println(fmt.Sprintf("option name Depth type spin default %d min 1 max %d", defaultOptions.depth, maxDepth))
	i.println("uciok")
}

func (i *Interface) commandReady(_ context.Context) {
	if i.board != nil && i.engine != nil {
		i.println("readyok")
	}
}

func (i *Interface) commandSetOption(_ context.Context, args []string) {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return
	}
	switch name, valueStr := strings.ToLower(args[1]), args[3]; name {
	case "debug":
		value, err := strconv.ParseBool(valueStr)
		if err != nil {
			return
		}
		i.options.debug = value
	case "depth":
		value, err := strconv.ParseUint(valueStr, 10, 8)
		if err != nil || value < 1 || value > maxDepth {
			return
		}
		i.options.depth = uint8(value)
	}
}

// commandPosition handles "startpos [moves ...]" and "fen <fen> [moves ...]".
// The current position is kept when any part is rejected.
func (i *Interface) commandPosition(_ context.Context, args []string) {
	if i.isRunning() || len(args) == 0 {
		return
	}

	var fen string
	var mvs []string
	switch args[0] {
	case "fen":
		end := len(args)
		for j, arg := range args {
			if arg == "moves" {
				end = j
				break
			}
		}
		fen = strings.Join(args[1:end], " ")
		args = args[end:]
	case "startpos":
		fen = board.DefaultStartingPositionFEN
		args = args[1:]
	default:
		return
	}
	if len(args) > 0 && args[0] == "moves" {
		mvs = args[1:]
	}

	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		i.println(fmt.Sprintf("info string %v", err))
		return
	}
	for _, mv := range mvs {
		if _, err := b.PlayUCI(mv); err != nil {
			i.println(fmt.Sprintf("info string %v", err))
			return
		}
	}
	i.board = b
}

func (i *Interface) commandDraw(_ context.Context) {
	i.println(i.board.Draw(false))
	i.println(fmt.Sprintf("Fen: %s", i.board.FEN()))
	i.println(i.board.DebugString())
}

func (i *Interface) commandGo(ctx context.Context, args []string) {
	depth := i.options.depth
	if len(args) > 0 {
		switch mode := args[0]; mode {
		case "perft":
			if len(args) != 2 {
				return
			}
			d, err := strconv.Atoi(args[1])
			if err != nil || d < 0 {
				return
			}

			out := make(chan string, 64)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for s := range out {
					i.println(s)
				}
			}()
			_, _ = bench.Perft(d, i.board.FEN(), i.options.parallelPerft, true, out)
			close(out)
			<-done
			return
		case "depth":
			if len(args) != 2 {
				return
			}
			d, err := strconv.ParseUint(args[1], 10, 8)
			if err != nil || d < 1 {
				return
			}
			depth = uint8(d)
		}
	}

	i.mu.Lock()
	if i.engineRunning {
		i.mu.Unlock()
		return
	}
	engineCtx, engineCancel := context.WithCancel(ctx)
	i.engineRunning = true
	i.engineCancel = engineCancel
	i.mu.Unlock()

	// the search owns a copy so later position commands cannot race with it
	b := i.board.Clone()
	cfg := &engine.SearchConfig{
		MaxDepth: depth,
		Debug:    i.options.debug,
	}
	i.engineWG.Add(1)
	go func() {
		defer i.engineWG.Done()

		bestMove, err := i.engine.Search(engineCtx, b, cfg)
		engineCancel()
		i.mu.Lock()
		i.engineRunning = false
		i.mu.Unlock()

		if err != nil {
			if !errors.Is(err, context.Canceled) {
				i.println(fmt.Sprintf("info string %v", err))
			}
			i.println("bestmove 0000")
			return
		}
		i.println(fmt.Sprintf("bestmove %s", bestMove.UCI()))
	}()
}

func (i *Interface) commandStop(_ context.Context) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.engineRunning {
		i.engineCancel()
	}
}

func (i *Interface) isRunning() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engineRunning
}

func (i *Interface) reset(ctx context.Context) {
	i.commandStop(ctx)
	i.engineWG.Wait()
	i.commandPosition(ctx, []string{"startpos"})
	i.engine = engine.NewEngine(&engine.EngineConfig{
		Logger: i.println,
	})
}

func (i *Interface) println(a ...any) {
	i.outMu.Lock()
	defer i.outMu.Unlock()
	fmt.Fprintln(i.out, a...)
}

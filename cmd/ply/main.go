package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"

	"github.com/daystram/ply/board"
)

const (
	exitOK = iota
	exitErr
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")

	playRun   = flag.Bool("play", false, "play against the engine in the console")
	playSide  = flag.String("play.side", "white", "side played by the human in play mode")
	playDepth = flag.Uint("play.depth", 3, "engine search depth in play mode")

	serveRun  = flag.Bool("serve", false, "serve the game API over HTTP")
	serveAddr = flag.String("serve.addr", "localhost:8080", "listen address in serve mode")

	perftRun      = flag.Bool("perft", false, "run perft mode")
	perftDepth    = flag.Int("perft.depth", 4, "perft depth in perft mode")
	perftParallel = flag.Bool("perft.parallel", false, "search root moves in parallel in perft mode")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	stepRun   = flag.Bool("step", false, "run step mode")
	stepCount = flag.Int("step.count", 5000, "maximum plies in step mode")
	stepSeed  = flag.Int64("step.seed", 1, "random seed in step mode")

	searchRun   = flag.Bool("search", false, "run search mode")
	searchDepth = flag.Uint("search.depth", 3, "search depth in search mode")
	searchSteps = flag.Int("search.steps", 50, "full moves in search mode")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := realMain(ctx, flag.Args())
	if err != nil {
		log.Println(err)
		stop()
		os.Exit(exitErr)
	}
	stop()
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

// realMain picks the mode from the flags. The positional arguments, when
// given, form the FEN of the starting position.
func realMain(ctx context.Context, args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	switch {
	case *playRun:
		side, err := parseSide(*playSide)
		if err != nil {
			return err
		}
		return play(ctx, os.Stdin, os.Stdout, fen, side, uint8(*playDepth))
	case *serveRun:
		return serve(ctx, *serveAddr)
	case *perftRun:
		return perft(*perftDepth, fen, *perftParallel)
	case *movegenRun:
		return movegen(fen, *movegenDraw)
	case *stepRun:
		return step(fen, *stepCount, *stepSeed)
	case *searchRun:
		return search(ctx, fen, *searchSteps, uint8(*searchDepth))
	default:
		return runUCI(ctx)
	}
}

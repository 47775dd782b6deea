package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/ply/board"
	"github.com/daystram/ply/engine"
	"github.com/daystram/ply/position"
)

var (
	colorPrompt = color.New(color.FgCyan, color.Bold)
	colorEngine = color.New(color.FgYellow)
	colorError  = color.New(color.FgRed)
	colorResult = color.New(color.FgGreen, color.Bold)

	errInvalidSide = errors.New("invalid side")
)

func parseSide(s string) (board.Side, error) {
	switch strings.ToLower(s) {
	case "white", "w":
		return board.SideWhite, nil
	case "black", "b":
		return board.SideBlack, nil
	default:
		return board.SideUnknown, fmt.Errorf("%w: %q", errInvalidSide, s)
	}
}

// parseHumanMove accepts "e2 e4", "e7 e8 q" or the long algebraic "e2e4".
func parseHumanMove(line string) (position.Pos, position.Pos, board.Piece, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		return board.ParseUCI(fields[0])
	case 2, 3:
		from, err := position.NewPosFromNotation(fields[0])
		if err != nil {
			return position.NullPos, position.NullPos, board.PieceUnknown, fmt.Errorf("%w: %v", board.ErrInvalidMove, err)
		}
		to, err := position.NewPosFromNotation(fields[1])
		if err != nil {
			return position.NullPos, position.NullPos, board.PieceUnknown, fmt.Errorf("%w: %v", board.ErrInvalidMove, err)
		}
		promote := board.PieceUnknown
		if len(fields) == 3 {
			promote, err = board.ParsePromotion(fields[2])
			if err != nil {
				return position.NullPos, position.NullPos, board.PieceUnknown, err
			}
		}
		return from, to, promote, nil
	default:
		return position.NullPos, position.NullPos, board.PieceUnknown, fmt.Errorf("%w: %q", board.ErrInvalidMove, line)
	}
}

// play runs a console game between a human reading from in and the engine.
// Rejected input is reported and asked for again. The game ends when it is no
// longer running or when in is exhausted.
func play(ctx context.Context, in io.Reader, out io.Writer, fen string, human board.Side, depth uint8) error {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	e := engine.NewEngine(&engine.EngineConfig{
		Logger: func(a ...any) {
			_, _ = colorEngine.Fprintln(out, a...)
		},
	})
	flip := human == board.SideBlack
	scanner := bufio.NewScanner(in)

	for b.State().IsRunning() {
		fmt.Fprintln(out, b.Draw(flip))
		if b.State().IsCheck() {
			fmt.Fprintf(out, "%s is in check\n", b.Turn())
		}

		if b.Turn() != human {
			mv, err := e.Search(ctx, b, &engine.SearchConfig{MaxDepth: depth})
			if err != nil {
				return err
			}
			b.Apply(mv)
			_, _ = colorEngine.Fprintf(out, "engine plays %s\n", mv)
			continue
		}

		_, _ = colorPrompt.Fprintf(out, "%s to move (e.g. e2 e4, e7 e8 q): ", b.Turn())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		from, to, promote, err := parseHumanMove(line)
		if err == nil {
			_, err = b.Play(from, to, promote)
		}
		if err != nil {
			_, _ = colorError.Fprintf(out, "%v\n", err)
		}
	}

	fmt.Fprintln(out, b.Draw(flip))
	_, _ = colorResult.Fprintln(out, result(b.State()))
	return nil
}

func result(st board.State) string {
	switch st {
	case board.StateCheckmateWhite:
		return "White is checkmated, Black wins"
	case board.StateCheckmateBlack:
		return "Black is checkmated, White wins"
	case board.StateStalemate:
		return "draw by stalemate"
	case board.StateFiftyMoveViolated:
		return "draw by the fifty-move rule"
	case board.StateThreefoldRepetition:
		return "draw by threefold repetition"
	case board.StateInsufficientMaterial:
		return "draw by insufficient material"
	default:
		return st.String()
	}
}

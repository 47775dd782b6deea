package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/daystram/ply/board"
	"github.com/daystram/ply/engine"
)

// search lets the engine play the side to move against random replies.
func search(ctx context.Context, fen string, steps int, depth uint8) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	start := b.Clone()
	e := engine.NewEngine(&engine.EngineConfig{})
	fmt.Println(b.Draw(false))
	fmt.Println(b.FEN())
	fmt.Println(b.DebugString())

	playingSide := b.Turn()
	getMove := func(b *board.Board) (board.Move, error) {
		if b.Turn() == playingSide {
			return e.Search(ctx, b, &engine.SearchConfig{MaxDepth: depth})
		}
		mvs := b.LegalMoves()
		return mvs[r.Intn(len(mvs))], nil
	}

	var history []board.Move
	for i := 0; i < 2*steps && b.State().IsRunning(); i++ {
		if b.Turn() == board.SideWhite {
			fmt.Printf("\n=============== Move %d\n", b.FullMoveClock())
		}
		mv, err := getMove(b)
		if err != nil {
			return err
		}
		b.Apply(mv)
		history = append(history, mv)

		fmt.Printf("\n>>> %s: %s\n", mv.IsTurn, mv)
		fmt.Println(b.FEN())
		fmt.Println(b.Draw(false))
	}
	log.Println("=============== game ended:", b.State())
	fmt.Println(b.FEN())
	fmt.Println(engine.DumpHistory(start, history))
	return nil
}

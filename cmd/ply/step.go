package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/daystram/ply/board"
)

// step plays random legal moves until the game ends, timing move generation,
// apply and state classification.
func step(fen string, count int, seed int64) error {
	log.Println("============ step")
	var (
		timesApply  []time.Duration
		timesRevert []time.Duration
		timesState  []time.Duration
	)
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < count; i++ {
		mvs := b.LegalMoves()
		if len(mvs) == 0 {
			break
		}
		mv := mvs[r.Intn(len(mvs))]

		// apply and revert once to time the undo path as well
		t1 := time.Now()
		u := b.Apply(mv)
		timesApply = append(timesApply, time.Since(t1))
		t1 = time.Now()
		b.Revert(u)
		timesRevert = append(timesRevert, time.Since(t1))
		b.Apply(mv)

		t1 = time.Now()
		st := b.State()
		timesState = append(timesState, time.Since(t1))

		fmt.Printf("\n===== [#%d] %s: %s\n", i/2+1, mv.IsTurn, mv)
		fmt.Println(b.Draw(false))
		fmt.Println(b.FEN())
		fmt.Println(b.DebugString())
		if !st.IsRunning() {
			break
		}
	}

	fmt.Println()
	fmt.Println(b.State())
	fmt.Println("apply: ", avg(timesApply))
	fmt.Println("revert:", avg(timesRevert))
	fmt.Println("state: ", avg(timesState))
	return nil
}

func avg(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	var s time.Duration
	for _, d := range ds {
		s += d
	}
	return s / time.Duration(len(ds))
}

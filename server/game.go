package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/daystram/ply/board"
	"github.com/daystram/ply/engine"
)

// Game is a game between a client and the engine. The engine answers every
// move the client plays, whichever side the client plays.
type Game struct {
	id     string
	depth  uint8
	engine *engine.Engine

	mu       sync.Mutex
	board    *board.Board
	history  []board.Move
	watchers map[*websocket.Conn]struct{}
}

// GameView is the JSON representation of a game.
type GameView struct {
	ID    string   `json:"id"`
	FEN   string   `json:"fen"`
	Turn  string   `json:"turn"`
	State string   `json:"state"`
	Moves []string `json:"moves"`
	Legal []string `json:"legal"`
}

func newGame(id string, b *board.Board, depth uint8) *Game {
	if depth == 0 {
		depth = engine.DefaultMaxDepth
	}
	return &Game{
		id:       id,
		depth:    depth,
		engine:   engine.NewEngine(&engine.EngineConfig{Logger: engineLogger(id)}),
		board:    b,
		watchers: make(map[*websocket.Conn]struct{}),
	}
}

func (g *Game) View() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

func (g *Game) view() GameView {
	v := GameView{
		ID:    g.id,
		FEN:   g.board.FEN(),
		Turn:  g.board.Turn().String(),
		State: g.board.State().String(),
		Moves: make([]string, 0, len(g.history)),
		Legal: make([]string, 0, len(g.board.LegalMoves())),
	}
	for _, mv := range g.history {
		v.Moves = append(v.Moves, mv.UCI())
	}
	if g.board.State().IsRunning() {
		for _, mv := range g.board.LegalMoves() {
			v.Legal = append(v.Legal, mv.UCI())
		}
	}
	return v
}

// Play applies the client's move and the engine's reply, then notifies the
// watchers. The board is left untouched when the move is rejected.
func (g *Game) Play(uci string) (GameView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if state := g.board.State(); !state.IsRunning() {
		return GameView{}, fmt.Errorf("%w: %s", ErrGameOver, state)
	}
	mv, err := g.board.PlayUCI(uci)
	if err != nil {
		return GameView{}, err
	}
	g.history = append(g.history, mv)
	log.Info("move played", "game", g.id, "move", mv.UCI())

	if g.board.State().IsRunning() {
		reply, err := g.engine.Search(context.Background(), g.board, &engine.SearchConfig{MaxDepth: g.depth})
		if err != nil && !errors.Is(err, engine.ErrNoMove) {
			return GameView{}, err
		}
		if err == nil {
			g.board.Apply(reply)
			g.history = append(g.history, reply)
			log.Info("engine replied", "game", g.id, "move", reply.UCI())
		}
	}

	view := g.view()
	g.broadcast(view)
	if state := g.board.State(); !state.IsRunning() {
		log.Info("game over", "game", g.id, "state", state.String())
	}
	return view, nil
}

func (g *Game) watch(conn *websocket.Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.watchers[conn] = struct{}{}
	if err := conn.WriteJSON(g.view()); err != nil {
		log.Warn("cannot send game to watcher", "game", g.id, "error", err)
	}
}

func (g *Game) unwatch(conn *websocket.Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.watchers, conn)
}

// broadcast sends the view to every watcher. Callers hold g.mu, which also
// keeps writes to a connection sequential.
func (g *Game) broadcast(view GameView) {
	for conn := range g.watchers {
		if err := conn.WriteJSON(view); err != nil {
			log.Warn("cannot send game to watcher", "game", g.id, "error", err)
		}
	}
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/daystram/ply/board"
)

var log = slog.Default().With("package", "server")

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")
)

const maxDepth = 6

// Server hosts games between a human client and the engine over HTTP. Every
// game owns its board; requests on one game are serialized by its lock.
type Server struct {
	router   *mux.Router
	handler  http.Handler
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	games  map[string]*Game
	nextID uint64
}

// NewServer returns the HTTP handler of the game API. Requests are logged to
// accessLog in Apache Combined Log Format.
func NewServer(accessLog io.Writer) *Server {
	s := &Server{
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		games: make(map[string]*Game),
	}
	s.router.HandleFunc("/games", s.handleCreateGame).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}", s.handleGetGame).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/moves", s.handlePlayMove).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}/ws", s.handleWatchGame)
	s.router.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	s.handler = handlers.LoggingHandler(accessLog, s.router)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

type createGameRequest struct {
	Depth uint8  `json:"depth"`
	FEN   string `json:"fen"`
}

type playMoveRequest struct {
	Move string `json:"move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}
	if req.Depth > maxDepth {
		writeError(w, http.StatusBadRequest, fmt.Errorf("depth must be at most %d", maxDepth))
		return
	}

	opts := []board.BoardOption{}
	if req.FEN != "" {
		opts = append(opts, board.WithFEN(req.FEN))
	}
	b, err := board.NewBoard(opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	s.nextID++
	id := strconv.FormatUint(s.nextID, 10)
	g := newGame(id, b, req.Depth)
	s.games[id] = g
	s.mu.Unlock()

	log.Info("game created", "game", id, "depth", g.depth, "fen", b.FEN())
	writeJSON(w, http.StatusCreated, g.View())
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.game(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

func (s *Server) handlePlayMove(w http.ResponseWriter, r *http.Request) {
	g, err := s.game(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var req playMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	view, err := g.Play(req.Move)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, view)
	case errors.Is(err, board.ErrInvalidMove):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, ErrGameOver):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, board.ErrNoPiece), errors.Is(err, board.ErrWrongSide), errors.Is(err, board.ErrIllegalMove):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		log.Error("unexpected error playing move", "game", g.id, "error", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) handleWatchGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.game(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "game", g.id, "error", err)
		return
	}
	log.Info("watcher connected", "game", g.id, "remote", conn.RemoteAddr().String())
	g.watch(conn)

	// watchers only listen; reading detects the close
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				g.unwatch(conn)
				_ = conn.Close()
				log.Info("watcher disconnected", "game", g.id)
				return
			}
		}
	}()
}

func (s *Server) game(id string) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, errors.New("not found"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("cannot write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// engineLogger forwards search summaries to the structured log.
func engineLogger(id string) func(...any) {
	return func(a ...any) {
		log.Debug(fmt.Sprint(a...), "game", id)
	}
}

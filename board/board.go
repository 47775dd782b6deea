package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/ply/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = Width * Height

	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

var (
	ErrInvalidFEN  = errors.New("invalid fen")
	ErrInvalidMove = errors.New("invalid move")
	ErrNoPiece     = errors.New("no piece on origin")
	ErrWrongSide   = errors.New("piece does not belong to side to move")
	ErrIllegalMove = errors.New("illegal move")
)

var backRank = [Width]Piece{
	PieceRook, PieceKnight, PieceBishop, PieceQueen, PieceKing, PieceBishop, PieceKnight, PieceRook,
}

type span struct {
	lo, hi int16
}

type Board struct {
	// grid data
	cells [TotalCells]Man
	kings [2 + 1]position.Pos

	// meta
	ply           int
	halfMoveClock int
	repetitions   map[Signature]int

	// cache
	moves []Move
	spans [TotalCells]span
}

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

// WithFEN sets up the board from a FEN string instead of the standard starting
// array. Meant for tests and analysis of ad hoc positions.
func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{}
	for _, f := range opts {
		f(cfg)
	}

	b := &Board{}
	if cfg.fen != "" {
		if err := UnmarshalFEN(cfg.fen, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	b.reset()
	b.setup()
	b.refresh()
	b.repetitions[b.Signature()]++
	return b, nil
}

func (b *Board) reset() {
	*b = Board{
		kings:       [2 + 1]position.Pos{position.NullPos, position.NullPos, position.NullPos},
		repetitions: make(map[Signature]int),
	}
}

func (b *Board) setup() {
	for col := position.Pos(0); col < Width; col++ {
		for _, s := range []Side{SideWhite, SideBlack} {
			b.put(position.NewPos(s.HomeRow(), col), NewMan(s, backRank[col]))
			b.put(position.NewPos(s.PawnRow(), col), NewMan(s, PiecePawn))
		}
	}
}

// put places a man on pos, keeping the King location cache in sync.
func (b *Board) put(pos position.Pos, m Man) {
	b.cells[pos] = m
	if m.Piece == PieceKing {
		b.kings[m.Side] = pos
	}
}

func (b *Board) Turn() Side {
	if b.ply%2 == 0 {
		return SideWhite
	}
	return SideBlack
}

func (b *Board) Ply() int {
	return b.ply
}

func (b *Board) HalfMoveClock() int {
	return b.halfMoveClock
}

func (b *Board) FullMoveClock() int {
	return b.ply/2 + 1
}

func (b *Board) At(pos position.Pos) Man {
	return b.cells[pos]
}

func (b *Board) King(s Side) position.Pos {
	return b.kings[s]
}

// Repetitions returns how many times the current position has occurred.
func (b *Board) Repetitions() int {
	return b.repetitions[b.Signature()]
}

// Material returns the total piece value of the side.
func (b *Board) Material(s Side) int {
	var total int
	for _, m := range b.cells {
		if m.Side == s {
			total += m.Piece.Value()
		}
	}
	return total
}

// LegalMoves returns every legal move of the side to move, grouped by origin
// in ascending square order. The slice is shared and must not be modified; it
// stays valid after the board changes.
func (b *Board) LegalMoves() []Move {
	return b.moves
}

// LegalMovesFrom returns the legal moves of the man on pos. It is empty for
// empty squares and for men of the side not to move.
func (b *Board) LegalMovesFrom(pos position.Pos) []Move {
	if !pos.Valid() {
		return nil
	}
	s := b.spans[pos]
	return b.moves[s.lo:s.hi:s.hi]
}

func (b *Board) HasLegalMoves() bool {
	return len(b.moves) != 0
}

// Clone returns a deep copy of the board. Search never clones; concurrent
// callers use it to get a board of their own.
func (b *Board) Clone() *Board {
	repetitions := make(map[Signature]int, len(b.repetitions))
	for sig, n := range b.repetitions {
		repetitions[sig] = n
	}
	bb := *b
	bb.repetitions = repetitions
	return &bb
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for row := position.Pos(0); row < Height; row++ {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %s |", row.NotationComponentY()))
		for col := position.Pos(0); col < Width; col++ {
			sym := b.cells[position.NewPos(row, col)].String()
			if sym == "" {
				sym = " "
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for col := position.Pos(0); col < Width; col++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", col.NotationComponentX()))
	}
	return builder.String()
}

var (
	colorCellLight = color.New(color.FgBlack, color.BgHiWhite)
	colorCellDark  = color.New(color.FgBlack, color.BgGreen)
	colorLabel     = color.New(color.Bold)
)

// Draw renders the board with coloured squares. With flip set, Black's back
// rank is drawn at the bottom.
func (b *Board) Draw(flip bool) string {
	rows := make([]position.Pos, 0, Height)
	for row := position.Pos(0); row < Height; row++ {
		rows = append(rows, row)
	}
	cols := make([]position.Pos, 0, Width)
	for col := position.Pos(0); col < Width; col++ {
		cols = append(cols, col)
	}
	if flip {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
			cols[i], cols[j] = cols[j], cols[i]
		}
	}

	builder := strings.Builder{}
	for _, row := range rows {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", row.NotationComponentY()))
		for _, col := range cols {
			pos := position.NewPos(row, col)
			m := b.cells[pos]
			sym := m.Piece.SymbolUnicode(m.Side, false)
			if m.IsEmpty() {
				sym = " "
			}
			cell := colorCellDark
			if pos.IsLight() {
				cell = colorCellLight
			}
			_, _ = builder.WriteString(cell.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for _, col := range cols {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", col.NotationComponentX()))
	}
	return builder.String()
}

func (b *Board) DebugString() string {
	return fmt.Sprintf("cast: %04b\nhalf: %4d\nfull: %4d\nreps: %4d\nstat: %s",
		b.CastleRights(), b.halfMoveClock, b.FullMoveClock(), b.Repetitions(), b.State())
}

package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar Pos = 8

	// NullPos marks the absence of a position.
	NullPos Pos = -1
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Pos is a square on the board, stored as row*8 + col. Row 0 is rank 8 (Black's
// back rank) and row 7 is rank 1 (White's back rank). Col 0 is file a.
type Pos int8

func NewPos(row, col Pos) Pos {
	return row*MaxComponentScalar + col
}

func NewPosFromNotation(n string) (Pos, error) {
	row, col, err := notationToRowCol(n)
	if err != nil {
		return NullPos, err
	}
	return NewPos(row, col), nil
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) Notation() string {
	if !p.Valid() {
		return ""
	}
	return p.Col().NotationComponentX() + p.Row().NotationComponentY()
}

func (p Pos) Row() Pos {
	return p / MaxComponentScalar
}

func (p Pos) Col() Pos {
	return p % MaxComponentScalar
}

func (p Pos) Valid() bool {
	return p >= 0 && p < MaxComponentScalar*MaxComponentScalar
}

// Offset returns the position shifted by the given row and col delta, and false
// when the result falls off the board.
func (p Pos) Offset(dRow, dCol Pos) (Pos, bool) {
	row, col := p.Row()+dRow, p.Col()+dCol
	if !InBounds(row, col) {
		return NullPos, false
	}
	return NewPos(row, col), true
}

// IsLight reports whether the square is a light square (a8 and h1 are light).
func (p Pos) IsLight() bool {
	return (p.Row()+p.Col())%2 == 0
}

func InBounds(row, col Pos) bool {
	return row >= 0 && row < MaxComponentScalar && col >= 0 && col < MaxComponentScalar
}

func notationToRowCol(n string) (Pos, Pos, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	col, err := notationToCol(n[0])
	if err != nil {
		return 0, 0, err
	}
	row, err := notationToRow(n[1])
	if err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

func notationToCol(x byte) (Pos, error) {
	if x < 'a' || x > 'h' {
		return 0, ErrInvalidNotation
	}
	return Pos(x - 'a'), nil
}

func notationToRow(y byte) (Pos, error) {
	if y < '1' || y > '8' {
		return 0, ErrInvalidNotation
	}
	return MaxComponentScalar - Pos(y-'0'), nil
}

// NotationComponentX returns the file letter for a column index.
func (p Pos) NotationComponentX() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

// NotationComponentY returns the rank digit for a row index.
func (p Pos) NotationComponentY() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('0' + MaxComponentScalar - p))
}

package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/daystram/ply/position"
)

// UnmarshalFEN sets up b from a FEN string. FEN does not carry has-moved flags,
// so they are inferred: a King or Rook is unmoved when a matching castling
// right is present, a pawn is unmoved on its starting row, and every other man
// is treated as moved.
func UnmarshalFEN(fen string, b *Board) error {
	if b == nil {
		return fmt.Errorf("invalid board")
	}
	b.reset()
	segments := strings.Split(fen, " ")
	if len(segments) != 6 {
		return fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for row := position.Pos(0); row < Height; row++ {
		ptr := -1
		for col := position.Pos(0); col < Width; col++ {
			ptr++
			if ptr >= len(rows[row]) {
				return fmt.Errorf("%w: missing cells", ErrInvalidFEN)
			}
			cell := rune(rows[row][ptr])
			s, p := pieceFromSymbol(cell)
			if p == PieceUnknown {
				if cell != '0' && unicode.IsDigit(cell) {
					skip := position.Pos(cell - '0')
					if col+skip-1 < Width {
						col += skip - 1
						continue
					}
					return fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				return fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			pos := position.NewPos(row, col)
			if p == PieceKing && b.kings[s] != position.NullPos {
				return fmt.Errorf("%w: more than one king", ErrInvalidFEN)
			}
			m := NewMan(s, p)
			m.HasMoved = p != PiecePawn || row != s.PawnRow()
			b.put(pos, m)
		}
		if ptr != len(rows[row])-1 {
			return fmt.Errorf("%w: extra cells", ErrInvalidFEN)
		}
	}
	if b.kings[SideWhite] == position.NullPos || b.kings[SideBlack] == position.NullPos {
		return fmt.Errorf("%w: king missing", ErrInvalidFEN)
	}

	var turn Side
	switch segments[1] {
	case "w":
		turn = SideWhite
	case "b":
		turn = SideBlack
	default:
		return fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if len(segments[2]) > 4 || len(segments[2]) == 0 {
		return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
crLoop:
	for i, e := range segments[2] {
		var d CastleDirection
		switch e {
		case 'K':
			d = CastleDirectionWhiteRight
		case 'k':
			d = CastleDirectionBlackRight
		case 'Q':
			d = CastleDirectionWhiteLeft
		case 'q':
			d = CastleDirectionBlackLeft
		default:
			if i == 0 && e == '-' {
				break crLoop
			}
			return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
		kingFrom, _ := d.KingHops()
		rookFrom, _ := d.RookHops()
		if !b.cells[kingFrom].Is(d.Side(), PieceKing) || !b.cells[rookFrom].Is(d.Side(), PieceRook) {
			return fmt.Errorf("%w: castling rights without king and rook in place", ErrInvalidFEN)
		}
		b.cells[kingFrom].HasMoved = false
		b.cells[rookFrom].HasMoved = false
	}

	halfMoveClock, err := strconv.ParseUint(segments[4], 10, 16)
	if err != nil {
		return fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	b.halfMoveClock = int(halfMoveClock)

	fullMoveClock, err := strconv.ParseUint(segments[5], 10, 16)
	if err != nil {
		return fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}
	b.ply = 0
	if fullMoveClock > 0 {
		b.ply = 2 * (int(fullMoveClock) - 1)
	}
	if turn == SideBlack {
		b.ply++
	}

	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return fmt.Errorf("%w: %v", fmt.Errorf("%w: invalid enpassant position", ErrInvalidFEN), err)
		}
		// the pawn that just advanced stands one row past the skipped square
		mover := turn.Opposite()
		victim, ok := pos.Offset(mover.Forward(), 0)
		if !ok || pos.Row() != mover.PawnRow()+mover.Forward() ||
			!b.cells[victim].Is(mover, PiecePawn) || !b.cells[pos].IsEmpty() {
			return fmt.Errorf("%w: invalid enpassant position", ErrInvalidFEN)
		}
		b.cells[victim].HasMoved = true
		b.cells[victim].DoubleStepPly = b.ply - 1
	}

	b.refresh()
	b.repetitions[b.Signature()]++
	return nil
}

func MarshalFEN(b *Board) (string, error) {
	builder := strings.Builder{}
	var skip uint8
	for row := position.Pos(0); row < Height; row++ {
		for col := position.Pos(0); col < Width; col++ {
			for skip = 0; col < Width && b.cells[position.NewPos(row, col)].IsEmpty(); col++ {
				skip++
			}
			if skip != 0 {
				_, _ = builder.WriteRune(rune(skip + '0'))
			}
			if col < Width {
				_, _ = builder.WriteString(b.cells[position.NewPos(row, col)].String())
			}
		}
		if row < Height-1 {
			_, _ = builder.WriteRune('/')
		}
	}

	if b.Turn() == SideWhite {
		_, _ = builder.WriteString(" w ")
	} else {
		_, _ = builder.WriteString(" b ")
	}

	castleRights := b.CastleRights()
	if castleRights == 0 {
		_, _ = builder.WriteRune('-')
	} else {
		if castleRights.IsAllowed(CastleDirectionWhiteRight) {
			_, _ = builder.WriteRune('K')
		}
		if castleRights.IsAllowed(CastleDirectionWhiteLeft) {
			_, _ = builder.WriteRune('Q')
		}
		if castleRights.IsAllowed(CastleDirectionBlackRight) {
			_, _ = builder.WriteRune('k')
		}
		if castleRights.IsAllowed(CastleDirectionBlackLeft) {
			_, _ = builder.WriteRune('q')
		}
	}
	_, _ = builder.WriteRune(' ')

	if pos := b.enPassantTarget(); pos == position.NullPos {
		_, _ = builder.WriteRune('-')
	} else {
		_, _ = builder.WriteString(pos.Notation())
	}

	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", b.halfMoveClock, b.FullMoveClock()))

	return builder.String(), nil
}

func (b *Board) FEN() string {
	fen, _ := MarshalFEN(b)
	return fen
}

// enPassantTarget returns the square skipped by a pawn that advanced two
// squares on the previous ply, whether or not it can be captured.
func (b *Board) enPassantTarget() position.Pos {
	mover := b.Turn().Opposite()
	row := mover.PawnRow() + 2*mover.Forward()
	for col := position.Pos(0); col < Width; col++ {
		pos := position.NewPos(row, col)
		if m := b.cells[pos]; m.Is(mover, PiecePawn) && m.DoubleStepPly != NoDoubleStep && m.DoubleStepPly == b.ply-1 {
			return position.NewPos(row-mover.Forward(), col)
		}
	}
	return position.NullPos
}

package board

type Piece uint8

const (
	PieceUnknown Piece = iota
	PiecePawn
	PieceBishop
	PieceKnight
	PieceRook
	PieceQueen
	PieceKing
)

// PawnPromoteCandidates represents the candidates for pawn promotion, in the
// order promotion moves are generated.
var PawnPromoteCandidates = []Piece{PieceQueen, PieceRook, PieceBishop, PieceKnight}

var materialPieceValue = [6 + 1]int{
	PiecePawn:   1,
	PieceKnight: 3,
	PieceBishop: 3,
	PieceRook:   5,
	PieceQueen:  9,
}

func (p Piece) String() string {
	return p.Name()
}

func (p Piece) Name() string {
	switch p {
	case PiecePawn:
		return "Pawn"
	case PieceBishop:
		return "Bishop"
	case PieceKnight:
		return "Knight"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return ""
	}
}

// Value returns the material value of the piece. The King is worth nothing.
func (p Piece) Value() int {
	return materialPieceValue[p]
}

func (p Piece) SymbolAlgebra(s Side) string {
	if p == PiecePawn {
		return ""
	}
	return p.SymbolFEN(s)
}

func (p Piece) SymbolFEN(s Side) string {
	var sym rune
	switch p {
	case PiecePawn:
		sym = 'P'
	case PieceBishop:
		sym = 'B'
	case PieceKnight:
		sym = 'N'
	case PieceRook:
		sym = 'R'
	case PieceQueen:
		sym = 'Q'
	case PieceKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

func (p Piece) SymbolUnicode(s Side, invert bool) string {
	if invert {
		s = s.Opposite()
	}
	switch s {
	case SideWhite:
		switch p {
		case PiecePawn:
			return "♙"
		case PieceBishop:
			return "♗"
		case PieceKnight:
			return "♘"
		case PieceRook:
			return "♖"
		case PieceQueen:
			return "♕"
		case PieceKing:
			return "♔"
		default:
			return ""
		}
	case SideBlack:
		switch p {
		case PiecePawn:
			return "♟"
		case PieceBishop:
			return "♝"
		case PieceKnight:
			return "♞"
		case PieceRook:
			return "♜"
		case PieceQueen:
			return "♛"
		case PieceKing:
			return "♚"
		default:
			return ""
		}
	default:
		return ""
	}
}

func pieceFromSymbol(sym rune) (Side, Piece) {
	switch sym {
	case 'P':
		return SideWhite, PiecePawn
	case 'B':
		return SideWhite, PieceBishop
	case 'N':
		return SideWhite, PieceKnight
	case 'R':
		return SideWhite, PieceRook
	case 'Q':
		return SideWhite, PieceQueen
	case 'K':
		return SideWhite, PieceKing
	case 'p':
		return SideBlack, PiecePawn
	case 'b':
		return SideBlack, PieceBishop
	case 'n':
		return SideBlack, PieceKnight
	case 'r':
		return SideBlack, PieceRook
	case 'q':
		return SideBlack, PieceQueen
	case 'k':
		return SideBlack, PieceKing
	default:
		return SideUnknown, PieceUnknown
	}
}

// NoDoubleStep is the double-step ply of a pawn that never advanced two squares.
const NoDoubleStep = -1

// Man is a piece standing on the board.
type Man struct {
	Side     Side
	Piece    Piece
	HasMoved bool

	// DoubleStepPly is the ply on which a pawn advanced two squares, or
	// NoDoubleStep. It opens the en passant window for the following ply only.
	DoubleStepPly int
}

func NewMan(s Side, p Piece) Man {
	return Man{
		Side:          s,
		Piece:         p,
		DoubleStepPly: NoDoubleStep,
	}
}

func (m Man) IsEmpty() bool {
	return m.Piece == PieceUnknown
}

func (m Man) Is(s Side, p Piece) bool {
	return m.Side == s && m.Piece == p
}

func (m Man) String() string {
	return m.Piece.SymbolFEN(m.Side)
}

package board

import (
	"encoding/hex"

	"github.com/daystram/ply/position"
)

// Signature is the canonical key of a position for repetition detection. It
// packs the man on every square into a nibble, followed by the castling rights
// and the side to move. Two positions share a signature exactly when placement,
// castling rights and side to move are equal; en passant availability is not
// part of it.
type Signature [TotalCells/2 + 2]byte

func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

func (b *Board) Signature() Signature {
	var sig Signature
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		sig[pos/2] |= nibble(b.cells[pos]) << (4 * (pos % 2))
	}
	sig[TotalCells/2] = byte(b.CastleRights())
	sig[TotalCells/2+1] = byte(b.Turn())
	return sig
}

// nibble encodes a man as 0 for empty, 1-6 for White and 7-12 for Black.
func nibble(m Man) byte {
	if m.IsEmpty() {
		return 0
	}
	return byte(m.Side-1)*6 + byte(m.Piece)
}

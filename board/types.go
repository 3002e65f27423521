package board

import "math/bits"

// PieceType is a colorless representation of a chess piece.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// String returns the lower-case FEN letter of the type.
func (pt PieceType) String() string {
	switch pt {
	case PieceTypePawn:
		return "p"
	case PieceTypeKnight:
		return "n"
	case PieceTypeBishop:
		return "b"
	case PieceTypeRook:
		return "r"
	case PieceTypeQueen:
		return "q"
	case PieceTypeKing:
		return "k"
	}
	return "?"
}

// Color is the side a piece belongs to.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Castling rights bit flags. The same layout is reused for the per-side
// "king or rook has moved" flags kept on the Position.
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ

	CastlingNone CastlingRights = 0
	CastlingAll                 = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

// castlingOf returns both castling flags belonging to a side.
func castlingOf(c Color) CastlingRights {
	if c == White {
		return CastlingWhiteK | CastlingWhiteQ
	}
	return CastlingBlackK | CastlingBlackQ
}

// Square represents a board position (0-63), a1=0 ... h8=63, square = rank*8 + file.
type Square int

const NoSquare Square = -1

// Named squares used by castling and tests.
const (
	A1 Square = 0
	B1 Square = 1
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7
	E2 Square = 12
	E3 Square = 20
	E4 Square = 28
	A8 Square = 56
	B8 Square = 57
	C8 Square = 58
	D8 Square = 59
	E8 Square = 60
	F8 Square = 61
	G8 Square = 62
	H8 Square = 63
)

// File returns the file index (0 = a).
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns the rank index (0 = rank 1).
func (sq Square) Rank() int { return int(sq) >> 3 }

// Bit returns a bitmask with only this square set.
func (sq Square) Bit() uint64 { return bb(sq) }

// String renders the square in file-rank notation ("e4"), or "-" for NoSquare.
func (sq Square) String() string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// SquareOf builds a square from file and rank indexes.
func SquareOf(file, rank int) Square { return Square(rank*8 + file) }

// Piece is a piece in the Position's piece list. Location holds exactly one
// bit while the piece is on the board and is zero once it has been captured;
// captured pieces keep their slot so that indexes stay stable.
type Piece struct {
	Type     PieceType
	Color    Color
	Location uint64
}

// Captured reports whether the piece has been taken off the board.
func (p Piece) Captured() bool { return p.Location == 0 }

// Square returns the square the piece stands on, or NoSquare if captured.
func (p Piece) Square() Square {
	if p.Location == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(p.Location))
}

// Letter returns the FEN character of the piece.
func (p Piece) Letter() byte {
	ch := p.Type.String()[0]
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// ==========================
// Bitboard helpers
// ==========================

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) Square {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(idx)
}

// lsb returns the index of the least significant set bit.
func lsb(mask uint64) Square { return Square(bits.TrailingZeros64(mask)) }

// msb returns the index of the most significant set bit.
func msb(mask uint64) Square { return Square(63 - bits.LeadingZeros64(mask)) }

const (
	bitboardFileA uint64 = 0x0101010101010101
	bitboardFileH uint64 = 0x8080808080808080
	bitboardRank1 uint64 = 0x00000000000000FF
	bitboardRank8 uint64 = 0xFF00000000000000
)

// FileMask returns the bitboard of all squares on the file.
func FileMask(file int) uint64 { return bitboardFileA << uint(file) }

// RankMask returns the bitboard of all squares on the rank.
func RankMask(rank int) uint64 { return bitboardRank1 << uint(rank*8) }

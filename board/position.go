package board

import (
	"fmt"
	"math/bits"
	"strings"
)

// MaxPieces bounds the piece list; a legal chess position never holds more.
const MaxPieces = 32

// emptySquare marks a square index entry that names no piece.
const emptySquare int8 = -1

// Position is the complete board state. It is a plain value: copying it with
// assignment yields an independent position, which is how search and
// legality filtering explore moves speculatively.
type Position struct {
	// Piece list. Captured pieces stay in place with a zero Location.
	pieces     [MaxPieces]Piece
	pieceCount int

	// Square index: piece list index per square, or emptySquare.
	squares [64]int8

	// Occupancy bitboards for each side
	occupancy [2]uint64

	// Side to move (which player's turn it is)
	sideToMove Color

	// Castling rights for both sides (bitmask using CastlingRights flags)
	castlingRights CastlingRights

	// Set once the king or the corresponding rook has left its home square.
	// A castle needs its bit clear here in addition to the rights bit.
	moved CastlingRights

	// En passant target square (if a pawn moved two steps last move, otherwise NoSquare)
	enPassantSquare Square

	// Halfmove clock (number of half-moves since last capture or pawn advance, for 50-move rule)
	halfmoveClock int

	// Fullmove number (starts at 1, incremented after Black's move)
	fullmoveNumber int

	// Legal destination bitmask per piece list index, valid when legalReady.
	legal      [MaxPieces]uint64
	legalReady bool
}

// newEmptyPosition returns a position with no pieces, White to move.
func newEmptyPosition() Position {
	p := Position{
		enPassantSquare: NoSquare,
		fullmoveNumber:  1,
	}
	for i := range p.squares {
		p.squares[i] = emptySquare
	}
	return p
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	return MustParseFEN(FENStartPos)
}

// EmptyPosition returns a board without pieces, White to move and no castling
// rights. Use SetPiece to populate it.
func EmptyPosition() *Position {
	p := newEmptyPosition()
	return &p
}

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// CastlingRights returns the current castling rights.
func (p *Position) CastlingRights() CastlingRights { return p.castlingRights }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (p *Position) EnPassantSquare() Square { return p.enPassantSquare }

// HalfmoveClock accessor for testing/consumers that want read-only access.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// Occupancy returns the occupancy bitboard for the given color.
func (p *Position) Occupancy(c Color) uint64 { return p.occupancy[c] }

// AllOccupancy returns a bitboard of all occupied squares.
func (p *Position) AllOccupancy() uint64 { return p.occupancy[White] | p.occupancy[Black] }

// PieceCount returns the length of the piece list, captured pieces included.
func (p *Position) PieceCount() int { return p.pieceCount }

// PieceByIndex returns the piece list entry at i.
func (p *Position) PieceByIndex(i int) Piece { return p.pieces[i] }

// PieceIndexAt returns the piece list index of the piece on sq, or -1.
func (p *Position) PieceIndexAt(sq Square) int { return int(p.squares[sq]) }

// PieceAt returns the piece on a square.
func (p *Position) PieceAt(sq Square) (Piece, bool) {
	idx := p.squares[sq]
	if idx == emptySquare {
		return Piece{}, false
	}
	return p.pieces[idx], true
}

// Bitboard returns the squares occupied by pieces of the given type and color.
func (p *Position) Bitboard(c Color, pt PieceType) uint64 {
	var mask uint64
	for i := 0; i < p.pieceCount; i++ {
		pc := p.pieces[i]
		if pc.Color == c && pc.Type == pt {
			mask |= pc.Location
		}
	}
	return mask
}

// KingSquare returns the square of c's king, or NoSquare when it is missing.
func (p *Position) KingSquare(c Color) Square {
	for i := 0; i < p.pieceCount; i++ {
		pc := p.pieces[i]
		if pc.Type == PieceTypeKing && pc.Color == c && pc.Location != 0 {
			return pc.Square()
		}
	}
	return NoSquare
}

// LegalTargets returns the cached legal destinations of the piece on sq. The
// cache is filled by Tables.LegalMoves and is empty on a fresh position.
func (p *Position) LegalTargets(sq Square) uint64 {
	idx := p.squares[sq]
	if idx == emptySquare || !p.legalReady {
		return 0
	}
	return p.legal[idx]
}

// SetPiece puts a piece on a square, capturing whatever stood there. It is a
// setup helper; it does not touch side to move, clocks or castling rights.
func (p *Position) SetPiece(sq Square, c Color, pt PieceType) {
	p.ClearSquare(sq)
	idx := p.pieceCount
	if idx == MaxPieces {
		// reuse the slot of a captured piece; nothing in the square index names it
		idx = -1
		for i := 0; i < p.pieceCount; i++ {
			if p.pieces[i].Location == 0 {
				idx = i
				break
			}
		}
		if idx < 0 {
			panic(fmt.Sprintf("board: piece list full, cannot place %v %v on %v", c, pt, sq))
		}
	} else {
		p.pieceCount++
	}
	p.pieces[idx] = Piece{Type: pt, Color: c, Location: bb(sq)}
	p.squares[sq] = int8(idx)
	p.occupancy[c] |= bb(sq)
	p.legalReady = false
}

// ClearSquare removes any piece from the given square. The piece keeps its
// list slot with a zero location.
func (p *Position) ClearSquare(sq Square) {
	idx := p.squares[sq]
	if idx == emptySquare {
		return
	}
	pc := &p.pieces[idx]
	p.occupancy[pc.Color] &^= pc.Location
	pc.Location = 0
	p.squares[sq] = emptySquare
	p.legalReady = false
}

// SetSideToMove updates the side to play. Use with care; normal move making toggles automatically.
func (p *Position) SetSideToMove(c Color) {
	p.sideToMove = c
	p.legalReady = false
}

// SetCastlingRights replaces the castling rights. Moved flags are left alone.
func (p *Position) SetCastlingRights(cr CastlingRights) {
	p.castlingRights = cr
	p.legalReady = false
}

// Validate checks internal consistency between the piece list, the square
// index and the occupancy bitboards. Returns true if consistent.
func (p *Position) Validate() bool {
	if p.occupancy[White]&p.occupancy[Black] != 0 {
		return false
	}
	var occ [2]uint64
	for i := 0; i < p.pieceCount; i++ {
		pc := p.pieces[i]
		if pc.Location == 0 {
			continue
		}
		if bits.OnesCount64(pc.Location) != 1 {
			return false
		}
		if p.squares[pc.Square()] != int8(i) {
			return false
		}
		occ[pc.Color] |= pc.Location
	}
	if occ != p.occupancy {
		return false
	}
	for sq := Square(0); sq < 64; sq++ {
		idx := p.squares[sq]
		if idx == emptySquare {
			continue
		}
		if int(idx) >= p.pieceCount || p.pieces[idx].Location != bb(sq) {
			return false
		}
	}
	return true
}

// Equal reports whether two positions describe the same game state. Piece
// list order and the legal move cache are ignored.
func (p *Position) Equal(o *Position) bool {
	if p.sideToMove != o.sideToMove || p.castlingRights != o.castlingRights ||
		p.enPassantSquare != o.enPassantSquare || p.occupancy != o.occupancy ||
		p.halfmoveClock != o.halfmoveClock || p.fullmoveNumber != o.fullmoveNumber {
		return false
	}
	for sq := Square(0); sq < 64; sq++ {
		a, okA := p.PieceAt(sq)
		b, okB := o.PieceAt(sq)
		if okA != okB || a.Type != b.Type || a.Color != b.Color {
			return false
		}
	}
	return true
}

// String draws the board from White's side, rank 8 first.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			if pc, ok := p.PieceAt(SquareOf(file, rank)); ok {
				sb.WriteByte(pc.Letter())
			} else {
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

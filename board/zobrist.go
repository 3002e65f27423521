package board

import "math/rand"

// DefaultZobristSeed is the fixed seed the engine's key tables are drawn from.
// The same seed always yields the same keys, so hashes are stable across runs.
const DefaultZobristSeed = 0xC0DE

// Zobrist holds the random keys for pieces, castling, en passant, and side
// to move. Build it once with NewZobrist; it is read-only afterwards.
type Zobrist struct {
	piece       [2][6][64]uint64 // by color, piece type - 1 and square
	castling    [16]uint64       // by castling rights state
	enPassant   [8]uint64        // by en-passant file
	blackToMove uint64
}

// NewZobrist draws the key tables from a deterministic generator seeded with seed.
func NewZobrist(seed int64) *Zobrist {
	rnd := rand.New(rand.NewSource(seed))
	z := &Zobrist{}

	// Piece keys
	for c := 0; c < 2; c++ {
		for pt := 0; pt < 6; pt++ {
			for sq := 0; sq < 64; sq++ {
				z.piece[c][pt][sq] = rnd.Uint64()
			}
		}
	}

	// Castling rights keys
	for cr := 0; cr < 16; cr++ {
		z.castling[cr] = rnd.Uint64()
	}

	// En passant file keys
	for f := 0; f < 8; f++ {
		z.enPassant[f] = rnd.Uint64()
	}

	// Side to move key
	z.blackToMove = rnd.Uint64()
	return z
}

// Hash calculates the Zobrist hash of the position from scratch.
func (z *Zobrist) Hash(p *Position) uint64 {
	var key uint64

	// Pieces
	for i := 0; i < p.pieceCount; i++ {
		pc := p.pieces[i]
		if pc.Location == 0 || pc.Type == PieceTypeNone {
			continue
		}
		key ^= z.piece[pc.Color][pc.Type-1][pc.Square()]
	}

	// Side to move (only XOR if Black to move)
	if p.sideToMove == Black {
		key ^= z.blackToMove
	}

	// Castling rights
	key ^= z.castling[p.castlingRights&CastlingAll]

	// En passant file (if any)
	if p.enPassantSquare != NoSquare {
		key ^= z.enPassant[p.enPassantSquare.File()]
	}

	return key
}

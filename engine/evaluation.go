package engine

import (
	"math/bits"

	"chesscore/board"
)

// Material values in centipawns, indexed by piece type
var PieceValue = [7]int32{
	board.PieceTypePawn:   100,
	board.PieceTypeKnight: 320,
	board.PieceTypeBishop: 330,
	board.PieceTypeRook:   500,
	board.PieceTypeQueen:  900,
	board.PieceTypeKing:   0,
}

// Piece-square tables from White's side, a1 first. Black reads them at 63-sq,
// so every row is left-right symmetric and the start position scores 0.
var PSQT = [7][64]int32{
	board.PieceTypePawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.PieceTypeKnight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	board.PieceTypeBishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	board.PieceTypeRook: {
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	// Rows are symmetrised left to right so neither wing is favoured.
	board.PieceTypeQueen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	board.PieceTypeKing: {
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

// Pawn structure and space terms
const (
	CentralPawnBonus     int32 = 20
	DoubledPawnPenalty   int32 = -20
	IsolatedPawnPenalty  int32 = -10
	SpaceBonus           int32 = 10
	CenterControlBonus   int32 = 15
	DevelopmentPawnBonus int32 = 10
)

const (
	centralSquares uint64 = 0x0000001818000000 // d4 e4 d5 e5
	whiteCenter    uint64 = 0x0000000018000000 // d4 e4
	blackCenter    uint64 = 0x0000001800000000 // d5 e5
	whiteSpace     uint64 = 0x0000FFFFFF000000 // ranks 4-6
	blackSpace     uint64 = 0x000000FFFFFF0000 // ranks 3-5
	whiteHomeE     uint64 = 1 << 12            // e2
	blackHomeE     uint64 = 1 << 52            // e7
	fileAMask      uint64 = 0x0101010101010101
)

// adjacentFiles[f] is the mask of the files next to f.
var adjacentFiles [8]uint64

func init() {
	for f := 0; f < 8; f++ {
		if f > 0 {
			adjacentFiles[f] |= fileAMask << uint(f-1)
		}
		if f < 7 {
			adjacentFiles[f] |= fileAMask << uint(f+1)
		}
	}
}

// Evaluation scores the position in centipawns from White's point of view.
// It is a pure function of the position.
func Evaluation(p *board.Position) (score int32) {
	var pawns [2]uint64
	for i := 0; i < p.PieceCount(); i++ {
		pc := p.PieceByIndex(i)
		if pc.Captured() {
			continue
		}
		sq := int(pc.Square())
		if pc.Color == board.White {
			score += PieceValue[pc.Type] + PSQT[pc.Type][sq]
		} else {
			score -= PieceValue[pc.Type] + PSQT[pc.Type][63-sq]
		}
		if pc.Type == board.PieceTypePawn {
			pawns[pc.Color] |= pc.Location
		}
	}
	score += pawnStructure(pawns[board.White]) - pawnStructure(pawns[board.Black])
	score += spaceAndCenter(pawns[board.White], pawns[board.Black])
	return score
}

// evaluateRelative returns the evaluation from the side to move's point of view.
func evaluateRelative(p *board.Position) int32 {
	if p.SideToMove() == board.Black {
		return -Evaluation(p)
	}
	return Evaluation(p)
}

// pawnStructure scores one side's pawns: central pawns, doubled and isolated files.
func pawnStructure(pawns uint64) (score int32) {
	score += int32(bits.OnesCount64(pawns&centralSquares)) * CentralPawnBonus
	for f := 0; f < 8; f++ {
		onFile := pawns & (fileAMask << uint(f))
		if onFile == 0 {
			continue
		}
		if n := bits.OnesCount64(onFile); n > 1 {
			score += DoubledPawnPenalty * int32(n-1)
		}
		if pawns&adjacentFiles[f] == 0 {
			score += IsolatedPawnPenalty
		}
	}
	return score
}

func spaceAndCenter(white, black uint64) (score int32) {
	score += int32(bits.OnesCount64(white&whiteSpace)) * SpaceBonus
	score -= int32(bits.OnesCount64(black&blackSpace)) * SpaceBonus

	score += int32(bits.OnesCount64(white&whiteCenter)) * CenterControlBonus
	score -= int32(bits.OnesCount64(black&blackCenter)) * CenterControlBonus

	// king-side center pawn off its home square
	if white&whiteHomeE == 0 {
		score += DevelopmentPawnBonus
	}
	if black&blackHomeE == 0 {
		score -= DevelopmentPawnBonus
	}
	return score
}

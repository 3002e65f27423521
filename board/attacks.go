package board

// Ray directions. Directions whose square index grows along the ray find their
// nearest blocker with the least significant bit, the others with the most
// significant bit.
const (
	North = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var rookDirections = [4]int{North, South, East, West}
var bishopDirections = [4]int{NorthEast, NorthWest, SouthEast, SouthWest}

// rank and file step of each direction
var directionSteps = [8][2]int{
	North:     {1, 0},
	South:     {-1, 0},
	East:      {0, 1},
	West:      {0, -1},
	NorthEast: {1, 1},
	NorthWest: {1, -1},
	SouthEast: {-1, 1},
	SouthWest: {-1, -1},
}

func increasing(dir int) bool {
	return dir == North || dir == East || dir == NorthEast || dir == NorthWest
}

// Tables holds the precomputed attack masks. A Tables value is built once with
// NewTables and only read afterwards, so one instance can be shared by any
// number of positions, searches and tests.
type Tables struct {
	knight [64]uint64
	king   [64]uint64

	// pawnPushes[color][sq] holds the forward squares (one step, plus the
	// double step from the starting rank); pawnCaptures the two diagonals.
	pawnPushes   [2][64]uint64
	pawnCaptures [2][64]uint64

	// Unblocked ray from each square in each direction, origin excluded.
	rays [8][64]uint64
}

// NewTables precomputes every attack mask.
func NewTables() *Tables {
	t := &Tables{}
	t.initLeapers()
	t.initPawns()
	t.initRays()
	return t
}

func onBoard(rank, file int) bool { return rank >= 0 && rank < 8 && file >= 0 && file < 8 }

// initLeapers precomputes attack bitboards for knights and kings.
func (t *Tables) initLeapers() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		for _, off := range knightOffsets {
			if rf, ff := rank+off[0], file+off[1]; onBoard(rf, ff) {
				t.knight[sq] |= uint64(1) << uint(rf*8+ff)
			}
		}
		for _, off := range kingOffsets {
			if rf, ff := rank+off[0], file+off[1]; onBoard(rf, ff) {
				t.king[sq] |= uint64(1) << uint(rf*8+ff)
			}
		}
	}
}

// initPawns splits pawn movement into forward pushes, which need empty targets,
// and diagonal captures, which need an enemy piece or the en-passant square.
func (t *Tables) initPawns() {
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		// pawns never stand on their own back rank or the promotion rank
		if rank == 0 || rank == 7 {
			continue
		}
		for _, c := range [2]Color{White, Black} {
			dir := 1
			startRank := 1
			if c == Black {
				dir = -1
				startRank = 6
			}
			r := rank + dir
			t.pawnPushes[c][sq] |= uint64(1) << uint(r*8+file)
			if rank == startRank {
				t.pawnPushes[c][sq] |= uint64(1) << uint((r+dir)*8+file)
			}
			if file > 0 {
				t.pawnCaptures[c][sq] |= uint64(1) << uint(r*8+file-1)
			}
			if file < 7 {
				t.pawnCaptures[c][sq] |= uint64(1) << uint(r*8+file+1)
			}
		}
	}
}

// initRays precomputes the eight unblocked rays of every square.
func (t *Tables) initRays() {
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		for dir, step := range directionSteps {
			var ray uint64
			for r, f := rank+step[0], file+step[1]; onBoard(r, f); r, f = r+step[0], f+step[1] {
				ray |= uint64(1) << uint(r*8+f)
			}
			t.rays[dir][sq] = ray
		}
	}
}

// KnightAttacks returns the knight attack mask of a square.
func (t *Tables) KnightAttacks(sq Square) uint64 { return t.knight[sq] }

// KingAttacks returns the king attack mask of a square.
func (t *Tables) KingAttacks(sq Square) uint64 { return t.king[sq] }

// PawnPushes returns the forward squares of a pawn of color c on sq, ignoring occupancy.
func (t *Tables) PawnPushes(c Color, sq Square) uint64 { return t.pawnPushes[c][sq] }

// PawnCaptures returns the diagonal capture squares of a pawn of color c on sq.
func (t *Tables) PawnCaptures(c Color, sq Square) uint64 { return t.pawnCaptures[c][sq] }

// Ray returns the unblocked ray from sq in the given direction.
func (t *Tables) Ray(dir int, sq Square) uint64 { return t.rays[dir][sq] }

// rayAttacks truncates a ray at its nearest blocker. The blocker itself stays
// in the set: whether it is a capture target or a friendly piece is decided by
// the caller masking off its own occupancy.
func (t *Tables) rayAttacks(dir int, sq Square, occ uint64) uint64 {
	ray := t.rays[dir][sq]
	blockers := ray & occ
	if blockers == 0 {
		return ray
	}
	var first Square
	if increasing(dir) {
		first = lsb(blockers)
	} else {
		first = msb(blockers)
	}
	return ray &^ t.rays[dir][first]
}

// RookAttacks returns rook attacks from sq given the occupancy.
func (t *Tables) RookAttacks(sq Square, occ uint64) uint64 {
	var attacks uint64
	for _, dir := range rookDirections {
		attacks |= t.rayAttacks(dir, sq, occ)
	}
	return attacks
}

// BishopAttacks returns bishop attacks from sq given the occupancy.
func (t *Tables) BishopAttacks(sq Square, occ uint64) uint64 {
	var attacks uint64
	for _, dir := range bishopDirections {
		attacks |= t.rayAttacks(dir, sq, occ)
	}
	return attacks
}

// QueenAttacks is the union of rook and bishop attacks.
func (t *Tables) QueenAttacks(sq Square, occ uint64) uint64 {
	return t.RookAttacks(sq, occ) | t.BishopAttacks(sq, occ)
}

// SliderTargets traces the rays of a slider and drops squares held by own
// pieces, leaving empty squares and enemy blockers.
func (t *Tables) SliderTargets(pt PieceType, sq Square, own, occ uint64) uint64 {
	switch pt {
	case PieceTypeBishop:
		return t.BishopAttacks(sq, occ) &^ own
	case PieceTypeRook:
		return t.RookAttacks(sq, occ) &^ own
	case PieceTypeQueen:
		return t.QueenAttacks(sq, occ) &^ own
	}
	return 0
}

// attacksFrom returns the squares a piece attacks. Pawns only attack diagonally.
func (t *Tables) attacksFrom(p Piece, occ uint64) uint64 {
	sq := p.Square()
	switch p.Type {
	case PieceTypePawn:
		return t.pawnCaptures[p.Color][sq]
	case PieceTypeKnight:
		return t.knight[sq]
	case PieceTypeBishop:
		return t.BishopAttacks(sq, occ)
	case PieceTypeRook:
		return t.RookAttacks(sq, occ)
	case PieceTypeQueen:
		return t.QueenAttacks(sq, occ)
	case PieceTypeKing:
		return t.king[sq]
	}
	return 0
}

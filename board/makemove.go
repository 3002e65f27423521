package board

import "fmt"

// castleRookSquares maps a castling right to the king destination and the
// rook's origin and destination.
var castleRookSquares = map[CastlingRights][3]Square{
	CastlingWhiteK: {G1, H1, F1},
	CastlingWhiteQ: {C1, A1, D1},
	CastlingBlackK: {G8, H8, F8},
	CastlingBlackQ: {C8, A8, D8},
}

// cornerRights maps a rook home square to the castling right it carries.
var cornerRights = map[Square]CastlingRights{
	H1: CastlingWhiteK,
	A1: CastlingWhiteQ,
	H8: CastlingBlackK,
	A8: CastlingBlackQ,
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Apply returns the position reached by playing m. The receiver is left
// untouched. The move is trusted: callers validate it against LegalMoves.
func (p *Position) Apply(m Move) Position {
	next := *p
	next.makeMove(m)
	return next
}

// relocate moves the piece at list index idx to the destination square,
// keeping occupancy and the square index in sync.
func (p *Position) relocate(idx int8, from, to Square) {
	pc := &p.pieces[idx]
	fromBB, toBB := bb(from), bb(to)
	pc.Location = toBB
	p.occupancy[pc.Color] = p.occupancy[pc.Color]&^fromBB | toBB
	p.squares[from] = emptySquare
	p.squares[to] = idx
}

// capture takes the piece on sq off the board. Its slot stays in the list.
func (p *Position) capture(sq Square) Piece {
	idx := p.squares[sq]
	pc := &p.pieces[idx]
	taken := *pc
	p.occupancy[pc.Color] &^= pc.Location
	pc.Location = 0
	p.squares[sq] = emptySquare

	// a rook taken on its corner takes that castle with it
	if taken.Type == PieceTypeRook {
		if right, ok := cornerRights[sq]; ok && castlingOf(taken.Color)&right != 0 {
			p.castlingRights &^= right
			p.moved |= right
		}
	}
	return taken
}

// makeMove applies m in place. Piece identity, captures, en passant and
// castling are resolved from the square index.
func (p *Position) makeMove(m Move) {
	from, to := m.From(), m.To()
	idx := p.squares[from]
	if idx == emptySquare {
		panic(fmt.Sprintf("board: move %v from empty square in %s", m, p.FEN()))
	}
	mover := p.pieces[idx]
	us := mover.Color
	if us != p.sideToMove {
		panic(fmt.Sprintf("board: move %v moves a %v piece with %v to move", m, us, p.sideToMove))
	}

	isCapture := false
	if target := p.squares[to]; target != emptySquare {
		if p.pieces[target].Color == us {
			panic(fmt.Sprintf("board: move %v captures own piece in %s", m, p.FEN()))
		}
		p.capture(to)
		isCapture = true
	} else if mover.Type == PieceTypePawn && to == p.enPassantSquare && from.File() != to.File() {
		// the captured pawn stands behind the target square
		victim := to - 8
		if us == Black {
			victim = to + 8
		}
		vi := p.squares[victim]
		if vi == emptySquare || p.pieces[vi].Type != PieceTypePawn || p.pieces[vi].Color == us {
			panic(fmt.Sprintf("board: en passant %v without an enemy pawn on %v in %s", m, victim, p.FEN()))
		}
		p.capture(victim)
		isCapture = true
	}

	p.relocate(idx, from, to)

	// Castling also moves the rook; a king travelling two files is a castle
	// even when the flag was dropped by the caller.
	if mover.Type == PieceTypeKing && (m.IsCastle() || abs(from.File()-to.File()) == 2) {
		for right, sqs := range castleRookSquares {
			if castlingOf(us)&right != 0 && sqs[0] == to {
				rookIdx := p.squares[sqs[1]]
				if rookIdx == emptySquare {
					panic(fmt.Sprintf("board: castle %v without rook on %v", m, sqs[1]))
				}
				p.relocate(rookIdx, sqs[1], sqs[2])
			}
		}
	}

	// En passant target after a double step, cleared otherwise
	p.enPassantSquare = NoSquare
	if mover.Type == PieceTypePawn && abs(int(to)-int(from)) == 16 {
		p.enPassantSquare = (from + to) / 2
	}

	switch mover.Type {
	case PieceTypeKing:
		p.castlingRights &^= castlingOf(us)
		p.moved |= castlingOf(us)
	case PieceTypeRook:
		if right, ok := cornerRights[from]; ok && castlingOf(us)&right != 0 {
			p.castlingRights &^= right
			p.moved |= right
		}
	}

	// Promotion is always to a queen
	if mover.Type == PieceTypePawn && (m.IsPromotion() || to.Rank() == 0 || to.Rank() == 7) {
		p.pieces[idx].Type = PieceTypeQueen
	}

	if mover.Type == PieceTypePawn || isCapture {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if us == Black {
		p.fullmoveNumber++
	}
	p.sideToMove = us.Other()
	p.legalReady = false
}

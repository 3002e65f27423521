package board

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned by ResolveMove for moves that are not legal in
// the position.
var ErrIllegalMove = errors.New("illegal move")

// castleSpec describes one castle: the squares that must be empty between
// king and rook, and the squares the king stands on or crosses, which must
// not be attacked.
type castleSpec struct {
	right    CastlingRights
	color    Color
	king     Square
	rook     Square
	target   Square
	between  uint64
	kingPath uint64
}

var castleSpecs = [4]castleSpec{
	{CastlingWhiteK, White, E1, H1, G1, bb(F1) | bb(G1), bb(E1) | bb(F1) | bb(G1)},
	{CastlingWhiteQ, White, E1, A1, C1, bb(B1) | bb(C1) | bb(D1), bb(E1) | bb(D1) | bb(C1)},
	{CastlingBlackK, Black, E8, H8, G8, bb(F8) | bb(G8), bb(E8) | bb(F8) | bb(G8)},
	{CastlingBlackQ, Black, E8, A8, C8, bb(B8) | bb(C8) | bb(D8), bb(E8) | bb(D8) | bb(C8)},
}

// pseudoTargets returns the pseudo-legal destinations of the piece at list
// index idx, castling excluded.
func (t *Tables) pseudoTargets(p *Position, idx int) uint64 {
	pc := p.pieces[idx]
	sq := pc.Square()
	own := p.occupancy[pc.Color]
	enemy := p.occupancy[pc.Color.Other()]
	occ := own | enemy

	switch pc.Type {
	case PieceTypePawn:
		var targets uint64
		step := sq + 8
		startRank, epRank := 1, 4
		if pc.Color == Black {
			step = sq - 8
			startRank, epRank = 6, 3
		}
		// the double step needs the single step square empty as well
		if occ&bb(step) == 0 {
			targets |= bb(step)
			if sq.Rank() == startRank {
				targets |= t.pawnPushes[pc.Color][sq] &^ bb(step) &^ occ
			}
		}
		targets |= t.pawnCaptures[pc.Color][sq] & enemy
		if p.enPassantSquare != NoSquare && sq.Rank() == epRank {
			targets |= t.pawnCaptures[pc.Color][sq] & bb(p.enPassantSquare)
		}
		return targets
	case PieceTypeKnight:
		return t.knight[sq] &^ own
	case PieceTypeKing:
		return t.king[sq] &^ own
	default:
		return t.SliderTargets(pc.Type, sq, own, occ)
	}
}

// IsSquareAttacked reports whether any piece of color by attacks sq. Each
// enemy piece's attack set is computed as in move generation, pawns using
// their diagonal masks only.
func (t *Tables) IsSquareAttacked(p *Position, sq Square, by Color) bool {
	target := bb(sq)
	occ := p.AllOccupancy()
	for i := 0; i < p.pieceCount; i++ {
		pc := p.pieces[i]
		if pc.Color != by || pc.Location == 0 {
			continue
		}
		if t.attacksFrom(pc, occ)&target != 0 {
			return true
		}
	}
	return false
}

// attackedMask reports whether any square of mask is attacked by color by.
func (t *Tables) attackedMask(p *Position, mask uint64, by Color) bool {
	occ := p.AllOccupancy()
	for i := 0; i < p.pieceCount; i++ {
		pc := p.pieces[i]
		if pc.Color != by || pc.Location == 0 {
			continue
		}
		if t.attacksFrom(pc, occ)&mask != 0 {
			return true
		}
	}
	return false
}

// KingInCheck reports whether the specified color's king is currently attacked.
func (t *Tables) KingInCheck(p *Position, c Color) bool {
	ks := p.KingSquare(c)
	if ks == NoSquare {
		return false
	}
	return t.IsSquareAttacked(p, ks, c.Other())
}

// InCheck reports whether the side to move is in check.
func (t *Tables) InCheck(p *Position) bool { return t.KingInCheck(p, p.sideToMove) }

// canCastle checks the four castling conditions: nothing moved, empty squares
// between king and rook, no attacked square on the king's path, and the
// rights bit.
func (t *Tables) canCastle(p *Position, cs castleSpec) bool {
	if p.moved&cs.right != 0 || p.castlingRights&cs.right == 0 {
		return false
	}
	king, okK := p.PieceAt(cs.king)
	rook, okR := p.PieceAt(cs.rook)
	if !okK || !okR || king.Type != PieceTypeKing || rook.Type != PieceTypeRook ||
		king.Color != cs.color || rook.Color != cs.color {
		return false
	}
	if p.AllOccupancy()&cs.between != 0 {
		return false
	}
	return !t.attackedMask(p, cs.kingPath, cs.color.Other())
}

// leavesKingSafe plays the move on a scratch copy and reports whether the
// mover's king is not attacked afterwards.
func (t *Tables) leavesKingSafe(p *Position, m Move) bool {
	scratch := *p
	scratch.makeMove(m)
	return !t.KingInCheck(&scratch, p.sideToMove)
}

// moveFor builds the move from sq to target for the piece pc, flagging promotions.
func moveFor(pc Piece, from, to Square) Move {
	if pc.Type == PieceTypePawn && (to.Rank() == 7 || to.Rank() == 0) {
		return NewMove(from, to, FlagPromotion)
	}
	return NewMove(from, to, 0)
}

// updateLegalMoves computes the legal destination bitmask of every piece of
// the side to move and stores it in the position's cache.
func (t *Tables) updateLegalMoves(p *Position) {
	us := p.sideToMove
	for i := 0; i < p.pieceCount; i++ {
		p.legal[i] = 0
		pc := p.pieces[i]
		if pc.Color != us || pc.Location == 0 {
			continue
		}
		from := pc.Square()
		targets := t.pseudoTargets(p, i)
		var legal uint64
		for targets != 0 {
			to := popLSB(&targets)
			if t.leavesKingSafe(p, moveFor(pc, from, to)) {
				legal |= bb(to)
			}
		}
		if pc.Type == PieceTypeKing {
			for _, cs := range castleSpecs {
				if cs.color == us && cs.king == from && t.canCastle(p, cs) &&
					t.leavesKingSafe(p, NewMove(from, cs.target, FlagCastle)) {
					legal |= bb(cs.target)
				}
			}
		}
		p.legal[i] = legal
	}
	p.legalReady = true
}

// LegalMoves generates all legal moves for the side to move. It also fills
// the position's per-piece legal move cache.
func (t *Tables) LegalMoves(p *Position) []Move {
	return t.LegalMovesInto(p, make([]Move, 0, 64))
}

// LegalMovesInto appends the legal moves to dst[:0] and returns it.
func (t *Tables) LegalMovesInto(p *Position, dst []Move) []Move {
	if !p.legalReady {
		t.updateLegalMoves(p)
	}
	moves := dst[:0]
	for i := 0; i < p.pieceCount; i++ {
		targets := p.legal[i]
		if targets == 0 {
			continue
		}
		pc := p.pieces[i]
		from := pc.Square()
		for targets != 0 {
			to := popLSB(&targets)
			if pc.Type == PieceTypeKing && abs(from.File()-to.File()) == 2 {
				moves = append(moves, NewMove(from, to, FlagCastle))
				continue
			}
			moves = append(moves, moveFor(pc, from, to))
		}
	}
	return moves
}

// IsCapture reports whether the move takes a piece, en passant included.
func (p *Position) IsCapture(m Move) bool {
	to := m.To()
	if p.occupancy[p.sideToMove.Other()]&bb(to) != 0 {
		return true
	}
	if to != p.enPassantSquare {
		return false
	}
	pc, ok := p.PieceAt(m.From())
	return ok && pc.Type == PieceTypePawn && m.From().File() != to.File()
}

// CapturedType returns the type of the piece m would capture, or PieceTypeNone.
func (p *Position) CapturedType(m Move) PieceType {
	if pc, ok := p.PieceAt(m.To()); ok {
		return pc.Type
	}
	if p.IsCapture(m) {
		return PieceTypePawn
	}
	return PieceTypeNone
}

// Captures returns the legal capturing moves of the side to move.
func (t *Tables) Captures(p *Position) []Move {
	moves := t.LegalMoves(p)
	captures := moves[:0]
	for _, m := range moves {
		if p.IsCapture(m) {
			captures = append(captures, m)
		}
	}
	return captures
}

// HasLegalMoves reports whether the side to move has any legal moves.
func (t *Tables) HasLegalMoves(p *Position) bool {
	if !p.legalReady {
		t.updateLegalMoves(p)
	}
	for i := 0; i < p.pieceCount; i++ {
		if p.legal[i] != 0 {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is checkmated.
func (t *Tables) IsCheckmate(p *Position) bool {
	return t.InCheck(p) && !t.HasLegalMoves(p)
}

// IsStalemate reports whether the side to move is stalemated.
func (t *Tables) IsStalemate(p *Position) bool {
	return !t.InCheck(p) && !t.HasLegalMoves(p)
}

// ValidateMove returns nil when m, flags included, is one of the legal moves
// of p.
func (t *Tables) ValidateMove(p *Position, m Move) error {
	resolved, err := t.ResolveMove(p, m)
	if err != nil {
		return err
	}
	if resolved != m {
		return fmt.Errorf("%w %v: flags do not match legal move %v", ErrIllegalMove, m, resolved)
	}
	return nil
}

// ResolveMove matches m against the legal moves of p by origin and
// destination and returns the legal move with its flags filled in. It is the
// check a presentation layer runs before applying a typed or clicked move.
func (t *Tables) ResolveMove(p *Position, m Move) (Move, error) {
	for _, legal := range t.LegalMoves(p) {
		if legal.From() == m.From() && legal.To() == m.To() {
			return legal, nil
		}
	}
	if pc, ok := p.PieceAt(m.From()); !ok {
		return NoMove, fmt.Errorf("%w %v: no piece on %v", ErrIllegalMove, m, m.From())
	} else if pc.Color != p.sideToMove {
		return NoMove, fmt.Errorf("%w %v: %v is not the side to move", ErrIllegalMove, m, pc.Color)
	}
	return NoMove, fmt.Errorf("%w %v", ErrIllegalMove, m)
}

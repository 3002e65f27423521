package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every ParseFEN error.
var ErrInvalidFEN = errors.New("invalid FEN")

// fenTables backs the attack check ParseFEN runs on the finished position.
var fenTables = sync.OnceValue(NewTables)

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

// pieceFromChar converts a FEN character to a piece type and color.
func pieceFromChar(ch rune) (PieceType, Color, bool) {
	color := White
	if ch >= 'a' && ch <= 'z' {
		color = Black
		ch -= 'a' - 'A'
	}
	switch ch {
	case 'P':
		return PieceTypePawn, color, true
	case 'N':
		return PieceTypeKnight, color, true
	case 'B':
		return PieceTypeBishop, color, true
	case 'R':
		return PieceTypeRook, color, true
	case 'Q':
		return PieceTypeQueen, color, true
	case 'K':
		return PieceTypeKing, color, true
	}
	return PieceTypeNone, White, false
}

// ParseSquare parses a square in file-rank notation ("e3").
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q: want file and rank", s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("invalid square %q: out of range", s)
	}
	return SquareOf(int(file-'a'), int(rank-'1')), nil
}

// ParseFEN parses a FEN string and returns a new Position set up to that
// position. The string must carry all six fields.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fenError("want 6 fields, got %d", len(fields))
	}

	p := newEmptyPosition()

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("want 8 ranks, got %d", len(ranks))
	}
	var kings [2]int
	for i, rankStr := range ranks {
		if len(rankStr) == 0 {
			return nil, fenError("empty rank description")
		}
		rank := 7 - i // FEN lists rank 8 first
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return nil, fenError("rank %d has more than 8 files", rank+1)
				}
				continue
			}
			pt, color, ok := pieceFromChar(ch)
			if !ok {
				return nil, fenError("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return nil, fenError("rank %d has more than 8 files", rank+1)
			}
			if p.pieceCount == MaxPieces {
				return nil, fenError("more than %d pieces", MaxPieces)
			}
			if pt == PieceTypePawn && (rank == 0 || rank == 7) {
				return nil, fenError("pawn on rank %d", rank+1)
			}
			if pt == PieceTypeKing {
				kings[color]++
			}
			p.SetPiece(SquareOf(file, rank), color, pt)
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d does not have 8 files", rank+1)
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, fenError("want one king per side, got %d white and %d black", kings[White], kings[Black])
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, fenError("side to move must be 'w' or 'b', got %q", fields[1])
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			var flag CastlingRights
			switch ch {
			case 'K':
				flag = CastlingWhiteK
			case 'Q':
				flag = CastlingWhiteQ
			case 'k':
				flag = CastlingBlackK
			case 'q':
				flag = CastlingBlackQ
			default:
				return nil, fenError("invalid castling rights character %q", ch)
			}
			if p.castlingRights&flag != 0 {
				return nil, fenError("repeated castling rights character %q", ch)
			}
			p.castlingRights |= flag
		}
	}
	p.moved = movedFromPlacement(&p)

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fenError("en passant: %v", err)
		}
		wantRank, victim := 5, sq-8
		if p.sideToMove == Black {
			wantRank, victim = 2, sq+8
		}
		if sq.Rank() != wantRank {
			return nil, fenError("en passant square %v not on rank %d for %v to move", sq, wantRank+1, p.sideToMove)
		}
		if _, occupied := p.PieceAt(sq); occupied {
			return nil, fenError("en passant square %v is occupied", sq)
		}
		if pc, ok := p.PieceAt(victim); !ok || pc.Type != PieceTypePawn || pc.Color != p.sideToMove.Other() {
			return nil, fenError("en passant square %v has no %v pawn on %v", sq, p.sideToMove.Other(), victim)
		}
		p.enPassantSquare = sq
	}

	// 5. Halfmove clock
	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, fenError("halfmove clock %q is not a non-negative number", fields[4])
	}
	p.halfmoveClock = halfmove

	// 6. Fullmove number
	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, fenError("fullmove number %q is not a positive number", fields[5])
	}
	p.fullmoveNumber = fullmove

	if fenTables().KingInCheck(&p, p.sideToMove.Other()) {
		return nil, fenError("%v is in check with %v to move", p.sideToMove.Other(), p.sideToMove)
	}
	return &p, nil
}

// MustParseFEN is ParseFEN for positions that are known to be valid; it
// panics on malformed input.
func MustParseFEN(fen string) *Position {
	p, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// movedFromPlacement treats a king or corner rook that is off its home square
// as having moved.
func movedFromPlacement(p *Position) CastlingRights {
	var moved CastlingRights
	home := func(sq Square, c Color, pt PieceType) bool {
		pc, ok := p.PieceAt(sq)
		return ok && pc.Color == c && pc.Type == pt
	}
	if !home(E1, White, PieceTypeKing) {
		moved |= castlingOf(White)
	}
	if !home(E8, Black, PieceTypeKing) {
		moved |= castlingOf(Black)
	}
	if !home(H1, White, PieceTypeRook) {
		moved |= CastlingWhiteK
	}
	if !home(A1, White, PieceTypeRook) {
		moved |= CastlingWhiteQ
	}
	if !home(H8, Black, PieceTypeRook) {
		moved |= CastlingBlackK
	}
	if !home(A8, Black, PieceTypeRook) {
		moved |= CastlingBlackQ
	}
	return moved
}

// FEN produces the FEN string representation of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			pc, ok := p.PieceAt(SquareOf(file, rank))
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 3. Castling rights
	if p.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.castlingRights&CastlingWhiteK != 0 {
			sb.WriteByte('K')
		}
		if p.castlingRights&CastlingWhiteQ != 0 {
			sb.WriteByte('Q')
		}
		if p.castlingRights&CastlingBlackK != 0 {
			sb.WriteByte('k')
		}
		if p.castlingRights&CastlingBlackQ != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')

	// 4. En passant square
	sb.WriteString(p.enPassantSquare.String())
	sb.WriteByte(' ')

	// 5. Halfmove clock
	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteByte(' ')

	// 6. Fullmove number
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))
	return sb.String()
}

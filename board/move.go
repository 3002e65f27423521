package board

import (
	"errors"
	"fmt"
	"strings"
)

// Move is the packed move encoding shared with the presentation layer:
//
//	bits 0-5   origin square
//	bits 6-11  destination square
//	bit  12    promotion (always to a queen)
//	bit  13    castle
//
// A move carries no piece information; it only makes sense against the
// position it was generated from.
type Move uint16

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift = 0 // 6 bits
	moveToShift   = 6 // 6 bits

	FlagPromotion Move = 1 << 12
	FlagCastle    Move = 1 << 13
)

// NoMove is the zero move; it never encodes a legal move since from == to.
const NoMove Move = 0

// ErrInvalidMove is returned for move notation that cannot be decoded.
var ErrInvalidMove = errors.New("invalid move")

// NewMove constructs a Move value from components.
func NewMove(from, to Square, flags Move) Move {
	return Move(from&0x3F)<<moveFromShift | Move(to&0x3F)<<moveToShift | flags&(FlagPromotion|FlagCastle)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((m >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((m >> moveToShift) & 0x3F) }

// IsPromotion reports whether the promotion flag is set.
func (m Move) IsPromotion() bool { return m&FlagPromotion != 0 }

// IsCastle reports whether the castle flag is set.
func (m Move) IsCastle() bool { return m&FlagCastle != 0 }

// String produces coordinate notation (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	str := m.From().String() + m.To().String()
	if m.IsPromotion() {
		str += "q"
	}
	return str
}

// ParseMove converts coordinate notation (e2e4, e7e8q) into a Move. Only
// queen promotions exist, so the suffix may only be "q". The castle flag is
// not set here; Tables.ResolveMove recovers flags from a position.
func ParseMove(movestr string) (Move, error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if len(movestr) < 4 || len(movestr) > 5 {
		return NoMove, fmt.Errorf("%w %q: want 4 or 5 characters", ErrInvalidMove, movestr)
	}
	from, err := ParseSquare(movestr[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w %q: %v", ErrInvalidMove, movestr, err)
	}
	to, err := ParseSquare(movestr[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w %q: %v", ErrInvalidMove, movestr, err)
	}
	if from == to {
		return NoMove, fmt.Errorf("%w %q: origin equals destination", ErrInvalidMove, movestr)
	}
	var flags Move
	if len(movestr) == 5 {
		if movestr[4] != 'q' {
			return NoMove, fmt.Errorf("%w %q: only queen promotion is supported", ErrInvalidMove, movestr)
		}
		flags |= FlagPromotion
	}
	return NewMove(from, to, flags), nil
}

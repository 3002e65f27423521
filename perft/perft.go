// Package perft cross-checks the board move generator against independent
// generators. Promotions only ever produce a queen in chesscore, so the
// oracles skip under-promotions to count the same tree.
package perft

import (
	"errors"
	"fmt"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chesscore/board"
)

// ErrMismatch is returned by Verify when an oracle disagrees.
var ErrMismatch = errors.New("perft mismatch")

// Oracle counts leaf nodes of a position independently of package board.
type Oracle interface {
	Name() string
	Perft(fen string, depth int) (uint64, error)
}

// Dragontooth counts with github.com/dylhunn/dragontoothmg.
type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontoothmg" }

func (Dragontooth) Perft(fen string, depth int) (uint64, error) {
	b := dragontoothmg.ParseFen(fen)
	return dragontoothPerft(&b, depth), nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		if promo := m.Promote(); promo != 0 && promo != dragontoothmg.Queen {
			continue
		}
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// Goose counts with the GooseEngineMG generator.
type Goose struct{}

func (Goose) Name() string { return "goosemg" }

func (Goose) Perft(fen string, depth int) (uint64, error) {
	b, err := gm.ParseFEN(fen)
	if err != nil {
		return 0, fmt.Errorf("goosemg: %w", err)
	}
	return goosePerft(b, depth), nil
}

func goosePerft(b *gm.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateMoves() {
		promo := m.PromotionPiece()
		if promo != gm.NoPiece && promo != gm.WhiteQueen && promo != gm.BlackQueen {
			continue
		}
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		nodes += goosePerft(b, depth-1)
		b.UnmakeMove(m, st)
	}
	return nodes
}

// DefaultOracles returns every available oracle.
func DefaultOracles() []Oracle {
	return []Oracle{Dragontooth{}, Goose{}}
}

// Verify runs perft on fen with package board and with each oracle and
// returns the board count. A disagreement wraps ErrMismatch.
func Verify(t *board.Tables, fen string, depth int, oracles ...Oracle) (uint64, error) {
	p, err := board.ParseFEN(fen)
	if err != nil {
		return 0, err
	}
	got := t.Perft(p, depth)
	for _, o := range oracles {
		want, err := o.Perft(fen, depth)
		if err != nil {
			return got, err
		}
		if got != want {
			return got, fmt.Errorf("%w: depth %d: board %d, %s %d", ErrMismatch, depth, got, o.Name(), want)
		}
	}
	return got, nil
}

// DivideLine is one root move with its subtree count.
type DivideLine struct {
	Move  board.Move
	Nodes uint64
}

// Divide returns the per-root-move counts sorted by move text, and the total.
func Divide(t *board.Tables, p *board.Position, depth int) ([]DivideLine, uint64) {
	div := t.PerftDivide(p, depth)
	byText := make(map[string]board.Move, len(div))
	for m := range div {
		byText[m.String()] = m
	}
	keys := maps.Keys(byText)
	slices.Sort(keys)

	lines := make([]DivideLine, 0, len(keys))
	var total uint64
	for _, k := range keys {
		m := byText[k]
		lines = append(lines, DivideLine{Move: m, Nodes: div[m]})
		total += div[m]
	}
	return lines, total
}

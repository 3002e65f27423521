package board_test

import (
	"testing"

	"chesscore/board"
)

func TestZobristDeterministic(t *testing.T) {
	a := board.NewZobrist(board.DefaultZobristSeed)
	b := board.NewZobrist(board.DefaultZobristSeed)
	p := board.NewPosition()
	if a.Hash(p) != b.Hash(p) {
		t.Fatalf("same seed produced different hashes")
	}
	if a.Hash(p) == board.NewZobrist(1).Hash(p) {
		t.Fatalf("different seeds produced the same hash")
	}
}

func TestZobristDistinguishesPositions(t *testing.T) {
	z := board.NewZobrist(board.DefaultZobristSeed)
	start := board.NewPosition()
	after := start.Apply(board.NewMove(board.E2, board.E4, 0))
	if z.Hash(start) == z.Hash(&after) {
		t.Fatalf("e2e4 did not change the hash")
	}

	// same placement, different side to move
	flipped := *start
	flipped.SetSideToMove(board.Black)
	if z.Hash(start) == z.Hash(&flipped) {
		t.Fatalf("side to move not hashed")
	}

	noRights := *start
	noRights.SetCastlingRights(board.CastlingNone)
	if z.Hash(start) == z.Hash(&noRights) {
		t.Fatalf("castling rights not hashed")
	}
}

func TestZobristTransposition(t *testing.T) {
	// Knights out and back: same placement and rights, clocks differ
	z := board.NewZobrist(board.DefaultZobristSeed)
	p := board.NewPosition()
	want := z.Hash(p)
	for _, s := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		m, err := board.ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		next := p.Apply(m)
		p = &next
	}
	if got := z.Hash(p); got != want {
		t.Fatalf("transposed hash %#x, want %#x", got, want)
	}
	if p.FullmoveNumber() != 3 || p.HalfmoveClock() != 4 {
		t.Fatalf("clocks = %d/%d, want 4/3", p.HalfmoveClock(), p.FullmoveNumber())
	}
}

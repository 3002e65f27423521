package engine

import (
	"testing"
	"unsafe"

	"chesscore/board"
)

func TestTTDeeperEntrySurvivesShallowStore(t *testing.T) {
	tt := NewTransTable(1)
	const hash = 0x123456789abcdef
	m2 := board.NewMove(board.E2, board.E4, 0)
	m4 := board.NewMove(board.E2, board.E3, 0)
	m1 := board.NewMove(board.B1, board.C1, 0)

	tt.Store(hash, 2, ExactFlag, 10, m2)
	tt.Store(hash, 4, BetaFlag, 20, m4)
	entry, ok := tt.Probe(hash)
	if !ok || entry.Depth != 4 || entry.Move != m4 {
		t.Fatalf("after depth 4 store got %+v, %v", entry, ok)
	}

	tt.Store(hash, 1, AlphaFlag, 30, m1)
	entry, ok = tt.Probe(hash)
	if !ok || entry.Depth != 4 || entry.Score != 20 || entry.Flag != BetaFlag {
		t.Fatalf("depth 1 store evicted the depth 4 entry: %+v", entry)
	}
}

func TestTTNewSearchDisplacesStaleEntries(t *testing.T) {
	tt := NewTransTable(1)
	const hash = 42
	tt.Store(hash, 6, ExactFlag, 10, board.NoMove)
	tt.NewSearch()
	tt.Store(hash, 1, ExactFlag, 99, board.NoMove)
	entry, ok := tt.Probe(hash)
	if !ok || entry.Depth != 1 || entry.Score != 99 || entry.Age != tt.Age() {
		t.Fatalf("stale entry was not replaced: %+v", entry)
	}
}

func TestTTProbeVerifiesFullHash(t *testing.T) {
	tt := NewTransTable(1)
	hash := uint64(7)
	collide := hash + uint64(tt.Len())
	tt.Store(hash, 3, ExactFlag, 50, board.NoMove)
	if _, ok := tt.Probe(collide); ok {
		t.Fatalf("probe returned an entry stored for a different hash")
	}
	if _, ok := tt.Probe(hash); !ok {
		t.Fatalf("probe missed the stored entry")
	}
	if _, ok := tt.Probe(99); ok {
		t.Fatalf("probe of an empty bucket succeeded")
	}
}

func TestTTSizing(t *testing.T) {
	small, large := NewTransTable(1), NewTransTable(4)
	if small.Len() == 0 || large.Len() < 4*small.Len() || large.Len() >= 4*(small.Len()+1) {
		t.Fatalf("sizes %d and %d do not scale with the budget", small.Len(), large.Len())
	}
	if bytes := uint64(small.Len()) * uint64(unsafe.Sizeof(TTEntry{})); bytes > 1024*1024 {
		t.Fatalf("1 MB table uses %d bytes", bytes)
	}
}

func TestTTClearAndHashfull(t *testing.T) {
	tt := NewTransTable(1)
	if tt.Hashfull() != 0 {
		t.Fatalf("fresh table hashfull = %d", tt.Hashfull())
	}
	for h := uint64(0); h < 500; h++ {
		tt.Store(h, 1, ExactFlag, 0, board.NoMove)
	}
	if got := tt.Hashfull(); got != 500 {
		t.Fatalf("hashfull = %d, want 500", got)
	}
	tt.Clear()
	if _, ok := tt.Probe(1); ok || tt.Hashfull() != 0 {
		t.Fatalf("clear left entries behind")
	}
}

func TestUseEntryBounds(t *testing.T) {
	cases := []struct {
		name        string
		entry       TTEntry
		depth       int8
		alpha, beta int32
		usable      bool
		score       int32
	}{
		{"exact", TTEntry{Depth: 3, Flag: ExactFlag, Score: 15}, 3, -100, 100, true, 15},
		{"too shallow", TTEntry{Depth: 2, Flag: ExactFlag, Score: 15}, 3, -100, 100, false, 0},
		{"alpha bound below window", TTEntry{Depth: 3, Flag: AlphaFlag, Score: -200}, 3, -100, 100, true, -100},
		{"alpha bound inside window", TTEntry{Depth: 3, Flag: AlphaFlag, Score: 0}, 3, -100, 100, false, 0},
		{"beta bound above window", TTEntry{Depth: 3, Flag: BetaFlag, Score: 200}, 3, -100, 100, true, 100},
		{"beta bound inside window", TTEntry{Depth: 3, Flag: BetaFlag, Score: 0}, 3, -100, 100, false, 0},
	}
	for _, c := range cases {
		usable, score := useEntry(c.entry, c.depth, c.alpha, c.beta, 0)
		if usable != c.usable || score != c.score {
			t.Errorf("%s: got (%v, %d) want (%v, %d)", c.name, usable, score, c.usable, c.score)
		}
	}
}

func TestMateScorePlyNormalisation(t *testing.T) {
	// mate found 3 plies below a node at ply 2: stored relative to the node
	score := MateScore - 5
	stored := scoreToTT(score, 2)
	if got := scoreFromTT(stored, 4); got != MateScore-7 {
		t.Fatalf("mate score read back at ply 4 = %d, want %d", got, MateScore-7)
	}
	if got := scoreFromTT(scoreToTT(-score, 2), 2); got != -score {
		t.Fatalf("round trip of a losing mate score = %d", got)
	}
	if scoreToTT(150, 9) != 150 {
		t.Fatalf("ordinary scores must not be adjusted")
	}
}

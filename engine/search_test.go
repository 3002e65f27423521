package engine

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"chesscore/board"
)

var testZobrist = board.NewZobrist(board.DefaultZobristSeed)

func newTestEngine(maxDepth int) *Engine {
	return New(testTables, testZobrist, Options{TTSize: 4, MaxDepth: maxDepth})
}

func TestFindBestMoveCheckmatedHasNoMove(t *testing.T) {
	p := board.MustParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	e := newTestEngine(4)
	if m, ok := e.FindBestMove(p, time.Second); ok || m != board.NoMove {
		t.Fatalf("expected no move in a mated position, got %v", m)
	}
	if !testTables.InCheck(p) {
		t.Fatalf("mated side should be in check")
	}
	if res := e.Search(p, time.Second); res.Score != -MateScore {
		t.Fatalf("mated score = %d", res.Score)
	}
}

func TestFindBestMoveStalemateHasNoMove(t *testing.T) {
	p := board.MustParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	e := newTestEngine(4)
	res := e.Search(p, time.Second)
	if res.Move != board.NoMove || res.Score != DrawScore {
		t.Fatalf("stalemate: got %v score %d", res.Move, res.Score)
	}
	if testTables.InCheck(p) {
		t.Fatalf("stalemated side must not be in check")
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	// Qxg7# with the c3 bishop guarding g7
	p := board.MustParseFEN("7k/6pp/6Q1/8/8/2B5/8/6K1 w - - 0 1")
	e := newTestEngine(4)
	res := e.Search(p, 5*time.Second)
	if res.Move.String() != "g6g7" {
		t.Fatalf("expected g6g7, got %v (score %d)", res.Move, res.Score)
	}
	if res.Score != MateScore-1 {
		t.Fatalf("mate in one scored %d, want %d", res.Score, MateScore-1)
	}
	next := p.Apply(res.Move)
	if !testTables.IsCheckmate(&next) {
		t.Fatalf("g6g7 does not mate")
	}
}

func TestSearchPrefersShorterMate(t *testing.T) {
	// Ra8# mates at once; other rook moves mate later at best
	p := board.MustParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	e := newTestEngine(4)
	res := e.Search(p, 5*time.Second)
	if res.Move.String() != "a1a8" || getMateOrCPScore(res.Score) != "mate 1" {
		t.Fatalf("got %v %s", res.Move, getMateOrCPScore(res.Score))
	}
}

func TestSearchCapturesHangingQueen(t *testing.T) {
	p := board.MustParseFEN("4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")
	e := newTestEngine(3)
	m, ok := e.FindBestMove(p, 5*time.Second)
	if !ok || m.String() != "d1d5" {
		t.Fatalf("expected d1d5, got %v", m)
	}
}

func TestSearchBlackAvoidsLosingQueen(t *testing.T) {
	// Black to move, queen attacked by a pawn: any sane move saves it
	p := board.MustParseFEN("4k3/8/8/3q4/4P3/8/8/4K3 b - - 0 1")
	e := newTestEngine(3)
	res := e.Search(p, 5*time.Second)
	next := p.Apply(res.Move)
	if pc, ok := next.PieceAt(board.SquareOf(3, 4)); ok && pc.Type == board.PieceTypeQueen {
		t.Fatalf("queen left en prise after %v", res.Move)
	}
	if res.Score < 0 {
		t.Fatalf("black is a queen up, score %d", res.Score)
	}
}

func TestSearchZeroBudgetStillReturnsLegalMove(t *testing.T) {
	p := board.NewPosition()
	e := newTestEngine(8)
	res := e.Search(p, 0)
	if res.Move == board.NoMove {
		t.Fatalf("expected a fallback move")
	}
	if err := testTables.ValidateMove(p, res.Move); err != nil {
		t.Fatalf("fallback move is illegal: %v", err)
	}
	if res.Depth != 0 {
		t.Fatalf("no depth can complete with a zero budget, got %d", res.Depth)
	}
}

func TestSearchRespectsBudget(t *testing.T) {
	p := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	e := New(testTables, testZobrist, Options{TTSize: 4})
	budget := time.Second
	res := e.Search(p, budget)
	if res.Elapsed > budget+time.Second {
		t.Fatalf("search overran its budget: %v", res.Elapsed)
	}
	if res.Move == board.NoMove || res.Depth < 1 {
		t.Fatalf("no completed depth: %+v", res)
	}
	if err := testTables.ValidateMove(p, res.Move); err != nil {
		t.Fatalf("best move is illegal: %v", err)
	}
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	p := board.MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := p.FEN()
	newTestEngine(2).Search(p, time.Second)
	if p.FEN() != before {
		t.Fatalf("search changed the position: %s", p.FEN())
	}
}

func TestSearchWritesInfoLines(t *testing.T) {
	var buf bytes.Buffer
	e := New(testTables, testZobrist, Options{TTSize: 1, MaxDepth: 2, Info: &buf, PrintCutStats: true})
	res := e.Search(board.NewPosition(), 5*time.Second)
	out := buf.String()
	if !strings.Contains(out, "info depth 1 score cp") || !strings.Contains(out, "info depth 2 ") {
		t.Fatalf("missing info lines:\n%s", out)
	}
	if !strings.Contains(out, "info string Cut statistics:") {
		t.Fatalf("missing cut statistics:\n%s", out)
	}
	if res.Depth != 2 || len(res.PV) == 0 || res.PV[0] != res.Move {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Nodes == 0 {
		t.Fatalf("no nodes counted")
	}
}

func TestGetMateOrCPScore(t *testing.T) {
	cases := map[int32]string{
		35:             "cp 35",
		-120:           "cp -120",
		MateScore - 1:  "mate 1",
		MateScore - 3:  "mate 2",
		-MateScore + 2: "mate -1",
		-MateScore + 4: "mate -2",
	}
	for score, want := range cases {
		if got := getMateOrCPScore(score); got != want {
			t.Errorf("score %d: got %q want %q", score, got, want)
		}
	}
}

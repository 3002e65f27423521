package board_test

import (
	"errors"
	"strings"
	"testing"

	"chesscore/board"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		board.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
	}
	for _, fen := range fens {
		p := mustParse(t, fen)
		if got := p.FEN(); got != fen {
			t.Fatalf("round trip:\n got %s\nwant %s", got, fen)
		}
		if !p.Validate() {
			t.Fatalf("%s: inconsistent position", fen)
		}
	}
}

func TestParseFENFields(t *testing.T) {
	p := mustParse(t, "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w Kq c6 0 2")
	if p.SideToMove() != board.White {
		t.Fatalf("side to move = %v", p.SideToMove())
	}
	if p.CastlingRights() != board.CastlingWhiteK|board.CastlingBlackQ {
		t.Fatalf("castling = %04b", p.CastlingRights())
	}
	if got := p.EnPassantSquare().String(); got != "c6" {
		t.Fatalf("ep square = %s", got)
	}
	if p.FullmoveNumber() != 2 || p.HalfmoveClock() != 0 {
		t.Fatalf("clocks = %d/%d", p.HalfmoveClock(), p.FullmoveNumber())
	}
	if pc, ok := p.PieceAt(board.E4); !ok || pc.Type != board.PieceTypePawn || pc.Color != board.White {
		t.Fatalf("e4 = %+v, %v", pc, ok)
	}
	if p.PieceCount() != 32 {
		t.Fatalf("piece count = %d", p.PieceCount())
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkx - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KKkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",
		"rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQ - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKKNR w KQkq - 0 1",
		"rnbqkbnP/pppppppp/8/8/8/8/PPPPPPP1/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		// en passant square with nothing to capture behind it
		"4k3/8/8/3P4/8/8/8/4K3 w - e6 0 1",
		// en passant square whose "victim" is one of our own pieces
		"4k3/8/8/3PN3/8/8/8/4K3 w - e6 0 1",
		// rank 3 target with White to move
		"4k3/8/8/8/4P3/8/8/4K3 w - e3 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - e3 0 1",
		// rank 6 target with Black to move
		"4k3/8/8/4p3/8/8/8/4K3 b - e6 0 1",
		// occupied target square
		"4k3/8/4n3/3Pp3/8/8/8/4K3 w - e6 0 1",
		// the side not to move is already in check
		"4k3/8/8/8/8/8/8/4RK2 w - - 0 1",
		"4k3/8/8/8/8/8/3p4/4K3 b - - 0 1",
	}
	for _, fen := range bad {
		if _, err := board.ParseFEN(fen); !errors.Is(err, board.ErrInvalidFEN) {
			t.Fatalf("ParseFEN(%q) err = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestParseFENEnPassantTarget(t *testing.T) {
	cases := []struct {
		fen  string
		want board.Square
	}{
		{"4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 2", board.SquareOf(4, 5)},
		{"4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1", board.E3},
	}
	for _, c := range cases {
		p := mustParse(t, c.fen)
		if got := p.EnPassantSquare(); got != c.want {
			t.Fatalf("%s: en passant square %v want %v", c.fen, got, c.want)
		}
		var captured bool
		for _, m := range tables.LegalMoves(p) {
			if m.To() != c.want || !p.IsCapture(m) {
				continue
			}
			next := p.Apply(m)
			if !next.Validate() {
				t.Fatalf("%s: %v left an invalid position", c.fen, m)
			}
			victim := c.want - 8
			if p.SideToMove() == board.Black {
				victim = c.want + 8
			}
			if _, ok := next.PieceAt(victim); ok {
				t.Fatalf("%s: %v left the pawn on %v", c.fen, m, victim)
			}
			captured = true
		}
		if !captured {
			t.Fatalf("%s: no en passant capture generated", c.fen)
		}
	}
}

func TestParseFENRejectsKingCapture(t *testing.T) {
	_, err := board.ParseFEN("4k3/8/8/8/8/8/8/4RK2 w - - 0 1")
	if !errors.Is(err, board.ErrInvalidFEN) || !strings.Contains(err.Error(), "in check") {
		t.Fatalf("got %v, want an in-check ErrInvalidFEN", err)
	}
	// the same placement with the checked side to move is fine
	p := mustParse(t, "4k3/8/8/8/8/8/8/4RK2 b - - 0 1")
	if !tables.InCheck(p) {
		t.Fatalf("black should be in check")
	}
}

func TestMustParseFENPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	board.MustParseFEN("not a fen")
}

func TestMovedFlagsFromPlacement(t *testing.T) {
	// rights claim kingside castling but the h1 rook is on g1
	p := mustParse(t, "4k3/8/8/8/8/8/8/4K1R1 w K - 0 1")
	for _, m := range tables.LegalMoves(p) {
		if m.IsCastle() {
			t.Fatalf("castled without a rook on h1: %v", m)
		}
	}
}

func TestPositionString(t *testing.T) {
	s := board.NewPosition().String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines:\n%s", len(lines), s)
	}
	if lines[0] != "8 r n b q k b n r " || lines[8] != "  a b c d e f g h" {
		t.Fatalf("unexpected board drawing:\n%s", s)
	}
}

func TestParseMove(t *testing.T) {
	m, err := board.ParseMove("e7e8q")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.From() != board.SquareOf(4, 6) || m.To() != board.E8 || !m.IsPromotion() || m.IsCastle() {
		t.Fatalf("decoded %v wrongly", m)
	}
	if m.String() != "e7e8q" {
		t.Fatalf("String() = %s", m.String())
	}
	for _, s := range []string{"", "e2", "e2e4e", "e7e8n", "i2e4", "e2e2", "e2e9"} {
		if _, err := board.ParseMove(s); !errors.Is(err, board.ErrInvalidMove) {
			t.Fatalf("ParseMove(%q) err = %v, want ErrInvalidMove", s, err)
		}
	}
}

func TestMoveEncoding(t *testing.T) {
	m := board.NewMove(board.E1, board.G1, board.FlagCastle)
	if uint16(m) != uint16(board.E1)|uint16(board.G1)<<6|1<<13 {
		t.Fatalf("encoding = %#x", uint16(m))
	}
	if board.NoMove.String() != "0000" {
		t.Fatalf("NoMove renders as %s", board.NoMove.String())
	}
}

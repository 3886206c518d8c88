package board

import (
	"strings"
	"testing"
)

func playUCI(t *testing.T, g *Game, moves string) {
	t.Helper()
	for _, m := range strings.Fields(moves) {
		if err := g.MoveUCI(m); err != nil {
			t.Fatalf("MoveUCI(%s): %v", m, err)
		}
	}
}

func TestCheckmate(t *testing.T) {
	g := mustParseFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")

	if !g.IsCheck() {
		t.Error("IsCheck() = false, want true")
	}
	if !g.IsCheckmate() {
		t.Error("IsCheckmate() = false, want true")
	}
	if g.IsStalemate() {
		t.Error("IsStalemate() = true in a mated position")
	}
	if len(g.LegalMoves()) != 0 {
		t.Errorf("mated side has moves: %v", moveSet(g.LegalMoves()))
	}
	if g.Status() != Checkmate || g.Result() != "0-1" || !g.IsGameOver() {
		t.Errorf("Status() = %v, Result() = %s", g.Status(), g.Result())
	}
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	playUCI(t, g, "f2f3 e7e5 g2g4 d8h4")

	if !g.IsCheckmate() {
		t.Fatal("IsCheckmate() = false after fool's mate")
	}
	history := g.History()
	if got := history[len(history)-1].SAN; got != "Qh4#" {
		t.Errorf("last SAN = %q, want Qh4#", got)
	}
}

func TestNotCheckmate(t *testing.T) {
	// The king can capture the checking rook.
	g := mustParseFEN(t, "6Rk/8/8/8/8/8/8/K7 b - - 0 1")

	if !g.IsCheck() {
		t.Error("IsCheck() = false, want true")
	}
	if g.IsCheckmate() {
		t.Error("IsCheckmate() = true, want false")
	}
	if g.Status() != Active || g.Result() != "*" {
		t.Errorf("Status() = %v, Result() = %s", g.Status(), g.Result())
	}
}

func TestBackRankMate(t *testing.T) {
	g := mustParseFEN(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if !g.IsCheckmate() {
		t.Error("IsCheckmate() = false, want true")
	}
	if g.Result() != "1-0" {
		t.Errorf("Result() = %s, want 1-0", g.Result())
	}
}

func TestStalemate(t *testing.T) {
	fens := []string{
		"8/8/6k1/8/8/8/5q2/7K w - - 0 1",
		"3k4/1pp2pp1/1b4r1/pP2p3/P3P3/6Nb/5P1P/3qB1KR w - - 0 1",
		"8/8/8/p1K5/k1P1P3/PpP5/1P6/8 b - - 0 1",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			g := mustParseFEN(t, fen)
			if !g.IsStalemate() {
				t.Errorf("IsStalemate() = false, moves %v", moveSet(g.LegalMoves()))
			}
			if g.IsCheckmate() {
				t.Error("IsCheckmate() = true in stalemate")
			}
			if !g.IsDraw() || g.Status() != Stalemate || g.Result() != "1/2-1/2" {
				t.Errorf("IsDraw() = %v, Status() = %v", g.IsDraw(), g.Status())
			}
		})
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"8/k7/8/6K1/8/8/8/8 w - - 0 1", true},
		{"5b2/k7/8/6K1/8/2B5/8/8 w - - 0 1", true},
		{"8/k7/8/3n2K1/8/5N2/8/8 w - - 0 1", true},
		{"8/k3n3/8/6K1/8/2B5/8/8 w - - 0 1", true},
		{"8/k7/4N3/6K1/8/5N2/8/8 w - - 0 1", true},
		{StartFEN, false},
		{"8/k7/8/4B1K1/4B3/8/8/8 w - - 0 1", false},
		{"8/k7/3n4/6K1/2n1B3/8/8/8 w - - 0 1", false},
		{"6N1/k7/3n4/6K1/2n5/8/8/8 w - - 0 1", false},
		{"5r2/k7/8/6K1/8/8/8/8 w - - 0 1", false},
		{"5Q2/k7/8/6K1/8/8/8/8 w - - 0 1", false},
		{"1k6/3p4/1p6/6K1/5P2/4P3/8/8 w - - 0 1", false},
	}

	for _, tc := range tests {
		t.Run(tc.fen, func(t *testing.T) {
			g := mustParseFEN(t, tc.fen)
			if got := g.IsInsufficientMaterial(); got != tc.want {
				t.Errorf("IsInsufficientMaterial() = %v, want %v", got, tc.want)
			}
			if tc.want && g.Status() != InsufficientMaterial {
				t.Errorf("Status() = %v, want insufficient material", g.Status())
			}
		})
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := mustParseFEN(t, "1kr5/1b3R2/8/4Pn1p/R7/2P1B1p1/1KP4r/8 w - - 0 1")
	moves := strings.Fields("e3a7 b8a8 a7g1 a8b8 g1a7 b8a8 a7g1 a8b8 g1a7")

	for i, m := range moves {
		if g.IsThreefoldRepetition() {
			t.Fatalf("threefold repetition reported before ply %d", i+1)
		}
		if err := g.MoveUCI(m); err != nil {
			t.Fatalf("MoveUCI(%s): %v", m, err)
		}
	}

	if !g.IsThreefoldRepetition() {
		t.Errorf("IsThreefoldRepetition() = false, count %d", g.RepetitionCount())
	}
	if !g.IsDraw() || g.Status() != ThreefoldRepetition {
		t.Errorf("Status() = %v, want threefold repetition", g.Status())
	}
}

func TestBongcloudRepetition(t *testing.T) {
	g := mustParseFEN(t, "rnbq1bnr/ppppkppp/8/4p3/4P3/8/PPPPKPPP/RNBQ1BNR w - - 2 3")

	playUCI(t, g, "e2e1 e7e8 e1e2 e8e7")
	if g.RepetitionCount() != 2 {
		t.Fatalf("RepetitionCount() = %d, want 2", g.RepetitionCount())
	}
	if g.IsThreefoldRepetition() {
		t.Fatal("threefold repetition after one cycle")
	}

	playUCI(t, g, "e2e1 e7e8 e1e2 e8e7")
	if !g.IsThreefoldRepetition() {
		t.Errorf("IsThreefoldRepetition() = false, count %d", g.RepetitionCount())
	}
}

func TestFiftyMoveRule(t *testing.T) {
	g := mustParseFEN(t, "7k/8/r7/p1p1p1p1/P1P1P1P1/R7/8/7K w - - 0 1")
	moves := strings.Fields(`
		h1h2 h8h7 h2h3 h7h6 h3g3 h6g6 g3g2 g6g7 g2g1 g7g8
		g1f1 g8f8 f1f2 f8f7 f2f3 f7f6 f3e3 f6e6 e3e2 e6e7
		e2e1 e7e8 e1d1 e8d8 d1d2 d8d7 d2d3 d7d6 d3c3 d6c6
		c3c2 c6c7 c2c1 c7c8 c1b1 c8b8 b1b2 b8b7 b2b3 b7b6
		a3a1 b6b7 b3b2 b7b8 b2b1 b8c8 b1c2 c8d7 c2c1 d7c8
		c1d1 c8d8 d1e1 d8e8 e1f1 e8f8 f1g1 f8g8 g1h1 g8h8
		h1h2 a6a8 h2h3 h8h7 h3g3 h7g6 g3f3 g6f6 f3e3 f6e6
		e3d3 e6d6 d3c3 d6c6 c3b3 c6b6 b3b2 b6b7 b2b1 b7b8
		a1a2 b8c8 b1c1 c8d8 c1d1 d8e8 d1e1 a8b8 e1f1 e8f7
		f1f2 f7f6 f2f3 f6g7 f3g3 g7g6 g3h3 g6h6 h3h2 h6h7`)

	for i, m := range moves {
		if g.IsFiftyMoveRule() {
			t.Fatalf("fifty-move rule reported before ply %d", i+1)
		}
		if err := g.MoveUCI(m); err != nil {
			t.Fatalf("ply %d MoveUCI(%s): %v", i+1, m, err)
		}
	}

	if g.HalfMoveClock() != 100 {
		t.Errorf("HalfMoveClock() = %d, want 100", g.HalfMoveClock())
	}
	if !g.IsFiftyMoveRule() || !g.IsDraw() {
		t.Error("IsFiftyMoveRule() = false after 100 quiet plies")
	}
}

func TestHalfMoveClockReset(t *testing.T) {
	g := NewGame()
	playUCI(t, g, "g1f3 b8c6")
	if g.HalfMoveClock() != 2 {
		t.Errorf("HalfMoveClock() = %d, want 2", g.HalfMoveClock())
	}
	playUCI(t, g, "e2e4")
	if g.HalfMoveClock() != 0 {
		t.Errorf("HalfMoveClock() = %d after pawn move, want 0", g.HalfMoveClock())
	}
	if g.FullMoveNumber() != 2 {
		t.Errorf("FullMoveNumber() = %d, want 2", g.FullMoveNumber())
	}
	if g.EnPassant() != E3 {
		t.Errorf("EnPassant() = %v, want e3", g.EnPassant())
	}
}

package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/storage"
)

func init() {
	color.NoColor = true
}

// run feeds script to a fresh shell and returns its output.
func run(t *testing.T, store *storage.Storage, script string) (string, *Shell) {
	t.Helper()
	var out bytes.Buffer
	sh := New(strings.NewReader(script), &out, store, zerolog.Nop())
	if err := sh.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String(), sh
}

func openStore(t *testing.T) *storage.Storage {
	t.Helper()
	st, err := storage.Open(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestShellMoves(t *testing.T) {
	out, sh := run(t, nil, `
move e2e4
move e5
move Nf3
fen
`)

	for _, want := range []string{
		"e2e4 e4\n",
		"e7e5 e5\n",
		"g1f3 Nf3\n",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if len(sh.Game().History()) != 3 {
		t.Errorf("len(History()) = %d, want 3", len(sh.Game().History()))
	}
}

func TestShellPosition(t *testing.T) {
	out, sh := run(t, nil, `
position fen 7k/8/6K1/8/8/8/8/R7 w - - 0 1 moves a1a8
status
`)

	if !strings.Contains(out, "status: checkmate") || !strings.Contains(out, "result: 1-0") {
		t.Errorf("unexpected status output:\n%s", out)
	}
	if !sh.Game().IsCheckmate() {
		t.Error("game is not checkmate")
	}

	out, sh = run(t, nil, "position startpos moves e2e4 e7e5\n")
	if got := sh.Game().ToFEN(); got != "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2" {
		t.Errorf("ToFEN() = %q\n%s", got, out)
	}
}

func TestShellErrorsKeepRunning(t *testing.T) {
	out, sh := run(t, nil, `
move e2e5
position fen 8/8/8/8/8/8/8/8 w - - 0 1
attacked z9 w
bogus
move e2e4
`)

	if n := strings.Count(out, "error: "); n != 4 {
		t.Errorf("got %d errors, want 4:\n%s", n, out)
	}
	if !strings.Contains(out, "illegal move e2e5") {
		t.Errorf("missing illegal move error:\n%s", out)
	}
	if !strings.Contains(out, "missing white king") {
		t.Errorf("missing FEN error:\n%s", out)
	}
	if len(sh.Game().History()) != 1 {
		t.Error("shell stopped after an error")
	}
}

func TestShellQueries(t *testing.T) {
	out, _ := run(t, nil, `
attacked e4 w
attacked e4 b
piece e1
piece e4
moves g1
fen trim
`)

	want := "true\nfalse\nWhite King (dark square)\nempty (light square)\ng1f3 g1h3\n" +
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestShellUndoRedo(t *testing.T) {
	out, sh := run(t, nil, `
move e2e4
move e7e5
undo
fen
history
redo
redo
undo
undo
undo
`)

	if !strings.Contains(out, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1\n") {
		t.Errorf("undo did not show the rewound position:\n%s", out)
	}
	if !strings.Contains(out, "1. e4\n1... e5 (undone)\n") {
		t.Errorf("history output wrong:\n%s", out)
	}
	if n := strings.Count(out, "error: "); n != 2 {
		t.Errorf("got %d errors, want 2 (redo and undo at the ends):\n%s", n, out)
	}
	if sh.Game().Rewound() != 2 {
		t.Errorf("Rewound() = %d, want 2", sh.Game().Rewound())
	}
}

func TestShellPerft(t *testing.T) {
	out, _ := run(t, nil, "perft 2\n")
	if !strings.Contains(out, "Nodes: 400\n") {
		t.Errorf("perft output:\n%s", out)
	}
}

func TestShellQuit(t *testing.T) {
	_, sh := run(t, nil, "move e2e4\nquit\nmove e7e5\n")
	if len(sh.Game().History()) != 1 {
		t.Error("commands after quit were executed")
	}
}

func TestShellArchive(t *testing.T) {
	st := openStore(t)

	out, _ := run(t, st, `
move f2f3
move e7e5
move g2g4
move d8h4
save fools mate
stats
`)
	if !strings.Contains(out, "game over: checkmate 0-1") {
		t.Errorf("missing game over line:\n%s", out)
	}
	if !strings.Contains(out, "fools mate\n") || !strings.Contains(out, "result 0-1 recorded") {
		t.Errorf("save output:\n%s", out)
	}
	if !strings.Contains(out, "black wins: 1\n") || !strings.Contains(out, "  checkmate: 1\n") {
		t.Errorf("stats output:\n%s", out)
	}

	games, err := st.ListGames()
	if err != nil || len(games) != 1 {
		t.Fatalf("ListGames() = %d games, %v", len(games), err)
	}
	id := games[0].ID

	out, sh := run(t, st, "resume "+id[:8]+"\nsave\nstats\ngames\n")
	if !sh.Game().IsCheckmate() {
		t.Error("resumed game is not the saved one")
	}
	if strings.Contains(out, "recorded") || !strings.Contains(out, "games: 1\n") {
		t.Errorf("result counted twice:\n%s", out)
	}
	if !strings.Contains(out, id[:8]+"  fools mate") {
		t.Errorf("games listing:\n%s", out)
	}

	out, _ = run(t, st, "delete "+id+"\ngames\nresume "+id+"\n")
	if !strings.Contains(out, "no saved games") || !strings.Contains(out, "game not found") {
		t.Errorf("delete output:\n%s", out)
	}
}

func TestShellWithoutArchive(t *testing.T) {
	out, _ := run(t, nil, "save\ngames\n")
	if n := strings.Count(out, "no game archive attached"); n != 2 {
		t.Errorf("output:\n%s", out)
	}
}

func TestSetPosition(t *testing.T) {
	var out bytes.Buffer
	sh := New(strings.NewReader(""), &out, nil, zerolog.Nop())
	if err := sh.SetPosition("8/8/8/8/8/8/8/8 w - - 0 1"); err == nil {
		t.Error("SetPosition accepted a board without kings")
	}
	if err := sh.SetPosition("4k3/8/8/8/8/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	if sh.Game().KingSquare(board.White) != board.E1 {
		t.Errorf("white king on %v", sh.Game().KingSquare(board.White))
	}
}

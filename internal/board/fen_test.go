package board

import (
	"errors"
	"testing"
)

func mustParseFEN(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return g
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPPKPPP/RNBQ1BNR b kq - 1 2",
		"r1b1r1k1/pp4pp/3Bpp2/8/2q5/P5Q1/3R1PPP/R5K1 b - - 0 19",
		"1k6/1pp5/p7/5B1p/PP6/6K1/4p2r/4R3 b - - 3 43",
		"8/8/2k2Q2/8/5P2/8/1p6/6K1 b - - 1 48",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			g := mustParseFEN(t, fen)
			if got := g.ToFEN(); got != fen {
				t.Errorf("ToFEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestPositionKeyOmitsCounters(t *testing.T) {
	g := mustParseFEN(t, "1k6/1pp5/p7/5B1p/PP6/6K1/4p2r/4R3 b - - 3 43")
	want := "1k6/1pp5/p7/5B1p/PP6/6K1/4p2r/4R3 b - -"
	if got := g.PositionKey(); got != want {
		t.Errorf("PositionKey() = %q, want %q", got, want)
	}
	if got := trimFEN(g.ToFEN()); got != want {
		t.Errorf("trimFEN() = %q, want %q", got, want)
	}
}

func TestParseFENFields(t *testing.T) {
	g := mustParseFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b Kq e3 0 1")

	if g.Turn() != Black {
		t.Errorf("Turn() = %v, want Black", g.Turn())
	}
	if g.Castling(White) != KingSide {
		t.Errorf("Castling(White) = %d, want KingSide", g.Castling(White))
	}
	if g.Castling(Black) != QueenSide {
		t.Errorf("Castling(Black) = %d, want QueenSide", g.Castling(Black))
	}
	if g.EnPassant() != E3 {
		t.Errorf("EnPassant() = %v, want e3", g.EnPassant())
	}
	if g.KingSquare(White) != E1 || g.KingSquare(Black) != E8 {
		t.Errorf("kings = %v %v, want e1 e8", g.KingSquare(White), g.KingSquare(Black))
	}
	if p, _ := g.PieceAt(E4); p != WhitePawn {
		t.Errorf("PieceAt(e4) = %v, want P", p)
	}
}

func TestInvalidFEN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want error
	}{
		{"field count", "8/8/2k2Q2/8/5P2/8/1p6/6K1 b - 1 48", ErrFieldCount},
		{"row count", "8/8/2k2Q2/8/5P2/8/1p6 b - - 1 48", ErrRowCount},
		{"missing white king", "8/8/2k2Q2/8/5P2/8/1p6/8 b - - 1 48", ErrMissingWhiteKing},
		{"missing black king", "8/8/2K2Q2/8/5P2/8/1p6/8 b - - 1 48", ErrMissingBlackKing},
		{"too many white kings", "8/7K/2k2Q2/8/5P2/8/1p6/6K1 b - - 1 48", ErrTooManyWhiteKings},
		{"too many black kings", "8/7k/2k2Q2/8/5P2/8/1p6/6K1 b - - 1 48", ErrTooManyBlackKings},
		{"consecutive digits", "8/8/2k2Q2/8/5P2/8/1p51/6K1 b - - 1 48", ErrConsecutiveDigits},
		{"invalid piece", "8/8/2k2Q2/8/5P2/8/1x6/6K1 b - - 1 48", ErrInvalidPiece},
		{"zero digit", "8/8/2k2Q2/8/5P2/8/1p06/6K1 b - - 1 48", ErrInvalidPiece},
		{"row length", "8/8/2k2Q2/8/5P2/8/1p7/6K1 b - - 1 48", ErrRowLength},
		{"side to move", "8/8/2k2Q2/8/5P2/8/1p6/6K1 x - - 1 48", ErrSideToMove},
		{"castling", "8/8/2k2Q2/8/5P2/8/1p6/6K1 b KX - 1 48", ErrCastling},
		{"en passant square", "8/8/2k2Q2/8/5P2/8/1p6/6K1 b - e9 1 48", ErrEnPassant},
		{"en passant rank", "8/8/2k2Q2/8/5P2/8/1p6/6K1 b - e6 1 48", ErrEnPassant},
		{"halfmove clock", "8/8/2k2Q2/8/5P2/8/1p6/6K1 b - - -1 48", ErrHalfMoveClock},
		{"fullmove number", "8/8/2k2Q2/8/5P2/8/1p6/6K1 b - - 1 0", ErrFullMoveNumber},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ParseFEN(tc.fen)
			if err == nil {
				t.Fatalf("ParseFEN(%q) succeeded, want %v", tc.fen, tc.want)
			}
			if g != nil {
				t.Errorf("ParseFEN returned a game alongside an error")
			}
			var syntaxErr *FENSyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("error %v is not a *FENSyntaxError", err)
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
			if err := ValidateFEN(tc.fen); !errors.Is(err, tc.want) {
				t.Errorf("ValidateFEN error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateFENAccepts(t *testing.T) {
	if err := ValidateFEN(StartFEN); err != nil {
		t.Errorf("ValidateFEN(start) = %v", err)
	}
}

func TestBuilder(t *testing.T) {
	g, err := NewBuilder().
		AddPiece(E1, WhiteKing).
		AddPiece(E8, BlackKing).
		AddPiece(A1, WhiteRook).
		SetCastling("Q").
		SetFullMoveNumber(12).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := "4k3/8/8/8/8/8/8/R3K3 w Q - 0 12"
	if got := g.ToFEN(); got != want {
		t.Errorf("ToFEN() = %q, want %q", got, want)
	}

	if _, err := NewBuilder().AddPiece(E1, WhiteKing).Build(); !errors.Is(err, ErrMissingBlackKing) {
		t.Errorf("Build without black king: err = %v", err)
	}
	if _, err := NewBuilder().AddPiece(NoSquare, WhiteKing).Build(); err == nil {
		t.Error("Build accepted an invalid square")
	}
}

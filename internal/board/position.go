package board

import (
	"fmt"
	"strings"
)

// CastlingRights is the castling mask of one color.
type CastlingRights uint8

const (
	KingSide   CastlingRights = 1 << iota // K / k
	QueenSide                             // Q / q
	NoCastling CastlingRights = 0
	AllCastling                = KingSide | QueenSide
)

// Has returns true if every right in r is present.
func (cr CastlingRights) Has(r CastlingRights) bool {
	return cr&r == r
}

// castlingString builds the FEN castling field from both colors' rights.
func castlingString(rights [2]CastlingRights) string {
	s := ""
	if rights[White].Has(KingSide) {
		s += "K"
	}
	if rights[White].Has(QueenSide) {
		s += "Q"
	}
	if rights[Black].Has(KingSide) {
		s += "k"
	}
	if rights[Black].Has(QueenSide) {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Board holds the piece on each square, NoPiece when empty.
type Board [64]Piece

// emptyBoard returns a board with every square empty.
func emptyBoard() Board {
	var b Board
	for i := range b {
		b[i] = NoPiece
	}
	return b
}

// HistoryEntry records one played move: the FEN before it, its SAN and the move.
type HistoryEntry struct {
	FEN  string
	SAN  string
	Move Move
}

// Game is a complete, mutable chess game: the position, its derived caches and
// the move history. Games are obtained from ParseFEN, NewGame or Builder.Build
// and only change through ApplyMove, Undo and Redo.
type Game struct {
	board          Board
	turn           Color
	castling       [2]CastlingRights
	enPassant      Square
	halfMoveClock  int
	fullMoveNumber int

	// Derived state, recomputed after every move
	kings   [2]Square
	attacks [2]Bitboard // squares attacked by each color
	legal   []Move

	// Repetition counts keyed by PositionKey
	positions map[string]int
	history   []HistoryEntry
	rewound   int
}

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewGame creates a game at the starting position.
func NewGame() *Game {
	g, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return g
}

// Clone creates a deep copy of the game, history included.
func (g *Game) Clone() *Game {
	c := g.clonePosition()
	c.positions = make(map[string]int, len(g.positions))
	for k, v := range g.positions {
		c.positions[k] = v
	}
	c.history = append([]HistoryEntry(nil), g.history...)
	c.rewound = g.rewound
	return c
}

// clonePosition copies the position and its caches but not the history.
func (g *Game) clonePosition() *Game {
	c := &Game{
		board:          g.board,
		turn:           g.turn,
		castling:       g.castling,
		enPassant:      g.enPassant,
		halfMoveClock:  g.halfMoveClock,
		fullMoveNumber: g.fullMoveNumber,
		kings:          g.kings,
		attacks:        g.attacks,
		legal:          g.legal,
	}
	return c
}

// Board returns a copy of the board.
func (g *Game) Board() Board {
	return g.board
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (g *Game) PieceAt(sq Square) (Piece, error) {
	if err := checkSquare(sq); err != nil {
		return NoPiece, err
	}
	return g.board[sq], nil
}

// Turn returns the side to move.
func (g *Game) Turn() Color {
	return g.turn
}

// Castling returns the castling rights of color c.
func (g *Game) Castling(c Color) CastlingRights {
	return g.castling[c]
}

// EnPassant returns the en-passant target square, NoSquare if none.
func (g *Game) EnPassant() Square {
	return g.enPassant
}

// HalfMoveClock returns the number of half moves since the last pawn move or capture.
func (g *Game) HalfMoveClock() int {
	return g.halfMoveClock
}

// FullMoveNumber returns the full move counter, starting at 1.
func (g *Game) FullMoveNumber() int {
	return g.fullMoveNumber
}

// KingSquare returns the square of color c's king.
func (g *Game) KingSquare(c Color) Square {
	return g.kings[c]
}

// LegalMoves returns the legal moves of the side to move.
func (g *Game) LegalMoves() []Move {
	return append([]Move(nil), g.legal...)
}

// MovesForSquare returns the legal moves starting on sq.
func (g *Game) MovesForSquare(sq Square) ([]Move, error) {
	if err := checkSquare(sq); err != nil {
		return nil, err
	}
	var moves []Move
	for _, m := range g.legal {
		if m.From == sq {
			moves = append(moves, m)
		}
	}
	return moves, nil
}

// IsSquareAttacked reports whether color by attacks sq in the current position.
func (g *Game) IsSquareAttacked(sq Square, by Color) (bool, error) {
	if err := checkSquare(sq); err != nil {
		return false, err
	}
	return g.Attacks(by).IsSet(sq), nil
}

// Attacks returns the attack map of color by.
func (g *Game) Attacks(by Color) Bitboard {
	if by > Black {
		return Empty
	}
	return g.attacks[by]
}

// kingAttacked reports whether color c's king is attacked by the opponent.
func (g *Game) kingAttacked(c Color) bool {
	return g.attacks[c.Other()].IsSet(g.kings[c])
}

// String returns a visual representation of the position.
func (g *Game) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for sq := A8; sq < NoSquare; sq++ {
		if sq.File() == 0 {
			fmt.Fprintf(&sb, "%d  ", sq.Rank()+1)
		}
		piece := g.board[sq]
		if piece == NoPiece {
			sb.WriteString(". ")
		} else {
			sb.WriteString(piece.String() + " ")
		}
		if sq.File() == 7 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", g.turn)
	fmt.Fprintf(&sb, "Castling: %s\n", castlingString(g.castling))
	fmt.Fprintf(&sb, "En passant: %s\n", g.enPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", g.halfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", g.fullMoveNumber)
	return sb.String()
}

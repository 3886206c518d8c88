package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateFEN checks fen against the position text rules and returns a
// *FENSyntaxError naming the first rule that fails.
func ValidateFEN(fen string) error {
	_, err := splitFEN(fen)
	return err
}

// fenFields holds the decoded fields of a validated FEN string.
type fenFields struct {
	placement      string
	turn           Color
	castling       string
	enPassant      Square
	halfMoveClock  int
	fullMoveNumber int
}

func splitFEN(fen string) (*fenFields, error) {
	fail := func(err error) (*fenFields, error) {
		return nil, &FENSyntaxError{FEN: fen, Err: err}
	}

	parts := strings.Split(fen, " ")
	if len(parts) != 6 {
		return fail(ErrFieldCount)
	}

	if err := validatePlacement(parts[0]); err != nil {
		return fail(err)
	}

	turn, ok := ParseColor(parts[1])
	if !ok {
		return fail(ErrSideToMove)
	}

	if parts[2] == "" || strings.Trim(parts[2], "KQkq-") != "" {
		return fail(ErrCastling)
	}

	ep := NoSquare
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil || sq.Row() != pawnInfos[turn].epRow {
			return fail(ErrEnPassant)
		}
		ep = sq
	}

	hmc, ok := parseCounter(parts[4], false)
	if !ok {
		return fail(ErrHalfMoveClock)
	}

	fmn, ok := parseCounter(parts[5], true)
	if !ok {
		return fail(ErrFullMoveNumber)
	}

	return &fenFields{
		placement:      parts[0],
		turn:           turn,
		castling:       parts[2],
		enPassant:      ep,
		halfMoveClock:  hmc,
		fullMoveNumber: fmn,
	}, nil
}

// validatePlacement checks the piece placement field: row count, one king per
// color, row contents and row lengths.
func validatePlacement(placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return ErrRowCount
	}

	kings := []struct {
		symbol          string
		missing, excess error
	}{
		{"K", ErrMissingWhiteKing, ErrTooManyWhiteKings},
		{"k", ErrMissingBlackKing, ErrTooManyBlackKings},
	}
	for _, k := range kings {
		switch n := strings.Count(placement, k.symbol); {
		case n == 0:
			return k.missing
		case n > 1:
			return k.excess
		}
	}

	for _, row := range rows {
		squares := 0
		previousWasDigit := false

		for i := 0; i < len(row); i++ {
			c := row[i]
			if c >= '1' && c <= '8' {
				if previousWasDigit {
					return ErrConsecutiveDigits
				}
				squares += int(c - '0')
				previousWasDigit = true
				continue
			}

			if PieceFromChar(c) == NoPiece {
				return fmt.Errorf("%w: %q", ErrInvalidPiece, c)
			}
			squares++
			previousWasDigit = false
		}

		if squares != 8 {
			return ErrRowLength
		}
	}

	return nil
}

// parseCounter parses a move counter made only of ASCII digits.
func parseCounter(s string, positive bool) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	if positive && s[0] == '0' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseFEN validates fen and builds a Game from it. Nothing is returned on error.
func ParseFEN(fen string) (*Game, error) {
	fields, err := splitFEN(fen)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	sq := A8
	for i := 0; i < len(fields.placement); i++ {
		c := fields.placement[i]
		switch {
		case c == '/':
		case c >= '1' && c <= '8':
			sq += Square(c - '0')
		default:
			b.AddPiece(sq, PieceFromChar(c))
			sq++
		}
	}

	return b.SetTurn(fields.turn).
		SetCastling(fields.castling).
		SetEnPassant(fields.enPassant).
		SetHalfMoveClock(fields.halfMoveClock).
		SetFullMoveNumber(fields.fullMoveNumber).
		Build()
}

// EncodeFEN serializes the game's position. trimmed omits the halfmove clock and
// fullmove number, which is the form used as the repetition key.
func EncodeFEN(g *Game, trimmed bool) string {
	var sb strings.Builder

	empty := 0
	for sq := A8; sq < NoSquare; sq++ {
		if sq.File() == 0 && sq != A8 {
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte('/')
		}

		piece := g.board[sq]
		if piece == NoPiece {
			empty++
			continue
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
			empty = 0
		}
		sb.WriteString(piece.String())
	}
	if empty > 0 {
		sb.WriteString(strconv.Itoa(empty))
	}

	sb.WriteByte(' ')
	sb.WriteByte(g.turn.Char())
	sb.WriteByte(' ')
	sb.WriteString(castlingString(g.castling))
	sb.WriteByte(' ')
	sb.WriteString(g.enPassant.String())

	if !trimmed {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(g.halfMoveClock))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(g.fullMoveNumber))
	}

	return sb.String()
}

// ToFEN returns the FEN representation of the position.
func (g *Game) ToFEN() string {
	return EncodeFEN(g, false)
}

// PositionKey returns the FEN without move counters.
func (g *Game) PositionKey() string {
	return EncodeFEN(g, true)
}

// trimFEN drops the move counters from a full FEN string.
func trimFEN(fen string) string {
	fields := strings.Split(fen, " ")
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}

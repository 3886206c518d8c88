package board

import (
	"errors"
	"fmt"
)

// FEN validation failures. Each one is wrapped in a *FENSyntaxError.
var (
	ErrFieldCount        = errors.New("string must contain 6 space delimited fields")
	ErrRowCount          = errors.New("board position must contain 8 rows delimited by '/'")
	ErrMissingWhiteKing  = errors.New("board position is missing white king")
	ErrMissingBlackKing  = errors.New("board position is missing black king")
	ErrTooManyWhiteKings = errors.New("board position contains too many white kings")
	ErrTooManyBlackKings = errors.New("board position contains too many black kings")
	ErrConsecutiveDigits = errors.New("board position contains consecutive digits")
	ErrInvalidPiece      = errors.New("board position contains an invalid piece symbol")
	ErrRowLength         = errors.New("board position contains a row that does not have 8 squares")
	ErrSideToMove        = errors.New("invalid side to move")
	ErrCastling          = errors.New("string contains invalid castling rights")
	ErrEnPassant         = errors.New("invalid en-passant square")
	ErrHalfMoveClock     = errors.New("move number must be a non-negative integer")
	ErrFullMoveNumber    = errors.New("number of full moves must be a positive integer")
)

// FENSyntaxError reports malformed position text.
type FENSyntaxError struct {
	FEN string
	Err error
}

func (e *FENSyntaxError) Error() string {
	return "invalid FEN: " + e.Err.Error()
}

func (e *FENSyntaxError) Unwrap() error {
	return e.Err
}

// IllegalMoveError reports a move that is not in the current legal-move list.
type IllegalMoveError struct {
	Move Move
	FEN  string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s in %s", e.Move, e.FEN)
}

// InvalidSquareError reports an out-of-range square index or malformed square text.
// Index is -1 when the square was given as text.
type InvalidSquareError struct {
	Text  string
	Index int
}

func (e *InvalidSquareError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid square: %q", e.Text)
	}
	return fmt.Sprintf("invalid square index: %d", e.Index)
}

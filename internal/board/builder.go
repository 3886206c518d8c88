package board

import "fmt"

// Builder stages the fields of a position. Build is the only way to turn the
// staged fields into a usable Game; it rejects boards without exactly one king
// per color and computes all derived state.
//
// Setters record the first error they meet; Build reports it.
type Builder struct {
	board          Board
	turn           Color
	castling       [2]CastlingRights
	enPassant      Square
	halfMoveClock  int
	fullMoveNumber int
	err            error
}

// NewBuilder returns a builder for an empty board with White to move.
func NewBuilder() *Builder {
	return &Builder{
		board:          emptyBoard(),
		turn:           White,
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// AddPiece places piece on sq, replacing whatever was there.
func (b *Builder) AddPiece(sq Square, piece Piece) *Builder {
	if err := checkSquare(sq); err != nil {
		return b.fail(err)
	}
	if piece >= NoPiece {
		return b.fail(fmt.Errorf("builder: invalid piece %d", piece))
	}
	b.board[sq] = piece
	return b
}

// SetTurn sets the side to move.
func (b *Builder) SetTurn(c Color) *Builder {
	if c != White && c != Black {
		return b.fail(ErrSideToMove)
	}
	b.turn = c
	return b
}

// SetCastling sets castling rights from a FEN castling field such as "KQkq" or "-".
func (b *Builder) SetCastling(field string) *Builder {
	var rights [2]CastlingRights
	for _, c := range field {
		switch c {
		case 'K':
			rights[White] |= KingSide
		case 'Q':
			rights[White] |= QueenSide
		case 'k':
			rights[Black] |= KingSide
		case 'q':
			rights[Black] |= QueenSide
		case '-':
		default:
			return b.fail(ErrCastling)
		}
	}
	b.castling = rights
	return b
}

// SetEnPassant sets the en-passant target square (NoSquare for none). A target
// that does not belong to the side to move is dropped by Build.
func (b *Builder) SetEnPassant(sq Square) *Builder {
	if sq != NoSquare {
		if err := checkSquare(sq); err != nil {
			return b.fail(err)
		}
	}
	b.enPassant = sq
	return b
}

// SetHalfMoveClock sets the halfmove clock.
func (b *Builder) SetHalfMoveClock(n int) *Builder {
	if n < 0 {
		return b.fail(ErrHalfMoveClock)
	}
	b.halfMoveClock = n
	return b
}

// SetFullMoveNumber sets the fullmove number.
func (b *Builder) SetFullMoveNumber(n int) *Builder {
	if n < 1 {
		return b.fail(ErrFullMoveNumber)
	}
	b.fullMoveNumber = n
	return b
}

// Build validates the staged position and returns a ready Game.
func (b *Builder) Build() (*Game, error) {
	if b.err != nil {
		return nil, b.err
	}

	g := &Game{
		board:          b.board,
		turn:           b.turn,
		castling:       b.castling,
		enPassant:      b.enPassant,
		halfMoveClock:  b.halfMoveClock,
		fullMoveNumber: b.fullMoveNumber,
		kings:          [2]Square{NoSquare, NoSquare},
		positions:      make(map[string]int),
	}

	var count [2]int
	for sq := A8; sq < NoSquare; sq++ {
		piece := g.board[sq]
		if piece.Type() == King {
			count[piece.Color()]++
			g.kings[piece.Color()] = sq
		}
	}
	switch {
	case count[White] == 0:
		return nil, ErrMissingWhiteKing
	case count[White] > 1:
		return nil, ErrTooManyWhiteKings
	case count[Black] == 0:
		return nil, ErrMissingBlackKing
	case count[Black] > 1:
		return nil, ErrTooManyBlackKings
	}

	if g.enPassant != NoSquare && g.enPassant.Row() != pawnInfos[g.turn].epRow {
		g.enPassant = NoSquare
	}

	g.refresh()
	g.positions[g.PositionKey()] = 1
	return g, nil
}

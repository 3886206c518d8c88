package board

// ApplyMove plays m if its (From, To, Promotion) triple matches a legal move of
// the current position. Piece and Flags of m are ignored; the generator's move is
// played instead. An illegal move returns *IllegalMoveError and leaves g unchanged.
//
// When moves have been undone, the undone moves are discarded first and m is
// checked against the rewound position.
func (g *Game) ApplyMove(m Move) error {
	target := g
	if g.rewound > 0 {
		target = g.rewind()
	}

	legal, ok := containsMove(target.legal, m)
	if !ok {
		return &IllegalMoveError{Move: m, FEN: target.ToFEN()}
	}

	target.commit(legal)
	if target != g {
		*g = *target
	}
	return nil
}

// MoveUCI parses a move in UCI form ("e2e4", "e7e8q") and applies it.
func (g *Game) MoveUCI(s string) error {
	m, err := ParseMove(s)
	if err != nil {
		return err
	}
	return g.ApplyMove(m)
}

// commit plays a legal move and records it in the history.
func (g *Game) commit(m Move) {
	pre := g.clonePosition()

	g.play(m)
	g.refresh()

	g.history = append(g.history, HistoryEntry{
		FEN:  pre.ToFEN(),
		SAN:  MoveNotation(m, pre, g),
		Move: m,
	})
	g.positions[g.PositionKey()]++
}

// play makes m on the board without any legality check and updates the position
// fields. Derived caches are left stale; callers refresh or rescan.
func (g *Game) play(m Move) {
	us := g.turn
	moved := g.board[m.From]

	piece := moved
	if m.IsPromotion() {
		piece = NewPiece(m.Promotion, us)
	}
	g.board[m.From] = NoPiece
	g.board[m.To] = piece

	switch {
	case m.IsEnPassant():
		g.board[int(m.To)-pawnInfos[us].forward] = NoPiece
	case m.Flags.Has(FlagKingCastle):
		g.board[m.To-1] = g.board[m.To+1]
		g.board[m.To+1] = NoPiece
	case m.Flags.Has(FlagQueenCastle):
		g.board[m.To+1] = g.board[m.To-2]
		g.board[m.To-2] = NoPiece
	}

	if piece.Type() == King {
		g.kings[us] = m.To
	}

	g.enPassant = NoSquare
	if m.Flags.Has(FlagPawnJump) {
		g.enPassant = Square(int(m.From) + pawnInfos[us].forward)
	}

	if moved.Type() == Pawn || m.IsCapture() {
		g.halfMoveClock = 0
	} else {
		g.halfMoveClock++
	}

	if us == Black {
		g.fullMoveNumber++
	}
	g.turn = us.Other()

	g.updateCastling()
}

// updateCastling drops the rights whose king or rook has left its home square.
func (g *Game) updateCastling() {
	for _, c := range [2]Color{White, Black} {
		if g.castling[c] == NoCastling {
			continue
		}
		if g.board[kingHome[c]] != NewPiece(King, c) {
			g.castling[c] = NoCastling
			continue
		}
		rook := NewPiece(Rook, c)
		if g.board[kingSideRook[c]] != rook {
			g.castling[c] &^= KingSide
		}
		if g.board[queenSideRook[c]] != rook {
			g.castling[c] &^= QueenSide
		}
	}
}

package board

// PseudoMoves returns the pseudo-legal moves of the piece on sq, ignoring whether
// they leave the mover's king attacked. ep is the en-passant target or NoSquare.
// Castling is not generated here; see Game.castlingMoves.
func PseudoMoves(b *Board, sq Square, ep Square) []Move {
	if !sq.IsValid() {
		return nil
	}
	piece := b[sq]
	switch pt := piece.Type(); pt {
	case Pawn:
		return pawnMoves(b, sq, piece.Color(), ep)
	case Knight, Bishop, Rook, Queen, King:
		return pieceMoves(b, sq, piece, pieceSteps[pt].steps, pieceSteps[pt].slides)
	default:
		return nil
	}
}

// pawnMoves generates pushes, double pushes, captures, en-passant captures and
// promotions for a pawn of color us on sq.
func pawnMoves(b *Board, sq Square, us Color, ep Square) []Move {
	info := pawnInfos[us]
	piece := NewPiece(Pawn, us)
	var moves []Move

	add := func(to Square, flags MoveFlag) {
		if to.Row() == info.promotionRow {
			for _, pt := range promotionTypes {
				moves = append(moves, Move{
					From:      sq,
					To:        to,
					Piece:     piece,
					Promotion: pt,
					Flags:     FlagPromotion | flags&^FlagNormal,
				})
			}
			return
		}
		moves = append(moves, Move{From: sq, To: to, Piece: piece, Promotion: NoPieceType, Flags: flags})
	}

	next := int(sq) + info.forward
	if next < 0 || next >= 64 {
		return nil
	}

	if b[next] == NoPiece {
		add(Square(next), FlagNormal)

		if sq.Row() == info.jumpRow {
			jump := next + info.forward
			if b[jump] == NoPiece {
				add(Square(jump), FlagPawnJump)
			}
		}
	}

	for _, c := range pawnCaptures {
		if c.blockedFrom(int(sq)) {
			continue
		}
		target := Square(next + c.offset)
		victim := b[target]
		switch {
		case victim != NoPiece && victim.Color() != us:
			add(target, FlagCapture)
		case victim == NoPiece && target == ep && ep.Row() == info.epRow:
			add(target, FlagCapture|FlagEnPassant)
		}
	}

	return moves
}

// pieceMoves walks the step table for knights, bishops, rooks, queens and kings.
// Non-sliding pieces take a single step per direction.
func pieceMoves(b *Board, sq Square, piece Piece, steps []step, slides bool) []Move {
	var moves []Move

	for _, s := range steps {
		if s.blockedFrom(int(sq)) {
			continue
		}

		next := int(sq) + s.offset
		for next >= 0 && next < 64 {
			target := b[next]
			if target == NoPiece {
				moves = append(moves, Move{From: sq, To: Square(next), Piece: piece, Promotion: NoPieceType, Flags: FlagNormal})
				if !slides || s.blockedFrom(next) {
					break
				}
				next += s.offset
				continue
			}

			if target.Color() != piece.Color() {
				moves = append(moves, Move{From: sq, To: Square(next), Piece: piece, Promotion: NoPieceType, Flags: FlagCapture})
			}
			break
		}
	}

	return moves
}

// pawnControl returns the (up to two) squares a pawn on sq attacks diagonally,
// whether or not they are occupied.
func pawnControl(sq Square, us Color) Bitboard {
	var bb Bitboard
	next := int(sq) + pawnInfos[us].forward
	if next < 0 || next >= 64 {
		return bb
	}
	for _, c := range pawnCaptures {
		if !c.blockedFrom(int(sq)) {
			bb = bb.Set(Square(next + c.offset))
		}
	}
	return bb
}

// scan generates pseudo-legal moves for every piece on the board. It returns the
// moves of side us and the attack map of both colors.
func (g *Game) scan(us Color) ([]Move, [2]Bitboard) {
	var own []Move
	var attacks [2]Bitboard

	for sq := A8; sq < NoSquare; sq++ {
		piece := g.board[sq]
		if piece == NoPiece {
			continue
		}
		c := piece.Color()
		moves := PseudoMoves(&g.board, sq, g.enPassant)
		for _, m := range moves {
			attacks[c] = attacks[c].Set(m.To)
		}
		if piece.Type() == Pawn {
			attacks[c] |= pawnControl(sq, c)
		}
		if c == us {
			own = append(own, moves...)
		}
	}

	return own, attacks
}

// castlingMoves returns the castling moves available to the side to move. The
// attack map must be current; squares are tested against the opponent's color.
func (g *Game) castlingMoves() []Move {
	us := g.turn
	them := us.Other()
	rights := g.castling[us]
	king := kingHome[us]

	if rights == NoCastling || g.board[king] != NewPiece(King, us) {
		return nil
	}

	empty := func(squares ...Square) bool {
		for _, sq := range squares {
			if g.board[sq] != NoPiece {
				return false
			}
		}
		return true
	}
	safe := func(squares ...Square) bool {
		for _, sq := range squares {
			if g.attacks[them].IsSet(sq) {
				return false
			}
		}
		return true
	}

	var moves []Move
	piece := NewPiece(King, us)
	rook := NewPiece(Rook, us)

	if rights.Has(KingSide) && g.board[kingSideRook[us]] == rook &&
		empty(king+1, king+2) && safe(king, king+1, king+2) {
		moves = append(moves, Move{From: king, To: king + 2, Piece: piece, Promotion: NoPieceType, Flags: FlagKingCastle})
	}

	if rights.Has(QueenSide) && g.board[queenSideRook[us]] == rook &&
		empty(king-1, king-2, king-3) && safe(king, king-1, king-2) {
		moves = append(moves, Move{From: king, To: king - 2, Piece: piece, Promotion: NoPieceType, Flags: FlagQueenCastle})
	}

	return moves
}

package board

// Status summarizes whether the game is still running and, if not, why it ended.
type Status uint8

const (
	Active Status = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	ThreefoldRepetition
	FiftyMoveRule
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case ThreefoldRepetition:
		return "threefold repetition"
	case FiftyMoveRule:
		return "fifty-move rule"
	default:
		return "unknown"
	}
}

// IsCheck reports whether the side to move is in check.
func (g *Game) IsCheck() bool {
	return g.kingAttacked(g.turn)
}

// IsCheckmate reports whether the side to move is in check with no legal moves.
func (g *Game) IsCheckmate() bool {
	return g.IsCheck() && len(g.legal) == 0
}

// IsStalemate reports whether the side to move has no legal moves and is not in check.
func (g *Game) IsStalemate() bool {
	return !g.IsCheck() && len(g.legal) == 0
}

// RepetitionCount returns how many times the current position has occurred.
func (g *Game) RepetitionCount() int {
	return g.positions[g.PositionKey()]
}

// IsThreefoldRepetition reports whether the current position has occurred at
// least three times.
func (g *Game) IsThreefoldRepetition() bool {
	return g.RepetitionCount() >= 3
}

// IsFiftyMoveRule reports whether fifty full moves passed without a capture or pawn move.
func (g *Game) IsFiftyMoveRule() bool {
	return g.halfMoveClock >= 100
}

// IsInsufficientMaterial reports whether neither side can mate: no pawns, rooks
// or queens, no side with two bishops and at most two minor pieces in total.
func (g *Game) IsInsufficientMaterial() bool {
	var bishops [2]int
	minors := 0

	for _, piece := range g.board {
		switch piece.Type() {
		case Pawn, Rook, Queen:
			return false
		case Bishop:
			bishops[piece.Color()]++
			minors++
		case Knight:
			minors++
		}
	}

	return bishops[White] < 2 && bishops[Black] < 2 && minors < 3
}

// IsDraw reports whether the game is drawn by any rule.
func (g *Game) IsDraw() bool {
	return g.IsStalemate() || g.IsInsufficientMaterial() ||
		g.IsThreefoldRepetition() || g.IsFiftyMoveRule()
}

// IsGameOver reports whether the game has ended.
func (g *Game) IsGameOver() bool {
	return g.IsCheckmate() || g.IsDraw()
}

// Status returns the game status. Checkmate takes precedence over the draw rules.
func (g *Game) Status() Status {
	switch {
	case g.IsCheckmate():
		return Checkmate
	case g.IsStalemate():
		return Stalemate
	case g.IsInsufficientMaterial():
		return InsufficientMaterial
	case g.IsThreefoldRepetition():
		return ThreefoldRepetition
	case g.IsFiftyMoveRule():
		return FiftyMoveRule
	default:
		return Active
	}
}

// Result returns the PGN result string: "1-0", "0-1", "1/2-1/2" or "*".
func (g *Game) Result() string {
	switch g.Status() {
	case Active:
		return "*"
	case Checkmate:
		if g.turn == White {
			return "0-1"
		}
		return "1-0"
	default:
		return "1/2-1/2"
	}
}

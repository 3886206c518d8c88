package board

// Undo steps back one move. The history itself is kept so the move can be
// redone; it is discarded only when a new move is applied. Returns false when
// there is nothing to undo.
func (g *Game) Undo() bool {
	if g.rewound >= len(g.history) {
		return false
	}
	g.rewound++
	return true
}

// Redo steps forward one previously undone move. Returns false when there is
// nothing to redo.
func (g *Game) Redo() bool {
	if g.rewound == 0 {
		return false
	}
	g.rewound--
	return true
}

// CanUndo reports whether Undo would succeed.
func (g *Game) CanUndo() bool {
	return g.rewound < len(g.history)
}

// CanRedo reports whether Redo would succeed.
func (g *Game) CanRedo() bool {
	return g.rewound > 0
}

// Rewound returns the number of undone moves.
func (g *Game) Rewound() int {
	return g.rewound
}

// Cursor returns the index of the last history entry that is still played,
// -1 when every move is undone or none was played.
func (g *Game) Cursor() int {
	return len(g.history) - g.rewound - 1
}

// History returns a copy of the played moves, including undone ones.
func (g *Game) History() []HistoryEntry {
	return append([]HistoryEntry(nil), g.history...)
}

// CurrentPosition returns the position the user sees after undo and redo. The
// result is a separate game; changing it does not affect g.
func (g *Game) CurrentPosition() *Game {
	if g.rewound == 0 {
		return g.Clone()
	}
	return g.rewind()
}

// rewind builds the game as it stood before the undone moves were played, with
// the undone moves dropped from its history and repetition counts.
func (g *Game) rewind() *Game {
	keep := len(g.history) - g.rewound

	t, err := ParseFEN(g.history[keep].FEN)
	if err != nil {
		// History FENs are produced by EncodeFEN and always parse.
		panic("board: corrupt history entry: " + err.Error())
	}

	t.history = append([]HistoryEntry(nil), g.history[:keep]...)
	t.positions = make(map[string]int, keep+1)
	for _, e := range t.history {
		t.positions[trimFEN(e.FEN)]++
	}
	t.positions[t.PositionKey()]++

	return t
}

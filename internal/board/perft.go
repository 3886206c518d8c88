package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
func (g *Game) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	if depth == 1 {
		return uint64(len(g.legal))
	}

	var nodes uint64
	for _, m := range g.legal {
		c := g.clonePosition()
		c.play(m)
		c.refresh()
		nodes += c.Perft(depth - 1)
	}
	return nodes
}

// Divide returns the perft count below each legal move, keyed by its UCI string.
func (g *Game) Divide(depth int) map[string]uint64 {
	counts := make(map[string]uint64, len(g.legal))
	for _, m := range g.legal {
		c := g.clonePosition()
		c.play(m)
		c.refresh()
		counts[m.String()] = c.Perft(depth - 1)
	}
	return counts
}

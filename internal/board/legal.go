package board

// refresh recomputes the attack map and the legal moves of the side to move.
// It must run after every change to the position.
func (g *Game) refresh() {
	own, attacks := g.scan(g.turn)
	g.attacks = attacks
	own = append(own, g.castlingMoves()...)
	g.legal = g.filterLegal(own)
}

// filterLegal keeps the candidates that do not leave the mover's king attacked.
// Each candidate is played on a copy of the position.
func (g *Game) filterLegal(candidates []Move) []Move {
	us := g.turn
	legal := make([]Move, 0, len(candidates))

	for _, m := range candidates {
		c := g.clonePosition()
		c.play(m)
		_, c.attacks = c.scan(NoColor)
		if !c.kingAttacked(us) {
			legal = append(legal, m)
		}
	}

	return legal
}

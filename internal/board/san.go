package board

import (
	"fmt"
	"strings"
)

// MoveNotation renders m in Standard Algebraic Notation. pre is the position the
// move was played from and post the position after it.
func MoveNotation(m Move, pre, post *Game) string {
	var sb strings.Builder

	switch {
	case m.Flags.Has(FlagKingCastle):
		sb.WriteString("O-O")
	case m.Flags.Has(FlagQueenCastle):
		sb.WriteString("O-O-O")
	default:
		pt := m.Piece.Type()
		if pt == Pawn {
			if m.IsCapture() {
				sb.WriteByte(byte('a' + m.From.File()))
				sb.WriteByte('x')
			}
		} else {
			sb.WriteString(pt.Letter())
			sb.WriteString(disambiguation(m, pre))
			if m.IsCapture() {
				sb.WriteByte('x')
			}
		}

		sb.WriteString(m.To.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteString(m.Promotion.Letter())
		}
	}

	switch {
	case post.IsCheckmate():
		sb.WriteByte('#')
	case post.IsCheck():
		sb.WriteByte('+')
	}

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m apart
// from other legal moves of the same piece kind to the same square.
func disambiguation(m Move, pre *Game) string {
	var rivals []Square
	for _, other := range pre.legal {
		if other.To == m.To && other.From != m.From && other.Piece == m.Piece {
			rivals = append(rivals, other.From)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range rivals {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	switch {
	case !sameFile:
		return string(rune('a' + m.From.File()))
	case !sameRank:
		return string(rune('1' + m.From.Rank()))
	default:
		return m.From.String()
	}
}

// SAN returns the algebraic notation of m in the current position.
func (g *Game) SAN(m Move) (string, error) {
	legal, ok := containsMove(g.legal, m)
	if !ok {
		return "", &IllegalMoveError{Move: m, FEN: g.ToFEN()}
	}
	return g.notation(legal), nil
}

func (g *Game) notation(m Move) string {
	post := g.clonePosition()
	post.play(m)
	post.refresh()
	return MoveNotation(m, g, post)
}

// ParseSAN finds the legal move written as s. Check markers, annotation glyphs
// and zero-style castles ("0-0") are accepted.
func (g *Game) ParseSAN(s string) (Move, error) {
	want := normalizeSAN(s)
	if want == "" {
		return NoMove, fmt.Errorf("invalid SAN: %q", s)
	}

	for _, m := range g.legal {
		if normalizeSAN(g.notation(m)) == want {
			return m, nil
		}
	}

	return NoMove, fmt.Errorf("no legal move matches SAN %q in %s", s, g.ToFEN())
}

// ApplySAN parses s as algebraic notation and plays it.
func (g *Game) ApplySAN(s string) error {
	target := g
	if g.rewound > 0 {
		target = g.rewind()
	}
	m, err := target.ParseSAN(s)
	if err != nil {
		return err
	}
	return g.ApplyMove(m)
}

func normalizeSAN(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")
	return strings.ReplaceAll(s, "0", "O")
}

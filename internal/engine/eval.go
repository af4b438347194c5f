// Package engine implements the chess AI search engine.
package engine

import (
	"github.com/hailam/autochess/internal/board"
)

// CenterBonus is the score for each central square a side attacks. Four of
// them stay below the value of a pawn.
const CenterBonus = 10

// centerSquares are d4, e4, d5 and e5.
var centerSquares = [4]board.Square{
	board.Pack(4, 3),
	board.Pack(4, 4),
	board.Pack(3, 3),
	board.Pack(3, 4),
}

// Evaluate returns the static evaluation of b from the perspective of c:
// material balance plus CenterBonus for every central square c attacks.
func Evaluate(b board.Board, c board.Color) int {
	score := Material(b, c)
	for _, sq := range centerSquares {
		if board.Attacked(b, sq, c) {
			score += CenterBonus
		}
	}
	return score
}

// Material returns the material balance of b in centipawns, positive when c
// is ahead. Kings are not counted.
func Material(b board.Board, c board.Color) int {
	score := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.IsEmpty() {
				continue
			}
			if p.Color == c {
				score += p.Value()
			} else {
				score -= p.Value()
			}
		}
	}
	return score
}

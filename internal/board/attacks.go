package board

// Check detection works by asking the opponent's move generator whether any
// of its destinations lands on the square in question. Only appendPieceMoves
// is used here, never castling, so the generator and the detector cannot
// recurse into each other.

// InCheck returns true if the king of color c is attacked.
func InCheck(b Board, c Color) bool {
	ksq := b.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	return Attacked(b, ksq, c.Other())
}

// Attacked returns true if any piece of color by attacks sq.
func Attacked(b Board, sq Square, by Color) bool {
	return countAttackers(b, sq, by, 1) > 0
}

// AttackCount returns the number of pieces of color by that attack sq.
func AttackCount(b Board, sq Square, by Color) int {
	return countAttackers(b, sq, by, 64)
}

// Attackers returns the squares of the pieces of color by that attack sq.
func Attackers(b Board, sq Square, by Color) []Square {
	var out []Square
	forEachAttacker(b, sq, by, func(from Square) bool {
		out = append(out, from)
		return true
	})
	return out
}

func countAttackers(b Board, sq Square, by Color, limit int) int {
	n := 0
	forEachAttacker(b, sq, by, func(Square) bool {
		n++
		return n < limit
	})
	return n
}

// forEachAttacker calls fn with the square of every piece of color by whose
// move set reaches sq, until fn returns false.
//
// The target is treated as enemy-occupied so that empty or friendly squares
// report the pieces controlling them: pawns count on their capture diagonals
// and not on their pushes.
func forEachAttacker(b Board, sq Square, by Color, fn func(from Square) bool) {
	if b.PieceAt(sq).IsEmpty() || b.PieceAt(sq).Color == by {
		b.Set(sq, NewPiece(Pawn, by.Other()))
	}

	var buf [32]Move
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.IsEmpty() || p.Color != by {
				continue
			}
			from := Pack(row, col)
			if !mayReach(p.Type, from, sq) {
				continue
			}
			for _, m := range appendPieceMoves(buf[:0], b, from, p) {
				if m.To == sq {
					if !fn(from) {
						return
					}
					break
				}
			}
		}
	}
}

// mayReach is a geometric prefilter: it rules out pieces that cannot reach
// the target from their square whatever the occupancy.
func mayReach(pt PieceType, from, to Square) bool {
	fr, fc := from.Unpack()
	tr, tc := to.Unpack()
	dr, dc := abs(tr-fr), abs(tc-fc)
	switch pt {
	case Pawn:
		return dr == 1 && dc == 1
	case Knight:
		return dr*dc == 2
	case Bishop:
		return dr == dc && dr != 0
	case Rook:
		return (dr == 0) != (dc == 0)
	case Queen:
		return (dr == dc && dr != 0) || (dr == 0) != (dc == 0)
	case King:
		return dr <= 1 && dc <= 1 && dr+dc > 0
	}
	return false
}

package board

import "log"

// DebugMoveValidation enables board invariant checks after every applied move.
// Set to true during development to catch move generation bugs.
var DebugMoveValidation = false

// Offsets for the sliding and stepping pieces.
var (
	diagonalDirs   = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonalDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// LegalMoves generates every move of side that does not leave its own king in check.
func LegalMoves(b Board, side Color) MoveList {
	var legal MoveList
	for _, m := range PseudoLegalMoves(b, side) {
		if !InCheck(ApplyMove(b, m), side) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMove returns true if side has at least one legal move.
func HasLegalMove(b Board, side Color) bool {
	for _, m := range PseudoLegalMoves(b, side) {
		if !InCheck(ApplyMove(b, m), side) {
			return true
		}
	}
	return false
}

// PseudoLegalMoves generates all pseudo-legal moves of side, castling included.
// Moves may leave the mover's king in check.
func PseudoLegalMoves(b Board, side Color) MoveList {
	// Our en passant window closed when the opponent replied.
	b = b.WithoutEnPassant(side)

	ml := make(MoveList, 0, 64)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.IsEmpty() || p.Color != side {
				continue
			}
			ml = appendPieceMoves(ml, b, Pack(row, col), p)
			if p.Type == King {
				ml = appendCastlingMoves(ml, b, Pack(row, col), p)
			}
		}
	}
	return ml
}

// PieceMoves generates the pseudo-legal moves of the piece standing on sq,
// castling included.
func PieceMoves(b Board, sq Square) MoveList {
	return PieceMovesAs(b, sq, b.PieceAt(sq))
}

// PieceMovesAs generates pseudo-legal moves from sq as if the piece "as" stood
// there, regardless of what actually occupies the square.
func PieceMovesAs(b Board, sq Square, as Piece) MoveList {
	ml := appendPieceMoves(nil, b, sq, as)
	if as.Type == King {
		ml = appendCastlingMoves(ml, b, sq, as)
	}
	return ml
}

// appendPieceMoves appends the destinations of piece p on from, excluding
// castling. It never consults the check detector, so the check detector can
// call it freely.
func appendPieceMoves(ml MoveList, b Board, from Square, p Piece) MoveList {
	switch p.Type {
	case Pawn:
		return appendPawnMoves(ml, b, from, p)
	case Knight:
		return appendKnightMoves(ml, b, from, p)
	case Bishop:
		return appendSlides(ml, b, from, p, diagonalDirs, NoFlags)
	case Rook:
		// Moving a rook ends its castling rights.
		return appendSlides(ml, b, from, p, orthogonalDirs, NoCastle)
	case Queen:
		ml = appendSlides(ml, b, from, p, diagonalDirs, NoFlags)
		return appendSlides(ml, b, from, p, orthogonalDirs, NoFlags)
	case King:
		return appendKingSteps(ml, b, from, p)
	}
	return ml
}

// appendPawnMoves generates pushes, double pushes, captures, en passant and
// promotion variants.
func appendPawnMoves(ml MoveList, b Board, from Square, p Piece) MoveList {
	row, col := from.Unpack()
	dir := p.Color.forward()
	ahead := row + dir
	if !InBounds(ahead, col) {
		return ml
	}

	// add records a destination and, on the last rank, its knight variant.
	add := func(to Square, f Flag) {
		ml = append(ml, Move{From: from, To: to, Flags: f})
		if to.Row() == p.Color.lastRow() {
			ml = append(ml, Move{From: from, To: to, Flags: f | PromoteKnight})
		}
	}

	if b.IsEmpty(ahead, col) {
		add(Pack(ahead, col), NoFlags)
		if row == p.Color.pawnRow() && b.IsEmpty(ahead+dir, col) {
			ml = append(ml, Move{From: from, To: Pack(ahead+dir, col), Flags: EnPassantable})
		}
	}

	for _, dc := range [2]int{-1, 1} {
		c := col + dc
		if !InBounds(ahead, c) {
			continue
		}
		if b.IsEnemy(p, ahead, c) {
			add(Pack(ahead, c), NoFlags)
			continue
		}
		beside := b.At(row, c)
		if b.IsEmpty(ahead, c) && beside.Type == Pawn && beside.IsEnemy(p) && beside.Flags&EnPassantable != 0 {
			ml = append(ml, Move{From: from, To: Pack(ahead, c), Flags: EnPassantCapture})
		}
	}
	return ml
}

func appendKnightMoves(ml MoveList, b Board, from Square, p Piece) MoveList {
	row, col := from.Unpack()
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			if abs(dr) == abs(dc) || dr == 0 || dc == 0 {
				continue
			}
			if b.IsValidDest(p, row+dr, col+dc) {
				ml = append(ml, Move{From: from, To: Pack(row+dr, col+dc)})
			}
		}
	}
	return ml
}

// appendSlides ray-casts from "from" along each direction, stopping at the
// board edge or the first occupied square (kept when it holds an enemy).
func appendSlides(ml MoveList, b Board, from Square, p Piece, dirs [4][2]int, f Flag) MoveList {
	row, col := from.Unpack()
	for _, d := range dirs {
		for dist := 1; ; dist++ {
			r, c := row+d[0]*dist, col+d[1]*dist
			if !b.IsValidDest(p, r, c) {
				break
			}
			ml = append(ml, Move{From: from, To: Pack(r, c), Flags: f})
			if !b.IsEmpty(r, c) {
				break
			}
		}
	}
	return ml
}

func appendKingSteps(ml MoveList, b Board, from Square, p Piece) MoveList {
	row, col := from.Unpack()
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.IsValidDest(p, row+dr, col+dc) {
				ml = append(ml, Move{From: from, To: Pack(row+dr, col+dc), Flags: NoCastle})
			}
		}
	}
	return ml
}

// castleSides describes the two castling directions by rook column and king step.
var castleSides = [2]struct {
	rookCol int
	step    int
}{
	{rookCol: 7, step: 1},  // kingside
	{rookCol: 0, step: -1}, // queenside
}

// appendCastlingMoves adds castling moves for the king on from. It consults
// the check detector, so it must never be reached from attack generation.
func appendCastlingMoves(ml MoveList, b Board, from Square, king Piece) MoveList {
	if king.Flags&NoCastle != 0 {
		return ml
	}
	home := king.Color.homeRow()
	if from != Pack(home, 4) {
		return ml
	}
	if InCheck(b, king.Color) {
		return ml
	}

	for _, side := range castleSides {
		rook := b.At(home, side.rookCol)
		if rook.Type != Rook || rook.Color != king.Color || rook.Flags&NoCastle != 0 {
			continue
		}

		clear := true
		for c := 4 + side.step; c != side.rookCol; c += side.step {
			if !b.IsEmpty(home, c) {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}

		// The king may not pass through an attacked square.
		through := Move{From: from, To: Pack(home, 4+side.step), Flags: NoCastle}
		if InCheck(ApplyMove(b, through), king.Color) {
			continue
		}

		ml = append(ml, Move{From: from, To: Pack(home, 4+2*side.step), Flags: NoCastle | Castling})
	}
	return ml
}

// validateApplied logs invariant violations when DebugMoveValidation is on.
func validateApplied(before, after Board, m Move) {
	if err := after.Validate(); err != nil {
		log.Printf("APPLYMOVE INVALID: %v after %v: %v%v", err, m, before, after)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

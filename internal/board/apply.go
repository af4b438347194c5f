package board

import "fmt"

// ApplyMove returns the board that results from playing m on b. The input
// board is never modified.
//
// A move that would capture a king, move from an empty square, or capture a
// piece of its own color is a move generation bug and panics.
func ApplyMove(b Board, m Move) Board {
	before := b

	mover := b.PieceAt(m.From)
	if mover.IsEmpty() {
		panic(fmt.Sprintf("board: move %v from empty square", m))
	}
	target := b.PieceAt(m.To)
	if target.Type == King {
		panic(fmt.Sprintf("board: move %v captures the %v king", m, target.Color))
	}
	if !target.IsEmpty() && target.Color == mover.Color {
		panic(fmt.Sprintf("board: move %v captures its own %v", m, target.Type))
	}

	// Moving ends this side's en passant window.
	b = b.WithoutEnPassant(mover.Color)
	mover.Flags &^= EnPassantable

	b.Clear(m.From)
	fromRow, _ := m.From.Unpack()
	toRow, toCol := m.To.Unpack()

	placed := mover
	if m.Flags&EnPassantCapture != 0 {
		victim := Pack(fromRow, toCol)
		if b.PieceAt(victim).Type != Pawn {
			panic(fmt.Sprintf("board: en passant %v without a pawn on %v", m, victim))
		}
		b.Clear(victim)
	} else {
		// Castling eligibility is monotonic; the double-push marker comes
		// from the destination.
		placed.Flags = mover.Flags&NoCastle | m.Flags&pieceFlags
	}

	if mover.Type == Pawn && toRow == mover.Color.lastRow() {
		placed = NewPiece(Queen, mover.Color)
		if m.Flags&PromoteKnight != 0 {
			placed.Type = Knight
		}
	}
	b.Set(m.To, placed)

	if m.Flags&Castling != 0 {
		rookFrom, rookTo := Pack(toRow, 7), Pack(toRow, toCol-1)
		if toCol < 4 {
			rookFrom, rookTo = Pack(toRow, 0), Pack(toRow, toCol+1)
		}
		rook := b.PieceAt(rookFrom)
		if rook.Type != Rook || rook.Color != mover.Color {
			panic(fmt.Sprintf("board: castling %v without a rook on %v", m, rookFrom))
		}
		b.Clear(rookFrom)
		rook.Flags |= NoCastle
		b.Set(rookTo, rook)
	}

	if DebugMoveValidation {
		validateApplied(before, b, m)
	}
	return b
}

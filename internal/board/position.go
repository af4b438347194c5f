package board

import (
	"fmt"
	"strings"
)

// Board is the 8x8 grid of squares. It is a value: assigning or passing a
// Board copies it, so hypothetical moves never disturb the original.
type Board [8][8]Piece

// backRank lists the starting piece types from the a-file to the h-file.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	for col, pt := range backRank {
		b[Black.homeRow()][col] = NewPiece(pt, Black)
		b[Black.pawnRow()][col] = NewPiece(Pawn, Black)
		b[White.pawnRow()][col] = NewPiece(Pawn, White)
		b[White.homeRow()][col] = NewPiece(pt, White)
	}
	return b
}

// Empty returns a board with no pieces, for hand-built positions.
func Empty() Board {
	return Board{}
}

func mustBeOnBoard(row, col int) {
	if !InBounds(row, col) {
		panic(fmt.Sprintf("board: off-board coordinate (%d,%d)", row, col))
	}
}

// At returns the square's content including flags.
func (b Board) At(row, col int) Piece {
	mustBeOnBoard(row, col)
	return b[row][col]
}

// Bare returns the square's content with flags stripped.
func (b Board) Bare(row, col int) Piece {
	return b.At(row, col).Bare()
}

// IsEmpty returns true if the square is empty.
func (b Board) IsEmpty(row, col int) bool {
	return b.At(row, col).IsEmpty()
}

// IsEnemy returns true if the square holds a piece of the other color than mine.
func (b Board) IsEnemy(mine Piece, row, col int) bool {
	return b.At(row, col).IsEnemy(mine)
}

// IsDest returns true if mine could land on the square, ignoring check:
// the square is empty or holds an enemy.
func (b Board) IsDest(mine Piece, row, col int) bool {
	return b.IsEmpty(row, col) || b.IsEnemy(mine, row, col)
}

// IsValidDest is IsDest guarded by a bounds check.
func (b Board) IsValidDest(mine Piece, row, col int) bool {
	return InBounds(row, col) && b.IsDest(mine, row, col)
}

// PieceAt returns the content of a packed square including flags.
func (b Board) PieceAt(sq Square) Piece {
	row, col := sq.Unpack()
	return b[row][col]
}

// Set places p on sq, replacing whatever stood there.
func (b *Board) Set(sq Square, p Piece) {
	row, col := sq.Unpack()
	b[row][col] = p
}

// Clear empties sq.
func (b *Board) Clear(sq Square) {
	b.Set(sq, NoPiece)
}

// KingSquare returns the square of the color's king, or NoSquare if it is missing.
func (b Board) KingSquare(c Color) Square {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.Type == King && p.Color == c {
				return Pack(row, col)
			}
		}
	}
	return NoSquare
}

// Count returns how many pieces of the type and color are on the board.
func (b Board) Count(pt PieceType, c Color) int {
	n := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p.Type == pt && p.Color == c {
				n++
			}
		}
	}
	return n
}

// WithoutEnPassant returns a copy of the board with the EnPassantable flag
// removed from every pawn of color c.
func (b Board) WithoutEnPassant(c Color) Board {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p.Color == c && p.Flags&EnPassantable != 0 {
				b[row][col].Flags &^= EnPassantable
			}
		}
	}
	return b
}

// String returns a visual representation of the board.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d  ", 8-row)
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}

// Validate checks the structural invariants of the board.
func (b Board) Validate() error {
	// Check that each side has exactly one king
	if n := b.Count(King, White); n != 1 {
		return fmt.Errorf("white must have exactly one king, found %d", n)
	}
	if n := b.Count(King, Black); n != 1 {
		return fmt.Errorf("black must have exactly one king, found %d", n)
	}

	for col := 0; col < 8; col++ {
		if b[0][col].Type == Pawn || b[7][col].Type == Pawn {
			return fmt.Errorf("pawns cannot be on rank 1 or 8")
		}
	}

	// At most one en passant candidate per side
	for _, c := range []Color{White, Black} {
		n := 0
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				p := b[row][col]
				if p.Color == c && p.Flags&EnPassantable != 0 {
					if p.Type != Pawn {
						return fmt.Errorf("%v %v at %v carries the en passant flag", c, p.Type, Pack(row, col))
					}
					n++
				}
				if !p.IsEmpty() && p.Flags&^pieceFlags != 0 {
					return fmt.Errorf("piece at %v carries move flags %v", Pack(row, col), p.Flags)
				}
			}
		}
		if n > 1 {
			return fmt.Errorf("%v has %d en passant pawns", c, n)
		}
	}

	return nil
}

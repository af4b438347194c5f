// Package board implements the chess rules on an 8x8 array board: square and
// piece encoding, pseudo-legal and legal move generation, check detection and
// move application.
package board

import "fmt"

// Square is a packed board coordinate: row*8 + col.
// Row 0 is rank 8 (Black's back rank) and column 0 is the a-file,
// so A8=0, H8=7, A1=56, H1=63.
type Square uint8

// Named squares used by castling and tests.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	A2 Square = iota + 48
	B2
	C2
	D2
	E2
	F2
	G2
	H2
)

const (
	A1 Square = iota + 56
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

// NoSquare marks the absence of a square.
const NoSquare Square = 64

// InBounds returns true if (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row <= 7 && col >= 0 && col <= 7
}

// Pack converts a (row, col) pair into a Square. Out of range coordinates panic.
func Pack(row, col int) Square {
	if !InBounds(row, col) {
		panic(fmt.Sprintf("board: pack of off-board coordinate (%d,%d)", row, col))
	}
	return Square(row*8 + col)
}

// Unpack converts a Square back into (row, col).
func (sq Square) Unpack() (row, col int) {
	if sq >= NoSquare {
		panic(fmt.Sprintf("board: unpack of invalid square %d", sq))
	}
	return int(sq) / 8, int(sq) % 8
}

// Row returns the array row of the square (0 = rank 8).
func (sq Square) Row() int {
	r, _ := sq.Unpack()
	return r
}

// Col returns the array column of the square (0 = a-file).
func (sq Square) Col() int {
	_, c := sq.Unpack()
	return c
}

// IsValid returns true if the square is on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	row, col := sq.Unpack()
	return fmt.Sprintf("%c%c", 'a'+col, '8'-row)
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	col := int(s[0]) - 'a'
	row := '8' - int(s[1])

	if !InBounds(row, col) {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return Pack(row, col), nil
}

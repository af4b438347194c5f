package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// forward is the row delta a pawn of this color advances by.
// Row 0 is Black's back rank, so White moves toward lower rows.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// homeRow returns the back rank row of the color.
func (c Color) homeRow() int {
	if c == White {
		return 7
	}
	return 0
}

// pawnRow returns the row pawns of the color start on.
func (c Color) pawnRow() int {
	return c.homeRow() + c.forward()
}

// lastRow returns the row on which pawns of the color promote.
func (c Color) lastRow() int {
	return c.Other().homeRow()
}

// PieceType represents the type of a chess piece. The zero value is an empty square.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if pt > King {
		return ' '
	}
	return chars[pt]
}

// Flag is a set of transient markers attached to a square's occupant or to a
// move destination.
type Flag uint8

const (
	// NoCastle marks a king or rook that has lost castling eligibility.
	NoCastle Flag = 1 << iota
	// EnPassantable marks a pawn that double-advanced on the previous ply.
	EnPassantable
	// Castling marks a king destination that castles.
	Castling
	// EnPassantCapture marks a pawn destination that captures en passant.
	EnPassantCapture
	// PromoteKnight marks a last-rank pawn destination that underpromotes.
	PromoteKnight

	NoFlags Flag = 0

	// pieceFlags are the only flags an occupant may carry.
	pieceFlags = NoCastle | EnPassantable
)

// Has returns true if all bits of f2 are set in f.
func (f Flag) Has(f2 Flag) bool {
	return f&f2 == f2
}

// String returns a compact list of the set flags.
func (f Flag) String() string {
	if f == NoFlags {
		return "-"
	}
	s := ""
	names := []struct {
		f    Flag
		name string
	}{
		{NoCastle, "nocastle"},
		{EnPassantable, "ep"},
		{Castling, "castle"},
		{EnPassantCapture, "epcapture"},
		{PromoteKnight, "=N"},
	}
	for _, n := range names {
		if f&n.f != 0 {
			if s != "" {
				s += ","
			}
			s += n.name
		}
	}
	return s
}

// PieceValue returns the material value of the piece type in centipawns.
// Kings never leave the board, so they carry no material value.
var PieceValue = [7]int{0, 100, 300, 300, 500, 900, 0}

// Piece is the content of a square: what stands there, whose it is, and any
// flags attached to it. The zero Piece is an empty square.
type Piece struct {
	Type  PieceType
	Color Color
	Flags Flag
}

// NoPiece is the empty square.
var NoPiece = Piece{}

// NewPiece creates a flagless Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	return Piece{Type: pt, Color: c}
}

// IsEmpty returns true if no piece stands on the square.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// Bare returns the piece with all flags stripped.
func (p Piece) Bare() Piece {
	return Piece{Type: p.Type, Color: p.Color}
}

// IsEnemy returns true if p is occupied by a piece of the other color than q.
func (p Piece) IsEnemy(q Piece) bool {
	return !p.IsEmpty() && p.Color != q.Color
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type]
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	c := p.Type.Char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return string(c)
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return NewPiece(Pawn, color)
	case 'N':
		return NewPiece(Knight, color)
	case 'B':
		return NewPiece(Bishop, color)
	case 'R':
		return NewPiece(Rook, color)
	case 'Q':
		return NewPiece(Queen, color)
	case 'K':
		return NewPiece(King, color)
	default:
		return NoPiece
	}
}

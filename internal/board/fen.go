package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Setup is a board together with the game state a FEN string carries.
type Setup struct {
	Board          Board
	SideToMove     Color
	HalfMoveClock  int // Plies since the last pawn move or capture
	FullMoveNumber int // Starts at 1, incremented after Black moves
}

// NewSetup returns the starting position with White to move.
func NewSetup() Setup {
	return Setup{Board: NewBoard(), SideToMove: White, FullMoveNumber: 1}
}

// castleCorners maps FEN castling characters to the king and rook they concern.
var castleCorners = map[byte]struct {
	color   Color
	rookCol int
}{
	'K': {White, 7},
	'Q': {White, 0},
	'k': {Black, 7},
	'q': {Black, 0},
}

// ParseFEN parses a FEN string into a Setup.
//
// Castling availability becomes the absence of NoCastle on the king and the
// corresponding rook; the en passant target becomes EnPassantable on the pawn
// that just double-advanced.
func ParseFEN(fen string) (Setup, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return Setup{}, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	s := Setup{FullMoveNumber: 1}

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(&s.Board, parts[0]); err != nil {
		return Setup{}, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		s.SideToMove = White
	case "b":
		s.SideToMove = Black
	default:
		return Setup{}, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	// Parse castling rights (field 2)
	if err := parseCastlingRights(&s.Board, parts[2]); err != nil {
		return Setup{}, err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return Setup{}, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		if err := markEnPassant(&s.Board, sq, s.SideToMove.Other()); err != nil {
			return Setup{}, err
		}
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return Setup{}, fmt.Errorf("invalid half-move clock: %s", parts[4])
		}
		s.HalfMoveClock = hmc
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return Setup{}, fmt.Errorf("invalid full-move number: %s", parts[5])
		}
		s.FullMoveNumber = fmn
	}

	return s, nil
}

// MustParseFEN is ParseFEN for known-good strings; it panics on error.
func MustParseFEN(fen string) Setup {
	s, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return s
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	// FEN starts from rank 8, which is row 0.
	for row, rankStr := range ranks {
		col := 0

		for _, c := range rankStr {
			if col > 7 {
				return fmt.Errorf("too many squares in rank %d", 8-row)
			}

			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece.IsEmpty() {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			// Kings and rooks start ineligible; the castling field grants rights.
			if piece.Type == King || piece.Type == Rook {
				piece.Flags = NoCastle
			}
			b[row][col] = piece
			col++
		}

		if col != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", 8-row, col)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(b *Board, castling string) error {
	if castling == "-" {
		return nil
	}

	for i := 0; i < len(castling); i++ {
		corner, ok := castleCorners[castling[i]]
		if !ok {
			return fmt.Errorf("invalid castling character: %c", castling[i])
		}
		home := corner.color.homeRow()
		king := b.At(home, 4)
		rook := b.At(home, corner.rookCol)
		if king.Type != King || king.Color != corner.color || rook.Type != Rook || rook.Color != corner.color {
			return fmt.Errorf("castling right %c without king and rook on their home squares", castling[i])
		}
		b[home][4].Flags &^= NoCastle
		b[home][corner.rookCol].Flags &^= NoCastle
	}

	return nil
}

// markEnPassant flags the pawn of color owner that passed over target.
func markEnPassant(b *Board, target Square, owner Color) error {
	row, col := target.Unpack()
	pawnRow := row + owner.forward()
	if !InBounds(pawnRow, col) || pawnRow != owner.pawnRow()+2*owner.forward() {
		return fmt.Errorf("invalid en passant square: %v", target)
	}
	p := b.At(pawnRow, col)
	if p.Type != Pawn || p.Color != owner {
		return fmt.Errorf("en passant square %v without a %v pawn in front of it", target, owner)
	}
	b[pawnRow][col].Flags |= EnPassantable
	return nil
}

// castlingString returns the FEN castling field of b.
func castlingString(b Board) string {
	s := ""
	for _, ch := range []byte{'K', 'Q', 'k', 'q'} {
		corner := castleCorners[ch]
		home := corner.color.homeRow()
		king := b[home][4]
		rook := b[home][corner.rookCol]
		if king.Type == King && king.Color == corner.color && king.Flags&NoCastle == 0 &&
			rook.Type == Rook && rook.Color == corner.color && rook.Flags&NoCastle == 0 {
			s += string(ch)
		}
	}
	if s == "" {
		return "-"
	}
	return s
}

// enPassantTarget returns the square behind the pawn of owner that may be
// captured en passant, or NoSquare.
func enPassantTarget(b Board, owner Color) Square {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.Type == Pawn && p.Color == owner && p.Flags&EnPassantable != 0 {
				return Pack(row-owner.forward(), col)
			}
		}
	}
	return NoSquare
}

// FEN returns the FEN representation of the setup.
func (s Setup) FEN() string {
	var sb strings.Builder

	// Piece placement
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			piece := s.Board[row][col]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if s.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(castlingString(s.Board))

	sb.WriteByte(' ')
	sb.WriteString(enPassantTarget(s.Board, s.SideToMove.Other()).String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(s.FullMoveNumber))

	return sb.String()
}

package board

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Move is a candidate move: source square, destination square, the flags
// attached to the destination, and the score the search gave it.
type Move struct {
	From  Square
	To    Square
	Flags Flag
	Score int
}

// NoMove is the "no move" sentinel returned when a side has nothing to play.
var NoMove = Move{From: NoSquare, To: NoSquare}

// IsNone returns true for the NoMove sentinel.
func (m Move) IsNone() bool {
	return m.From == NoSquare
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Flags&Castling != 0
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flags&EnPassantCapture != 0
}

// IsCapture returns true if this move captures a piece on b.
func (m Move) IsCapture(b Board) bool {
	if m.IsEnPassant() {
		return true
	}
	return !b.PieceAt(m.To).IsEmpty()
}

// Promotion returns the piece type a pawn becomes, or NoPieceType if the move
// is not a promotion on b.
func (m Move) Promotion(b Board) PieceType {
	p := b.PieceAt(m.From)
	if p.Type != Pawn || m.To.Row() != p.Color.lastRow() {
		return NoPieceType
	}
	if m.Flags&PromoteKnight != 0 {
		return Knight
	}
	return Queen
}

// SameAs compares the move identity (endpoints and flags), ignoring the score.
func (m Move) SameAs(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Flags == o.Flags
}

// String returns the coordinate form of the move (e.g., "e2e4", "e7e8n").
// Queen promotion is the default and carries no suffix.
func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Flags&PromoteKnight != 0 {
		s += "n"
	}
	return s
}

// UCI returns the move in UCI form on b, spelling out queen promotions.
func (m Move) UCI(b Board) string {
	if m.IsNone() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	switch m.Promotion(b) {
	case Queen:
		s += "q"
	case Knight:
		s += "n"
	}
	return s
}

// MoveList is an ordered list of moves.
type MoveList []Move

// Contains returns true if the list holds a move with the same identity as m.
func (ml MoveList) Contains(m Move) bool {
	return slices.IndexFunc(ml, m.SameAs) >= 0
}

// To returns the moves in the list that land on sq.
func (ml MoveList) To(sq Square) MoveList {
	var out MoveList
	for _, m := range ml {
		if m.To == sq {
			out = append(out, m)
		}
	}
	return out
}

// From returns the moves in the list that start on sq.
func (ml MoveList) From(sq Square) MoveList {
	var out MoveList
	for _, m := range ml {
		if m.From == sq {
			out = append(out, m)
		}
	}
	return out
}

// String returns the moves separated by spaces.
func (ml MoveList) String() string {
	parts := make([]string, len(ml))
	for i, m := range ml {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// FindMove looks up a legal move of side on b by its endpoints. A knight
// promotion is selected with promoteKnight; otherwise the default variant.
func FindMove(b Board, side Color, from, to Square, promoteKnight bool) (Move, error) {
	for _, m := range LegalMoves(b, side) {
		if m.From != from || m.To != to {
			continue
		}
		if (m.Flags&PromoteKnight != 0) != promoteKnight {
			continue
		}
		return m, nil
	}
	return NoMove, fmt.Errorf("no legal move %v%v for %v", from, to, side)
}

package game

import (
	"fmt"

	"github.com/hailam/autochess/internal/board"
)

// Termination is the reason a game ended.
type Termination int

const (
	Unterminated Termination = iota
	Checkmate
	Stalemate
	SeventyFiveMoveRule
	FivefoldRepetition
	PlyLimit
	Abandoned
)

var terminationNames = map[Termination]string{
	Unterminated:        "unterminated",
	Checkmate:           "checkmate",
	Stalemate:           "stalemate",
	SeventyFiveMoveRule: "75-move rule",
	FivefoldRepetition:  "fivefold repetition",
	PlyLimit:            "ply limit",
	Abandoned:           "abandoned",
}

// String returns the termination name.
func (t Termination) String() string {
	if name, ok := terminationNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Termination(%d)", int(t))
}

// ParseTermination is the inverse of Termination.String.
func ParseTermination(s string) (Termination, error) {
	for t, name := range terminationNames {
		if name == s {
			return t, nil
		}
	}
	return Unterminated, fmt.Errorf("unknown termination %q", s)
}

// Outcome describes how a game ended. Winner is only meaningful for checkmate.
type Outcome struct {
	Termination Termination
	Winner      board.Color
}

// Decisive returns true if one side won.
func (o Outcome) Decisive() bool {
	return o.Termination == Checkmate
}

// Result returns the PGN result token.
func (o Outcome) Result() string {
	switch o.Termination {
	case Checkmate:
		if o.Winner == board.White {
			return "1-0"
		}
		return "0-1"
	case Stalemate, SeventyFiveMoveRule, FivefoldRepetition:
		return "1/2-1/2"
	}
	return "*"
}

// String returns a human-readable description of the outcome.
func (o Outcome) String() string {
	switch o.Termination {
	case Unterminated:
		return "Game in progress"
	case Checkmate:
		return fmt.Sprintf("%v wins by checkmate", o.Winner)
	case Stalemate, SeventyFiveMoveRule, FivefoldRepetition:
		return "Draw by " + o.Termination.String()
	case PlyLimit:
		return "Stopped at the ply limit"
	}
	return "Game " + o.Termination.String()
}

// Package game runs engine-versus-engine games: it asks a player for each
// move, applies it, keeps the move history, and decides when the game ends.
package game

import (
	"context"
	"fmt"
	"log"

	"github.com/hailam/autochess/internal/board"
	"github.com/hailam/autochess/internal/engine"
)

// Draw thresholds. The 75-move rule counts plies without a pawn move or
// capture; repetition counts occurrences of the same position.
const (
	NoProgressPlies = 150
	RepetitionLimit = 5
	DefaultMaxPlies = 500
)

// Player chooses moves. *engine.Engine satisfies it.
type Player interface {
	Search(b board.Board, side board.Color) (board.Move, engine.SearchInfo)
}

// Ply is one played half-move.
type Ply struct {
	Number int // 1-based ply index
	Color  board.Color
	Move   board.Move
	UCI    string
	Score  int
	Nodes  uint64
	After  board.Setup
}

// Game is a single game between two players.
type Game struct {
	start   board.Setup
	setup   board.Setup
	players [2]Player
	plies   []Ply
	hashes  map[uint64]int
	outcome Outcome

	// MaxPlies stops the game after that many plies; 0 means no limit.
	MaxPlies int

	// Callbacks
	OnMove func(Ply)
}

// New creates a game from the starting position.
func New(white, black Player) *Game {
	return FromSetup(board.NewSetup(), white, black)
}

// FromSetup creates a game from an arbitrary position.
func FromSetup(s board.Setup, white, black Player) *Game {
	g := &Game{
		start:    s,
		setup:    s,
		players:  [2]Player{white, black},
		hashes:   map[uint64]int{s.Hash(): 1},
		MaxPlies: DefaultMaxPlies,
	}
	g.checkGameEnd()
	return g
}

// Step plays one ply. It returns false once the game is over.
func (g *Game) Step() bool {
	if g.Over() {
		return false
	}

	side := g.setup.SideToMove
	b := g.setup.Board
	move, info := g.players[side].Search(b, side)
	if move.IsNone() {
		// A player without a move means the position is terminal.
		g.checkGameEnd()
		if !g.Over() {
			log.Printf("[GAME] %v returned no move in a live position", side)
			g.outcome = Outcome{Termination: Abandoned}
		}
		return false
	}

	g.makeMove(move, info)
	return !g.Over()
}

// Run plays until the game ends or ctx is done.
func (g *Game) Run(ctx context.Context) (Outcome, error) {
	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return g.outcome, fmt.Errorf("game stopped after %d plies: %w", len(g.plies), err)
		}
		g.Step()
	}
	return g.outcome, nil
}

// makeMove applies a move to the game.
func (g *Game) makeMove(m board.Move, info engine.SearchInfo) {
	b := g.setup.Board
	side := g.setup.SideToMove

	resets := b.PieceAt(m.From).Type == board.Pawn || m.IsCapture(b)

	g.setup.Board = board.ApplyMove(b, m)
	g.setup.SideToMove = side.Other()
	if resets {
		g.setup.HalfMoveClock = 0
	} else {
		g.setup.HalfMoveClock++
	}
	if side == board.Black {
		g.setup.FullMoveNumber++
	}

	ply := Ply{
		Number: len(g.plies) + 1,
		Color:  side,
		Move:   m,
		UCI:    m.UCI(b),
		Score:  info.Score,
		Nodes:  info.Nodes,
		After:  g.setup,
	}
	g.plies = append(g.plies, ply)

	// Record position hash for repetition detection
	g.hashes[g.setup.Hash()]++

	if g.OnMove != nil {
		g.OnMove(ply)
	}

	g.checkGameEnd()
}

// checkGameEnd checks if the game is over.
func (g *Game) checkGameEnd() {
	b := g.setup.Board
	side := g.setup.SideToMove

	switch {
	case !board.HasLegalMove(b, side):
		if board.InCheck(b, side) {
			g.outcome = Outcome{Termination: Checkmate, Winner: side.Other()}
		} else {
			g.outcome = Outcome{Termination: Stalemate}
		}
	case g.hashes[g.setup.Hash()] >= RepetitionLimit:
		g.outcome = Outcome{Termination: FivefoldRepetition}
	case g.setup.HalfMoveClock >= NoProgressPlies:
		g.outcome = Outcome{Termination: SeventyFiveMoveRule}
	case g.MaxPlies > 0 && len(g.plies) >= g.MaxPlies:
		g.outcome = Outcome{Termination: PlyLimit}
	}
}

// Over returns true if the game is over.
func (g *Game) Over() bool {
	return g.outcome.Termination != Unterminated
}

// Outcome returns how the game ended, if it has.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Start returns the position the game started from.
func (g *Game) Start() board.Setup {
	return g.start
}

// Position returns the current position.
func (g *Game) Position() board.Setup {
	return g.setup
}

// Plies returns the move history.
func (g *Game) Plies() []Ply {
	return g.plies
}

// LastMove returns the most recent move, or board.NoMove.
func (g *Game) LastMove() board.Move {
	if len(g.plies) == 0 {
		return board.NoMove
	}
	return g.plies[len(g.plies)-1].Move
}

// Moves returns the UCI strings of the played moves.
func (g *Game) Moves() []string {
	out := make([]string, len(g.plies))
	for i, p := range g.plies {
		out[i] = p.UCI
	}
	return out
}

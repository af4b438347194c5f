package engine

import (
	"strconv"
	"time"

	"github.com/hailam/autochess/internal/board"
)

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	Move     board.Move
	HashFull int // Permille of score cache used
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // Candidate moves only
	Medium                   // Looks at every reply
	Hard                     // Reply and counter-reply
)

// DifficultySettings maps difficulty to search depth. A depth counts the
// plies searched past the candidate move, so depth d looks d+1 plies ahead
// and Hard is the classic 3-ply search.
var DifficultySettings = map[Difficulty]int{
	Easy:   0,
	Medium: 1,
	Hard:   2,
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "custom"
}

// Engine is the chess AI engine.
type Engine struct {
	searcher *Searcher
	cache    *ScoreCache
	depth    int

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine drawing ties from rng, with a score
// cache of the given size in MB. A size of 0 disables the cache.
func NewEngine(rng Rand, cacheSizeMB int) *Engine {
	var cache *ScoreCache
	if cacheSizeMB > 0 {
		cache = NewScoreCache(cacheSizeMB)
	}
	return &Engine{
		searcher: NewSearcher(rng, cache),
		cache:    cache,
		depth:    DifficultySettings[Hard],
	}
}

// SetDifficulty sets the search depth from a difficulty preset.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.depth = DifficultySettings[d]
}

// SetDepth sets the search depth directly. Negative depths are treated as 0.
func (e *Engine) SetDepth(depth int) {
	if depth < 0 {
		depth = 0
	}
	e.depth = depth
}

// Depth returns the configured search depth.
func (e *Engine) Depth() int {
	return e.depth
}

// Search finds a move for side on b. It returns board.NoMove when side has
// no legal move.
func (e *Engine) Search(b board.Board, side board.Color) (board.Move, SearchInfo) {
	e.searcher.Reset()
	startTime := time.Now()

	move, ok := e.searcher.ChooseMove(b, side, e.depth)
	if !ok {
		move = board.NoMove
	}

	info := SearchInfo{
		Depth: e.depth,
		Score: move.Score,
		Nodes: e.searcher.Nodes(),
		Time:  time.Since(startTime),
		Move:  move,
	}
	if e.cache != nil {
		info.HashFull = e.cache.HashFull()
	}

	if e.OnInfo != nil {
		e.OnInfo(info)
	}
	return move, info
}

// Clear clears the score cache.
func (e *Engine) Clear() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// Perft counts the leaf nodes of the legal move tree (for debugging move generation).
func (e *Engine) Perft(b board.Board, side board.Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := board.LegalMoves(b, side)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		nodes += e.Perft(board.ApplyMove(b, m), side.Other(), depth-1)
	}
	return nodes
}

// Divide returns the perft count below each legal move of side.
func (e *Engine) Divide(b board.Board, side board.Color, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth < 1 {
		return out
	}
	for _, m := range board.LegalMoves(b, side) {
		out[m.UCI(b)] = e.Perft(board.ApplyMove(b, m), side.Other(), depth-1)
	}
	return out
}

// Evaluate returns the static evaluation of b for side.
func (e *Engine) Evaluate(b board.Board, side board.Color) int {
	return Evaluate(b, side)
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score >= MateScore {
		return "Mate"
	}
	if score <= -MateScore {
		return "Mated"
	}

	// Convert centipawns to pawns
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	pawns := score / 100
	centipawns := score % 100

	cp := strconv.Itoa(centipawns)
	if centipawns < 10 {
		cp = "0" + cp
	}
	return sign + strconv.Itoa(pawns) + "." + cp
}

package engine

import (
	"github.com/hailam/autochess/internal/board"
)

// Search constants
const (
	// MateScore is the score of delivering checkmate. The remaining depth is
	// added on top so that quicker mates rank higher.
	MateScore = 100000
	// StalemateScore is the score of leaving the opponent without a move
	// while not in check.
	StalemateScore = 500
	// IllegalScore marks a candidate that leaves the mover in check.
	IllegalScore = -2 * MateScore
)

// Rand is the source of tie-breaking randomness. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Searcher performs a full-width fixed-depth search. Scores depend only on
// board, side and depth; the random source only picks among equal moves.
type Searcher struct {
	rng   Rand
	cache *ScoreCache
	nodes uint64
}

// NewSearcher creates a new searcher drawing ties from rng. A nil cache
// searches every subtree from scratch.
func NewSearcher(rng Rand, cache *ScoreCache) *Searcher {
	return &Searcher{rng: rng, cache: cache}
}

// Reset clears the node counter.
func (s *Searcher) Reset() {
	s.nodes = 0
}

// Nodes returns the number of positions visited since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// ChooseMove picks a move for side on b, looking depth plies past the
// candidate move. The returned move carries its score. When side has no
// legal move ok is false; board.InCheck tells checkmate from stalemate.
func (s *Searcher) ChooseMove(b board.Board, side board.Color, depth int) (board.Move, bool) {
	var best board.MoveList
	bestScore := IllegalScore

	for _, m := range board.PseudoLegalMoves(b, side) {
		s.nodes++
		scratch := board.ApplyMove(b, m)
		if board.InCheck(scratch, side) {
			continue
		}

		m.Score = s.candidateScore(scratch, side, side, depth)
		if m.Score > bestScore {
			bestScore = m.Score
			best = best[:0]
		}
		if m.Score == bestScore {
			best = append(best, m)
		}
	}

	if len(best) == 0 {
		return board.NoMove, false
	}
	if len(best) == 1 {
		return best[0], true
	}
	return best[s.rng.Intn(len(best))], true
}

// candidateScore scores the position reached after side moved, from side's
// point of view. Leaves are evaluated for root, the side that started the
// search, and negated on the plies where side is root's opponent.
func (s *Searcher) candidateScore(scratch board.Board, side, root board.Color, depth int) int {
	opp := side.Other()
	if depth > 0 {
		if reply, ok := s.value(scratch, opp, root, depth-1); ok {
			return -reply
		}
	} else if board.HasLegalMove(scratch, opp) {
		if side == root {
			return Evaluate(scratch, root)
		}
		return -Evaluate(scratch, root)
	}

	if board.InCheck(scratch, opp) {
		return MateScore + depth
	}
	return StalemateScore
}

// rootKeys separate cache entries by the side leaves are evaluated for.
var rootKeys = [2]uint64{board.White: 0, board.Black: 0x9e3779b97f4a7c15}

// value returns the best candidate score side can reach on b, or false if
// side has no legal move.
func (s *Searcher) value(b board.Board, side, root board.Color, depth int) (int, bool) {
	var hash uint64
	if s.cache != nil {
		hash = board.Hash(b, side) ^ rootKeys[root]
		if score, ok := s.cache.Probe(hash, depth); ok {
			return score, score != IllegalScore
		}
	}

	best := IllegalScore
	for _, m := range board.PseudoLegalMoves(b, side) {
		s.nodes++
		scratch := board.ApplyMove(b, m)
		if board.InCheck(scratch, side) {
			continue
		}
		if score := s.candidateScore(scratch, side, root, depth); score > best {
			best = score
		}
	}

	if s.cache != nil {
		s.cache.Store(hash, depth, best)
	}
	return best, best != IllegalScore
}

package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][7][64]uint64 // [Color][PieceType][Square] - 7 to handle NoPieceType safely
	zobristEnPassant  [8]uint64        // One per file
	zobristCastling   [2][2]uint64     // [Color][short, long]
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A8; sq <= H1; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	for c := White; c <= Black; c++ {
		zobristCastling[c][0] = rng.next()
		zobristCastling[c][1] = rng.next()
	}

	zobristSideToMove = rng.next()
}

// Hash returns the Zobrist hash of b with side to move. Two boards hash
// equal when they hold the same pieces, castling eligibility and en passant
// chance, which is what repetition counting needs.
func Hash(b Board, side Color) uint64 {
	var h uint64
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.IsEmpty() {
				continue
			}
			h ^= zobristPiece[p.Color][p.Type][Pack(row, col)]
			if p.Type == Pawn && p.Flags&EnPassantable != 0 && p.Color != side {
				h ^= zobristEnPassant[col]
			}
		}
	}

	for c := White; c <= Black; c++ {
		home := c.homeRow()
		king := b[home][4]
		if king.Type != King || king.Color != c || king.Flags&NoCastle != 0 {
			continue
		}
		for i, cs := range castleSides {
			rook := b[home][cs.rookCol]
			if rook.Type == Rook && rook.Color == c && rook.Flags&NoCastle == 0 {
				h ^= zobristCastling[c][i]
			}
		}
	}

	if side == Black {
		h ^= zobristSideToMove
	}
	return h
}

// Hash returns the Zobrist hash of the setup's board and side to move.
func (s Setup) Hash() uint64 {
	return Hash(s.Board, s.SideToMove)
}

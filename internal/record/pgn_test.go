package record

import (
	"strings"
	"testing"

	"github.com/notnil/chess"

	"github.com/hailam/autochess/internal/board"
	"github.com/hailam/autochess/internal/engine"
	"github.com/hailam/autochess/internal/game"
)

// script replays fixed UCI moves for both sides.
type script struct {
	t     *testing.T
	moves []string
}

func (s *script) Search(b board.Board, side board.Color) (board.Move, engine.SearchInfo) {
	if len(s.moves) == 0 {
		return board.NoMove, engine.SearchInfo{}
	}
	uci := s.moves[0]
	s.moves = s.moves[1:]
	from, _ := board.ParseSquare(uci[:2])
	to, _ := board.ParseSquare(uci[2:4])
	m, err := board.FindMove(b, side, from, to, len(uci) == 5 && uci[4] == 'n')
	if err != nil {
		s.t.Fatal(err)
	}
	return m, engine.SearchInfo{Move: m}
}

func playScript(t *testing.T, start board.Setup, moves ...string) *game.Game {
	t.Helper()
	p := &script{t: t, moves: moves}
	g := game.FromSetup(start, p, p)
	for i := 0; i < len(moves) && g.Step(); i++ {
	}
	return g
}

func TestFoolsMatePGN(t *testing.T) {
	g := playScript(t, board.NewSetup(), "f2f3", "e7e5", "g2g4", "d8h4")
	pgn, err := PGN(g, Tags{Event: "Self-play", White: "autochess", Black: "autochess", Date: "2026.10.18"})
	if err != nil {
		t.Fatal(err)
	}
	t.Log("\n" + pgn)

	for _, want := range []string{
		`[Event "Self-play"]`,
		`[Site "?"]`,
		`[Result "0-1"]`,
		`[Termination "checkmate"]`,
		`[PlyCount "4"]`,
		"1. f3 e5 2. g4 Qh4# 0-1",
	} {
		if !strings.Contains(pgn, want) {
			t.Errorf("PGN missing %q", want)
		}
	}
	if strings.Contains(pgn, "[FEN ") {
		t.Error("a game from the starting position needs no FEN tag")
	}

	// The export must read back.
	opt, err := chess.PGN(strings.NewReader(pgn))
	if err != nil {
		t.Fatalf("reading PGN back: %v", err)
	}
	back := chess.NewGame(opt)
	if len(back.Moves()) != 4 {
		t.Errorf("read back %d moves, want 4", len(back.Moves()))
	}
	if back.Outcome() != chess.BlackWon {
		t.Errorf("read back outcome %v, want 0-1", back.Outcome())
	}
}

func TestPGNFromPosition(t *testing.T) {
	start := board.MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 20")
	g := playScript(t, start, "e8c8", "e1g1")

	pgn, err := PGN(g, Tags{})
	if err != nil {
		t.Fatal(err)
	}
	t.Log("\n" + pgn)

	for _, want := range []string{
		`[SetUp "1"]`,
		`[FEN "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 20"]`,
		`[Result "*"]`,
		"20... O-O-O 21. O-O *",
	} {
		if !strings.Contains(pgn, want) {
			t.Errorf("PGN missing %q", want)
		}
	}
}

func TestSANMoves(t *testing.T) {
	tests := []struct {
		fen  string
		uci  []string
		want []string
	}{
		{board.StartFEN, []string{"e2e4", "e7e5", "g1f3"}, []string{"e4", "e5", "Nf3"}},
		{"1r5k/P7/8/8/8/8/8/K7 w - - 0 1", []string{"a7a8q"}, []string{"a8=Q"}},
		{"1r5k/P7/8/8/8/8/8/K7 w - - 0 1", []string{"a7b8n"}, []string{"axb8=N"}},
		{"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", []string{"e5f6"}, []string{"exf6"}},
	}

	for _, tc := range tests {
		got, err := SANMoves(board.MustParseFEN(tc.fen), tc.uci)
		if err != nil {
			t.Errorf("%s %v: %v", tc.fen, tc.uci, err)
			continue
		}
		if strings.Join(got, " ") != strings.Join(tc.want, " ") {
			t.Errorf("%s %v: got %v, want %v", tc.fen, tc.uci, got, tc.want)
		}
	}

	if _, err := SANMoves(board.NewSetup(), []string{"e2e5"}); err == nil {
		t.Error("an illegal move should fail")
	}
}

func TestWrapLongGames(t *testing.T) {
	var moves []string
	for i := 0; i < 10; i++ {
		moves = append(moves, "g1f3", "g8f6", "f3g1", "f6g8")
	}
	g := playScript(t, board.NewSetup(), moves...)

	pgn, err := PGN(g, Tags{})
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(pgn, "\n") {
		if len(line) > maxLineLength && !strings.HasPrefix(line, "[") {
			t.Errorf("line too long (%d): %q", len(line), line)
		}
	}
	if !strings.Contains(pgn, `[Termination "fivefold repetition"]`) {
		t.Errorf("expected a fivefold repetition draw:\n%s", pgn)
	}
}

// Package record turns finished games into PGN.
//
// Move text is produced by replaying the game's UCI moves through
// github.com/notnil/chess, which also serves as an independent check that
// every move the engine played is legal.
package record

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"github.com/hailam/autochess/internal/board"
	"github.com/hailam/autochess/internal/game"
)

// Tags are the PGN header values a caller may set. Empty values are written
// as the PGN "unknown" placeholders.
type Tags struct {
	Event string
	Site  string
	Date  string // YYYY.MM.DD
	Round string
	White string
	Black string
}

// maxLineLength is the PGN export line limit for move text.
const maxLineLength = 79

// SANMoves replays uci from start and returns the moves in standard
// algebraic notation.
func SANMoves(start board.Setup, uci []string) ([]string, error) {
	g, err := newReplay(start)
	if err != nil {
		return nil, err
	}

	san := make([]string, 0, len(uci))
	for i, mv := range uci {
		m, err := chess.UCINotation{}.Decode(g.Position(), mv)
		if err != nil {
			return nil, fmt.Errorf("ply %d %q: %w", i+1, mv, err)
		}
		san = append(san, chess.AlgebraicNotation{}.Encode(g.Position(), m))
		if err := g.Move(m); err != nil {
			return nil, fmt.Errorf("ply %d %q: %w", i+1, mv, err)
		}
	}
	return san, nil
}

func newReplay(start board.Setup) (*chess.Game, error) {
	if start.FEN() == board.StartFEN {
		return chess.NewGame(), nil
	}
	fen, err := chess.FEN(start.FEN())
	if err != nil {
		return nil, fmt.Errorf("setting up %q: %w", start.FEN(), err)
	}
	return chess.NewGame(fen), nil
}

// PGN returns the game in PGN export format.
func PGN(g *game.Game, tags Tags) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, g, tags); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes the game to w in PGN export format.
func Write(w io.Writer, g *game.Game, tags Tags) error {
	start := g.Start()
	san, err := SANMoves(start, g.Moves())
	if err != nil {
		return fmt.Errorf("converting moves: %w", err)
	}
	outcome := g.Outcome()

	var sb strings.Builder
	writeTag(&sb, "Event", tags.Event, "?")
	writeTag(&sb, "Site", tags.Site, "?")
	writeTag(&sb, "Date", tags.Date, "????.??.??")
	writeTag(&sb, "Round", tags.Round, "?")
	writeTag(&sb, "White", tags.White, "?")
	writeTag(&sb, "Black", tags.Black, "?")
	writeTag(&sb, "Result", outcome.Result(), "*")
	if start.FEN() != board.StartFEN {
		writeTag(&sb, "SetUp", "1", "")
		writeTag(&sb, "FEN", start.FEN(), "")
	}
	if outcome.Termination != game.Unterminated {
		writeTag(&sb, "Termination", outcome.Termination.String(), "")
	}
	writeTag(&sb, "PlyCount", strconv.Itoa(len(san)), "")
	sb.WriteByte('\n')

	sb.WriteString(wrap(moveTokens(start, san, outcome.Result())))
	sb.WriteByte('\n')

	_, err = io.WriteString(w, sb.String())
	return err
}

func writeTag(sb *strings.Builder, key, value, unknown string) {
	if value == "" {
		value = unknown
	}
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	fmt.Fprintf(sb, "[%s \"%s\"]\n", key, value)
}

// moveTokens numbers the SAN moves starting from the setup's move number.
func moveTokens(start board.Setup, san []string, result string) []string {
	tokens := make([]string, 0, len(san)*3/2+1)
	number := start.FullMoveNumber
	side := start.SideToMove
	for i, m := range san {
		switch {
		case side == board.White:
			tokens = append(tokens, strconv.Itoa(number)+".")
		case i == 0:
			tokens = append(tokens, strconv.Itoa(number)+"...")
		}
		tokens = append(tokens, m)
		if side == board.Black {
			number++
		}
		side = side.Other()
	}
	return append(tokens, result)
}

// wrap joins tokens with spaces, breaking lines before maxLineLength.
func wrap(tokens []string) string {
	var sb strings.Builder
	line := 0
	for _, tok := range tokens {
		if line > 0 && line+1+len(tok) > maxLineLength {
			sb.WriteByte('\n')
			line = 0
		}
		if line > 0 {
			sb.WriteByte(' ')
			line++
		}
		sb.WriteString(tok)
		line += len(tok)
	}
	return sb.String()
}

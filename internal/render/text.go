package render

import (
	"fmt"
	"strings"

	"github.com/hailam/autochess/internal/board"
)

// ANSI escapes for terminal highlighting.
const (
	ansiLastMove = "\x1b[43m"
	ansiCheck    = "\x1b[41m"
	ansiReset    = "\x1b[0m"
)

var unicodeGlyphs = [2][7]string{
	board.White: {"", "♙", "♘", "♗", "♖", "♕", "♔"},
	board.Black: {"", "♟", "♞", "♝", "♜", "♛", "♚"},
}

// TextOptions controls a text diagram.
type TextOptions struct {
	// Unicode draws chess glyphs instead of FEN letters.
	Unicode bool
	// Color highlights the last move and a checked king with ANSI escapes.
	Color bool
	// LastMove is highlighted when Color is set.
	LastMove board.Move
	// Flip draws the board from Black's side.
	Flip bool
}

// Text returns a diagram of b, one rank per line with labels.
func Text(b board.Board, opts TextOptions) string {
	checked := map[board.Square]bool{}
	for _, c := range []board.Color{board.White, board.Black} {
		if board.InCheck(b, c) {
			checked[b.KingSquare(c)] = true
		}
	}

	var sb strings.Builder
	for i := 0; i < 8; i++ {
		row := i
		if opts.Flip {
			row = 7 - i
		}
		fmt.Fprintf(&sb, "%d ", 8-row)
		for j := 0; j < 8; j++ {
			col := j
			if opts.Flip {
				col = 7 - j
			}
			sq := board.Pack(row, col)
			cell := " " + glyph(b.PieceAt(sq), opts.Unicode) + " "

			if opts.Color {
				switch {
				case checked[sq]:
					cell = ansiCheck + cell + ansiReset
				case !opts.LastMove.IsNone() && (sq == opts.LastMove.From || sq == opts.LastMove.To):
					cell = ansiLastMove + cell + ansiReset
				}
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("  ")
	for j := 0; j < 8; j++ {
		file := 'a' + rune(j)
		if opts.Flip {
			file = 'h' - rune(j)
		}
		fmt.Fprintf(&sb, " %c ", file)
	}
	sb.WriteString("\n")
	return sb.String()
}

func glyph(p board.Piece, unicode bool) string {
	if p.IsEmpty() {
		return "."
	}
	if unicode {
		return unicodeGlyphs[p.Color][p.Type]
	}
	return p.String()
}

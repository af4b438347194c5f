package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/hailam/autochess/internal/board"
)

const foolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

func afterE4(t *testing.T) (board.Board, board.Move) {
	t.Helper()
	b := board.NewBoard()
	m, err := board.FindMove(b, board.White, board.Pack(6, 4), board.Pack(4, 4), false)
	if err != nil {
		t.Fatal(err)
	}
	return board.ApplyMove(b, m), m
}

func rgba(c color.NRGBA) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 255}
}

func TestPieceGlyphs(t *testing.T) {
	r := NewRenderer(32, DefaultTheme())
	if len(r.pieces) != 12 {
		t.Fatalf("loaded %d piece glyphs, want 12", len(r.pieces))
	}
	for p, img := range r.pieces {
		if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
			t.Errorf("%v glyph is %v", p, img.Bounds())
		}
		opaque := 0
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] > 0 {
				opaque++
			}
		}
		if opaque == 0 {
			t.Errorf("%v %v glyph is empty", p.Color, p.Type)
		}
	}
}

func TestPNG(t *testing.T) {
	b, m := afterE4(t)

	var buf bytes.Buffer
	if err := PNG(&buf, b, Options{LastMove: m}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if got := img.Bounds().Dx(); got != 8*DefaultSquareSize {
		t.Errorf("width = %d, want %d", got, 8*DefaultSquareSize)
	}
}

func TestSquareColors(t *testing.T) {
	theme := DefaultTheme()
	r := NewRenderer(DefaultSquareSize, theme)
	b, m := afterE4(t)

	corner := func(img *image.RGBA, sq board.Square, opts Options) color.RGBA {
		rect := r.squareRect(sq, opts)
		return img.RGBAAt(rect.Min.X+1, rect.Min.Y+1)
	}

	plain := r.Image(b, Options{})
	if got := corner(plain, board.Pack(5, 4), Options{}); got != rgba(theme.DarkSquare) {
		t.Errorf("e3 = %v, want dark square", got)
	}
	if got := corner(plain, board.Pack(6, 4), Options{}); got != rgba(theme.LightSquare) {
		t.Errorf("e2 = %v, want light square", got)
	}

	lit := r.Image(b, Options{LastMove: m})
	if got := corner(lit, board.Pack(6, 4), Options{}); got == rgba(theme.LightSquare) {
		t.Error("last move origin is not highlighted")
	}
	if got := corner(lit, board.Pack(5, 4), Options{}); got != rgba(theme.DarkSquare) {
		t.Error("e3 should not be highlighted")
	}

	mated := board.MustParseFEN(foolsMateFEN).Board
	img := r.Image(mated, Options{})
	if got := corner(img, board.Pack(7, 4), Options{}); int(got.R) < int(got.G)+50 {
		t.Errorf("checked king square = %v, want red tint", got)
	}
}

func TestFlip(t *testing.T) {
	r := NewRenderer(32, DefaultTheme())
	b := board.NewBoard()
	normal := r.Image(b, Options{})
	flipped := r.Image(b, Options{Flip: true})

	// h1 sits bottom right normally and top left when flipped.
	h1 := board.Pack(7, 7)
	a := r.squareRect(h1, Options{})
	f := r.squareRect(h1, Options{Flip: true})
	if f.Min != (image.Point{}) {
		t.Fatalf("flipped h1 at %v", f.Min)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if normal.RGBAAt(a.Min.X+x, a.Min.Y+y) != flipped.RGBAAt(f.Min.X+x, f.Min.Y+y) {
				t.Fatalf("h1 differs at (%d,%d)", x, y)
			}
		}
	}
}

func TestCoordinates(t *testing.T) {
	r := NewRenderer(32, DefaultTheme())
	opts := Options{Coordinates: true}
	img := r.Image(board.NewBoard(), opts)
	if got, want := img.Bounds().Dx(), 8*32+2*16; got != want {
		t.Fatalf("width = %d, want %d", got, want)
	}

	// Some label pixels must differ from the background in the left margin.
	bg := rgba(DefaultTheme().Background)
	drawn := 0
	for y := 16; y < 16+8*32; y++ {
		for x := 0; x < 16; x++ {
			if img.RGBAAt(x, y) != bg {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Error("no rank labels drawn")
	}
}

func TestText(t *testing.T) {
	b := board.NewBoard()
	plain := Text(b, TextOptions{})
	lines := strings.Split(strings.TrimRight(plain, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d:\n%s", len(lines), plain)
	}
	if lines[0] != "8  r  n  b  q  k  b  n  r " {
		t.Errorf("rank 8 = %q", lines[0])
	}
	if lines[4] != "4  .  .  .  .  .  .  .  . " {
		t.Errorf("rank 4 = %q", lines[4])
	}
	if lines[8] != "   a  b  c  d  e  f  g  h " {
		t.Errorf("files = %q", lines[8])
	}

	flipped := strings.Split(Text(b, TextOptions{Flip: true}), "\n")
	if flipped[0] != "1  R  N  B  K  Q  B  N  R " {
		t.Errorf("flipped rank 1 = %q", flipped[0])
	}

	if uni := Text(b, TextOptions{Unicode: true}); !strings.Contains(uni, "♔") || !strings.Contains(uni, "♟") {
		t.Errorf("unicode diagram missing glyphs:\n%s", uni)
	}
	if strings.Contains(plain, "\x1b[") {
		t.Error("plain diagram contains escapes")
	}
}

func TestTextHighlights(t *testing.T) {
	b, m := afterE4(t)
	out := Text(b, TextOptions{Color: true, LastMove: m})
	if !strings.Contains(out, ansiLastMove+" P "+ansiReset) {
		t.Errorf("moved pawn not highlighted:\n%q", out)
	}
	if strings.Count(out, ansiLastMove) != 2 {
		t.Errorf("expected 2 highlighted squares")
	}

	mated := board.MustParseFEN(foolsMateFEN).Board
	out = Text(mated, TextOptions{Color: true})
	if !strings.Contains(out, ansiCheck+" K "+ansiReset) {
		t.Errorf("checked king not highlighted:\n%q", out)
	}
}

package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/autochess/internal/board"
)

const (
	// DefaultSquareSize is the edge of one square in pixels.
	DefaultSquareSize = 64
	renderScale       = 3.0
)

// Theme defines the colors used for rendering.
type Theme struct {
	LightSquare   color.NRGBA
	DarkSquare    color.NRGBA
	LastMoveColor color.NRGBA
	CheckColor    color.NRGBA
	Background    color.NRGBA
	TextColor     color.NRGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() Theme {
	return Theme{
		LightSquare:   color.NRGBA{240, 217, 181, 255}, // Tan
		DarkSquare:    color.NRGBA{181, 136, 99, 255},  // Brown
		LastMoveColor: color.NRGBA{180, 190, 100, 90},  // Soft yellow-green
		CheckColor:    color.NRGBA{255, 100, 100, 180}, // Red
		Background:    color.NRGBA{40, 44, 52, 255},    // Dark gray
		TextColor:     color.NRGBA{220, 220, 220, 255}, // Light gray
	}
}

// Options controls a single image.
type Options struct {
	// LastMove is highlighted when set.
	LastMove board.Move
	// Flip draws the board from Black's side.
	Flip bool
	// Coordinates adds file and rank labels around the board.
	Coordinates bool
}

// Renderer draws boards as images. Piece glyphs are rasterized once.
type Renderer struct {
	theme      Theme
	squareSize int
	pieces     map[board.Piece]*image.RGBA
	face       font.Face
}

// NewRenderer creates a renderer for the given square size. A size of 0
// selects DefaultSquareSize.
func NewRenderer(squareSize int, theme Theme) *Renderer {
	if squareSize <= 0 {
		squareSize = DefaultSquareSize
	}
	return &Renderer{
		theme:      theme,
		squareSize: squareSize,
		pieces:     loadPieces(squareSize, renderScale),
		face:       labelFace(float64(squareSize) / 4),
	}
}

// labelFace loads Go Regular at the given size, falling back to the fixed
// 7x13 face.
func labelFace(size float64) font.Face {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("Failed to load label font: %v", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("Failed to load label font: %v", err)
		return basicfont.Face7x13
	}
	return face
}

// margin is the border reserved for coordinate labels.
func (r *Renderer) margin(opts Options) int {
	if !opts.Coordinates {
		return 0
	}
	return r.squareSize / 2
}

// Size returns the edge of the square images produced with opts.
func (r *Renderer) Size(opts Options) int {
	return 8*r.squareSize + 2*r.margin(opts)
}

// squareRect returns the pixel rectangle of a square.
func (r *Renderer) squareRect(sq board.Square, opts Options) image.Rectangle {
	row, col := sq.Unpack()
	if opts.Flip {
		row, col = 7-row, 7-col
	}
	m := r.margin(opts)
	x := m + col*r.squareSize
	y := m + row*r.squareSize
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

// Image draws b.
func (r *Renderer) Image(b board.Board, opts Options) *image.RGBA {
	size := r.Size(opts)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.theme.Background), image.Point{}, draw.Src)

	r.drawBoard(img, opts)
	r.drawHighlights(img, b, opts)
	r.drawPieces(img, b, opts)
	if opts.Coordinates {
		r.drawCoordinates(img, opts)
	}
	return img
}

// WritePNG encodes b as a PNG image.
func (r *Renderer) WritePNG(w io.Writer, b board.Board, opts Options) error {
	return png.Encode(w, r.Image(b, opts))
}

// PNG renders b with the default theme and square size.
func PNG(w io.Writer, b board.Board, opts Options) error {
	return NewRenderer(DefaultSquareSize, DefaultTheme()).WritePNG(w, b, opts)
}

func (r *Renderer) drawBoard(img *image.RGBA, opts Options) {
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		c := r.theme.LightSquare
		if (sq.Row()+sq.Col())%2 == 1 {
			c = r.theme.DarkSquare
		}
		draw.Draw(img, r.squareRect(sq, opts), image.NewUniform(c), image.Point{}, draw.Src)
	}
}

func (r *Renderer) drawHighlights(img *image.RGBA, b board.Board, opts Options) {
	// Last move
	if !opts.LastMove.IsNone() {
		r.highlightSquare(img, opts.LastMove.From, r.theme.LastMoveColor, opts)
		r.highlightSquare(img, opts.LastMove.To, r.theme.LastMoveColor, opts)
	}

	// King in check
	for _, c := range []board.Color{board.White, board.Black} {
		if !board.InCheck(b, c) {
			continue
		}
		if kingSq := b.KingSquare(c); kingSq != board.NoSquare {
			r.highlightSquare(img, kingSq, r.theme.CheckColor, opts)
		}
	}
}

func (r *Renderer) highlightSquare(img *image.RGBA, sq board.Square, c color.NRGBA, opts Options) {
	draw.Draw(img, r.squareRect(sq, opts), image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Renderer) drawPieces(img *image.RGBA, b board.Board, opts Options) {
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() {
			continue
		}
		glyph, ok := r.pieces[p.Bare()]
		if !ok {
			continue
		}
		draw.Draw(img, r.squareRect(sq, opts), glyph, image.Point{}, draw.Over)
	}
}

func (r *Renderer) drawCoordinates(img *image.RGBA, opts Options) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.theme.TextColor),
		Face: r.face,
	}
	m := r.margin(opts)
	ascent := r.face.Metrics().Ascent.Ceil()

	for i := 0; i < 8; i++ {
		file := string(rune('a' + i))
		rank := string(rune('8' - i))
		if opts.Flip {
			file = string(rune('h' - i))
			rank = string(rune('1' + i))
		}

		// Files centered below the board
		w := d.MeasureString(file).Ceil()
		x := m + i*r.squareSize + (r.squareSize-w)/2
		y := m + 8*r.squareSize + (m+ascent)/2
		d.Dot = fixed.P(x, y)
		d.DrawString(file)

		// Ranks centered left of the board
		w = d.MeasureString(rank).Ceil()
		x = (m - w) / 2
		y = m + i*r.squareSize + (r.squareSize+ascent)/2
		d.Dot = fixed.P(x, y)
		d.DrawString(rank)
	}
}

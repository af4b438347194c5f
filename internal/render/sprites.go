// Package render draws boards as terminal text or PNG images.
package render

import (
	"image"
	"log"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/hailam/autochess/internal/board"
)

// Piece outlines on a 45x45 canvas. FILL, STROKE and DETAIL are replaced per color.
var pieceShapes = map[board.PieceType]string{
	board.Pawn: `<circle cx="22.5" cy="15" r="5.5" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<path d="M 17 36 L 28 36 L 26 21 L 19 21 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<rect x="12" y="36" width="21" height="4" fill="FILL" stroke="STROKE" stroke-width="1.5"/>`,

	board.Knight: `<path d="M 14 38 L 31 38 L 31 30 C 31 20 28 12 20 10 L 18 7 L 16 11 L 11 17 L 10 22 L 13 24 L 17 21 L 20 21 C 16 26 14 31 14 38 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<circle cx="16" cy="15" r="1.3" fill="DETAIL" stroke="DETAIL" stroke-width="0.5"/>`,

	board.Bishop: `<circle cx="22.5" cy="9" r="2.5" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<ellipse cx="22.5" cy="21" rx="6.5" ry="9" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<path d="M 17 30 L 28 30 L 29 35 L 16 35 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<rect x="11" y="35" width="23" height="4" fill="FILL" stroke="STROKE" stroke-width="1.5"/>`,

	board.Rook: `<path d="M 12 9 L 16 9 L 16 12 L 20 12 L 20 9 L 25 9 L 25 12 L 29 12 L 29 9 L 33 9 L 33 15 L 30 17 L 30 31 L 33 33 L 33 36 L 12 36 L 12 33 L 15 31 L 15 17 L 12 15 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<rect x="10" y="36" width="25" height="4" fill="FILL" stroke="STROKE" stroke-width="1.5"/>`,

	board.Queen: `<path d="M 9 14 L 14 29 L 31 29 L 36 14 L 29 24 L 27 11 L 22.5 23 L 18 11 L 16 24 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<circle cx="9" cy="12" r="2" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<circle cx="18" cy="9" r="2" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<circle cx="27" cy="9" r="2" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<circle cx="36" cy="12" r="2" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<rect x="12" y="29" width="21" height="5" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<rect x="10" y="35" width="25" height="4" fill="FILL" stroke="STROKE" stroke-width="1.5"/>`,

	board.King: `<path d="M 21 5 L 24 5 L 24 8 L 27 8 L 27 11 L 24 11 L 24 16 L 21 16 L 21 11 L 18 11 L 18 8 L 21 8 Z" fill="FILL" stroke="STROKE" stroke-width="1.2"/>
<path d="M 12 35 L 33 35 L 35 24 C 36 18 30 15 22.5 21 C 15 15 9 18 10 24 Z" fill="FILL" stroke="STROKE" stroke-width="1.5"/>
<rect x="11" y="35" width="23" height="4" fill="FILL" stroke="STROKE" stroke-width="1.5"/>`,
}

// pieceSVG returns a standalone SVG document for p.
func pieceSVG(p board.Piece) string {
	r := strings.NewReplacer("FILL", "#ffffff", "STROKE", "#000000", "DETAIL", "#000000")
	if p.Color == board.Black {
		r = strings.NewReplacer("FILL", "#202020", "STROKE", "#000000", "DETAIL", "#ffffff")
	}
	return `<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">` +
		"\n" + r.Replace(pieceShapes[p.Type]) + "\n</svg>"
}

// renderPiece rasterizes p into a size x size image. It renders at a higher
// resolution and scales down for smooth edges.
func renderPiece(p board.Piece, size int, renderScale float64) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(pieceSVG(p)))
	if err != nil {
		return nil, err
	}

	renderSize := int(float64(size) * renderScale)
	icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

	// Create RGBA image and render with anti-aliasing at high resolution
	big := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, big, big.Bounds())
	raster := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(raster, 1.0)

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(out, out.Bounds(), big, big.Bounds(), xdraw.Over, nil)
	return out, nil
}

// loadPieces renders every piece glyph at the given size.
func loadPieces(size int, renderScale float64) map[board.Piece]*image.RGBA {
	pieces := make(map[board.Piece]*image.RGBA, 12)
	for _, c := range []board.Color{board.White, board.Black} {
		for pt := board.Pawn; pt <= board.King; pt++ {
			p := board.NewPiece(pt, c)
			img, err := renderPiece(p, size, renderScale)
			if err != nil {
				log.Printf("Failed to render %v %v: %v", c, pt, err)
				continue
			}
			pieces[p] = img
		}
	}
	return pieces
}

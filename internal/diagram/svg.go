// Package diagram draws board diagrams of a position as SVG or PNG.
package diagram

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/yoonthegoon/gejang/internal/board"
)

// Options controls how a position is drawn.
type Options struct {
	SquareSize  int  // Pixels per square
	Flip        bool // Draw from Black's side
	Coordinates bool // Label files and ranks along the edges

	Light     color.RGBA
	Dark      color.RGBA
	Highlight color.RGBA // En passant target square
}

// DefaultOptions returns the options used by the command-line tool.
func DefaultOptions() Options {
	return Options{
		SquareSize:  64,
		Coordinates: true,
		Light:       color.RGBA{0xf0, 0xd9, 0xb5, 0xff},
		Dark:        color.RGBA{0xb5, 0x88, 0x63, 0xff},
		Highlight:   color.RGBA{0xcd, 0xd2, 0x6a, 0xff},
	}
}

const minSquareSize = 8

// glyphs holds the Unicode chess symbol for each board.Piece.
var glyphs = [12]string{"♔", "♕", "♖", "♗", "♘", "♙", "♚", "♛", "♜", "♝", "♞", "♟"}

// WriteSVG writes an SVG diagram of pos to w.
func WriteSVG(w io.Writer, pos *board.Position, opts Options) error {
	return writeSVG(w, pos, opts, true)
}

// writeSVG draws the board and, when withPieces is set, the piece glyphs.
// The raster path draws pieces itself because oksvg does not render text.
func writeSVG(w io.Writer, pos *board.Position, opts Options, withPieces bool) error {
	if opts.SquareSize < minSquareSize {
		return fmt.Errorf("square size %d is below %d", opts.SquareSize, minSquareSize)
	}

	ew := &errWriter{w: w}
	s := opts.SquareSize
	size := 8 * s

	canvas := svg.New(ew)
	canvas.Startview(size, size, 0, 0, size, size)
	canvas.Title(pos.FEN())

	canvas.Gid("squares")
	for sq := board.A1; sq <= board.H8; sq++ {
		x, y := squareOrigin(sq, opts)
		canvas.Rect(x, y, s, s, "fill:"+hex(squareColor(sq, opts)))
	}
	if pos.EnPassant.IsValid() {
		x, y := squareOrigin(pos.EnPassant, opts)
		canvas.Rect(x, y, s, s, "fill:"+hex(opts.Highlight)+";fill-opacity:0.8")
	}
	canvas.Gend()

	if opts.Coordinates && withPieces {
		canvas.Gid("coordinates")
		fontSize := s / 5
		for i := 0; i < 8; i++ {
			fileSq := board.Square(i)
			if opts.Flip {
				fileSq = board.Square(56 + i)
			}
			x, y := squareOrigin(fileSq, opts)
			canvas.Text(x+s-2, y+s-2, fileSq.String()[:1],
				fmt.Sprintf("text-anchor:end;font-size:%dpx;font-family:sans-serif;fill:%s", fontSize, hex(labelColor(fileSq, opts))))

			rankSq := board.Square(8 * i)
			if opts.Flip {
				rankSq = board.Square(8*i + 7)
			}
			x, y = squareOrigin(rankSq, opts)
			canvas.Text(x+2, y+fontSize+1, rankSq.String()[1:],
				fmt.Sprintf("font-size:%dpx;font-family:sans-serif;fill:%s", fontSize, hex(labelColor(rankSq, opts))))
		}
		canvas.Gend()
	}

	if withPieces {
		canvas.Gid("pieces")
		style := fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:#000000", s*3/4)
		pos.Occupied().ForEach(func(sq board.Square) {
			x, y := squareOrigin(sq, opts)
			canvas.Text(x+s/2, y+s*4/5, glyphs[pos.PieceAt(sq)], style)
		})
		canvas.Gend()
	}

	canvas.End()
	return ew.err
}

// squareOrigin returns the top-left pixel of sq.
func squareOrigin(sq board.Square, opts Options) (x, y int) {
	file, rank := sq.File(), 7-sq.Rank()
	if opts.Flip {
		file, rank = 7-sq.File(), sq.Rank()
	}
	return file * opts.SquareSize, rank * opts.SquareSize
}

func squareColor(sq board.Square, opts Options) color.RGBA {
	if (sq.File()+sq.Rank())%2 == 0 {
		return opts.Dark
	}
	return opts.Light
}

// labelColor picks the contrasting shade for a coordinate drawn on sq.
func labelColor(sq board.Square, opts Options) color.RGBA {
	if squareColor(sq, opts) == opts.Dark {
		return opts.Light
	}
	return opts.Dark
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

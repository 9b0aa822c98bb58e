package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/yoonthegoon/gejang/internal/board"
)

var boldFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// Render rasterizes a diagram of pos.
func Render(pos *board.Position, opts Options) (*image.RGBA, error) {
	var buf bytes.Buffer
	if err := writeSVG(&buf, pos, opts, false); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(&buf, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse board svg: %w", err)
	}

	size := 8 * opts.SquareSize
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	f, err := boldFont()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	if err := drawPieces(rgba, f, pos, opts); err != nil {
		return nil, err
	}
	if opts.Coordinates {
		if err := drawCoordinates(rgba, f, opts); err != nil {
			return nil, err
		}
	}

	return rgba, nil
}

// WritePNG writes a PNG diagram of pos to w.
func WritePNG(w io.Writer, pos *board.Position, opts Options) error {
	img, err := Render(pos, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

var (
	inkBlack = color.RGBA{0x10, 0x10, 0x10, 0xff}
	inkWhite = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// drawPieces writes each piece's letter centered on its square.
// White pieces are white letters with a dark outline, black pieces are dark letters.
func drawPieces(dst *image.RGBA, f *opentype.Font, pos *board.Position, opts Options) error {
	s := opts.SquareSize
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(s) * 0.7,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	outline := max(1, s/32)

	pos.Occupied().ForEach(func(sq board.Square) {
		piece := pos.PieceAt(sq)
		letter := board.NewPiece(piece.Type(), board.White).String()

		x, y := squareOrigin(sq, opts)
		x += (s - font.MeasureString(face, letter).Round()) / 2
		y += (s + metrics.Ascent.Round() - metrics.Descent.Round()) / 2

		if piece.Color() == board.White {
			for dx := -outline; dx <= outline; dx += outline {
				for dy := -outline; dy <= outline; dy += outline {
					drawText(dst, face, inkBlack, x+dx, y+dy, letter)
				}
			}
			drawText(dst, face, inkWhite, x, y, letter)
		} else {
			drawText(dst, face, inkBlack, x, y, letter)
		}
	})

	return nil
}

func drawCoordinates(dst *image.RGBA, f *opentype.Font, opts Options) error {
	s := opts.SquareSize
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(s) / 5,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	ascent := face.Metrics().Ascent.Round()
	for i := 0; i < 8; i++ {
		fileSq, rankSq := board.Square(i), board.Square(8*i)
		if opts.Flip {
			fileSq, rankSq = board.Square(56+i), board.Square(8*i+7)
		}

		label := fileSq.String()[:1]
		x, y := squareOrigin(fileSq, opts)
		x += s - 2 - font.MeasureString(face, label).Round()
		drawText(dst, face, labelColor(fileSq, opts), x, y+s-2, label)

		label = rankSq.String()[1:]
		x, y = squareOrigin(rankSq, opts)
		drawText(dst, face, labelColor(rankSq, opts), x+2, y+ascent+1, label)
	}

	return nil
}

func drawText(dst *image.RGBA, face font.Face, c color.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

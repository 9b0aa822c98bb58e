// Command gejang validates and normalizes FEN records and renders board diagrams.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/yoonthegoon/gejang/internal/board"
	"github.com/yoonthegoon/gejang/internal/diagram"
)

var (
	fenFlag   = flag.String("fen", "", "FEN record to process (default: read lines from stdin)")
	checkOnly = flag.Bool("check", false, "only validate, print nothing for good records")
	semantic  = flag.Bool("validate", false, "also reject positions that cannot occur in a game")
	showBoard = flag.Bool("board", false, "print the board after each record")
	showBBs   = flag.Bool("bitboards", false, "print the twelve piece bitboards in hex")
	svgPath   = flag.String("svg", "", "write an SVG diagram of the first record to this file")
	pngPath   = flag.String("png", "", "write a PNG diagram of the first record to this file")
	size      = flag.Int("size", 64, "diagram square size in pixels")
	flip      = flag.Bool("flip", false, "draw diagrams from Black's side")
	coords    = flag.Bool("coords", true, "label files and ranks on diagrams")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gejang: ")
	flag.Parse()

	var records []string
	if *fenFlag != "" {
		records = []string{*fenFlag}
	} else {
		var err error
		records, err = readRecords(os.Stdin)
		if err != nil {
			log.Fatal("read stdin: ", err)
		}
	}

	failed := 0
	var first *board.Position
	for i, rec := range records {
		pos, err := process(os.Stdout, rec)
		if err != nil {
			log.Printf("record %d: %v", i+1, err)
			failed++
			continue
		}
		if i == 0 {
			first = pos
		}
	}

	if err := render(first); err != nil {
		log.Fatal(err)
	}

	if failed > 0 {
		log.Printf("%d of %d records failed", failed, len(records))
		os.Exit(1)
	}
}

// readRecords returns the non-blank, non-comment lines of r.
func readRecords(r io.Reader) ([]string, error) {
	var records []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		records = append(records, line)
	}
	return records, scanner.Err()
}

func process(w io.Writer, rec string) (*board.Position, error) {
	pos, err := board.ParseFEN(rec)
	if err != nil {
		return nil, err
	}
	if *semantic {
		if err := pos.Validate(); err != nil {
			return nil, err
		}
	}
	if *checkOnly {
		return pos, nil
	}

	fmt.Fprintln(w, pos.FEN())
	if *showBoard {
		fmt.Fprint(w, pos)
	}
	if *showBBs {
		for p := board.WhiteKing; p < board.NoPiece; p++ {
			fmt.Fprintf(w, "%s %s\n", p, pos.Placement.Of(p).Hex())
		}
	}
	return pos, nil
}

// render writes the requested diagrams of pos. A nil pos means the first
// record failed; asking for a diagram is then an error.
func render(pos *board.Position) error {
	if *svgPath == "" && *pngPath == "" {
		return nil
	}
	if pos == nil {
		return errors.New("no diagram: the first record is not a valid position")
	}

	opts := diagram.DefaultOptions()
	opts.SquareSize = *size
	opts.Flip = *flip
	opts.Coordinates = *coords

	if *svgPath != "" {
		if err := writeFile(*svgPath, func(w io.Writer) error {
			return diagram.WriteSVG(w, pos, opts)
		}); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		log.Printf("SVG diagram written to %s", *svgPath)
	}

	if *pngPath != "" {
		if err := writeFile(*pngPath, func(w io.Writer) error {
			return diagram.WritePNG(w, pos, opts)
		}); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		log.Printf("PNG diagram written to %s", *pngPath)
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

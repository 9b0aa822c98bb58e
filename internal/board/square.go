// Package board implements a bitboard chess position and its FEN encoding.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// NewSquare creates a square from rank and file (both 0-indexed).
func NewSquare(rank, file int) (Square, error) {
	if rank < 0 || rank > 7 || file < 0 || file > 7 {
		return NoSquare, fmt.Errorf("%w: rank %d, file %d", ErrInvalidCoordinate, rank, file)
	}
	return square(rank, file), nil
}

// SquareFromIndex creates a square from its linear index.
func SquareFromIndex(i int) (Square, error) {
	if i < 0 || i > 63 {
		return NoSquare, fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	return Square(i), nil
}

// square is NewSquare without the range check.
func square(rank, file int) Square {
	return Square(rank*8 + file)
}

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// Index returns the linear index of the square.
func (sq Square) Index() int {
	return int(sq)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, parseErr("square", s, ErrInvalidSquareText)
	}

	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, parseErr("square", s, ErrInvalidSquareText)
	}

	return square(int(rank-'1'), int(file-'a')), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

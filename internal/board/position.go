package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// castlingChars lists the FEN letters in flag order.
const castlingChars = "KQkq"

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr&AllCastling == NoCastling {
		return "-"
	}
	var buf [4]byte
	n := 0
	for i := 0; i < len(castlingChars); i++ {
		if cr&(1<<i) != 0 {
			buf[n] = castlingChars[i]
			n++
		}
	}
	return string(buf[:n])
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// PiecePlacement holds one bitboard per Piece, indexed WhiteKing..BlackPawn.
type PiecePlacement [12]Bitboard

// Of returns the bitboard of the given piece.
func (pp PiecePlacement) Of(p Piece) Bitboard {
	if p >= NoPiece {
		return Empty
	}
	return pp[p]
}

// PieceAt returns the piece on sq, or NoPiece. The first board in Piece order wins.
func (pp PiecePlacement) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	for p := WhiteKing; p < NoPiece; p++ {
		if pp[p]&bb != 0 {
			return p
		}
	}
	return NoPiece
}

// ByColor returns all squares occupied by pieces of color c.
func (pp PiecePlacement) ByColor(c Color) Bitboard {
	var bb Bitboard
	for pt := King; pt < NoPieceType; pt++ {
		bb |= pp.Of(NewPiece(pt, c))
	}
	return bb
}

// Occupied returns all occupied squares.
func (pp PiecePlacement) Occupied() Bitboard {
	return pp.ByColor(White) | pp.ByColor(Black)
}

// Overlaps returns the squares claimed by more than one piece board.
func (pp PiecePlacement) Overlaps() Bitboard {
	var seen, twice Bitboard
	for _, bb := range pp {
		twice |= seen & bb
		seen |= bb
	}
	return twice
}

// Position represents a complete chess position as described by a FEN record.
// The zero value is not a usable position: its en passant square is A1 and its
// full move number is 0. Build positions with ParseFEN or NewPosition.
type Position struct {
	Placement PiecePlacement

	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  uint8  // Plies since last pawn move or capture
	FullMoveNumber uint16 // Starts at 1, incremented after Black moves
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Placement.PieceAt(sq)
}

// Pieces returns the bitboard for a piece type of one color.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.Placement.Of(NewPiece(pt, c))
}

// OccupiedBy returns all squares holding pieces of color c.
func (p *Position) OccupiedBy(c Color) Bitboard {
	return p.Placement.ByColor(c)
}

// Occupied returns all occupied squares.
func (p *Position) Occupied() Bitboard {
	return p.Placement.Occupied()
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return !p.Occupied().IsSet(sq)
}

// KingSquare returns the square of c's king, or NoSquare.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces(c, King).LSB()
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(square(rank, file))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.Castling)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	fmt.Fprintf(&sb, "Hash: %016x\n", p.Hash())
	return sb.String()
}

// Validate checks that the position could arise in a game. ParseFEN only
// checks the text; it accepts positions that Validate rejects.
func (p *Position) Validate() error {
	if overlap := p.Placement.Overlaps(); overlap != 0 {
		return fmt.Errorf("%w: more than one piece on %s", ErrInvalidPosition, overlap.LSB())
	}

	// Check that each side has exactly one king
	if p.Pieces(White, King).PopCount() != 1 {
		return fmt.Errorf("%w: white must have exactly one king", ErrInvalidPosition)
	}
	if p.Pieces(Black, King).PopCount() != 1 {
		return fmt.Errorf("%w: black must have exactly one king", ErrInvalidPosition)
	}

	// Check that pawns are not on rank 1 or 8
	if (p.Pieces(White, Pawn)|p.Pieces(Black, Pawn))&(Rank1|Rank8) != 0 {
		return fmt.Errorf("%w: pawns cannot be on rank 1 or 8", ErrInvalidPosition)
	}

	if p.SideToMove >= NoColor {
		return fmt.Errorf("%w: no side to move", ErrInvalidPosition)
	}
	if p.FullMoveNumber == 0 {
		return fmt.Errorf("%w: full move number must be positive", ErrInvalidPosition)
	}

	if p.EnPassant != NoSquare {
		if !p.EnPassant.IsValid() {
			return fmt.Errorf("%w: en passant square %d", ErrInvalidPosition, p.EnPassant)
		}
		// The target sits behind a pawn that just made a double step.
		wantRank, pawnSq := 5, p.EnPassant-8
		if p.SideToMove == Black {
			wantRank, pawnSq = 2, p.EnPassant+8
		}
		pawn := NewPiece(Pawn, p.SideToMove.Other())
		if p.EnPassant.Rank() != wantRank {
			return fmt.Errorf("%w: en passant square %s on wrong rank", ErrInvalidPosition, p.EnPassant)
		}
		if !p.Placement.Of(pawn).IsSet(pawnSq) {
			return fmt.Errorf("%w: no pawn in front of en passant square %s", ErrInvalidPosition, p.EnPassant)
		}
	}

	return nil
}

package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Char returns the FEN active-color character.
func (c Color) Char() byte {
	switch c {
	case White:
		return 'w'
	case Black:
		return 'b'
	default:
		return '-'
	}
}

// ParseColor parses the FEN active-color field.
func ParseColor(s string) (Color, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	default:
		return NoColor, parseErr("color", s, ErrInvalidColorChar)
	}
}

// PieceType represents the type of a chess piece.
// The order matches the FEN letter order K Q R B N P.
type PieceType uint8

const (
	King PieceType = iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Pawn:
		return "Pawn"
	default:
		return "None"
	}
}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType + color*6, which is also the PiecePlacement index.
type Piece uint8

const (
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	NoPiece     Piece = 12
)

// pieceChars is the single Piece <-> FEN letter table.
const pieceChars = "KQRBNPkqrbnp"

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// Char returns the FEN letter for the piece, uppercase for white.
func (p Piece) Char() byte {
	if p >= NoPiece {
		return ' '
	}
	return pieceChars[p]
}

// String returns the FEN letter for the piece.
func (p Piece) String() string {
	return string(p.Char())
}

// PieceFromChar converts a FEN letter to a Piece, or NoPiece.
func PieceFromChar(c byte) Piece {
	for i := 0; i < len(pieceChars); i++ {
		if pieceChars[i] == c {
			return Piece(i)
		}
	}
	return NoPiece
}

package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenFields is the number of whitespace-separated fields in a FEN record.
const fenFields = 6

// ParseFEN parses a FEN string and returns a Position.
// All six fields are required; extra fields are rejected.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < fenFields {
		return nil, parseErr("fen", fen, ErrMissingField)
	}
	if len(parts) > fenFields {
		return nil, parseErr("fen", strings.Join(parts[fenFields:], " "), ErrTrailingField)
	}

	pos := &Position{}
	var err error

	// Piece placement (field 0)
	if pos.Placement, err = ParsePlacement(parts[0]); err != nil {
		return nil, err
	}

	// Side to move (field 1)
	if pos.SideToMove, err = ParseColor(parts[1]); err != nil {
		return nil, err
	}

	// Castling rights (field 2)
	if pos.Castling, err = ParseCastlingRights(parts[2]); err != nil {
		return nil, err
	}

	// En passant square (field 3)
	if pos.EnPassant, err = parseEnPassant(parts[3]); err != nil {
		return nil, err
	}

	// Half-move clock (field 4)
	hmc, err := strconv.ParseUint(parts[4], 10, 8)
	if err != nil {
		return nil, parseErr("halfmove", parts[4], ErrInvalidCounter)
	}
	pos.HalfMoveClock = uint8(hmc)

	// Full-move number (field 5)
	fmn, err := strconv.ParseUint(parts[5], 10, 16)
	if err != nil || fmn == 0 {
		return nil, parseErr("fullmove", parts[5], ErrInvalidCounter)
	}
	pos.FullMoveNumber = uint16(fmn)

	return pos, nil
}

// ParsePlacement parses the piece placement field of a FEN string.
// Every rank must describe exactly eight squares.
func ParsePlacement(placement string) (PiecePlacement, error) {
	var pp PiecePlacement

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return pp, parseErr("placement", placement, ErrMalformedPlacement)
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				if file > 8 {
					return pp, parseErr("placement", rankStr, ErrMalformedPlacement)
				}
				continue
			}

			piece := PieceFromChar(c)
			if piece == NoPiece || file > 7 {
				return pp, parseErr("placement", rankStr, ErrMalformedPlacement)
			}
			pp[piece] = pp[piece].Set(square(rank, file))
			file++
		}

		if file != 8 {
			return pp, parseErr("placement", rankStr, ErrMalformedPlacement)
		}
	}

	return pp, nil
}

// ParseCastlingRights parses the castling field: "-" or an ordered subset of "KQkq".
func ParseCastlingRights(castling string) (CastlingRights, error) {
	if castling == "-" {
		return NoCastling, nil
	}
	if castling == "" {
		return NoCastling, parseErr("castling", castling, ErrInvalidCastlingChar)
	}

	cr := NoCastling
	next := 0 // index into castlingChars of the earliest letter still allowed
	for i := 0; i < len(castling); i++ {
		k := strings.IndexByte(castlingChars[next:], castling[i])
		if k < 0 {
			return NoCastling, parseErr("castling", castling, ErrInvalidCastlingChar)
		}
		next += k
		cr |= 1 << next
		next++
	}

	return cr, nil
}

func parseEnPassant(s string) (Square, error) {
	if s == "-" {
		return NoSquare, nil
	}
	sq, err := ParseSquare(s)
	if err != nil {
		return NoSquare, parseErr("en passant", s, ErrInvalidSquareText)
	}
	return sq, nil
}

// String returns the FEN piece placement field.
func (pp PiecePlacement) String() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := pp.PieceAt(square(rank, file))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(piece.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// FEN returns the FEN representation of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	sb.WriteString(p.Placement.String())

	sb.WriteByte(' ')
	sb.WriteByte(p.SideToMove.Char())

	sb.WriteByte(' ')
	sb.WriteString(p.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(p.HalfMoveClock), 10))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(uint64(p.FullMoveNumber), 10))

	return sb.String()
}

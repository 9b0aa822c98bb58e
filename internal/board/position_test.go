package board

import (
	"errors"
	"strings"
	"testing"
)

func TestNewPosition(t *testing.T) {
	pos := NewPosition()

	decoded, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if *pos != *decoded {
		t.Errorf("NewPosition() differs from the decoded start position")
	}

	wk := pos.Pieces(White, King)
	if wk.PopCount() != 1 || wk.LSB() != E1 || E1.Index() != 4 {
		t.Errorf("white king board = %v", wk.Squares())
	}
	if pos.KingSquare(Black) != E8 {
		t.Errorf("black king on %s", pos.KingSquare(Black))
	}
	if pos.SideToMove != White || pos.Castling != AllCastling || pos.EnPassant != NoSquare {
		t.Errorf("state fields wrong: %s %s %s", pos.SideToMove, pos.Castling, pos.EnPassant)
	}
	if pos.HalfMoveClock != 0 || pos.FullMoveNumber != 1 {
		t.Errorf("counters = %d %d", pos.HalfMoveClock, pos.FullMoveNumber)
	}
	if pos.OccupiedBy(White) != Rank1|Rank2 || pos.OccupiedBy(Black) != Rank7|Rank8 {
		t.Errorf("occupancy wrong")
	}
	if pos.Occupied().PopCount() != 32 {
		t.Errorf("occupied squares = %d", pos.Occupied().PopCount())
	}
	if !pos.IsEmpty(E4) || pos.IsEmpty(E2) {
		t.Errorf("IsEmpty disagrees with the start position")
	}
	if pos.PieceAt(D8) != BlackQueen || pos.PieceAt(G1) != WhiteKnight || pos.PieceAt(E4) != NoPiece {
		t.Errorf("PieceAt disagrees with the start position")
	}
	if err := pos.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestPositionCopy(t *testing.T) {
	pos := NewPosition()
	cp := pos.Copy()
	if *cp != *pos {
		t.Fatal("copy differs")
	}

	cp.Placement[WhitePawn] = cp.Placement[WhitePawn].Clear(E2).Set(E4)
	cp.SideToMove = Black
	if *cp == *pos {
		t.Error("changing the copy changed the original")
	}
	if pos.FEN() != StartFEN {
		t.Errorf("original FEN = %q", pos.FEN())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		ok   bool
	}{
		{"start", StartFEN, true},
		{"en passant after e4", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", true},
		{"en passant after c5", "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2", true},
		{"no kings", "8/8/8/8/8/8/8/8 w - - 0 1", false},
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1", false},
		{"pawn on rank 8", "P3k3/8/8/8/8/8/8/4K3 w - - 0 1", false},
		{"pawn on rank 1", "4k3/8/8/8/8/8/8/p3K3 w - - 0 1", false},
		{"en passant wrong rank", "4k3/8/8/8/4P3/8/8/4K3 b - e4 0 1", false},
		{"en passant without pawn", "4k3/8/8/8/8/8/8/4K3 b - e3 0 1", false},
		{"en passant behind own pawn", "4k3/8/8/4P3/8/8/8/4K3 w - e6 0 1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			err = pos.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidPosition) {
				t.Errorf("Validate error = %v, want ErrInvalidPosition", err)
			}
		})
	}
}

func TestValidateOverlap(t *testing.T) {
	pos := NewPosition()
	pos.Placement[BlackPawn] = pos.Placement[BlackPawn].Set(E2)
	if err := pos.Validate(); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Validate error = %v, want overlap failure", err)
	}
}

func TestZeroPositionIsInvalid(t *testing.T) {
	var pos Position
	if err := pos.Validate(); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("Validate error = %v, want ErrInvalidPosition", err)
	}
	if _, err := ParseFEN(pos.FEN()); err == nil {
		t.Errorf("ParseFEN(%q) accepted the zero position", pos.FEN())
	}
}

func TestColorOther(t *testing.T) {
	if White.Other() != Black || Black.Other() != White {
		t.Errorf("Other: white -> %s, black -> %s", White.Other(), Black.Other())
	}
}

func TestHash(t *testing.T) {
	start := NewPosition()
	if start.Hash() != NewPosition().Hash() {
		t.Fatal("hash is not deterministic")
	}

	tests := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w Kkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e3 0 1",
	}
	seen := map[uint64]string{start.Hash(): StartFEN}
	for _, fen := range tests {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if prev, dup := seen[pos.Hash()]; dup {
			t.Errorf("%q and %q share a hash", fen, prev)
		}
		seen[pos.Hash()] = fen
	}

	counters, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 7 30")
	if err != nil {
		t.Fatal(err)
	}
	if counters.Hash() != start.Hash() {
		t.Error("move counters should not change the hash")
	}

	lone := &Position{EnPassant: NoSquare, FullMoveNumber: 1}
	lone.Placement[WhiteKing] = SquareBB(E1)
	want := ZobristPiece(WhiteKing, E1) ^ ZobristCastling(NoCastling)
	if lone.Hash() != want {
		t.Errorf("single king hash = %016x, want %016x", lone.Hash(), want)
	}
	lone.SideToMove = Black
	if lone.Hash() != want^ZobristSideToMove() {
		t.Error("side to move key not applied")
	}
}

func TestPositionString(t *testing.T) {
	s := NewPosition().String()
	for _, want := range []string{
		"8  r n b q k b n r",
		"1  R N B Q K B N R",
		"Side to move: White",
		"Castling: KQkq",
		"En passant: -",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

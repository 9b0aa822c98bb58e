package board_test

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	"github.com/yoonthegoon/gejang/internal/board"
)

// Legal positions understood by both reference libraries.
var oracleFENs = []string{
	board.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
}

func TestBitboardsMatchDragontooth(t *testing.T) {
	for _, fen := range oracleFENs {
		t.Run(fen, func(t *testing.T) {
			pos, err := board.ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			ref := dragontoothmg.ParseFen(fen)

			sides := []struct {
				color board.Color
				bbs   dragontoothmg.Bitboards
			}{
				{board.White, ref.White},
				{board.Black, ref.Black},
			}
			for _, side := range sides {
				want := map[board.PieceType]uint64{
					board.King:   side.bbs.Kings,
					board.Queen:  side.bbs.Queens,
					board.Rook:   side.bbs.Rooks,
					board.Bishop: side.bbs.Bishops,
					board.Knight: side.bbs.Knights,
					board.Pawn:   side.bbs.Pawns,
				}
				for pt, bb := range want {
					if got := uint64(pos.Pieces(side.color, pt)); got != bb {
						t.Errorf("%s %s: got %#018x, want %#018x", side.color, pt, got, bb)
					}
				}
				if got := uint64(pos.OccupiedBy(side.color)); got != side.bbs.All {
					t.Errorf("%s occupancy: got %#018x, want %#018x", side.color, got, side.bbs.All)
				}
			}

			if (pos.SideToMove == board.White) != ref.Wtomove {
				t.Errorf("side to move %s disagrees with reference", pos.SideToMove)
			}
		})
	}
}

func TestPlacementMatchesNotnil(t *testing.T) {
	for _, fen := range oracleFENs {
		t.Run(fen, func(t *testing.T) {
			pos, err := board.ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			opt, err := chess.FEN(fen)
			if err != nil {
				t.Fatalf("chess.FEN: %v", err)
			}
			ref := chess.NewGame(opt).Position().Board().String()

			if got := pos.Placement.String(); got != ref {
				t.Errorf("placement = %q, want %q", got, ref)
			}
		})
	}
}

func TestSquareNamesMatchNotnil(t *testing.T) {
	for i := 0; i < 64; i++ {
		sq, err := board.SquareFromIndex(i)
		if err != nil {
			t.Fatal(err)
		}
		if want := chess.Square(i).String(); sq.String() != want {
			t.Errorf("square %d = %q, want %q", i, sq, want)
		}
	}
}

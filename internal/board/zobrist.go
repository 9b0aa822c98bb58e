package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [12][64]uint64 // [Piece][Square]
	zobristEnPassant  [8]uint64      // One per file
	zobristCastling   [16]uint64     // All 16 castling combinations
	zobristSideToMove uint64         // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for p := WhiteKing; p < NoPiece; p++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[p][sq] = rng.next()
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}

	zobristSideToMove = rng.next()
}

// Hash computes the Zobrist key of the position from scratch.
// The move counters do not contribute to the key.
func (p *Position) Hash() uint64 {
	var hash uint64

	for piece := WhiteKing; piece < NoPiece; piece++ {
		bb := p.Placement[piece]
		for bb != 0 {
			hash ^= zobristPiece[piece][bb.PopLSB()]
		}
	}

	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}

	hash ^= zobristCastling[p.Castling&AllCastling]

	if p.EnPassant.IsValid() {
		hash ^= zobristEnPassant[p.EnPassant.File()]
	}

	return hash
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(p Piece, sq Square) uint64 {
	return zobristPiece[p][sq]
}

// ZobristSideToMove returns the Zobrist key for side to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// ZobristCastling returns the Zobrist key for castling rights.
func ZobristCastling(cr CastlingRights) uint64 {
	return zobristCastling[cr&AllCastling]
}

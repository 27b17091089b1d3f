package othellomg

import "math/rand"

// Zobrist keys per cell content and square. The Empty row stays zero so that
// empty squares contribute nothing to the key.
var zobristCell [3][NumSquares]uint64

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed keeps hashes stable across runs and in tests
	rnd := rand.New(rand.NewSource(0xC0DE))
	for _, c := range []Cell{Black, White} {
		for sq := 0; sq < NumSquares; sq++ {
			v := rnd.Uint64()
			for v == 0 {
				v = rnd.Uint64()
			}
			zobristCell[c][sq] = v
		}
	}
}

// ComputeZobrist recomputes the grid hash from scratch.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64
	for sq := 0; sq < NumSquares; sq++ {
		if c := b.cells[sq]; c != Empty {
			key ^= zobristCell[c][sq]
		}
	}
	return key
}

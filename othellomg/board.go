package othellomg

// Cell is the content of one board square.
type Cell uint8

const (
	Empty Cell = 0
	Black Cell = 1 // first player ("PlayerA")
	White Cell = 2
)

// Opponent returns the other colour. Empty has no opponent and maps to itself.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Empty"
	}
}

const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize
)

// Board is the full game state: the grid, the side to move, the Zobrist key of
// the grid and the piece counts. A Board is a plain value; copying it (or
// calling Clone) yields a fully independent position.
type Board struct {
	cells      [NumSquares]Cell
	sideToMove Cell
	zobristKey uint64
	counts     [3]int
}

// NewBoard returns the standard starting position with Black to move.
func NewBoard() *Board {
	b := &Board{sideToMove: Black}
	b.put(NewMove(3, 3), White)
	b.put(NewMove(4, 4), White)
	b.put(NewMove(3, 4), Black)
	b.put(NewMove(4, 3), Black)
	return b
}

// Clone returns an independent copy of the position.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func inside(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// At returns the content of (row, col). Out of range squares read as Empty.
func (b *Board) At(row, col int) Cell {
	if !inside(row, col) {
		return Empty
	}
	return b.cells[row*BoardSize+col]
}

// CellAt returns the content of the square addressed by m.
func (b *Board) CellAt(m Move) Cell {
	if !m.Valid() {
		return Empty
	}
	return b.cells[m]
}

func (b *Board) SideToMove() Cell { return b.sideToMove }

// SetSideToMove overrides the side to move. The grid hash is unaffected.
func (b *Board) SetSideToMove(c Cell) {
	if c == Black || c == White {
		b.sideToMove = c
	}
}

// Pass hands the turn to the opponent without placing a disc. Callers use it
// when the side to move has no legal move.
func (b *Board) Pass() {
	b.sideToMove = b.sideToMove.Opponent()
}

// PieceCounts returns (black, white).
func (b *Board) PieceCounts() (int, int) {
	return b.counts[Black], b.counts[White]
}

// Count returns the number of discs of colour c.
func (b *Board) Count(c Cell) int {
	if c != Black && c != White {
		return 0
	}
	return b.counts[c]
}

func (b *Board) Occupied() int { return b.counts[Black] + b.counts[White] }

func (b *Board) Empties() int { return NumSquares - b.Occupied() }

// Hash returns the canonical hash of the grid contents. The side to move is
// not part of it; transposition keys pair it with SideToMove explicitly.
func (b *Board) Hash() uint64 { return b.zobristKey }

// put places c on an empty square, keeping key and counts in sync.
func (b *Board) put(m Move, c Cell) {
	b.cells[m] = c
	b.counts[c]++
	b.zobristKey ^= zobristCell[c][m]
}

// flip turns the disc on m over to colour c.
func (b *Board) flip(m Move, c Cell) {
	old := b.cells[m]
	b.zobristKey ^= zobristCell[old][m] ^ zobristCell[c][m]
	b.counts[old]--
	b.counts[c]++
	b.cells[m] = c
}

// Validate checks that the incremental counts and Zobrist key agree with the grid.
func (b *Board) Validate() bool {
	var counts [3]int
	for sq := 0; sq < NumSquares; sq++ {
		c := b.cells[sq]
		if c > White {
			return false
		}
		counts[c]++
	}
	if counts[Black] != b.counts[Black] || counts[White] != b.counts[White] {
		return false
	}
	if b.sideToMove != Black && b.sideToMove != White {
		return false
	}
	return b.ComputeZobrist() == b.zobristKey
}

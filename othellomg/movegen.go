package othellomg

// The eight compass directions as (row, col) steps.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// runLength returns how many opponent discs are flanked from (row, col) in
// direction d for side, or 0 if the ray is not closed by an own disc.
func (b *Board) runLength(row, col int, d [2]int, side Cell) int {
	opp := side.Opponent()
	r, c := row+d[0], col+d[1]
	n := 0
	for inside(r, c) && b.cells[r*BoardSize+c] == opp {
		r += d[0]
		c += d[1]
		n++
	}
	if n == 0 || !inside(r, c) || b.cells[r*BoardSize+c] != side {
		return 0
	}
	return n
}

func (b *Board) legalFor(row, col int, side Cell) bool {
	if !inside(row, col) || b.cells[row*BoardSize+col] != Empty {
		return false
	}
	for _, d := range directions {
		if b.runLength(row, col, d, side) > 0 {
			return true
		}
	}
	return false
}

// IsLegal reports whether the side to move may play (row, col).
func (b *Board) IsLegal(row, col int) bool {
	return b.legalFor(row, col, b.sideToMove)
}

// LegalMoves returns every legal move for the side to move in row-major order.
func (b *Board) LegalMoves() []Move {
	moves := make([]Move, 0, 16)
	for sq := 0; sq < NumSquares; sq++ {
		if b.legalFor(sq/BoardSize, sq%BoardSize, b.sideToMove) {
			moves = append(moves, Move(sq))
		}
	}
	return moves
}

// MoveCount returns the number of legal moves for side, whoever is to move.
func (b *Board) MoveCount(side Cell) int {
	n := 0
	for sq := 0; sq < NumSquares; sq++ {
		if b.legalFor(sq/BoardSize, sq%BoardSize, side) {
			n++
		}
	}
	return n
}

func (b *Board) hasMovesFor(side Cell) bool {
	for sq := 0; sq < NumSquares; sq++ {
		if b.legalFor(sq/BoardSize, sq%BoardSize, side) {
			return true
		}
	}
	return false
}

func (b *Board) HasLegalMoves() bool { return b.hasMovesFor(b.sideToMove) }

// IsTerminal reports whether neither side can move, regardless of whose turn it is.
func (b *Board) IsTerminal() bool {
	return !b.hasMovesFor(Black) && !b.hasMovesFor(White)
}

// Flips lists the discs the side to move would capture by playing (row, col).
// An illegal move yields an empty slice.
func (b *Board) Flips(row, col int) []Move {
	if !inside(row, col) || b.cells[row*BoardSize+col] != Empty {
		return nil
	}
	var flips []Move
	for _, d := range directions {
		n := b.runLength(row, col, d, b.sideToMove)
		for i := 1; i <= n; i++ {
			flips = append(flips, NewMove(row+i*d[0], col+i*d[1]))
		}
	}
	return flips
}

// Perft counts leaf positions depth plies ahead. A forced pass counts as a
// move; a finished game is a leaf.
func Perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.LegalMoves()
	if len(moves) == 0 {
		if !b.hasMovesFor(b.sideToMove.Opponent()) {
			return 1
		}
		child := *b
		child.Pass()
		return Perft(&child, depth-1)
	}
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		child := *b
		child.ApplyMove(m.Row(), m.Col())
		nodes += Perft(&child, depth-1)
	}
	return nodes
}

// PerftDivide reports the perft count below each root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.LegalMoves() {
		child := *b
		child.ApplyMove(m.Row(), m.Col())
		result[m] = Perft(&child, depth-1)
	}
	return result
}

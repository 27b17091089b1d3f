package othellomg

// ApplyMove plays (row, col) for the side to move. It returns false and leaves
// the board untouched if the move is illegal. Otherwise every flanked run is
// captured and the turn passes to the opponent unconditionally; detecting a
// forced pass on the next ply is the caller's job.
func (b *Board) ApplyMove(row, col int) bool {
	if !b.IsLegal(row, col) {
		return false
	}
	side := b.sideToMove
	var runs [8]int
	for i, d := range directions {
		runs[i] = b.runLength(row, col, d, side)
	}
	b.put(NewMove(row, col), side)
	for i, d := range directions {
		for step := 1; step <= runs[i]; step++ {
			b.flip(NewMove(row+step*d[0], col+step*d[1]), side)
		}
	}
	b.sideToMove = side.Opponent()
	return true
}

// Play is ApplyMove addressed by a Move.
func (b *Board) Play(m Move) bool {
	if !m.Valid() {
		return false
	}
	return b.ApplyMove(m.Row(), m.Col())
}

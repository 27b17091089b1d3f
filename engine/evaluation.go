package engine

import (
	mg "othello-engine/othellomg"
)

/*
	Positional weights per square, from the point of view of the side owning the
	disc. Corners are good, the squares next to them hand corners away.
*/
var stabilityTable = [mg.BoardSize][mg.BoardSize]int{
	{4, -3, 2, 2, 2, 2, -3, 4},
	{-3, -4, -1, -1, -1, -1, -4, -3},
	{2, -1, 1, 0, 0, 1, -1, 2},
	{2, -1, 0, 1, 1, 0, -1, 2},
	{2, -1, 0, 1, 1, 0, -1, 2},
	{2, -1, 1, 0, 0, 1, -1, 2},
	{-3, -4, -1, -1, -1, -1, -4, -3},
	{4, -3, 2, 2, 2, 2, -3, 4},
}

var cornerSquares = [4]mg.Move{0, 7, 56, 63}

// The 28 border squares, corners included, each listed once.
var edgeSquares = func() []mg.Move {
	var sqs []mg.Move
	for sq := mg.Move(0); sq < mg.NumSquares; sq++ {
		if sq.IsEdge() {
			sqs = append(sqs, sq)
		}
	}
	return sqs
}()

// Move ordering scores
const (
	cornerOrderScore  = 10000
	edgeOrderBonus    = 3000
	xSquareOrderScore = -1000
)

// Evaluator scores positions from a fixed perspective. Strength selects how
// many terms take part:
//
//	1: disc differential
//	2: corners, edges, mobility and discs, weighted by game phase
//	3: 2 plus the stability table
//	4: 3, and the search tries the cached best move first
type Evaluator struct {
	Perspective mg.Cell
	Strength    int
}

func NewEvaluator(perspective mg.Cell, strength int) Evaluator {
	return Evaluator{Perspective: perspective, Strength: Clamp(strength, MinStrength, MaxStrength)}
}

// Phase weights shrink or grow linearly with the number of occupied squares.
// All terms are non-negative, so integer division rounds down.
func phaseWeights(occupied int) (mobility, corner, edge, stability int) {
	empty := mg.NumSquares - occupied
	mobility = 10*empty/mg.NumSquares + 1
	corner = 100*empty/mg.NumSquares + 50
	edge = 20*empty/mg.NumSquares + 5
	stability = 40*occupied/mg.NumSquares + 10
	return
}

// StaticEval returns the heuristic value of b for the evaluator's perspective.
func (ev Evaluator) StaticEval(b *mg.Board) int {
	me := ev.Perspective
	opp := me.Opponent()
	pieces := b.Count(me) - b.Count(opp)
	if ev.Strength <= 1 {
		return pieces
	}

	mobW, cornerW, edgeW, stabW := phaseWeights(b.Occupied())

	corners := 0
	for _, sq := range cornerSquares {
		corners += ownership(b.CellAt(sq), me)
	}
	edges := 0
	for _, sq := range edgeSquares {
		edges += ownership(b.CellAt(sq), me)
	}
	// MoveCount takes the side explicitly, so b is never touched.
	mobility := b.MoveCount(me) - b.MoveCount(opp)

	score := cornerW*corners + edgeW*edges + mobW*mobility + pieces
	if ev.Strength >= 3 {
		stability := 0
		for r := 0; r < mg.BoardSize; r++ {
			for c := 0; c < mg.BoardSize; c++ {
				stability += stabilityTable[r][c] * ownership(b.At(r, c), me)
			}
		}
		score += stabW * stability
	}
	return score
}

// +1 for own discs, -1 for the opponent's, 0 for empty squares.
func ownership(c, me mg.Cell) int {
	switch c {
	case mg.Empty:
		return 0
	case me:
		return 1
	default:
		return -1
	}
}

// OrderingScore ranks a legal move m for the side to move in b. Corners score
// highest and X-squares lowest; border squares get a bonus on top of the
// mover's static value after the move.
func (ev Evaluator) OrderingScore(b *mg.Board, m mg.Move) int {
	if m.IsCorner() {
		return cornerOrderScore
	}
	if m.IsXSquare() {
		return xSquareOrderScore
	}
	child := *b
	child.Play(m)
	mover := Evaluator{Perspective: b.SideToMove(), Strength: ev.Strength}
	if m.IsEdge() {
		return edgeOrderBonus + mover.StaticEval(&child)
	}
	return mover.StaticEval(&child)
}

// EvalBar maps a score to the fill fraction of a strength indicator:
// -1000 or worse is empty, +1000 or better is full.
func EvalBar(score int) float64 {
	f := float64(score+1000) / 2000
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mg "othello-engine/othellomg"
)

func TestPhaseWeights(t *testing.T) {
	cases := []struct {
		occupied                          int
		mobility, corner, edge, stability int
	}{
		{4, 10, 143, 23, 12},
		{32, 6, 100, 15, 30},
		{64, 1, 50, 5, 50},
	}
	for _, tc := range cases {
		mob, cor, edge, stab := phaseWeights(tc.occupied)
		assert.Equal(t, tc.mobility, mob, "mobility at %d", tc.occupied)
		assert.Equal(t, tc.corner, cor, "corner at %d", tc.occupied)
		assert.Equal(t, tc.edge, edge, "edge at %d", tc.occupied)
		assert.Equal(t, tc.stability, stab, "stability at %d", tc.occupied)
	}
}

func TestEdgeSquaresCountedOnce(t *testing.T) {
	assert.Len(t, edgeSquares, 28)
}

func TestStaticEvalTiers(t *testing.T) {
	start := mg.NewBoard()
	for s := MinStrength; s <= MaxStrength; s++ {
		assert.Zero(t, NewEvaluator(mg.Black, s).StaticEval(start), "symmetric start, strength %d", s)
	}

	b := mg.NewBoard()
	require.True(t, b.ApplyMove(2, 3))
	want := map[int]int{1: 3, 2: 3, 3: 29, 4: 29}
	for s, v := range want {
		assert.Equal(t, v, NewEvaluator(mg.Black, s).StaticEval(b), "black strength %d", s)
		assert.Equal(t, -v, NewEvaluator(mg.White, s).StaticEval(b), "white strength %d", s)
	}
}

func TestStaticEvalDoesNotMutate(t *testing.T) {
	b := mustParse(t, middlePos)
	before := *b
	NewEvaluator(mg.White, 4).StaticEval(b)
	assert.Equal(t, before, *b)
}

func TestStrengthIsClamped(t *testing.T) {
	assert.Equal(t, 1, NewEvaluator(mg.Black, -3).Strength)
	assert.Equal(t, 4, NewEvaluator(mg.Black, 9).Strength)
}

func TestOrderingScore(t *testing.T) {
	ev := NewEvaluator(mg.Black, 2)

	assert.Equal(t, cornerOrderScore, ev.OrderingScore(mg.NewBoard(), mg.NewMove(7, 0)))
	assert.Equal(t, xSquareOrderScore, ev.OrderingScore(mg.NewBoard(), mg.NewMove(6, 6)))

	// c1 captures b1 and leaves three black discs on the top edge.
	b := mustParse(t, "XO------ -------- -------- -------- -------- -------- -------- -------- X")
	assert.Equal(t, edgeOrderBonus+220, ev.OrderingScore(b, mg.NewMove(0, 2)))

	// Same shape for White: scored for the mover, not for the evaluator's side.
	w := mustParse(t, "OX------ -------- -------- -------- -------- -------- -------- -------- O")
	assert.Equal(t, edgeOrderBonus+220, ev.OrderingScore(w, mg.NewMove(0, 2)))

	// Interior moves score the position after the move.
	start := mg.NewBoard()
	child := *start
	require.True(t, child.ApplyMove(2, 3))
	assert.Equal(t, ev.StaticEval(&child), ev.OrderingScore(start, mg.NewMove(2, 3)))
}

func TestOrderNextMovePicksHighestFirst(t *testing.T) {
	list := moveList{moves: []move{{mg.NewMove(0, 1), 5}, {mg.NewMove(0, 2), 50}, {mg.NewMove(0, 3), -7}, {mg.NewMove(0, 4), 20}}}
	var order []int
	for i := range list.moves {
		orderNextMove(i, &list)
		order = append(order, list.moves[i].score)
	}
	assert.Equal(t, []int{50, 20, 5, -7}, order)
}

func TestPVMoveOrderedFirst(t *testing.T) {
	b := mg.NewBoard()
	ev := NewEvaluator(mg.Black, 4)
	pv := mg.NewMove(5, 4)
	list := ev.scoreMovesList(b, b.LegalMoves(), pv)
	orderNextMove(0, &list)
	assert.Equal(t, pv, list.moves[0].move)
}

func TestEvalBar(t *testing.T) {
	assert.InDelta(t, 0.5, EvalBar(0), 1e-9)
	assert.InDelta(t, 0.25, EvalBar(-500), 1e-9)
	assert.InDelta(t, 1.0, EvalBar(1000), 1e-9)
	assert.InDelta(t, 1.0, EvalBar(4000), 1e-9)
	assert.InDelta(t, 0.0, EvalBar(-2500), 1e-9)
}

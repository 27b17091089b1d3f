package othellomg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mg "othello-engine/othellomg"
)

func TestZobristTracksIncrementalUpdates(t *testing.T) {
	b := mg.NewBoard()
	require.Equal(t, b.ComputeZobrist(), b.Hash())

	for _, s := range []string{"f5", "d6", "c3", "d3", "c4"} {
		m, err := mg.ParseMove(s)
		require.NoError(t, err)
		require.True(t, b.Play(m), "move %s", s)
		require.Equal(t, b.ComputeZobrist(), b.Hash(), "after %s", s)
	}
}

func TestHashIgnoresSideToMove(t *testing.T) {
	b := mg.NewBoard()
	h := b.Hash()
	b.Pass()
	assert.Equal(t, h, b.Hash())
}

func TestTranspositionsShareHash(t *testing.T) {
	// Two move orders reaching the same grid.
	play := func(moves ...string) *mg.Board {
		b := mg.NewBoard()
		for _, s := range moves {
			m, err := mg.ParseMove(s)
			require.NoError(t, err)
			require.True(t, b.Play(m), "move %s", s)
		}
		return b
	}
	a := play("d3", "c3", "c4", "e3")
	c := play("c4", "c3", "d3", "e3")
	require.Equal(t, a.Position(), c.Position())
	assert.Equal(t, a.Hash(), c.Hash())
}

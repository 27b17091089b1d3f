package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mg "othello-engine/othellomg"
)

func TestTTNeverAnswersDeeperRequest(t *testing.T) {
	TT := NewTransTable(1)
	b := mg.NewBoard()
	TT.Store(b.Hash(), mg.Black, 2, mg.NewMove(2, 3), 40, ExactFlag)

	entry, ok := TT.Probe(b.Hash(), mg.Black)
	require.True(t, ok)

	usable, _ := useEntry(entry, 3, -Infinity, Infinity)
	assert.False(t, usable, "depth 2 entry must not answer depth 3")

	usable, score := useEntry(entry, 2, -Infinity, Infinity)
	assert.True(t, usable)
	assert.Equal(t, 40, score)

	usable, _ = useEntry(entry, 1, -Infinity, Infinity)
	assert.True(t, usable)
}

func TestTTBoundsRespectWindow(t *testing.T) {
	lower := TTEntry{Depth: 4, Score: 100, Flag: LowerFlag}
	usable, _ := useEntry(lower, 4, 0, 150)
	assert.False(t, usable)
	usable, score := useEntry(lower, 4, 0, 90)
	assert.True(t, usable)
	assert.Equal(t, 100, score)

	upper := TTEntry{Depth: 4, Score: -20, Flag: UpperFlag}
	usable, _ = useEntry(upper, 4, -50, 50)
	assert.False(t, usable)
	usable, _ = useEntry(upper, 4, -10, 50)
	assert.True(t, usable)

	usable, _ = useEntry(TTEntry{}, 0, -Infinity, Infinity)
	assert.False(t, usable)
}

func TestTTKeyIncludesSideToMove(t *testing.T) {
	TT := NewTransTable(1)
	hash := mg.NewBoard().Hash()
	TT.Store(hash, mg.Black, 3, mg.NewMove(2, 3), 7, ExactFlag)

	_, ok := TT.Probe(hash, mg.White)
	assert.False(t, ok)
	entry, ok := TT.Probe(hash, mg.Black)
	require.True(t, ok)
	assert.Equal(t, int32(7), entry.Score)
}

func TestTTSameKeyAlwaysReplaced(t *testing.T) {
	TT := NewTransTable(1)
	TT.Store(42, mg.Black, 6, mg.NewMove(0, 0), 500, ExactFlag)
	TT.Store(42, mg.Black, 1, mg.NewMove(7, 7), -3, UpperFlag)

	entry, ok := TT.Probe(42, mg.Black)
	require.True(t, ok)
	assert.Equal(t, int8(1), entry.Depth)
	assert.Equal(t, mg.NewMove(7, 7), entry.Move)
	assert.Equal(t, 1, TT.Len())

	TT.Clear()
	_, ok = TT.Probe(42, mg.Black)
	assert.False(t, ok)
	assert.Zero(t, TT.Len())
}

func TestTTEvictsShallowestInFullCluster(t *testing.T) {
	TT := NewTransTable(1)
	n := TT.clusterCount
	// Same cluster, distinct keys.
	for i := uint64(0); i < clusterSize; i++ {
		TT.Store(5+i*n, mg.Black, int(i)+2, mg.NoMove, 0, ExactFlag)
	}
	TT.Store(5+clusterSize*n, mg.Black, 9, mg.NoMove, 0, ExactFlag)

	_, ok := TT.Probe(5, mg.Black)
	assert.False(t, ok, "depth 2 entry is the shallowest and goes")
	for i := uint64(1); i <= clusterSize; i++ {
		_, ok := TT.Probe(5+i*n, mg.Black)
		assert.True(t, ok)
	}
}

func TestOverlayReadsThroughAndMerges(t *testing.T) {
	master := NewTransTable(1)
	master.Store(1, mg.Black, 3, mg.NewMove(2, 3), 10, ExactFlag)

	ov := newOverlayTable(master)
	entry, ok := ov.Probe(1, mg.Black)
	require.True(t, ok)
	assert.Equal(t, int32(10), entry.Score)

	ov.Store(1, mg.Black, 4, mg.NewMove(3, 2), 12, LowerFlag)
	ov.Store(2, mg.White, 2, mg.NewMove(4, 5), -5, ExactFlag)

	// Master is untouched until the merge.
	entry, _ = master.Probe(1, mg.Black)
	assert.Equal(t, int32(10), entry.Score)
	_, ok = master.Probe(2, mg.White)
	assert.False(t, ok)

	ov.mergeInto(master)
	entry, _ = master.Probe(1, mg.Black)
	assert.Equal(t, int32(12), entry.Score)
	assert.Equal(t, LowerFlag, entry.Flag)
	entry, ok = master.Probe(2, mg.White)
	require.True(t, ok)
	assert.Equal(t, mg.NewMove(4, 5), entry.Move)
}

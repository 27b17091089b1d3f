package engine

import (
	"unsafe"

	mg "othello-engine/othellomg"
)

const (
	// Flags. EmptyFlag marks an unused slot.
	EmptyFlag uint8 = iota
	UpperFlag       // score <= alpha: the true value is at most Score
	LowerFlag       // score >= beta: the true value is at least Score
	ExactFlag

	clusterSize = 4
)

// TTEntry is one remembered search result, keyed by grid hash and side to move.
type TTEntry struct {
	Hash  uint64
	Score int32
	Depth int8
	Side  mg.Cell
	Move  mg.Move
	Flag  uint8
}

func (e *TTEntry) matches(hash uint64, side mg.Cell) bool {
	return e.Flag != EmptyFlag && e.Hash == hash && e.Side == side
}

// table is what the searcher reads and writes: the engine's TransTable when
// searching alone, or a private overlay during a parallel root fan-out.
type table interface {
	Probe(hash uint64, side mg.Cell) (TTEntry, bool)
	Store(hash uint64, side mg.Cell, depth int, move mg.Move, score int, flag uint8)
}

// TransTable is a fixed-size clustered hash table. It is not safe for
// concurrent writers; the engine serializes access with its search lock.
type TransTable struct {
	entries      []TTEntry
	clusterCount uint64
}

// NewTransTable allocates a table of roughly sizeMB megabytes.
func NewTransTable(sizeMB int) *TransTable {
	TT := &TransTable{}
	TT.init(sizeMB)
	return TT
}

func (TT *TransTable) init(sizeMB int) {
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	totalBytes := uint64(Clamp(sizeMB, 1, 4096)) * 1024 * 1024
	clusterCount := totalBytes / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	TT.clusterCount = clusterCount
	TT.entries = make([]TTEntry, clusterCount*clusterSize)
}

// Clear forgets every entry but keeps the allocation.
func (TT *TransTable) Clear() {
	clear(TT.entries)
}

// Len counts occupied slots.
func (TT *TransTable) Len() int {
	n := 0
	for i := range TT.entries {
		if TT.entries[i].Flag != EmptyFlag {
			n++
		}
	}
	return n
}

// The side to move is folded into the cluster index so that both colours on
// the same grid do not compete for one cluster.
func (TT *TransTable) clusterBase(hash uint64, side mg.Cell) int {
	key := hash
	if side == mg.White {
		key ^= 0x9E3779B97F4A7C15
	}
	return int(key%TT.clusterCount) * clusterSize
}

func (TT *TransTable) Probe(hash uint64, side mg.Cell) (TTEntry, bool) {
	base := TT.clusterBase(hash, side)
	for i := 0; i < clusterSize; i++ {
		if e := &TT.entries[base+i]; e.matches(hash, side) {
			return *e, true
		}
	}
	return TTEntry{}, false
}

/*
Same key is always overwritten, whatever depth it held. Otherwise take an
empty slot, and failing that evict the shallowest entry of the cluster.
*/
func (TT *TransTable) Store(hash uint64, side mg.Cell, depth int, move mg.Move, score int, flag uint8) {
	base := TT.clusterBase(hash, side)
	targetIdx := -1

	for i := 0; i < clusterSize; i++ {
		if TT.entries[base+i].matches(hash, side) {
			targetIdx = base + i
			break
		}
	}

	if targetIdx == -1 {
		for i := 0; i < clusterSize; i++ {
			if TT.entries[base+i].Flag == EmptyFlag {
				targetIdx = base + i
				break
			}
		}
	}

	if targetIdx == -1 {
		targetIdx = base
		minDepth := TT.entries[base].Depth
		for i := 1; i < clusterSize; i++ {
			if TT.entries[base+i].Depth < minDepth {
				minDepth = TT.entries[base+i].Depth
				targetIdx = base + i
			}
		}
	}

	TT.entries[targetIdx] = TTEntry{
		Hash:  hash,
		Score: int32(score),
		Depth: int8(depth),
		Side:  side,
		Move:  move,
		Flag:  flag,
	}
}

// useEntry reports whether a probed entry answers a search of the given depth
// and window. Shallower entries never answer deeper requests.
func useEntry(entry TTEntry, depth int, alpha, beta int) (usable bool, score int) {
	if int(entry.Depth) < depth {
		return false, 0
	}
	score = int(entry.Score)
	switch entry.Flag {
	case ExactFlag:
		return true, score
	case LowerFlag:
		return score >= beta, score
	case UpperFlag:
		return score <= alpha, score
	}
	return false, 0
}

// overlayTable is a worker-private layer over a read-only master table.
// Writes stay local until mergeInto copies them, in insertion order.
type overlayTable struct {
	master  *TransTable
	entries []TTEntry
	index   map[ttKey]int
}

type ttKey struct {
	hash uint64
	side mg.Cell
}

func newOverlayTable(master *TransTable) *overlayTable {
	return &overlayTable{master: master, index: make(map[ttKey]int)}
}

func (ov *overlayTable) Probe(hash uint64, side mg.Cell) (TTEntry, bool) {
	if i, ok := ov.index[ttKey{hash, side}]; ok {
		return ov.entries[i], true
	}
	return ov.master.Probe(hash, side)
}

func (ov *overlayTable) Store(hash uint64, side mg.Cell, depth int, move mg.Move, score int, flag uint8) {
	e := TTEntry{Hash: hash, Score: int32(score), Depth: int8(depth), Side: side, Move: move, Flag: flag}
	k := ttKey{hash, side}
	if i, ok := ov.index[k]; ok {
		ov.entries[i] = e
		return
	}
	ov.index[k] = len(ov.entries)
	ov.entries = append(ov.entries, e)
}

func (ov *overlayTable) mergeInto(TT *TransTable) {
	for _, e := range ov.entries {
		TT.Store(e.Hash, e.Side, int(e.Depth), e.Move, int(e.Score), e.Flag)
	}
}

package othellomg_test

import (
	"testing"

	mg "othello-engine/othellomg"
)

func TestPerftInitialPosition(t *testing.T) {
	want := []uint64{1, 4, 12, 56, 244, 1396, 8200}
	b := mg.NewBoard()
	for depth, nodes := range want {
		if got := mg.Perft(b, depth); got != nodes {
			t.Fatalf("perft depth %d: got %d want %d", depth, got, nodes)
		}
	}
	if !b.Validate() || b.Position() != mg.StartPosition {
		t.Fatalf("perft mutated the root position")
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	b := mg.NewBoard()
	div := mg.PerftDivide(b, 4)
	if len(div) != 4 {
		t.Fatalf("divide: got %d root moves want 4", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != mg.Perft(b, 4) {
		t.Fatalf("divide sum %d != perft %d", sum, mg.Perft(b, 4))
	}
}

func TestPerftCountsForcedPass(t *testing.T) {
	// Black has no move, White has exactly one (c1).
	b, err := mg.ParsePosition("OX------ -------- -------- -------- -------- -------- -------- -------- X")
	if err != nil {
		t.Fatal(err)
	}
	if got := mg.Perft(b, 1); got != 1 {
		t.Fatalf("pass perft depth 1: got %d want 1", got)
	}
	if got := mg.Perft(b, 2); got != 1 {
		t.Fatalf("pass perft depth 2: got %d want 1", got)
	}
}

func benchPerft(b *testing.B, depth int) {
	board := mg.NewBoard()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = mg.Perft(board, depth)
	}
}

func BenchmarkPerft_Initial_D6(b *testing.B) {
	benchPerft(b, 6)
}

package othellomg_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mg "othello-engine/othellomg"
)

func TestNewBoardLayout(t *testing.T) {
	b := mg.NewBoard()
	require.True(t, b.Validate())

	assert.Equal(t, mg.White, b.At(3, 3))
	assert.Equal(t, mg.Black, b.At(3, 4))
	assert.Equal(t, mg.Black, b.At(4, 3))
	assert.Equal(t, mg.White, b.At(4, 4))
	assert.Equal(t, mg.Black, b.SideToMove())

	black, white := b.PieceCounts()
	assert.Equal(t, 2, black)
	assert.Equal(t, 2, white)
	assert.Equal(t, 60, b.Empties())
}

func TestInitialLegalMoves(t *testing.T) {
	b := mg.NewBoard()
	moves := b.LegalMoves()
	want := []mg.Move{mg.NewMove(2, 3), mg.NewMove(3, 2), mg.NewMove(4, 5), mg.NewMove(5, 4)}
	assert.Equal(t, want, moves)
}

func TestApplyMoveFlipsFlankedDisc(t *testing.T) {
	b := mg.NewBoard()
	require.True(t, b.IsLegal(2, 3))
	require.Equal(t, []mg.Move{mg.NewMove(3, 3)}, b.Flips(2, 3))

	require.True(t, b.ApplyMove(2, 3))
	assert.Equal(t, mg.Black, b.At(2, 3))
	assert.Equal(t, mg.Black, b.At(3, 3))
	assert.Equal(t, mg.White, b.At(4, 4))
	assert.Equal(t, mg.White, b.SideToMove())

	black, white := b.PieceCounts()
	assert.Equal(t, 4, black)
	assert.Equal(t, 1, white)
	assert.True(t, b.Validate())
}

func TestApplyMoveRejectsIllegal(t *testing.T) {
	b := mg.NewBoard()
	before := *b

	// no flanking run from a diagonal corner of the centre
	assert.False(t, b.IsLegal(2, 2))
	assert.False(t, b.ApplyMove(2, 2))
	// occupied square
	assert.False(t, b.ApplyMove(3, 3))
	// off the board
	assert.False(t, b.ApplyMove(8, 0))
	assert.False(t, b.ApplyMove(-1, 4))

	assert.Equal(t, before, *b)
}

func TestCloneIsIndependent(t *testing.T) {
	b := mg.NewBoard()
	c := b.Clone()
	require.True(t, c.ApplyMove(2, 3))

	assert.Equal(t, mg.White, b.At(3, 3))
	assert.Equal(t, mg.Empty, b.At(2, 3))
	assert.Equal(t, mg.Black, b.SideToMove())
	assert.NotEqual(t, b.Hash(), c.Hash())
}

func TestApplyMoveNeverAutoPasses(t *testing.T) {
	// White's only disc is captured by a1 and White is left with no reply.
	b, err := mg.ParsePosition("-OX----- -------- -------- -------- -------- -------- -------- -------- X")
	require.NoError(t, err)
	require.True(t, b.ApplyMove(0, 0))

	assert.Equal(t, mg.White, b.SideToMove())
	assert.False(t, b.HasLegalMoves())
	assert.True(t, b.IsTerminal())
}

func TestTerminalRegardlessOfTurn(t *testing.T) {
	b, err := mg.ParsePosition("XOXXXXXX XXXXXXXX XXXXXXXX XXXXXXXX XXXXXXXX XXXXXXXX XXXXXXXX XXXXXXX- O")
	require.NoError(t, err)
	assert.True(t, b.IsTerminal())
	b.Pass()
	assert.True(t, b.IsTerminal())

	// a forced pass is not terminal
	p, err := mg.ParsePosition("OX------ -------- -------- -------- -------- -------- -------- -------- X")
	require.NoError(t, err)
	assert.False(t, p.HasLegalMoves())
	assert.False(t, p.IsTerminal())
}

// Random playouts from the start position exercise legality soundness and
// disc conservation on reachable states.
func TestRandomPlayoutInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for game := 0; game < 40; game++ {
		b := mg.NewBoard()
		for !b.IsTerminal() {
			for sq := 0; sq < mg.NumSquares; sq++ {
				m := mg.Move(sq)
				legal := b.IsLegal(m.Row(), m.Col())
				require.Equal(t, legal, len(b.Flips(m.Row(), m.Col())) > 0, "square %s", m)
			}

			moves := b.LegalMoves()
			if len(moves) == 0 {
				b.Pass()
				continue
			}
			m := moves[rnd.Intn(len(moves))]
			flips := b.Flips(m.Row(), m.Col())
			side := b.SideToMove()
			occupied := b.Occupied()
			own := b.Count(side)

			require.True(t, b.Play(m))
			require.Equal(t, occupied+1, b.Occupied())
			require.Equal(t, own+1+len(flips), b.Count(side))
			for _, f := range flips {
				require.Equal(t, side, b.CellAt(f))
			}
			require.Equal(t, side.Opponent(), b.SideToMove())
			require.True(t, b.Validate())
		}
	}
}

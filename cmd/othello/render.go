package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"othello-engine/engine"
	mg "othello-engine/othellomg"
)

// boardView draws positions with terminal colours when the output supports them.
type boardView struct {
	out *termenv.Output
}

func newBoardView(w io.Writer) *boardView {
	return &boardView{out: termenv.NewOutput(w)}
}

func (v *boardView) cell(text string, bg string, fg string) string {
	return v.out.String(text).Background(v.out.Color(bg)).Foreground(v.out.Color(fg)).String()
}

// Render draws b, marking legal moves with a dot and hint with a star.
func (v *boardView) Render(b *mg.Board, hint mg.Move) string {
	legal := map[mg.Move]bool{}
	for _, m := range b.LegalMoves() {
		legal[m] = true
	}

	var sb strings.Builder
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	for r := 0; r < mg.BoardSize; r++ {
		fmt.Fprintf(&sb, "%d ", r+1)
		for c := 0; c < mg.BoardSize; c++ {
			m := mg.NewMove(r, c)
			switch {
			case b.At(r, c) == mg.Black:
				sb.WriteString(v.cell(" ● ", "2", "0"))
			case b.At(r, c) == mg.White:
				sb.WriteString(v.cell(" ● ", "2", "15"))
			case m == hint:
				sb.WriteString(v.cell(" * ", "2", "11"))
			case legal[m]:
				sb.WriteString(v.cell(" · ", "2", "10"))
			default:
				sb.WriteString(v.cell("   ", "2", "2"))
			}
		}
		sb.WriteByte('\n')
	}
	black, white := b.PieceCounts()
	fmt.Fprintf(&sb, "Black %d  White %d  %s to move\n", black, white, b.SideToMove())
	return sb.String()
}

// Bar draws the evaluation indicator, filled from the left for the engine's side.
func (v *boardView) Bar(score int, width int) string {
	filled := int(engine.EvalBar(score) * float64(width))
	return v.cell(strings.Repeat(" ", filled), "15", "0") +
		v.cell(strings.Repeat(" ", width-filled), "0", "15") +
		fmt.Sprintf(" %+d", score)
}

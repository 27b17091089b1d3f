package engine

import (
	mg "othello-engine/othellomg"
)

type move struct {
	move  mg.Move
	score int
}
type moveList struct {
	moves []move
}

// Above anything OrderingScore can return.
const pvOffset = 1 << 20

// Ordering the moves one at a time, at index given
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := bestIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

// scoreMovesList scores every move with OrderingScore. pvMove, when it is one
// of the legal moves, jumps ahead of all of them.
func (ev Evaluator) scoreMovesList(b *mg.Board, moves []mg.Move, pvMove mg.Move) (movesList moveList) {
	movesList.moves = make([]move, len(moves))
	for i, m := range moves {
		movesList.moves[i].move = m
		if m == pvMove {
			movesList.moves[i].score = pvOffset
		} else {
			movesList.moves[i].score = ev.OrderingScore(b, m)
		}
	}
	return movesList
}

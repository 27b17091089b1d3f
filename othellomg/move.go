package othellomg

import (
	"fmt"
	"strings"
)

// Move addresses a square as row*8+col. A Move is only meaningful relative to
// the position it was generated from.
type Move uint8

// NoMove marks an absent move (no legal move, or an empty search result).
const NoMove Move = 0xFF

// NewMove builds a Move from a (row, col) pair. Out of range input yields NoMove.
func NewMove(row, col int) Move {
	if !inside(row, col) {
		return NoMove
	}
	return Move(row*BoardSize + col)
}

func (m Move) Row() int { return int(m) / BoardSize }

func (m Move) Col() int { return int(m) % BoardSize }

func (m Move) Valid() bool { return m < NumSquares }

// IsCorner reports whether m is one of the four corner squares.
func (m Move) IsCorner() bool {
	r, c := m.Row(), m.Col()
	return m.Valid() && (r == 0 || r == BoardSize-1) && (c == 0 || c == BoardSize-1)
}

// IsEdge reports whether m lies on the border (corners included).
func (m Move) IsEdge() bool {
	r, c := m.Row(), m.Col()
	return m.Valid() && (r == 0 || r == BoardSize-1 || c == 0 || c == BoardSize-1)
}

// IsXSquare reports whether m is diagonally adjacent to a corner.
func (m Move) IsXSquare() bool {
	r, c := m.Row(), m.Col()
	return m.Valid() && (r == 1 || r == BoardSize-2) && (c == 1 || c == BoardSize-2)
}

// String gives the algebraic name: column letter then 1-based row ("d3" is row 2, col 3).
func (m Move) String() string {
	if !m.Valid() {
		return "none"
	}
	return string([]byte{'a' + byte(m.Col()), '1' + byte(m.Row())})
}

// ParseMove reads a move in algebraic form ("d3", case-insensitive).
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return NoMove, fmt.Errorf("parse move %q: want two characters", s)
	}
	col := int(s[0]) - 'a'
	row := int(s[1]) - '1'
	if !inside(row, col) {
		return NoMove, fmt.Errorf("parse move %q: square off the board", s)
	}
	return NewMove(row, col), nil
}

package othellomg

import (
	"errors"
	"fmt"
	"strings"
)

// A position string lists the 64 squares row by row ('X' Black, 'O' White,
// '-' empty), then a space and the side to move ('X' or 'O'). Whitespace and
// '/' separators inside the grid part are ignored.
const StartPosition = "---------------------------OX------XO--------------------------- X"

var ErrInvalidPosition = errors.New("invalid position")

func cellFromChar(ch byte) (Cell, bool) {
	switch ch {
	case 'X', 'x', 'B', 'b', '*':
		return Black, true
	case 'O', 'o', 'W', 'w':
		return White, true
	case '-', '.', '_':
		return Empty, true
	default:
		return Empty, false
	}
}

func charFromCell(c Cell) byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	default:
		return '-'
	}
}

// ParsePosition reads a position string.
func ParsePosition(s string) (*Board, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: want grid and side to move, got %q", ErrInvalidPosition, s)
	}
	grid := strings.ReplaceAll(strings.Join(fields[:len(fields)-1], ""), "/", "")
	if len(grid) != NumSquares {
		return nil, fmt.Errorf("%w: grid has %d squares, want %d", ErrInvalidPosition, len(grid), NumSquares)
	}

	b := &Board{}
	for sq := 0; sq < NumSquares; sq++ {
		c, ok := cellFromChar(grid[sq])
		if !ok {
			return nil, fmt.Errorf("%w: unexpected character %q at square %d", ErrInvalidPosition, grid[sq], sq)
		}
		if c != Empty {
			b.put(Move(sq), c)
		}
	}

	side := fields[len(fields)-1]
	if len(side) != 1 {
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidPosition, side)
	}
	c, ok := cellFromChar(side[0])
	if !ok || c == Empty {
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidPosition, side)
	}
	b.sideToMove = c
	return b, nil
}

// Position renders the board in position-string form.
func (b *Board) Position() string {
	var sb strings.Builder
	sb.Grow(NumSquares + 2)
	for sq := 0; sq < NumSquares; sq++ {
		sb.WriteByte(charFromCell(b.cells[sq]))
	}
	sb.WriteByte(' ')
	sb.WriteByte(charFromCell(b.sideToMove))
	return sb.String()
}

// String draws the grid with coordinates, for logs and terminals.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for r := 0; r < BoardSize; r++ {
		sb.WriteByte('1' + byte(r))
		for c := 0; c < BoardSize; c++ {
			sb.WriteByte(' ')
			sb.WriteByte(charFromCell(b.cells[r*BoardSize+c]))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%s to move\n", b.sideToMove)
	return sb.String()
}

package main

import "strings"

type Cell int

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

// Board is a square grid stored row-major: x selects the row, y the column.
type Board struct {
	size  int
	cells []Cell
	hash  uint64
	zob   *ZobristTable
}

func NewBoard(boardSize int) Board {
	b := Board{}
	b.Reset(boardSize)
	return b
}

func (b *Board) Reset(boardSize int) {
	b.size = boardSize
	b.cells = make([]Cell, boardSize*boardSize)
	b.hash = 0
	b.zob = GetZobrist(boardSize)
}

func (b Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

// Set places value at (x,y). Coordinates must already be validated.
func (b *Board) Set(x, y int, value Cell) {
	idx := b.index(x, y)
	if prev := b.cells[idx]; prev != CellEmpty {
		b.hash ^= b.zob.stone(x, y, prev)
	}
	b.cells[idx] = value
	if value != CellEmpty {
		b.hash ^= b.zob.stone(x, y, value)
	}
}

func (b *Board) Remove(x, y int) {
	b.Set(x, y, CellEmpty)
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

func (b Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == CellEmpty
}

// IsValidMove reports whether a stone may be placed at (x,y).
func (b Board) IsValidMove(x, y int) bool {
	return b.IsEmpty(x, y)
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) Size() int {
	return b.size
}

func (b Board) Hash() uint64 {
	return b.hash
}

func (b Board) Clone() Board {
	clone := Board{size: b.size, hash: b.hash, zob: b.zob}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

// FirstEmpty returns the first empty cell in row-major order.
func (b Board) FirstEmpty() (Move, bool) {
	for i, cell := range b.cells {
		if cell == CellEmpty {
			return Move{X: i / b.size, Y: i % b.size}, true
		}
	}
	return Move{X: -1, Y: -1}, false
}

func (b Board) EmptyCells() []Move {
	moves := make([]Move, 0, len(b.cells))
	for i, cell := range b.cells {
		if cell == CellEmpty {
			moves = append(moves, Move{X: i / b.size, Y: i % b.size})
		}
	}
	return moves
}

func (b Board) Stones() []Move {
	stones := []Move{}
	for i, cell := range b.cells {
		if cell != CellEmpty {
			stones = append(stones, Move{X: i / b.size, Y: i % b.size})
		}
	}
	return stones
}

// Serialize renders the whole board row by row, one symbol per cell.
func (b Board) Serialize() string {
	var sb strings.Builder
	sb.Grow(len(b.cells))
	for _, cell := range b.cells {
		sb.WriteByte(cell.Symbol())
	}
	return sb.String()
}

func (b Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for x := 0; x < b.size; x++ {
		rows[x] = make([]int, b.size)
		for y := 0; y < b.size; y++ {
			rows[x][y] = cellToInt(b.At(x, y))
		}
	}
	return rows
}

func (b Board) index(x, y int) int {
	return x*b.size + y
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

func (c Cell) Symbol() byte {
	switch c {
	case CellBlack:
		return 'B'
	case CellWhite:
		return 'W'
	default:
		return '.'
	}
}

func (c Cell) Opponent() Cell {
	switch c {
	case CellBlack:
		return CellWhite
	case CellWhite:
		return CellBlack
	default:
		return CellEmpty
	}
}

func cellToInt(cell Cell) int {
	switch cell {
	case CellBlack:
		return 1
	case CellWhite:
		return 2
	default:
		return 0
	}
}

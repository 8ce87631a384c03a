package main

import "fmt"

var lineDirections = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

type Rules struct {
	winLength int
}

func NewRules(winLength int) Rules {
	return Rules{winLength: winLength}
}

// IsWin reports whether the stone of the given colour at (x,y) completes a
// run of at least winLength. The stone must already be on the board.
func (r Rules) IsWin(board Board, x, y int, cell Cell) bool {
	if !board.InBounds(x, y) || cell == CellEmpty {
		return false
	}
	start := Move{X: x, Y: y}
	for i := 0; i < 4; i++ {
		dx := lineDirections[i][0]
		dy := lineDirections[i][1]
		count := 1
		count += r.countDirection(board, start, cell, dx, dy)
		count += r.countDirection(board, start, cell, -dx, -dy)
		if count >= r.winLength {
			return true
		}
	}
	return false
}

// WinsAt places cell at (x,y), checks for a win, and undoes the placement.
func (r Rules) WinsAt(board *Board, x, y int, cell Cell) bool {
	board.Set(x, y, cell)
	win := r.IsWin(*board, x, y, cell)
	board.Remove(x, y)
	return win
}

func (r Rules) IsDraw(board Board) bool {
	return board.CountEmpty() == 0
}

func (r Rules) FindAlignmentLine(board Board, lastMove Move) ([]Move, bool) {
	if !board.InBounds(lastMove.X, lastMove.Y) {
		return nil, false
	}
	if board.At(lastMove.X, lastMove.Y) == CellEmpty {
		return nil, false
	}
	for i := 0; i < 4; i++ {
		line := r.collectLine(board, lastMove, lineDirections[i][0], lineDirections[i][1])
		if len(line) >= r.winLength {
			return line, true
		}
	}
	return nil, false
}

// countDirection counts matching stones beyond start, at most winLength-1.
func (r Rules) countDirection(board Board, start Move, cell Cell, dx, dy int) int {
	x := start.X + dx
	y := start.Y + dy
	count := 0
	for count < r.winLength-1 && board.InBounds(x, y) && board.At(x, y) == cell {
		count++
		x += dx
		y += dy
	}
	return count
}

func (r Rules) collectLine(board Board, start Move, dx, dy int) []Move {
	line := []Move{}
	target := board.At(start.X, start.Y)
	x := start.X
	y := start.Y
	for board.InBounds(x-dx, y-dy) && board.At(x-dx, y-dy) == target {
		x -= dx
		y -= dy
	}
	for board.InBounds(x, y) && board.At(x, y) == target {
		line = append(line, Move{X: x, Y: y})
		x += dx
		y += dy
	}
	return line
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{win=%d}", r.winLength)
}

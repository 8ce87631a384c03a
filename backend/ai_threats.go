package main

// FindBlockingMove returns the first empty cell, in row-major order, where
// opponent would complete a winning run. Only one threat is reported; the
// search ply that follows catches positions with several.
func FindBlockingMove(board *Board, rules Rules, opponent Cell) (Move, bool) {
	size := board.Size()
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if !board.IsValidMove(x, y) {
				continue
			}
			if rules.WinsAt(board, x, y, opponent) {
				return Move{X: x, Y: y}, true
			}
		}
	}
	return Move{X: -1, Y: -1}, false
}

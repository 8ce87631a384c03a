package main

const (
	centerBonusBase = 10
	openSpaceBonus  = 5
	openSpaceRadius = 2
)

// Evaluator scores a board from the empty cells' geometry alone. The score
// does not depend on whose turn it is or on stone colours.
type Evaluator struct {
	cache *EvalCache
}

func NewEvaluator(cache *EvalCache) *Evaluator {
	return &Evaluator{cache: cache}
}

func (e *Evaluator) Evaluate(board Board) int {
	key := board.Serialize()
	hash := board.Hash()
	if e.cache != nil {
		if score, ok := e.cache.Get(hash, key); ok {
			return score
		}
	}
	score := EvaluateBoard(board)
	if e.cache != nil {
		e.cache.Put(hash, key, score)
	}
	return score
}

// EvaluateBoard sums, over every empty cell, a centre-proximity bonus and a
// bonus when the nearest stone is farther than openSpaceRadius.
func EvaluateBoard(board Board) int {
	size := board.Size()
	center := Move{X: size / 2, Y: size / 2}
	stones := board.Stones()
	score := 0
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if board.At(x, y) != CellEmpty {
				continue
			}
			cell := Move{X: x, Y: y}
			score += centerBonusBase - manhattan(cell, center)
			if nearestStoneDistance(cell, stones, size) > openSpaceRadius {
				score += openSpaceBonus
			}
		}
	}
	return score
}

// nearestStoneDistance defaults to the board size when there are no stones.
func nearestStoneDistance(cell Move, stones []Move, size int) int {
	best := size
	for _, stone := range stones {
		if d := manhattan(cell, stone); d < best {
			best = d
			if best <= 1 {
				break
			}
		}
	}
	return best
}

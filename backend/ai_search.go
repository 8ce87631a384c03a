package main

import (
	"errors"
	"math"
	"time"
)

const winScore = 1_000_000

var errSearchBudgetExhausted = errors.New("search budget exhausted")

// searchBudget is a cooperative wall-clock deadline. Checks happen between
// recursive calls, so a move may overrun the limit by one call's worth of work.
type searchBudget struct {
	start time.Time
	limit time.Duration
	now   func() time.Time
}

func newSearchBudget(limit time.Duration) *searchBudget {
	return &searchBudget{start: time.Now(), limit: limit, now: time.Now}
}

func (b *searchBudget) Elapsed() time.Duration {
	return b.now().Sub(b.start)
}

func (b *searchBudget) Exhausted() bool {
	return b.Elapsed() > b.limit
}

type SearchStats struct {
	Nodes      int
	Leaves     int
	Cutoffs    int
	WinsFound  int
	Aborted    bool
	Candidates int
}

type Searcher struct {
	board     *Board
	rules     Rules
	evaluator *Evaluator
	budget    *searchBudget
	stats     *SearchStats
}

func NewSearcher(board *Board, rules Rules, evaluator *Evaluator, budget *searchBudget, stats *SearchStats) *Searcher {
	if stats == nil {
		stats = &SearchStats{}
	}
	return &Searcher{board: board, rules: rules, evaluator: evaluator, budget: budget, stats: stats}
}

// Minimax scores the position for player with alpha-beta pruning. When the
// budget runs out it returns errSearchBudgetExhausted and the score must be
// ignored.
func (s *Searcher) Minimax(depth, alpha, beta int, maximizing bool, player, opponent Cell) (int, error) {
	if s.budget != nil && s.budget.Exhausted() {
		s.stats.Aborted = true
		return 0, errSearchBudgetExhausted
	}
	if depth < 0 {
		return 0, nil
	}
	s.stats.Nodes++

	mover := opponent
	if maximizing {
		mover = player
	}
	size := s.board.Size()
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if !s.board.IsValidMove(x, y) {
				continue
			}
			if s.rules.WinsAt(s.board, x, y, mover) {
				s.stats.WinsFound++
				if maximizing {
					return winScore - depth, nil
				}
				return -winScore + depth, nil
			}
		}
	}

	if depth == 0 {
		s.stats.Leaves++
		return s.evaluator.Evaluate(*s.board), nil
	}

	moves := s.board.EmptyCells()
	if len(moves) == 0 {
		return 0, nil
	}

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	for _, move := range moves {
		s.board.Set(move.X, move.Y, mover)
		score, err := s.Minimax(depth-1, alpha, beta, !maximizing, player, opponent)
		s.board.Remove(move.X, move.Y)
		if err != nil {
			return 0, err
		}
		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}
		if beta <= alpha {
			s.stats.Cutoffs++
			break
		}
	}
	return best, nil
}

package main

import (
	"errors"
	"math"
	"testing"
	"time"
)

// referenceMinimax is the same search without pruning or deadline.
func referenceMinimax(board *Board, rules Rules, depth int, maximizing bool, player, opponent Cell) int {
	if depth < 0 {
		return 0
	}
	mover := opponent
	if maximizing {
		mover = player
	}
	for _, m := range board.EmptyCells() {
		if rules.WinsAt(board, m.X, m.Y, mover) {
			if maximizing {
				return winScore - depth
			}
			return -winScore + depth
		}
	}
	if depth == 0 {
		return EvaluateBoard(*board)
	}
	moves := board.EmptyCells()
	if len(moves) == 0 {
		return 0
	}
	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	for _, m := range moves {
		board.Set(m.X, m.Y, mover)
		score := referenceMinimax(board, rules, depth-1, !maximizing, player, opponent)
		board.Remove(m.X, m.Y)
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

func newTestSearcher(board *Board, winLength int) *Searcher {
	return NewSearcher(board, NewRules(winLength), NewEvaluator(NewEvalCache(1024)), newSearchBudget(time.Minute), nil)
}

func TestMinimaxMatchesReferenceSearch(t *testing.T) {
	setups := []func(*Board){
		func(b *Board) {},
		func(b *Board) {
			b.Set(1, 1, CellBlack)
			b.Set(2, 2, CellWhite)
		},
		func(b *Board) {
			b.Set(0, 0, CellWhite)
			b.Set(0, 1, CellWhite)
			b.Set(3, 3, CellBlack)
		},
	}
	for i, setup := range setups {
		for depth := 0; depth <= 2; depth++ {
			for _, maximizing := range []bool{true, false} {
				board := NewBoard(4)
				setup(&board)
				before := board.Serialize()
				searcher := newTestSearcher(&board, 3)
				got, err := searcher.Minimax(depth, math.MinInt, math.MaxInt, maximizing, CellBlack, CellWhite)
				if err != nil {
					t.Fatalf("setup %d depth %d: unexpected error %v", i, depth, err)
				}
				want := referenceMinimax(&board, NewRules(3), depth, maximizing, CellBlack, CellWhite)
				if got != want {
					t.Fatalf("setup %d depth %d max=%v: alpha-beta %d, reference %d", i, depth, maximizing, got, want)
				}
				if board.Serialize() != before {
					t.Fatalf("setup %d: search left stones on the board", i)
				}
			}
		}
	}
}

func TestMinimaxDetectsImmediateWins(t *testing.T) {
	board := NewBoard(31)
	placeRow(&board, 5, 5, 4, CellBlack)
	searcher := newTestSearcher(&board, 5)

	score, err := searcher.Minimax(0, math.MinInt, math.MaxInt, true, CellBlack, CellWhite)
	if err != nil || score != winScore {
		t.Fatalf("expected maximizing win score %d, got %d err=%v", winScore, score, err)
	}
	score, err = searcher.Minimax(1, math.MinInt, math.MaxInt, false, CellWhite, CellBlack)
	if err != nil || score != -winScore+1 {
		t.Fatalf("expected minimizing win score %d, got %d err=%v", -winScore+1, score, err)
	}
}

func TestMinimaxLeafUsesEvaluation(t *testing.T) {
	board := NewBoard(31)
	board.Set(15, 15, CellBlack)
	searcher := newTestSearcher(&board, 5)
	score, err := searcher.Minimax(0, math.MinInt, math.MaxInt, false, CellBlack, CellWhite)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if want := EvaluateBoard(board); score != want {
		t.Fatalf("expected static evaluation %d, got %d", want, score)
	}
}

func TestMinimaxNegativeDepthIsNeutral(t *testing.T) {
	board := NewBoard(31)
	placeRow(&board, 5, 5, 4, CellBlack)
	searcher := newTestSearcher(&board, 5)
	score, err := searcher.Minimax(-1, math.MinInt, math.MaxInt, true, CellBlack, CellWhite)
	if err != nil || score != 0 {
		t.Fatalf("expected 0 for negative depth, got %d err=%v", score, err)
	}
}

func TestMinimaxFullBoardIsNeutral(t *testing.T) {
	board := NewBoard(31)
	fillWithoutFive(&board)
	searcher := newTestSearcher(&board, 5)
	score, err := searcher.Minimax(1, math.MinInt, math.MaxInt, true, CellBlack, CellWhite)
	if err != nil || score != 0 {
		t.Fatalf("expected 0 on a full board, got %d err=%v", score, err)
	}
}

func TestMinimaxReportsExhaustedBudget(t *testing.T) {
	board := NewBoard(31)
	start := time.Now()
	budget := &searchBudget{start: start, limit: time.Second, now: func() time.Time { return start.Add(2 * time.Second) }}
	stats := &SearchStats{}
	searcher := NewSearcher(&board, NewRules(5), NewEvaluator(nil), budget, stats)

	_, err := searcher.Minimax(1, math.MinInt, math.MaxInt, true, CellBlack, CellWhite)
	if !errors.Is(err, errSearchBudgetExhausted) {
		t.Fatalf("expected budget error, got %v", err)
	}
	if !stats.Aborted {
		t.Fatalf("expected stats to record the abort")
	}
}

package main

import (
	"errors"
	"testing"
	"time"
)

func TestSelectMoveOpeningPlaysCenter(t *testing.T) {
	cfg := testConfig()
	state := NewGameState(cfg)
	selector := NewMoveSelector(cfg)

	move, err := selector.SelectMove(&state, Move{X: -1, Y: -1}, true)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !move.Equals(Move{X: 15, Y: 15}) {
		t.Fatalf("expected (15,15), got (%d,%d)", move.X, move.Y)
	}
}

func TestSelectMoveOpeningFallsBackWhenCenterTaken(t *testing.T) {
	cfg := testConfig()
	state := NewGameState(cfg)
	state.Board.Set(15, 15, CellWhite)
	selector := NewMoveSelector(cfg)

	move, err := selector.SelectMove(&state, Move{X: 15, Y: 15}, true)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !move.Equals(Move{X: 0, Y: 0}) {
		t.Fatalf("expected first empty cell (0,0), got (%d,%d)", move.X, move.Y)
	}
}

func TestSelectMoveBlocksOpenFour(t *testing.T) {
	cfg := testConfig()
	state := NewGameState(cfg)
	placeRow(&state.Board, 10, 10, 4, CellWhite)
	state.Board.Set(15, 15, CellBlack)
	state.Board.Set(20, 3, CellBlack)
	state.Board.Set(25, 25, CellBlack)
	selector := NewMoveSelector(cfg)

	move, err := selector.SelectMove(&state, Move{X: 10, Y: 13}, false)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !move.Equals(Move{X: 10, Y: 9}) && !move.Equals(Move{X: 10, Y: 14}) {
		t.Fatalf("expected a completing cell of the white four, got (%d,%d)", move.X, move.Y)
	}
}

func TestSelectMoveTakesOwnWin(t *testing.T) {
	cfg := testConfig()
	state := NewGameState(cfg)
	placeRow(&state.Board, 5, 5, 4, CellBlack)
	state.Board.Set(6, 6, CellWhite)
	state.Board.Set(7, 7, CellWhite)
	selector := NewMoveSelector(cfg)

	move, err := selector.SelectMove(&state, Move{X: 6, Y: 6}, false)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	state.Board.Set(move.X, move.Y, CellBlack)
	if !NewRules(5).IsWin(state.Board, move.X, move.Y, CellBlack) {
		t.Fatalf("expected winning move, got (%d,%d)", move.X, move.Y)
	}
}

func TestSelectMoveStaysInWindow(t *testing.T) {
	cfg := testConfig()
	state := NewGameState(cfg)
	state.Board.Set(15, 15, CellBlack)
	state.Board.Set(16, 16, CellWhite)
	before := state.Board.Serialize()
	selector := NewMoveSelector(cfg)

	move, err := selector.SelectMove(&state, Move{X: 16, Y: 16}, false)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if absInt(move.X-16) > 4 || absInt(move.Y-16) > 4 {
		t.Fatalf("expected a move within the window, got (%d,%d)", move.X, move.Y)
	}
	if !state.Board.IsValidMove(move.X, move.Y) {
		t.Fatalf("selected move must be empty")
	}
	if state.Board.Serialize() != before {
		t.Fatalf("selection must not leave stones behind")
	}
}

func TestSelectMoveEmptyWindowSearchesWholeBoard(t *testing.T) {
	cfg := testConfig()
	cfg.BoardSize = 9
	cfg.SearchRange = 1
	state := NewGameState(cfg)
	for x := 0; x <= 2; x++ {
		for y := 0; y <= 2; y++ {
			state.Board.Set(x, y, Cell(1+(x+y)%2))
		}
	}
	selector := NewMoveSelector(cfg)
	candidates := selector.candidates(state.Board, Move{X: 0, Y: 0})
	if len(candidates) != state.Board.CountEmpty() {
		t.Fatalf("expected every empty cell as candidate, got %d", len(candidates))
	}
	move, err := selector.SelectMove(&state, Move{X: 0, Y: 0}, false)
	if err != nil || !state.Board.IsValidMove(move.X, move.Y) {
		t.Fatalf("expected a valid move, got (%d,%d) err=%v", move.X, move.Y, err)
	}
}

func TestSelectMoveFullBoardReportsNoMove(t *testing.T) {
	cfg := testConfig()
	state := NewGameState(cfg)
	fillWithoutFive(&state.Board)
	selector := NewMoveSelector(cfg)

	move, err := selector.SelectMove(&state, Move{X: 15, Y: 15}, false)
	if !errors.Is(err, ErrNoMoveAvailable) {
		t.Fatalf("expected ErrNoMoveAvailable, got move (%d,%d) err=%v", move.X, move.Y, err)
	}
	if move.IsValid(cfg.BoardSize) {
		t.Fatalf("expected an out-of-board sentinel move, got (%d,%d)", move.X, move.Y)
	}
}

func TestSelectMoveExhaustedBudgetStaysInWindow(t *testing.T) {
	cfg := testConfig()
	state := NewGameState(cfg)
	state.Board.Set(15, 15, CellWhite)
	selector := NewMoveSelector(cfg)
	start := time.Now()
	calls := 0
	selector.now = func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return start.Add(time.Hour)
	}

	move, err := selector.SelectMove(&state, Move{X: 15, Y: 15}, false)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !move.Equals(Move{X: 11, Y: 11}) {
		t.Fatalf("expected the first window candidate (11,11), got (%d,%d)", move.X, move.Y)
	}
}

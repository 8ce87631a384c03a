package main

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// MoveSelector picks the engine's reply for one GameState.
type MoveSelector struct {
	config Config
	rules  Rules
	// now is swapped in tests to drive the deadline.
	now func() time.Time
}

func NewMoveSelector(config Config) MoveSelector {
	return MoveSelector{config: config, rules: NewRules(config.WinLength), now: time.Now}
}

// SelectMove chooses a cell for the engine's colour after the opponent
// played opponentMove. It never mutates the board on return.
func (m MoveSelector) SelectMove(state *GameState, opponentMove Move, isFirstMove bool) (Move, error) {
	budget := &searchBudget{start: m.now(), limit: m.config.MoveTimeout(), now: m.now}
	stats := &SearchStats{}
	board := &state.Board
	player := state.EngineCell()
	opponent := player.Opponent()

	move, reason, err := m.selectMove(board, state.Evaluator(), budget, stats, player, opponent, opponentMove, isFirstMove)
	if err != nil {
		log.Warn().Err(err).Str("game", state.GameID).Msg("no-move-available")
		return move, err
	}
	event := log.Info()
	if m.config.LogSearch {
		event = event.Int("nodes", stats.Nodes).
			Int("leaves", stats.Leaves).
			Int("cutoffs", stats.Cutoffs).
			Int("candidates", stats.Candidates)
	}
	event.Str("game", state.GameID).
		Str("reason", reason).
		Int("x", move.X).
		Int("y", move.Y).
		Bool("aborted", stats.Aborted).
		Dur("elapsed", budget.Elapsed()).
		Msg("move-selected")
	return move, nil
}

func (m MoveSelector) selectMove(board *Board, evaluator *Evaluator, budget *searchBudget, stats *SearchStats, player, opponent Cell, opponentMove Move, isFirstMove bool) (Move, string, error) {
	if isFirstMove && player == CellBlack {
		center := m.config.Center()
		if board.IsValidMove(center.X, center.Y) {
			return center, "opening", nil
		}
		if move, ok := board.FirstEmpty(); ok {
			return move, "opening", nil
		}
	}

	if block, ok := FindBlockingMove(board, m.rules, opponent); ok && board.IsValidMove(block.X, block.Y) {
		return block, "block", nil
	}

	candidates := m.candidates(*board, opponentMove)
	stats.Candidates = len(candidates)
	searcher := NewSearcher(board, m.rules, evaluator, budget, stats)

	best := Move{X: -1, Y: -1}
	bestScore := math.MinInt
	for _, move := range candidates {
		if m.rules.WinsAt(board, move.X, move.Y, player) {
			return move, "win", nil
		}
		board.Set(move.X, move.Y, player)
		score, err := searcher.Minimax(m.config.MaxDepth-1, math.MinInt, math.MaxInt, false, player, opponent)
		board.Remove(move.X, move.Y)
		if errors.Is(err, errSearchBudgetExhausted) {
			break
		}
		if score > bestScore {
			bestScore = score
			best = move
		}
		if budget.Exhausted() {
			stats.Aborted = true
			break
		}
	}
	if best.IsValid(board.Size()) && board.IsValidMove(best.X, best.Y) {
		return best, "search", nil
	}
	// Out of time before any candidate was scored: stay near the action.
	if len(candidates) > 0 {
		return candidates[0], "timeout", nil
	}

	if move, ok := board.FirstEmpty(); ok {
		return move, "fallback", nil
	}
	return Move{X: -1, Y: -1}, "", ErrNoMoveAvailable
}

// candidates lists empty cells in the square window around the opponent's
// last move, or every empty cell when the window has none.
func (m MoveSelector) candidates(board Board, around Move) []Move {
	r := m.config.SearchRange
	size := board.Size()
	startX := max(0, around.X-r)
	endX := min(size-1, around.X+r)
	startY := max(0, around.Y-r)
	endY := min(size-1, around.Y+r)

	moves := []Move{}
	for x := startX; x <= endX; x++ {
		for y := startY; y <= endY; y++ {
			if board.IsValidMove(x, y) {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	if len(moves) == 0 {
		moves = board.EmptyCells()
	}
	return moves
}

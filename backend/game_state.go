package main

import "github.com/google/uuid"

type GameStatus int

const (
	StatusRunning GameStatus = iota
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

type GameState struct {
	Board       Board
	EngineBlack bool
	Cache       *EvalCache
	GameID      string
	Status      GameStatus
	HasLastMove bool
	LastMove    Move
	MoveCount   int
	WinningLine []Move

	evaluator *Evaluator
}

// NewGameState builds the state of a fresh session; the engine plays Black.
func NewGameState(config Config) GameState {
	state := GameState{
		Board:       NewBoard(config.BoardSize),
		EngineBlack: true,
		Cache:       NewEvalCache(config.EvalCacheSize),
	}
	state.clear()
	return state
}

// Reset empties the board and cache and swaps the engine's colour.
func (s *GameState) Reset(config Config) {
	s.Board.Reset(config.BoardSize)
	if s.Cache == nil || s.Cache.Stats().Capacity != config.EvalCacheSize {
		s.Cache = NewEvalCache(config.EvalCacheSize)
	} else {
		s.Cache.Clear()
	}
	s.EngineBlack = !s.EngineBlack
	s.clear()
}

func (s *GameState) clear() {
	s.GameID = uuid.New().String()
	s.Status = StatusRunning
	s.HasLastMove = false
	s.LastMove = Move{X: -1, Y: -1}
	s.MoveCount = 0
	s.WinningLine = nil
	s.evaluator = NewEvaluator(s.Cache)
}

func (s *GameState) Evaluator() *Evaluator {
	if s.evaluator == nil {
		s.evaluator = NewEvaluator(s.Cache)
	}
	return s.evaluator
}

func (s GameState) EngineCell() Cell {
	if s.EngineBlack {
		return CellBlack
	}
	return CellWhite
}

func (s GameState) OpponentCell() Cell {
	return s.EngineCell().Opponent()
}

// Commit places a stone for real and updates status from the new position.
func (s *GameState) Commit(move Move, cell Cell, rules Rules) {
	s.Board.Set(move.X, move.Y, cell)
	s.LastMove = move
	s.HasLastMove = true
	s.MoveCount++
	if s.Status != StatusRunning {
		return
	}
	if line, ok := rules.FindAlignmentLine(s.Board, move); ok {
		s.WinningLine = line
		if cell == CellBlack {
			s.Status = StatusBlackWon
		} else {
			s.Status = StatusWhiteWon
		}
		return
	}
	if rules.IsDraw(s.Board) {
		s.Status = StatusDraw
	}
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.WinningLine = append([]Move(nil), s.WinningLine...)
	return clone
}

func statusToString(status GameStatus) string {
	switch status {
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

func colorName(cell Cell) string {
	switch cell {
	case CellBlack:
		return "black"
	case CellWhite:
		return "white"
	default:
		return ""
	}
}

package main

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// GameController owns one session's game and serializes access to it.
type GameController struct {
	mu        sync.Mutex
	session   string
	config    Config
	rules     Rules
	selector  MoveSelector
	state     GameState
	history   MoveHistory
	journal   Journal
	publisher func(feedEvent)
	turnStart time.Time
}

func NewGameController(session string, config Config, journal Journal, publisher func(feedEvent)) *GameController {
	if journal == nil {
		journal = nopJournal{}
	}
	gc := &GameController{
		session:   session,
		config:    config,
		rules:     NewRules(config.WinLength),
		selector:  NewMoveSelector(config),
		state:     NewGameState(config),
		journal:   journal,
		publisher: publisher,
		turnStart: time.Now(),
	}
	gc.recordGame()
	return gc
}

// Start plays the opening stone at the centre. Only valid while the engine
// holds Black.
func (gc *GameController) Start() (Move, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.state.EngineBlack {
		return Move{}, newRequestError(ErrInvalidMove, "White cannot make first move")
	}
	center := gc.config.Center()
	if !gc.state.Board.IsValidMove(center.X, center.Y) {
		return Move{}, newRequestError(ErrInvalidMove, "Center is occupied")
	}
	gc.commit(center, CellBlack, true, 0)
	return center, nil
}

// ApplyOpponentMove records the opponent's stone, then picks and commits
// the engine's reply.
func (gc *GameController) ApplyOpponentMove(x, y int) (Move, error) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if x < 0 || y < 0 || !gc.state.Board.IsValidMove(x, y) {
		return Move{}, newRequestError(ErrInvalidMove, "Invalid opponent move")
	}
	opponentMove := Move{X: x, Y: y}
	gc.commit(opponentMove, gc.state.OpponentCell(), false, float64(time.Since(gc.turnStart).Milliseconds()))

	started := time.Now()
	move, err := gc.selector.SelectMove(&gc.state, opponentMove, false)
	if err != nil || !gc.state.Board.IsValidMove(move.X, move.Y) {
		fallback, ok := gc.state.Board.FirstEmpty()
		if !ok {
			return Move{}, newRequestError(ErrNoMoveAvailable, "No valid move available")
		}
		move = fallback
	}
	gc.commit(move, gc.state.EngineCell(), true, float64(time.Since(started).Milliseconds()))
	return move, nil
}

// Reset starts a new game with config and swaps the engine's colour.
func (gc *GameController) Reset(config Config) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.config = config
	gc.rules = NewRules(config.WinLength)
	gc.selector = NewMoveSelector(config)
	gc.state.Reset(config)
	gc.history.Clear()
	gc.turnStart = time.Now()
	gc.recordGame()
	log.Info().
		Str("session", gc.session).
		Str("game", gc.state.GameID).
		Str("engine", colorName(gc.state.EngineCell())).
		Msg("game-reset")
	gc.publish(feedEvent{
		Type:    "reset",
		Session: gc.session,
		GameID:  gc.state.GameID,
		Engine:  colorName(gc.state.EngineCell()),
		Status:  statusToString(gc.state.Status),
	})
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.state.Clone()
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return MoveHistory{entries: gc.history.All()}
}

func (gc *GameController) FlushCache() {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.state.Cache.Clear()
}

func (gc *GameController) Session() string {
	return gc.session
}

func (gc *GameController) commit(move Move, cell Cell, isEngine bool, elapsedMs float64) {
	wasRunning := gc.state.Status == StatusRunning
	gc.state.Commit(move, cell, gc.rules)
	// A decided game gets no further use from its cached evaluations.
	if gc.state.Status != StatusRunning {
		gc.state.Cache.Clear()
	}
	entry := HistoryEntry{Move: move, Player: cell, ElapsedMs: elapsedMs, IsEngine: isEngine}
	gc.history.Push(entry)
	gc.turnStart = time.Now()

	if err := gc.journal.RecordMove(context.Background(), MoveRecord{
		GameID:    gc.state.GameID,
		Seq:       gc.state.MoveCount,
		X:         move.X,
		Y:         move.Y,
		Color:     colorName(cell),
		IsEngine:  isEngine,
		ElapsedMs: elapsedMs,
	}); err != nil {
		log.Error().Err(err).Str("game", gc.state.GameID).Msg("journal-move-failed")
	}
	if wasRunning && gc.state.Status != StatusRunning {
		log.Info().
			Str("session", gc.session).
			Str("game", gc.state.GameID).
			Str("status", statusToString(gc.state.Status)).
			Int("moves", gc.state.MoveCount).
			Msg("game-finished")
	}
	gc.publish(feedEvent{
		Type:     "move",
		Session:  gc.session,
		GameID:   gc.state.GameID,
		Move:     &move,
		Player:   colorName(cell),
		IsEngine: isEngine,
		Status:   statusToString(gc.state.Status),
	})
}

func (gc *GameController) recordGame() {
	err := gc.journal.RecordGame(context.Background(), GameRecord{
		ID:          gc.state.GameID,
		Session:     gc.session,
		EngineColor: colorName(gc.state.EngineCell()),
		BoardSize:   gc.config.BoardSize,
		StartedAt:   time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("game", gc.state.GameID).Msg("journal-game-failed")
	}
}

func (gc *GameController) publish(event feedEvent) {
	if gc.publisher != nil {
		gc.publisher(event)
	}
}

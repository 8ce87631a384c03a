package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Journal archives games and moves. It is write-only from the bot's side:
// nothing is read back on startup.
type Journal interface {
	RecordGame(ctx context.Context, game GameRecord) error
	RecordMove(ctx context.Context, move MoveRecord) error
	Close() error
}

type GameRecord struct {
	ID          string
	Session     string
	EngineColor string
	BoardSize   int
	StartedAt   time.Time
}

type MoveRecord struct {
	GameID    string
	Seq       int
	X         int
	Y         int
	Color     string
	IsEngine  bool
	ElapsedMs float64
}

type nopJournal struct{}

func (nopJournal) RecordGame(context.Context, GameRecord) error { return nil }
func (nopJournal) RecordMove(context.Context, MoveRecord) error { return nil }
func (nopJournal) Close() error                                  { return nil }

type sqliteJournal struct {
	db *sql.DB
}

const journalSchema = `
CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	session TEXT,
	engine_color TEXT,
	board_size INTEGER,
	started_at DATETIME
);
CREATE TABLE IF NOT EXISTS moves (
	game_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	x INTEGER NOT NULL,
	y INTEGER NOT NULL,
	color TEXT NOT NULL,
	is_engine INTEGER NOT NULL,
	elapsed_ms REAL,
	created_at DATETIME,
	PRIMARY KEY (game_id, seq)
);
`

// OpenJournal returns a no-op journal for an empty path, otherwise a
// SQLite journal at path.
func OpenJournal(path string) (Journal, error) {
	if path == "" {
		return nopJournal{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal tables: %w", err)
	}
	log.Info().Str("path", path).Msg("journal-opened")
	return &sqliteJournal{db: db}, nil
}

func (j *sqliteJournal) RecordGame(ctx context.Context, game GameRecord) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO games (id, session, engine_color, board_size, started_at) VALUES (?, ?, ?, ?, ?)`,
		game.ID, game.Session, game.EngineColor, game.BoardSize, game.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", game.ID, err)
	}
	return nil
}

func (j *sqliteJournal) RecordMove(ctx context.Context, move MoveRecord) error {
	isEngine := 0
	if move.IsEngine {
		isEngine = 1
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO moves (game_id, seq, x, y, color, is_engine, elapsed_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		move.GameID, move.Seq, move.X, move.Y, move.Color, isEngine, move.ElapsedMs, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert move %s/%d: %w", move.GameID, move.Seq, err)
	}
	return nil
}

func (j *sqliteJournal) Close() error {
	return j.db.Close()
}

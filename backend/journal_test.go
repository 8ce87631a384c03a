package main

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestOpenJournalEmptyPathIsNop(t *testing.T) {
	journal, err := OpenJournal("")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, ok := journal.(nopJournal); !ok {
		t.Fatalf("expected nop journal, got %T", journal)
	}
}

func TestSQLiteJournalRecordsGamesAndMoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games", "journal.db")
	journal, err := OpenJournal(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}

	gc := NewGameController("sparring", testConfig(), journal, nil)
	if _, err := gc.Start(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := gc.ApplyOpponentMove(14, 14); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	gc.Reset(testConfig())
	if err := journal.Close(); err != nil {
		t.Fatalf("close journal: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var games, moves, engineMoves int
	if err := db.QueryRow(`SELECT COUNT(*) FROM games WHERE session = ?`, "sparring").Scan(&games); err != nil {
		t.Fatalf("count games: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM moves`).Scan(&moves); err != nil {
		t.Fatalf("count moves: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM moves WHERE is_engine = 1`).Scan(&engineMoves); err != nil {
		t.Fatalf("count engine moves: %v", err)
	}
	if games != 2 || moves != 3 || engineMoves != 2 {
		t.Fatalf("expected 2 games, 3 moves, 2 engine moves; got %d, %d, %d", games, moves, engineMoves)
	}
}

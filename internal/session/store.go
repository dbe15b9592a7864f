// Package session persists run history to SQLite so finished games can
// be replayed from their seed and inspected turn by turn.
package session

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store records runs and their per-turn snapshots.
type Store struct {
	db *sql.DB
}

// Run is one recorded game from launch to defeat or quit.
type Run struct {
	ID        string     `json:"id"`
	Seed      int64      `json:"seed"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Floor     int        `json:"floor"`
	Turns     int        `json:"turns"`
	Defeated  bool       `json:"defeated"`
}

// Turn is one completed game turn within a run.
type Turn struct {
	RunID   string `json:"run_id"`
	Turn    int    `json:"turn"`
	Floor   int    `json:"floor"`
	PlayerX int    `json:"player_x"`
	PlayerY int    `json:"player_y"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"max_hp"`
	Level   int    `json:"level"`
	Enemies int    `json:"enemies"`
}

// Open opens the store at the given path, creating the schema on first
// use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		floor INTEGER NOT NULL DEFAULT 1,
		turns INTEGER NOT NULL DEFAULT 0,
		defeated INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS turns (
		run_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		floor INTEGER NOT NULL,
		player_x INTEGER NOT NULL,
		player_y INTEGER NOT NULL,
		hp INTEGER NOT NULL,
		max_hp INTEGER NOT NULL,
		level INTEGER NOT NULL,
		enemies INTEGER NOT NULL,
		PRIMARY KEY (run_id, turn),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_turns_run ON turns(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StartRun registers a new run under the given id and seed.
func (s *Store) StartRun(id string, seed int64) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, seed, started_at) VALUES (?, ?, ?)`,
		id, seed, time.Now().UTC(),
	)
	return err
}

// RecordTurn appends one completed turn to the run.
func (s *Store) RecordTurn(t *Turn) error {
	_, err := s.db.Exec(
		`INSERT INTO turns (run_id, turn, floor, player_x, player_y, hp, max_hp, level, enemies)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.Turn, t.Floor, t.PlayerX, t.PlayerY, t.HP, t.MaxHP, t.Level, t.Enemies,
	)
	return err
}

// EndRun closes out a run with its final standing.
func (s *Store) EndRun(id string, floor, turns int, defeated bool) error {
	_, err := s.db.Exec(
		`UPDATE runs SET ended_at = ?, floor = ?, turns = ?, defeated = ? WHERE id = ?`,
		time.Now().UTC(), floor, turns, defeated, id,
	)
	return err
}

// GetRun retrieves a run by id.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, seed, started_at, ended_at, floor, turns, defeated FROM runs WHERE id = ?`, id,
	)
	var r Run
	var endedAt sql.NullTime
	if err := row.Scan(&r.ID, &r.Seed, &r.StartedAt, &endedAt, &r.Floor, &r.Turns, &r.Defeated); err != nil {
		return nil, err
	}
	if endedAt.Valid {
		r.EndedAt = &endedAt.Time
	}
	return &r, nil
}

// Turns retrieves every recorded turn of a run in order.
func (s *Store) Turns(runID string) ([]*Turn, error) {
	rows, err := s.db.Query(
		`SELECT run_id, turn, floor, player_x, player_y, hp, max_hp, level, enemies
		 FROM turns WHERE run_id = ? ORDER BY turn`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []*Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.RunID, &t.Turn, &t.Floor, &t.PlayerX, &t.PlayerY,
			&t.HP, &t.MaxHP, &t.Level, &t.Enemies); err != nil {
			return nil, err
		}
		turns = append(turns, &t)
	}
	return turns, rows.Err()
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]*Run, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, started_at, ended_at, floor, turns, defeated
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		var endedAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.Seed, &r.StartedAt, &endedAt, &r.Floor, &r.Turns, &r.Defeated); err != nil {
			return nil, err
		}
		if endedAt.Valid {
			r.EndedAt = &endedAt.Time
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

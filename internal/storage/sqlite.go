// Package storage provides SQLite-based persistence for finished pinball runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where scores live unless overridden.
const DefaultPath = "~/.pinball/scores.db"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Run records one finished game on a table.
type Run struct {
	ID        int64
	RunID     string // UUID, generated on save when empty
	GameID    string
	Player    string // SSH user or empty for local play
	Score     int
	Frames    uint64 // physics frames simulated
	Timestep  string // "fixed" or "measured"
	Duration  int    // Duration in seconds
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime accepts both driver-decoded times and SQLite's text format.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ClearRuns deletes every run recorded on a table.
// Returns the number of runs removed.
func (s *Store) ClearRuns(gameID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

// SaveRun records a finished game. A missing RunID is filled in and the
// stored run, with its row ID, is returned.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.Timestep == "" {
		run.Timestep = "fixed"
	}

	res, err := s.db.Exec(
		`INSERT INTO runs (run_id, game_id, player, score, frames, timestep, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.GameID, run.Player, run.Score, int64(run.Frames), run.Timestep, run.Duration, //#nosec G115 -- frame counts fit in int64
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}
	if run.ID, err = res.LastInsertId(); err != nil {
		return run, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return run, nil
}

// BestScore returns the highest score on a table, or 0 without runs.
func (s *Store) BestScore(gameID string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs WHERE game_id = ?", gameID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return int(best.Int64), nil
}

const runColumns = `id, run_id, game_id, player, score, frames, timestep, duration_secs, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var frames int64
	var createdAt any
	err := row.Scan(&r.ID, &r.RunID, &r.GameID, &r.Player, &r.Score, &frames, &r.Timestep, &r.Duration, &createdAt)
	if err != nil {
		return r, err
	}
	r.Frames = uint64(frames) //#nosec G115 -- stored from a uint64
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RunByID retrieves a run by its UUID. Returns nil when there is none.
func (s *Store) RunByID(runID string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the latest runs on a table, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		"SELECT "+runColumns+" FROM runs WHERE game_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		gameID, limit,
	)
}

// TopRuns retrieves the best runs on a table, highest score first.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		"SELECT "+runColumns+" FROM runs WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?",
		gameID, limit,
	)
}

// PlayerRuns retrieves one player's run history on a table, newest first.
func (s *Store) PlayerRuns(gameID, player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		"SELECT "+runColumns+" FROM runs WHERE game_id = ? AND player = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		gameID, player, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// TableStats summarises the runs recorded on one table.
type TableStats struct {
	GameID      string
	Runs        int
	BestScore   int
	AvgScore    float64
	TotalFrames int64
	LastPlayed  time.Time
}

// Stats aggregates the runs on a table. A table without runs yields
// zero values.
func (s *Store) Stats(gameID string) (TableStats, error) {
	stats := TableStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(frames), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore, &stats.TotalFrames, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get table stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/polarity/internal/progress"
)

// Store keeps the profile in a local SQLite file.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
type Store struct {
	db *sql.DB
}

var _ StatsStore = (*Store)(nil)

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

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS player_stats (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			levels_completed INTEGER NOT NULL DEFAULT 0,
			total_stars INTEGER NOT NULL DEFAULT 0,
			total_coins INTEGER NOT NULL DEFAULT 0,
			poles_placed INTEGER NOT NULL DEFAULT 0,
			total_play_time REAL NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			hints_used INTEGER NOT NULL DEFAULT 0,
			par_time_beats INTEGER NOT NULL DEFAULT 0,
			perfect_runs INTEGER NOT NULL DEFAULT 0,
			negative_only_wins INTEGER NOT NULL DEFAULT 0,
			minimal_wins INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS fastest_times (
			level_id INTEGER PRIMARY KEY,
			seconds REAL NOT NULL
		);

		CREATE TABLE IF NOT EXISTS level_stars (
			level_id INTEGER PRIMARY KEY,
			stars INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			level_id INTEGER NOT NULL,
			stars INTEGER NOT NULL,
			elapsed REAL NOT NULL,
			stars_collected INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			poles_used INTEGER NOT NULL DEFAULT 0,
			hints_used INTEGER NOT NULL DEFAULT 0,
			attempts INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadStats reads the profile along with its per-level tables.
func (s *Store) LoadStats(ctx context.Context) (*progress.Stats, error) {
	st := progress.New(0)
	err := s.db.QueryRowContext(ctx,
		`SELECT levels_completed, total_stars, total_coins, poles_placed, total_play_time,
		        wins, hints_used, par_time_beats, perfect_runs, negative_only_wins, minimal_wins
		 FROM player_stats WHERE id = 1`,
	).Scan(
		&st.LevelsCompleted,
		&st.TotalStars,
		&st.TotalCoins,
		&st.PolesPlaced,
		&st.TotalPlayTime,
		&st.Wins,
		&st.HintsUsed,
		&st.ParTimeBeats,
		&st.PerfectRuns,
		&st.NegativeOnlyWins,
		&st.MinimalWins,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoStats
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT level_id, seconds FROM fastest_times")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query fastest times: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var secs float64
		if err := rows.Scan(&id, &secs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.FastestTimes[id] = secs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	starRows, err := s.db.QueryContext(ctx, "SELECT level_id, stars FROM level_stars")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level stars: %w", err)
	}
	defer starRows.Close()
	for starRows.Next() {
		var id, stars int
		if err := starRows.Scan(&id, &stars); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.LevelStars[id] = stars
	}
	if err := starRows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return st, nil
}

// SaveStats replaces the stored profile in a single transaction.
func (s *Store) SaveStats(ctx context.Context, st *progress.Stats) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO player_stats
		 (id, levels_completed, total_stars, total_coins, poles_placed, total_play_time,
		  wins, hints_used, par_time_beats, perfect_runs, negative_only_wins, minimal_wins, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		  levels_completed = excluded.levels_completed,
		  total_stars = excluded.total_stars,
		  total_coins = excluded.total_coins,
		  poles_placed = excluded.poles_placed,
		  total_play_time = excluded.total_play_time,
		  wins = excluded.wins,
		  hints_used = excluded.hints_used,
		  par_time_beats = excluded.par_time_beats,
		  perfect_runs = excluded.perfect_runs,
		  negative_only_wins = excluded.negative_only_wins,
		  minimal_wins = excluded.minimal_wins,
		  updated_at = CURRENT_TIMESTAMP`,
		st.LevelsCompleted,
		st.TotalStars,
		st.TotalCoins,
		st.PolesPlaced,
		st.TotalPlayTime,
		st.Wins,
		st.HintsUsed,
		st.ParTimeBeats,
		st.PerfectRuns,
		st.NegativeOnlyWins,
		st.MinimalWins,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM fastest_times"); err != nil {
		return fmt.Errorf("storage: cannot clear fastest times: %w", err)
	}
	for id, secs := range st.FastestTimes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO fastest_times (level_id, seconds) VALUES (?, ?)", id, secs,
		); err != nil {
			return fmt.Errorf("storage: cannot save fastest time: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM level_stars"); err != nil {
		return fmt.Errorf("storage: cannot clear level stars: %w", err)
	}
	for id, stars := range st.LevelStars {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO level_stars (level_id, stars) VALUES (?, ?)", id, stars,
		); err != nil {
			return fmt.Errorf("storage: cannot save level stars: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit stats: %w", err)
	}
	return nil
}

// SaveRun records a won run.
func (s *Store) SaveRun(ctx context.Context, rec RunRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs
		 (run_id, level_id, stars, elapsed, stars_collected, coins, poles_used, hints_used, attempts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.LevelID,
		rec.Stars,
		rec.Elapsed,
		rec.StarsCollected,
		rec.Coins,
		rec.PolesUsed,
		rec.HintsUsed,
		rec.Attempts,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs first.
func (s *Store) RecentRuns(ctx context.Context, levelID, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, level_id, stars, elapsed, stars_collected, coins,
		        poles_used, hints_used, attempts, created_at
		 FROM runs
		 WHERE ? = 0 OR level_id = ?
		 ORDER BY seq DESC
		 LIMIT ?`,
		levelID, levelID, runLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdAt any
		if err := rows.Scan(
			&rec.ID,
			&rec.LevelID,
			&rec.Stars,
			&rec.Elapsed,
			&rec.StarsCollected,
			&rec.Coins,
			&rec.PolesUsed,
			&rec.HintsUsed,
			&rec.Attempts,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTimestamp handles both time.Time and the SQLite text form.
func parseTimestamp(v any) time.Time {
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

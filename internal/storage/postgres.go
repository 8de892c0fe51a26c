package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vovakirdan/polarity/internal/progress"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS player_stats (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    levels_completed INTEGER NOT NULL DEFAULT 0,
    total_stars INTEGER NOT NULL DEFAULT 0,
    total_coins INTEGER NOT NULL DEFAULT 0,
    poles_placed INTEGER NOT NULL DEFAULT 0,
    total_play_time DOUBLE PRECISION NOT NULL DEFAULT 0,
    wins INTEGER NOT NULL DEFAULT 0,
    hints_used INTEGER NOT NULL DEFAULT 0,
    par_time_beats INTEGER NOT NULL DEFAULT 0,
    perfect_runs INTEGER NOT NULL DEFAULT 0,
    negative_only_wins INTEGER NOT NULL DEFAULT 0,
    minimal_wins INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS fastest_times (
    level_id INTEGER PRIMARY KEY,
    seconds DOUBLE PRECISION NOT NULL
);
CREATE TABLE IF NOT EXISTS level_stars (
    level_id INTEGER PRIMARY KEY,
    stars INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS runs (
    seq BIGSERIAL PRIMARY KEY,
    run_id TEXT NOT NULL UNIQUE,
    level_id INTEGER NOT NULL,
    stars INTEGER NOT NULL,
    elapsed DOUBLE PRECISION NOT NULL,
    stars_collected INTEGER NOT NULL DEFAULT 0,
    coins INTEGER NOT NULL DEFAULT 0,
    poles_used INTEGER NOT NULL DEFAULT 0,
    hints_used INTEGER NOT NULL DEFAULT 0,
    attempts INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
`

// PostgresStore implements StatsStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ StatsStore = (*PostgresStore)(nil)

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// LoadStats reads the profile along with its per-level tables.
func (s *PostgresStore) LoadStats(ctx context.Context) (*progress.Stats, error) {
	st := progress.New(0)
	err := s.pool.QueryRow(ctx,
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
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoStats
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	rows, err := s.pool.Query(ctx, "SELECT level_id, seconds FROM fastest_times")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query fastest times: %w", err)
	}
	for rows.Next() {
		var id int
		var secs float64
		if err := rows.Scan(&id, &secs); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.FastestTimes[id] = secs
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	rows, err = s.pool.Query(ctx, "SELECT level_id, stars FROM level_stars")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level stars: %w", err)
	}
	for rows.Next() {
		var id, stars int
		if err := rows.Scan(&id, &stars); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.LevelStars[id] = stars
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return st, nil
}

// SaveStats replaces the stored profile in a single transaction.
func (s *PostgresStore) SaveStats(ctx context.Context, st *progress.Stats) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO player_stats
		 (id, levels_completed, total_stars, total_coins, poles_placed, total_play_time,
		  wins, hints_used, par_time_beats, perfect_runs, negative_only_wins, minimal_wins, updated_at)
		 VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		 ON CONFLICT (id) DO UPDATE SET
		  levels_completed = EXCLUDED.levels_completed,
		  total_stars = EXCLUDED.total_stars,
		  total_coins = EXCLUDED.total_coins,
		  poles_placed = EXCLUDED.poles_placed,
		  total_play_time = EXCLUDED.total_play_time,
		  wins = EXCLUDED.wins,
		  hints_used = EXCLUDED.hints_used,
		  par_time_beats = EXCLUDED.par_time_beats,
		  perfect_runs = EXCLUDED.perfect_runs,
		  negative_only_wins = EXCLUDED.negative_only_wins,
		  minimal_wins = EXCLUDED.minimal_wins,
		  updated_at = NOW()`,
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

	batch := &pgx.Batch{}
	batch.Queue("DELETE FROM fastest_times")
	for id, secs := range st.FastestTimes {
		batch.Queue("INSERT INTO fastest_times (level_id, seconds) VALUES ($1, $2)", id, secs)
	}
	batch.Queue("DELETE FROM level_stars")
	for id, stars := range st.LevelStars {
		batch.Queue("INSERT INTO level_stars (level_id, stars) VALUES ($1, $2)", id, stars)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("storage: cannot save level tables: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("storage: cannot commit stats: %w", err)
	}
	return nil
}

// SaveRun records a won run.
func (s *PostgresStore) SaveRun(ctx context.Context, rec RunRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs
		 (run_id, level_id, stars, elapsed, stars_collected, coins, poles_used, hints_used, attempts)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.LevelID, rec.Stars, rec.Elapsed, rec.StarsCollected,
		rec.Coins, rec.PolesUsed, rec.HintsUsed, rec.Attempts)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs first.
func (s *PostgresStore) RecentRuns(ctx context.Context, levelID, limit int) ([]RunRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT run_id, level_id, stars, elapsed, stars_collected, coins,
		        poles_used, hints_used, attempts, created_at
		 FROM runs
		 WHERE $1 = 0 OR level_id = $1
		 ORDER BY seq DESC
		 LIMIT $2`,
		levelID, runLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}

	runs, err := pgx.CollectRows(rows, scanRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	return runs, nil
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanRun(row pgx.CollectableRow) (RunRecord, error) {
	var rec RunRecord
	err := row.Scan(&rec.ID, &rec.LevelID, &rec.Stars, &rec.Elapsed, &rec.StarsCollected,
		&rec.Coins, &rec.PolesUsed, &rec.HintsUsed, &rec.Attempts, &rec.CreatedAt)
	return rec, err
}

// Package store handles SQLite persistence of play attempts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/gardengate/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for attempt data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			growth_policy TEXT NOT NULL,
			seed INTEGER NOT NULL,
			solved INTEGER NOT NULL,
			harvested INTEGER NOT NULL,
			target INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			waterings INTEGER NOT NULL DEFAULT 0,
			poisoned_waterings INTEGER NOT NULL DEFAULT 0,
			infested_waterings INTEGER NOT NULL DEFAULT 0,
			harvests INTEGER NOT NULL DEFAULT 0,
			destroyed INTEGER NOT NULL DEFAULT 0,
			debugs INTEGER NOT NULL DEFAULT 0,
			decays INTEGER NOT NULL DEFAULT 0,
			bug_bites INTEGER NOT NULL DEFAULT 0,
			poisons INTEGER NOT NULL DEFAULT 0,
			infestations INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_ended_at ON attempts(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_difficulty ON attempts(difficulty);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt stores a finished attempt and returns its id. An empty
// ID is replaced with a fresh UUID.
func (s *Store) InsertAttempt(ctx context.Context, a model.Attempt) (string, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, started_at, ended_at, difficulty, growth_policy, seed, solved, harvested, target, duration_ms,
			waterings, poisoned_waterings, infested_waterings, harvests, destroyed, debugs, decays, bug_bites, poisons, infestations)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.StartedAt.UTC().Format(time.RFC3339Nano),
		a.EndedAt.UTC().Format(time.RFC3339Nano),
		a.Difficulty,
		a.GrowthPolicy,
		a.Seed,
		a.Solved,
		a.Harvested,
		a.Target,
		a.DurationMs,
		a.Waterings,
		a.PoisonedWaterings,
		a.InfestedWaterings,
		a.Harvests,
		a.Destroyed,
		a.Debugs,
		a.Decays,
		a.BugBites,
		a.Poisons,
		a.Infestations,
	)
	if err != nil {
		return "", fmt.Errorf("insert attempt: %w", err)
	}
	return a.ID, nil
}

func historyFilter(cfg model.HistoryConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Difficulty != "" {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, cfg.Difficulty)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	return strings.Join(clauses, " AND "), args
}

// ListAttempts returns attempts matching cfg, oldest first. Last keeps only
// the most recent N.
func (s *Store) ListAttempts(ctx context.Context, cfg model.HistoryConfig) ([]model.Attempt, error) {
	where, args := historyFilter(cfg)
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, difficulty, growth_policy, seed, solved, harvested, target, duration_ms,
			waterings, poisoned_waterings, infested_waterings, harvests, destroyed, debugs, decays, bug_bites, poisons, infestations
		FROM attempts
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		var startedAt, endedAt string
		if err := rows.Scan(&a.ID, &startedAt, &endedAt, &a.Difficulty, &a.GrowthPolicy, &a.Seed, &a.Solved,
			&a.Harvested, &a.Target, &a.DurationMs,
			&a.Waterings, &a.PoisonedWaterings, &a.InfestedWaterings, &a.Harvests, &a.Destroyed,
			&a.Debugs, &a.Decays, &a.BugBites, &a.Poisons, &a.Infestations); err != nil {
			return nil, err
		}
		if a.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if a.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(attempts) > cfg.Last {
		attempts = attempts[len(attempts)-cfg.Last:]
	}
	return attempts, nil
}

// ListDifficultyAggregates sums attempts per difficulty, ordered by name.
func (s *Store) ListDifficultyAggregates(ctx context.Context, cfg model.HistoryConfig) ([]model.DifficultyAggregate, error) {
	where, args := historyFilter(cfg)
	query := fmt.Sprintf(`SELECT difficulty, COUNT(*) AS attempts,
		SUM(solved) AS solved,
		SUM(CASE WHEN solved = 1 THEN duration_ms ELSE 0 END) AS solved_ms,
		SUM(destroyed) AS destroyed,
		SUM(poisoned_waterings + infested_waterings) AS harm_waterings
	FROM attempts
	WHERE %s
	GROUP BY difficulty
	ORDER BY difficulty ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.DifficultyAggregate
	for rows.Next() {
		var agg model.DifficultyAggregate
		if err := rows.Scan(&agg.Difficulty, &agg.Attempts, &agg.Solved, &agg.SolvedMsSum, &agg.Destroyed, &agg.HarmWaterings); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

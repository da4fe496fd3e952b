package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"gostop/trainer"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Nodes     int
}

// SQLite stores one row per node, plus one row per save in runs.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	s := &SQLite{db: db}
	if err = s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Save replaces the stored table in a single transaction.
func (s *SQLite) Save(ctx context.Context, table *trainer.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return fmt.Errorf("failed to clear nodes: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO nodes(key, regret, strategy) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	table.Range(func(key string, node *trainer.Node) bool {
		_, err = stmt.ExecContext(ctx, key, encodeFloats(node.RegretSum), encodeFloats(node.StrategySum))
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert node: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO runs(id, created_at, nodes) VALUES (?, ?, ?)`,
		uuid.NewString(), time.Now().UTC().Format(time.RFC3339Nano), table.Len())
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context) (*trainer.Table, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, regret, strategy FROM nodes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	table := trainer.NewTable()
	for rows.Next() {
		var key string
		var regret, strategy []byte
		if err = rows.Scan(&key, &regret, &strategy); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		node := &trainer.Node{}
		if node.RegretSum, err = decodeFloats(regret); err != nil {
			return nil, fmt.Errorf("%w: regret of %q: %v", ErrCorrupt, key, err)
		}
		if node.StrategySum, err = decodeFloats(strategy); err != nil {
			return nil, fmt.Errorf("%w: strategy of %q: %v", ErrCorrupt, key, err)
		}
		if err = table.Put(key, node); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nodes: %w", err)
	}
	return table, nil
}

// Runs lists saves, oldest first.
func (s *SQLite) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, nodes FROM runs ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var id, createdAt string
		var run Run
		if err = rows.Scan(&id, &createdAt, &run.Nodes); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("%w: run id %q: %v", ErrCorrupt, id, err)
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("%w: run time %q: %v", ErrCorrupt, createdAt, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func encodeFloats(values []float64) []byte {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

func decodeFloats(buf []byte) ([]float64, error) {
	if len(buf)%8 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 8", len(buf))
	}
	values := make([]float64, len(buf)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
	}
	return values, nil
}

package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"gostop/trainer"
)

var ErrCorrupt = errors.New("corrupt strategy table")

// Store persists a strategy table. Loading a store that holds nothing yields an empty table.
type Store interface {
	Save(ctx context.Context, table *trainer.Table) error
	Load(ctx context.Context) (*trainer.Table, error)
	Close() error
}

// Open picks SQLite for .db and .sqlite paths and a gob snapshot file otherwise.
func Open(ctx context.Context, path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(ctx, path)
	default:
		return NewFile(path), nil
	}
}

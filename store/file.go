package store

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gostop/trainer"
)

type snapshot struct {
	Keys     []string
	Regret   [][]float64
	Strategy [][]float64
}

// File stores the table as a single gob snapshot.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

// Save writes to a temporary file first so an interrupted save keeps the previous snapshot.
func (f *File) Save(ctx context.Context, table *trainer.Table) error {
	s := snapshot{}
	table.Range(func(key string, node *trainer.Node) bool {
		s.Keys = append(s.Keys, key)
		s.Regret = append(s.Regret, node.RegretSum)
		s.Strategy = append(s.Strategy, node.StrategySum)
		return ctx.Err() == nil
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	err = gob.NewEncoder(out).Encode(s)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to encode strategy table: %w", err)
	}
	if err = os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

func (f *File) Load(ctx context.Context) (*trainer.Table, error) {
	in, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return trainer.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.path, err)
	}
	defer in.Close()

	var s snapshot
	if err = gob.NewDecoder(in).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	if len(s.Regret) != len(s.Keys) || len(s.Strategy) != len(s.Keys) {
		return nil, fmt.Errorf("%w: %s has %d keys, %d regret and %d strategy vectors", ErrCorrupt, f.path, len(s.Keys), len(s.Regret), len(s.Strategy))
	}

	table := trainer.NewTable()
	for i, key := range s.Keys {
		node := &trainer.Node{RegretSum: s.Regret[i], StrategySum: s.Strategy[i]}
		if err = table.Put(key, node); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	return table, ctx.Err()
}

func (f *File) Close() error {
	return nil
}

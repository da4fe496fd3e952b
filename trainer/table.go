package trainer

import (
	"errors"
	"fmt"

	"gostop/game"
)

// ErrNodeShape is returned when an information set is revisited with a different number of
// legal actions than it was created with.
var ErrNodeShape = fmt.Errorf("%w: node action count mismatch", game.ErrInvariantViolation)

var ErrDuplicateKey = errors.New("duplicate information set key")

// Table is the arena of nodes keyed by information-set key. Nodes are created on first visit
// and never removed. It is not safe for concurrent use.
type Table struct {
	index map[string]int
	keys  []string
	nodes []*Node
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

func (t *Table) Len() int {
	return len(t.nodes)
}

func (t *Table) Get(key string) (*Node, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.nodes[i], true
}

// GetOrCreate returns the node for key, creating one with the given action count if absent.
func (t *Table) GetOrCreate(key string, actions int) (*Node, error) {
	if node, ok := t.Get(key); ok {
		if node.Actions() != actions {
			return nil, fmt.Errorf("%w: %q has %d actions, got %d", ErrNodeShape, key, node.Actions(), actions)
		}
		return node, nil
	}
	node := NewNode(actions)
	t.add(key, node)
	return node, nil
}

// Put inserts a node loaded from storage.
func (t *Table) Put(key string, node *Node) error {
	if len(node.RegretSum) != len(node.StrategySum) {
		return fmt.Errorf("%w: %q has %d regrets and %d strategy weights", ErrNodeShape, key, len(node.RegretSum), len(node.StrategySum))
	}
	if _, ok := t.index[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	t.add(key, node)
	return nil
}

func (t *Table) add(key string, node *Node) {
	t.index[key] = len(t.nodes)
	t.keys = append(t.keys, key)
	t.nodes = append(t.nodes, node)
}

// Range visits nodes in creation order until fn returns false.
func (t *Table) Range(fn func(key string, node *Node) bool) {
	for i, key := range t.keys {
		if !fn(key, t.nodes[i]) {
			return
		}
	}
}

// AverageStrategy returns the trained strategy of an information set, if it was visited.
func (t *Table) AverageStrategy(key string) ([]float64, bool) {
	node, ok := t.Get(key)
	if !ok {
		return nil, false
	}
	return node.AverageStrategy(), true
}

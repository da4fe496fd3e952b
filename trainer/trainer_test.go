package trainer

import (
	"testing"

	"gostop/game"

	"github.com/stretchr/testify/require"
)

func TestNode(t *testing.T) {
	t.Run("regret matching normalizes positive regrets", func(t *testing.T) {
		node := NewNode(3)
		node.RegretSum = []float64{3, -2, 1}
		require.InDeltaSlice(t, []float64{0.75, 0, 0.25}, node.Current(), 1e-9)
	})

	t.Run("regret matching is uniform without positive regret", func(t *testing.T) {
		node := NewNode(4)
		require.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, node.Current(), 1e-9)

		node.RegretSum = []float64{-1, -5, 0, -0.5}
		require.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, node.Current(), 1e-9)
	})

	t.Run("strategy accumulates reach weighted strategy", func(t *testing.T) {
		node := NewNode(2)
		node.RegretSum = []float64{1, 3}
		node.Strategy(0.5)
		node.Strategy(1)
		require.InDeltaSlice(t, []float64{0.375, 1.125}, node.StrategySum, 1e-9)
		require.InDeltaSlice(t, []float64{0.25, 0.75}, node.AverageStrategy(), 1e-9)
	})

	t.Run("average strategy of an unvisited node is uniform", func(t *testing.T) {
		require.InDeltaSlice(t, []float64{0.5, 0.5}, NewNode(2).AverageStrategy(), 1e-9)
	})
}

func TestTable(t *testing.T) {
	t.Run("creates a node once", func(t *testing.T) {
		table := NewTable()
		a, err := table.GetOrCreate("a", 2)
		require.NoError(t, err)
		again, err := table.GetOrCreate("a", 2)
		require.NoError(t, err)
		require.Same(t, a, again, "Should return the existing node")
		require.Equal(t, 1, table.Len())
	})

	t.Run("rejects a different action count", func(t *testing.T) {
		table := NewTable()
		_, err := table.GetOrCreate("a", 2)
		require.NoError(t, err)
		_, err = table.GetOrCreate("a", 3)
		require.ErrorIs(t, err, ErrNodeShape)
		require.ErrorIs(t, err, game.ErrInvariantViolation)
	})

	t.Run("put rejects duplicates and mismatched vectors", func(t *testing.T) {
		table := NewTable()
		require.NoError(t, table.Put("a", NewNode(2)))
		require.ErrorIs(t, table.Put("a", NewNode(2)), ErrDuplicateKey)
		require.ErrorIs(t, table.Put("b", &Node{RegretSum: []float64{0}, StrategySum: []float64{}}), ErrNodeShape)
	})

	t.Run("ranges in creation order", func(t *testing.T) {
		table := NewTable()
		for _, key := range []string{"c", "a", "b"} {
			_, err := table.GetOrCreate(key, 1)
			require.NoError(t, err)
		}
		var keys []string
		table.Range(func(key string, node *Node) bool {
			keys = append(keys, key)
			return true
		})
		require.Equal(t, []string{"c", "a", "b"}, keys)

		_, ok := table.AverageStrategy("missing")
		require.False(t, ok)
	})
}

func TestParseSampling(t *testing.T) {
	for _, sampling := range []Sampling{Vanilla, ExternalSampling, OutcomeSampling} {
		parsed, err := ParseSampling(sampling.String())
		require.NoError(t, err)
		require.Equal(t, sampling, parsed)
	}
	_, err := ParseSampling("chance")
	require.Error(t, err)
}

func TestTrainer(t *testing.T) {
	t.Run("requires iterations", func(t *testing.T) {
		require.Panics(t, func() { New() })
	})

	t.Run("vanilla training on the endgame", func(t *testing.T) {
		var calls int
		trainer := New(WithIterations(50), WithMetrics(), WithProgress(func(int, [2]float64) { calls++ }))
		metric, err := trainer.Train()
		require.NoError(t, err)
		require.Equal(t, 50, calls)
		require.Equal(t, 50, metric.Iterations)
		require.Equal(t, "vanilla", metric.Sampling)
		require.Positive(t, metric.NodeVisits)
		require.Equal(t, trainer.Table().Len(), metric.TableSize)

		root := game.NewEndgame()
		strategy, ok := trainer.Table().AverageStrategy(root.View(game.Player1).Key())
		require.True(t, ok, "Should have trained the go decision")
		require.Len(t, strategy, 2)
		requireDistributions(t, trainer.Table())
	})

	t.Run("external sampling on the endgame", func(t *testing.T) {
		trainer := New(WithIterations(50), WithSampling(ExternalSampling))
		_, err := trainer.Train()
		require.NoError(t, err)
		require.Positive(t, trainer.Table().Len())
		requireDistributions(t, trainer.Table())
	})

	t.Run("outcome sampling on full deals", func(t *testing.T) {
		trainer := New(WithIterations(30), WithSampling(OutcomeSampling), WithDealer(game.NewGame))
		_, err := trainer.Train()
		require.NoError(t, err)
		require.Positive(t, trainer.Table().Len())
		requireDistributions(t, trainer.Table())
	})

	t.Run("same seed trains the same table", func(t *testing.T) {
		train := func() *Table {
			trainer := New(WithIterations(10), WithSeed(7), WithSampling(OutcomeSampling), WithDealer(game.NewGame))
			_, err := trainer.Train()
			require.NoError(t, err)
			return trainer.Table()
		}
		first, second := train(), train()
		require.Equal(t, first.Len(), second.Len())
		first.Range(func(key string, node *Node) bool {
			other, ok := second.Get(key)
			require.True(t, ok, "Should visit %s in both runs", key)
			require.Equal(t, node, other)
			return true
		})
	})

	t.Run("continues from an existing table", func(t *testing.T) {
		first := New(WithIterations(5))
		_, err := first.Train()
		require.NoError(t, err)
		size := first.Table().Len()

		second := New(WithIterations(5), WithTable(first.Table()))
		_, err = second.Train()
		require.NoError(t, err)
		require.Same(t, first.Table(), second.Table())
		require.Equal(t, size, second.Table().Len(), "Should revisit the same endgame infosets")
	})
}

func TestCFRRegretUpdate(t *testing.T) {
	state := game.NewEndgame()
	actions := state.LegalActions()
	reach := [2]float64{1, 0.25}

	trainer := New(WithIterations(1))
	u, err := trainer.cfr(game.Player1, state, nil, reach)
	require.NoError(t, err)
	node, ok := trainer.Table().Get(state.View(game.Player1).Key())
	require.True(t, ok)
	require.Len(t, node.RegretSum, len(actions))

	// First visit plays uniformly, and fresh trainers see the same subtrees
	expected := 0.0
	for i := range actions {
		next := reach
		next[game.Player1.Index()] *= 1 / float64(len(actions))
		ui, err := New(WithIterations(1)).cfr(game.Player1, state, &actions[i], next)
		require.NoError(t, err)
		require.InDelta(t, (ui-u)*reach[game.Player2.Index()], node.RegretSum[i], 1e-9,
			"Regret of %s should be scaled by the opponent's reach", actions[i])
		expected += ui / float64(len(actions))
	}
	require.InDelta(t, expected, u, 1e-9)
	require.NotZero(t, node.RegretSum[0], "Go and stop should differ in value")
	require.InDeltaSlice(t, []float64{0.5, 0.5}, node.StrategySum, 1e-9, "Strategy sum should use the mover's reach")
}

func requireDistributions(t *testing.T, table *Table) {
	t.Helper()
	table.Range(func(key string, node *Node) bool {
		sum := 0.0
		for _, p := range node.AverageStrategy() {
			require.GreaterOrEqual(t, p, 0.0)
			sum += p
		}
		require.InDelta(t, 1.0, sum, 1e-9, "Average strategy of %s should sum to 1", key)
		return true
	})
}

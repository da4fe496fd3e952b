package experiments

import (
	"context"
	"path/filepath"
	"testing"

	"gostop/experiments/metrics"
	"gostop/game"
	"gostop/trainer"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func endgame(*rand.Rand) *game.GameState {
	return game.NewEndgame()
}

func TestRunMatchup(t *testing.T) {
	ctx := context.Background()

	t.Run("alternates the starting agent", func(t *testing.T) {
		dir := t.TempDir()
		summary, err := RunMatchup(ctx, Matchup{
			Name:       "greedy_mirror",
			Agents:     [2]metrics.AgentConfig{{ID: 1, Kind: GreedyAgent}, {ID: 2, Kind: GreedyAgent}},
			Games:      4,
			Dealer:     endgame,
			MetricsDir: dir,
		})
		require.NoError(t, err)
		require.Equal(t, [2]int{2, 2}, summary.Wins, "Player1 stops and wins every endgame")
		require.Equal(t, [2]float64{0, 0}, summary.MeanWinnings)
		require.Zero(t, summary.Draws)
		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(summary.Dir, file))
		}
	})

	t.Run("random full deals", func(t *testing.T) {
		summary, err := RunMatchup(ctx, Matchup{
			Name:   "random",
			Agents: [2]metrics.AgentConfig{{ID: 1, Kind: RandomAgent}, {ID: 2, Kind: GreedyAgent}},
			Games:  10,
			Seed:   5,
		})
		require.NoError(t, err)
		require.Equal(t, 10, summary.Wins[0]+summary.Wins[1]+summary.Draws)
		require.Empty(t, summary.Dir, "Should not write records without a directory")
		require.InDelta(t, 0, summary.MeanWinnings[0]+summary.MeanWinnings[1], 1e-9)
	})

	t.Run("rejects bad configs", func(t *testing.T) {
		_, err := RunMatchup(ctx, Matchup{Name: "none", Games: 0})
		require.Error(t, err)

		_, err = RunMatchup(ctx, Matchup{
			Name:   "unknown",
			Agents: [2]metrics.AgentConfig{{ID: 1, Kind: "oracle"}, {ID: 2, Kind: RandomAgent}},
			Games:  1,
		})
		require.ErrorContains(t, err, "oracle")
	})
}

func TestRunTraining(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "strategy.gob")

	metric, table, err := RunTraining(ctx, Training{
		Name:         "endgame",
		StrategyPath: path,
		MetricsDir:   dir,
		Options:      []trainer.Option{trainer.WithIterations(20)},
	})
	require.NoError(t, err)
	require.Equal(t, 20, metric.Iterations)
	require.Positive(t, table.Len())
	require.FileExists(t, path)

	// Resumes from the saved table
	_, resumed, err := RunTraining(ctx, Training{
		Name:         "endgame",
		StrategyPath: path,
		Options:      []trainer.Option{trainer.WithIterations(5)},
	})
	require.NoError(t, err)
	require.Equal(t, table.Len(), resumed.Len())

	summary, err := RunMatchup(ctx, Matchup{
		Name:   "policy",
		Agents: [2]metrics.AgentConfig{{ID: 1, Kind: PolicyAgent, StrategyPath: path}, {ID: 2, Kind: RandomAgent}},
		Games:  6,
		Dealer: endgame,
	})
	require.NoError(t, err)
	require.Equal(t, 6, summary.Games)
}

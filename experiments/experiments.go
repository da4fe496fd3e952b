package experiments

import (
	"context"
	"fmt"

	"gostop/agent"
	"gostop/engine"
	"gostop/experiments/metrics"
	"gostop/game"
	"gostop/store"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	RandomAgent = "random"
	GreedyAgent = "greedy"
	PolicyAgent = "policy"
)

type Matchup struct {
	Name       string
	Agents     [2]metrics.AgentConfig
	Games      int
	Dealer     game.Dealer
	Seed       uint64
	MetricsDir string // Records are only written when set
}

type Summary struct {
	Games        int
	Draws        int
	Wins         [2]int     // Per agent config
	MeanWinnings [2]float64 // Per agent config
	Dir          string     // Directory holding the CSV records
}

// RunMatchup plays the agents against each other, alternating which one starts.
func RunMatchup(ctx context.Context, m Matchup) (Summary, error) {
	if m.Games <= 0 {
		return Summary{}, fmt.Errorf("games must be positive, got %d", m.Games)
	}
	if m.Dealer == nil {
		m.Dealer = game.NewGame
	}
	r := rand.New(rand.NewSource(m.Seed))
	agents := [2]agent.Agent{}
	for i, config := range m.Agents {
		a, err := createAgent(ctx, config, r)
		if err != nil {
			return Summary{}, err
		}
		agents[i] = a
	}

	log.Info().Msgf("starting %s matchup between agent1=%+v and agent2=%+v...", m.Name, m.Agents[0], m.Agents[1])

	summary := Summary{Games: m.Games}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	totals := [2]int{}
	for i := 0; i < m.Games; i++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		seats := [2]int{0, 1} // Seat to agent config
		if i%2 == 1 {
			seats = [2]int{1, 0}
		}

		e := engine.LocalEngine(m.Dealer(r), agents[seats[0]], agents[seats[1]])
		winnings, gameMetric, moveMetrics, err := e.Run()
		if err != nil {
			return summary, fmt.Errorf("game %d: %w", i+1, err)
		}

		for seat, config := range seats {
			totals[config] += winnings[seat]
			if winnings[seat] > 0 {
				summary.Wins[config]++
			}
		}
		if winnings[0] == 0 {
			summary.Draws++
		}

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			Agent1:     m.Agents[seats[0]].ID,
			Agent2:     m.Agents[seats[1]].ID,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
		}
		log.Debug().Msgf("completed game %d of %d with winner: %s", i+1, m.Games, gameMetric.Winner)
	}
	for i, total := range totals {
		summary.MeanWinnings[i] = float64(total) / float64(m.Games)
	}
	log.Info().Msgf("completed %s matchup: wins %v, draws %d, mean winnings %v", m.Name, summary.Wins, summary.Draws, summary.MeanWinnings)

	if m.MetricsDir == "" {
		return summary, nil
	}
	dir, err := writeMatchup(m, gameRecords, moveRecords)
	summary.Dir = dir
	return summary, err
}

func writeMatchup(m Matchup, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(m.MetricsDir, m.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err = writer.WriteAgentConfigs(m.Agents[:]); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err = writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err = writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return writer.Dir(), nil
}

func createAgent(ctx context.Context, config metrics.AgentConfig, r *rand.Rand) (agent.Agent, error) {
	switch config.Kind {
	case RandomAgent:
		return agent.NewRandomAgent(r), nil
	case GreedyAgent:
		return agent.NewGreedyAgent(game.EvaluateMaterial), nil
	case PolicyAgent:
		s, err := store.Open(ctx, config.StrategyPath)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		table, err := s.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load strategy for agent %d: %w", config.ID, err)
		}
		log.Info().Msgf("loaded %d nodes for agent %d from %s", table.Len(), config.ID, config.StrategyPath)
		return agent.NewPolicyAgent(table, r), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
	}
}

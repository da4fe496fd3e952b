package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"gostop/agent"
	"gostop/cli"
	"gostop/config"
	"gostop/engine"
	"gostop/experiments"
	"gostop/experiments/metrics"
	"gostop/game"
	"gostop/store"
	"gostop/trainer"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const usage = `usage: gostop <command> [flags]

commands:
  train     train a strategy table with CFR
  simulate  play agents against each other and record the results
  play      play against the trained strategy in the terminal`

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "train":
		err = train(ctx, cfg, os.Args[2:])
	case "simulate":
		err = simulate(ctx, cfg, os.Args[2:])
	case "play":
		err = play(ctx, cfg, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", os.Args[1])
	}
}

func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func train(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	iterations := fs.Int("iterations", cfg.Iterations, "Number of training iterations")
	seed := fs.Uint64("seed", cfg.Seed, "Random seed")
	scenario := fs.String("scenario", cfg.Scenario, "Deal to train on: full or endgame")
	sampling := fs.String("sampling", cfg.Sampling, "Traversal: vanilla, external or outcome")
	exploration := fs.Float64("exploration", trainer.DefaultExploration, "Exploration for outcome sampling")
	strategyPath := fs.String("strategy", cfg.StrategyPath, "Strategy table to resume from and save to")
	metricsDir := fs.String("metrics", cfg.MetricsDir, "Directory for training records, empty to skip")
	progress := fs.Bool("progress", true, "Show a progress bar")
	fs.Parse(args)

	dealer, err := game.DealerFor(*scenario)
	if err != nil {
		return err
	}
	mode, err := trainer.ParseSampling(*sampling)
	if err != nil {
		return err
	}
	options := []trainer.Option{
		trainer.WithIterations(*iterations),
		trainer.WithSeed(*seed),
		trainer.WithDealer(dealer),
		trainer.WithSampling(mode),
		trainer.WithExploration(*exploration),
	}
	if *progress {
		bar, err := cli.StartProgress(*iterations)
		if err != nil {
			return err
		}
		defer bar.Stop()
		options = append(options, trainer.WithProgress(bar.Update))
	}

	metric, _, err := experiments.RunTraining(ctx, experiments.Training{
		Name:         "training_" + *scenario,
		StrategyPath: *strategyPath,
		MetricsDir:   *metricsDir,
		Options:      options,
	})
	if err != nil {
		return err
	}
	return pterm.DefaultTable.WithHasHeader().WithData([][]string{
		{"Iterations", "Sampling", "Duration", "Node visits", "Nodes", "Utility P1", "Utility P2"},
		{
			strconv.Itoa(metric.Iterations),
			metric.Sampling,
			metric.Duration.String(),
			strconv.Itoa(metric.NodeVisits),
			strconv.Itoa(metric.TableSize),
			strconv.FormatFloat(metric.MeanUtility[0], 'f', 3, 64),
			strconv.FormatFloat(metric.MeanUtility[1], 'f', 3, 64),
		},
	}).Render()
}

func simulate(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	games := fs.Int("games", cfg.Games, "Number of games")
	seed := fs.Uint64("seed", cfg.Seed, "Random seed")
	scenario := fs.String("scenario", game.FullScenario, "Deal to play: full or endgame")
	agent1 := fs.String("agent1", experiments.PolicyAgent, "First agent: random, greedy or policy")
	agent2 := fs.String("agent2", experiments.RandomAgent, "Second agent: random, greedy or policy")
	strategyPath := fs.String("strategy", cfg.StrategyPath, "Strategy table for policy agents")
	metricsDir := fs.String("metrics", cfg.MetricsDir, "Directory for game records, empty to skip")
	fs.Parse(args)

	dealer, err := game.DealerFor(*scenario)
	if err != nil {
		return err
	}
	configs := [2]metrics.AgentConfig{
		{ID: 1, Kind: *agent1},
		{ID: 2, Kind: *agent2},
	}
	for i := range configs {
		if configs[i].Kind == experiments.PolicyAgent {
			configs[i].StrategyPath = *strategyPath
		}
	}

	summary, err := experiments.RunMatchup(ctx, experiments.Matchup{
		Name:       fmt.Sprintf("%s_vs_%s", *agent1, *agent2),
		Agents:     configs,
		Games:      *games,
		Dealer:     dealer,
		Seed:       *seed,
		MetricsDir: *metricsDir,
	})
	if err != nil {
		return err
	}

	data := [][]string{{"Agent", "Wins", "Mean winnings"}}
	for i, config := range configs {
		data = append(data, []string{
			fmt.Sprintf("%d (%s)", config.ID, config.Kind),
			strconv.Itoa(summary.Wins[i]),
			strconv.FormatFloat(summary.MeanWinnings[i], 'f', 3, 64),
		})
	}
	data = append(data, []string{"Draws", strconv.Itoa(summary.Draws), ""})
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func play(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	seat := fs.Int("seat", 1, "Your seat: 1 or 2")
	seed := fs.Uint64("seed", cfg.Seed, "Random seed")
	scenario := fs.String("scenario", cfg.Scenario, "Deal to play: full or endgame")
	strategyPath := fs.String("strategy", cfg.StrategyPath, "Strategy table of the opponent")
	fs.Parse(args)

	if *seat != 1 && *seat != 2 {
		return fmt.Errorf("seat must be 1 or 2, got %d", *seat)
	}
	dealer, err := game.DealerFor(*scenario)
	if err != nil {
		return err
	}

	s, err := store.Open(ctx, *strategyPath)
	if err != nil {
		return err
	}
	defer s.Close()
	table, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		pterm.Warning.Printfln("No trained strategy in %s, the opponent plays uniformly at random", *strategyPath)
	}

	r := rand.New(rand.NewSource(*seed))
	human := game.Player(*seat)
	agents := []agent.Agent{cli.NewHumanAgent(table), agent.NewPolicyAgent(table, r)}
	if human == game.Player2 {
		agents[0], agents[1] = agents[1], agents[0]
	}

	e := engine.LocalEngine(dealer(r), agents...)
	e.OnMove = func(u engine.Update) {
		if u.Player != human {
			pterm.Info.Printfln("%s plays %s", u.Player, u.Action)
		}
	}
	winnings, _, _, err := e.Run()
	if err != nil {
		return err
	}

	if err = cli.Render(e.Session.View(human)); err != nil {
		return err
	}
	switch amount := winnings[human.Index()]; {
	case amount > 0:
		pterm.Success.Printfln("You win %d", amount)
	case amount < 0:
		pterm.Error.Printfln("You lose %d", -amount)
	default:
		pterm.Info.Println("Draw")
	}
	return nil
}

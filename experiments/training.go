package experiments

import (
	"context"
	"fmt"

	"gostop/experiments/metrics"
	"gostop/store"
	"gostop/trainer"

	"github.com/rs/zerolog/log"
)

type Training struct {
	Name         string
	StrategyPath string // Resumed from and saved to when set
	MetricsDir   string // Records are only written when set
	Options      []trainer.Option
}

// RunTraining trains a strategy table, resuming from and saving to StrategyPath.
func RunTraining(ctx context.Context, t Training) (metrics.TrainingMetric, *trainer.Table, error) {
	var s store.Store
	options := append([]trainer.Option{trainer.WithMetrics()}, t.Options...)
	if t.StrategyPath != "" {
		var err error
		s, err = store.Open(ctx, t.StrategyPath)
		if err != nil {
			return metrics.TrainingMetric{}, nil, err
		}
		defer s.Close()
		table, err := s.Load(ctx)
		if err != nil {
			return metrics.TrainingMetric{}, nil, err
		}
		log.Info().Msgf("resuming from %d nodes in %s", table.Len(), t.StrategyPath)
		options = append(options, trainer.WithTable(table))
	}

	tr := trainer.New(options...)
	metric, err := tr.Train()
	if err != nil {
		return metric, tr.Table(), err
	}

	if s != nil {
		if err = s.Save(ctx, tr.Table()); err != nil {
			return metric, tr.Table(), fmt.Errorf("failed to save strategy table: %w", err)
		}
		log.Info().Msgf("saved %d nodes to %s", tr.Table().Len(), t.StrategyPath)
	}

	if t.MetricsDir != "" {
		writer, err := metrics.NewWriter(t.MetricsDir, t.Name)
		if err != nil {
			return metric, tr.Table(), fmt.Errorf("failed to create experiment writer: %w", err)
		}
		if err = writer.WriteTrainingMetric(metric); err != nil {
			return metric, tr.Table(), fmt.Errorf("failed to write training metric: %w", err)
		}
		if err = writer.WriteIterations(tr.Metrics().Iterations()); err != nil {
			return metric, tr.Table(), fmt.Errorf("failed to write iterations: %w", err)
		}
		log.Info().Msgf("stored training records in %s", writer.Dir())
	}
	return metric, tr.Table(), nil
}

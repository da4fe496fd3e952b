package engine

import (
	"errors"

	"gostop/experiments/metrics"
)

const MaxMoves = 10000

var (
	ErrGameOver = errors.New("game is over - no moves allowed")
	ErrMaxMoves = errors.New("move limit reached")
	ErrNoAgent  = errors.New("no agent for player")
)

type Engine interface {
	// Run plays a hand to its end and returns the settlement for both players
	Run() (winnings [2]int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

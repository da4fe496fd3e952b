package engine

import (
	"fmt"
	"time"

	"gostop/agent"
	"gostop/experiments/metrics"
	"gostop/game"

	"github.com/rs/zerolog/log"
)

type Local struct {
	Session *Session
	Agents  [2]agent.Agent
	OnMove  func(Update) // Optional, called after every accepted action
}

// LocalEngine plays state with one agent per player, Player1 first.
func LocalEngine(state *game.GameState, agents ...agent.Agent) *Local {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	return &Local{
		Session: NewSession(state),
		Agents:  [2]agent.Agent{agents[0], agents[1]},
	}
}

// Run executes the game loop until the hand is over.
func (e *Local) Run() ([2]int, metrics.GameMetric, []metrics.MoveMetric, error) {
	state := e.Session.State()
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(state.Player()),
		StartTime:      time.Now(),
	}
	log.Debug().Msgf("%s is starting", state.Player())

	var moveMetrics []metrics.MoveMetric
	for step := 1; !e.Session.Over(); step++ {
		if step > MaxMoves {
			return [2]int{}, gameMetric, moveMetrics, fmt.Errorf("%w: %d", ErrMaxMoves, MaxMoves)
		}
		state = e.Session.State()
		mover := state.Player()
		a := e.Agents[mover.Index()]
		if a == nil {
			return [2]int{}, gameMetric, moveMetrics, fmt.Errorf("%w %s", ErrNoAgent, mover)
		}

		action, err := a.FindAction(state)
		if err != nil {
			return [2]int{}, gameMetric, moveMetrics, fmt.Errorf("%s failed to find an action: %w", mover, err)
		}
		err = e.Session.Play(action)
		if err != nil {
			return [2]int{}, gameMetric, moveMetrics, err
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:   step,
			Player: int(mover),
			Action: action.String(),
		})
		if e.OnMove != nil {
			updates := e.Session.Updates()
			e.OnMove(updates[len(updates)-1])
		}
	}

	final := e.Session.State()
	winnings := game.Winnings(final)
	gameMetric.Winner = final.Winner().String()
	gameMetric.Winnings = winnings
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Debug().Msgf("hand over after %d moves, winner %s, winnings %v", len(moveMetrics), gameMetric.Winner, winnings)
	return winnings, gameMetric, moveMetrics, nil
}

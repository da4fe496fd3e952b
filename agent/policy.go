package agent

import (
	"gostop/game"
	"gostop/trainer"
	"gostop/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type policyAgent struct {
	table *trainer.Table
	rng   *rand.Rand
}

// NewPolicyAgent samples the trained average strategy of the mover's information set.
func NewPolicyAgent(table *trainer.Table, rng *rand.Rand) Agent {
	return &policyAgent{table: table, rng: rng}
}

func (a *policyAgent) FindAction(state *game.GameState) (game.Action, error) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return game.Action{}, ErrNoLegalActions
	}
	strategy := Strategy(a.table, state)
	return actions[utils.Sample(strategy, a.rng)], nil
}

// Strategy returns the average strategy for the mover's information set, aligned with
// LegalActions. Unseen information sets get a uniform strategy.
func Strategy(table *trainer.Table, state *game.GameState) []float64 {
	actions := state.LegalActions()
	key := state.View(state.Player()).Key()
	strategy, ok := table.AverageStrategy(key)
	if !ok || len(strategy) != len(actions) {
		if ok {
			log.Warn().Msgf("strategy for %s has %d actions, expected %d", key, len(strategy), len(actions))
		} else {
			log.Debug().Msgf("no strategy for information set %s", key)
		}
		return utils.Normalize(make([]float64, len(actions)))
	}
	return strategy
}

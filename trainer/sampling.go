package trainer

import (
	"gostop/game"
	"gostop/utils"
)

// sampleOpponent follows a single opponent action drawn from the current strategy.
func (t *Trainer) sampleOpponent(trained game.Player, state *game.GameState, actions []game.Action, node *Node, reach [2]float64) (float64, error) {
	strategy := node.Strategy(1)
	i := utils.Sample(strategy, t.rng)
	return t.cfr(trained, state, &actions[i], reach)
}

// outcome samples one trajectory. It returns the probability of the sampled suffix under the
// current strategies and the terminal winnings of trained divided by the probability of
// sampling the whole trajectory. sample is the sampling probability of the prefix.
func (t *Trainer) outcome(trained game.Player, state *game.GameState, reach [2]float64, sample float64) (float64, float64, error) {
	if state.Terminal {
		return 1, float64(game.Winnings(state)[trained.Index()]) / sample, nil
	}
	t.metrics.AddNodeVisit()

	mover := state.Player()
	actions := state.LegalActions()
	node, err := t.table.GetOrCreate(state.View(mover).Key(), len(actions))
	if err != nil {
		return 0, 0, err
	}
	strategy := node.Current()

	probabilities := strategy
	if mover == trained {
		probabilities = make([]float64, len(strategy))
		uniform := t.exploration / float64(len(strategy))
		for i, p := range strategy {
			probabilities[i] = uniform + (1-t.exploration)*p
		}
	}
	sampled := utils.Sample(probabilities, t.rng)

	next, err := state.Apply(actions[sampled])
	if err != nil {
		return 0, 0, err
	}
	childReach := reach
	childReach[mover.Index()] *= strategy[sampled]
	tail, utility, err := t.outcome(trained, next, childReach, sample*probabilities[sampled])
	if err != nil {
		return 0, 0, err
	}

	if mover == trained {
		weight := utility * reach[mover.Opponent().Index()]
		for i := range actions {
			if i == sampled {
				node.RegretSum[i] += weight * tail * (1 - strategy[sampled])
			} else {
				node.RegretSum[i] -= weight * tail * strategy[sampled]
			}
		}
	} else {
		for i, p := range strategy {
			node.StrategySum[i] += reach[mover.Index()] / sample * p
		}
	}
	return tail * strategy[sampled], utility, nil
}

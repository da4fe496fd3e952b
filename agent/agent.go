package agent

import (
	"errors"

	"gostop/game"

	"golang.org/x/exp/rand"
)

var ErrNoLegalActions = errors.New("no legal actions")

type Agent interface {
	// FindAction returns the action to play for the player to move
	FindAction(state *game.GameState) (game.Action, error)
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent picks uniformly among the legal actions.
func NewRandomAgent(rng *rand.Rand) Agent {
	return &randomAgent{rng: rng}
}

func (a *randomAgent) FindAction(state *game.GameState) (game.Action, error) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return game.Action{}, ErrNoLegalActions
	}
	return actions[a.rng.Intn(len(actions))], nil
}

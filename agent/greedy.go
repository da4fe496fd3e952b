package agent

import (
	"math"

	"gostop/game"
	"gostop/utils"
)

type greedyAgent struct {
	evaluate game.Evaluate
}

// NewGreedyAgent plays the action whose resulting state evaluates best for the mover.
// Throws are valued as the average over every card the mover cannot see, since the
// flip that follows a throw comes off the hidden deck.
func NewGreedyAgent(evaluate game.Evaluate) Agent {
	if evaluate == nil {
		evaluate = game.EvaluateScore
	}
	return greedyAgent{evaluate: evaluate}
}

func (a greedyAgent) FindAction(state *game.GameState) (game.Action, error) {
	values, err := a.values(state)
	if err != nil {
		return game.Action{}, err
	}
	return findMax(state.LegalActions(), values)
}

func (a greedyAgent) values(state *game.GameState) (map[game.Action]float64, error) {
	mover := state.Player()
	unseen := unseenCards(state.View(mover))
	values := make(map[game.Action]float64)
	for _, action := range state.LegalActions() {
		if action.Kind != game.ThrowAction || state.Deck.Len() == 0 || len(unseen) == 0 {
			next, err := state.Apply(action)
			if err != nil {
				return nil, err
			}
			values[action] = a.evaluate(next, mover)
			continue
		}

		total := 0.0
		for _, card := range unseen {
			next, err := withTopCard(state, mover, card).Apply(action)
			if err != nil {
				return nil, err
			}
			total += a.evaluate(next, mover)
		}
		values[action] = total / float64(len(unseen))
	}
	return values, nil
}

// unseenCards lists the cards hidden from the observer: the deck and the opponent's hand.
func unseenCards(view game.InfoSet) game.CardGroup {
	var unseen game.CardGroup
	for _, card := range game.FullDeck() {
		if view.Hand.Contains(card) || view.Center.Contains(card) ||
			view.Captured[0].Contains(card) || view.Captured[1].Contains(card) {
			continue
		}
		unseen = append(unseen, card)
	}
	return unseen
}

// withTopCard returns a copy of the state with card on top of the deck. The card it
// displaces takes its old place, in the deck or in the opponent's hand.
func withTopCard(state *game.GameState, mover game.Player, card game.Card) *game.GameState {
	next := state.Copy()
	deck := next.Deck.Cards
	if i := utils.FindIndex(deck, card); i >= 0 {
		deck[0], deck[i] = deck[i], deck[0]
		return next
	}
	opponent := mover.Opponent().Index()
	if i := utils.FindIndex(next.Hands[opponent], card); i >= 0 {
		next.Hands[opponent][i] = deck[0]
		deck[0] = card
	}
	return next
}

// findMax returns the highest valued action, the first one listed on ties.
func findMax(actions []game.Action, values map[game.Action]float64) (game.Action, error) {
	if len(actions) == 0 {
		return game.Action{}, ErrNoLegalActions
	}
	best := actions[0]
	maxValue := math.Inf(-1)
	for _, action := range actions {
		if value := values[action]; value > maxValue {
			maxValue = value
			best = action
		}
	}
	return best, nil
}

package cli

import (
	"fmt"
	"strconv"

	"gostop/agent"
	"gostop/game"
	"gostop/trainer"
	"gostop/utils"

	"github.com/pterm/pterm"
)

// Selector asks the user to pick one of the options.
type Selector func(options []string) (string, error)

func interactiveSelect(options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithDefaultText("Select your action").WithOptions(options).Show()
}

type humanAgent struct {
	table  *trainer.Table // Optional, shown as a hint
	render bool
	choose Selector
}

// NewHumanAgent prompts in the terminal, showing the trained strategy next to each action.
func NewHumanAgent(table *trainer.Table) agent.Agent {
	return &humanAgent{table: table, render: true, choose: interactiveSelect}
}

func (h *humanAgent) FindAction(state *game.GameState) (game.Action, error) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return game.Action{}, agent.ErrNoLegalActions
	}
	if h.render {
		if err := Render(state.View(state.Player())); err != nil {
			return game.Action{}, err
		}
	}

	options := Options(actions, h.hint(state))
	selected, err := h.choose(options)
	if err != nil {
		return game.Action{}, fmt.Errorf("failed to read action: %w", err)
	}
	i := utils.FindIndex(options, selected)
	if i < 0 {
		return game.Action{}, fmt.Errorf("%w: %q is not an option", game.ErrIllegalAction, selected)
	}
	return actions[i], nil
}

func (h *humanAgent) hint(state *game.GameState) []float64 {
	if h.table == nil {
		return nil
	}
	return agent.Strategy(h.table, state)
}

// Options labels actions for selection, with the hint probability when available.
func Options(actions []game.Action, hint []float64) []string {
	options := make([]string, len(actions))
	for i, action := range actions {
		options[i] = action.String()
		if i < len(hint) {
			options[i] += " (" + strconv.FormatFloat(100*hint[i], 'f', 0, 64) + "%)"
		}
	}
	return options
}

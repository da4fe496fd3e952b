package cli

import (
	"fmt"
	"strconv"
	"strings"

	"gostop/game"

	"github.com/pterm/pterm"
)

// Board renders what the observer of view can see.
func Board(view game.InfoSet) (string, error) {
	opponent := view.Observer.Opponent()
	me := view.Observer

	top := pterm.DefaultBox.WithTitle(opponent.String()).WithTitleTopLeft().
		Sprintf("Hand: %d cards\n%s", view.OpponentHand, playerLine(view, opponent))
	center := pterm.DefaultBox.WithTitle("Center").WithTitleTopCenter().
		Sprintf("%s\nDeck: %d cards", cards(view.Center), view.DeckSize)
	bottom := pterm.DefaultBox.WithTitle(me.String()).WithTitleTopLeft().
		Sprintf("Hand: %s\n%s", cards(view.Hand), playerLine(view, me))

	captures, err := pterm.DefaultTable.WithHasHeader().WithData(CaptureTable(view)).Srender()
	if err != nil {
		return "", err
	}

	return pterm.DefaultPanel.WithPanels(pterm.Panels{
		{{Data: top}},
		{{Data: center}},
		{{Data: bottom}},
		{{Data: captures}},
		{{Data: status(view)}},
	}).Srender()
}

// Render prints the board for the observer of view.
func Render(view game.InfoSet) error {
	board, err := Board(view)
	if err != nil {
		return err
	}
	pterm.Println(board)
	return nil
}

// CaptureTable has one row per player with the cards captured in each category.
func CaptureTable(view game.InfoSet) [][]string {
	data := [][]string{{"Player", "Bright", "Animal", "Ribbon", "Junk", "Wild"}}
	for _, p := range []game.Player{game.Player1, game.Player2} {
		row := []string{p.String()}
		for _, category := range []game.Category{game.Bright, game.Animal, game.Ribbon, game.Junk, game.Wild} {
			var group game.CardGroup
			for _, c := range view.Captured[p.Index()] {
				if c.Category == category {
					group = append(group, c)
				}
			}
			row = append(row, cards(group))
		}
		data = append(data, row)
	}
	return data
}

// StrategyTable lists the actions with their trained probabilities.
func StrategyTable(actions []game.Action, strategy []float64) [][]string {
	data := [][]string{{"Action", "Probability"}}
	for i, action := range actions {
		p := "-"
		if i < len(strategy) {
			p = strconv.FormatFloat(100*strategy[i], 'f', 1, 64) + "%"
		}
		data = append(data, []string{action.String(), p})
	}
	return data
}

func playerLine(view game.InfoSet, p game.Player) string {
	i := p.Index()
	return fmt.Sprintf("Score: %d  Go: %d  Double: %d", view.Scores[i], view.GoCounts[i], view.DoubleCounts[i])
}

func status(view game.InfoSet) string {
	switch {
	case view.Terminal && view.Winner == game.NoPlayer:
		return pterm.LightYellow("Draw")
	case view.Terminal:
		return pterm.LightGreen(view.Winner.String() + " wins")
	case view.Pending.Kind == game.PendingGo:
		return pterm.LightCyan(view.Turn.String() + " must choose go or stop")
	case view.Pending.Kind == game.PendingMatch:
		return pterm.LightCyan(view.Turn.String() + " must choose a match")
	default:
		return view.Turn.String() + " to throw"
	}
}

func cards(group game.CardGroup) string {
	if len(group) == 0 {
		return "-"
	}
	tokens := make([]string, len(group))
	for i, c := range group {
		tokens[i] = c.String()
	}
	return strings.Join(tokens, " ")
}

package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// NewEndgame returns a fixed late-hand position small enough for full-width training.
// Player1 has already gone once, holds two cards and must choose to go or stop;
// Player2 holds three; two cards are face up and five remain in the deck.
func NewEndgame() *GameState {
	captured1 := mustDecode(
		"J0300", "J0310", "B08", "B03", "B11", "R03", "J0500", "J0400", "J0410",
		"S09", "J0900", "J1000", "J1010", "J1121", "J0800", "J0510", "R12", "A12",
	)
	captured2 := mustDecode(
		"B12", "B01", "A04", "A05", "A06", "A08", "A07", "R06", "R01", "R02",
		"R04", "R05", "J0210", "J0810", "J0700", "R09", "J0910", "J1201",
	)
	hand1 := mustDecode("J0610", "J1100")
	hand2 := mustDecode("J0100", "J0110", "J1110")
	center := mustDecode("J0600", "R07")

	deck := Deck{}
	for _, token := range []string{"J0200", "A02", "R10", "J0710", "A10"} {
		deck.Cards = append(deck.Cards, mustDecode(token)...)
	}

	gs := newState(hand1, hand2, center, deck)
	gs.Captured = [2]CardGroup{captured1, captured2}
	gs.GoCount[Player1.Index()] = 1
	gs.updateScores()
	gs.Pending = Pending{Kind: PendingGo}

	if err := gs.checkInvariants(); err != nil {
		panic(err)
	}
	return gs
}

func mustDecode(tokens ...string) CardGroup {
	cards, err := DecodeCards(tokens)
	if err != nil {
		panic(err)
	}
	return cards
}

// Dealer starts a hand.
type Dealer func(r *rand.Rand) *GameState

const (
	FullScenario    = "full"
	EndgameScenario = "endgame"
)

// DealerFor returns the dealer for a scenario name.
func DealerFor(scenario string) (Dealer, error) {
	switch scenario {
	case FullScenario:
		return NewGame, nil
	case EndgameScenario:
		return func(*rand.Rand) *GameState { return NewEndgame() }, nil
	default:
		return nil, fmt.Errorf("unknown scenario %q", scenario)
	}
}

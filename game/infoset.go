package game

import (
	"strconv"
	"strings"
)

// InfoSet is what one player can see of a state: everything except the opponent's hand
// and the order of the deck.
type InfoSet struct {
	Observer     Player
	Turn         Player
	Hand         CardGroup
	OpponentHand int // Number of cards only
	Captured     [2]CardGroup
	Scores       [2]int
	GoCounts     [2]int
	DoubleCounts [2]int
	Center       CardGroup
	DeckSize     int
	Pending      Pending
	Terminal     bool
	Winner       Player
	History      []Event
}

func NewInfoSet(gs *GameState, observer Player) InfoSet {
	i := observer.Index()
	o := observer.Opponent().Index()
	history := make([]Event, len(gs.History))
	copy(history, gs.History)
	return InfoSet{
		Observer:     observer,
		Turn:         gs.Turn,
		Hand:         gs.Hands[i].Sorted(),
		OpponentHand: len(gs.Hands[o]),
		Captured:     [2]CardGroup{gs.Captured[0].Sorted(), gs.Captured[1].Sorted()},
		Scores:       gs.Score,
		GoCounts:     gs.GoCount,
		DoubleCounts: gs.DoubleCount,
		Center:       gs.CenterCards(),
		DeckSize:     gs.Deck.Len(),
		Pending:      gs.Pending,
		Terminal:     gs.Terminal,
		Winner:       gs.Won,
		History:      history,
	}
}

// View returns the state as seen by p.
func (gs *GameState) View(p Player) InfoSet {
	return NewInfoSet(gs, p)
}

// Key is the canonical encoding of the information set. Card collections are sorted,
// history keeps its order.
func (s InfoSet) Key() string {
	var b strings.Builder
	field := func(name, value string) {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(value)
		b.WriteByte('|')
	}
	ints := func(values [2]int) string {
		return strconv.Itoa(values[0]) + "," + strconv.Itoa(values[1])
	}

	field("o", strconv.Itoa(int(s.Observer)))
	field("t", strconv.Itoa(int(s.Turn)))
	field("h", s.Hand.Key())
	field("n", strconv.Itoa(s.OpponentHand))
	field("c1", s.Captured[0].Key())
	field("c2", s.Captured[1].Key())
	field("s", ints(s.Scores))
	field("g", ints(s.GoCounts))
	field("d", ints(s.DoubleCounts))
	field("m", s.Center.Key())
	field("k", strconv.Itoa(s.DeckSize))
	field("p", s.Pending.Key())
	field("x", strconv.FormatBool(s.Terminal))
	field("w", strconv.Itoa(int(s.Winner)))

	events := make([]string, len(s.History))
	for i, e := range s.History {
		events[i] = e.String()
	}
	b.WriteString("H=")
	b.WriteString(strings.Join(events, ";"))
	return b.String()
}

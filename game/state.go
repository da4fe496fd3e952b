package game

import (
	"encoding/binary"
	"hash/fnv"

	"golang.org/x/exp/rand"
)

type PendingKind uint8

const (
	PendingNone  PendingKind = iota
	PendingGo                // Mover must choose to go or stop
	PendingMatch             // Mover must choose which centre cards the ambiguous cards capture
)

func (k PendingKind) String() string {
	switch k {
	case PendingGo:
		return "go"
	case PendingMatch:
		return "match"
	default:
		return "none"
	}
}

// MatchChoice is an ambiguous card sitting in the centre next to two cards of its month.
type MatchChoice struct {
	Source     Card
	Candidates [2]Card
}

// Pending is the single outstanding decision of the mover. Choices is only set for PendingMatch.
type Pending struct {
	Kind    PendingKind
	Choices []MatchChoice
}

func (p Pending) Key() string {
	key := p.Kind.String()
	for _, c := range p.Choices {
		key += "|" + c.Source.String() + ">" + c.Candidates[0].String() + "," + c.Candidates[1].String()
	}
	return key
}

// GameState represents one hand of play. Apply never mutates a state; it returns a new one.
type GameState struct {
	Hands       [2]CardGroup
	Captured    [2]CardGroup
	Center      [NumMonths + 1]CardGroup // Indexed by month, index 0 unused
	Deck        Deck
	Turn        Player
	GoCount     [2]int
	DoubleCount [2]int // Times the player stacked a month in the centre (ppeok)
	Score       [2]int // Score as of the last settlement
	GoScore     [2]int // Score when the player last declared go
	Pending     Pending
	Terminal    bool
	Won         Player // NoPlayer for a drawn hand
	History     []Event
}

// NewGame deals a fresh hand, redealing while a hand or the centre holds a whole month.
func NewGame(r *rand.Rand) *GameState {
	for {
		deck := NewDeck()
		deck.Shuffle(r)
		hand1, hand2, center := deck.Deal()
		if hand1.hasFourOfMonth() || hand2.hasFourOfMonth() || center.hasFourOfMonth() {
			continue
		}
		return newState(hand1, hand2, center, deck)
	}
}

func newState(hand1, hand2, center CardGroup, deck Deck) *GameState {
	gs := &GameState{
		Hands: [2]CardGroup{hand1, hand2},
		Deck:  deck,
		Turn:  Player1,
	}
	for _, c := range center {
		gs.Center[c.Month] = gs.Center[c.Month].Append(c)
	}
	return gs
}

func (gs *GameState) Copy() *GameState {
	next := *gs
	for i := range gs.Hands {
		next.Hands[i] = gs.Hands[i].Clone()
		next.Captured[i] = gs.Captured[i].Clone()
	}
	for m := range gs.Center {
		next.Center[m] = gs.Center[m].Clone()
	}
	next.Deck = Deck{Cards: gs.Deck.Cards.Clone()}

	if gs.Pending.Choices != nil {
		next.Pending.Choices = make([]MatchChoice, len(gs.Pending.Choices))
		copy(next.Pending.Choices, gs.Pending.Choices)
	}

	next.History = make([]Event, len(gs.History), len(gs.History)+2)
	copy(next.History, gs.History)
	return &next
}

// Player returns the player to move.
func (gs *GameState) Player() Player {
	return gs.Turn
}

func (gs *GameState) NextPlayer() Player {
	return gs.Turn.Opponent()
}

// Winner returns NoPlayer while the hand is running or when it ended in a draw.
func (gs *GameState) Winner() Player {
	return gs.Won
}

// CenterCards returns every face-up card, sorted.
func (gs *GameState) CenterCards() CardGroup {
	var cards CardGroup
	for m := 1; m <= NumMonths; m++ {
		cards = append(cards, gs.Center[m]...)
	}
	return cards.Sorted()
}

func (gs *GameState) centerEmpty() bool {
	for m := 1; m <= NumMonths; m++ {
		if len(gs.Center[m]) > 0 {
			return false
		}
	}
	return true
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	write := func(v int64) {
		binary.Write(hasher, binary.LittleEndian, v)
	}
	writeCards := func(cards CardGroup) {
		write(int64(len(cards)))
		for _, c := range cards {
			write(int64(c.ID()))
		}
	}

	write(int64(gs.Turn))
	for i := 0; i < 2; i++ {
		writeCards(gs.Hands[i])
		writeCards(gs.Captured[i])
		write(int64(gs.GoCount[i]))
		write(int64(gs.DoubleCount[i]))
		write(int64(gs.GoScore[i]))
	}
	for m := 1; m <= NumMonths; m++ {
		writeCards(gs.Center[m])
	}
	writeCards(gs.Deck.Cards)

	write(int64(gs.Pending.Kind))
	for _, c := range gs.Pending.Choices {
		write(int64(c.Source.ID()))
		write(int64(c.Candidates[0].ID()))
		write(int64(c.Candidates[1].ID()))
	}
	if gs.Terminal {
		write(1)
	} else {
		write(0)
	}
	write(int64(gs.Won))

	return StateHash(hasher.Sum64())
}

package game

import "fmt"

type ActionKind uint8

const (
	ThrowAction ActionKind = iota
	GoAction
	SelectMatchAction
	SelectMatchesAction
)

// Pick pairs an ambiguous card with the centre card it captures.
type Pick struct {
	Source Card
	Target Card
}

// Action is comparable so it can key policies and be checked against LegalActions.
type Action struct {
	Kind   ActionKind
	Card   Card    // ThrowAction
	Option bool    // GoAction: true to go, false to stop
	Picks  [2]Pick // SelectMatchAction uses Picks[0], SelectMatchesAction uses both
}

func Throw(card Card) Action {
	return Action{Kind: ThrowAction, Card: card}
}

func Go(option bool) Action {
	return Action{Kind: GoAction, Option: option}
}

func SelectMatch(pick Pick) Action {
	return Action{Kind: SelectMatchAction, Picks: [2]Pick{pick}}
}

func SelectMatches(first, second Pick) Action {
	return Action{Kind: SelectMatchesAction, Picks: [2]Pick{first, second}}
}

func (a Action) String() string {
	switch a.Kind {
	case ThrowAction:
		return "throw " + a.Card.String()
	case GoAction:
		if a.Option {
			return "go"
		}
		return "stop"
	case SelectMatchAction:
		return "match " + a.Picks[0].String()
	case SelectMatchesAction:
		return "match " + a.Picks[0].String() + " " + a.Picks[1].String()
	default:
		return fmt.Sprintf("action(%d)", a.Kind)
	}
}

func (p Pick) String() string {
	return p.Source.String() + ">" + p.Target.String()
}

type EventKind uint8

const (
	ActionEvent EventKind = iota
	FlipEvent
)

// Event is one public step of a hand: an action taken or a card flipped from the deck.
type Event struct {
	Player Player
	Kind   EventKind
	Action Action
	Card   Card // FlipEvent
}

func (e Event) String() string {
	if e.Kind == FlipEvent {
		return fmt.Sprintf("%d^%s", e.Player, e.Card)
	}
	return fmt.Sprintf("%d:%s", e.Player, e.Action)
}

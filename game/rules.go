package game

import "fmt"

// LegalActions returns the actions available to the mover, in a stable order.
func (gs *GameState) LegalActions() []Action {
	if gs.Terminal {
		return nil
	}

	switch gs.Pending.Kind {
	case PendingGo:
		return []Action{Go(true), Go(false)}
	case PendingMatch:
		choices := gs.Pending.Choices
		if len(choices) == 1 {
			return []Action{
				SelectMatch(Pick{Source: choices[0].Source, Target: choices[0].Candidates[0]}),
				SelectMatch(Pick{Source: choices[0].Source, Target: choices[0].Candidates[1]}),
			}
		}
		actions := make([]Action, 0, 4)
		for _, first := range choices[0].Candidates {
			for _, second := range choices[1].Candidates {
				actions = append(actions, SelectMatches(
					Pick{Source: choices[0].Source, Target: first},
					Pick{Source: choices[1].Source, Target: second},
				))
			}
		}
		return actions
	}

	hand := gs.Hands[gs.Turn.Index()].Sorted()
	actions := make([]Action, len(hand))
	for i, c := range hand {
		actions[i] = Throw(c)
	}
	return actions
}

func (gs *GameState) IsLegal(action Action) bool {
	for _, legal := range gs.LegalActions() {
		if legal == action {
			return true
		}
	}
	return false
}

// Apply returns the state reached by playing action. The receiver is left untouched.
func (gs *GameState) Apply(action Action) (*GameState, error) {
	if gs.Terminal {
		return nil, fmt.Errorf("%w: %s after the hand is over", ErrIllegalAction, action)
	}
	if !gs.IsLegal(action) {
		return nil, fmt.Errorf("%w: %s by %s", ErrIllegalAction, action, gs.Turn)
	}

	next := gs.Copy()
	next.History = append(next.History, Event{Player: gs.Turn, Kind: ActionEvent, Action: action})

	var err error
	switch action.Kind {
	case ThrowAction:
		err = next.throw(action.Card)
	case GoAction:
		next.declare(action.Option)
	case SelectMatchAction:
		err = next.selectMatches(action.Picks[:1])
	case SelectMatchesAction:
		err = next.selectMatches(action.Picks[:])
	default:
		panic("Unknown action kind")
	}
	if err != nil {
		return nil, err
	}

	if err := next.checkInvariants(); err != nil {
		return nil, err
	}
	return next, nil
}

// throw plays a card from the mover's hand, flips the top of the deck and resolves captures.
func (gs *GameState) throw(card Card) error {
	mover := gs.Turn
	i := mover.Index()

	hand, err := gs.Hands[i].Remove(card)
	if err != nil {
		return fmt.Errorf("%w: throw: %w", ErrInvariantViolation, err)
	}
	gs.Hands[i] = hand
	gs.Center[card.Month] = gs.Center[card.Month].Append(card)

	tokens := 0
	thrown := &card
	if len(gs.Center[card.Month]) == 4 {
		// Sweep: the thrown card completes the month
		gs.capture(mover, gs.Center[card.Month]...)
		gs.Center[card.Month] = nil
		tokens++
		thrown = nil
	}

	flipTokens, choices := gs.flip(mover, thrown)
	tokens += flipTokens

	if gs.centerEmpty() && len(gs.Hands[i]) > 0 {
		tokens++
	}
	if err = gs.stealJunk(mover, tokens); err != nil {
		return err
	}

	if len(choices) > 0 {
		gs.Pending = Pending{Kind: PendingMatch, Choices: choices}
		return nil
	}
	gs.settleTurn()
	return nil
}

// flip turns the top deck card and resolves it together with the thrown card, if any is
// still in the centre. It returns the bonus tokens earned and the ambiguities to resolve,
// thrown card first.
func (gs *GameState) flip(mover Player, thrown *Card) (int, []MatchChoice) {
	i := mover.Index()
	tokens := 0
	var choices []MatchChoice

	flipped, ok := gs.Deck.Flip()
	if ok {
		gs.History = append(gs.History, Event{Player: mover, Kind: FlipEvent, Card: flipped})
	}

	if thrown != nil {
		month := thrown.Month
		group := gs.Center[month] // includes the thrown card

		if ok && flipped.Month == month {
			switch len(group) {
			case 3:
				gs.capture(mover, append(group.Clone(), flipped)...)
				gs.Center[month] = nil
				tokens++
			case 2:
				// Ppeok: the flip stacks on the pair and all three stay
				gs.DoubleCount[i]++
				gs.Center[month] = group.Append(flipped)
			case 1:
				// Ghost: the flip catches the card just thrown
				gs.capture(mover, *thrown, flipped)
				gs.Center[month] = nil
				tokens++
			}
			return tokens, nil
		}

		switch len(group) {
		case 2:
			gs.capture(mover, group...)
			gs.Center[month] = nil
		case 3:
			choices = append(choices, MatchChoice{Source: *thrown, Candidates: candidates(group, *thrown)})
		}
	}

	if !ok {
		return tokens, choices
	}

	month := flipped.Month
	group := gs.Center[month]
	switch len(group) {
	case 3:
		gs.capture(mover, append(group.Clone(), flipped)...)
		gs.Center[month] = nil
		tokens++
	case 2:
		gs.Center[month] = group.Append(flipped)
		choices = append(choices, MatchChoice{Source: flipped, Candidates: candidates(gs.Center[month], flipped)})
	case 1:
		gs.capture(mover, group[0], flipped)
		gs.Center[month] = nil
	default:
		gs.Center[month] = group.Append(flipped)
	}
	return tokens, choices
}

// candidates returns the two cards of group other than source, sorted.
func candidates(group CardGroup, source Card) [2]Card {
	var out [2]Card
	n := 0
	for _, c := range group.Sorted() {
		if c != source && n < 2 {
			out[n] = c
			n++
		}
	}
	return out
}

func (gs *GameState) capture(p Player, cards ...Card) {
	i := p.Index()
	gs.Captured[i] = gs.Captured[i].Append(cards...)
}

// stealJunk moves one junk per token from the opponent's pile, single junk before double.
func (gs *GameState) stealJunk(mover Player, tokens int) error {
	to := mover.Index()
	from := mover.Opponent().Index()
	for ; tokens > 0; tokens-- {
		victim, ok := stealable(gs.Captured[from])
		if !ok {
			return nil
		}
		pile, err := gs.Captured[from].Remove(victim)
		if err != nil {
			return fmt.Errorf("%w: steal: %w", ErrInvariantViolation, err)
		}
		gs.Captured[from] = pile
		gs.Captured[to] = gs.Captured[to].Append(victim)
	}
	return nil
}

func stealable(pile CardGroup) (Card, bool) {
	var double *Card
	for _, c := range pile.Sorted() {
		if c.Category != Junk {
			continue
		}
		if !c.Double {
			return c, true
		}
		if double == nil {
			c := c
			double = &c
		}
	}
	if double != nil {
		return *double, true
	}
	return Card{}, false
}

func (gs *GameState) selectMatches(picks []Pick) error {
	mover := gs.Turn
	for _, pick := range picks {
		month := pick.Source.Month
		group, err := gs.Center[month].Remove(pick.Source)
		if err != nil {
			return fmt.Errorf("%w: select source: %w", ErrInvariantViolation, err)
		}
		group, err = group.Remove(pick.Target)
		if err != nil {
			return fmt.Errorf("%w: select target: %w", ErrInvariantViolation, err)
		}
		gs.Center[month] = group
		gs.capture(mover, pick.Source, pick.Target)
	}
	gs.Pending = Pending{}
	gs.settleTurn()
	return nil
}

// settleTurn rescores the board after the mover's captures and decides between ending
// the hand, asking the mover to go or stop, and passing the turn.
func (gs *GameState) settleTurn() {
	mover := gs.Turn
	i := mover.Index()
	gs.updateScores()
	score := gs.Score[i]
	handEmpty := len(gs.Hands[i]) == 0

	if gs.GoCount[i] == 0 {
		if score >= StopThreshold {
			if gs.GoCount[mover.Opponent().Index()] > 0 || handEmpty {
				gs.finish(mover)
				return
			}
			gs.Pending = Pending{Kind: PendingGo}
			return
		}
	} else if score > gs.GoScore[i] {
		if handEmpty {
			gs.finish(mover)
			return
		}
		gs.Pending = Pending{Kind: PendingGo}
		return
	}

	gs.passTurn()
}

// declare resolves a go-or-stop decision.
func (gs *GameState) declare(goOn bool) {
	mover := gs.Turn
	i := mover.Index()
	gs.Pending = Pending{}
	gs.updateScores()

	if !goOn {
		gs.finish(mover)
		return
	}
	gs.GoCount[i]++
	gs.GoScore[i] = gs.Score[i]
	gs.passTurn()
}

func (gs *GameState) passTurn() {
	gs.Turn = gs.Turn.Opponent()
	if gs.Deck.Len() == 0 || len(gs.Hands[gs.Turn.Index()]) == 0 {
		// Exhausted without a stop: drawn hand
		gs.Terminal = true
		gs.Won = NoPlayer
	}
}

func (gs *GameState) finish(winner Player) {
	gs.Pending = Pending{}
	gs.Terminal = true
	gs.Won = winner
}

func (gs *GameState) updateScores() {
	for i := range gs.Captured {
		gs.Score[i] = Score(gs.Captured[i])
	}
}

package game

import "fmt"

// checkInvariants verifies card conservation across all zones and the shape of the
// pending decision.
func (gs *GameState) checkInvariants() error {
	var seen [DeckSize]bool
	total := 0
	visit := func(zone string, cards CardGroup) error {
		for _, c := range cards {
			id := c.ID()
			if id < 0 {
				return fmt.Errorf("%w: unknown card %+v in %s", ErrInvariantViolation, c, zone)
			}
			if seen[id] {
				return fmt.Errorf("%w: %s duplicated in %s", ErrInvariantViolation, c, zone)
			}
			seen[id] = true
			total++
		}
		return nil
	}

	for i := 0; i < 2; i++ {
		if err := visit(fmt.Sprintf("hand %d", i+1), gs.Hands[i]); err != nil {
			return err
		}
		if err := visit(fmt.Sprintf("captures %d", i+1), gs.Captured[i]); err != nil {
			return err
		}
	}
	for m := 1; m <= NumMonths; m++ {
		for _, c := range gs.Center[m] {
			if c.Month != Month(m) {
				return fmt.Errorf("%w: %s in centre group %d", ErrInvariantViolation, c, m)
			}
		}
		if err := visit("centre", gs.Center[m]); err != nil {
			return err
		}
	}
	if len(gs.Center[0]) > 0 {
		return fmt.Errorf("%w: cards in centre group 0", ErrInvariantViolation)
	}
	if err := visit("deck", gs.Deck.Cards); err != nil {
		return err
	}
	if total != DeckSize {
		return fmt.Errorf("%w: %d cards in play, want %d", ErrInvariantViolation, total, DeckSize)
	}

	return gs.checkPending()
}

func (gs *GameState) checkPending() error {
	p := gs.Pending
	if gs.Terminal && p.Kind != PendingNone {
		return fmt.Errorf("%w: terminal state with %s pending", ErrInvariantViolation, p.Kind)
	}
	if p.Kind != PendingMatch {
		if len(p.Choices) > 0 {
			return fmt.Errorf("%w: match choices without match pending", ErrInvariantViolation)
		}
		return nil
	}

	if len(p.Choices) != 1 && len(p.Choices) != 2 {
		return fmt.Errorf("%w: %d match choices", ErrInvariantViolation, len(p.Choices))
	}
	for _, choice := range p.Choices {
		group := gs.Center[choice.Source.Month]
		if len(group) != 3 {
			return fmt.Errorf("%w: ambiguous month %d holds %d cards", ErrInvariantViolation, choice.Source.Month, len(group))
		}
		cards := []Card{choice.Source, choice.Candidates[0], choice.Candidates[1]}
		for j, c := range cards {
			if !group.Contains(c) {
				return fmt.Errorf("%w: match card %s not in centre", ErrInvariantViolation, c)
			}
			for _, other := range cards[:j] {
				if other == c {
					return fmt.Errorf("%w: match card %s repeated", ErrInvariantViolation, c)
				}
			}
		}
	}
	if len(p.Choices) == 2 && p.Choices[0].Source.Month == p.Choices[1].Source.Month {
		return fmt.Errorf("%w: both match choices in month %d", ErrInvariantViolation, p.Choices[0].Source.Month)
	}
	return nil
}

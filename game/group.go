package game

import (
	"fmt"
	"sort"
	"strings"
)

// CardGroup is an ordered collection of distinct cards.
type CardGroup []Card

func (g CardGroup) Clone() CardGroup {
	if g == nil {
		return nil
	}
	clone := make(CardGroup, len(g))
	copy(clone, g)
	return clone
}

func (g CardGroup) Contains(card Card) bool {
	for _, c := range g {
		if c == card {
			return true
		}
	}
	return false
}

// Append returns the group with the cards added at the end.
func (g CardGroup) Append(cards ...Card) CardGroup {
	return append(g, cards...)
}

// Remove returns the group without card, failing if the card is absent.
func (g CardGroup) Remove(card Card) (CardGroup, error) {
	for i, c := range g {
		if c == card {
			rest := make(CardGroup, 0, len(g)-1)
			rest = append(rest, g[:i]...)
			return append(rest, g[i+1:]...), nil
		}
	}
	return g, fmt.Errorf("%w: %s", ErrCardNotFound, card)
}

func (g CardGroup) OfMonth(month Month) CardGroup {
	var matched CardGroup
	for _, c := range g {
		if c.Month == month {
			matched = append(matched, c)
		}
	}
	return matched
}

// Count returns how many cards satisfy the predicate.
func (g CardGroup) Count(predicate func(Card) bool) int {
	n := 0
	for _, c := range g {
		if predicate(c) {
			n++
		}
	}
	return n
}

// Sorted returns a sorted copy of the group.
func (g CardGroup) Sorted() CardGroup {
	sorted := g.Clone()
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Less(sorted[j])
	})
	return sorted
}

// Key is the canonical encoding of the group, independent of card order.
func (g CardGroup) Key() string {
	return strings.Join(EncodeCards(g), ",")
}

func (g CardGroup) String() string {
	return "[" + strings.Join(EncodeCards(g), " ") + "]"
}

// hasFourOfMonth reports whether any month appears four times in the group.
func (g CardGroup) hasFourOfMonth() bool {
	var counts [NumMonths + 1]int
	for _, c := range g {
		counts[c.Month]++
		if counts[c.Month] == 4 {
			return true
		}
	}
	return false
}

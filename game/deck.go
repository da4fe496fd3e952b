package game

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/rand"
)

// Deck holds the face-down cards; the top of the deck is index 0.
type Deck struct {
	Cards CardGroup
}

// NewDeck returns the full deck in canonical order.
func NewDeck() Deck {
	return Deck{Cards: FullDeck()}
}

func (d *Deck) Len() int {
	return len(d.Cards)
}

func (d *Deck) Shuffle(r *rand.Rand) {
	r.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Flip pops the top card. ok is false when the deck is empty.
func (d *Deck) Flip() (card Card, ok bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}
	card = d.Cards[0]
	d.Cards = d.Cards[1:]
	return card, true
}

// Deal takes two hands and the centre row off the top of the deck.
func (d *Deck) Deal() (hand1, hand2, center CardGroup) {
	return d.DealSizes(HandSize, HandSize, CenterSize)
}

func (d *Deck) DealSizes(size1, size2, sizeCenter int) (hand1, hand2, center CardGroup) {
	if size1+size2+sizeCenter > len(d.Cards) {
		panic(fmt.Sprintf("cannot deal %d cards from a deck of %d", size1+size2+sizeCenter, len(d.Cards)))
	}
	hand1 = d.Cards[:size1].Sorted()
	hand2 = d.Cards[size1 : size1+size2].Sorted()
	center = d.Cards[size1+size2 : size1+size2+sizeCenter].Sorted()
	d.Cards = d.Cards[size1+size2+sizeCenter:].Clone()
	return hand1, hand2, center
}

// EncodeCards returns the sorted token list of the cards, e.g. B01 A02 R03 J0110 S09.
func EncodeCards(cards CardGroup) []string {
	sorted := cards.Sorted()
	tokens := make([]string, len(sorted))
	for i, c := range sorted {
		tokens[i] = c.String()
	}
	return tokens
}

// DecodeCards parses tokens produced by EncodeCards. The result is sorted.
func DecodeCards(tokens []string) (CardGroup, error) {
	cards := make(CardGroup, 0, len(tokens))
	for _, token := range tokens {
		card, err := decodeCard(token)
		if err != nil {
			return nil, err
		}
		if cards.Contains(card) {
			return nil, fmt.Errorf("%w: duplicate %q", ErrInvalidToken, token)
		}
		cards = append(cards, card)
	}
	return cards.Sorted(), nil
}

func decodeCard(token string) (Card, error) {
	if len(token) != 3 && len(token) != 5 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	month, err := strconv.Atoi(token[1:3])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}

	var card Card
	switch {
	case token[0] == 'B' && len(token) == 3:
		card = Card{Month: Month(month), Category: Bright}
	case token[0] == 'A' && len(token) == 3:
		card = Card{Month: Month(month), Category: Animal}
	case token[0] == 'R' && len(token) == 3:
		card = Card{Month: Month(month), Category: Ribbon}
	case token[0] == 'S' && len(token) == 3:
		card = Card{Month: Month(month), Category: Wild, Double: true}
	case token[0] == 'J' && len(token) == 5:
		card = Card{Month: Month(month), Category: Junk, Index: token[3] - '0', Double: token[4] == '1'}
	default:
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}

	if card.ID() < 0 {
		return Card{}, fmt.Errorf("%w: %q is not in the deck", ErrInvalidToken, token)
	}
	return card, nil
}

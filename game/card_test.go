package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestFullDeck(t *testing.T) {
	deck := FullDeck()

	t.Run("has 48 distinct cards with stable ids", func(t *testing.T) {
		require.Len(t, deck, DeckSize)
		for i, c := range deck {
			require.Equal(t, i, c.ID(), "Card %s should sit at its id", c)
			got, ok := CardByID(i)
			require.True(t, ok)
			require.Equal(t, c, got)
		}
		require.Equal(t, deck, deck.Sorted(), "Canonical order should be sorted")
	})

	t.Run("has four cards per month", func(t *testing.T) {
		for m := Month(1); m <= NumMonths; m++ {
			require.Len(t, deck.OfMonth(m), 4, "Month %d", m)
		}
	})

	t.Run("category composition", func(t *testing.T) {
		count := func(category Category) int {
			return deck.Count(func(c Card) bool { return c.Category == category })
		}
		require.Equal(t, 5, count(Bright))
		require.Equal(t, 8, count(Animal))
		require.Equal(t, 10, count(Ribbon))
		require.Equal(t, 24, count(Junk))
		require.Equal(t, 1, count(Wild))
		require.Equal(t, 2, deck.Count(func(c Card) bool { return c.Category == Junk && c.Double }))
	})

	t.Run("ribbon colours form three triads", func(t *testing.T) {
		for _, color := range []RibbonColor{Red, Plant, Blue} {
			require.Equal(t, 3, deck.Count(func(c Card) bool { return c.Color() == color }), "%s ribbons", color)
		}
	})

	t.Run("unknown cards have no id", func(t *testing.T) {
		require.Equal(t, -1, Card{Month: 9, Category: Bright}.ID())
		_, ok := CardByID(DeckSize)
		require.False(t, ok)
	})
}

func TestCardGroup(t *testing.T) {
	a, b, c := card(t, "B01"), card(t, "R01"), card(t, "J0200")

	t.Run("remove fails when the card is absent", func(t *testing.T) {
		group := CardGroup{a, b}
		_, err := group.Remove(c)
		require.ErrorIs(t, err, ErrCardNotFound)

		rest, err := group.Remove(a)
		require.NoError(t, err)
		require.Equal(t, CardGroup{b}, rest)
		require.Equal(t, CardGroup{a, b}, group, "Remove should not modify the receiver")
	})

	t.Run("key ignores order", func(t *testing.T) {
		require.Equal(t, CardGroup{a, b, c}.Key(), CardGroup{c, a, b}.Key())
		require.NotEqual(t, CardGroup{a, b}.Key(), CardGroup{a, c}.Key())
	})

	t.Run("of month", func(t *testing.T) {
		require.Equal(t, CardGroup{a, b}, CardGroup{a, c, b}.OfMonth(1))
		require.Empty(t, CardGroup{a, b}.OfMonth(5))
	})
}

func TestCardCodec(t *testing.T) {
	t.Run("tokens", func(t *testing.T) {
		require.Equal(t, "B01", card(t, "B01").String())
		require.Equal(t, "J1121", Card{Month: 11, Category: Junk, Index: 2, Double: true}.String())
		require.Equal(t, "S09", wildCard.String())
	})

	t.Run("round trip", func(t *testing.T) {
		deck := NewDeck()
		deck.Shuffle(rand.New(rand.NewSource(3)))
		hand := deck.Cards[:17]

		tokens := EncodeCards(hand)
		decoded, err := DecodeCards(tokens)
		require.NoError(t, err)
		require.Equal(t, hand.Sorted(), decoded)
		require.Equal(t, tokens, EncodeCards(decoded))
	})

	t.Run("rejects unknown tokens", func(t *testing.T) {
		for _, token := range []string{"", "X01", "B02", "J0130", "S01", "B1", "J01000"} {
			_, err := DecodeCards([]string{token})
			require.ErrorIs(t, err, ErrInvalidToken, "Token %q", token)
		}
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := DecodeCards([]string{"B01", "B01"})
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestDeck(t *testing.T) {
	t.Run("flip pops the top until empty", func(t *testing.T) {
		deck := Deck{Cards: CardGroup{card(t, "B01"), card(t, "A02")}}

		first, ok := deck.Flip()
		require.True(t, ok)
		require.Equal(t, card(t, "B01"), first)

		_, ok = deck.Flip()
		require.True(t, ok)

		_, ok = deck.Flip()
		require.False(t, ok, "Flipping an empty deck is a no-op")
		require.Zero(t, deck.Len())
	})

	t.Run("deal sizes", func(t *testing.T) {
		deck := NewDeck()
		hand1, hand2, center := deck.Deal()
		require.Len(t, hand1, HandSize)
		require.Len(t, hand2, HandSize)
		require.Len(t, center, CenterSize)
		require.Equal(t, 20, deck.Len())
	})
}

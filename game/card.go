package game

import "fmt"

type Month uint8

type Category uint8

const (
	Junk Category = iota
	Ribbon
	Animal
	Bright
	Wild // Month 9 card, scored as either an animal or a double junk
)

func (c Category) String() string {
	switch c {
	case Junk:
		return "junk"
	case Ribbon:
		return "ribbon"
	case Animal:
		return "animal"
	case Bright:
		return "bright"
	case Wild:
		return "wild"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

type RibbonColor uint8

const (
	NoColor RibbonColor = iota
	Red
	Plant
	Blue
)

func (c RibbonColor) String() string {
	switch c {
	case Red:
		return "red"
	case Plant:
		return "plant"
	case Blue:
		return "blue"
	default:
		return "none"
	}
}

const (
	December  Month = 12
	WildMonth Month = 9
)

var (
	brightMonths = []Month{1, 3, 8, 11, 12}
	animalMonths = []Month{2, 4, 5, 6, 7, 8, 10, 12}
	ribbonMonths = []Month{1, 2, 3, 4, 5, 6, 7, 9, 10, 12}
	godoriMonths = []Month{2, 4, 8}
)

// Card is an immutable value; two cards are equal when month, category and index match.
type Card struct {
	Month    Month
	Category Category
	Index    uint8
	Double   bool // Worth two junk when counted as junk
}

// Color returns the ribbon colour of the card, or NoColor for anything but a ribbon.
func (c Card) Color() RibbonColor {
	if c.Category != Ribbon {
		return NoColor
	}
	switch c.Month {
	case 1, 2, 3:
		return Red
	case 4, 5, 7:
		return Plant
	case 6, 9, 10:
		return Blue
	default:
		return NoColor
	}
}

// ID returns the position of the card in the canonical deck, or -1 for a card not in the deck.
func (c Card) ID() int {
	id, ok := cardIDs[c]
	if !ok {
		return -1
	}
	return id
}

// Less orders cards by month, then category, then index.
func (c Card) Less(other Card) bool {
	if c.Month != other.Month {
		return c.Month < other.Month
	}
	if c.Category != other.Category {
		return c.Category < other.Category
	}
	return c.Index < other.Index
}

func (c Card) String() string {
	switch c.Category {
	case Bright:
		return fmt.Sprintf("B%02d", c.Month)
	case Animal:
		return fmt.Sprintf("A%02d", c.Month)
	case Ribbon:
		return fmt.Sprintf("R%02d", c.Month)
	case Wild:
		return fmt.Sprintf("S%02d", c.Month)
	default:
		double := 0
		if c.Double {
			double = 1
		}
		return fmt.Sprintf("J%02d%d%d", c.Month, c.Index, double)
	}
}

var (
	canonicalDeck = buildDeck()
	cardIDs       = indexDeck(canonicalDeck)
)

func buildDeck() CardGroup {
	cards := CardGroup{}
	for _, m := range brightMonths {
		cards = append(cards, Card{Month: m, Category: Bright})
	}
	for _, m := range animalMonths {
		cards = append(cards, Card{Month: m, Category: Animal})
	}
	for _, m := range ribbonMonths {
		cards = append(cards, Card{Month: m, Category: Ribbon})
	}
	for m := Month(1); m <= 10; m++ {
		cards = append(cards, Card{Month: m, Category: Junk, Index: 0}, Card{Month: m, Category: Junk, Index: 1})
	}
	cards = append(cards,
		Card{Month: 11, Category: Junk, Index: 0},
		Card{Month: 11, Category: Junk, Index: 1},
		Card{Month: 11, Category: Junk, Index: 2, Double: true},
		Card{Month: December, Category: Junk, Index: 0, Double: true},
		Card{Month: WildMonth, Category: Wild, Double: true},
	)
	return cards.Sorted()
}

func indexDeck(cards CardGroup) map[Card]int {
	ids := make(map[Card]int, len(cards))
	for i, c := range cards {
		ids[c] = i
	}
	return ids
}

// FullDeck returns the 48 cards in canonical order.
func FullDeck() CardGroup {
	return canonicalDeck.Clone()
}

// CardByID returns the card at the given canonical position.
func CardByID(id int) (Card, bool) {
	if id < 0 || id >= len(canonicalDeck) {
		return Card{}, false
	}
	return canonicalDeck[id], true
}

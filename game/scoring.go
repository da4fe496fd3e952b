package game

// Breakdown is the score of a capture pile per category.
type Breakdown struct {
	Bright, Animal, Ribbon, Junk int

	BrightCards int
	AnimalCards int
	RibbonCards int
	JunkEquiv   int  // Junk cards, doubles counting twice
	WildAsJunk  bool // How the wild card was counted, if held
}

func (b Breakdown) Total() int {
	return b.Bright + b.Animal + b.Ribbon + b.Junk
}

// Score returns the points of a capture pile.
func Score(pile CardGroup) int {
	return ScoreBreakdown(pile).Total()
}

// ScoreBreakdown scores the pile, counting a held wild card whichever way scores more.
func ScoreBreakdown(pile CardGroup) Breakdown {
	if !pile.Contains(wildCard) {
		return tally(pile, false)
	}
	animal := tally(pile, false)
	junk := tally(pile, true)
	if junk.Total() < animal.Total() {
		return animal
	}
	return junk
}

var wildCard = Card{Month: WildMonth, Category: Wild, Double: true}

func tally(pile CardGroup, wildAsJunk bool) Breakdown {
	b := Breakdown{WildAsJunk: wildAsJunk && pile.Contains(wildCard)}
	hasDecemberBright := false
	var animalMonth [NumMonths + 1]bool
	var colors [4]int

	for _, c := range pile {
		category := c.Category
		if category == Wild {
			category = Animal
			if wildAsJunk {
				category = Junk
			}
		}

		switch category {
		case Bright:
			b.BrightCards++
			if c.Month == December {
				hasDecemberBright = true
			}
		case Animal:
			b.AnimalCards++
			animalMonth[c.Month] = true
		case Ribbon:
			b.RibbonCards++
			colors[c.Color()]++
		case Junk:
			b.JunkEquiv++
			if c.Double {
				b.JunkEquiv++
			}
		}
	}

	switch {
	case b.BrightCards < 3:
		b.Bright = 0
	case b.BrightCards == 3 && hasDecemberBright:
		b.Bright = 2
	case b.BrightCards == 5:
		b.Bright = 15
	default:
		b.Bright = b.BrightCards
	}

	b.Animal = max(0, b.AnimalCards-4)
	godori := true
	for _, m := range godoriMonths {
		godori = godori && animalMonth[m]
	}
	if godori {
		b.Animal += 5
	}

	b.Ribbon = max(0, b.RibbonCards-4)
	for _, color := range []RibbonColor{Red, Plant, Blue} {
		if colors[color] == 3 {
			b.Ribbon += 3
		}
	}

	b.Junk = max(0, b.JunkEquiv-9)
	return b
}

// Winnings settles a finished hand: the winner's score adjusted for goes, doubled for
// pi-bak and for gwang-bak. The loser receives the negation. A drawn or running hand
// settles to zero.
func Winnings(gs *GameState) [2]int {
	var result [2]int
	if !gs.Terminal || gs.Won == NoPlayer {
		return result
	}
	w := gs.Won.Index()
	l := gs.Won.Opponent().Index()
	winner := ScoreBreakdown(gs.Captured[w])
	loser := ScoreBreakdown(gs.Captured[l])

	amount := winner.Total()
	goes := gs.GoCount[w]
	if goes < 3 {
		amount += goes
	} else {
		amount *= 1 << (goes - 2)
	}

	// Pi-bak
	if winner.Junk > 0 && loser.JunkEquiv < 6 {
		amount *= 2
	}
	// Gwang-bak
	if winner.Bright > 0 && loser.BrightCards == 0 {
		amount *= 2
	}

	result[w] = amount
	result[l] = -amount
	return result
}

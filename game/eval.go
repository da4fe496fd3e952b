package game

// EvaluateScore compares the two players' current scores to produce a score between -1 and 1
// from p's perspective. A finished hand evaluates to its settlement sign.
func EvaluateScore(gs *GameState, p Player) float64 {
	if gs.Terminal {
		return terminalValue(gs, p)
	}
	i, o := p.Index(), p.Opponent().Index()
	return normalize(float64(Score(gs.Captured[i])), float64(Score(gs.Captured[o])))
}

// EvaluateMaterial weighs captured cards by how close each category is to scoring, in addition
// to the current score, to produce a score between -1 and 1 from p's perspective
func EvaluateMaterial(gs *GameState, p Player) float64 {
	if gs.Terminal {
		return terminalValue(gs, p)
	}
	i, o := p.Index(), p.Opponent().Index()
	mine := material(gs.Captured[i])
	theirs := material(gs.Captured[o])
	return (EvaluateScore(gs, p) + normalize(mine, theirs)) / 2
}

func material(pile CardGroup) float64 {
	b := ScoreBreakdown(pile)
	// Progress towards each category's first point
	value := float64(b.BrightCards)/3 + float64(b.AnimalCards)/5 + float64(b.RibbonCards)/5 + float64(b.JunkEquiv)/10
	return value + float64(b.Total())
}

func terminalValue(gs *GameState, p Player) float64 {
	switch gs.Won {
	case NoPlayer:
		return 0
	case p:
		return 1
	default:
		return -1
	}
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}

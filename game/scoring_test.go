package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func pile(t *testing.T, tokens ...string) CardGroup {
	t.Helper()
	cards, err := DecodeCards(tokens)
	require.NoError(t, err)
	return cards
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		pile  []string
		score int
	}{
		{"empty pile", nil, 0},
		{"two brights", []string{"B01", "B03"}, 0},
		{"three brights without December", []string{"B01", "B03", "B08"}, 3},
		{"three brights with December", []string{"B01", "B03", "B12"}, 2},
		{"four brights", []string{"B01", "B03", "B08", "B12"}, 4},
		{"five brights", []string{"B01", "B03", "B08", "B11", "B12"}, 15},
		{"five brights regardless of other cards", []string{"B01", "B03", "B08", "B11", "B12", "A10", "R10"}, 15},
		{"four animals", []string{"A05", "A06", "A07", "A10"}, 0},
		{"five animals", []string{"A05", "A06", "A07", "A10", "A12"}, 1},
		{"godori", []string{"A02", "A04", "A08"}, 5},
		{"red ribbons", []string{"R01", "R02", "R03"}, 3},
		{"plant and blue ribbons", []string{"R04", "R05", "R07", "R06", "R09", "R10"}, 2 + 3 + 3},
		{"December ribbon completes nothing", []string{"R01", "R02", "R12"}, 0},
		{"nine junk", []string{"J0100", "J0110", "J0200", "J0210", "J0300", "J0310", "J0400", "J0410", "J0500"}, 0},
		{"ten junk", []string{"J0100", "J0110", "J0200", "J0210", "J0300", "J0310", "J0400", "J0410", "J0500", "J0510"}, 1},
		{"doubles count twice", []string{"J0100", "J0110", "J0200", "J0210", "J0300", "J0310", "J0400", "J1121", "J1201"}, 2},
		{"wild scored as animal", []string{"S09", "A05", "A06", "A07", "A10"}, 1},
		{"wild scored as junk", []string{"S09", "J0100", "J0110", "J0200", "J0210", "J0300", "J0310", "J0400", "J0410"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.score, Score(pile(t, tt.pile...)))
		})
	}
}

func TestScoreBreakdown(t *testing.T) {
	t.Run("three non-December brights score exactly three", func(t *testing.T) {
		b := ScoreBreakdown(pile(t, "B01", "B03", "B11", "J0100"))
		require.Equal(t, 3, b.Bright)
		require.Equal(t, 3, b.BrightCards)
	})

	t.Run("wild goes where it scores more", func(t *testing.T) {
		animal := ScoreBreakdown(pile(t, "S09", "A05", "A06", "A07", "A10"))
		require.False(t, animal.WildAsJunk)
		require.Equal(t, 5, animal.AnimalCards)

		junk := ScoreBreakdown(pile(t, "S09", "J0100", "J0110", "J0200", "J0210", "J0300", "J0310", "J0400", "J0410"))
		require.True(t, junk.WildAsJunk)
		require.Equal(t, 10, junk.JunkEquiv)
	})
}

func TestScoreMonotonic(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for round := 0; round < 200; round++ {
		deck := NewDeck()
		deck.Shuffle(r)
		var captured CardGroup
		previous := 0
		for _, c := range deck.Cards {
			captured = captured.Append(c)
			score := Score(captured)
			require.GreaterOrEqual(t, score, previous, "Adding %s to %s should not lower the score", c, captured)
			previous = score
		}
	}
}

func TestWinnings(t *testing.T) {
	// Five ribbons with the red triad: 1 + 3 points, no junk or bright points
	ribbons := []string{"R01", "R02", "R03", "R04", "R05"}
	finished := func(goCount int, winner, loser []string) *GameState {
		return &GameState{
			Captured: [2]CardGroup{pile(t, winner...), pile(t, loser...)},
			GoCount:  [2]int{goCount, 0},
			Terminal: true,
			Won:      Player1,
		}
	}

	t.Run("go count below three adds", func(t *testing.T) {
		require.Equal(t, [2]int{4, -4}, Winnings(finished(0, ribbons, nil)))
		require.Equal(t, [2]int{6, -6}, Winnings(finished(2, ribbons, nil)))
	})

	t.Run("go count of three doubles", func(t *testing.T) {
		require.Equal(t, [2]int{8, -8}, Winnings(finished(3, ribbons, nil)), "Should be 4 x 2^(3-2), not 4 + 3")
	})

	t.Run("go count of four quadruples", func(t *testing.T) {
		require.Equal(t, [2]int{16, -16}, Winnings(finished(4, ribbons, nil)))
	})

	t.Run("pi-bak doubles when the winner scores junk", func(t *testing.T) {
		winner := append([]string{"J0100", "J0110", "J0200", "J0210", "J0300", "J0310", "J0400", "J0410", "J0500", "J0510"}, ribbons...)
		require.Equal(t, [2]int{10, -10}, Winnings(finished(0, winner, []string{"J0600"})))
		require.Equal(t, [2]int{5, -5}, Winnings(finished(0, winner, []string{"J0600", "J0610", "J0700", "J0710", "J1121"})))
	})

	t.Run("pi-bak and gwang-bak quadruple together", func(t *testing.T) {
		winner := append([]string{
			"B01", "B03", "B08",
			"J0100", "J0110", "J0200", "J0210", "J0300", "J0310", "J0400", "J0410", "J0500", "J0510",
		}, ribbons...)
		// 3 + 1 + 4 = 8, doubled twice
		require.Equal(t, [2]int{32, -32}, Winnings(finished(0, winner, nil)))
		require.Equal(t, [2]int{16, -16}, Winnings(finished(0, winner, []string{"B12"})))
	})

	t.Run("second player wins", func(t *testing.T) {
		gs := finished(0, nil, ribbons)
		gs.Won = Player2
		require.Equal(t, [2]int{-4, 4}, Winnings(gs))
	})

	t.Run("drawn and running hands settle to zero", func(t *testing.T) {
		drawn := finished(0, ribbons, nil)
		drawn.Won = NoPlayer
		require.Equal(t, [2]int{0, 0}, Winnings(drawn))

		running := finished(0, ribbons, nil)
		running.Terminal = false
		require.Equal(t, [2]int{0, 0}, Winnings(running))
	})
}

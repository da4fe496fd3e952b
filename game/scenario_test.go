package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewEndgame(t *testing.T) {
	gs := NewEndgame()

	t.Run("starting position", func(t *testing.T) {
		require.NoError(t, gs.checkInvariants())
		require.Equal(t, Player1, gs.Turn)
		require.Equal(t, PendingGo, gs.Pending.Kind)
		require.Equal(t, [2]int{8, 3}, gs.Score, "Wild card counts as double junk: 14 junk plus 3 brights")
		require.Equal(t, [2]int{1, 0}, gs.GoCount)
		require.Len(t, gs.Hands[0], 2)
		require.Len(t, gs.Hands[1], 3)
		require.Len(t, gs.CenterCards(), 2)
		require.Equal(t, 5, gs.Deck.Len())
	})

	t.Run("stopping settles with one go", func(t *testing.T) {
		next := apply(t, gs, Go(false))
		require.True(t, next.Terminal)
		require.Equal(t, [2]int{9, -9}, Winnings(next), "Should be 8 points plus one go")
	})

	t.Run("every line terminates with conserved cards", func(t *testing.T) {
		var walk func(gs *GameState, depth int) int
		walk = func(gs *GameState, depth int) int {
			require.Less(t, depth, 20, "Endgame should be shallow")
			if gs.Terminal {
				w := Winnings(gs)
				require.Zero(t, w[0]+w[1])
				return 1
			}
			leaves := 0
			for _, a := range gs.LegalActions() {
				leaves += walk(apply(t, gs, a), depth+1)
			}
			return leaves
		}
		require.Greater(t, walk(gs, 0), 1)
	})
}

func TestDealerFor(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	full, err := DealerFor(FullScenario)
	require.NoError(t, err)
	require.Len(t, full(r).Hands[0], HandSize)

	endgame, err := DealerFor(EndgameScenario)
	require.NoError(t, err)
	require.Equal(t, NewEndgame().Hash(), endgame(r).Hash())

	_, err = DealerFor("tournament")
	require.Error(t, err)
}

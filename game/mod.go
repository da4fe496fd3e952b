package game

const (
	StopThreshold = 7 // Score at which a player may go or stop
	HandSize      = 10
	CenterSize    = 8
	DeckSize      = 48
	NumMonths     = 12
)

type StateHash uint64

type Player uint8

const (
	NoPlayer Player = iota
	Player1
	Player2
)

// Index maps Player1 and Player2 to 0 and 1.
func (p Player) Index() int {
	if p != Player1 && p != Player2 {
		panic("no index for NoPlayer")
	}
	return int(p) - 1
}

func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return "none"
	}
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the position is for the given player.
type Evaluate func(*GameState, Player) float64

package engine

import (
	"fmt"

	"gostop/game"
)

type Update struct {
	Player game.Player
	Action game.Action
	Hash   game.StateHash
}

// Session owns the authoritative state of one hand and only advances it with legal actions.
type Session struct {
	state   *game.GameState
	updates []Update
}

func NewSession(state *game.GameState) *Session {
	return &Session{state: state}
}

func (s *Session) Play(action game.Action) error {
	if s.state.Terminal {
		return ErrGameOver
	}
	mover := s.state.Player()
	next, err := s.state.Apply(action)
	if err != nil {
		return fmt.Errorf("player %s: %w", mover, err)
	}
	s.state = next
	s.updates = append(s.updates, Update{Player: mover, Action: action, Hash: next.Hash()})
	return nil
}

// State returns a copy of the current state.
func (s *Session) State() *game.GameState {
	return s.state.Copy()
}

// View returns what p can see of the current state.
func (s *Session) View(p game.Player) game.InfoSet {
	return s.state.View(p)
}

func (s *Session) Over() bool {
	return s.state.Terminal
}

func (s *Session) Updates() []Update {
	return s.updates
}

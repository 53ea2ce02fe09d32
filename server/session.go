package server

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"connectn/engine"
	"connectn/game"
)

var (
	ErrBusy         = errors.New("AI is thinking")
	ErrGameNotFound = errors.New("game not found")
)

// State is the view of a game sent to clients.
type State struct {
	ID        string          `json:"id"`
	Rows      int             `json:"rows"`
	Cols      int             `json:"cols"`
	WinLength int             `json:"win_length"`
	Board     []string        `json:"board"` // one string per row, '.' for empty
	Turn      string          `json:"turn"`
	Winner    string          `json:"winner"`
	Over      bool            `json:"over"`
	History   []game.Position `json:"history"`
	Score     int64           `json:"score"`
	Depth     int             `json:"depth"`
	Human     string          `json:"human"`
	Thinking  bool            `json:"thinking"`
}

// Session is one game against the AI. The board is searched in place while the AI thinks, so
// every access goes through mu, and requests that arrive meanwhile are refused with ErrBusy.
// State is answered from a snapshot taken after the last change and never waits.
type Session struct {
	ID string

	mu       sync.Mutex
	manager  *engine.Manager
	thinking atomic.Bool
	snapshot atomic.Pointer[State]
}

func newSession(id string, manager *engine.Manager) *Session {
	s := &Session{ID: id, manager: manager}
	s.takeSnapshot()
	return s
}

func (s *Session) State() State {
	state := *s.snapshot.Load()
	state.Thinking = s.thinking.Load()
	return state
}

func (s *Session) Thinking() bool {
	return s.thinking.Load()
}

func (s *Session) LegalMoves() ([]game.Position, error) {
	var moves []game.Position
	err := s.withBoard(func() error {
		moves = s.manager.LegalMoves()
		return nil
	})
	return moves, err
}

func (s *Session) Hints() ([]game.Candidate, error) {
	var candidates []game.Candidate
	err := s.withBoard(func() error {
		candidates = s.manager.Candidates()
		return nil
	})
	return candidates, err
}

func (s *Session) Play(p game.Position) (State, error) {
	return s.mutate(func() error {
		return s.manager.Play(p)
	})
}

func (s *Session) Undo() (State, error) {
	return s.mutate(func() error {
		return s.manager.Undo()
	})
}

func (s *Session) SetDepth(depth int) (State, error) {
	return s.mutate(func() error {
		return s.manager.SetDepth(depth)
	})
}

// PlayAI lets the AI make a move for the side to play. It returns false when the AI has
// nothing to play. onStart runs once the session is marked busy, before the search.
func (s *Session) PlayAI(onStart func()) (game.Position, bool, State, error) {
	if !s.thinking.CompareAndSwap(false, true) {
		return game.Position{}, false, State{}, ErrBusy
	}
	defer s.thinking.Store(false)

	if onStart != nil {
		onStart()
	}

	s.mu.Lock()
	move, ok := s.manager.PlayAI()
	state := s.takeSnapshot()
	s.mu.Unlock()

	return move, ok, state, nil
}

// withBoard runs f under mu unless the AI is thinking. The flag is checked again once mu is
// held, since PlayAI may have started while this call waited for the lock.
func (s *Session) withBoard(f func() error) error {
	if s.thinking.Load() {
		return ErrBusy
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thinking.Load() {
		return ErrBusy
	}
	return f()
}

func (s *Session) mutate(f func() error) (State, error) {
	var state State
	err := s.withBoard(func() error {
		if err := f(); err != nil {
			return err
		}
		state = s.takeSnapshot()
		return nil
	})
	return state, err
}

// takeSnapshot must be called with mu held.
func (s *Session) takeSnapshot() State {
	m := s.manager
	board := make([]string, m.Rows())
	for i := range board {
		var sb strings.Builder
		for j := 0; j < m.Cols(); j++ {
			mark := m.Occupant(game.Position{Row: i, Col: j}).String()
			if mark == "" {
				mark = "."
			}
			sb.WriteString(mark)
		}
		board[i] = sb.String()
	}

	state := State{
		ID:        s.ID,
		Rows:      m.Rows(),
		Cols:      m.Cols(),
		WinLength: m.WinLength(),
		Board:     board,
		Turn:      m.WhoseTurn().String(),
		Winner:    m.Winner().String(),
		Over:      m.IsOver(),
		History:   m.History(),
		Score:     m.Score(),
		Depth:     m.Depth(),
		Human:     m.HumanPlayer().String(),
	}
	s.snapshot.Store(&state)
	return state
}

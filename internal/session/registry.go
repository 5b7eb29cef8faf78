// Package session tracks live games by id and serves the assist layer
// (probability map + hint) for them, deduplicating concurrent
// computations over the same board state.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/anushka369/minesweeper-assist/internal/game"
	"github.com/anushka369/minesweeper-assist/internal/hint"
	"github.com/anushka369/minesweeper-assist/internal/prob"
)

type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu    sync.Mutex
	game  *game.Game
	rev   int // bumped on every mutation, keys assist deduplication
	hints int
}

// CountHint bumps the taken-hint counter without invalidating the
// cached assist: asking for a hint changes nothing on the board.
func (s *Session) CountHint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hints++
}

func (s *Session) HintsUsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hints
}

// Update runs fn with exclusive access to the game and marks the
// session state as changed.
func (s *Session) Update(fn func(g *game.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
	s.rev++
}

// View returns a frozen snapshot of the current state along with the
// revision it belongs to.
func (s *Session) View() (*game.Snapshot, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot(), s.rev
}

func (s *Session) Game(fn func(g *game.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

// Assist bundles everything the UI overlay needs for one board state.
type Assist struct {
	Probabilities prob.Map
	Suggestion    *hint.Suggestion
}

type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	assists  singleflight.Group
	solver   prob.Solver
}

func NewRegistry(solver prob.Solver) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		solver:   solver,
	}
}

func (r *Registry) Create(g *game.Game) *Session {
	return r.Adopt(uuid.New(), g)
}

// Adopt registers a game under a caller-provided id, replacing any
// session already using it. Resumed saves keep their original id.
func (r *Registry) Adopt(id uuid.UUID, g *game.Game) *Session {
	s := &Session{
		ID:        id,
		StartedAt: time.Now(),
		game:      g,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

/*
Assist computes the probability map and best suggestion for the
session's current state. Concurrent callers observing the same revision
share one computation; the engine itself is a pure function of the
snapshot, so the shared result is identical to what each caller would
have computed alone.
*/
func (r *Registry) Assist(s *Session) Assist {
	snapshot, rev := s.View()
	key := fmt.Sprintf("%s:%d", s.ID, rev)
	v, _, _ := r.assists.Do(key, func() (any, error) {
		m := r.solver.ComputeProbabilities(snapshot)
		return Assist{
			Probabilities: m,
			Suggestion:    hint.Generate(snapshot, m),
		}, nil
	})
	return v.(Assist)
}

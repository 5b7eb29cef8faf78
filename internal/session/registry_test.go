package session

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anushka369/minesweeper-assist/internal/game"
	"github.com/anushka369/minesweeper-assist/internal/prob"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(prob.Solver{})

	g, _, err := game.New(9, 9, 10, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	s := r.Create(g)

	got, ok := r.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	r.Remove(s.ID)
	_, ok = r.Get(s.ID)
	assert.False(t, ok)
}

func TestAssistMatchesDirectComputation(t *testing.T) {
	r := NewRegistry(prob.Solver{})
	g, _, err := game.New(9, 9, 10, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	s := r.Create(g)

	snapshot, _ := s.View()
	direct := prob.ComputeProbabilities(snapshot)

	a := r.Assist(s)
	assert.Equal(t, direct, a.Probabilities)
	if direct.Len() > 0 {
		assert.NotNil(t, a.Suggestion)
	}
}

func TestAssistConcurrentCallersAgree(t *testing.T) {
	r := NewRegistry(prob.Solver{})
	g, _, err := game.New(16, 16, 40, 0, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	s := r.Create(g)

	var (
		wg      sync.WaitGroup
		results = make([]Assist, 8)
	)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = r.Assist(s)
		}()
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0], results[i])
	}
}

func TestUpdateBumpsRevision(t *testing.T) {
	r := NewRegistry(prob.Solver{})
	g, _, err := game.New(9, 9, 10, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	s := r.Create(g)

	_, before := s.View()
	s.Update(func(g *game.Game) {
		g.ToggleFlag(0)
	})
	_, after := s.View()
	assert.Equal(t, before+1, after)
}

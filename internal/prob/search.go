package prob

import "math/bits"

/*
tally accumulates the result of enumerating one component. Assignment
counts are bucketed by how many mines the assignment places, because the
weight of an assignment against the rest of the board depends only on
that number.

	perMines[k]       = valid assignments placing exactly k mines
	perCell[c][k]     = valid assignments placing k mines with cell c mined
*/
type tally struct {
	perMines []float64
	perCell  [][]float64
	overrun  bool
}

// search enumerates every mine assignment of a component that satisfies
// all of its constraints. The walk is an explicit stack over the
// component's cell list with a running bitset of mined cells, so memory
// stays bounded and an overrun can abandon the component cleanly.
type search struct {
	comp   *tally
	cons   []constraint
	byCell [][]int // cell -> indices into cons

	placed   []int // mines currently assigned per constraint
	decided  []int // cells currently assigned per constraint
	minesBit uint64

	budget int
	nodes  int
}

// maxComponentCells bounds the per-assignment bitset. Components this
// large blow any reasonable node budget anyway, so they take the uniform
// fallback without starting a search.
const maxComponentCells = 64

func enumerate(comp *component, budget int) tally {
	n := len(comp.cells)
	t := tally{
		perMines: make([]float64, n+1),
		perCell:  make([][]float64, n),
	}
	for c := range t.perCell {
		t.perCell[c] = make([]float64, n+1)
	}
	if n > maxComponentCells {
		t.overrun = true
		return t
	}

	s := search{
		comp:    &t,
		cons:    comp.cons,
		byCell:  make([][]int, n),
		placed:  make([]int, len(comp.cons)),
		decided: make([]int, len(comp.cons)),
		budget:  budget,
	}
	for ci, c := range comp.cons {
		for _, cell := range c.cells {
			s.byCell[cell] = append(s.byCell[cell], ci)
		}
	}
	s.run(n)
	return t
}

func (s *search) assign(cell int, mine bool) {
	for _, ci := range s.byCell[cell] {
		s.decided[ci]++
		if mine {
			s.placed[ci]++
		}
	}
	if mine {
		s.minesBit |= 1 << cell
	}
}

func (s *search) unassign(cell int, mine bool) {
	for _, ci := range s.byCell[cell] {
		s.decided[ci]--
		if mine {
			s.placed[ci]--
		}
	}
	if mine {
		s.minesBit &^= 1 << cell
	}
}

// feasible prunes a partial assignment as soon as some constraint on the
// just-decided cell either already has too many mines or can no longer
// reach its requirement with the cells it has left.
func (s *search) feasible(cell int) bool {
	for _, ci := range s.byCell[cell] {
		var (
			c    = s.cons[ci]
			left = len(c.cells) - s.decided[ci]
		)
		if s.placed[ci] > c.mines || s.placed[ci]+left < c.mines {
			return false
		}
	}
	return true
}

func (s *search) record() {
	k := bits.OnesCount64(s.minesBit)
	s.comp.perMines[k]++
	for rest := s.minesBit; rest != 0; rest &= rest - 1 {
		s.comp.perCell[bits.TrailingZeros64(rest)][k]++
	}
}

func (s *search) run(n int) {
	var (
		tried = make([]int8, n)  // 0: nothing, 1: mine, 2: both
		val   = make([]bool, n)  // value currently assigned at depth
		depth = 0
		fresh = true // entering depth for the first time
	)
	for depth >= 0 {
		if depth == n {
			s.record()
			depth--
			fresh = false
			continue
		}
		if fresh {
			tried[depth] = 0
		} else {
			s.unassign(depth, val[depth])
		}

		var mine bool
		switch tried[depth] {
		case 0:
			mine, tried[depth] = true, 1
		case 1:
			mine, tried[depth] = false, 2
		default:
			depth--
			fresh = false
			continue
		}

		s.nodes++
		if s.nodes > s.budget {
			s.comp.overrun = true
			return
		}

		s.assign(depth, mine)
		val[depth] = mine
		if s.feasible(depth) {
			depth++
			fresh = true
		} else {
			fresh = false
		}
	}
}

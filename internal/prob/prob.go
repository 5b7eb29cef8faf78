// Package prob computes, for every unrevealed cell of a partially
// revealed minesweeper board, the probability that it hides a mine.
//
// Revealed numbered squares impose exact-count constraints over their
// hidden neighbors. The frontier is split into independent components
// connected through shared constraints, each component's consistent mine
// assignments are enumerated, and every assignment is weighted by the
// number of ways the leftover mine budget fits into the unconstrained
// interior. The result is an exact marginal per frontier cell plus one
// aggregate probability shared by all interior unknowns.
package prob

import (
	"math"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Logger exposes the package logger so callers can attach hooks or
// redirect output.
func Logger() *logrus.Logger { return log }

// DefaultBudget is the per-component backtracking node budget. Exact
// enumeration is exponential in component size in the worst case; a
// component that exhausts its budget degrades to a uniform estimate
// instead of stalling the caller.
const DefaultBudget = 1 << 22

// Solver computes probability maps. The zero value is ready to use.
type Solver struct {
	// Budget caps backtracking nodes per component. Zero means
	// [DefaultBudget].
	Budget int
}

// ComputeProbabilities runs a zero-value [Solver] over the snapshot.
func ComputeProbabilities(b Board) Map {
	return Solver{}.ComputeProbabilities(b)
}

/*
ComputeProbabilities produces the mine-probability map for one frozen
board snapshot. It is a pure function of the snapshot: no state survives
between calls and two calls over the same snapshot return identical maps.
It never fails; boards that violate the revealed-count invariant yield
whatever partial map remains internally consistent, and components whose
search budget runs out fall back to a uniform per-component estimate.
*/
func (s Solver) ComputeProbabilities(b Board) Map {
	var (
		w, h = b.Width(), b.Height()
		m    = Map{Width: w, Height: h, Cells: make(map[int]float64)}
		cons = buildConstraints(b)
	)
	comps := partition(cons)

	frontier := make(map[int]bool)
	for _, comp := range comps {
		for _, i := range comp.cells {
			frontier[i] = true
		}
	}

	var (
		flagged  int
		interior []int
	)
	for y := range h {
		for x := range w {
			c := b.CellAt(x, y)
			switch {
			case c.Flagged:
				flagged++
			case !c.Revealed && !frontier[y*w+x]:
				interior = append(interior, y*w+x)
			}
		}
	}

	budget := s.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}

	// Enumerate each component. Overrun components contribute a fixed
	// expected mine count; contradictory ones are dropped entirely.
	var (
		solved        []*component
		tallies       []tally
		polys         [][]float64
		overrunExpect float64
	)
	for _, comp := range comps {
		t := enumerate(comp, budget)
		if t.overrun {
			p := fallbackDensity(comp)
			log.WithFields(logrus.Fields{
				"cells":   len(comp.cells),
				"density": p,
			}).Warn("component search budget exhausted, using uniform estimate")
			for _, i := range comp.cells {
				m.Cells[i] = p
			}
			overrunExpect += p * float64(len(comp.cells))
			continue
		}
		if total(t.perMines) == 0 {
			log.WithField("cells", len(comp.cells)).
				Warn("component has no valid assignment, omitting (inconsistent board?)")
			continue
		}
		solved = append(solved, comp)
		tallies = append(tallies, t)
		polys = append(polys, t.perMines)
	}

	rest, full := products(polys)

	// Weight table over the total frontier mine count: an assignment
	// family placing t mines leaves C(interior, remaining-t) layouts for
	// the rest of the board. Shifted out of log space against the
	// largest term; if no term is feasible the mine budget itself is
	// inconsistent, and unweighted counting is the best answer left.
	remaining := b.MineCount() - flagged - int(math.Round(overrunExpect))
	wt := make([]float64, len(full))
	maxLog := math.Inf(-1)
	for t := range wt {
		maxLog = max(maxLog, logChoose(len(interior), remaining-t))
	}
	for t := range wt {
		if math.IsInf(maxLog, -1) {
			wt[t] = 1
		} else {
			wt[t] = math.Exp(logChoose(len(interior), remaining-t) - maxLog)
		}
	}

	var z, frontierMines float64
	for t, ways := range full {
		z += ways * wt[t]
		frontierMines += float64(t) * ways * wt[t]
	}
	if z == 0 {
		for t := range wt {
			wt[t] = 1
		}
		z, frontierMines = 0, 0
		for t, ways := range full {
			z += ways * wt[t]
			frontierMines += float64(t) * ways * wt[t]
		}
	}

	for ci, comp := range solved {
		t := tallies[ci]
		// restWeight[k]: total weight of every way the other components
		// and the interior absorb the budget left after k mines here.
		restWeight := make([]float64, len(t.perMines))
		for k := range restWeight {
			for j, ways := range rest[ci] {
				restWeight[k] += ways * wt[k+j]
			}
		}
		for local, cell := range comp.cells {
			var num float64
			for k, ways := range t.perCell[local] {
				num += ways * restWeight[k]
			}
			if z > 0 {
				m.Cells[cell] = clampUnit(num / z)
			}
		}
	}

	if z > 0 {
		frontierMines = frontierMines/z + overrunExpect
	} else {
		frontierMines = overrunExpect
	}

	if len(interior) > 0 {
		p := clampUnit((float64(b.MineCount()-flagged) - frontierMines) /
			float64(len(interior)))
		for _, i := range interior {
			m.Cells[i] = p
		}
	}

	log.WithFields(logrus.Fields{
		"constraints": len(cons),
		"components":  len(comps),
		"evaluated":   len(m.Cells),
	}).Debug("probability map computed")
	return m
}

// fallbackDensity estimates a component's average mine density from its
// constraints alone: required mines over constrained cell slots.
func fallbackDensity(comp *component) float64 {
	var mines, slots int
	for _, c := range comp.cons {
		mines += c.mines
		slots += len(c.cells)
	}
	if slots == 0 {
		return 0
	}
	return clampUnit(float64(mines) / float64(slots))
}

func total(xs []float64) (sum float64) {
	for _, x := range xs {
		sum += x
	}
	return
}

func clampUnit(p float64) float64 {
	return min(1, max(0, p))
}

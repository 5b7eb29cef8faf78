package prob

import (
	"slices"

	"github.com/gammazero/deque"
)

/*
A component is a maximal group of frontier cells connected through shared
constraints, together with those constraints rewritten against the
component's local cell ordering. Components are independent of each other
except for the global mine budget, which is reconciled after every
component has been enumerated.
*/
type component struct {
	cells []int        // flat indices, ascending (row-major)
	cons  []constraint // cells hold local indices into the cells slice
}

/*
partition splits the frontier into components with a breadth-first walk:
two frontier cells are connected when some constraint mentions them both.
Cells and components come out in row-major order so that repeated runs
over the same snapshot enumerate everything identically.
*/
func partition(cons []constraint) []*component {
	byCell := make(map[int][]int) // frontier cell -> constraint indices
	for ci, c := range cons {
		for _, i := range c.cells {
			byCell[i] = append(byCell[i], ci)
		}
	}

	frontier := make([]int, 0, len(byCell))
	for i := range byCell {
		frontier = append(frontier, i)
	}
	slices.Sort(frontier)

	var (
		comps    []*component
		seen     = make(map[int]bool, len(frontier))
		consUsed = make([]bool, len(cons))
		queue    deque.Deque[int]
	)
	for _, start := range frontier {
		if seen[start] {
			continue
		}
		var members []int
		seen[start] = true
		queue.PushBack(start)
		for queue.Len() > 0 {
			cell := queue.PopFront()
			members = append(members, cell)
			for _, ci := range byCell[cell] {
				for _, other := range cons[ci].cells {
					if !seen[other] {
						seen[other] = true
						queue.PushBack(other)
					}
				}
			}
		}
		slices.Sort(members)

		local := make(map[int]int, len(members))
		for li, i := range members {
			local[i] = li
		}
		comp := &component{cells: members}
		for _, i := range members {
			for _, ci := range byCell[i] {
				if consUsed[ci] {
					continue
				}
				consUsed[ci] = true
				rewritten := constraint{
					cells: make([]int, len(cons[ci].cells)),
					mines: cons[ci].mines,
				}
				for k, cell := range cons[ci].cells {
					rewritten.cells[k] = local[cell]
				}
				comp.cons = append(comp.cons, rewritten)
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

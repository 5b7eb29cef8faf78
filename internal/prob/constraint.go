package prob

import "slices"

/*
A constraint captures one revealed numbered square: exactly `mines` of the
squares in `cells` are mined. Flagged neighbors are treated as assumed
mines and subtracted from the requirement up front; flags are
player-asserted and never verified against the real layout, so a wrong
flag makes the resulting probabilities inconsistent. That is accepted
behavior, not something the engine tries to detect.
*/
type constraint struct {
	cells []int // flat indices of unrevealed, unflagged neighbors
	mines int   // required mine count among cells, flags subtracted
}

/*
buildConstraints walks every revealed square bordering at least one
unrevealed, unflagged neighbor and emits its constraint. A revealed zero
square never borders an unrevealed cell on a well-formed board (the
cascade would have opened them), so it naturally contributes nothing. A
required count of zero is still a constraint: it forces its cells safe.
*/
func buildConstraints(b Board) []constraint {
	var (
		w, h = b.Width(), b.Height()
		cons []constraint
	)
	for y := range h {
		for x := range w {
			if !b.CellAt(x, y).Revealed {
				continue
			}
			var (
				hidden  []int
				flagged int
			)
			for _, i := range b.AdjacentOf(x, y) {
				n := b.CellAt(i%w, i/w)
				switch {
				case n.Flagged:
					flagged++
				case !n.Revealed:
					hidden = append(hidden, i)
				}
			}
			if len(hidden) == 0 {
				continue
			}
			slices.Sort(hidden)
			cons = append(cons, constraint{
				cells: hidden,
				mines: max(b.CellAt(x, y).Adjacent-flagged, 0),
			})
		}
	}
	return cons
}

package hint

import "github.com/anushka369/minesweeper-assist/internal/prob"

// Scoring weights for [InformationGain]. Tuned by eye; the score only
// orders candidates and promises nothing beyond being non-negative.
const (
	cascadeWeight    = 1.0
	densityWeight    = 0.1
	frontierBonus    = 0.25
	maxAdjacentMines = 8
)

/*
InformationGain estimates how much revealing (or flagging) a cell would
tell the player. Base value 1 for the cell itself, plus a cascade term
for hidden neighbors that revealed low clues nearby make likely to chain
open, plus a flat density term per hidden neighbor, plus a bonus for
bordering revealed territory at all. An estimate for ranking only, never
a probability.
*/
func InformationGain(b prob.Board, x, y int) float64 {
	var (
		w              = b.Width()
		hidden         int
		clueSum, clues int
	)
	for _, i := range b.AdjacentOf(x, y) {
		n := b.CellAt(i%w, i/w)
		if n.Revealed {
			clueSum += n.Adjacent
			clues++
		} else if !n.Flagged {
			hidden++
		}
	}

	gain := 1.0

	cascade := float64(hidden) / maxAdjacentMines
	if clues > 0 {
		avg := float64(clueSum) / float64(clues)
		cascade *= 1 - avg/maxAdjacentMines
	} else {
		cascade /= 2
	}
	gain += cascade * cascadeWeight

	gain += float64(hidden) * densityWeight

	if clues > 0 {
		gain += frontierBonus
	}
	return gain
}

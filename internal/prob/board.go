package prob

// Cell is the read-only view of a single square that the engine consumes.
// Adjacent is only meaningful when Revealed is set.
type Cell struct {
	Revealed bool
	Flagged  bool
	Adjacent int
}

/*
Board is the contract the surrounding game code must satisfy. All methods
must return the same answers for the duration of one computation: the
engine treats the board as a frozen snapshot and never mutates it.
*/
type Board interface {
	Width() int
	Height() int
	MineCount() int
	CellAt(x, y int) Cell
	// AdjacentOf returns the flat indices (y*Width+x) of the up-to-8
	// neighbors of a square, clipped at the board edges.
	AdjacentOf(x, y int) []int
}

// Map is a sparse mine-probability map keyed by flat cell index y*Width+x.
// A missing entry means the cell was never evaluated, which is not the
// same thing as a probability of zero.
type Map struct {
	Width, Height int
	Cells         map[int]float64
}

func (m Map) At(x, y int) (p float64, ok bool) {
	p, ok = m.Cells[y*m.Width+x]
	return
}

func (m Map) Len() int {
	return len(m.Cells)
}

package game

import "github.com/anushka369/minesweeper-assist/internal/prob"

// Snapshot is an immutable view of player knowledge: which cells are
// open or flagged and the revealed numbers, never the mine layout. It
// satisfies the prob.Board contract, and because nothing can mutate it,
// concurrent probability computations over one snapshot are safe.
type Snapshot struct {
	width, height, mines int
	cells                []prob.Cell
}

// Snapshot freezes the current player-visible state.
func (g *Game) Snapshot() *Snapshot {
	cells := make([]prob.Cell, len(g.Cells))
	for i, c := range g.Cells {
		cells[i] = prob.Cell{
			Revealed: c.Opened,
			Flagged:  c.Flagged,
		}
		if c.Opened {
			cells[i].Adjacent = c.MineCount
		}
	}
	return &Snapshot{
		width:  g.Width,
		height: g.Height,
		mines:  g.Mines,
		cells:  cells,
	}
}

// NewSnapshot builds a snapshot directly from cell views; the board
// component is authoritative for the invariant that revealed numbers
// match the true neighbor mine counts.
func NewSnapshot(width, height, mines int, cells []prob.Cell) *Snapshot {
	return &Snapshot{width: width, height: height, mines: mines, cells: cells}
}

func (s *Snapshot) Width() int     { return s.width }
func (s *Snapshot) Height() int    { return s.height }
func (s *Snapshot) MineCount() int { return s.mines }

func (s *Snapshot) CellAt(x, y int) prob.Cell {
	return s.cells[y*s.width+x]
}

func (s *Snapshot) AdjacentOf(x, y int) []int {
	adjacent := make([]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if (dx == 0 && dy == 0) ||
				nx < 0 || nx >= s.width || ny < 0 || ny >= s.height {
				continue
			}
			adjacent = append(adjacent, ny*s.width+nx)
		}
	}
	return adjacent
}

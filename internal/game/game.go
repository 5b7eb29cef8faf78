// Package game owns the mutable minesweeper board: mine placement,
// reveal cascades, flags, chording and win/loss bookkeeping. The
// inference engines never see a Game directly, only the frozen
// [Snapshot] view it produces.
package game

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math/rand/v2"
)

type Status int

const (
	On Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "on"
	}
}

type Cell struct {
	Mined     bool
	Opened    bool
	Flagged   bool
	MineCount int // adjacent mines, maintained at placement time
}

type Game struct {
	Width, Height, Mines int
	Cells                []Cell
	Opened               int
	Result               Status
}

type CellUpdate struct {
	Index     int  `json:"index"`
	MineCount int  `json:"mine_count"`
	Mined     bool `json:"mined"`
}

type BoardUpdate []CellUpdate

var (
	ErrBadParams = errors.New("mine count must be below cell count on a non-empty board")
	ErrBadIndex  = errors.New("cell index out of range")
)

// New creates a board with mines placed uniformly at random everywhere
// except the first-moved cell, then opens that cell.
func New(width, height, mines, firstMove int, r *rand.Rand) (*Game, BoardUpdate, error) {
	if width <= 0 || height <= 0 || mines < 0 || mines >= width*height {
		return nil, nil, ErrBadParams
	}
	if firstMove < 0 || firstMove >= width*height {
		return nil, nil, ErrBadIndex
	}
	g := &Game{
		Width:  width,
		Height: height,
		Mines:  mines,
		Cells:  make([]Cell, width*height),
	}
	for placed := 0; placed < mines; {
		i := r.IntN(len(g.Cells))
		if i == firstMove || g.Cells[i].Mined {
			continue
		}
		g.Cells[i].Mined = true
		placed++
		for _, n := range g.Neighbors(i) {
			g.Cells[n].MineCount++
		}
	}
	update, _ := g.Open(firstMove)
	return g, update, nil
}

func (g *Game) Index(x, y int) int { return y*g.Width + x }

func (g *Game) Coords(i int) (x, y int) { return i % g.Width, i / g.Width }

func (g *Game) InBounds(i int) bool { return 0 <= i && i < len(g.Cells) }

// Neighbors returns the up-to-8 adjacent cell indices, edge-clipped.
func (g *Game) Neighbors(i int) []int {
	var (
		x, y      = g.Coords(i)
		neighbors = make([]int, 0, 8)
	)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if (dx == 0 && dy == 0) ||
				nx < 0 || nx >= g.Width || ny < 0 || ny >= g.Height {
				continue
			}
			neighbors = append(neighbors, g.Index(nx, ny))
		}
	}
	return neighbors
}

func (g *Game) onlyMinesLeft() bool {
	return len(g.Cells)-g.Opened == g.Mines
}

// Open reveals a cell, cascading through zero-count neighborhoods. A
// mined cell loses the game on the spot.
func (g *Game) Open(index int) (update BoardUpdate, status Status) {
	cell := &g.Cells[index]
	if cell.Opened || cell.Flagged || g.Result != On {
		return nil, g.Result
	}
	cell.Opened = true
	g.Opened++
	update = append(update, CellUpdate{
		Index:     index,
		MineCount: cell.MineCount,
		Mined:     cell.Mined,
	})

	if cell.Mined {
		g.Result = Lost
		return update, Lost
	}

	if cell.MineCount == 0 {
		for _, n := range g.Neighbors(index) {
			if !g.Cells[n].Opened {
				upd, _ := g.Open(n)
				update = append(update, upd...)
			}
		}
	}

	if g.onlyMinesLeft() {
		g.Result = Won
	}
	return update, g.Result
}

// ToggleFlag flips the flag on an unopened cell and reports the new value.
func (g *Game) ToggleFlag(index int) (flagged bool) {
	if g.Cells[index].Opened || g.Result != On {
		return g.Cells[index].Flagged
	}
	g.Cells[index].Flagged = !g.Cells[index].Flagged
	return g.Cells[index].Flagged
}

// Chord opens every unflagged neighbor of an opened cell whose flag
// count already matches its number.
func (g *Game) Chord(index int) (update BoardUpdate, status Status) {
	if !g.Cells[index].Opened || g.Result != On {
		return nil, g.Result
	}
	flags := 0
	for _, n := range g.Neighbors(index) {
		if g.Cells[n].Flagged {
			flags++
		}
	}
	if flags != g.Cells[index].MineCount {
		return nil, g.Result
	}
	for _, n := range g.Neighbors(index) {
		if !g.Cells[n].Opened && !g.Cells[n].Flagged {
			upd, st := g.Open(n)
			update = append(update, upd...)
			if st == Lost {
				return update, Lost
			}
		}
	}
	return update, g.Result
}

// Forfeit ends the game as lost without opening anything.
func (g *Game) Forfeit() {
	if g.Result == On {
		g.Result = Lost
	}
}

func DecodeGame(buf []byte) (*Game, error) {
	var g Game
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

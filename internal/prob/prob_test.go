package prob

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

// testBoard builds a Board from a character grid: '#' unrevealed, 'F'
// flagged, '0'-'8' revealed with that neighbor mine count.
type testBoard struct {
	width, height, mines int
	cells                []Cell
}

func parseBoard(t *testing.T, mines int, rows ...string) *testBoard {
	t.Helper()
	b := &testBoard{
		width:  len(rows[0]),
		height: len(rows),
		mines:  mines,
	}
	for _, row := range rows {
		require.Len(t, row, b.width)
		for _, r := range row {
			switch {
			case r == '#':
				b.cells = append(b.cells, Cell{})
			case r == 'F':
				b.cells = append(b.cells, Cell{Flagged: true})
			case '0' <= r && r <= '8':
				b.cells = append(b.cells, Cell{Revealed: true, Adjacent: int(r - '0')})
			default:
				t.Fatalf("bad board rune %q", r)
			}
		}
	}
	return b
}

func (b *testBoard) Width() int     { return b.width }
func (b *testBoard) Height() int    { return b.height }
func (b *testBoard) MineCount() int { return b.mines }

func (b *testBoard) CellAt(x, y int) Cell { return b.cells[y*b.width+x] }

func (b *testBoard) AdjacentOf(x, y int) []int {
	var adjacent []int
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if (dx == 0 && dy == 0) ||
				nx < 0 || nx >= b.width || ny < 0 || ny >= b.height {
				continue
			}
			adjacent = append(adjacent, ny*b.width+nx)
		}
	}
	return adjacent
}

func TestZeroClueContributesNoConstraint(t *testing.T) {
	b := parseBoard(t, 0,
		"00",
		"00",
	)
	assert.Empty(t, buildConstraints(b))
	assert.Zero(t, ComputeProbabilities(b).Len())
}

func TestSatisfiedClueStillConstrainsRemainingCells(t *testing.T) {
	// The flag on the mine satisfies the 1-clue, forcing both hidden
	// neighbors safe with probability exactly 0.
	b := parseBoard(t, 1,
		"1#",
		"F#",
	)
	m := ComputeProbabilities(b)

	p, ok := m.At(1, 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, p)

	p, ok = m.At(1, 1)
	require.True(t, ok)
	assert.Equal(t, 0.0, p)
}

func TestSingleForcedMine(t *testing.T) {
	// Clue 1 at (0,0) with exactly one hidden neighbor: that neighbor is
	// a mine with probability exactly 1.
	b := parseBoard(t, 1,
		"1#",
		"11",
	)
	m := ComputeProbabilities(b)

	p, ok := m.At(1, 0)
	require.True(t, ok)
	assert.Equal(t, 1.0, p)
}

func TestBinomialWeighting(t *testing.T) {
	// 1x8 strip: cells 0, 2 and 4 are the frontier of one component
	// with two constraints (0+2 == 1, 2+4 == 1). Its two assignments are
	// {2} (one mine) and {0, 4} (two mines). With 2 mines total and 3
	// interior cells, the one-mine assignment leaves C(3,1)=3 interior
	// layouts against C(3,0)=1, so it is three times as likely.
	b := parseBoard(t, 2, "#1#1####")
	m := ComputeProbabilities(b)

	p, ok := m.At(2, 0)
	require.True(t, ok)
	assert.InDelta(t, 0.75, p, 1e-9)

	for _, x := range []int{0, 4} {
		p, ok := m.At(x, 0)
		require.True(t, ok)
		assert.InDelta(t, 0.25, p, 1e-9)
	}

	// Interior cells share the aggregate of the leftover budget:
	// (2 - E[frontier mines]) / 3 = (2 - 5/4) / 3.
	for _, x := range []int{5, 6, 7} {
		p, ok := m.At(x, 0)
		require.True(t, ok)
		assert.InDelta(t, 0.25, p, 1e-9)
	}
}

func TestDisjointComponentsShareMineBudget(t *testing.T) {
	// Two frontier components separated by a flag. On the left, the
	// 1-clue and the 2-clue both pin cell 1 as a mine. On the right, the
	// flag satisfies the 1-clue, forcing cell 5 safe. With 3 mines total
	// the budget left after the flag and the forced mine lands entirely
	// on the two interior cells: 1 mine over 2 cells.
	b := parseBoard(t, 3, "1#2F1###")

	require.Len(t, partition(buildConstraints(b)), 2)

	m := ComputeProbabilities(b)
	require.Equal(t, 4, m.Len())

	p, ok := m.At(1, 0)
	require.True(t, ok)
	assert.Equal(t, 1.0, p)

	p, ok = m.At(5, 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, p)

	for _, x := range []int{6, 7} {
		p, ok := m.At(x, 0)
		require.True(t, ok)
		assert.InDelta(t, 0.5, p, 1e-12)
	}
}

func TestFlagNeverIncreasesComponentProbabilities(t *testing.T) {
	before := ComputeProbabilities(parseBoard(t, 2, "#1#1####"))
	after := ComputeProbabilities(parseBoard(t, 2, "#1F1####"))

	for _, x := range []int{0, 4} {
		pb, ok := before.At(x, 0)
		require.True(t, ok)
		pa, ok := after.At(x, 0)
		require.True(t, ok)
		assert.LessOrEqual(t, pa, pb)
	}
}

func TestIdempotence(t *testing.T) {
	b := parseBoard(t, 2,
		"###",
		"121",
		"###",
	)
	first := ComputeProbabilities(b)
	second := ComputeProbabilities(b)
	assert.Equal(t, first, second)
}

func TestBudgetOverrunFallsBackToUniform(t *testing.T) {
	b := parseBoard(t, 2, "#1#1####")
	m := Solver{Budget: 1}.ComputeProbabilities(b)

	for _, x := range []int{0, 2, 4} {
		p, ok := m.At(x, 0)
		require.True(t, ok, "budget overrun must still map cell %d", x)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestNoFrontierNoMap(t *testing.T) {
	// Fully resolved board: the flagged mine is the only unopened cell.
	b := parseBoard(t, 1,
		"000",
		"011",
		"01F",
	)
	assert.Zero(t, ComputeProbabilities(b).Len())
}

func TestPristineBoardIsAllInterior(t *testing.T) {
	b := parseBoard(t, 1,
		"##",
		"##",
	)
	m := ComputeProbabilities(b)
	require.Equal(t, 4, m.Len())
	for y := range 2 {
		for x := range 2 {
			p, ok := m.At(x, y)
			require.True(t, ok)
			assert.InDelta(t, 0.25, p, 1e-12)
		}
	}
}

func TestContradictoryComponentOmitted(t *testing.T) {
	// A 3-clue with a single hidden neighbor has no valid assignment;
	// the engine drops the component instead of dividing by zero.
	b := parseBoard(t, 1, "3#")
	assert.Zero(t, ComputeProbabilities(b).Len())
}

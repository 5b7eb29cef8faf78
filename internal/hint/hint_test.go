package hint_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anushka369/minesweeper-assist/internal/game"
	"github.com/anushka369/minesweeper-assist/internal/hint"
	"github.com/anushka369/minesweeper-assist/internal/prob"
)

// board builds a snapshot from a character grid: '#' unrevealed, 'F'
// flagged, '0'-'8' revealed with that neighbor mine count.
func board(t *testing.T, mines int, rows ...string) *game.Snapshot {
	t.Helper()
	var (
		width = len(rows[0])
		cells []prob.Cell
	)
	for _, row := range rows {
		require.Len(t, row, width)
		for _, r := range row {
			switch {
			case r == '#':
				cells = append(cells, prob.Cell{})
			case r == 'F':
				cells = append(cells, prob.Cell{Flagged: true})
			case '0' <= r && r <= '8':
				cells = append(cells, prob.Cell{Revealed: true, Adjacent: int(r - '0')})
			default:
				t.Fatalf("bad board rune %q", r)
			}
		}
	}
	return game.NewSnapshot(width, len(rows), mines, cells)
}

func TestFlagSuggestionForForcedMine(t *testing.T) {
	b := board(t, 1,
		"1#",
		"11",
	)
	s := hint.Generate(b, prob.ComputeProbabilities(b))

	require.NotNil(t, s)
	assert.Equal(t, hint.Flag, s.Action)
	assert.Equal(t, 1, s.X)
	assert.Equal(t, 0, s.Y)
	assert.Equal(t, 1.0, s.Confidence)
	assert.NotEmpty(t, s.Rationale)
}

func TestRevealSuggestionForForcedSafeCells(t *testing.T) {
	// The flag satisfies the clue, so both hidden cells are safe; the
	// tie breaks row-major to (1,0).
	b := board(t, 1,
		"1#",
		"F#",
	)
	s := hint.Generate(b, prob.ComputeProbabilities(b))

	require.NotNil(t, s)
	assert.Equal(t, hint.Reveal, s.Action)
	assert.Equal(t, 1, s.X)
	assert.Equal(t, 0, s.Y)
	assert.Equal(t, 1.0, s.Confidence)
}

func TestGuessPicksLowestProbability(t *testing.T) {
	// No certainty anywhere: cell 2 carries 75% mine probability, the
	// rest sit at 25%. The suggestion must avoid cell 2 and report the
	// complement as confidence.
	b := board(t, 2, "#1#1####")
	s := hint.Generate(b, prob.ComputeProbabilities(b))

	require.NotNil(t, s)
	assert.Equal(t, hint.Reveal, s.Action)
	assert.NotEqual(t, 2, s.X)
	assert.InDelta(t, 0.75, s.Confidence, 1e-9)
}

func TestNoHintWithoutEvaluatedCells(t *testing.T) {
	b := board(t, 1,
		"000",
		"011",
		"01F",
	)
	m := prob.ComputeProbabilities(b)
	require.Zero(t, m.Len())
	assert.Nil(t, hint.Generate(b, m))
}

func TestEpsilonClassification(t *testing.T) {
	b := board(t, 1, "##")
	m := prob.Map{Width: 2, Height: 1, Cells: map[int]float64{
		0: 1 - 1e-5, // within epsilon of certain
		1: 1e-5,
	}}
	s := hint.Generate(b, m)

	require.NotNil(t, s)
	// Both cells are certain; reveal outranks flag on equal gain.
	assert.Equal(t, hint.Reveal, s.Action)
	assert.Equal(t, 1, s.X)
	assert.Equal(t, 1.0, s.Confidence)
}

func TestInformationGainNonNegative(t *testing.T) {
	b := board(t, 2,
		"###",
		"121",
		"###",
	)
	for y := range 3 {
		for x := range 3 {
			assert.GreaterOrEqual(t, hint.InformationGain(b, x, y), 0.0)
		}
	}
}

func TestCertainMoveLogsCandidateCount(t *testing.T) {
	hint.Logger().SetLevel(logrus.DebugLevel)
	hook := logrustest.NewLocal(hint.Logger())
	defer hook.Reset()

	b := board(t, 1,
		"1#",
		"11",
	)
	s := hint.Generate(b, prob.ComputeProbabilities(b))
	require.NotNil(t, s)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.Data["candidates"])
	assert.Equal(t, "flag", entry.Data["action"])
}

func TestCertainMovesOutrankGuesses(t *testing.T) {
	// One forced mine next to an open-ended low-probability region: the
	// certain flag must win over any guess.
	b := board(t, 3,
		"1#####",
		"11####",
	)
	s := hint.Generate(b, prob.ComputeProbabilities(b))

	require.NotNil(t, s)
	assert.Equal(t, 1.0, s.Confidence)
}

package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/anushka369/minesweeper-assist/internal/game"
	"github.com/anushka369/minesweeper-assist/internal/hint"
	"github.com/anushka369/minesweeper-assist/internal/prob"
	"github.com/anushka369/minesweeper-assist/internal/session"
)

// Player-view cell states. Open cells carry their adjacent mine
// count (0 to 8) directly.
const (
	cellUnknown = -2
	cellFlag    = -1
	cellMine    = -3
)

type gameStateDto struct {
	Id        uuid.UUID `json:"id"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	MineCount int       `json:"mine_count"`
	Status    string    `json:"status"`
	Grid      []int     `json:"grid"`
	HintsUsed int       `json:"hints_used"`
	StartedAt time.Time `json:"started_at"`
}

func newGameStateDto(s *session.Session) gameStateDto {
	dto := gameStateDto{
		Id:        s.ID,
		HintsUsed: s.HintsUsed(),
		StartedAt: s.StartedAt,
	}
	s.Game(func(g *game.Game) {
		dto.Width = g.Width
		dto.Height = g.Height
		dto.MineCount = g.Mines
		dto.Status = g.Result.String()
		over := g.Result != game.On
		grid := make([]int, len(g.Cells))
		for i, c := range g.Cells {
			switch {
			case c.Opened && c.Mined:
				grid[i] = cellMine
			case c.Opened:
				grid[i] = c.MineCount
			case c.Flagged:
				grid[i] = cellFlag
			case over && c.Mined:
				grid[i] = cellMine
			default:
				grid[i] = cellUnknown
			}
		}
		dto.Grid = grid
	})
	return dto
}

type suggestionDto struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Action     string  `json:"action"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
	Gain       float64 `json:"gain"`
}

func newSuggestionDto(s hint.Suggestion) suggestionDto {
	return suggestionDto{
		X:          s.X,
		Y:          s.Y,
		Action:     s.Action.String(),
		Confidence: s.Confidence,
		Rationale:  s.Rationale,
		Gain:       s.Gain,
	}
}

type cellProbDto struct {
	X int     `json:"x"`
	Y int     `json:"y"`
	P float64 `json:"p"`
}

// newProbabilitiesDto flattens a probability map into a row-major list.
func newProbabilitiesDto(width, height int, m prob.Map) []cellProbDto {
	dtos := make([]cellProbDto, 0, m.Len())
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if p, ok := m.Cells[y*width+x]; ok {
				dtos = append(dtos, cellProbDto{X: x, Y: y, P: p})
			}
		}
	}
	return dtos
}

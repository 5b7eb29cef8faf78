// Package hint turns a mine-probability map into a single ranked move
// suggestion: reveal a certainly-safe cell, flag a certain mine, or
// failing both, reveal the least risky guess available.
package hint

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/anushka369/minesweeper-assist/internal/prob"
)

var log = logrus.New()

// Logger exposes the package logger so callers can attach hooks or
// redirect output.
func Logger() *logrus.Logger { return log }

type Action int

const (
	Reveal Action = iota
	Flag
)

func (a Action) String() string {
	if a == Flag {
		return "flag"
	}
	return "reveal"
}

// Suggestion is one recommended move. Immutable; produced fresh per call.
type Suggestion struct {
	X, Y       int
	Action     Action
	Confidence float64 // in [0,1]
	Rationale  string
	Gain       float64 // expected information gain, >= 0
}

// Epsilon is the certainty threshold. Weighted assignment sums leave
// floating-point residue, so exact comparison against 0 and 1 would
// misclassify forced cells.
const Epsilon = 1e-4

/*
Generate picks the single best move for the snapshot given its
probability map, or nil when the map holds no candidates. Certain moves
rank by information gain (descending), then reveals before flags, then
row-major position; without any certainty the globally least likely mine
is suggested with confidence 1-p.
*/
func Generate(b prob.Board, m prob.Map) *Suggestion {
	if m.Len() == 0 {
		return nil
	}

	var (
		w, h    = b.Width(), b.Height()
		certain []Suggestion

		bestGuess *Suggestion
		bestProb  float64
	)
	for y := range h {
		for x := range w {
			c := b.CellAt(x, y)
			if c.Revealed || c.Flagged {
				continue
			}
			p, ok := m.At(x, y)
			if !ok {
				continue
			}
			switch {
			case p <= Epsilon:
				certain = append(certain, Suggestion{
					X: x, Y: y,
					Action:     Reveal,
					Confidence: 1,
					Rationale:  "no valid mine layout places a mine here",
					Gain:       InformationGain(b, x, y),
				})
			case p >= 1-Epsilon:
				certain = append(certain, Suggestion{
					X: x, Y: y,
					Action:     Flag,
					Confidence: 1,
					Rationale:  "every valid mine layout places a mine here",
					Gain:       InformationGain(b, x, y),
				})
			default:
				if bestGuess == nil || p < bestProb {
					bestProb = p
					bestGuess = &Suggestion{
						X: x, Y: y,
						Action:     Reveal,
						Confidence: 1 - p,
						Rationale: fmt.Sprintf(
							"safest available guess (%.1f%% mine chance)", p*100),
						Gain: InformationGain(b, x, y),
					}
				}
			}
		}
	}

	if len(certain) > 0 {
		// Stable sort over a row-major scan keeps position as the final
		// tie-break.
		slices.SortStableFunc(certain, func(a, b Suggestion) int {
			switch {
			case a.Gain > b.Gain:
				return -1
			case a.Gain < b.Gain:
				return 1
			}
			return int(a.Action) - int(b.Action)
		})
		s := certain[0]
		log.WithFields(logrus.Fields{
			"candidates": len(certain),
			"action":     s.Action.String(),
		}).Debug("certain move picked")
		return &s
	}
	return bestGuess
}

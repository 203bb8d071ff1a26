// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package recommend

import (
	"math"
	"strings"
)

// Mode selects how pair scores of one hot item are aggregated.
type Mode string

const (
	// ModeMax keeps the best raw affinity and the single liked game behind it.
	ModeMax Mode = "max"

	// ModeSumWeighted sums affinity * (numplays + 0.5) over all liked games
	// and keeps the top three.
	ModeSumWeighted Mode = "sum_weighted"
)

// strategy is the part of the pipeline that differs between modes.
type strategy struct {
	// contribution turns a pair affinity into the score credited to the
	// liked game.
	contribution func(affinity float64, numPlays int) float64

	// reduce folds a contribution into the running total, which starts at 0.
	reduce func(total, score float64) float64

	// reasons is how many liked games are kept per suggestion.
	reasons int
}

var strategies = map[Mode]strategy{
	ModeMax: {
		contribution: func(affinity float64, _ int) float64 { return affinity },
		reduce:       math.Max,
		reasons:      1,
	},
	ModeSumWeighted: {
		contribution: func(affinity float64, numPlays int) float64 {
			if numPlays < 0 {
				numPlays = 0
			}
			return affinity * (float64(numPlays) + 0.5)
		},
		reduce:  func(total, score float64) float64 { return total + score },
		reasons: 3,
	},
}

// Modes lists the supported modes.
func Modes() []Mode {
	return []Mode{ModeMax, ModeSumWeighted}
}

// ParseMode validates s. The empty string is not a mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := strategies[m]; !ok {
		return "", InvalidMode(s)
	}
	return m, nil
}

func joinModes() string {
	names := make([]string, 0, len(strategies))
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

package models

import (
	"sort"
	"strings"
	"time"
)

// GameLogEntry represents a single game line from a player's game log
type GameLogEntry struct {
	GameDate   time.Time `json:"game_date"`
	Matchup    string    `json:"matchup"`
	Points     float64   `json:"points"`
	Rebounds   float64   `json:"rebounds"`
	Assists    float64   `json:"assists"`
	ThreesMade float64   `json:"threes_made"`
	Steals     float64   `json:"steals"`
	Blocks     float64   `json:"blocks"`
	Minutes    float64   `json:"minutes"`
}

// Stat returns this game's value for the given stat
func (g *GameLogEntry) Stat(stat StatType) float64 {
	switch stat {
	case StatPoints:
		return g.Points
	case StatRebounds:
		return g.Rebounds
	case StatAssists:
		return g.Assists
	case StatThrees:
		return g.ThreesMade
	case StatSteals:
		return g.Steals
	case StatBlocks:
		return g.Blocks
	default:
		return 0
	}
}

// IsHome reports whether the game was played at home. Matchup strings use
// "TOR vs. BOS" for home games and "TOR @ BOS" for road games.
func (g *GameLogEntry) IsHome() bool {
	return strings.Contains(g.Matchup, "vs.")
}

// Opponent extracts the opposing team tricode from the matchup string,
// empty string if the format is unrecognised
func (g *GameLogEntry) Opponent() string {
	sep := " vs. "
	if !strings.Contains(g.Matchup, sep) {
		sep = " @ "
	}
	parts := strings.SplitN(g.Matchup, sep, 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GameLog is a player's game history, most recent first
type GameLog []GameLogEntry

// SortRecentFirst orders entries by game date descending
func (l GameLog) SortRecentFirst() {
	sort.Slice(l, func(i, j int) bool { return l[i].GameDate.After(l[j].GameDate) })
}

// LastN returns up to n most recent entries
func (l GameLog) LastN(n int) GameLog {
	if n > len(l) {
		n = len(l)
	}
	return l[:n]
}

// Against filters the log to games played against the given opponent
func (l GameLog) Against(opponent string) GameLog {
	var out GameLog
	for _, g := range l {
		if g.Opponent() == opponent {
			out = append(out, g)
		}
	}
	return out
}

// Home filters the log to home or road games
func (l GameLog) Home(home bool) GameLog {
	var out GameLog
	for _, g := range l {
		if g.IsHome() == home {
			out = append(out, g)
		}
	}
	return out
}

// Average returns the mean of a stat across the log, 0 for an empty log
func (l GameLog) Average(stat StatType) float64 {
	if len(l) == 0 {
		return 0
	}
	var sum float64
	for _, g := range l {
		sum += g.Stat(stat)
	}
	return sum / float64(len(l))
}

// Max returns the highest single-game value of a stat
func (l GameLog) Max(stat StatType) float64 {
	var max float64
	for _, g := range l {
		if v := g.Stat(stat); v > max {
			max = v
		}
	}
	return max
}

// Percentile returns the pth percentile (0-100) of a stat using the
// nearest-rank method, 0 for an empty log
func (l GameLog) Percentile(stat StatType, p float64) float64 {
	if len(l) == 0 {
		return 0
	}
	vals := make([]float64, len(l))
	for i, g := range l {
		vals[i] = g.Stat(stat)
	}
	sort.Float64s(vals)
	idx := int(p / 100 * float64(len(vals)))
	if idx >= len(vals) {
		idx = len(vals) - 1
	}
	return vals[idx]
}

// HitRate returns the fraction of games at or above the threshold
func (l GameLog) HitRate(stat StatType, threshold float64) float64 {
	if len(l) == 0 {
		return 0
	}
	var hits int
	for _, g := range l {
		if g.Stat(stat) >= threshold {
			hits++
		}
	}
	return float64(hits) / float64(len(l))
}

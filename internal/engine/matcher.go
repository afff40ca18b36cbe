package engine

import (
	"strings"

	"github.com/yourusername/courtside-edge/internal/models"
)

// MatchPlayer resolves a display name against the loaded player rows.
// The chain runs exact match, case-insensitive match, normalized
// containment, then unique last-name match, short-circuiting at the
// first hit. Returns nil when nothing matches.
func MatchPlayer(players []models.PlayerSeasonRecord, name string) *models.PlayerSeasonRecord {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	for i := range players {
		if players[i].Name == name {
			return &players[i]
		}
	}

	lower := strings.ToLower(name)
	for i := range players {
		if strings.ToLower(players[i].Name) == lower {
			return &players[i]
		}
	}

	// Odds feeds drop diacritics and punctuation ("Luka Doncic" for
	// "Luka Dončić"), so compare stripped forms both ways.
	norm := NormalizeName(name)
	for i := range players {
		cand := NormalizeName(players[i].Name)
		if cand == norm || strings.Contains(cand, norm) || strings.Contains(norm, cand) {
			return &players[i]
		}
	}

	last := lastNameOf(norm)
	if last == "" {
		return nil
	}
	var match *models.PlayerSeasonRecord
	for i := range players {
		if lastNameOf(NormalizeName(players[i].Name)) == last {
			if match != nil {
				// Ambiguous last name, refuse to guess
				return nil
			}
			match = &players[i]
		}
	}
	return match
}

// NormalizeName lowercases a display name, drops punctuation and folds
// common diacritics to ASCII so feed spellings compare equal.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ':
			b.WriteRune(r)
		case r == '.' || r == '\'' || r == '-':
			// drop punctuation
		default:
			if repl, ok := diacritics[r]; ok {
				b.WriteRune(repl)
			}
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func lastNameOf(normalized string) string {
	fields := strings.Fields(normalized)
	if len(fields) < 2 {
		return ""
	}
	return fields[len(fields)-1]
}

// Common diacritics in NBA rosters, folded to ASCII
var diacritics = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a', 'ā': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e', 'ē': 'e', 'ė': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o', 'ō': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u',
	'ć': 'c', 'č': 'c', 'ç': 'c',
	'ń': 'n', 'ñ': 'n',
	'š': 's', 'ş': 's',
	'ž': 'z', 'ź': 'z',
	'ý': 'y',
	'đ': 'd',
	'ğ': 'g',
}

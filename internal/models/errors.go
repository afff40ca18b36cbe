package models

import "errors"

// Custom errors
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrNoSeasonData   = errors.New("no season data loaded")
	ErrNoGameLog      = errors.New("no game log available")
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key violation")
)

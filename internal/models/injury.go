package models

import "time"

// InjuryStatus is a player's availability as reported by the injury feed.
// HasData is false when the feed was unreachable and the caller should
// assume the player is healthy.
type InjuryStatus struct {
	PlayerName string    `json:"player_name"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail"`
	UpdatedAt  time.Time `json:"updated_at"`
	HasData    bool      `json:"has_data"`
}

// Playing reports whether the player is expected to play. Missing data
// defaults to available.
func (i *InjuryStatus) Playing() bool {
	if !i.HasData {
		return true
	}
	switch i.Status {
	case "Out", "Doubtful":
		return false
	default:
		return true
	}
}

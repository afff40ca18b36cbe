package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/yourusername/courtside-edge/internal/models"
)

// Session owns the game-log cache for one batch of predictions. A fresh
// session per slate keeps cached logs from leaking across runs.
type Session struct {
	engine *Engine
	logs   *cache.Cache
}

// NewSession creates a prediction session with an empty game-log cache
func (e *Engine) NewSession() *Session {
	return &Session{
		engine: e,
		logs:   cache.New(30*time.Minute, time.Hour),
	}
}

// gameLog fetches a player's log for one season, serving repeats from
// the session cache. Fetch failures are cached as empty so a flaky
// source is hit once per player, not once per factor.
func (s *Session) gameLog(ctx context.Context, playerID int, season string) models.GameLog {
	if s.engine.logs == nil || season == "" {
		return nil
	}

	key := fmt.Sprintf("%d|%s", playerID, season)
	if v, ok := s.logs.Get(key); ok {
		return v.(models.GameLog)
	}

	log, err := s.engine.logs.FetchGameLog(ctx, playerID, season)
	if err != nil {
		s.engine.plog.WithField("player_id", playerID).WithField("season", season).
			WithError(err).Debug("Game log fetch failed, factors degrade to neutral")
		log = nil
	}

	s.logs.Set(key, log, cache.DefaultExpiration)
	return log
}

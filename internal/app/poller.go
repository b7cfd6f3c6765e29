package app

import (
	"time"

	"github.com/five82/realmboard/internal/state"
)

const (
	defaultRefreshInterval = 60 * time.Second
	defaultRetryBackoff    = 2 * time.Second
	maxBackoff             = 30 * time.Second
)

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return min(base, maxBackoff)
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

// shouldRefreshRealms reports whether a periodic realm refresh may start:
// the list has settled and there is a region to fetch for.
func shouldRefreshRealms(s *state.AppState) bool {
	return s != nil && s.CurrentRegion != nil && s.RealmList.Level.Settled()
}

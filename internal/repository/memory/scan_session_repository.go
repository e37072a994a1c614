package memory

import (
	"time"

	"booknest-be/pkg/scan"

	"github.com/patrickmn/go-cache"
)

// ScanSessionRepository keeps active scan sessions in memory. Abandoned
// sessions age out with the cache TTL so a client that disappears mid-scan
// never leaks a locked stabilizer.
type ScanSessionRepository struct {
	cache *cache.Cache
}

func NewScanSessionRepository() *ScanSessionRepository {
	// Sessions idle for 15 minutes are gone; sweep every 5.
	c := cache.New(15*time.Minute, 5*time.Minute)
	return &ScanSessionRepository{
		cache: c,
	}
}

func (r *ScanSessionRepository) Save(session *scan.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *ScanSessionRepository) Get(sessionID string) (*scan.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*scan.Session), true
	}
	return nil, false
}

func (r *ScanSessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

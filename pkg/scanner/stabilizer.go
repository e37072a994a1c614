// Package scanner turns a noisy stream of camera-decoded barcode frames into
// at most one confident scan event per physical scan.
package scanner

import (
	"strings"
	"sync"
	"time"
)

// AcceptCooldown suppresses re-triggering while a barcode is still held in
// front of the camera after an acceptance.
const AcceptCooldown = 1200 * time.Millisecond

// RequiredReads is how many consecutive identical frames are needed before a
// code is accepted. A single frame misread (shallow angle, motion blur) must
// never trigger an acquisition.
const RequiredReads = 3

// PlausibleBarcode reports whether a raw decoder result even looks like a
// book barcode: cleaned to digits/X it must be 13 digits starting 978/979,
// or exactly 10 characters. Implausible codes never touch the counters.
func PlausibleBarcode(raw string) bool {
	cleaned := clean(raw)
	if len(cleaned) == 13 {
		return strings.HasPrefix(cleaned, "978") || strings.HasPrefix(cleaned, "979")
	}
	return len(cleaned) == 10
}

func clean(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == 'X' || r == 'x' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Stabilizer is the per-session detection gate. It is safe for concurrent
// use, though a scan session normally feeds it sequentially.
type Stabilizer struct {
	mu             sync.Mutex
	lastCode       string
	sameCount      int
	lastAcceptedAt time.Time
	locked         bool
}

func NewStabilizer() *Stabilizer {
	return &Stabilizer{}
}

// Observe consumes one decoded frame and reports whether it produced an
// acceptance. On accept the stabilizer locks: every further frame is
// rejected until Reset, which keeps exactly one acquisition in flight.
func (s *Stabilizer) Observe(raw string, now time.Time) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return "", false
	}
	if raw == "" || !PlausibleBarcode(raw) {
		return "", false
	}

	if raw == s.lastCode {
		s.sameCount++
	} else {
		s.lastCode = raw
		s.sameCount = 1
	}

	if !s.lastAcceptedAt.IsZero() && now.Sub(s.lastAcceptedAt) < AcceptCooldown {
		return "", false
	}

	if s.sameCount >= RequiredReads {
		s.lastAcceptedAt = now
		s.locked = true
		return raw, true
	}
	return "", false
}

// Locked reports whether an acceptance is still being processed.
func (s *Stabilizer) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Reset clears all detection state, including the lock. It must run whenever
// a scan session (re)starts and whenever an acquisition cycle completes,
// successfully or not. A failed lookup must not wedge the next scan.
func (s *Stabilizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCode = ""
	s.sameCount = 0
	s.lastAcceptedAt = time.Time{}
	s.locked = false
}

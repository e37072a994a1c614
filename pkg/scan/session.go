// Package scan holds the in-memory state of an active barcode scan session.
package scan

import (
	"booknest-be/internal/entity"
	"booknest-be/pkg/scanner"

	"github.com/google/uuid"
)

// Session is one member's camera session. The embedded stabilizer is the
// concurrency gate for the whole acquisition pipeline: while it is locked,
// exactly one accepted code is in flight (pending lookup, user prompt,
// persistence).
type Session struct {
	ID       string
	MemberID uuid.UUID

	Stabilizer *scanner.Stabilizer

	// Pending acquisition: set once a code is accepted and resolved,
	// cleared when the read-status prompt is answered or abandoned.
	PendingIsbn string
	Pending     *entity.BookMetadata
}

func NewSession(memberID uuid.UUID) *Session {
	return &Session{
		ID:         uuid.NewString(),
		MemberID:   memberID,
		Stabilizer: scanner.NewStabilizer(),
	}
}

// ClearPending drops the in-flight acquisition and unlocks the stabilizer so
// the next scan can start. Runs on confirm, abandon and lookup failure alike.
func (s *Session) ClearPending() {
	s.PendingIsbn = ""
	s.Pending = nil
	s.Stabilizer.Reset()
}

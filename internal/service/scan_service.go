package service

import (
	"context"
	"errors"
	"time"

	"booknest-be/internal/dto"
	"booknest-be/internal/entity"
	"booknest-be/internal/pkg/logger"
	"booknest-be/internal/repository/memory"
	"booknest-be/pkg/isbn"
	"booknest-be/pkg/scan"

	"github.com/google/uuid"
)

type IScanService interface {
	StartSession(ctx context.Context, memberId uuid.UUID) (*dto.StartScanResponse, error)
	// ObserveFrame feeds one decoded barcode value into the session's
	// stabilizer. Most frames produce a "rejected" event; an accepted code
	// is resolved and returned as a "prompt".
	ObserveFrame(ctx context.Context, sessionId, code string) (*dto.ScanEvent, error)
	// ManualIsbn bypasses the stabilizer for hand-typed codes.
	ManualIsbn(ctx context.Context, sessionId, rawIsbn string) (*dto.ScanEvent, error)
	Confirm(ctx context.Context, sessionId string, read bool, visibility string) (*dto.ScanEvent, error)
	Abandon(ctx context.Context, sessionId string) error
	StopSession(ctx context.Context, sessionId string) error
}

type scanService struct {
	sessions       *memory.ScanSessionRepository
	lookupService  ILookupService
	libraryService ILibraryService
	log            logger.ILogger
}

func NewScanService(
	sessions *memory.ScanSessionRepository,
	lookupService ILookupService,
	libraryService ILibraryService,
	log logger.ILogger,
) IScanService {
	return &scanService{
		sessions:       sessions,
		lookupService:  lookupService,
		libraryService: libraryService,
		log:            log,
	}
}

func (s *scanService) StartSession(ctx context.Context, memberId uuid.UUID) (*dto.StartScanResponse, error) {
	session := scan.NewSession(memberId)
	s.sessions.Save(session)
	s.log.Info("scan", "scan session started", map[string]interface{}{
		"session_id": session.ID,
		"member_id":  memberId,
	})
	return &dto.StartScanResponse{SessionId: session.ID}, nil
}

func (s *scanService) ObserveFrame(ctx context.Context, sessionId, code string) (*dto.ScanEvent, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}

	accepted, ok := session.Stabilizer.Observe(code, time.Now())
	if !ok {
		return &dto.ScanEvent{Type: dto.ScanEventRejected}, nil
	}

	return s.resolve(ctx, session, accepted)
}

func (s *scanService) ManualIsbn(ctx context.Context, sessionId, rawIsbn string) (*dto.ScanEvent, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Stabilizer.Locked() {
		return nil, ErrScanLocked
	}

	code := isbn.Normalize(rawIsbn)
	if !isbn.IsValid(code) {
		return nil, ErrInvalidIsbn
	}
	return s.resolve(ctx, session, code)
}

// resolve looks the accepted code up and parks the result on the session as
// the pending acquisition. Lookup failure unlocks immediately so the member
// can keep scanning.
func (s *scanService) resolve(ctx context.Context, session *scan.Session, code string) (*dto.ScanEvent, error) {
	meta, err := s.lookupService.Resolve(ctx, code)
	if err != nil {
		session.ClearPending()
		s.sessions.Save(session)
		if errors.Is(err, ErrInvalidIsbn) || errors.Is(err, ErrLookupFailed) {
			return &dto.ScanEvent{Type: dto.ScanEventError, Isbn: code, Error: err.Error()}, nil
		}
		return nil, err
	}

	session.PendingIsbn = code
	session.Pending = meta
	s.sessions.Save(session)

	return &dto.ScanEvent{
		Type:     dto.ScanEventPrompt,
		Isbn:     code,
		Title:    meta.Title,
		Author:   meta.Author,
		ImageUrl: meta.ImageUrl,
		Category: meta.Category,
	}, nil
}

func (s *scanService) Confirm(ctx context.Context, sessionId string, read bool, visibility string) (*dto.ScanEvent, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Pending == nil {
		return nil, ErrNoPendingScan
	}

	if visibility == "" {
		visibility = string(entity.VisibilityShared)
	}
	entry, err := s.libraryService.Upsert(ctx, session.MemberID, &dto.UpsertBookRequest{
		Isbn:       session.PendingIsbn,
		Title:      session.Pending.Title,
		Author:     session.Pending.Author,
		ImageUrl:   session.Pending.ImageUrl,
		Category:   session.Pending.Category,
		Read:       read,
		Visibility: visibility,
	})
	if err != nil {
		// The acquisition stays pending so the member can retry confirm
		// once the store is reachable again.
		return nil, err
	}

	session.ClearPending()
	s.sessions.Save(session)

	return &dto.ScanEvent{
		Type:     dto.ScanEventSaved,
		Isbn:     entry.Isbn,
		Title:    entry.Title,
		Author:   entry.Author,
		ImageUrl: entry.ImageUrl,
		Category: entry.Category,
	}, nil
}

func (s *scanService) Abandon(ctx context.Context, sessionId string) error {
	session, ok := s.sessions.Get(sessionId)
	if !ok {
		return ErrSessionNotFound
	}
	session.ClearPending()
	s.sessions.Save(session)
	return nil
}

func (s *scanService) StopSession(ctx context.Context, sessionId string) error {
	if _, ok := s.sessions.Get(sessionId); !ok {
		return ErrSessionNotFound
	}
	s.sessions.Delete(sessionId)
	return nil
}

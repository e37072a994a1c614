package service

import (
	"context"
	"testing"

	"booknest-be/internal/dto"
	"booknest-be/internal/entity"
	"booknest-be/internal/repository/memory"
	"booknest-be/pkg/scanner"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup struct {
	meta *entity.BookMetadata
	err  error
}

func (s *stubLookup) Resolve(ctx context.Context, rawIsbn string) (*entity.BookMetadata, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.meta, nil
}

func newScanFixture(t *testing.T, lookup ILookupService) (IScanService, ILibraryService, uuid.UUID) {
	t.Helper()
	store := newFakeStore()
	library, _ := newLibraryFixture(store)
	svc := NewScanService(memory.NewScanSessionRepository(), lookup, library, nopLogger{})
	return svc, library, uuid.New()
}

func gravitationMeta() *entity.BookMetadata {
	return &entity.BookMetadata{
		Title:    "Gravitation",
		Author:   "Misner",
		ImageUrl: "https://covers.example/m.jpg",
		Category: "Technology & Science",
	}
}

func TestScanFrameStreamToPrompt(t *testing.T) {
	svc, _, memberId := newScanFixture(t, &stubLookup{meta: gravitationMeta()})
	ctx := context.Background()

	started, err := svc.StartSession(ctx, memberId)
	require.NoError(t, err)

	// Two identical reads are not enough.
	for i := 0; i < scanner.RequiredReads-1; i++ {
		event, err := svc.ObserveFrame(ctx, started.SessionId, "9780306406157")
		require.NoError(t, err)
		assert.Equal(t, dto.ScanEventRejected, event.Type)
	}

	event, err := svc.ObserveFrame(ctx, started.SessionId, "9780306406157")
	require.NoError(t, err)
	assert.Equal(t, dto.ScanEventPrompt, event.Type)
	assert.Equal(t, "9780306406157", event.Isbn)
	assert.Equal(t, "Gravitation", event.Title)
}

func TestScanLockedWhilePending(t *testing.T) {
	svc, _, memberId := newScanFixture(t, &stubLookup{meta: gravitationMeta()})
	ctx := context.Background()

	started, err := svc.StartSession(ctx, memberId)
	require.NoError(t, err)

	for i := 0; i < scanner.RequiredReads; i++ {
		_, err = svc.ObserveFrame(ctx, started.SessionId, "9780306406157")
		require.NoError(t, err)
	}

	// Frames for a different book are ignored while the prompt is open.
	event, err := svc.ObserveFrame(ctx, started.SessionId, "9780140328721")
	require.NoError(t, err)
	assert.Equal(t, dto.ScanEventRejected, event.Type)

	_, err = svc.ManualIsbn(ctx, started.SessionId, "9780140328721")
	assert.ErrorIs(t, err, ErrScanLocked)
}

func TestScanConfirmPersistsBook(t *testing.T) {
	svc, library, memberId := newScanFixture(t, &stubLookup{meta: gravitationMeta()})
	ctx := context.Background()

	started, err := svc.StartSession(ctx, memberId)
	require.NoError(t, err)
	for i := 0; i < scanner.RequiredReads; i++ {
		_, err = svc.ObserveFrame(ctx, started.SessionId, "9780306406157")
		require.NoError(t, err)
	}

	event, err := svc.Confirm(ctx, started.SessionId, true, "shared")
	require.NoError(t, err)
	assert.Equal(t, dto.ScanEventSaved, event.Type)

	view, err := library.Load(ctx, memberId)
	require.NoError(t, err)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "Gravitation", view.Entries[0].Title)
	assert.True(t, view.Entries[0].Read)
	assert.Equal(t, entity.VisibilityShared, view.Entries[0].Visibility)
}

func TestScanConfirmWithoutPending(t *testing.T) {
	svc, _, memberId := newScanFixture(t, &stubLookup{meta: gravitationMeta()})
	ctx := context.Background()

	started, err := svc.StartSession(ctx, memberId)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, started.SessionId, true, "")
	assert.ErrorIs(t, err, ErrNoPendingScan)
}

func TestScanAbandonUnlocks(t *testing.T) {
	svc, library, memberId := newScanFixture(t, &stubLookup{meta: gravitationMeta()})
	ctx := context.Background()

	started, err := svc.StartSession(ctx, memberId)
	require.NoError(t, err)
	for i := 0; i < scanner.RequiredReads; i++ {
		_, err = svc.ObserveFrame(ctx, started.SessionId, "9780306406157")
		require.NoError(t, err)
	}

	require.NoError(t, svc.Abandon(ctx, started.SessionId))

	// Nothing was saved and manual entry works again.
	view, err := library.Load(ctx, memberId)
	require.NoError(t, err)
	assert.Empty(t, view.Entries)

	event, err := svc.ManualIsbn(ctx, started.SessionId, "9780140328721")
	require.NoError(t, err)
	assert.Equal(t, dto.ScanEventPrompt, event.Type)
}

func TestScanLookupFailureUnlocks(t *testing.T) {
	svc, _, memberId := newScanFixture(t, &stubLookup{err: ErrLookupFailed})
	ctx := context.Background()

	started, err := svc.StartSession(ctx, memberId)
	require.NoError(t, err)
	var event *dto.ScanEvent
	for i := 0; i < scanner.RequiredReads; i++ {
		event, err = svc.ObserveFrame(ctx, started.SessionId, "9780306406157")
		require.NoError(t, err)
	}
	assert.Equal(t, dto.ScanEventError, event.Type)

	// The stabilizer was reset, so a manual retry is allowed immediately.
	_, err = svc.ManualIsbn(ctx, started.SessionId, "9780140328721")
	assert.NoError(t, err)
}

func TestScanManualRejectsBadChecksum(t *testing.T) {
	svc, _, memberId := newScanFixture(t, &stubLookup{meta: gravitationMeta()})
	ctx := context.Background()

	started, err := svc.StartSession(ctx, memberId)
	require.NoError(t, err)

	_, err = svc.ManualIsbn(ctx, started.SessionId, "9780306406158")
	assert.ErrorIs(t, err, ErrInvalidIsbn)
}

func TestScanUnknownSession(t *testing.T) {
	svc, _, _ := newScanFixture(t, &stubLookup{meta: gravitationMeta()})
	ctx := context.Background()

	_, err := svc.ObserveFrame(ctx, "missing", "9780306406157")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, svc.Abandon(ctx, "missing"), ErrSessionNotFound)
	assert.ErrorIs(t, svc.StopSession(ctx, "missing"), ErrSessionNotFound)
}

func TestScanStopDropsSession(t *testing.T) {
	svc, _, memberId := newScanFixture(t, &stubLookup{meta: gravitationMeta()})
	ctx := context.Background()

	started, err := svc.StartSession(ctx, memberId)
	require.NoError(t, err)
	require.NoError(t, svc.StopSession(ctx, started.SessionId))

	_, err = svc.ObserveFrame(ctx, started.SessionId, "9780306406157")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

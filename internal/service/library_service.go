package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"booknest-be/internal/dto"
	"booknest-be/internal/entity"
	"booknest-be/internal/pkg/logger"
	"booknest-be/internal/repository/cache"
	"booknest-be/internal/repository/specification"
	"booknest-be/internal/repository/unitofwork"
	"booknest-be/pkg/events"
	"booknest-be/pkg/isbn"
	"booknest-be/pkg/taxonomy"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// stateFetchWorkers bounds the read-state fan-out during a load so a large
// shelf does not open hundreds of connections at once.
const stateFetchWorkers = 8

type ILibraryService interface {
	// Load computes the member's merged shelf view. Falls back to the
	// offline snapshot when the store is unreachable.
	Load(ctx context.Context, memberId uuid.UUID) (*dto.LibraryView, error)
	// LoadCached serves the last snapshot without touching the store.
	LoadCached(ctx context.Context, memberId uuid.UUID) *dto.LibraryView
	Upsert(ctx context.Context, memberId uuid.UUID, req *dto.UpsertBookRequest) (*entity.LibraryEntry, error)
	Update(ctx context.Context, memberId uuid.UUID, bookId string, req *dto.UpdateBookRequest) error
	SetVisibility(ctx context.Context, memberId uuid.UUID, bookId string, visibility entity.Visibility) error
	ToggleRead(ctx context.Context, memberId uuid.UUID, bookId string) (bool, error)
	Delete(ctx context.Context, memberId uuid.UUID, bookId string) error
	Stats(ctx context.Context, memberId uuid.UUID) (*dto.LibraryStats, error)
	Filter(entries []*entity.LibraryEntry, filter dto.LibraryFilter) []*entity.LibraryEntry
}

type libraryService struct {
	uowFactory   unitofwork.RepositoryFactory
	vaultService IVaultService
	snapshots    cache.LibrarySnapshotCache
	publisher    IPublisherService
	log          logger.ILogger

	// One load per member at a time. Concurrent callers get the snapshot.
	loading sync.Map // uuid.UUID -> *atomic.Bool
}

func NewLibraryService(
	uowFactory unitofwork.RepositoryFactory,
	vaultService IVaultService,
	snapshots cache.LibrarySnapshotCache,
	publisher IPublisherService,
	log logger.ILogger,
) ILibraryService {
	return &libraryService{
		uowFactory:   uowFactory,
		vaultService: vaultService,
		snapshots:    snapshots,
		publisher:    publisher,
		log:          log,
	}
}

func (s *libraryService) vaultFor(ctx context.Context, memberId uuid.UUID) (uuid.UUID, error) {
	resp, err := s.vaultService.EnsureVault(ctx, memberId, "", "")
	if err != nil {
		return uuid.Nil, err
	}
	return resp.VaultId, nil
}

// --- Load ---

func (s *libraryService) Load(ctx context.Context, memberId uuid.UUID) (*dto.LibraryView, error) {
	flag := s.loadFlag(memberId)
	if !flag.CompareAndSwap(false, true) {
		// A load is already running for this member. Serve the snapshot
		// instead of stacking a second full fetch.
		return &dto.LibraryView{
			Status:  dto.SyncSyncing,
			Entries: s.snapshots.Load(ctx, memberId),
		}, nil
	}
	defer flag.Store(false)

	entries, err := s.fetchMerged(ctx, memberId)
	if err != nil {
		s.log.Warn("library", "load failed, serving offline snapshot", map[string]interface{}{
			"member_id": memberId,
			"error":     err.Error(),
		})
		return &dto.LibraryView{
			Status:  dto.SyncOffline,
			Entries: s.snapshots.Load(ctx, memberId),
		}, nil
	}

	if err := s.snapshots.Save(ctx, memberId, entries); err != nil {
		s.log.Warn("library", "snapshot save failed", map[string]interface{}{
			"member_id": memberId,
			"error":     err.Error(),
		})
	}

	return &dto.LibraryView{Status: dto.SyncOk, Entries: entries}, nil
}

func (s *libraryService) LoadCached(ctx context.Context, memberId uuid.UUID) *dto.LibraryView {
	return &dto.LibraryView{
		Status:  dto.SyncIdle,
		Entries: s.snapshots.Load(ctx, memberId),
	}
}

func (s *libraryService) loadFlag(memberId uuid.UUID) *atomic.Bool {
	val, _ := s.loading.LoadOrStore(memberId, &atomic.Bool{})
	return val.(*atomic.Bool)
}

func (s *libraryService) fetchMerged(ctx context.Context, memberId uuid.UUID) ([]*entity.LibraryEntry, error) {
	vaultId, err := s.vaultFor(ctx, memberId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var (
		wg        sync.WaitGroup
		shared    []*entity.Book
		private   []*entity.PrivateBook
		sharedErr error
		privErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		shared, sharedErr = uow.BookRepository().FindAll(ctx, specification.ByVaultID{VaultID: vaultId})
	}()
	go func() {
		defer wg.Done()
		private, privErr = uow.PrivateBookRepository().FindAll(ctx,
			specification.ByVaultID{VaultID: vaultId},
			specification.ByMemberID{MemberID: memberId},
		)
	}()
	wg.Wait()
	if sharedErr != nil {
		return nil, ErrSyncFailed
	}
	if privErr != nil {
		return nil, ErrSyncFailed
	}

	// The private copy dominates: a book the member keeps privately never
	// shows its shared face, even when both rows exist.
	privateIds := make(map[string]struct{}, len(private))
	entries := make([]*entity.LibraryEntry, 0, len(shared)+len(private))
	for _, book := range private {
		privateIds[book.BookId] = struct{}{}
		entries = append(entries, &entity.LibraryEntry{
			BookId:     book.BookId,
			Isbn:       book.Isbn,
			Title:      book.Title,
			Author:     book.Author,
			ImageUrl:   book.ImageUrl,
			Category:   book.Category,
			Visibility: entity.VisibilityPrivate,
		})
	}
	for _, book := range shared {
		if _, hidden := privateIds[book.BookId]; hidden {
			continue
		}
		entries = append(entries, &entity.LibraryEntry{
			BookId:     book.BookId,
			Isbn:       book.Isbn,
			Title:      book.Title,
			Author:     book.Author,
			ImageUrl:   book.ImageUrl,
			Category:   book.Category,
			Visibility: entity.VisibilityShared,
		})
	}

	s.attachReadStates(ctx, uow, vaultId, memberId, entries)
	s.sortByTitle(entries)
	return entries, nil
}

// attachReadStates resolves the per-member read flag for each entry with a
// bounded worker pool. A failed fetch degrades to unread rather than failing
// the whole load.
func (s *libraryService) attachReadStates(ctx context.Context, uow unitofwork.UnitOfWork, vaultId, memberId uuid.UUID, entries []*entity.LibraryEntry) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, stateFetchWorkers)
	for _, entry := range entries {
		wg.Add(1)
		sem <- struct{}{}
		go func(entry *entity.LibraryEntry) {
			defer wg.Done()
			defer func() { <-sem }()
			state, err := uow.UserBookStateRepository().FindOne(ctx, vaultId, entry.BookId, memberId)
			if err != nil || state == nil {
				entry.Read = false
				return
			}
			entry.Read = state.Read
		}(entry)
	}
	wg.Wait()
}

func (s *libraryService) sortByTitle(entries []*entity.LibraryEntry) {
	col := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		return col.CompareString(entries[i].Title, entries[j].Title) < 0
	})
}

// --- Writes ---

func (s *libraryService) Upsert(ctx context.Context, memberId uuid.UUID, req *dto.UpsertBookRequest) (*entity.LibraryEntry, error) {
	vaultId, err := s.vaultFor(ctx, memberId)
	if err != nil {
		return nil, err
	}

	code := isbn.Normalize(req.Isbn)
	if code != "" && !isbn.IsValid(code) {
		return nil, ErrInvalidIsbn
	}
	visibility := entity.Visibility(req.Visibility)
	if visibility == "" {
		visibility = entity.VisibilityShared
	}
	category := req.Category
	if category == "" {
		category = taxonomy.DefaultCategory
	}

	entry := &entity.LibraryEntry{
		BookId:     isbn.BookID(code),
		Isbn:       code,
		Title:      req.Title,
		Author:     req.Author,
		ImageUrl:   req.ImageUrl,
		Category:   category,
		Visibility: visibility,
		Read:       req.Read,
	}

	if err := s.persist(ctx, vaultId, memberId, entry); err != nil {
		return nil, err
	}

	s.publishChange(ctx, events.TypeBookUpserted, vaultId, memberId, entry.BookId)
	return entry, nil
}

// persist writes an entry as one transaction. The shared row is canonical
// storage for every book regardless of visibility; privacy is tracked by
// presence in the member's private collection, so a private save adds the
// private copy and a shared save removes it.
func (s *libraryService) persist(ctx context.Context, vaultId, memberId uuid.UUID, entry *entity.LibraryEntry) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return ErrSyncFailed
	}
	defer uow.Rollback()

	now := time.Now()
	if err := uow.BookRepository().Save(ctx, &entity.Book{
		VaultId:   vaultId,
		BookId:    entry.BookId,
		Isbn:      entry.Isbn,
		Title:     entry.Title,
		Author:    entry.Author,
		ImageUrl:  entry.ImageUrl,
		Category:  entry.Category,
		UpdatedAt: now,
	}); err != nil {
		return ErrSyncFailed
	}
	if entry.Visibility == entity.VisibilityPrivate {
		if err := uow.PrivateBookRepository().Save(ctx, &entity.PrivateBook{
			VaultId:   vaultId,
			MemberId:  memberId,
			BookId:    entry.BookId,
			Isbn:      entry.Isbn,
			Title:     entry.Title,
			Author:    entry.Author,
			ImageUrl:  entry.ImageUrl,
			Category:  entry.Category,
			UpdatedAt: now,
		}); err != nil {
			return ErrSyncFailed
		}
	} else {
		if err := uow.PrivateBookRepository().Delete(ctx, vaultId, memberId, entry.BookId); err != nil {
			return ErrSyncFailed
		}
	}

	if err := uow.UserBookStateRepository().Save(ctx, &entity.UserBookState{
		VaultId:   vaultId,
		BookId:    entry.BookId,
		MemberId:  memberId,
		Read:      entry.Read,
		UpdatedAt: now,
	}); err != nil {
		return ErrSyncFailed
	}

	if err := uow.Commit(); err != nil {
		return ErrSyncFailed
	}
	return nil
}

func (s *libraryService) Update(ctx context.Context, memberId uuid.UUID, bookId string, req *dto.UpdateBookRequest) error {
	vaultId, err := s.vaultFor(ctx, memberId)
	if err != nil {
		return err
	}

	entry, err := s.findEntry(ctx, vaultId, memberId, bookId)
	if err != nil {
		return err
	}

	if req.Title != "" {
		entry.Title = req.Title
	}
	if req.Author != "" {
		entry.Author = req.Author
	}
	if req.Category != "" {
		entry.Category = req.Category
	}

	if err := s.persist(ctx, vaultId, memberId, entry); err != nil {
		return err
	}
	s.publishChange(ctx, events.TypeBookUpserted, vaultId, memberId, bookId)
	return nil
}

func (s *libraryService) SetVisibility(ctx context.Context, memberId uuid.UUID, bookId string, visibility entity.Visibility) error {
	vaultId, err := s.vaultFor(ctx, memberId)
	if err != nil {
		return err
	}

	entry, err := s.findEntry(ctx, vaultId, memberId, bookId)
	if err != nil {
		return err
	}
	if entry.Visibility == visibility {
		return nil
	}

	entry.Visibility = visibility
	if err := s.persist(ctx, vaultId, memberId, entry); err != nil {
		return err
	}
	s.publishChange(ctx, events.TypeBookUpserted, vaultId, memberId, bookId)
	return nil
}

func (s *libraryService) ToggleRead(ctx context.Context, memberId uuid.UUID, bookId string) (bool, error) {
	vaultId, err := s.vaultFor(ctx, memberId)
	if err != nil {
		return false, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.UserBookStateRepository().FindOne(ctx, vaultId, bookId, memberId)
	if err != nil {
		return false, ErrSyncFailed
	}

	next := true
	if state != nil {
		next = !state.Read
	}

	if err := uow.UserBookStateRepository().Save(ctx, &entity.UserBookState{
		VaultId:   vaultId,
		BookId:    bookId,
		MemberId:  memberId,
		Read:      next,
		UpdatedAt: time.Now(),
	}); err != nil {
		return false, ErrSyncFailed
	}

	// Keep the offline snapshot in step without a full reload.
	s.patchSnapshot(ctx, memberId, func(entry *entity.LibraryEntry) bool {
		if entry.BookId == bookId {
			entry.Read = next
		}
		return true
	})

	s.publishChange(ctx, events.TypeBookUpserted, vaultId, memberId, bookId)
	return next, nil
}

// Delete removes a book everywhere it lives: the shared row (vault-wide),
// the member's private copy, and the member's read state.
func (s *libraryService) Delete(ctx context.Context, memberId uuid.UUID, bookId string) error {
	vaultId, err := s.vaultFor(ctx, memberId)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return ErrSyncFailed
	}
	defer uow.Rollback()

	if err := uow.BookRepository().Delete(ctx, vaultId, bookId); err != nil {
		return ErrSyncFailed
	}
	if err := uow.PrivateBookRepository().Delete(ctx, vaultId, memberId, bookId); err != nil {
		return ErrSyncFailed
	}
	if err := uow.UserBookStateRepository().Delete(ctx, vaultId, bookId, memberId); err != nil {
		return ErrSyncFailed
	}
	if err := uow.Commit(); err != nil {
		return ErrSyncFailed
	}

	s.patchSnapshot(ctx, memberId, func(entry *entity.LibraryEntry) bool {
		return entry.BookId != bookId
	})

	s.publishChange(ctx, events.TypeBookDeleted, vaultId, memberId, bookId)
	return nil
}

// patchSnapshot rewrites the member's offline snapshot in place. keep
// mutates an entry and reports whether it stays.
func (s *libraryService) patchSnapshot(ctx context.Context, memberId uuid.UUID, keep func(*entity.LibraryEntry) bool) {
	entries := s.snapshots.Load(ctx, memberId)
	if len(entries) == 0 {
		return
	}
	patched := make([]*entity.LibraryEntry, 0, len(entries))
	for _, entry := range entries {
		if keep(entry) {
			patched = append(patched, entry)
		}
	}
	if err := s.snapshots.Save(ctx, memberId, patched); err != nil {
		s.log.Warn("library", "snapshot patch failed", map[string]interface{}{
			"member_id": memberId,
			"error":     err.Error(),
		})
	}
}

func (s *libraryService) Stats(ctx context.Context, memberId uuid.UUID) (*dto.LibraryStats, error) {
	view, err := s.Load(ctx, memberId)
	if err != nil {
		return nil, err
	}
	stats := &dto.LibraryStats{Total: len(view.Entries)}
	for _, entry := range view.Entries {
		if entry.Read {
			stats.Read++
		} else {
			stats.Unread++
		}
	}
	return stats, nil
}

// Filter applies the shelf controls to an already loaded view.
func (s *libraryService) Filter(entries []*entity.LibraryEntry, filter dto.LibraryFilter) []*entity.LibraryEntry {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	result := make([]*entity.LibraryEntry, 0, len(entries))
	for _, entry := range entries {
		if query != "" &&
			!strings.Contains(strings.ToLower(entry.Title), query) &&
			!strings.Contains(strings.ToLower(entry.Author), query) &&
			!strings.Contains(strings.ToLower(entry.Isbn), query) {
			continue
		}
		if filter.Read == "read" && !entry.Read {
			continue
		}
		if filter.Read == "unread" && entry.Read {
			continue
		}
		if filter.Category != "" && filter.Category != "all" && entry.Category != filter.Category {
			continue
		}
		result = append(result, entry)
	}

	col := collate.New(language.Und, collate.IgnoreCase)
	switch filter.SortBy {
	case "author":
		sort.SliceStable(result, func(i, j int) bool {
			return col.CompareString(result[i].Author, result[j].Author) < 0
		})
	case "category":
		sort.SliceStable(result, func(i, j int) bool {
			return col.CompareString(result[i].Category, result[j].Category) < 0
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return col.CompareString(result[i].Title, result[j].Title) < 0
		})
	}
	return result
}

// findEntry locates a single book for a member, private copy first.
func (s *libraryService) findEntry(ctx context.Context, vaultId, memberId uuid.UUID, bookId string) (*entity.LibraryEntry, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	private, err := uow.PrivateBookRepository().FindAll(ctx,
		specification.ByVaultID{VaultID: vaultId},
		specification.ByMemberID{MemberID: memberId},
		specification.ByBookID{BookID: bookId},
	)
	if err != nil {
		return nil, ErrSyncFailed
	}
	if len(private) > 0 {
		book := private[0]
		return s.entryFromParts(ctx, uow, vaultId, memberId, book.BookId, book.Isbn, book.Title, book.Author, book.ImageUrl, book.Category, entity.VisibilityPrivate)
	}

	shared, err := uow.BookRepository().FindOne(ctx,
		specification.ByVaultID{VaultID: vaultId},
		specification.ByBookID{BookID: bookId},
	)
	if err != nil {
		return nil, ErrSyncFailed
	}
	if shared == nil {
		return nil, ErrNotFound
	}
	return s.entryFromParts(ctx, uow, vaultId, memberId, shared.BookId, shared.Isbn, shared.Title, shared.Author, shared.ImageUrl, shared.Category, entity.VisibilityShared)
}

func (s *libraryService) entryFromParts(ctx context.Context, uow unitofwork.UnitOfWork, vaultId, memberId uuid.UUID, bookId, code, title, author, imageUrl, category string, visibility entity.Visibility) (*entity.LibraryEntry, error) {
	entry := &entity.LibraryEntry{
		BookId:     bookId,
		Isbn:       code,
		Title:      title,
		Author:     author,
		ImageUrl:   imageUrl,
		Category:   category,
		Visibility: visibility,
	}
	state, err := uow.UserBookStateRepository().FindOne(ctx, vaultId, bookId, memberId)
	if err == nil && state != nil {
		entry.Read = state.Read
	}
	return entry, nil
}

func (s *libraryService) publishChange(ctx context.Context, eventType string, vaultId, memberId uuid.UUID, bookId string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"vault_id":  vaultId.String(),
			"member_id": memberId.String(),
			"book_id":   bookId,
		},
		OccurredAt: time.Now(),
	})
	if err != nil {
		// Notifications are auxiliary. The write already succeeded.
		s.log.Warn("library", "failed to publish library event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

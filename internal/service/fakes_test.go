package service

import (
	"context"
	"errors"
	"sync"

	"booknest-be/internal/entity"
	"booknest-be/internal/repository/contract"
	"booknest-be/internal/repository/specification"
	"booknest-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repository doubles. They interpret the common specifications by
// type so service logic runs against real filter semantics.

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                   { return nil }

type fakeStore struct {
	mu sync.Mutex

	users       map[uuid.UUID]*entity.User
	vaults      map[uuid.UUID]*entity.Vault
	members     map[uuid.UUID]*entity.Member
	memberIndex map[uuid.UUID]*entity.MemberIndex

	books        map[string]*entity.Book        // vault|book
	privateBooks map[string]*entity.PrivateBook // vault|member|book
	states       map[string]*entity.UserBookState

	// failAll simulates an unreachable store.
	failAll bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[uuid.UUID]*entity.User),
		vaults:       make(map[uuid.UUID]*entity.Vault),
		members:      make(map[uuid.UUID]*entity.Member),
		memberIndex:  make(map[uuid.UUID]*entity.MemberIndex),
		books:        make(map[string]*entity.Book),
		privateBooks: make(map[string]*entity.PrivateBook),
		states:       make(map[string]*entity.UserBookState),
	}
}

var errStoreDown = errors.New("store unreachable")

func bookKey(vaultId uuid.UUID, bookId string) string {
	return vaultId.String() + "|" + bookId
}

func privateKey(vaultId, memberId uuid.UUID, bookId string) string {
	return vaultId.String() + "|" + memberId.String() + "|" + bookId
}

func stateKey(vaultId uuid.UUID, bookId string, memberId uuid.UUID) string {
	return vaultId.String() + "|" + bookId + "|" + memberId.String()
}

type specFilter struct {
	id       *uuid.UUID
	vaultId  *uuid.UUID
	memberId *uuid.UUID
	bookId   *string
	email    *string
}

func parseSpecs(specs []specification.Specification) specFilter {
	var f specFilter
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			id := spec.ID
			f.id = &id
		case specification.ByVaultID:
			id := spec.VaultID
			f.vaultId = &id
		case specification.ByMemberID:
			id := spec.MemberID
			f.memberId = &id
		case specification.ByBookID:
			id := spec.BookID
			f.bookId = &id
		case specification.ByEmail:
			email := spec.Email
			f.email = &email
		}
	}
	return f
}

// --- fake unit of work ---

type fakeUow struct {
	store *fakeStore
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

func newFakeFactory(store *fakeStore) unitofwork.RepositoryFactory {
	return &fakeFactory{store: store}
}

func (u *fakeUow) Begin(ctx context.Context) error {
	if u.store.failAll {
		return errStoreDown
	}
	return nil
}
func (u *fakeUow) Commit() error   { return nil }
func (u *fakeUow) Rollback() error { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}
func (u *fakeUow) VaultRepository() contract.VaultRepository {
	return &fakeVaultRepo{store: u.store}
}
func (u *fakeUow) MemberRepository() contract.MemberRepository {
	return &fakeMemberRepo{store: u.store}
}
func (u *fakeUow) MemberIndexRepository() contract.MemberIndexRepository {
	return &fakeMemberIndexRepo{store: u.store}
}
func (u *fakeUow) BookRepository() contract.BookRepository {
	return &fakeBookRepo{store: u.store}
}
func (u *fakeUow) PrivateBookRepository() contract.PrivateBookRepository {
	return &fakePrivateBookRepo{store: u.store}
}
func (u *fakeUow) UserBookStateRepository() contract.UserBookStateRepository {
	return &fakeStateRepo{store: u.store}
}

// --- repositories ---

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return errStoreDown
	}
	copied := *user
	r.store.users[user.Id] = &copied
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return nil, errStoreDown
	}
	f := parseSpecs(specs)
	for _, user := range r.store.users {
		if f.id != nil && user.Id != *f.id {
			continue
		}
		if f.email != nil && user.Email != *f.email {
			continue
		}
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

type fakeVaultRepo struct{ store *fakeStore }

func (r *fakeVaultRepo) Create(ctx context.Context, vault *entity.Vault) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return errStoreDown
	}
	copied := *vault
	r.store.vaults[vault.Id] = &copied
	return nil
}

func (r *fakeVaultRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Vault, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return nil, errStoreDown
	}
	f := parseSpecs(specs)
	for _, vault := range r.store.vaults {
		if f.id != nil && vault.Id != *f.id {
			continue
		}
		copied := *vault
		return &copied, nil
	}
	return nil, nil
}

type fakeMemberRepo struct{ store *fakeStore }

func (r *fakeMemberRepo) Save(ctx context.Context, member *entity.Member) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return errStoreDown
	}
	copied := *member
	r.store.members[member.Id] = &copied
	return nil
}

func (r *fakeMemberRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Member, error) {
	members, err := r.FindAll(ctx, specs...)
	if err != nil || len(members) == 0 {
		return nil, err
	}
	return members[0], nil
}

func (r *fakeMemberRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return nil, errStoreDown
	}
	f := parseSpecs(specs)
	var result []*entity.Member
	for _, member := range r.store.members {
		if f.id != nil && member.Id != *f.id {
			continue
		}
		if f.vaultId != nil && member.VaultId != *f.vaultId {
			continue
		}
		copied := *member
		result = append(result, &copied)
	}
	return result, nil
}

type fakeMemberIndexRepo struct{ store *fakeStore }

func (r *fakeMemberIndexRepo) Get(ctx context.Context, memberId uuid.UUID) (*entity.MemberIndex, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return nil, errStoreDown
	}
	index, ok := r.store.memberIndex[memberId]
	if !ok {
		return nil, nil
	}
	copied := *index
	return &copied, nil
}

func (r *fakeMemberIndexRepo) Save(ctx context.Context, index *entity.MemberIndex) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return errStoreDown
	}
	copied := *index
	r.store.memberIndex[index.MemberId] = &copied
	return nil
}

type fakeBookRepo struct{ store *fakeStore }

func (r *fakeBookRepo) Save(ctx context.Context, book *entity.Book) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return errStoreDown
	}
	copied := *book
	r.store.books[bookKey(book.VaultId, book.BookId)] = &copied
	return nil
}

func (r *fakeBookRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Book, error) {
	books, err := r.FindAll(ctx, specs...)
	if err != nil || len(books) == 0 {
		return nil, err
	}
	return books[0], nil
}

func (r *fakeBookRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return nil, errStoreDown
	}
	f := parseSpecs(specs)
	var result []*entity.Book
	for _, book := range r.store.books {
		if f.vaultId != nil && book.VaultId != *f.vaultId {
			continue
		}
		if f.bookId != nil && book.BookId != *f.bookId {
			continue
		}
		copied := *book
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, vaultId uuid.UUID, bookId string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return errStoreDown
	}
	delete(r.store.books, bookKey(vaultId, bookId))
	return nil
}

type fakePrivateBookRepo struct{ store *fakeStore }

func (r *fakePrivateBookRepo) Save(ctx context.Context, book *entity.PrivateBook) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return errStoreDown
	}
	copied := *book
	r.store.privateBooks[privateKey(book.VaultId, book.MemberId, book.BookId)] = &copied
	return nil
}

func (r *fakePrivateBookRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PrivateBook, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return nil, errStoreDown
	}
	f := parseSpecs(specs)
	var result []*entity.PrivateBook
	for _, book := range r.store.privateBooks {
		if f.vaultId != nil && book.VaultId != *f.vaultId {
			continue
		}
		if f.memberId != nil && book.MemberId != *f.memberId {
			continue
		}
		if f.bookId != nil && book.BookId != *f.bookId {
			continue
		}
		copied := *book
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakePrivateBookRepo) Delete(ctx context.Context, vaultId, memberId uuid.UUID, bookId string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return errStoreDown
	}
	delete(r.store.privateBooks, privateKey(vaultId, memberId, bookId))
	return nil
}

type fakeStateRepo struct{ store *fakeStore }

func (r *fakeStateRepo) Save(ctx context.Context, state *entity.UserBookState) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return errStoreDown
	}
	copied := *state
	r.store.states[stateKey(state.VaultId, state.BookId, state.MemberId)] = &copied
	return nil
}

func (r *fakeStateRepo) FindOne(ctx context.Context, vaultId uuid.UUID, bookId string, memberId uuid.UUID) (*entity.UserBookState, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return nil, errStoreDown
	}
	state, ok := r.store.states[stateKey(vaultId, bookId, memberId)]
	if !ok {
		return nil, nil
	}
	copied := *state
	return &copied, nil
}

func (r *fakeStateRepo) Delete(ctx context.Context, vaultId uuid.UUID, bookId string, memberId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failAll {
		return errStoreDown
	}
	delete(r.store.states, stateKey(vaultId, bookId, memberId))
	return nil
}

// --- snapshot cache double ---

type fakeSnapshotCache struct {
	mu        sync.Mutex
	snapshots map[uuid.UUID][]*entity.LibraryEntry
}

func newFakeSnapshotCache() *fakeSnapshotCache {
	return &fakeSnapshotCache{snapshots: make(map[uuid.UUID][]*entity.LibraryEntry)}
}

func (c *fakeSnapshotCache) Save(ctx context.Context, memberId uuid.UUID, entries []*entity.LibraryEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[memberId] = entries
	return nil
}

func (c *fakeSnapshotCache) Load(ctx context.Context, memberId uuid.UUID) []*entity.LibraryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entries, ok := c.snapshots[memberId]; ok {
		return entries
	}
	return []*entity.LibraryEntry{}
}

func (c *fakeSnapshotCache) Drop(ctx context.Context, memberId uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snapshots, memberId)
	return nil
}

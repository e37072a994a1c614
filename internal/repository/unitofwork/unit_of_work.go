package unitofwork

import (
	"context"

	"booknest-be/internal/repository/contract"
)

// UnitOfWork groups repository access and lets multi-write operations (the
// upsert/delete paths) run as one transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	VaultRepository() contract.VaultRepository
	MemberRepository() contract.MemberRepository
	MemberIndexRepository() contract.MemberIndexRepository
	BookRepository() contract.BookRepository
	PrivateBookRepository() contract.PrivateBookRepository
	UserBookStateRepository() contract.UserBookStateRepository
}

// RepositoryFactory hands out fresh units of work per operation.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

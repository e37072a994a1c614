package contract

import (
	"context"

	"booknest-be/internal/entity"
	"booknest-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BookRepository interface {
	// Save upserts the canonical shared record for (vault, book id).
	Save(ctx context.Context, book *entity.Book) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Book, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Book, error)
	Delete(ctx context.Context, vaultId uuid.UUID, bookId string) error
}

type PrivateBookRepository interface {
	Save(ctx context.Context, book *entity.PrivateBook) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PrivateBook, error)
	// Delete is a no-op when the row is absent (shared books have none).
	Delete(ctx context.Context, vaultId, memberId uuid.UUID, bookId string) error
}

type UserBookStateRepository interface {
	Save(ctx context.Context, state *entity.UserBookState) error
	// FindOne returns nil without error when the member has no state yet.
	FindOne(ctx context.Context, vaultId uuid.UUID, bookId string, memberId uuid.UUID) (*entity.UserBookState, error)
	Delete(ctx context.Context, vaultId uuid.UUID, bookId string, memberId uuid.UUID) error
}

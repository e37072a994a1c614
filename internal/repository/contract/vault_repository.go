package contract

import (
	"context"

	"booknest-be/internal/entity"
	"booknest-be/internal/repository/specification"

	"github.com/google/uuid"
)

type VaultRepository interface {
	Create(ctx context.Context, vault *entity.Vault) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Vault, error)
}

type MemberRepository interface {
	// Save upserts: joining twice must not fail on the primary key.
	Save(ctx context.Context, member *entity.Member) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Member, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Member, error)
}

type MemberIndexRepository interface {
	// Get returns nil without error when no mapping exists.
	Get(ctx context.Context, memberId uuid.UUID) (*entity.MemberIndex, error)
	// Save overwrites any prior mapping (one vault per member).
	Save(ctx context.Context, index *entity.MemberIndex) error
}

package implementation

import (
	"context"
	"errors"

	"booknest-be/internal/entity"
	"booknest-be/internal/mapper"
	"booknest-be/internal/model"
	"booknest-be/internal/repository/contract"
	"booknest-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VaultRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VaultMapper
}

func NewVaultRepository(db *gorm.DB) contract.VaultRepository {
	return &VaultRepositoryImpl{
		db:     db,
		mapper: mapper.NewVaultMapper(),
	}
}

func (r *VaultRepositoryImpl) Create(ctx context.Context, vault *entity.Vault) error {
	m := r.mapper.ToModel(vault)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*vault = *r.mapper.ToEntity(m)
	return nil
}

func (r *VaultRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Vault, error) {
	var m model.Vault
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

type MemberRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VaultMapper
}

func NewMemberRepository(db *gorm.DB) contract.MemberRepository {
	return &MemberRepositoryImpl{
		db:     db,
		mapper: mapper.NewVaultMapper(),
	}
}

func (r *MemberRepositoryImpl) Save(ctx context.Context, member *entity.Member) error {
	m := r.mapper.MemberToModel(member)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*member = *r.mapper.MemberToEntity(m)
	return nil
}

func (r *MemberRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Member, error) {
	var m model.Member
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MemberToEntity(&m), nil
}

func (r *MemberRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Member, error) {
	var models []*model.Member
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MembersToEntities(models), nil
}

type MemberIndexRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VaultMapper
}

func NewMemberIndexRepository(db *gorm.DB) contract.MemberIndexRepository {
	return &MemberIndexRepositoryImpl{
		db:     db,
		mapper: mapper.NewVaultMapper(),
	}
}

func (r *MemberIndexRepositoryImpl) Get(ctx context.Context, memberId uuid.UUID) (*entity.MemberIndex, error) {
	var m model.MemberIndex
	err := r.db.WithContext(ctx).Where("member_id = ?", memberId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.IndexToEntity(&m), nil
}

func (r *MemberIndexRepositoryImpl) Save(ctx context.Context, index *entity.MemberIndex) error {
	m := r.mapper.IndexToModel(index)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "member_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

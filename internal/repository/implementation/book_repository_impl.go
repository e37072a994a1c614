package implementation

import (
	"context"

	"booknest-be/internal/entity"
	"booknest-be/internal/mapper"
	"booknest-be/internal/model"
	"booknest-be/internal/repository/contract"
	"booknest-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookMapper
}

func NewBookRepository(db *gorm.DB) contract.BookRepository {
	return &BookRepositoryImpl{
		db:     db,
		mapper: mapper.NewBookMapper(),
	}
}

func (r *BookRepositoryImpl) Save(ctx context.Context, book *entity.Book) error {
	m := r.mapper.ToModel(book)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vault_id"}, {Name: "book_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*book = *r.mapper.ToEntity(m)
	return nil
}

func (r *BookRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Book, error) {
	var m model.Book
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BookRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Book, error) {
	var models []*model.Book
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *BookRepositoryImpl) Delete(ctx context.Context, vaultId uuid.UUID, bookId string) error {
	return r.db.WithContext(ctx).
		Where("vault_id = ? AND book_id = ?", vaultId, bookId).
		Delete(&model.Book{}).Error
}

type PrivateBookRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookMapper
}

func NewPrivateBookRepository(db *gorm.DB) contract.PrivateBookRepository {
	return &PrivateBookRepositoryImpl{
		db:     db,
		mapper: mapper.NewBookMapper(),
	}
}

func (r *PrivateBookRepositoryImpl) Save(ctx context.Context, book *entity.PrivateBook) error {
	m := r.mapper.PrivateToModel(book)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vault_id"}, {Name: "member_id"}, {Name: "book_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*book = *r.mapper.PrivateToEntity(m)
	return nil
}

func (r *PrivateBookRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PrivateBook, error) {
	var models []*model.PrivateBook
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.PrivateToEntities(models), nil
}

func (r *PrivateBookRepositoryImpl) Delete(ctx context.Context, vaultId, memberId uuid.UUID, bookId string) error {
	// Deleting an absent row is fine: gorm reports no error for zero
	// affected rows, matching the tolerated delete in the upsert flow.
	return r.db.WithContext(ctx).
		Where("vault_id = ? AND member_id = ? AND book_id = ?", vaultId, memberId, bookId).
		Delete(&model.PrivateBook{}).Error
}

type UserBookStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BookMapper
}

func NewUserBookStateRepository(db *gorm.DB) contract.UserBookStateRepository {
	return &UserBookStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewBookMapper(),
	}
}

func (r *UserBookStateRepositoryImpl) Save(ctx context.Context, state *entity.UserBookState) error {
	m := r.mapper.StateToModel(state)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vault_id"}, {Name: "book_id"}, {Name: "member_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}

func (r *UserBookStateRepositoryImpl) FindOne(ctx context.Context, vaultId uuid.UUID, bookId string, memberId uuid.UUID) (*entity.UserBookState, error) {
	var m model.UserBookState
	err := r.db.WithContext(ctx).
		Where("vault_id = ? AND book_id = ? AND member_id = ?", vaultId, bookId, memberId).
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.StateToEntity(&m), nil
}

func (r *UserBookStateRepositoryImpl) Delete(ctx context.Context, vaultId uuid.UUID, bookId string, memberId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("vault_id = ? AND book_id = ? AND member_id = ?", vaultId, bookId, memberId).
		Delete(&model.UserBookState{}).Error
}

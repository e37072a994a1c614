package mapper

import (
	"booknest-be/internal/entity"
	"booknest-be/internal/model"
)

type BookMapper struct{}

func NewBookMapper() *BookMapper {
	return &BookMapper{}
}

func (m *BookMapper) ToEntity(b *model.Book) *entity.Book {
	if b == nil {
		return nil
	}
	return &entity.Book{
		VaultId:   b.VaultId,
		BookId:    b.BookId,
		Isbn:      b.Isbn,
		Title:     b.Title,
		Author:    b.Author,
		ImageUrl:  b.ImageUrl,
		Category:  b.Category,
		UpdatedAt: b.UpdatedAt,
	}
}

func (m *BookMapper) ToModel(b *entity.Book) *model.Book {
	if b == nil {
		return nil
	}
	return &model.Book{
		VaultId:   b.VaultId,
		BookId:    b.BookId,
		Isbn:      b.Isbn,
		Title:     b.Title,
		Author:    b.Author,
		ImageUrl:  b.ImageUrl,
		Category:  b.Category,
		UpdatedAt: b.UpdatedAt,
	}
}

func (m *BookMapper) ToEntities(books []*model.Book) []*entity.Book {
	entities := make([]*entity.Book, len(books))
	for i, b := range books {
		entities[i] = m.ToEntity(b)
	}
	return entities
}

func (m *BookMapper) PrivateToEntity(b *model.PrivateBook) *entity.PrivateBook {
	if b == nil {
		return nil
	}
	return &entity.PrivateBook{
		VaultId:   b.VaultId,
		MemberId:  b.MemberId,
		BookId:    b.BookId,
		Isbn:      b.Isbn,
		Title:     b.Title,
		Author:    b.Author,
		ImageUrl:  b.ImageUrl,
		Category:  b.Category,
		UpdatedAt: b.UpdatedAt,
	}
}

func (m *BookMapper) PrivateToModel(b *entity.PrivateBook) *model.PrivateBook {
	if b == nil {
		return nil
	}
	return &model.PrivateBook{
		VaultId:   b.VaultId,
		MemberId:  b.MemberId,
		BookId:    b.BookId,
		Isbn:      b.Isbn,
		Title:     b.Title,
		Author:    b.Author,
		ImageUrl:  b.ImageUrl,
		Category:  b.Category,
		UpdatedAt: b.UpdatedAt,
	}
}

func (m *BookMapper) PrivateToEntities(books []*model.PrivateBook) []*entity.PrivateBook {
	entities := make([]*entity.PrivateBook, len(books))
	for i, b := range books {
		entities[i] = m.PrivateToEntity(b)
	}
	return entities
}

func (m *BookMapper) StateToEntity(s *model.UserBookState) *entity.UserBookState {
	if s == nil {
		return nil
	}
	return &entity.UserBookState{
		VaultId:   s.VaultId,
		BookId:    s.BookId,
		MemberId:  s.MemberId,
		Read:      s.Read,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *BookMapper) StateToModel(s *entity.UserBookState) *model.UserBookState {
	if s == nil {
		return nil
	}
	return &model.UserBookState{
		VaultId:   s.VaultId,
		BookId:    s.BookId,
		MemberId:  s.MemberId,
		Read:      s.Read,
		UpdatedAt: s.UpdatedAt,
	}
}

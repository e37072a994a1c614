package model

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	VaultId   uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookId    string    `gorm:"primaryKey"`
	Isbn      string
	Title     string
	Author    string
	ImageUrl  string
	Category  string
	UpdatedAt time.Time
}

func (Book) TableName() string { return "books" }

type PrivateBook struct {
	VaultId   uuid.UUID `gorm:"type:uuid;primaryKey"`
	MemberId  uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookId    string    `gorm:"primaryKey"`
	Isbn      string
	Title     string
	Author    string
	ImageUrl  string
	Category  string
	UpdatedAt time.Time
}

func (PrivateBook) TableName() string { return "private_books" }

type UserBookState struct {
	VaultId   uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookId    string    `gorm:"primaryKey"`
	MemberId  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Read      bool
	UpdatedAt time.Time
}

func (UserBookState) TableName() string { return "user_book_states" }

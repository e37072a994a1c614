package entity

import (
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityShared  Visibility = "shared"
	VisibilityPrivate Visibility = "private"
)

// Book is the canonical shared record, one per vault per book id.
type Book struct {
	VaultId   uuid.UUID
	BookId    string
	Isbn      string
	Title     string
	Author    string
	ImageUrl  string
	Category  string
	UpdatedAt time.Time
}

// PrivateBook mirrors Book but is keyed by member. Its presence means the
// member keeps that book off the shared shelf.
type PrivateBook struct {
	VaultId   uuid.UUID
	MemberId  uuid.UUID
	BookId    string
	Isbn      string
	Title     string
	Author    string
	ImageUrl  string
	Category  string
	UpdatedAt time.Time
}

// UserBookState is the per-member read flag for a book. It exists
// independently of visibility.
type UserBookState struct {
	VaultId   uuid.UUID
	BookId    string
	MemberId  uuid.UUID
	Read      bool
	UpdatedAt time.Time
}

// BookMetadata is what a lookup source resolves for an ISBN. The resolver
// guarantees every field is populated or fails outright.
type BookMetadata struct {
	Title    string
	Author   string
	ImageUrl string
	Category string
}

// LibraryEntry is the computed per-member view of a book: canonical or
// private data merged with the member's read state. Never persisted to the
// document store, only to the offline snapshot cache.
type LibraryEntry struct {
	BookId     string     `json:"book_id"`
	Isbn       string     `json:"isbn"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	ImageUrl   string     `json:"image_url"`
	Category   string     `json:"category"`
	Visibility Visibility `json:"visibility"`
	Read       bool       `json:"read"`
}

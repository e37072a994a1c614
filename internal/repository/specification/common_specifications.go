package specification

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by primary id
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByVaultID scopes a query to one family vault
type ByVaultID struct {
	VaultID uuid.UUID
}

func (s ByVaultID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("vault_id = ?", s.VaultID)
}

// ByMemberID scopes a query to one member
type ByMemberID struct {
	MemberID uuid.UUID
}

func (s ByMemberID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("member_id = ?", s.MemberID)
}

// ByBookID filters by the derived book id
type ByBookID struct {
	BookID string
}

func (s ByBookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("book_id = ?", s.BookID)
}

// ByEmail filters identity records
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Vault is a family's shared data partition. Created on first bootstrap and
// immutable afterwards except for membership additions.
type Vault struct {
	Id        uuid.UUID
	Name      string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

type MemberRole string

const (
	MemberRoleParent MemberRole = "parent"
	MemberRoleChild  MemberRole = "child"
)

// Member is one authenticated individual inside a vault.
type Member struct {
	Id       uuid.UUID
	VaultId  uuid.UUID
	Name     string
	Role     MemberRole
	JoinedAt time.Time
}

// MemberIndex maps a member to their current vault. One-to-one: joining a
// new vault overwrites the mapping.
type MemberIndex struct {
	MemberId  uuid.UUID
	VaultId   uuid.UUID
	UpdatedAt time.Time
}

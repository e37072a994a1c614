package model

import (
	"time"

	"github.com/google/uuid"
)

type Vault struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	CreatedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (Vault) TableName() string { return "vaults" }

type Member struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey"`
	VaultId  uuid.UUID `gorm:"type:uuid;index"`
	Name     string
	Role     string
	JoinedAt time.Time
}

func (Member) TableName() string { return "members" }

type MemberIndex struct {
	MemberId  uuid.UUID `gorm:"type:uuid;primaryKey"`
	VaultId   uuid.UUID `gorm:"type:uuid"`
	UpdatedAt time.Time
}

func (MemberIndex) TableName() string { return "member_index" }

package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex"`
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }

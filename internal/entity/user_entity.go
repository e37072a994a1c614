package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity-provider record backing a member. The user id doubles
// as the member id inside a vault.
type User struct {
	Id           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

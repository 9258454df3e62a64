package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	// RefreshTokenHash holds the argon2id hash of the most recently issued
	// refresh token; nil when the user has never logged in or has logged out.
	RefreshTokenHash *string
	CreatedAt        time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// AuthResult is what Register/Login/Refresh hand back to the transport layer:
// the user record plus the freshly minted token pair.
type AuthResult struct {
	User      User
	TokenPair TokenPair
}

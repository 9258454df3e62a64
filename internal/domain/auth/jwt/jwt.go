package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload carried by both token classes: subject (user id),
// email, issued-at and expiry.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenUtil signs and verifies the two token classes. Access and refresh
// tokens are signed with independent secrets, so a token of one class never
// validates through the other class's path.
type TokenUtil interface {
	GenerateAccessToken(userID uuid.UUID, email string) (token string, exp time.Time, err error)
	GenerateRefreshToken(userID uuid.UUID, email string) (token string, exp time.Time, err error)
	ValidateAccessToken(raw string) (Claims, error)
	ValidateRefreshToken(raw string) (Claims, error)
}

package repo

import (
	"context"

	"github.com/avelorn/auth-service/internal/domain/auth/model"
	"github.com/google/uuid"
)

// UserRepo is the credential store contract. Implementations must surface
// customErrors.ErrNotFound for missing records and customErrors.ErrAlreadyExists
// for duplicate emails.
type UserRepo interface {
	CreateUser(ctx context.Context, user model.User) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
	// UpdateRefreshTokenHash overwrites the stored refresh-token hash for the
	// user; nil clears it. Rotation always overwrites, never appends.
	UpdateRefreshTokenHash(ctx context.Context, id uuid.UUID, hash *string) error
}

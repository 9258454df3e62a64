package service

import (
	"context"
	"errors"
	"time"

	"github.com/avelorn/auth-service/internal/adapters/transport/http/dto"
	"github.com/avelorn/auth-service/internal/app/auth/hash"
	customErrors "github.com/avelorn/auth-service/internal/domain/auth/errors"
	"github.com/avelorn/auth-service/internal/domain/auth/jwt"
	"github.com/avelorn/auth-service/internal/domain/auth/model"
	"github.com/avelorn/auth-service/internal/domain/auth/repo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type authService struct {
	userRepo repo.UserRepo
	jwtUtil  jwt.TokenUtil
	hasher   *hash.Hasher
	v        *validator.Validate
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (model.AuthResult, error)
	Login(context.Context, dto.LoginDTO) (model.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (model.AuthResult, error)
	Validate(ctx context.Context, accessToken string) (model.User, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

func New(
	ur repo.UserRepo,
	jm jwt.TokenUtil,
	h *hash.Hasher,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, jwtUtil: jm, hasher: h, v: v,
	}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.AuthResult, error) {
	if err := a.v.Struct(in); err != nil {
		return model.AuthResult{}, customErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: passwordHash,
	}
	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.AuthResult{}, customErrors.ErrAlreadyExists
		}
		return model.AuthResult{}, customErrors.WrapInternal(err, "Register")
	}

	return a.issueTokens(ctx, user)
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.AuthResult, error) {
	if err := a.v.Struct(in); err != nil {
		return model.AuthResult{}, customErrors.NewInvalidArgument(err.Error())
	}

	// Unknown email and wrong password must be indistinguishable to the
	// caller, so both collapse to ErrInvalidCredentials.
	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.AuthResult{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.AuthResult{}, customErrors.WrapInternal(err, "Login")
	}

	if !a.hasher.Verify(in.Password, user.PasswordHash) {
		return model.AuthResult{}, customErrors.ErrInvalidCredentials
	}

	// Issuing a fresh pair overwrites the stored refresh hash, which
	// invalidates any previously issued refresh token for this user.
	return a.issueTokens(ctx, user)
}

// Refresh rotates the token pair. The presented refresh token is single-use:
// every verification failure, from a bad signature to a stale hash, funnels
// into the one ErrInvalidToken so the cause is never exposed.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (model.AuthResult, error) {
	claims, err := a.jwtUtil.ValidateRefreshToken(refreshToken)
	if err != nil {
		return model.AuthResult{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.AuthResult{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.AuthResult{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.AuthResult{}, customErrors.WrapInternal(err, "Refresh")
	}

	if user.RefreshTokenHash == nil {
		return model.AuthResult{}, customErrors.ErrInvalidToken
	}
	if !a.hasher.Verify(refreshToken, *user.RefreshTokenHash) {
		// Either a forged token or one superseded by a later rotation.
		return model.AuthResult{}, customErrors.ErrInvalidToken
	}

	return a.issueTokens(ctx, user)
}

func (a *authService) Validate(ctx context.Context, accessToken string) (model.User, error) {
	claims, err := a.jwtUtil.ValidateAccessToken(accessToken)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, uid)
	if err != nil {
		return model.User{}, customErrors.ErrInvalidToken
	}
	return user, nil
}

// Logout clears the stored refresh hash so outstanding refresh tokens become
// permanently unusable. Repeating it for an already logged-out user is fine.
func (a *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := a.userRepo.UpdateRefreshTokenHash(ctx, userID, nil); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}
	return nil
}

func (a *authService) issueTokens(ctx context.Context, user model.User) (model.AuthResult, error) {
	at, atExp, err := a.jwtUtil.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return model.AuthResult{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}
	rt, rtExp, err := a.jwtUtil.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return model.AuthResult{}, customErrors.WrapInternal(err, "GenerateRefreshToken")
	}

	rtHash, err := a.hasher.Hash(rt)
	if err != nil {
		return model.AuthResult{}, customErrors.WrapInternal(err, "HashRefreshToken")
	}
	if err = a.userRepo.UpdateRefreshTokenHash(ctx, user.ID, &rtHash); err != nil {
		return model.AuthResult{}, customErrors.WrapInternal(err, "StoreRefreshHash")
	}

	now := time.Now()
	user.RefreshTokenHash = &rtHash

	return model.AuthResult{
		User: user,
		TokenPair: model.TokenPair{
			AccessToken:  at,
			RefreshToken: rt,
			AccessTTL:    atExp.Sub(now),
			RefreshTTL:   rtExp.Sub(now),
		},
	}, nil
}

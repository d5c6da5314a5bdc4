package service

import (
	"context"
	"errors"
	"fmt"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/repository"
	"community-portal-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

// authService is the identity adapter: it wraps an external account record
// (username, email, password hash) into exactly one SystersUser profile and
// authenticates approvers against it.
type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, accountID int32, username, email, password string) (*domain.SystersUser, error) {
	if err := domain.ValidateRequired("username", username); err != nil {
		return nil, err
	}
	if err := domain.ValidateRequired("email", email); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, domain.NewValidationError("password", "Password must be at least 8 characters.")
	}
	if _, err := s.userRepo.GetByUserID(ctx, accountID); err == nil {
		return nil, domain.NewValidationError("user_id", "A profile already exists for this account.")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.SystersUser{
		UserID:       accountID,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.SystersUser, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.NewValidationError("email", "Invalid email or password.")
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.NewValidationError("email", "Invalid email or password.")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

func (s *authService) GetProfile(ctx context.Context, profileID int32) (*domain.SystersUser, error) {
	return s.userRepo.GetByID(ctx, profileID)
}

func (s *authService) UpdateProfile(ctx context.Context, user *domain.SystersUser) error {
	return s.userRepo.Update(ctx, user)
}

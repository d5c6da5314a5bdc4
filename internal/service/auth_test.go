package service

import (
	"context"
	"testing"

	"community-portal-backend/internal/domain"
	"community-portal-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*MockUserRepo, AuthService) {
	userRepo := new(MockUserRepo)
	tokens := security.NewTokenManager("test-secret-key-at-least-32-chars!", 60)
	return userRepo, NewAuthService(userRepo, tokens)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo, svc := newAuthFixture()

		userRepo.On("GetByUserID", ctx, int32(42)).Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.SystersUser")).Return(nil)

		user, err := svc.Signup(ctx, 42, "jane", "jane@example.com", "longpassword")
		assert.NoError(t, err)
		assert.Equal(t, int32(42), user.UserID)
		assert.NotEqual(t, "longpassword", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longpassword")))
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, svc := newAuthFixture()

		user, err := svc.Signup(ctx, 42, "jane", "jane@example.com", "short")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "password", verr.Field)
		assert.Nil(t, user)
	})

	t.Run("DuplicateProfile", func(t *testing.T) {
		userRepo, svc := newAuthFixture()

		userRepo.On("GetByUserID", ctx, int32(42)).Return(&domain.SystersUser{ID: 1, UserID: 42}, nil)

		user, err := svc.Signup(ctx, 42, "jane", "jane@example.com", "longpassword")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "user_id", verr.Field)
		assert.Nil(t, user)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("longpassword"), bcrypt.DefaultCost)
	stored := &domain.SystersUser{ID: 1, UserID: 42, Username: "jane",
		Email: "jane@example.com", PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "jane@example.com").Return(stored, nil)

		token, user, err := svc.Login(ctx, "jane@example.com", "longpassword")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int32(1), user.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "jane@example.com").Return(stored, nil)

		token, user, err := svc.Login(ctx, "jane@example.com", "wrong")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Empty(t, token)
		assert.Nil(t, user)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

		// Same error as a wrong password so the response never reveals
		// which accounts exist.
		token, user, err := svc.Login(ctx, "nobody@example.com", "longpassword")
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Empty(t, token)
		assert.Nil(t, user)
	})
}

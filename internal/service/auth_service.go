package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "courseapi/internal/errors"
	"courseapi/internal/model"
	"courseapi/internal/repository"
)

const bcryptCost = 10

// AuthService verifies submitted credentials.
type AuthService interface {
	Verify(ctx context.Context, email, password string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	log      *slog.Logger
}

// NewAuthService creates a new credential verifier.
func NewAuthService(userRepo repository.UserRepository, log *slog.Logger) AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &authService{
		userRepo: userRepo,
		log:      log,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknownUserHash is compared against when the email matches nobody, so both
// rejection paths pay for one bcrypt comparison.
func unknownUserHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("unknown-user-password"), bcryptCost)
	})
	return dummyHash
}

// Verify resolves email and password to a user.
// It returns apperrors.ErrUserNotFound or apperrors.ErrBadCredentials on rejection.
func (s *authService) Verify(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(unknownUserHash(), []byte(password))
			s.log.WarnContext(ctx, "user not found for username", "email", email)
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.WarnContext(ctx, "authentication failure for username", "email", email)
		return nil, apperrors.ErrBadCredentials
	}

	return user, nil
}

package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mateussf99/sd-middleware-service/internal/clinical/jwt"
	"github.com/mateussf99/sd-middleware-service/internal/clinical/model"
	"github.com/mateussf99/sd-middleware-service/internal/clinical/repository"
)

var (
	ErrInvalidCredentials = errors.New("bad email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotOwner           = errors.New("users can only access their own data")
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (accessToken string, err error)
	GetUser(ctx context.Context, callerID, userID int64) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return jwt.GenerateToken(user)
}

func (s *authService) GetUser(ctx context.Context, callerID, userID int64) (*model.User, error) {
	// Ownership is checked before existence so unknown ids do not leak.
	if callerID != userID {
		return nil, ErrNotOwner
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

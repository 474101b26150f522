package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/quipufin/factoring-backend/internal/api/request"
	"github.com/quipufin/factoring-backend/internal/apperrors"
	"github.com/quipufin/factoring-backend/internal/auth"
	"github.com/quipufin/factoring-backend/internal/model"
	"github.com/quipufin/factoring-backend/internal/repository"
	"github.com/quipufin/factoring-backend/internal/validation"
)

// AuthService handles account registration and login.
type AuthService struct {
	userRepo *repository.UserRepository
	sessions *auth.Sessions
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo *repository.UserRepository, sessions *auth.Sessions) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Session is the result of a successful login.
type Session struct {
	Token   string  `json:"token"`
	UserID  string  `json:"userId"`
	Balance float64 `json:"balance"`
}

// Register creates a new user with a hashed password and a zero balance.
func (s *AuthService) Register(req request.RegisterRequest) (model.User, error) {
	if err := validation.ValidateRegister(req); err != nil {
		return model.User{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Balance:      0,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// Login verifies the credentials and mints a session token.
func (s *AuthService) Login(req request.LoginRequest) (Session, error) {
	user, err := s.userRepo.GetUserOnEmail(req.Email)
	if err != nil {
		// Unknown emails and wrong passwords are indistinguishable to the caller.
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return Session{}, apperrors.ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return Session{}, err
	}

	token, err := s.sessions.Mint(user.ID)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:   token,
		UserID:  user.ID,
		Balance: user.Balance,
	}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"gellies-store/internal/auth"
	"gellies-store/internal/model"
	"gellies-store/internal/repository"

	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	hasher   auth.Hasher
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, hasher auth.Hasher, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a user with role "user".
func (s *authService) Register(ctx context.Context, req *model.CredentialsRequest) error {
	if req == nil || req.Email == "" || req.Password == "" {
		return model.ErrMissingCredentials
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user")
		return fmt.Errorf("failed to register user: %w", err)
	}
	if existing != nil {
		s.logger.Debug().Str("email", req.Email).Msg("registration rejected, email taken")
		return model.ErrUserExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return fmt.Errorf("failed to register user: %w", err)
	}

	user := &model.User{
		Email:    req.Email,
		Password: hash,
		Role:     model.RoleUser,
	}

	// The unique index settles concurrent registrations of the same email.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserExists) {
			return model.ErrUserExists
		}
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")

	return nil
}

// Login returns the user owning the credentials. Unknown emails and wrong
// passwords yield the same error.
func (s *authService) Login(ctx context.Context, req *model.CredentialsRequest) (*model.User, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.ErrMissingCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if user == nil {
		s.logger.Debug().Msg("login for unknown email")
		return nil, model.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.Password, req.Password); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			s.logger.Debug().Str("user_id", user.ID).Msg("login with wrong password")
			return nil, model.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to verify password")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return user, nil
}

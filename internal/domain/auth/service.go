package auth

import (
	"context"
	"fmt"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/core/tx"
	"stockd/pkg/logger"
)

// Service handles registration and login.
type Service struct {
	repo      Repository
	tokens    *TokenManager
	txManager tx.Manager
}

// NewService creates a new auth service.
func NewService(repo Repository, tokens *TokenManager, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		txManager: txManager,
	}
}

// Register creates a user account. Only administrators may call this;
// the HTTP layer enforces that.
func (s *Service) Register(ctx context.Context, username, email, password string, roles ...string) (*User, error) {
	if len(roles) == 0 {
		roles = []string{RoleViewer}
	}

	u, err := NewUser(username, email, password, roles...)
	if err != nil {
		return nil, err
	}
	if err := u.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if exists {
			return apperror.NewDuplicate("user", "username", username)
		}
		return s.repo.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", u.ID, "username", username)
	return u, nil
}

// Login verifies credentials and returns a signed access token.
// Wrong username and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (string, *User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return "", nil, apperror.NewUnauthorized("invalid credentials")
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if !u.Active || !u.CheckPassword(password) {
		return "", nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		return "", nil, err
	}

	logger.Info(ctx, "user logged in", "user_id", u.ID, "username", username)
	return token, u, nil
}

// GetByID retrieves a user.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// ValidateToken verifies an access token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokens.Validate(tokenString)
}

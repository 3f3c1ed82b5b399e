package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/skywebdev/server/internal/auth"
	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/validation"
)

// ErrPasswordMismatch reports a failed current-password check during a
// password update.
var ErrPasswordMismatch = errors.New("current password is incorrect")

type Service struct {
	repo   Repository
	tokens *auth.TokenManager
	logger zerolog.Logger
}

func NewService(repo Repository, tokens *auth.TokenManager, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger.With().Str("component", "admins").Logger(),
	}
}

type RegisterParams struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// Register creates an administrator. The first account ever created is
// assigned super-admin; every subsequent one defaults to admin.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Admin, string, error) {
	if err := validation.Struct(params); err != nil {
		return nil, "", err
	}
	email := strings.ToLower(strings.TrimSpace(params.Email))

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("count admins: %w", err)
	}
	role := string(auth.RoleAdmin)
	if count == 0 {
		role = string(auth.RoleSuperAdmin)
	}

	hash, err := auth.HashPassword(strings.TrimSpace(params.Password))
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	admin := &Admin{
		Name:         strings.TrimSpace(params.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	id, err := s.repo.Insert(ctx, admin)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, "", domain.Conflict("admin already exists with this email")
		}
		return nil, "", fmt.Errorf("insert admin: %w", err)
	}
	admin.ID = id

	token, err := s.tokens.Issue(admin.ID, admin.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("admin_id", admin.ID).Str("role", admin.Role).Msg("administrator registered")
	return admin, token, nil
}

// Authenticate verifies credentials and issues a token. Unknown email and
// wrong password produce the identical ErrInvalidCredentials so accounts
// cannot be enumerated; a deactivated account fails distinctly.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (*Admin, string, error) {
	if err := validation.Struct(creds); err != nil {
		return nil, "", err
	}
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	password := strings.TrimSpace(creds.Password)

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("lookup admin: %w", err)
	}

	if !admin.IsActive {
		return nil, "", domain.ErrAccountDeactivated
	}

	if !auth.CheckPassword(admin.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.ID, admin.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return admin, token, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Admin, error) {
	return s.repo.GetByID(ctx, id)
}

// HasAdmins reports whether any administrator account exists. Registration
// is public only while this is false.
func (s *Service) HasAdmins(ctx context.Context) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return count > 0, nil
}

// UpdatePassword replaces the caller's password after verifying the current
// one, and reissues a token.
func (s *Service) UpdatePassword(ctx context.Context, id string, change PasswordChange) (string, error) {
	if err := validation.Struct(change); err != nil {
		return "", err
	}
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !auth.CheckPassword(admin.PasswordHash, change.CurrentPassword) {
		return "", ErrPasswordMismatch
	}

	hash, err := auth.HashPassword(change.NewPassword)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return "", fmt.Errorf("update password: %w", err)
	}

	token, err := s.tokens.Issue(admin.ID, admin.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

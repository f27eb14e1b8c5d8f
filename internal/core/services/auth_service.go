package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/aquaguard/api/internal/core/domain"
	"github.com/aquaguard/api/internal/core/ports"
)

const minPasswordLength = 8

// authService orchestrates login, registration and token refresh. Every
// lower-layer failure on a credential path is collapsed into
// domain.ErrInvalidCredentials so callers cannot probe which step failed.
type authService struct {
	userRepo ports.UserRepository
	hasher   ports.PasswordHasher
	issuer   ports.AccessTokenIssuer
	refresh  ports.RefreshTokenManager
}

func NewAuthService(
	userRepo ports.UserRepository,
	hasher ports.PasswordHasher,
	issuer ports.AccessTokenIssuer,
	refresh ports.RefreshTokenManager,
) ports.AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		refresh:  refresh,
	}
}

func (s *authService) Login(ctx context.Context, input ports.LoginInput) (*ports.AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		// Burn a hash comparison anyway so unknown emails and wrong passwords
		// take comparable time.
		s.hasher.Verify(input.Password, dummyHash)
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	// Each login starts a new rotation family; the session lineages of other
	// devices stay independent and individually revocable.
	return s.issueTokens(ctx, user)
}

func (s *authService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        strings.TrimSpace(input.Email),
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Roles:        []string{domain.RoleUser},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	secret, record, err := s.refresh.Rotate(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, record.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &ports.AuthResult{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
		RefreshToken:         secret,
		User:                 sanitize(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.refresh.Revoke(ctx, refreshToken, domain.RevokeReasonLogout)
}

func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	accessToken, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, _, err := s.refresh.IssueNew(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &ports.AuthResult{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
		RefreshToken:         refreshToken,
		User:                 sanitize(user),
	}, nil
}

// sanitize strips the password hash before the user leaves the service layer.
func sanitize(user *domain.User) *domain.User {
	cp := *user
	cp.PasswordHash = ""
	return &cp
}

// dummyHash is a bcrypt hash of a random throwaway value, compared against
// when the email is unknown to keep login timing uniform.
var dummyHash = func() string {
	h, _ := NewBcryptHasher(0).Hash("aquaguard-dummy-" + time.Now().Format(time.RFC3339Nano))
	return h
}()

func validateRegistration(input ports.RegisterInput) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	return validatePassword(input.Password)
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain at least one letter and one digit", domain.ErrInvalidInput)
	}
	return nil
}

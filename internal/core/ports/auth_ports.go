package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aquaguard/api/internal/core/domain"
)

// RefreshTokenRepository persists refresh-token records. The rotation
// atomicity guarantee lives here, in the shared store, so that multiple
// service instances stay safe.
type RefreshTokenRepository interface {
	Store(ctx context.Context, token *domain.RefreshToken) error

	// GetByHash returns nil, nil when no record matches.
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)

	// ConsumeAndRotate marks the record oldID consumed and inserts next in the
	// same transaction. It returns domain.ErrRotationConflict when oldID is
	// already consumed or revoked, which is the replay/race guard.
	ConsumeAndRotate(ctx context.Context, oldID uuid.UUID, next *domain.RefreshToken) error

	// RevokeFamily marks every record of the family revoked with the given reason.
	RevokeFamily(ctx context.Context, familyID uuid.UUID, reason string) error
}

// PasswordHasher produces self-describing password hashes and verifies
// candidates in constant time. Verify returns false on mismatch, never an error.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// AccessTokenClaims is the verified content of an access token. It is never
// persisted and never looked up in storage.
type AccessTokenClaims struct {
	UserID    int64
	Email     string
	Roles     []string
	ExpiresAt time.Time
}

// AccessTokenIssuer builds and verifies short-lived signed bearer tokens.
// Verification is stateless: signature and expiry only, zero clock skew.
type AccessTokenIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
	Verify(token string) (*AccessTokenClaims, error)
}

// RefreshTokenManager owns the lifecycle of opaque refresh secrets: issuance
// of new rotation families, one-time rotation, and reuse detection.
type RefreshTokenManager interface {
	// IssueNew starts a fresh rotation family for the user and returns the
	// plaintext secret alongside the stored record.
	IssueNew(ctx context.Context, userID int64) (secret string, record *domain.RefreshToken, err error)

	// Rotate exchanges a presented secret for its successor in the same
	// family. Any reuse of an already-consumed or revoked secret revokes the
	// whole family and surfaces as domain.ErrInvalidCredentials.
	Rotate(ctx context.Context, presented string) (secret string, record *domain.RefreshToken, err error)

	// Revoke revokes the family of the presented secret. Unknown secrets are
	// a no-op.
	Revoke(ctx context.Context, presented string, reason string) error
}

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult is the uniform success shape of Login, Register and Refresh.
type AuthResult struct {
	AccessToken          string       `json:"access_token"`
	AccessTokenExpiresAt time.Time    `json:"access_token_expires_at"`
	RefreshToken         string       `json:"refresh_token"`
	User                 *domain.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
}

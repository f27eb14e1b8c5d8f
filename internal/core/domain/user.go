package domain

import (
	"time"

	"github.com/google/uuid"
)

// Built-in role names seeded at startup.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// RefreshToken is one link in a rotation family. Only the SHA-256 hash of the
// opaque secret is stored; the plaintext is handed to the client once and never
// persisted. At most one row per family may be un-consumed and un-revoked at
// any time.
type RefreshToken struct {
	ID            uuid.UUID `json:"id"`
	UserID        int64     `json:"user_id"`
	TokenHash     string    `json:"-"`
	FamilyID      uuid.UUID `json:"family_id"`
	IssuedAt      time.Time `json:"issued_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	Consumed      bool      `json:"consumed"`
	Revoked       bool      `json:"revoked"`
	RevokedReason *string   `json:"revoked_reason,omitempty"`
}

// Revocation reasons recorded on refresh_tokens rows.
const (
	RevokeReasonReuse  = "reuse_detected"
	RevokeReasonLogout = "logout"
)

package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aquaguard/api/internal/core/domain"
	"github.com/aquaguard/api/internal/core/ports"
)

// refreshTokenManager issues opaque high-entropy refresh secrets and rotates
// them on use. Presenting an already-consumed secret is treated as evidence of
// theft: the entire rotation family is revoked on the spot.
type refreshTokenManager struct {
	repo ports.RefreshTokenRepository
	ttl  time.Duration
}

func NewRefreshTokenManager(repo ports.RefreshTokenRepository, ttl time.Duration) ports.RefreshTokenManager {
	return &refreshTokenManager{repo: repo, ttl: ttl}
}

func (m *refreshTokenManager) IssueNew(ctx context.Context, userID int64) (string, *domain.RefreshToken, error) {
	secret, record, err := m.newRecord(userID, uuid.New())
	if err != nil {
		return "", nil, err
	}
	if err := m.repo.Store(ctx, record); err != nil {
		return "", nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return secret, record, nil
}

func (m *refreshTokenManager) Rotate(ctx context.Context, presented string) (string, *domain.RefreshToken, error) {
	record, err := m.repo.GetByHash(ctx, hashSecret(presented))
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if record == nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if record.Consumed || record.Revoked {
		// Reuse event: this secret was already exchanged or its family is
		// dead. Kill the whole lineage before answering.
		m.revokeFamilyForReuse(ctx, record)
		return "", nil, domain.ErrInvalidCredentials
	}

	if time.Now().After(record.ExpiresAt) {
		return "", nil, domain.ErrInvalidCredentials
	}

	secret, next, err := m.newRecord(record.UserID, record.FamilyID)
	if err != nil {
		return "", nil, err
	}

	if err := m.repo.ConsumeAndRotate(ctx, record.ID, next); err != nil {
		if errors.Is(err, domain.ErrRotationConflict) {
			// A concurrent rotation won the conditional update. Same token
			// presented twice, so same treatment as reuse.
			m.revokeFamilyForReuse(ctx, record)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return secret, next, nil
}

func (m *refreshTokenManager) Revoke(ctx context.Context, presented string, reason string) error {
	record, err := m.repo.GetByHash(ctx, hashSecret(presented))
	if err != nil {
		return fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if record == nil {
		return nil
	}
	return m.repo.RevokeFamily(ctx, record.FamilyID, reason)
}

func (m *refreshTokenManager) revokeFamilyForReuse(ctx context.Context, record *domain.RefreshToken) {
	slog.WarnContext(ctx, "refresh token reuse detected, revoking family",
		"user_id", record.UserID, "family_id", record.FamilyID)
	if err := m.repo.RevokeFamily(ctx, record.FamilyID, domain.RevokeReasonReuse); err != nil {
		slog.ErrorContext(ctx, "failed to revoke token family",
			"family_id", record.FamilyID, "error", err)
	}
}

func (m *refreshTokenManager) newRecord(userID int64, familyID uuid.UUID) (string, *domain.RefreshToken, error) {
	secret, err := generateSecret()
	if err != nil {
		return "", nil, err
	}
	now := time.Now()
	record := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hashSecret(secret),
		FamilyID:  familyID,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}
	return secret, record, nil
}

func generateSecret() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

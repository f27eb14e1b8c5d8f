package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aquaguard/api/internal/core/domain"
	"github.com/aquaguard/api/internal/core/ports"
)

type authRepository struct {
	db *sql.DB
}

func NewAuthRepository(db *sql.DB) ports.RefreshTokenRepository {
	return &authRepository{db: db}
}

func (r *authRepository) Store(ctx context.Context, token *domain.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, family_id, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.FamilyID, token.IssuedAt, token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

func (r *authRepository) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, family_id, issued_at, expires_at, consumed, revoked, revoked_reason
		FROM refresh_tokens
		WHERE token_hash = $1
	`
	token := &domain.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID, &token.UserID, &token.TokenHash, &token.FamilyID,
		&token.IssuedAt, &token.ExpiresAt, &token.Consumed, &token.Revoked, &token.RevokedReason,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return token, nil
}

// ConsumeAndRotate retires the old record and installs its successor in one
// transaction. The conditional UPDATE is the whole race guard: of any number
// of concurrent rotations of the same record, exactly one sees a row flip
// from un-consumed to consumed; the rest get ErrRotationConflict.
func (r *authRepository) ConsumeAndRotate(ctx context.Context, oldID uuid.UUID, next *domain.RefreshToken) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	consume := `
		UPDATE refresh_tokens
		SET consumed = true
		WHERE id = $1 AND consumed = false AND revoked = false
	`
	res, err := tx.ExecContext(ctx, consume, oldID)
	if err != nil {
		return fmt.Errorf("failed to consume refresh token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrRotationConflict
	}

	insert := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, family_id, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, insert,
		next.ID, next.UserID, next.TokenHash, next.FamilyID, next.IssuedAt, next.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert successor token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *authRepository) RevokeFamily(ctx context.Context, familyID uuid.UUID, reason string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked = true, revoked_reason = $2
		WHERE family_id = $1 AND revoked = false
	`
	if _, err := r.db.ExecContext(ctx, query, familyID, reason); err != nil {
		return fmt.Errorf("failed to revoke token family: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaguard/api/internal/core/domain"
)

func TestRefreshTokenManager_IssueNew(t *testing.T) {
	repo := newFakeTokenRepo()
	manager := NewRefreshTokenManager(repo, 24*time.Hour)

	secret, record, err := manager.IssueNew(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, secret)
	assert.Equal(t, int64(1), record.UserID)
	assert.False(t, record.Consumed)
	assert.False(t, record.Revoked)
	assert.NotEqual(t, secret, record.TokenHash, "plaintext secret must not be stored")

	stored, err := repo.GetByHash(context.Background(), record.TokenHash)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestRefreshTokenManager_NewFamiliesAreIndependent(t *testing.T) {
	repo := newFakeTokenRepo()
	manager := NewRefreshTokenManager(repo, 24*time.Hour)

	_, first, err := manager.IssueNew(context.Background(), 1)
	require.NoError(t, err)
	_, second, err := manager.IssueNew(context.Background(), 1)
	require.NoError(t, err)

	assert.NotEqual(t, first.FamilyID, second.FamilyID)
}

func TestRefreshTokenManager_RotateSucceedsOnce(t *testing.T) {
	repo := newFakeTokenRepo()
	manager := NewRefreshTokenManager(repo, 24*time.Hour)
	ctx := context.Background()

	secret, record, err := manager.IssueNew(ctx, 1)
	require.NoError(t, err)

	newSecret, newRecord, err := manager.Rotate(ctx, secret)
	require.NoError(t, err)
	assert.NotEqual(t, secret, newSecret)
	assert.Equal(t, record.FamilyID, newRecord.FamilyID, "rotation stays in the same family")

	// Second presentation of the consumed secret is a reuse event.
	_, _, err = manager.Rotate(ctx, secret)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.True(t, repo.familyRevoked(record.FamilyID))

	// The successor issued before the reuse was detected dies with the family.
	_, _, err = manager.Rotate(ctx, newSecret)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshTokenManager_RotateUnknownSecret(t *testing.T) {
	repo := newFakeTokenRepo()
	manager := NewRefreshTokenManager(repo, 24*time.Hour)

	_, _, err := manager.Rotate(context.Background(), "never-issued")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshTokenManager_RotateExpiredSecret(t *testing.T) {
	repo := newFakeTokenRepo()
	manager := NewRefreshTokenManager(repo, -time.Minute)
	ctx := context.Background()

	secret, record, err := manager.IssueNew(ctx, 1)
	require.NoError(t, err)

	_, _, err = manager.Rotate(ctx, secret)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Expiry is not reuse: the family survives.
	assert.False(t, repo.familyRevoked(record.FamilyID))
}

func TestRefreshTokenManager_ConcurrentRotation(t *testing.T) {
	repo := newFakeTokenRepo()
	manager := NewRefreshTokenManager(repo, 24*time.Hour)
	ctx := context.Background()

	secret, record, err := manager.IssueNew(ctx, 1)
	require.NoError(t, err)

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := manager.Rotate(ctx, secret)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, unauthorized int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, domain.ErrInvalidCredentials):
			unauthorized++
		}
	}

	assert.Equal(t, 1, successes, "exactly one concurrent rotation may win")
	assert.Equal(t, attempts-1, unauthorized)
	assert.True(t, repo.familyRevoked(record.FamilyID), "losers must revoke the family")
}

func TestRefreshTokenManager_RevokeByLogout(t *testing.T) {
	repo := newFakeTokenRepo()
	manager := NewRefreshTokenManager(repo, 24*time.Hour)
	ctx := context.Background()

	secret, record, err := manager.IssueNew(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, manager.Revoke(ctx, secret, domain.RevokeReasonLogout))
	assert.True(t, repo.familyRevoked(record.FamilyID))

	_, _, err = manager.Rotate(ctx, secret)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshTokenManager_RevokeUnknownIsNoop(t *testing.T) {
	repo := newFakeTokenRepo()
	manager := NewRefreshTokenManager(repo, 24*time.Hour)

	assert.NoError(t, manager.Revoke(context.Background(), "never-issued", domain.RevokeReasonLogout))
}

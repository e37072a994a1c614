package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureVaultCreatesOnFirstCall(t *testing.T) {
	store := newFakeStore()
	svc := NewVaultService(newFakeFactory(store), "http://localhost:5173", nopLogger{})
	memberId := uuid.New()

	resp, err := svc.EnsureVault(context.Background(), memberId, "Alex", "")
	require.NoError(t, err)

	assert.Equal(t, "Our BookNest", resp.VaultName)
	assert.Equal(t, "parent", resp.Role)
	assert.False(t, resp.Joined)
	assert.Contains(t, resp.InviteLink, "?join="+resp.VaultId.String())

	require.Len(t, store.vaults, 1)
	require.Len(t, store.members, 1)
	assert.Equal(t, resp.VaultId, store.memberIndex[memberId].VaultId)
}

func TestEnsureVaultReusesExistingVault(t *testing.T) {
	store := newFakeStore()
	svc := NewVaultService(newFakeFactory(store), "http://localhost:5173", nopLogger{})
	memberId := uuid.New()
	ctx := context.Background()

	first, err := svc.EnsureVault(ctx, memberId, "Alex", "")
	require.NoError(t, err)
	second, err := svc.EnsureVault(ctx, memberId, "Alex", "")
	require.NoError(t, err)

	assert.Equal(t, first.VaultId, second.VaultId)
	assert.Equal(t, "parent", second.Role)
	assert.Len(t, store.vaults, 1)
}

func TestEnsureVaultJoinsViaInvite(t *testing.T) {
	store := newFakeStore()
	svc := NewVaultService(newFakeFactory(store), "http://localhost:5173", nopLogger{})
	ctx := context.Background()

	parent := uuid.New()
	parentResp, err := svc.EnsureVault(ctx, parent, "Alex", "")
	require.NoError(t, err)

	child := uuid.New()
	childResp, err := svc.EnsureVault(ctx, child, "Sam", parentResp.VaultId.String())
	require.NoError(t, err)

	assert.Equal(t, parentResp.VaultId, childResp.VaultId)
	assert.Equal(t, "child", childResp.Role)
	assert.True(t, childResp.Joined)
	assert.Len(t, store.vaults, 1)
	assert.Len(t, store.members, 2)
}

func TestEnsureVaultInvalidInviteFallsBackToCreate(t *testing.T) {
	store := newFakeStore()
	svc := NewVaultService(newFakeFactory(store), "http://localhost:5173", nopLogger{})
	ctx := context.Background()

	tests := []struct {
		name   string
		invite string
	}{
		{"not a uuid", "not-a-uuid"},
		{"unknown vault", uuid.NewString()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memberId := uuid.New()
			resp, err := svc.EnsureVault(ctx, memberId, "Kim", tt.invite)
			require.NoError(t, err)
			assert.Equal(t, "parent", resp.Role)
			assert.False(t, resp.Joined)
		})
	}
}

func TestEnsureVaultExistingMemberIgnoresInvite(t *testing.T) {
	store := newFakeStore()
	svc := NewVaultService(newFakeFactory(store), "http://localhost:5173", nopLogger{})
	ctx := context.Background()

	memberId := uuid.New()
	first, err := svc.EnsureVault(ctx, memberId, "Alex", "")
	require.NoError(t, err)

	other := uuid.New()
	otherResp, err := svc.EnsureVault(ctx, other, "Pat", "")
	require.NoError(t, err)

	// An invite cannot move a member who already has a vault.
	resp, err := svc.EnsureVault(ctx, memberId, "Alex", otherResp.VaultId.String())
	require.NoError(t, err)
	assert.Equal(t, first.VaultId, resp.VaultId)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/domain"
)

func TestUserUpdateOwnership(t *testing.T) {
	repo := newMemoryUserRepo()
	admin := seedUser(t, repo, "root", "pw", domain.RoleAdmin)
	alice := seedUser(t, repo, "alice", "pw", domain.RoleSeller)
	bob := seedUser(t, repo, "bob", "pw", domain.RoleBuyer)
	svc := NewUserService(testConfig(), repo)

	email := "new@example.com"

	t.Run("self update allowed", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), alice, alice.ID, UserUpdateInput{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, email, updated.Email)
	})

	t.Run("updating another account is forbidden", func(t *testing.T) {
		_, err := svc.Update(context.Background(), bob, alice.ID, UserUpdateInput{Email: &email})
		assert.Equal(t, "FORBIDDEN", domainCode(t, err))
	})

	t.Run("admin may update anyone", func(t *testing.T) {
		_, err := svc.Update(context.Background(), admin, bob.ID, UserUpdateInput{Email: &email})
		require.NoError(t, err)
	})
}

func TestUserRoleChangeIsAdminOnly(t *testing.T) {
	repo := newMemoryUserRepo()
	admin := seedUser(t, repo, "root", "pw", domain.RoleAdmin)
	alice := seedUser(t, repo, "alice", "pw", domain.RoleBuyer)
	svc := NewUserService(testConfig(), repo)

	role := string(domain.RoleSeller)

	_, err := svc.Update(context.Background(), alice, alice.ID, UserUpdateInput{Role: &role})
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	updated, err := svc.Update(context.Background(), admin, alice.ID, UserUpdateInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSeller, updated.Role)

	bad := "superuser"
	_, err = svc.Update(context.Background(), admin, alice.ID, UserUpdateInput{Role: &bad})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestChangePassword(t *testing.T) {
	repo := newMemoryUserRepo()
	admin := seedUser(t, repo, "root", "pw", domain.RoleAdmin)
	alice := seedUser(t, repo, "alice", "old-pw", domain.RoleSeller)
	bob := seedUser(t, repo, "bob", "pw", domain.RoleBuyer)
	svc := NewUserService(testConfig(), repo)

	require.NoError(t, svc.ChangePassword(context.Background(), alice, alice.ID, "new-pw"))
	stored, err := repo.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "new-pw"))
	assert.Error(t, auth.ComparePassword(stored.PasswordHash, "old-pw"))

	err = svc.ChangePassword(context.Background(), bob, alice.ID, "hacked")
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	require.NoError(t, svc.ChangePassword(context.Background(), admin, bob.ID, "reset-pw"))
}

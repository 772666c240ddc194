package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/listing-service/internal/domain"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	user := &domain.User{ID: 7, Username: "alice", Role: domain.RoleSeller}

	token, exp, err := tm.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, domain.RoleSeller, claims.Role)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	user := &domain.User{ID: 1, Username: "bob", Role: domain.RoleBuyer}

	token, _, err := tm.IssueWithTTL(user, -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)
	user := &domain.User{ID: 1, Username: "bob", Role: domain.RoleBuyer}

	token, _, err := issuer.Issue(user)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyGarbageToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}

func TestIssueWithTTLOverride(t *testing.T) {
	tm := NewTokenManager("test-secret", 24*time.Hour)
	user := &domain.User{ID: 3, Username: "carol", Role: domain.RoleAdmin}

	_, exp, err := tm.IssueWithTTL(user, time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)
}

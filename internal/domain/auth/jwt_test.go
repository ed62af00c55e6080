package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockd/internal/core/entity"
)

func testUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser("alice", "alice@example.com", "s3cret-pass", RoleInventoryManager)
	require.NoError(t, err)
	return u
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", 15*time.Minute)
	u := testUser(t)

	token, err := m.Generate(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{RoleInventoryManager}, claims.Roles)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	u := testUser(t)

	token, err := NewTokenManager("secret-a", time.Minute).Generate(u)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Minute).Validate(token)
	assert.Error(t, err)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)
	u := testUser(t)

	token, err := m.Generate(u)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestUser_PasswordRules(t *testing.T) {
	_, err := NewUser("bob", "bob@example.com", "short", RoleViewer)
	assert.Error(t, err)

	u, err := NewUser("bob", "bob@example.com", "long-enough", RoleViewer)
	require.NoError(t, err)
	assert.True(t, u.CheckPassword("long-enough"))
	assert.False(t, u.CheckPassword("wrong-password"))
}

func TestUser_Validate(t *testing.T) {
	u := &User{Base: entity.NewBase(), Username: "carol", Email: "carol@example.com",
		Roles: []string{"superuser"}}
	assert.Error(t, u.Validate(t.Context()))

	u.Roles = []string{RoleViewer}
	assert.NoError(t, u.Validate(t.Context()))
}

package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/discgolf-api/internal/domain"
)

func TestUser_Login(t *testing.T) {
	u := domain.User{ID: 1, Username: "alice", Password: "Secret"}

	assert.False(t, u.Login("secret"), "password comparison is case-sensitive")
	assert.False(t, u.LoggedIn())

	assert.True(t, u.Login("Secret"))
	assert.True(t, u.LoggedIn())
}

func TestUser_Logout(t *testing.T) {
	u := domain.User{ID: 1, Username: "alice", Password: "pw"}

	assert.False(t, u.Logout(), "logout without login")

	require.True(t, u.Login("pw"))
	assert.True(t, u.Logout())
	assert.False(t, u.LoggedIn())
	assert.False(t, u.Logout())
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, domain.User{Username: "admin"}.IsAdmin())
	assert.True(t, domain.User{Username: "ADMIN"}.IsAdmin())
	assert.False(t, domain.User{Username: "administrator"}.IsAdmin())
}

func TestUser_LoggedInIsNotEncoded(t *testing.T) {
	u := domain.User{ID: 2, Username: "bob", Password: "pw"}
	require.True(t, u.Login("pw"))

	b, err := json.Marshal(u)
	require.NoError(t, err)

	var decoded domain.User
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "bob", decoded.Username)
	assert.False(t, decoded.LoggedIn())
}

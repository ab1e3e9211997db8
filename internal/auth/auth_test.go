package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkorkmaz/prosed/internal/models"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return Load(path), path
}

func TestLoadCreatesDefaultUsers(t *testing.T) {
	s, path := testStore(t)

	require.Len(t, s.Admins, 1)
	require.Len(t, s.Operators, 1)
	require.Len(t, s.Developers, 1)
	assert.Equal(t, "admin", s.Admins[0].Username)
	assert.Equal(t, models.RoleAdmin, s.Admins[0].Role)
	assert.Empty(t, s.Operators[0].PasswordHash, "operators carry no password")
	assert.FileExists(t, path, "defaults are written back")

	// Reload from the written file yields the same users.
	again := Load(path)
	assert.Equal(t, s.Admins[0].ID, again.Admins[0].ID)
	assert.Equal(t, models.RoleDeveloper, again.Developers[0].Role)
}

func TestAuthenticate(t *testing.T) {
	s, _ := testStore(t)

	u, err := s.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.Equal(t, "Yönetici", u.DisplayName)

	_, err = s.Authenticate("admin", "wrong")
	assert.Error(t, err)

	_, err = s.Authenticate("ghost", "admin123")
	assert.Error(t, err)

	// Operators have no password hash, so password login never matches.
	_, err = s.Authenticate("operator", "")
	assert.Error(t, err)
}

func TestAuthenticateByPassword(t *testing.T) {
	s, _ := testStore(t)

	u, err := s.AuthenticateByPassword("dev123")
	require.NoError(t, err)
	assert.Equal(t, "dev", u.Username)
	assert.Equal(t, models.RoleDeveloper, u.Role)

	u, err = s.AuthenticateByPassword("admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	_, err = s.AuthenticateByPassword("nope")
	assert.Error(t, err)
}

func TestOperatorLogin(t *testing.T) {
	s, _ := testStore(t)

	u := s.OperatorLogin("operator")
	assert.Equal(t, "operator", u.Username)

	// Unknown names fall back to the first configured operator.
	u = s.OperatorLogin("whoever")
	assert.Equal(t, "operator", u.Username)
	assert.Equal(t, models.RoleOperator, u.Role)
}

func TestInactiveUsersExcluded(t *testing.T) {
	s, path := testStore(t)
	s.Admins[0].Active = false
	require.NoError(t, s.Save())

	again := Load(path)
	assert.Empty(t, again.Admins)
	_, err := again.Authenticate("admin", "admin123")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	h := HashPassword("admin123")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashPassword("admin123"))
	assert.NotEqual(t, h, HashPassword("admin124"))
}

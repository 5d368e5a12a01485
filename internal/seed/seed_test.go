package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tasktracker/internal/testutil"
	"tasktracker/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	users := testutil.NewMockUserRepository()
	projects := testutil.NewMockProjectRepository()
	seeder := NewSeeder(users, projects)

	res, err := seeder.Apply(ctx, Default())
	require.NoError(t, err)
	assert.Equal(t, Result{UsersCreated: 3, ProjectsCreated: 3}, *res)

	res, err = seeder.Apply(ctx, Default())
	require.NoError(t, err)
	assert.Equal(t, Result{UsersSkipped: 3, ProjectsSkipped: 3}, *res)

	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword(admin.PasswordHash, "admin"))

	list, err := projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Proyecto Demo", list[0].Name)
	assert.Equal(t, "Proyecto de ejemplo", list[0].Description)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
users:
  - username: ops
    password: secret
projects:
  - name: Infra
    description: Servidores
`), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Users, 1)
	assert.Equal(t, "ops", f.Users[0].Username)
	require.Len(t, f.Projects, 1)
	assert.Equal(t, "Servidores", f.Projects[0].Description)
}

func TestParseRejectsIncompleteEntries(t *testing.T) {
	_, err := Parse([]byte("users:\n  - username: nopass\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("projects:\n  - description: unnamed\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("users: [unclosed"))
	assert.Error(t, err)
}

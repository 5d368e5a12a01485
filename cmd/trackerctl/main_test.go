package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tasktracker/internal/migration"
	"tasktracker/internal/seed"
	"tasktracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "trackerctl dev")
	assert.Contains(t, buf.String(), "commit: none")
}

func TestRootCmdHelp(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	for _, sub := range []string{"seed", "import", "version"} {
		assert.Contains(t, buf.String(), sub)
	}
}

func TestImportRequiresExistingDump(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	cmd.SetArgs([]string{"import"})
	assert.Error(t, cmd.Execute())

	cmd.SetArgs([]string{"import", "/nonexistent/dump.json"})
	assert.Error(t, cmd.Execute())
}

func TestRunSeed(t *testing.T) {
	seeder := seed.NewSeeder(testutil.NewMockUserRepository(), testutil.NewMockProjectRepository())
	buf := new(bytes.Buffer)

	require.NoError(t, runSeed(context.Background(), buf, seeder, seed.Default()))
	assert.Contains(t, buf.String(), "Users: 3 created, 0 already present")

	buf.Reset()
	require.NoError(t, runSeed(context.Background(), buf, seeder, seed.Default()))
	assert.Contains(t, buf.String(), "Projects: 0 created, 3 already present")
}

func TestRunImportPrintsSummary(t *testing.T) {
	importer := migration.NewImporter(migration.Repositories{
		Users:         testutil.NewMockUserRepository(),
		Projects:      testutil.NewMockProjectRepository(),
		Tasks:         testutil.NewMockTaskRepository(),
		Comments:      testutil.NewMockCommentRepository(),
		History:       testutil.NewMockHistoryRepository(),
		Notifications: testutil.NewMockNotificationRepository(),
	}, migration.Options{})
	dump, err := migration.ReadDump(strings.NewReader(`{
		"users": [{"id": 1, "username": "admin", "password": "admin"}],
		"comments": [{"id": 1, "taskId": 9, "userId": 1, "commentText": "x"}]
	}`))
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, runImport(context.Background(), buf, importer, dump))

	out := buf.String()
	assert.Contains(t, out, "users: 1 imported, 0 skipped")
	assert.Contains(t, out, "comments: 0 imported, 1 skipped")
	assert.Contains(t, out, "Warnings (1):")
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"pet-clinic-roster/internal/domain/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedFile = "../../internal/adapters/storage/memory/testdata/seed.json"

func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("STORE", "memory")
	t.Setenv("SEED_FILE", seedFile)
	t.Setenv("ODIN_BASE_URL", "")
	t.Setenv("SEARCH_DEBOUNCE", "0s")
	return filepath.Join(t.TempDir(), "none.env")
}

func TestNewApp_MemoryStoreSeeded(t *testing.T) {
	envFile := setupEnv(t)

	a, err := newApp(envFile)
	require.NoError(t, err)
	defer a.close()

	assert.Nil(t, a.verifier)
	entries, err := a.service().Resolve(context.Background(), roster.ResolveInput{
		Role:         roster.RoleOwner,
		ActingUserID: "owner-ana",
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Milo", entries[0].PetName)
	assert.Equal(t, "Toby", entries[1].PetName)
}

func TestNewApp_BadSeedFile(t *testing.T) {
	envFile := setupEnv(t)
	t.Setenv("SEED_FILE", filepath.Join(t.TempDir(), "nope.json"))

	_, err := newApp(envFile)
	assert.Error(t, err)
}

func TestResolveCmd_PrintsJSON(t *testing.T) {
	envFile := setupEnv(t)

	cmd := resolveCmd(&envFile)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--role", "veterinarian", "--user", "vet-1", "-q", "lu"})
	require.NoError(t, cmd.Execute())

	var entries []roster.RosterEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "pet-luna", entries[0].PetID)
	assert.Equal(t, "Luis Campos", entries[0].OwnerName)
}

func TestResolveCmd_RejectsUnknownRole(t *testing.T) {
	envFile := setupEnv(t)

	cmd := resolveCmd(&envFile)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--role", "admin", "--user", "u-1"})
	assert.Error(t, cmd.Execute())
}

func TestSearchCmd_ReportsLatestSearch(t *testing.T) {
	envFile := setupEnv(t)

	cmd := searchCmd(&envFile)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("mi\n"))
	cmd.SetArgs([]string{"--user", "vet-1"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), `# 1 "mi" (1)`)
	assert.Contains(t, out.String(), `"pet_id": "pet-milo"`)
}

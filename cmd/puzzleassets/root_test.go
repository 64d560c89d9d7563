package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puzzleassets/internal/catalog"
	"puzzleassets/internal/credits"
	"puzzleassets/internal/manifest"
	"puzzleassets/internal/populate"
	"puzzleassets/pkg/database"
)

func TestSubcommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"generate", "download", "verify", "credits", "serve"} {
		assert.Contains(t, names, want)
	}
}

func TestPopulateCommandsTakeNoArguments(t *testing.T) {
	for _, c := range []interface {
		ValidateArgs([]string) error
	}{generateCmd, downloadCmd, verifyCmd} {
		assert.Error(t, c.ValidateArgs([]string{"extra"}))
		assert.NoError(t, c.ValidateArgs(nil))
	}
}

func TestPopulateCommandsDefineNoFlags(t *testing.T) {
	assert.False(t, generateCmd.HasAvailableLocalFlags())
	assert.False(t, downloadCmd.HasAvailableLocalFlags())
}

func TestCreditsReturnsCatalogOpenError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	t.Setenv("PUZZLEASSETS_DB_PATH", filepath.Join(blocker, "catalog.db"))

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	err := creditsCmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog")
}

func newVerifyCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func TestVerifyReportsMissingAndLatestRun(t *testing.T) {
	root := t.TempDir()
	m := manifest.Build(catalog.All()[:1], 2, manifest.Options{})
	mc := m.Categories["nature"]
	mc.Emoji = ""
	m.Categories["nature"] = mc
	require.NoError(t, manifest.Write(filepath.Join(root, populate.ManifestName), m))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nature"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nature", "nature-00.jpg"), []byte("x"), 0o644))

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "catalog.db")})
	require.NoError(t, err)
	defer db.Close()
	store := credits.NewStore(db)
	id, err := store.BeginRun(context.Background(), "fetch")
	require.NoError(t, err)
	require.NoError(t, store.FinishRun(context.Background(), id, 1, 1))

	cmd, out := newVerifyCommand()
	err = verify(cmd, root, store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 images missing")

	assert.Contains(t, out.String(), "(fetch) "+id+", 1 acquired, 1 failed")
	assert.Contains(t, out.String(), catalog.EmojiFor("nature")+" nature: 2 images")
	assert.Contains(t, out.String(), "✗ nature/nature-01.jpg")
	assert.Contains(t, out.String(), "1 of 2 images present")
}

func TestVerifyPassesWithoutCatalog(t *testing.T) {
	root := t.TempDir()
	m := manifest.Build(catalog.All()[:1], 1, manifest.Options{})
	require.NoError(t, manifest.Write(filepath.Join(root, populate.ManifestName), m))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nature"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nature", "nature-00.jpg"), []byte("x"), 0o644))

	cmd, out := newVerifyCommand()
	require.NoError(t, verify(cmd, root, nil))
	assert.NotContains(t, out.String(), "last run")
	assert.Contains(t, out.String(), "1 of 1 images present")
}

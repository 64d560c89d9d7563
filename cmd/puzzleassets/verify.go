package main

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"puzzleassets/internal/catalog"
	"puzzleassets/internal/credits"
	"puzzleassets/internal/manifest"
	"puzzleassets/internal/populate"
	"puzzleassets/pkg/models"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "List manifest images that are missing on disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeCatalog := openCatalog()
		defer closeCatalog()
		return verify(cmd, populate.DefaultRoot, store)
	},
}

func verify(cmd *cobra.Command, root string, store *credits.Store) error {
	m, err := manifest.Load(filepath.Join(root, populate.ManifestName))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if store != nil {
		printLatestRun(cmd, out, store)
	}

	missing := manifest.Missing(root, m)
	total := 0
	for _, name := range manifest.CategoryNames(m) {
		mc := m.Categories[name]
		total += len(mc.Images)
		fmt.Fprintf(out, "%s %s: %d images\n", categoryEmoji(name, mc), name, len(mc.Images))
	}

	for _, rel := range missing {
		fmt.Fprintf(out, "  ✗ %s\n", rel)
	}
	fmt.Fprintf(out, "%d of %d images present\n", total-len(missing), total)
	if len(missing) > 0 {
		return fmt.Errorf("%d images missing", len(missing))
	}
	return nil
}

// categoryEmoji prefers the manifest's own emoji; hand-edited manifests
// may leave it out.
func categoryEmoji(name string, mc models.ManifestCategory) string {
	if mc.Emoji != "" {
		return mc.Emoji
	}
	return catalog.EmojiFor(name)
}

func printLatestRun(cmd *cobra.Command, out io.Writer, store *credits.Store) {
	run, err := store.LatestRun(cmd.Context())
	if err != nil {
		log.Printf("[catalog] latest run: %v", err)
		return
	}
	if run == nil {
		fmt.Fprintln(out, "no populate run recorded")
		return
	}
	status := "unfinished"
	if !run.FinishedAt.IsZero() {
		status = fmt.Sprintf("%d acquired, %d failed", run.Acquired, run.Failed)
	}
	fmt.Fprintf(out, "last run: %s (%s) %s, %s\n",
		run.StartedAt.Local().Format("2006-01-02 15:04"), run.Mode, run.ID, status)
}

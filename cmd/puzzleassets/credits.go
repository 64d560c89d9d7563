package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"puzzleassets/internal/credits"
	"puzzleassets/pkg/database"
)

const creditsPath = "data/credits.csv"

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Export image attributions from the catalog to " + creditsPath,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(database.DefaultConfig())
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}
		defer db.Close()

		if err := os.MkdirAll(filepath.Dir(creditsPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(creditsPath)
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := credits.NewStore(db).ExportCSV(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("export credits: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ exported %d attributions to %s\n", n, creditsPath)
		return nil
	},
}

package main

import (
	"log"

	"github.com/spf13/cobra"

	"puzzleassets/internal/credits"
	"puzzleassets/pkg/database"
	"puzzleassets/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "puzzleassets",
	Short: "Populate the jigsaw puzzle image assets",
	Long: `puzzleassets fills assets/images/puzzles with one directory per category,
eight images per category and a manifest.json describing them.

Images are either synthesized locally (generate) or searched for on
Unsplash, Pixabay and Pexels and downloaded (download).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.LoadEnv()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd, downloadCmd, verifyCmd, creditsCmd, serveCmd)
}

// openCatalog opens the attribution catalog. The catalog is optional for
// populate runs, so failures are logged and a nil store is returned.
func openCatalog() (*credits.Store, func()) {
	db, err := database.Open(database.DefaultConfig())
	if err != nil {
		log.Printf("[catalog] disabled: %v", err)
		return nil, func() {}
	}
	return credits.NewStore(db), func() { _ = db.Close() }
}

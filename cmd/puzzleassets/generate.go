package main

import (
	"github.com/spf13/cobra"

	"puzzleassets/internal/populate"
	"puzzleassets/internal/samples"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create category directories, sample images and the manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := populate.New(populate.ModeSamples)
		p.Generator = samples.NewGenerator()
		p.Out = cmd.OutOrStdout()

		store, closeCatalog := openCatalog()
		defer closeCatalog()
		if store != nil {
			p.Recorder = store
		}

		_, err := p.Run(cmd.Context())
		return err
	},
}

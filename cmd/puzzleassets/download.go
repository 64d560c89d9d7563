package main

import (
	"log"

	"github.com/spf13/cobra"

	"puzzleassets/internal/download"
	"puzzleassets/internal/imagesource"
	"puzzleassets/internal/populate"
	"puzzleassets/pkg/utils"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Search the image providers, download results and write the manifest",
	Long: `download searches Unsplash, Pixabay and Pexels with each category's
search terms and saves up to eight images per category. Provider and
download failures are logged and never stop the run; the manifest is
always written.

Credentials are optional and read from the environment or .env:
UNSPLASH_ACCESS_KEY, PIXABAY_API_KEY, PEXELS_API_KEY.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		providers := imagesource.DefaultProviders(utils.LoadProviderConfig())

		p := populate.New(populate.ModeFetch)
		p.Searchers = imagesource.NewSearchers(providers, log.Default())
		p.Fetcher = download.New()
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

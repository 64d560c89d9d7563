package main

import (
	"log"

	"github.com/spf13/cobra"

	"puzzleassets/internal/imagesource"
	"puzzleassets/internal/populate"
	"puzzleassets/internal/preview"
	"puzzleassets/internal/samples"
	"puzzleassets/pkg/utils"
)

const searchCacheSize = 512

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated assets for local preview",
	Long: `serve exposes the manifest, category listings and images over HTTP,
proxies provider searches through an in-memory cache and streams
progress of POST /generate runs on /ws.

Listens on PUZZLEASSETS_ADDR (default :8090).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.Default()

		var searchers []imagesource.ImageSearcher
		for _, p := range imagesource.DefaultProviders(utils.LoadProviderConfig()) {
			cached, err := imagesource.NewCachedSearcher(imagesource.NewSearcher(p, logger), searchCacheSize)
			if err != nil {
				return err
			}
			searchers = append(searchers, cached)
		}

		store, closeCatalog := openCatalog()
		defer closeCatalog()

		h := preview.NewHandler(populate.DefaultRoot, searchers, preview.NewHub(), logger)
		h.NewPipeline = func() *populate.Pipeline {
			p := populate.New(populate.ModeSamples)
			p.Generator = samples.NewGenerator()
			p.Out = cmd.OutOrStdout()
			if store != nil {
				p.Recorder = store
			}
			return p
		}

		return preview.Serve(cmd.Context(), utils.LoadServerConfig().Addr, preview.NewRouter(h), logger)
	},
}

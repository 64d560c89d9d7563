package preview

import (
	"os"
	"path/filepath"

	"puzzleassets/pkg/models"
)

func missingIn(root, category string, entries []models.ManifestEntry) []string {
	out := []string{}
	for _, e := range entries {
		if _, err := os.Stat(filepath.Join(root, category, e.Filename)); err != nil {
			out = append(out, e.Filename)
		}
	}
	return out
}

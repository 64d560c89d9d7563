// Package manifest builds, writes and checks the JSON document that
// describes every puzzle category and its images.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"puzzleassets/internal/catalog"
	"puzzleassets/pkg/models"
)

const (
	Version = "1.0.0"

	DefaultPhotographer = "Photo by Jigsaw Puzzle Pro"

	dateLayout = "2006-01-02"
)

// DifficultyLevels is attached to every entry. Image dimensions are not
// checked against it.
var DifficultyLevels = []string{"2x2", "3x3", "4x4", "6x6", "8x8"}

// Filename returns the on-disk name of slot i, e.g. "nature-03.jpg".
func Filename(category string, i int) string {
	return fmt.Sprintf("%s-%02d.jpg", category, i)
}

// ID is the filename without its extension.
func ID(category string, i int) string {
	return strings.TrimSuffix(Filename(category, i), filepath.Ext(Filename(category, i)))
}

type Options struct {
	// Date stamps lastUpdated; zero leaves it out.
	Date time.Time
	// Credits overrides the placeholder attribution per entry id.
	Credits map[string]models.ImageRecord
}

// Build describes slots images for every category. The result depends only
// on its arguments.
func Build(categories []catalog.Category, slots int, opts Options) models.Manifest {
	m := models.Manifest{
		Version:    Version,
		Categories: make(map[string]models.ManifestCategory, len(categories)),
	}
	if !opts.Date.IsZero() {
		m.LastUpdated = opts.Date.Format(dateLayout)
	}

	for _, c := range categories {
		mc := models.ManifestCategory{
			Name:       c.Title,
			Emoji:      c.Emoji,
			ImageCount: slots,
			Images:     make([]models.ManifestEntry, 0, slots),
		}
		for i := 0; i < slots; i++ {
			e := models.ManifestEntry{
				ID:               ID(c.Name, i),
				Filename:         Filename(c.Name, i),
				Title:            fmt.Sprintf("%s Puzzle %d", c.Title, i+1),
				Photographer:     DefaultPhotographer,
				Source:           string(models.SourceSample),
				DifficultyLevels: append([]string(nil), DifficultyLevels...),
				Tags:             []string{c.Name},
			}
			if rec, ok := opts.Credits[e.ID]; ok {
				if rec.Title != "" {
					e.Title = rec.Title
				}
				if rec.Photographer != "" {
					e.Photographer = rec.Photographer
				}
				if rec.Source != "" {
					e.Source = string(rec.Source)
				}
			}
			mc.Images = append(mc.Images, e)
		}
		m.Categories[c.Name] = mc
		m.Order = append(m.Order, c.Name)
	}
	return m
}

// Encode renders m as 2-space indented JSON with a trailing newline.
// Categories appear in the order they were passed to Build.
func Encode(m models.Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Write overwrites path with the encoded manifest.
func Write(path string, m models.Manifest) error {
	b, err := Encode(m)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func Load(path string) (models.Manifest, error) {
	var m models.Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}

// Missing lists "category/filename" for every referenced image that does
// not exist under root. Nothing in the populate run calls this; it backs
// the verify command.
func Missing(root string, m models.Manifest) []string {
	var out []string
	for _, name := range m.Keys() {
		for _, e := range m.Categories[name].Images {
			rel := filepath.Join(name, e.Filename)
			if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
				out = append(out, filepath.ToSlash(rel))
			}
		}
	}
	return out
}

// CategoryNames returns the manifest's category keys in document order.
func CategoryNames(m models.Manifest) []string {
	return m.Keys()
}

// Package populate runs one sequential pass that fills the puzzle asset
// directory: category directories, images (synthesized or downloaded),
// the manifest, and the closing console instructions.
package populate

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"puzzleassets/internal/catalog"
	"puzzleassets/internal/credits"
	"puzzleassets/internal/imagesource"
	"puzzleassets/internal/manifest"
	"puzzleassets/internal/samples"
	"puzzleassets/pkg/models"
)

const (
	DefaultRoot  = "assets/images/puzzles"
	DefaultSlots = 8
	ManifestName = "manifest.json"
)

type Mode string

const (
	ModeSamples Mode = "samples"
	ModeFetch   Mode = "fetch"
)

// Fetcher downloads one URL to a local path.
type Fetcher interface {
	Download(ctx context.Context, rawURL, dest string) (int64, error)
}

// Recorder persists run and attribution history. Failures are logged only.
type Recorder interface {
	BeginRun(ctx context.Context, mode string) (string, error)
	SaveImages(ctx context.Context, runID string, images []credits.Image) error
	FinishRun(ctx context.Context, runID string, acquired, failed int) error
}

type Pipeline struct {
	Root       string
	Categories []catalog.Category
	Slots      int
	Mode       Mode

	// Generator is required in ModeSamples; a nil generator skips image
	// synthesis and the manifest is still written.
	Generator *samples.Generator
	// Searchers and Fetcher are used in ModeFetch.
	Searchers []imagesource.ImageSearcher
	Fetcher   Fetcher

	Recorder Recorder  // optional
	Events   EventSink // optional

	Out    io.Writer
	Logger *log.Logger
	Now    func() time.Time
}

type Result struct {
	RunID        string
	ManifestPath string
	Manifest     models.Manifest
	Acquired     int
	Failed       int
}

// New returns a pipeline over the full category registry with the fixed
// output root and slot count.
func New(mode Mode) *Pipeline {
	return &Pipeline{
		Root:       DefaultRoot,
		Categories: catalog.All(),
		Slots:      DefaultSlots,
		Mode:       mode,
		Out:        os.Stdout,
		Logger:     log.Default(),
		Now:        time.Now,
	}
}

func (p *Pipeline) ManifestPath() string {
	return filepath.Join(p.Root, ManifestName)
}

// Run executes the fixed sequence. Only directory creation and the
// manifest write can fail the run; image acquisition problems are logged
// and counted in the result.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.defaults()
	res := &Result{ManifestPath: p.ManifestPath()}

	p.banner()

	if p.Recorder != nil {
		id, err := p.Recorder.BeginRun(ctx, string(p.Mode))
		if err != nil {
			p.Logger.Printf("[populate] catalog begin run: %v", err)
		} else {
			res.RunID = id
		}
	}
	p.emit(Event{Type: EventRunStarted, RunID: res.RunID, Mode: p.Mode})

	fmt.Fprintln(p.Out, "📁 Creating category directories...")
	if err := p.ensureDirectories(res.RunID); err != nil {
		return res, err
	}
	fmt.Fprintln(p.Out)

	var (
		acquired []credits.Image
		recs     map[string]models.ImageRecord
	)
	switch p.Mode {
	case ModeFetch:
		fmt.Fprintln(p.Out, "🌐 Fetching images...")
		acquired, recs = p.fetchImages(ctx, res)
	default:
		fmt.Fprintln(p.Out, "🎨 Generating sample images...")
		acquired = p.generateSamples(res)
	}
	fmt.Fprintf(p.Out, "  ✓ %d images acquired, %d failed\n\n", res.Acquired, res.Failed)

	fmt.Fprintln(p.Out, "📋 Creating image manifest...")
	res.Manifest = manifest.Build(p.Categories, p.Slots, manifest.Options{
		Date:    p.Now(),
		Credits: recs,
	})
	if err := manifest.Write(res.ManifestPath, res.Manifest); err != nil {
		return res, err
	}
	fmt.Fprintf(p.Out, "  ✓ Manifest created: %s\n\n", res.ManifestPath)
	p.emit(Event{Type: EventManifestWritten, RunID: res.RunID, File: res.ManifestPath})

	p.record(ctx, res, acquired)

	p.printInstructions()
	p.emit(Event{Type: EventRunFinished, RunID: res.RunID, Mode: p.Mode, Acquired: res.Acquired, Failed: res.Failed})
	return res, nil
}

func (p *Pipeline) defaults() {
	if p.Root == "" {
		p.Root = DefaultRoot
	}
	if p.Categories == nil {
		p.Categories = catalog.All()
	}
	if p.Slots <= 0 {
		p.Slots = DefaultSlots
	}
	if p.Mode == "" {
		p.Mode = ModeSamples
	}
	if p.Out == nil {
		p.Out = io.Discard
	}
	if p.Logger == nil {
		p.Logger = log.Default()
	}
	if p.Now == nil {
		p.Now = time.Now
	}
}

func (p *Pipeline) ensureDirectories(runID string) error {
	for _, c := range p.Categories {
		dir := filepath.Join(p.Root, c.Name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create category dir %s: %w", dir, err)
		}
		fmt.Fprintf(p.Out, "  ✓ %s/\n", c.Name)
		p.emit(Event{Type: EventDirectoryReady, RunID: runID, Category: c.Name})
	}
	return nil
}

func (p *Pipeline) generateSamples(res *Result) []credits.Image {
	if p.Generator == nil {
		fmt.Fprintln(p.Out, "  ℹ sample generator not configured, skipping image synthesis")
		return nil
	}

	var out []credits.Image
	for _, c := range p.Categories {
		dir := filepath.Join(p.Root, c.Name)
		for i := 0; i < p.Slots; i++ {
			name := manifest.Filename(c.Name, i)
			if err := p.Generator.WriteImage(filepath.Join(dir, name), c.Name, i); err != nil {
				p.Logger.Printf("[populate] sample %s: %v", name, err)
				p.fail(res, c.Name, name, err.Error())
				continue
			}
			fmt.Fprintf(p.Out, "    ✓ Created: %s\n", name)
			out = append(out, credits.Image{
				ID:       manifest.ID(c.Name, i),
				Category: c.Name,
				Filename: name,
				Record: models.ImageRecord{
					Photographer: manifest.DefaultPhotographer,
					Title:        fmt.Sprintf("%s Puzzle %d", c.Title, i+1),
					Source:       models.SourceSample,
				},
			})
			p.succeed(res, c.Name, name)
		}
	}
	return out
}

func (p *Pipeline) fetchImages(ctx context.Context, res *Result) ([]credits.Image, map[string]models.ImageRecord) {
	recs := make(map[string]models.ImageRecord)
	var out []credits.Image

	if p.Fetcher == nil || len(p.Searchers) == 0 {
		p.Logger.Printf("[populate] no image sources configured")
	}

	for _, c := range p.Categories {
		fmt.Fprintf(p.Out, "  %s %s\n", c.Emoji, c.Name)

		var found []models.ImageRecord
		if p.Fetcher != nil {
			found = imagesource.Collect(ctx, p.Searchers, c.SearchTerms, p.Slots)
		}

		dir := filepath.Join(p.Root, c.Name)
		for i := 0; i < p.Slots; i++ {
			name := manifest.Filename(c.Name, i)
			dest := filepath.Join(dir, name)
			if i >= len(found) {
				p.warnKept(dest)
				p.fail(res, c.Name, name, "no search result")
				continue
			}
			rec := found[i]
			if _, err := p.Fetcher.Download(ctx, rec.URL, dest); err != nil {
				fmt.Fprintf(p.Out, "    ✗ Failed: %v\n", err)
				p.Logger.Printf("[populate] download %s: %v", name, err)
				p.warnKept(dest)
				p.fail(res, c.Name, name, err.Error())
				continue
			}
			fmt.Fprintf(p.Out, "    ✓ Downloaded: %s (%s, %s)\n", name, rec.Source, rec.Photographer)
			id := manifest.ID(c.Name, i)
			recs[id] = rec
			out = append(out, credits.Image{ID: id, Category: c.Name, Filename: name, Record: rec})
			p.succeed(res, c.Name, name)
		}
	}
	return out, recs
}

// warnKept flags a failed slot whose file from an earlier run is still on
// disk. The manifest gives that file the placeholder attribution.
func (p *Pipeline) warnKept(path string) {
	if _, err := os.Stat(path); err == nil {
		p.Logger.Printf("[populate] warning: %s kept from an earlier run, now credited as %q", path, manifest.DefaultPhotographer)
	}
}

func (p *Pipeline) succeed(res *Result, category, file string) {
	res.Acquired++
	p.emit(Event{Type: EventImageWritten, RunID: res.RunID, Category: category, File: file})
}

func (p *Pipeline) fail(res *Result, category, file, msg string) {
	res.Failed++
	p.emit(Event{Type: EventImageFailed, RunID: res.RunID, Category: category, File: file, Message: msg})
}

func (p *Pipeline) record(ctx context.Context, res *Result, images []credits.Image) {
	if p.Recorder == nil || res.RunID == "" {
		return
	}
	if len(images) > 0 {
		if err := p.Recorder.SaveImages(ctx, res.RunID, images); err != nil {
			p.Logger.Printf("[populate] catalog save images: %v", err)
		}
	}
	if err := p.Recorder.FinishRun(ctx, res.RunID, res.Acquired, res.Failed); err != nil {
		p.Logger.Printf("[populate] catalog finish run: %v", err)
	}
}

func (p *Pipeline) emit(e Event) {
	if p.Events == nil {
		return
	}
	e.At = p.Now()
	p.Events.Publish(e)
}

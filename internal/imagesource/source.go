package imagesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"puzzleassets/pkg/models"
	"puzzleassets/pkg/utils"
)

// requestTimeout bounds every search call. There is no retry.
const requestTimeout = 10 * time.Second

// Provider is implemented by each image search endpoint. Each provider is
// responsible for its own query parameters and response shape, and maps
// hits into models.ImageRecord in provider order.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query string, count int) ([]models.ImageRecord, error)
}

// ImageSearcher is the error-free view of a Provider used by callers that
// treat "no results" as a normal outcome.
type ImageSearcher interface {
	Name() string
	Search(ctx context.Context, query string, count int) []models.ImageRecord
}

// Searcher turns provider failures into empty results.
type Searcher struct {
	Provider Provider
	Logger   *log.Logger
}

func NewSearcher(p Provider, logger *log.Logger) *Searcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Searcher{Provider: p, Logger: logger}
}

func (s *Searcher) Name() string { return s.Provider.Name() }

// Search returns at most count records. Network errors, timeouts, non-200
// responses and undecodable bodies are logged and yield an empty slice.
func (s *Searcher) Search(ctx context.Context, query string, count int) []models.ImageRecord {
	if count <= 0 {
		return []models.ImageRecord{}
	}
	recs, err := s.Provider.Fetch(ctx, query, count)
	if err != nil {
		s.Logger.Printf("[imagesource] %s search %q warning: %v", s.Provider.Name(), query, err)
		return []models.ImageRecord{}
	}
	if len(recs) > count {
		recs = recs[:count]
	}
	if recs == nil {
		recs = []models.ImageRecord{}
	}
	return recs
}

// DefaultProviders returns unsplash, pixabay and pexels in that order,
// configured with whatever credentials cfg carries.
func DefaultProviders(cfg utils.ProviderConfig) []Provider {
	return []Provider{
		NewUnsplash(cfg.UnsplashAccessKey),
		NewPixabay(cfg.PixabayAPIKey),
		NewPexels(cfg.PexelsAPIKey),
	}
}

// NewSearchers wraps every provider in a Searcher sharing one logger.
func NewSearchers(providers []Provider, logger *log.Logger) []ImageSearcher {
	out := make([]ImageSearcher, 0, len(providers))
	for _, p := range providers {
		out = append(out, NewSearcher(p, logger))
	}
	return out
}

// Collect walks terms in order and asks each searcher for whatever is still
// missing until want records have been gathered. Records with a URL already
// seen are skipped.
func Collect(ctx context.Context, searchers []ImageSearcher, terms []string, want int) []models.ImageRecord {
	out := make([]models.ImageRecord, 0, want)
	seen := make(map[string]struct{}, want)

	for _, term := range terms {
		for _, s := range searchers {
			if len(out) >= want {
				return out
			}
			if ctx.Err() != nil {
				return out
			}
			for _, rec := range s.Search(ctx, term, want-len(out)) {
				if rec.URL == "" {
					continue
				}
				if _, dup := seen[rec.URL]; dup {
					continue
				}
				seen[rec.URL] = struct{}{}
				out = append(out, rec)
				if len(out) >= want {
					return out
				}
			}
		}
	}
	return out
}

// getJSON performs one GET and decodes a 200 response into out.
func getJSON(ctx context.Context, client *http.Client, name, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", name, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: status %d: %s", name, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode: %w", name, err)
	}
	return nil
}

func newClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

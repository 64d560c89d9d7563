package imagesource

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"puzzleassets/pkg/models"
)

const pexelsBase = "https://api.pexels.com/v1"

type Pexels struct {
	BaseURL string
	APIKey  string // sent verbatim as the Authorization header
	Client  *http.Client
}

func NewPexels(apiKey string) *Pexels {
	return &Pexels{
		BaseURL: pexelsBase,
		APIKey:  apiKey,
		Client:  newClient(),
	}
}

func (p *Pexels) Name() string { return string(models.SourcePexels) }

type pexelsResponse struct {
	Page         int `json:"page"`
	PerPage      int `json:"per_page"`
	TotalResults int `json:"total_results"`
	Photos       []struct {
		ID           int    `json:"id"`
		Alt          string `json:"alt"`
		Photographer string `json:"photographer"`
		Src          struct {
			Original string `json:"original"`
			Large    string `json:"large"`
			Medium   string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

func (p *Pexels) Fetch(ctx context.Context, query string, count int) ([]models.ImageRecord, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(count))

	header := http.Header{}
	if p.APIKey != "" {
		header.Set("Authorization", p.APIKey)
	}

	var resp pexelsResponse
	if err := getJSON(ctx, p.Client, p.Name(), strings.TrimRight(p.BaseURL, "/")+"/search?"+q.Encode(), header, &resp); err != nil {
		return nil, err
	}

	out := make([]models.ImageRecord, 0, len(resp.Photos))
	for _, ph := range resp.Photos {
		src := ph.Src.Large
		if src == "" {
			src = ph.Src.Original
		}
		if src == "" {
			continue
		}
		title := strings.TrimSpace(ph.Alt)
		if title == "" {
			title = query
		}
		out = append(out, models.ImageRecord{
			URL:          src,
			Photographer: ph.Photographer,
			Title:        title,
			Source:       models.SourcePexels,
		})
	}
	return out, nil
}

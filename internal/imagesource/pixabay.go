package imagesource

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"puzzleassets/pkg/models"
)

const pixabayBase = "https://pixabay.com/api/"

// pixabay rejects per_page below 3
const pixabayMinPerPage = 3

type Pixabay struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewPixabay(apiKey string) *Pixabay {
	return &Pixabay{
		BaseURL: pixabayBase,
		APIKey:  apiKey,
		Client:  newClient(),
	}
}

func (p *Pixabay) Name() string { return string(models.SourcePixabay) }

type pixabayResponse struct {
	Total     int `json:"total"`
	TotalHits int `json:"totalHits"`
	Hits      []struct {
		ID            int    `json:"id"`
		Tags          string `json:"tags"`
		LargeImageURL string `json:"largeImageURL"`
		WebformatURL  string `json:"webformatURL"`
		User          string `json:"user"`
	} `json:"hits"`
}

func (p *Pixabay) Fetch(ctx context.Context, query string, count int) ([]models.ImageRecord, error) {
	perPage := count
	if perPage < pixabayMinPerPage {
		perPage = pixabayMinPerPage
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("image_type", "photo")
	q.Set("orientation", "horizontal")
	if p.APIKey != "" {
		q.Set("key", p.APIKey)
	}

	var resp pixabayResponse
	if err := getJSON(ctx, p.Client, p.Name(), p.BaseURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	out := make([]models.ImageRecord, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		if h.LargeImageURL == "" {
			continue
		}
		user := h.User
		if user == "" {
			user = "Unknown"
		}
		out = append(out, models.ImageRecord{
			URL:          h.LargeImageURL,
			Photographer: user,
			Title:        query,
			Source:       models.SourcePixabay,
		})
		if len(out) >= count {
			break
		}
	}
	return out, nil
}

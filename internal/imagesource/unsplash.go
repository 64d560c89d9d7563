package imagesource

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"puzzleassets/pkg/models"
)

const (
	// public search used by the unsplash.com web app; no key, low rate limit
	unsplashPublicBase = "https://unsplash.com/napi"
	unsplashAPIBase    = "https://api.unsplash.com"
)

// Unsplash searches photos. Without an access key it falls back to the
// public napi endpoint.
type Unsplash struct {
	BaseURL   string
	AccessKey string
	Client    *http.Client
}

func NewUnsplash(accessKey string) *Unsplash {
	base := unsplashPublicBase
	if accessKey != "" {
		base = unsplashAPIBase
	}
	return &Unsplash{
		BaseURL:   base,
		AccessKey: accessKey,
		Client:    newClient(),
	}
}

func (u *Unsplash) Name() string { return string(models.SourceUnsplash) }

type unsplashResponse struct {
	Total   int `json:"total"`
	Results []struct {
		ID             string `json:"id"`
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Raw     string `json:"raw"`
			Full    string `json:"full"`
			Regular string `json:"regular"`
			Small   string `json:"small"`
		} `json:"urls"`
		User struct {
			Name     string `json:"name"`
			Username string `json:"username"`
		} `json:"user"`
	} `json:"results"`
}

func (u *Unsplash) Fetch(ctx context.Context, query string, count int) ([]models.ImageRecord, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(count))
	q.Set("order_by", "relevant")
	q.Set("orientation", "squarish")

	header := http.Header{}
	if u.AccessKey != "" {
		header.Set("Authorization", "Client-ID "+u.AccessKey)
		header.Set("Accept-Version", "v1")
	}

	var resp unsplashResponse
	if err := getJSON(ctx, u.Client, u.Name(), strings.TrimRight(u.BaseURL, "/")+"/search/photos?"+q.Encode(), header, &resp); err != nil {
		return nil, err
	}

	out := make([]models.ImageRecord, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.URLs.Regular == "" {
			continue
		}
		title := strings.TrimSpace(r.Description)
		if title == "" {
			title = strings.TrimSpace(r.AltDescription)
		}
		if title == "" {
			title = query
		}
		photographer := r.User.Name
		if photographer == "" {
			photographer = r.User.Username
		}
		out = append(out, models.ImageRecord{
			URL:          r.URLs.Regular,
			Photographer: photographer,
			Title:        title,
			Source:       models.SourceUnsplash,
		})
	}
	return out, nil
}

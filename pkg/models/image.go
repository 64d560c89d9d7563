package models

// Source names the provider an image came from.
type Source string

const (
	SourceUnsplash Source = "unsplash"
	SourcePixabay  Source = "pixabay"
	SourcePexels   Source = "pexels"
	SourceSample   Source = "sample"
)

// ImageRecord is the normalized form of a single search hit.
//
// Every provider maps its own response shape into this structure first;
// the downloader, the manifest builder and the credits catalog only ever
// see ImageRecord values.
type ImageRecord struct {
	URL          string `json:"url"`
	Photographer string `json:"photographer"`
	Title        string `json:"title"`
	Source       Source `json:"source"`
}

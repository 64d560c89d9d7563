package utils

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ProviderConfig carries optional credentials for the image search
// providers. Every field may be empty; providers then use their public,
// unauthenticated endpoints.
type ProviderConfig struct {
	UnsplashAccessKey string
	PixabayAPIKey     string
	PexelsAPIKey      string
}

type ServerConfig struct {
	Addr string
}

// LoadEnv reads a .env file from the working directory if present.
// A missing file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

func LoadProviderConfig() ProviderConfig {
	return ProviderConfig{
		UnsplashAccessKey: strings.TrimSpace(os.Getenv("UNSPLASH_ACCESS_KEY")),
		PixabayAPIKey:     strings.TrimSpace(os.Getenv("PIXABAY_API_KEY")),
		PexelsAPIKey:      strings.TrimSpace(os.Getenv("PEXELS_API_KEY")),
	}
}

func LoadServerConfig() ServerConfig {
	addr := strings.TrimSpace(os.Getenv("PUZZLEASSETS_ADDR"))
	if addr == "" {
		addr = ":8090"
	}
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return ServerConfig{Addr: addr}
}

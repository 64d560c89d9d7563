// Package preview serves the generated puzzle assets over HTTP for local
// inspection, proxies provider searches and can re-run sample generation.
package preview

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"puzzleassets/internal/catalog"
	"puzzleassets/internal/imagesource"
	"puzzleassets/internal/manifest"
	"puzzleassets/internal/populate"
)

const (
	defaultSearchCount = 4
	maxSearchCount     = 30
)

type Handler struct {
	Root      string
	Searchers map[string]imagesource.ImageSearcher
	Hub       *Hub
	Logger    *log.Logger

	// NewPipeline builds the pipeline used by POST /generate.
	NewPipeline func() *populate.Pipeline

	mu      sync.Mutex
	running bool
}

func NewHandler(root string, searchers []imagesource.ImageSearcher, hub *Hub, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	byName := make(map[string]imagesource.ImageSearcher, len(searchers))
	for _, s := range searchers {
		byName[s.Name()] = s
	}
	return &Handler{
		Root:      root,
		Searchers: byName,
		Hub:       hub,
		Logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.health)
	r.GET("/manifest", h.getManifest)
	r.GET("/categories/:name", h.getCategory)
	r.GET("/images/:category/:file", h.getImage)
	r.GET("/search", h.search)
	r.GET("/ws", WSHandler(h.Hub, h.Logger))
	r.POST("/generate", h.generate)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"root":       h.Root,
		"ws_clients": h.Hub.Count(),
	})
}

func (h *Handler) getManifest(c *gin.Context) {
	m, err := manifest.Load(filepath.Join(h.Root, populate.ManifestName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "manifest not generated yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) getCategory(c *gin.Context) {
	name := c.Param("name")
	m, err := manifest.Load(filepath.Join(h.Root, populate.ManifestName))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "manifest not generated yet"})
		return
	}
	mc, ok := m.Categories[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category", "categories": catalog.Names()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       name,
		"category": mc,
		"missing":  missingIn(h.Root, name, mc.Images),
	})
}

func (h *Handler) getImage(c *gin.Context) {
	category := c.Param("category")
	file := c.Param("file")

	if _, ok := catalog.Lookup(category); !ok || category != strings.ToLower(category) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
		return
	}
	if file != filepath.Base(file) || !strings.HasPrefix(file, category+"-") || filepath.Ext(file) != ".jpg" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	path := filepath.Join(h.Root, category, file)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.File(path)
}

func (h *Handler) search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	provider := c.DefaultQuery("provider", "unsplash")
	s, ok := h.Searchers[provider]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown provider"})
		return
	}

	count := parseInt(c.Query("count"), defaultSearchCount)
	if count < 1 {
		count = 1
	}
	if count > maxSearchCount {
		count = maxSearchCount
	}

	items := s.Search(c.Request.Context(), q, count)
	c.JSON(http.StatusOK, gin.H{
		"provider": provider,
		"query":    q,
		"count":    len(items),
		"items":    items,
	})
}

func (h *Handler) generate(c *gin.Context) {
	if h.NewPipeline == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "generation disabled"})
		return
	}

	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
		return
	}
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	p := h.NewPipeline()
	p.Events = h.Hub
	res, err := p.Run(c.Request.Context())
	if err != nil {
		h.Logger.Printf("[preview] generate failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":   res.RunID,
		"manifest": res.ManifestPath,
		"acquired": res.Acquired,
		"failed":   res.Failed,
	})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

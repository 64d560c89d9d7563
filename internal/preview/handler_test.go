package preview

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puzzleassets/internal/catalog"
	"puzzleassets/internal/imagesource"
	"puzzleassets/internal/populate"
	"puzzleassets/internal/samples"
	"puzzleassets/pkg/models"
)

type fakeSearcher struct {
	calls int
}

func (f *fakeSearcher) Name() string { return "pexels" }

func (f *fakeSearcher) Search(_ context.Context, query string, count int) []models.ImageRecord {
	f.calls++
	out := make([]models.ImageRecord, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, models.ImageRecord{URL: "https://x/" + query, Title: query, Source: models.SourcePexels})
	}
	return out
}

func newTestHandler(t *testing.T) (*Handler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := filepath.Join(t.TempDir(), "puzzles")
	logger := log.New(io.Discard, "", 0)
	h := NewHandler(root, []imagesource.ImageSearcher{&fakeSearcher{}}, NewHub(), logger)
	h.NewPipeline = func() *populate.Pipeline {
		p := populate.New(populate.ModeSamples)
		p.Root = root
		p.Categories = catalog.All()[:2]
		p.Slots = 2
		p.Generator = samples.NewGenerator()
		p.Out = io.Discard
		p.Logger = logger
		return p
	}
	return h, NewRouter(h)
}

func do(t *testing.T, r http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	_, r := newTestHandler(t)
	w := do(t, r, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestManifestNotGeneratedYet(t *testing.T) {
	_, r := newTestHandler(t)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/manifest").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/categories/nature").Code)
}

func TestGenerateThenBrowse(t *testing.T) {
	_, r := newTestHandler(t)

	w := do(t, r, http.MethodPost, "/generate")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var gen struct {
		Acquired int `json:"acquired"`
		Failed   int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gen))
	assert.Equal(t, 4, gen.Acquired)
	assert.Zero(t, gen.Failed)

	w = do(t, r, http.MethodGet, "/manifest")
	require.Equal(t, http.StatusOK, w.Code)
	var m models.Manifest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Len(t, m.Categories, 2)

	w = do(t, r, http.MethodGet, "/categories/cities")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"missing":[]`)
	assert.Contains(t, w.Body.String(), `"cities-01.jpg"`)

	w = do(t, r, http.MethodGet, "/categories/space")
	require.Equal(t, http.StatusNotFound, w.Code)
	var unknown struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unknown))
	assert.Equal(t, catalog.Names(), unknown.Categories)

	w = do(t, r, http.MethodGet, "/images/nature/nature-01.jpg")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\xff\xd8"))
}

func TestImageRejectsUnknownAndForeignFiles(t *testing.T) {
	_, r := newTestHandler(t)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/generate").Code)

	for _, target := range []string{
		"/images/space/space-00.jpg",
		"/images/nature/nature-05.jpg",
		"/images/nature/cities-00.jpg",
		"/images/nature/manifest.json",
	} {
		assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, target).Code, target)
	}
}

func TestGenerateRejectsConcurrentRun(t *testing.T) {
	h, r := newTestHandler(t)
	h.running = true
	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodPost, "/generate").Code)
}

func TestSearch(t *testing.T) {
	h, r := newTestHandler(t)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/search?provider=pexels").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/search?provider=flickr&q=cat").Code)

	w := do(t, r, http.MethodGet, "/search?provider=pexels&q=cat&count=500")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Count int                  `json:"count"`
		Items []models.ImageRecord `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, maxSearchCount, body.Count)
	assert.Equal(t, "cat", body.Items[0].Title)
	assert.Equal(t, 1, h.Searchers["pexels"].(*fakeSearcher).calls)
}

func TestWebsocketReceivesRunEvents(t *testing.T) {
	h, r := newTestHandler(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.Close()

	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "welcome")

	require.Eventually(t, func() bool { return h.Hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Post(srv.URL+"/generate", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	var types []string
	for {
		_, msg, err := ws.ReadMessage()
		require.NoError(t, err)
		var e populate.Event
		require.NoError(t, json.Unmarshal(msg, &e))
		types = append(types, e.Type)
		if e.Type == populate.EventRunFinished {
			assert.Equal(t, 4, e.Acquired)
			break
		}
	}
	assert.Equal(t, populate.EventRunStarted, types[0])
	assert.Contains(t, types, populate.EventManifestWritten)
}

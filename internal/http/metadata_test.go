package http

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark/internal/database"
	"github.com/shelfmark/shelfmark/internal/metadata"
)

func setupTestRouterWithMetadata(t *testing.T, upstream *httptest.Server) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewRouter(RouterConfig{
		Store:    store,
		Metadata: metadata.NewOpenLibraryClient(upstream.URL),
	})
}

func TestMetadataLookup(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/isbn/9780441172719.json", r.URL.Path)
		w.Write([]byte(`{"title": "Dune", "publishers": ["Ace Books"], "publish_date": "1990", "number_of_pages": 535}`))
	}))
	defer upstream.Close()

	router := setupTestRouterWithMetadata(t, upstream)
	w := performRequest(t, router, http.MethodGet, "/api/metadata/isbn/9780441172719", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var meta metadata.BookMetadata
	decodeBody(t, w, &meta)
	assert.Equal(t, "Dune", meta.Title)
	assert.Equal(t, "Ace Books", meta.Publisher)
	assert.Equal(t, 1990, meta.PublicationYear)
	assert.Equal(t, 535, meta.PageCount)
}

func TestMetadataLookupInvalidISBN(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream request expected for an invalid ISBN")
	}))
	defer upstream.Close()

	router := setupTestRouterWithMetadata(t, upstream)
	w := performRequest(t, router, http.MethodGet, "/api/metadata/isbn/12345", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetadataLookupUnknownISBN(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	router := setupTestRouterWithMetadata(t, upstream)
	w := performRequest(t, router, http.MethodGet, "/api/metadata/isbn/9780441172719", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetadataLookupUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	router := setupTestRouterWithMetadata(t, upstream)
	w := performRequest(t, router, http.MethodGet, "/api/metadata/isbn/9780441172719", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

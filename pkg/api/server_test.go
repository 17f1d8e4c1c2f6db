package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/feedform/feedform/pkg/config"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, "feedformd", name)
	assert.Equal(t, "dev", versionDefault)

	v, c, d := Version()
	assert.NotEmpty(t, v)
	assert.NotEmpty(t, c)
	assert.NotEmpty(t, d)
}

func newTestHandler(t *testing.T, opts ...config.Option) http.Handler {
	t.Helper()
	cfg, err := config.Load(append([]config.Option{config.WithoutSearch()}, opts...)...)
	require.NoError(t, err)
	s, err := NewServer(context.Background(), cfg)
	require.NoError(t, err)
	return s.Handler()
}

func TestServerRoutes(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/v1/animals", "", http.StatusOK},
		{http.MethodGet, "/v1/classes?animal_type=pig", "", http.StatusOK},
		{http.MethodGet, "/v1/ingredients?animal_type=poultry", "", http.StatusOK},
		{http.MethodPost, "/v1/formulate", `{"animal_type":"catfish"}`, http.StatusBadRequest},
		{http.MethodGet, "/v1/formulate", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/v1/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			if strings.HasPrefix(tt.path, "/v1/") {
				assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
			}
		})
	}
}

func TestServerFormulate(t *testing.T) {
	h := newTestHandler(t, config.WithOverride(config.KeyTolerance, 0))

	body := `{"animal_type":"catfish","class":"Grower",
		"energy_sources":["Maize","Cassava flour"],
		"energy_replacers":["Wheat bran","Maize bran"],
		"high_protein_sources":["Poultry by-product meal"],
		"medium_protein_sources":["Soybean meal","Groundnut cake"],
		"protein_replacers":["Sunflower cake","Sesame cake"]}`

	req := httptest.NewRequest(http.MethodPost, "/v1/formulate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := gjson.Parse(w.Body.String())
	assert.Equal(t, int64(256), res.Get("formulations.#").Int())
	assert.Equal(t, int64(12), res.Get("recommended_formulations.#").Int())
	assert.Equal(t, "dev", res.Get("metadata.version").String())
}

func TestServerGenerationCap(t *testing.T) {
	h := newTestHandler(t, config.WithOverride(config.KeyMaxMixtures, 10))

	body := `{"animal_type":"catfish","class":"Grower",
		"energy_sources":["Maize","Cassava flour"],
		"energy_replacers":["Wheat bran","Maize bran"],
		"medium_protein_sources":["Soybean meal","Groundnut cake"],
		"protein_replacers":["Sunflower cake","Sesame cake"]}`

	req := httptest.NewRequest(http.MethodPost, "/v1/formulate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "GENERATION_TOO_LARGE", gjson.Get(w.Body.String(), "code").String())
}

func TestNewEngineBadDataDir(t *testing.T) {
	cfg, err := config.Load(config.WithoutSearch(), config.WithOverride(config.KeyDataDir, "/nonexistent/feedform"))
	require.NoError(t, err)

	_, err = NewEngine(context.Background(), cfg)
	assert.Error(t, err)
}

func TestServerConcurrentRequests(t *testing.T) {
	h := newTestHandler(t)

	var wg sync.WaitGroup
	codes := make([]int, 20)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/v1/classes?animal_type=catfish", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for i, c := range codes {
		assert.Equal(t, http.StatusOK, c, "request %d", i)
	}
}

package engine

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	fferrors "github.com/feedform/feedform/pkg/errors"
)

const growerJSON = `{
	"animal_type": "catfish",
	"class": "Grower",
	"energy_sources": ["Maize", "Cassava flour"],
	"energy_replacers": ["Wheat bran", "Maize bran"],
	"high_protein_sources": ["Poultry by-product meal"],
	"medium_protein_sources": ["Soybean meal", "Groundnut cake"],
	"protein_replacers": ["Sunflower cake", "Sesame cake"]
}`

const growerYAML = `animal_type: catfish
catfish_class: Grower
tolerance: 0
energy_sources: [Maize, Cassava flour]
energy_replacers: [Wheat bran, Maize bran]
high_protein_sources: Poultry by-product meal
medium_protein_sources: [Soybean meal, Groundnut cake]
protein_replacers: [Sunflower cake, Sesame cake]
`

func growerForm() url.Values {
	return url.Values{
		"animal_type":            {"catfish"},
		"class":                  {"Grower"},
		"energy_sources":         {"Maize", "Cassava flour"},
		"energy_replacers":       {"Wheat bran", "Maize bran"},
		"high_protein_sources":   {"Poultry by-product meal"},
		"medium_protein_sources": {"Soybean meal", "Groundnut cake"},
		"protein_replacers":      {"Sunflower cake", "Sesame cake"},
		"tolerance":              {"0.02"},
	}
}

func serve(t *testing.T, h http.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, gjson.Result) {
	t.Helper()
	w := httptest.NewRecorder()
	h(w, req)
	body := w.Body.Bytes()
	require.True(t, gjson.ValidBytes(body), "response is not JSON: %s", body)
	return w, gjson.ParseBytes(body)
}

func TestHandleFormulate(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []struct {
		name        string
		contentType string
		body        string
		recommended int64
	}{
		{"json", "application/json", growerJSON, 199},
		{"no content type", "", growerJSON, 199},
		{"yaml", "application/yaml", growerYAML, 12},
		{"form", "application/x-www-form-urlencoded", growerForm().Encode(), 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/formulate", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			w, res := serve(t, e.HandleFormulate, req)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			assert.Equal(t, "FormulationResult", res.Get("kind").String())
			assert.Equal(t, "Grower", res.Get("class").String())
			assert.Equal(t, int64(256), res.Get("formulations.#").Int())
			assert.Equal(t, tt.recommended, res.Get("recommended_formulations.#").Int())
			assert.Equal(t, int64(256), res.Get("summary.total").Int())

			first := res.Get("formulations.0")
			assert.InDelta(t, 0.15, first.Get("Maize").Float(), 1e-9)
			assert.True(t, first.Get("total_me_content").Exists())
			assert.True(t, first.Get("total_cp_content").Exists())
		})
	}
}

func TestHandleFormulateMultipart(t *testing.T) {
	e := newTestEngine(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range growerForm() {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/formulate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w, res := serve(t, e.HandleFormulate, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(256), res.Get("recommended_formulations.#").Int())
}

func TestHandleFormulateErrors(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantCode   fferrors.ErrorCode
	}{
		{"get", http.MethodGet, "", http.StatusMethodNotAllowed, fferrors.ErrCodeMethodNotAllowed},
		{"bad json", http.MethodPost, `{"animal_type":`, http.StatusBadRequest, fferrors.ErrCodeInvalidRequest},
		{"unknown animal", http.MethodPost, `{"animal_type":"dragon","class":"Grower"}`, http.StatusBadRequest, fferrors.ErrCodeInvalidAnimalType},
		{"unknown class", http.MethodPost, `{"animal_type":"catfish","class":"Kitten"}`, http.StatusBadRequest, fferrors.ErrCodeInvalidClass},
		{"negative tolerance", http.MethodPost, `{"animal_type":"catfish","class":"Grower","tolerance":-1}`, http.StatusBadRequest, fferrors.ErrCodeInvalidRequest},
		{"insufficient selection", http.MethodPost, `{"animal_type":"catfish","class":"Grower","energy_sources":["Maize"]}`, http.StatusUnprocessableEntity, fferrors.ErrCodeInsufficientSelection},
		{"unknown ingredient", http.MethodPost, strings.Replace(growerJSON, "Cassava flour", "Moon dust", 1), http.StatusUnprocessableEntity, fferrors.ErrCodeInvalidIngredient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/formulate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w, res := serve(t, e.HandleFormulate, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, string(tt.wantCode), res.Get("code").String())
			assert.NotEmpty(t, res.Get("message").String())
		})
	}
}

func TestHandleFormulateBodyTooLarge(t *testing.T) {
	e := newTestEngine(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/formulate", strings.NewReader(growerJSON))
	w := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(w, req.Body, 16)

	e.HandleFormulate(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, int64(16), gjson.Get(w.Body.String(), "details.limit").Int())
}

func TestHandleClasses(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []struct {
		name        string
		method      string
		target      string
		contentType string
		body        string
		wantStatus  int
	}{
		{"get", http.MethodGet, "/v1/classes?animal_type=catfish", "", "", http.StatusOK},
		{"post json", http.MethodPost, "/v1/classes", "application/json", `{"animal_type":"catfish"}`, http.StatusOK},
		{"post form", http.MethodPost, "/v1/classes", "application/x-www-form-urlencoded", "animal_type=catfish", http.StatusOK},
		{"post bad json", http.MethodPost, "/v1/classes", "application/json", `{`, http.StatusBadRequest},
		{"missing animal", http.MethodGet, "/v1/classes", "", "", http.StatusBadRequest},
		{"delete", http.MethodDelete, "/v1/classes", "", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			w, res := serve(t, e.HandleClasses, req)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=600")
			assert.Equal(t, "catfish", res.Get("animal_type").String())
			assert.Equal(t, int64(5), res.Get("classes.#").Int())
			assert.Equal(t, "Fry", res.Get("classes.0").String())
		})
	}

	w, _ := serve(t, e.HandleClasses, httptest.NewRequest(http.MethodPut, "/v1/classes", nil))
	assert.Equal(t, "GET, POST", w.Header().Get("Allow"))
}

func TestHandleIngredients(t *testing.T) {
	e := newTestEngine(t, nil)

	w, res := serve(t, e.HandleIngredients, httptest.NewRequest(http.MethodGet, "/v1/ingredients?animal_type=catfish", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IngredientOptions", res.Get("kind").String())

	var found bool
	for _, n := range res.Get("ingredient_options.energy_sources").Array() {
		if n.String() == "Maize" {
			found = true
		}
	}
	assert.True(t, found, "Maize missing from energy_sources")

	w, res = serve(t, e.HandleIngredients, httptest.NewRequest(http.MethodGet, "/v1/ingredients?animal_type=dragon", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(fferrors.ErrCodeInvalidAnimalType), res.Get("code").String())

	w, _ = serve(t, e.HandleIngredients, httptest.NewRequest(http.MethodPost, "/v1/ingredients", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleAnimals(t *testing.T) {
	e := newTestEngine(t, nil)

	w, res := serve(t, e.HandleAnimals, httptest.NewRequest(http.MethodGet, "/v1/animals", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AnimalList", res.Get("kind").String())
	assert.Equal(t, int64(3), res.Get("animals.#").Int())
	assert.True(t, res.Get(`animals.#(animal_type=="catfish")`).Exists())

	w, _ = serve(t, e.HandleAnimals, httptest.NewRequest(http.MethodPost, "/v1/animals", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRoutes(t *testing.T) {
	e := newTestEngine(t, nil)

	routes := e.Routes()
	for _, p := range []string{"/v1/animals", "/v1/classes", "/v1/ingredients", "/v1/formulate"} {
		assert.Contains(t, routes, p)
	}
}

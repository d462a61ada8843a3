package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "marketplace-listings/internal/errors"
	"marketplace-listings/internal/middleware"
	"marketplace-listings/internal/models"
	"marketplace-listings/internal/repositories"
	"marketplace-listings/internal/services"
	"marketplace-listings/internal/transformers"
	"marketplace-listings/internal/validators"
	"marketplace-listings/pkg/cache"
	"marketplace-listings/pkg/listingsapi"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSource struct {
	items []map[string]interface{}
	err   error
}

func (s *stubSource) FetchProperties(context.Context) ([]map[string]interface{}, error) {
	return s.items, s.err
}

func (s *stubSource) FetchProperty(_ context.Context, id string) (map[string]interface{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, item := range s.items {
		if item["id"] == id {
			return item, nil
		}
	}
	return nil, listingsapi.ErrNotFound
}

func newTestRouter(source repositories.ListingSource) *gin.Engine {
	svc := services.NewPropertySearchService(
		source,
		nil,
		repositories.NewPropertyCache(cache.NewCache()),
		transformers.NewPropertyTransformer(""),
		validators.NewFilterValidator(),
		services.SearchOptions{CacheTTL: time.Minute, PerPage: 10, MaxPerPage: 20},
	)
	h := NewPropertyHandler(svc, models.LangEnglish)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	api := r.Group("/api/properties")
	api.GET("", h.GetProperties)
	api.GET("/:id", h.GetPropertyByID)
	api.POST("/search", h.SearchCollection)
	api.POST("/normalize", h.NormalizeCollection)
	api.POST("/refresh", h.RefreshProperties)
	return r
}

func sampleListings() []map[string]interface{} {
	return []map[string]interface{}{
		{"id": "1", "title": map[string]interface{}{"en": "Flat", "ar": "شقة"}, "price": 1200.0, "listing_type": "rent"},
		{"id": "2", "title": "House", "price": 250000.0, "listing_type": "sale"},
		{"id": "3", "title": "Studio", "price": "Price on request", "listing_type": "rent"},
	}
}

func perform(r http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, w, &body)
	return body.Error.Code
}

func TestGetProperties(t *testing.T) {
	r := newTestRouter(&stubSource{items: sampleListings()})

	w := perform(r, http.MethodGet, "/api/properties?listingType=rent&sortBy=price&sortOrder=desc&perPage=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PaginatedPropertiesResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "1", resp.Data[0].ID)
	assert.Equal(t, 2, resp.Meta.Total)
	require.NotNil(t, resp.Meta.Next)
	assert.Contains(t, *resp.Meta.Next, "page=2")
	assert.Contains(t, *resp.Meta.Next, "listingType=rent")
}

func TestGetPropertyByID_Language(t *testing.T) {
	r := newTestRouter(&stubSource{items: sampleListings()})

	w := perform(r, http.MethodGet, "/api/properties/1", "", map[string]string{"Accept-Language": "ar-IQ,ar;q=0.9"})
	require.Equal(t, http.StatusOK, w.Code)
	var p models.Property
	decodeBody(t, w, &p)
	assert.Equal(t, "شقة", p.Title)

	w = perform(r, http.MethodGet, "/api/properties/1?lang=en", "", map[string]string{"Accept-Language": "ar"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &p)
	assert.Equal(t, "Flat", p.Title)

	w = perform(r, http.MethodGet, "/api/properties/1", "", nil)
	decodeBody(t, w, &p)
	assert.Equal(t, "Flat", p.Title)
}

func TestGetProperties_InvalidParameters(t *testing.T) {
	r := newTestRouter(&stubSource{items: sampleListings()})

	for _, target := range []string{
		"/api/properties?sortBy=rating",
		"/api/properties?minPrice=cheap",
		"/api/properties?perPage=0",
		"/api/properties?page=-1",
	} {
		w := perform(r, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, apperrors.ErrCodeInvalidParameters, errorCode(t, w), target)
	}
}

func TestGetProperties_UpstreamDown(t *testing.T) {
	r := newTestRouter(&stubSource{err: errors.New("dial tcp: connection refused")})

	w := perform(r, http.MethodGet, "/api/properties", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, apperrors.ErrCodeServiceUnavailable, errorCode(t, w))
}

func TestGetPropertyByID(t *testing.T) {
	r := newTestRouter(&stubSource{items: sampleListings()})

	w := perform(r, http.MethodGet, "/api/properties/3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p models.Property
	decodeBody(t, w, &p)
	assert.Equal(t, "Studio", p.Title)
	assert.Nil(t, p.Price)

	w = perform(r, http.MethodGet, "/api/properties/99", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodePropertyNotFound, errorCode(t, w))
}

func TestSearchCollection(t *testing.T) {
	r := newTestRouter(nil)
	body := `{
		"properties": [
			{"id": 1, "price": "1,500", "bedrooms": "3"},
			{"id": 2, "price": 900, "bedrooms": 1},
			{"id": 3, "price": 2000, "bedrooms": 4}
		],
		"filters": {"minBedrooms": 2, "sortBy": "price", "sortOrder": "desc"}
	}`

	w := perform(r, http.MethodPost, "/api/properties/search", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []models.Property `json:"data"`
		Total int               `json:"total"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "3", resp.Data[0].ID)
	assert.Equal(t, "1", resp.Data[1].ID)

	w = perform(r, http.MethodPost, "/api/properties/search", `{"filters": {"sortOrder": "up"}}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/api/properties/search", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeCollection(t *testing.T) {
	r := newTestRouter(nil)
	body := `{"lang": "ar", "properties": [{"id": "x", "title": {"en": "Villa", "ar": "فيلا"}}]}`

	w := perform(r, http.MethodPost, "/api/properties/normalize", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Property `json:"data"`
	}
	decodeBody(t, w, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "فيلا", resp.Data[0].Title)
	assert.True(t, resp.Data[0].Normalized)
	assert.Equal(t, transformers.DefaultPlaceholderImage, resp.Data[0].MainImage)
}

func TestRefreshProperties(t *testing.T) {
	r := newTestRouter(&stubSource{items: sampleListings()})

	w := perform(r, http.MethodPost, "/api/properties/refresh", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Count int `json:"count"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, 3, resp.Count)
}

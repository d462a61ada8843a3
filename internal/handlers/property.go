package handlers

import (
	"net/http"
	"strconv"

	apperrors "marketplace-listings/internal/errors"
	"marketplace-listings/internal/models"
	"marketplace-listings/internal/services"
	"marketplace-listings/internal/transformers"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	searchService   *services.PropertySearchService
	defaultLanguage models.Language
}

func NewPropertyHandler(searchService *services.PropertySearchService, defaultLanguage models.Language) *PropertyHandler {
	if defaultLanguage == "" {
		defaultLanguage = models.LangEnglish
	}
	return &PropertyHandler{searchService: searchService, defaultLanguage: defaultLanguage}
}

// GetProperties serves GET /api/properties. Filters, sorting and page come
// from the query string.
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	var filters models.FilterSpec
	if err := c.ShouldBindQuery(&filters); err != nil {
		_ = c.Error(apperrors.InvalidParameters(err.Error(), apperrors.ErrInvalidParameters))
		return
	}

	perPage := 0
	if raw := c.Query("perPage"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			_ = c.Error(apperrors.InvalidParameters("perPage must be a positive integer", apperrors.ErrInvalidParameters))
			return
		}
		perPage = n
	}

	response, err := h.searchService.Search(c.Request.Context(), services.ListingsQuery{
		Filters: filters,
		Lang:    h.language(c, ""),
		PerPage: perPage,
		BaseURL: c.Request.URL.Path,
		Params:  c.Request.URL.Query(),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetPropertyByID serves GET /api/properties/:id.
func (h *PropertyHandler) GetPropertyByID(c *gin.Context) {
	property, err := h.searchService.GetProperty(c.Request.Context(), c.Param("id"), h.language(c, ""))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// SearchCollection filters and sorts a collection posted by the client.
func (h *PropertyHandler) SearchCollection(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.InvalidParameters(err.Error(), apperrors.ErrInvalidParameters))
		return
	}

	properties, err := h.searchService.SearchCollection(req.Filters, req.Properties, h.language(c, req.Lang))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": properties, "total": len(properties)})
}

// NormalizeCollection converts posted raw records into canonical listings.
func (h *PropertyHandler) NormalizeCollection(c *gin.Context) {
	var req models.NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.InvalidParameters(err.Error(), apperrors.ErrInvalidParameters))
		return
	}

	properties := h.searchService.NormalizeCollection(req.Properties, h.language(c, req.Lang))
	c.JSON(http.StatusOK, gin.H{"data": properties, "total": len(properties)})
}

// RefreshProperties drops cached listings and reloads them from upstream.
func (h *PropertyHandler) RefreshProperties(c *gin.Context) {
	count, err := h.searchService.Refresh(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listings refreshed", "count": count})
}

// language picks the body value, then ?lang=, then Accept-Language, then the
// configured default.
func (h *PropertyHandler) language(c *gin.Context, bodyLang string) models.Language {
	for _, candidate := range []string{bodyLang, c.Query("lang")} {
		if lang, ok := transformers.ParseLanguage(candidate); ok {
			return lang
		}
	}
	return transformers.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language"), h.defaultLanguage)
}

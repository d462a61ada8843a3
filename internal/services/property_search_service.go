package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	apperrors "marketplace-listings/internal/errors"
	"marketplace-listings/internal/models"
	"marketplace-listings/internal/repositories"
	"marketplace-listings/internal/transformers"
	"marketplace-listings/internal/utils"
	"marketplace-listings/internal/validators"
	"marketplace-listings/pkg/listingsapi"
	"marketplace-listings/pkg/logger"
	"marketplace-listings/pkg/metrics"
)

// SearchOptions tunes pagination, caching and the fallback language.
type SearchOptions struct {
	CacheTTL        time.Duration
	DefaultLanguage models.Language
	PerPage         int
	MaxPerPage      int
}

// ListingsQuery is one page request against the upstream collection.
type ListingsQuery struct {
	Filters models.FilterSpec
	Lang    models.Language
	PerPage int
	BaseURL string
	Params  url.Values
}

type PropertySearchService struct {
	source    repositories.ListingSource
	repo      repositories.PropertyRepository
	cache     repositories.PropertyCache
	trans     transformers.PropertyTransformer
	validator validators.FilterValidator
	opts      SearchOptions
}

// NewPropertySearchService builds the service. source and repo may be nil when
// the upstream API or the snapshot store is not configured.
func NewPropertySearchService(
	source repositories.ListingSource,
	repo repositories.PropertyRepository,
	cache repositories.PropertyCache,
	trans transformers.PropertyTransformer,
	validator validators.FilterValidator,
	opts SearchOptions,
) *PropertySearchService {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = models.LangEnglish
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 12
	}
	if opts.MaxPerPage < opts.PerPage {
		opts.MaxPerPage = opts.PerPage
	}
	return &PropertySearchService{
		source:    source,
		repo:      repo,
		cache:     cache,
		trans:     trans,
		validator: validator,
		opts:      opts,
	}
}

// Search filters, sorts and paginates the upstream collection.
func (s *PropertySearchService) Search(ctx context.Context, q ListingsQuery) (*models.PaginatedPropertiesResponse, error) {
	if err := s.validator.ValidateFilters(&q.Filters); err != nil {
		return nil, err
	}

	raws, err := s.loadListings(ctx)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilters(s.normalize(raws, q.Lang), q.Filters)
	return s.paginate(filtered, q), nil
}

// GetProperty returns a single normalized listing.
func (s *PropertySearchService) GetProperty(ctx context.Context, id string, lang models.Language) (*models.Property, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.InvalidParameters("property id is empty", apperrors.ErrInvalidParameters)
	}

	if raw, ok := s.cachedProperty(ctx, id); ok {
		metrics.CacheHitsTotal.Inc()
		return s.normalizeOne(raw, lang), nil
	}
	metrics.CacheMissesTotal.Inc()

	var upstreamErr error
	if s.source != nil {
		item, err := s.source.FetchProperty(ctx, id)
		switch {
		case err == nil:
			raw := models.RawProperty(item)
			if err := s.cache.SetProperty(ctx, id, raw, s.opts.CacheTTL); err != nil {
				logger.Get().Warnf("Failed to cache property %s: %v", id, err)
			}
			return s.normalizeOne(raw, lang), nil
		case errors.Is(err, listingsapi.ErrNotFound):
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPropertyNotFound, id)
		default:
			upstreamErr = err
			logger.Get().Warnf("Upstream detail fetch failed for %s: %v", id, err)
		}
	}

	if s.repo != nil {
		raw, err := s.repo.FindByID(ctx, id)
		if err != nil {
			logger.Get().Errorf("Snapshot lookup failed for %s: %v", id, err)
		} else if raw != nil {
			if upstreamErr != nil {
				metrics.UpstreamFallbacksTotal.Inc()
			}
			return s.normalizeOne(raw, lang), nil
		}
	}

	if upstreamErr != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, upstreamErr)
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrPropertyNotFound, id)
}

// SearchCollection runs the pipeline over a caller-supplied collection
// without touching any storage.
func (s *PropertySearchService) SearchCollection(filters models.FilterSpec, raws []models.RawProperty, lang models.Language) ([]models.Property, error) {
	if err := s.validator.ValidateFilters(&filters); err != nil {
		return nil, err
	}
	return ApplyFilters(s.normalize(raws, lang), filters), nil
}

// NormalizeCollection only normalizes.
func (s *PropertySearchService) NormalizeCollection(raws []models.RawProperty, lang models.Language) []models.Property {
	return s.normalize(raws, lang)
}

// Refresh drops every cached listing key and, when an upstream is
// configured, reloads the collection. It returns the number of listings loaded.
func (s *PropertySearchService) Refresh(ctx context.Context) (int, error) {
	if err := s.cache.Invalidate(ctx); err != nil {
		return 0, utils.WrapError(err, "invalidate listings cache")
	}
	if s.source == nil {
		return 0, nil
	}
	raws, err := s.fetchUpstream(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	return len(raws), nil
}

func (s *PropertySearchService) cachedProperty(ctx context.Context, id string) (models.RawProperty, bool) {
	raw, found, err := s.cache.GetProperty(ctx, id)
	if err != nil {
		logger.Get().Warnf("Property cache read failed for %s: %v", id, err)
	} else if found {
		return raw, true
	}

	raws, found, err := s.cache.GetListings(ctx)
	if err != nil || !found {
		return nil, false
	}
	for _, r := range raws {
		if r.Key() == id {
			return r, true
		}
	}
	return nil, false
}

func (s *PropertySearchService) loadListings(ctx context.Context) ([]models.RawProperty, error) {
	raws, found, err := s.cache.GetListings(ctx)
	if err != nil {
		logger.Get().Warnf("Listings cache read failed: %v", err)
	} else if found {
		metrics.CacheHitsTotal.Inc()
		return raws, nil
	}
	metrics.CacheMissesTotal.Inc()

	var upstreamErr error
	if s.source != nil {
		raws, err := s.fetchUpstream(ctx)
		if err == nil {
			return raws, nil
		}
		upstreamErr = err
		logger.Get().Warnf("Upstream listings fetch failed: %v", err)
	}

	if s.repo != nil {
		raws, err := s.repo.FindAll(ctx)
		if err != nil {
			logger.Get().Errorf("Snapshot load failed: %v", err)
		} else if len(raws) > 0 {
			metrics.UpstreamFallbacksTotal.Inc()
			logger.Get().Printf("Serving %d listings from snapshot", len(raws))
			return raws, nil
		}
	}

	if upstreamErr == nil {
		upstreamErr = errors.New("no listings source configured")
	}
	return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, upstreamErr)
}

// fetchUpstream loads the collection and stores it in the cache and the
// snapshot store. Storage failures are logged, not returned.
func (s *PropertySearchService) fetchUpstream(ctx context.Context) ([]models.RawProperty, error) {
	items, err := s.source.FetchProperties(ctx)
	if err != nil {
		return nil, err
	}
	raws := make([]models.RawProperty, len(items))
	for i, item := range items {
		raws[i] = models.RawProperty(item)
	}

	if err := s.cache.SetListings(ctx, raws, s.opts.CacheTTL); err != nil {
		logger.Get().Warnf("Failed to cache listings: %v", err)
	}
	if s.repo != nil {
		if err := s.repo.SaveSnapshot(ctx, raws); err != nil {
			logger.Get().Errorf("Failed to save listings snapshot: %v", err)
		}
	}
	logger.Get().Debugf("Fetched %d listings from upstream", len(raws))
	return raws, nil
}

func (s *PropertySearchService) language(lang models.Language) models.Language {
	if lang == "" {
		return s.opts.DefaultLanguage
	}
	return lang
}

func (s *PropertySearchService) normalize(raws []models.RawProperty, lang models.Language) []models.Property {
	props := s.trans.NormalizeAll(raws, s.language(lang))
	onRequest := 0
	for _, p := range props {
		if p.PriceOnRequest() {
			onRequest++
		}
	}
	utils.RecordNormalized(len(props), onRequest)
	return props
}

func (s *PropertySearchService) normalizeOne(raw models.RawProperty, lang models.Language) *models.Property {
	p := s.trans.Normalize(raw, s.language(lang))
	onRequest := 0
	if p.PriceOnRequest() {
		onRequest = 1
	}
	utils.RecordNormalized(1, onRequest)
	return &p
}

func (s *PropertySearchService) paginate(props []models.Property, q ListingsQuery) *models.PaginatedPropertiesResponse {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = s.opts.PerPage
	}
	if perPage > s.opts.MaxPerPage {
		perPage = s.opts.MaxPerPage
	}
	page := q.Filters.Page
	if page < 1 {
		page = 1
	}

	total := len(props)
	lastPage := utils.LastPage(total, perPage)

	// Compare in pages first; (page-1)*perPage overflows for huge pages.
	start := total
	if page-1 < lastPage {
		start = (page - 1) * perPage
	}
	end := start + perPage
	if end > total {
		end = total
	}
	data := make([]models.Property, end-start)
	copy(data, props[start:end])

	meta := models.PaginationMeta{
		Total:    total,
		Page:     page,
		PerPage:  perPage,
		LastPage: lastPage,
	}
	if page < lastPage {
		next := utils.BuildPaginationURL(q.BaseURL, page+1, perPage, q.Params)
		meta.Next = &next
	}
	if page > 1 {
		prevPage := page - 1
		if prevPage > lastPage {
			prevPage = lastPage
		}
		prev := utils.BuildPaginationURL(q.BaseURL, prevPage, perPage, q.Params)
		meta.Prev = &prev
	}

	return &models.PaginatedPropertiesResponse{Data: data, Meta: meta}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenheaven/storefront-api/internal/core/domain"
	"github.com/greenheaven/storefront-api/internal/core/ports"
	"github.com/greenheaven/storefront-api/internal/metrics"
)

const defaultQueryTimeout = 15 * time.Second

// imagePrefix is the only accepted shape for product image payloads.
const imagePrefix = "data:image/"

// CatalogService serves product listings through a short-lived cache and
// accepts create/update/delete from admin callers. On a store timeout it
// prefers a stale cached listing over failing the read.
type CatalogService struct {
	repo         ports.ProductRepository
	cache        *ProductCache
	queryTimeout time.Duration
	logger       zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, cache *ProductCache, queryTimeout time.Duration, logger zerolog.Logger) *CatalogService {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &CatalogService{repo: repo, cache: cache, queryTimeout: queryTimeout, logger: logger}
}

// ListProducts returns the catalog, served from cache while it is fresh.
// A cache miss queries the store under a deadline; when the store is too slow
// a stale listing is served if one exists, otherwise the caller is told to
// retry (domain.ErrStoreTimeout).
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if items, ok := s.cache.Get(); ok {
		metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
		return items, nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	items, err := s.repo.List(queryCtx)
	if err != nil {
		if stale, ok := s.cache.GetStale(); ok {
			metrics.CatalogCacheTotal.WithLabelValues("stale").Inc()
			s.logger.Warn().Err(err).Msg("catalog store error, serving stale listing")
			return stale, nil
		}
		if errors.Is(err, context.DeadlineExceeded) {
			metrics.CatalogStoreTimeoutsTotal.Inc()
			s.logger.Error().Err(err).Dur("timeout", s.queryTimeout).Msg("catalog store timed out with cold cache")
			return nil, domain.ErrStoreTimeout
		}
		return nil, fmt.Errorf("list products: %w", err)
	}

	s.cache.Set(items)
	metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
	return items, nil
}

// AddProduct validates and persists a new catalog entry. Admin-only at the
// transport layer. The cache is cleared, not refreshed, on success.
func (s *CatalogService) AddProduct(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input, true); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Image:       input.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}

	s.cache.Clear()
	metrics.ProductMutationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

// UpdateProduct applies the same validation as AddProduct except that an
// omitted image leaves the stored one unchanged.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ports.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input, false); err != nil {
		return nil, err
	}

	patch := ports.ProductPatch{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Image:       input.Image,
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.cache.Clear()
	metrics.ProductMutationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

// DeleteProduct removes a catalog entry and clears the cache.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Clear()
	metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func validateProductInput(input ports.ProductInput, imageRequired bool) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidProduct)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalidProduct)
	}
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be a positive number", domain.ErrInvalidProduct)
	}
	if input.Image == "" {
		if imageRequired {
			return fmt.Errorf("%w: image is required", domain.ErrInvalidProduct)
		}
		return nil
	}
	if !strings.HasPrefix(input.Image, imagePrefix) {
		return fmt.Errorf("%w: image must be a data URI", domain.ErrInvalidProduct)
	}
	return nil
}

package service

import (
	"context"
	"time"

	"github.com/heatspares-next/internal/cache"
	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"
)

// CatalogService is the public catalog read surface.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	services   repository.ServiceRepository
	reviews    repository.ReviewRepository

	catalogTTL time.Duration
}

// NewCatalogService creates a catalog service.
func NewCatalogService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	services repository.ServiceRepository,
	reviews repository.ReviewRepository,
	catalogTTL time.Duration,
) *CatalogService {
	if catalogTTL <= 0 {
		catalogTTL = 2 * time.Minute
	}
	return &CatalogService{
		products:   products,
		categories: categories,
		brands:     brands,
		services:   services,
		reviews:    reviews,
		catalogTTL: catalogTTL,
	}
}

// Navigation is the storefront menu data: categories and active brands.
type Navigation struct {
	Categories []models.Category `json:"categories"`
	Brands     []models.Brand    `json:"brands"`
}

// ProductDetail is a product with its bookable services and review aggregate.
type ProductDetail struct {
	Product       *models.Product    `json:"product"`
	Services      []EffectiveService `json:"services"`
	AverageRating float64            `json:"average_rating"`
	ReviewCount   int64              `json:"review_count"`
}

// GetNavigation returns the cached storefront menu.
func (s *CatalogService) GetNavigation(ctx context.Context) (*Navigation, error) {
	return cache.RememberJSON(ctx, constants.CacheKeyNavigation, s.catalogTTL, func() (*Navigation, error) {
		categories, err := s.categories.List()
		if err != nil {
			return nil, err
		}
		brands, err := s.brands.List(true)
		if err != nil {
			return nil, err
		}
		return &Navigation{Categories: categories, Brands: brands}, nil
	})
}

// ListFeatured returns the cached homepage product set.
func (s *CatalogService) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	return cache.RememberJSON(ctx, constants.CacheKeyFeaturedProducts, s.catalogTTL, func() ([]models.Product, error) {
		return s.products.ListFeatured(limit)
	})
}

// ListProducts returns the filtered, paginated public listing.
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	return s.products.List(filter)
}

// GetProduct returns a product detail page by slug.
func (s *CatalogService) GetProduct(slug string) (*ProductDetail, error) {
	product, err := s.products.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	assignments, err := s.services.ListAssignmentsByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	effective := make([]EffectiveService, 0, len(assignments))
	for i := range assignments {
		if assignments[i].Service == nil || !assignments[i].Service.IsActive {
			continue
		}
		effective = append(effective, ResolveEffective(assignments[i].Service, &assignments[i]))
	}

	avg, count, err := s.reviews.AverageRating(product.ID)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{
		Product:       product,
		Services:      effective,
		AverageRating: avg,
		ReviewCount:   count,
	}, nil
}

// GetCategory returns a category by slug.
func (s *CatalogService) GetCategory(slug string) (*models.Category, error) {
	category, err := s.categories.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetBrand returns a brand by slug.
func (s *CatalogService) GetBrand(slug string) (*models.Brand, error) {
	brand, err := s.brands.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if brand == nil || !brand.IsActive {
		return nil, ErrBrandNotFound
	}
	return brand, nil
}

// InvalidateCache drops the memoized catalog reads after admin writes.
func (s *CatalogService) InvalidateCache(ctx context.Context) {
	_ = cache.Del(ctx, constants.CacheKeyNavigation, constants.CacheKeyFeaturedProducts)
}

package service

import (
	"context"

	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"
)

// CatalogAdminService is the back-office catalog management surface.
type CatalogAdminService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	services   repository.ServiceRepository
	catalog    *CatalogService
}

// NewCatalogAdminService creates a catalog admin service.
func NewCatalogAdminService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	services repository.ServiceRepository,
	catalog *CatalogService,
) *CatalogAdminService {
	return &CatalogAdminService{
		products:   products,
		categories: categories,
		brands:     brands,
		services:   services,
		catalog:    catalog,
	}
}

// ListProducts returns the unfiltered admin product listing.
func (s *CatalogAdminService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.products.List(filter)
}

// GetProduct fetches a product.
func (s *CatalogAdminService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct inserts a product, reserving its slug.
func (s *CatalogAdminService) CreateProduct(ctx context.Context, product *models.Product) error {
	existing, err := s.products.GetBySlug(product.Slug)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrSlugTaken
	}
	if err := s.products.Create(product); err != nil {
		return err
	}
	s.catalog.InvalidateCache(ctx)
	return nil
}

// UpdateProduct saves product changes, keeping the slug unique.
func (s *CatalogAdminService) UpdateProduct(ctx context.Context, product *models.Product) error {
	existing, err := s.products.GetBySlug(product.Slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != product.ID {
		return ErrSlugTaken
	}
	if err := s.products.Update(product); err != nil {
		return err
	}
	s.catalog.InvalidateCache(ctx)
	return nil
}

// DeleteProduct soft-deletes a product.
func (s *CatalogAdminService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.products.Delete(id); err != nil {
		return err
	}
	s.catalog.InvalidateCache(ctx)
	return nil
}

// ListCategories returns every category.
func (s *CatalogAdminService) ListCategories() ([]models.Category, error) {
	return s.categories.List()
}

// SaveCategory inserts or updates a category, keeping the slug unique.
func (s *CatalogAdminService) SaveCategory(ctx context.Context, category *models.Category) error {
	existing, err := s.categories.GetBySlug(category.Slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != category.ID {
		return ErrSlugTaken
	}
	if category.ID == 0 {
		err = s.categories.Create(category)
	} else {
		err = s.categories.Update(category)
	}
	if err != nil {
		return err
	}
	s.catalog.InvalidateCache(ctx)
	return nil
}

// DeleteCategory soft-deletes a category.
func (s *CatalogAdminService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categories.Delete(id); err != nil {
		return err
	}
	s.catalog.InvalidateCache(ctx)
	return nil
}

// ListBrands returns every brand.
func (s *CatalogAdminService) ListBrands() ([]models.Brand, error) {
	return s.brands.List(false)
}

// SaveBrand inserts or updates a brand, keeping the slug unique.
func (s *CatalogAdminService) SaveBrand(ctx context.Context, brand *models.Brand) error {
	existing, err := s.brands.GetBySlug(brand.Slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != brand.ID {
		return ErrSlugTaken
	}
	if brand.ID == 0 {
		err = s.brands.Create(brand)
	} else {
		err = s.brands.Update(brand)
	}
	if err != nil {
		return err
	}
	s.catalog.InvalidateCache(ctx)
	return nil
}

// DeleteBrand soft-deletes a brand.
func (s *CatalogAdminService) DeleteBrand(ctx context.Context, id uint) error {
	if err := s.brands.Delete(id); err != nil {
		return err
	}
	s.catalog.InvalidateCache(ctx)
	return nil
}

// ListServices returns every orderable service.
func (s *CatalogAdminService) ListServices() ([]models.ProductService, error) {
	return s.services.List(false)
}

// SaveService inserts or updates a service.
func (s *CatalogAdminService) SaveService(svc *models.ProductService) error {
	if svc.ID == 0 {
		return s.services.Create(svc)
	}
	return s.services.Update(svc)
}

// DeleteService soft-deletes a service.
func (s *CatalogAdminService) DeleteService(id uint) error {
	return s.services.Delete(id)
}

// AssignService attaches a service to a product with optional overrides.
func (s *CatalogAdminService) AssignService(assignment *models.ProductServiceAssignment) error {
	product, err := s.products.GetByID(assignment.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	svc, err := s.services.GetByID(assignment.ServiceID)
	if err != nil {
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}
	return s.services.UpsertAssignment(assignment)
}

// UnassignService detaches a service from a product.
func (s *CatalogAdminService) UnassignService(productID, serviceID uint) error {
	return s.services.DeleteAssignment(productID, serviceID)
}

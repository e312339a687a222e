package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/heatspares-next/internal/http/handlers/shared"
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest carries the editable product fields.
type ProductRequest struct {
	CategoryID     uint               `json:"category_id" binding:"required"`
	BrandID        *uint              `json:"brand_id"`
	Slug           string             `json:"slug" binding:"required"`
	PartNumber     string             `json:"part_number" binding:"required"`
	Name           string             `json:"name" binding:"required"`
	Description    string             `json:"description"`
	Price          float64            `json:"price" binding:"required"`
	CompareAtPrice float64            `json:"compare_at_price"`
	StockQuantity  int                `json:"stock_quantity"`
	Images         models.StringArray `json:"images"`
	Attributes     models.JSON        `json:"attributes"`
	IsActive       *bool              `json:"is_active"`
	IsFeatured     bool               `json:"is_featured"`
	SortOrder      int                `json:"sort_order"`
}

func (r ProductRequest) apply(product *models.Product) {
	product.CategoryID = r.CategoryID
	product.BrandID = r.BrandID
	product.Slug = strings.TrimSpace(r.Slug)
	product.PartNumber = strings.TrimSpace(r.PartNumber)
	product.Name = strings.TrimSpace(r.Name)
	product.Description = r.Description
	product.Price = models.NewMoneyFromFloat(r.Price)
	product.CompareAtPrice = models.NewMoneyFromFloat(r.CompareAtPrice)
	product.StockQuantity = r.StockQuantity
	product.Images = r.Images
	product.Attributes = r.Attributes
	product.IsFeatured = r.IsFeatured
	product.SortOrder = r.SortOrder
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
}

// ListProducts is the unfiltered admin product listing.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.ProductListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if raw := c.Query("brand_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.BrandID = uint(id)
		}
	}

	products, total, err := h.CatalogAdminService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load products", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"products": products}, response.NewPagination(page, pageSize, total))
}

// GetProduct returns one product by id.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.CatalogAdminService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to load product", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct creates a product.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	product := &models.Product{IsActive: true}
	req.apply(product)

	if err := h.CatalogAdminService.CreateProduct(c.Request.Context(), product); err != nil {
		respondCatalogWriteError(c, err, "failed to create product")
		return
	}
	response.Success(c, product)
}

// UpdateProduct updates a product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.CatalogAdminService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to load product", err)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	req.apply(product)

	if err := h.CatalogAdminService.UpdateProduct(c.Request.Context(), product); err != nil {
		respondCatalogWriteError(c, err, "failed to update product")
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CatalogAdminService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to delete product", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondCatalogWriteError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeConflict, "slug already exists", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "category not found", nil)
	case errors.Is(err, service.ErrBrandNotFound):
		respondError(c, response.CodeBadRequest, "brand not found", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

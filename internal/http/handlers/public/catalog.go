package public

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/heatspares-next/internal/http/handlers/shared"
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/repository"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetNavigation returns the storefront menu: categories and brands.
func (h *Handler) GetNavigation(c *gin.Context) {
	nav, err := h.CatalogService.GetNavigation(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load navigation", err)
		return
	}
	response.Success(c, nav)
}

// ListFeaturedProducts returns the featured product strip.
func (h *Handler) ListFeaturedProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))
	if limit <= 0 || limit > 50 {
		limit = 8
	}
	products, err := h.CatalogService.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load featured products", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// ListProducts is the storefront product listing with filters.
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.ProductListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		InStock:  c.Query("in_stock") == "true",
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
	if raw := c.Query("price_min"); raw != "" {
		if value, err := decimal.NewFromString(raw); err == nil {
			filter.PriceMin = &value
		}
	}
	if raw := c.Query("price_max"); raw != "" {
		if value, err := decimal.NewFromString(raw); err == nil {
			filter.PriceMax = &value
		}
	}

	products, total, err := h.CatalogService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load products", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"products": products}, response.NewPagination(page, pageSize, total))
}

// GetProduct returns a product detail by slug, with its services and rating.
func (h *Handler) GetProduct(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "slug is required", nil)
		return
	}
	detail, err := h.CatalogService.GetProduct(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to load product", err)
		return
	}
	response.Success(c, detail)
}

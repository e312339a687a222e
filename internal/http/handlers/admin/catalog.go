package admin

import (
	"strings"

	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/models"

	"github.com/gin-gonic/gin"
)

// CategoryRequest carries the editable category fields.
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
	ParentID  *uint  `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
}

// BrandRequest carries the editable brand fields.
type BrandRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Logo      string `json:"logo"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

// ListCategories returns every category.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogAdminService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load categories", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// CreateCategory creates a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	h.saveCategory(c, 0)
}

// UpdateCategory updates a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	h.saveCategory(c, id)
}

func (h *Handler) saveCategory(c *gin.Context, id uint) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	category := &models.Category{
		ID:        id,
		Slug:      strings.TrimSpace(req.Slug),
		Name:      strings.TrimSpace(req.Name),
		Icon:      req.Icon,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	}
	if err := h.CatalogAdminService.SaveCategory(c.Request.Context(), category); err != nil {
		respondCatalogWriteError(c, err, "failed to save category")
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CatalogAdminService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, response.CodeInternal, "failed to delete category", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListBrands returns every brand.
func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.CatalogAdminService.ListBrands()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load brands", err)
		return
	}
	response.Success(c, gin.H{"brands": brands})
}

// CreateBrand creates a brand.
func (h *Handler) CreateBrand(c *gin.Context) {
	h.saveBrand(c, 0)
}

// UpdateBrand updates a brand.
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	h.saveBrand(c, id)
}

func (h *Handler) saveBrand(c *gin.Context, id uint) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	brand := &models.Brand{
		ID:        id,
		Slug:      strings.TrimSpace(req.Slug),
		Name:      strings.TrimSpace(req.Name),
		Logo:      req.Logo,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if req.IsActive != nil {
		brand.IsActive = *req.IsActive
	}
	if err := h.CatalogAdminService.SaveBrand(c.Request.Context(), brand); err != nil {
		respondCatalogWriteError(c, err, "failed to save brand")
		return
	}
	response.Success(c, brand)
}

// DeleteBrand removes a brand.
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CatalogAdminService.DeleteBrand(c.Request.Context(), id); err != nil {
		respondError(c, response.CodeInternal, "failed to delete brand", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

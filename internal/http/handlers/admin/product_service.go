package admin

import (
	"errors"
	"strings"

	handlershared "github.com/heatspares-next/internal/http/handlers/shared"
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ServiceRequest carries the editable service fields.
type ServiceRequest struct {
	Name        string      `json:"name" binding:"required"`
	Type        string      `json:"type" binding:"required"`
	Price       float64     `json:"price"`
	IsOptional  *bool       `json:"is_optional"`
	IsFree      bool        `json:"is_free"`
	FreeRules   models.JSON `json:"free_rules"`
	IsActive    *bool       `json:"is_active"`
	Description string      `json:"description"`
}

// AssignServiceRequest attaches a service to a product with overrides.
type AssignServiceRequest struct {
	ServiceID   uint     `json:"service_id" binding:"required"`
	CustomPrice *float64 `json:"custom_price"`
	IsOptional  *bool    `json:"is_optional"`
	IsFree      *bool    `json:"is_free"`
	IsActive    *bool    `json:"is_active"`
}

// ListServices returns every orderable service.
func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.CatalogAdminService.ListServices()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load services", err)
		return
	}
	response.Success(c, gin.H{"services": services})
}

// CreateService creates a service.
func (h *Handler) CreateService(c *gin.Context) {
	h.saveService(c, 0)
}

// UpdateService updates a service.
func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	h.saveService(c, id)
}

func (h *Handler) saveService(c *gin.Context, id uint) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	svc := &models.ProductService{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		Price:       models.NewMoneyFromFloat(req.Price),
		IsOptional:  true,
		IsFree:      req.IsFree,
		FreeRules:   req.FreeRules,
		IsActive:    true,
		Description: req.Description,
	}
	if req.IsOptional != nil {
		svc.IsOptional = *req.IsOptional
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if err := h.CatalogAdminService.SaveService(svc); err != nil {
		respondError(c, response.CodeInternal, "failed to save service", err)
		return
	}
	response.Success(c, svc)
}

// DeleteService removes a service.
func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CatalogAdminService.DeleteService(id); err != nil {
		respondError(c, response.CodeInternal, "failed to delete service", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AssignService attaches a service to a product.
func (h *Handler) AssignService(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AssignServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	assignment := &models.ProductServiceAssignment{
		ProductID:  productID,
		ServiceID:  req.ServiceID,
		IsOptional: req.IsOptional,
		IsFree:     req.IsFree,
		IsActive:   true,
	}
	if req.CustomPrice != nil {
		price := models.NewMoneyFromFloat(*req.CustomPrice)
		assignment.CustomPrice = &price
	}
	if req.IsActive != nil {
		assignment.IsActive = *req.IsActive
	}

	if err := h.CatalogAdminService.AssignService(assignment); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeBadRequest, "product not found", nil)
		case errors.Is(err, service.ErrServiceNotFound):
			respondError(c, response.CodeBadRequest, "service not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to assign service", err)
		}
		return
	}
	response.Success(c, assignment)
}

// UnassignService detaches a service from a product.
func (h *Handler) UnassignService(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}
	serviceID, ok := handlershared.ParseUintParam(c, "service_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid service id", nil)
		return
	}
	if err := h.CatalogAdminService.UnassignService(productID, serviceID); err != nil {
		respondError(c, response.CodeInternal, "failed to unassign service", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

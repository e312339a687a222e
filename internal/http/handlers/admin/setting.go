package admin

import (
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/models"

	"github.com/gin-gonic/gin"
)

// GetSiteConfig returns the merged site settings.
func (h *Handler) GetSiteConfig(c *gin.Context) {
	config, err := h.SettingService.GetSiteConfig(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load site config", err)
		return
	}
	response.Success(c, config)
}

// UpdateSiteConfig replaces the site settings.
func (h *Handler) UpdateSiteConfig(c *gin.Context) {
	var value models.JSON
	if err := c.ShouldBindJSON(&value); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if err := h.SettingService.UpdateSiteConfig(c.Request.Context(), value); err != nil {
		respondError(c, response.CodeInternal, "failed to update site config", err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

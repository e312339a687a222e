package public

import (
	"github.com/heatspares-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSiteConfig returns the public site settings.
func (h *Handler) GetSiteConfig(c *gin.Context) {
	config, err := h.SettingService.GetSiteConfig(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load site config", err)
		return
	}
	response.Success(c, config)
}

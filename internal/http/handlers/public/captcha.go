package public

import (
	"github.com/heatspares-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptcha issues a captcha challenge for the auth endpoints.
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	id, image, err := h.CaptchaService.Generate()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to generate captcha", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":    true,
		"captcha_id": id,
		"image":      image,
	})
}

package public

import (
	"strings"
	"time"

	handlershared "github.com/heatspares-next/internal/http/handlers/shared"
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AvailableProvidersRequest narrows the provider search for a booking.
type AvailableProvidersRequest struct {
	City        string `json:"city" binding:"required"`
	Area        string `json:"area"`
	Category    string `json:"category"`
	ServiceIDs  []uint `json:"service_ids" binding:"required,min=1"`
	PreferredAt string `json:"preferred_at"` // RFC 3339, optional
}

// AvailableProviders lists providers able to take the requested booking,
// best first.
func (h *Handler) AvailableProviders(c *gin.Context) {
	var req AvailableProvidersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	query := service.ProviderQuery{
		City:       strings.TrimSpace(req.City),
		Area:       strings.TrimSpace(req.Area),
		Category:   strings.TrimSpace(req.Category),
		ServiceIDs: req.ServiceIDs,
	}
	if raw := strings.TrimSpace(req.PreferredAt); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid preferred time", nil)
			return
		}
		query.PreferredAt = &at
	}

	providers, err := h.BookingService.AvailableProviders(query)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to find providers", err)
		return
	}
	response.Success(c, gin.H{"providers": providers})
}

// AvailableTimeSlots returns a provider's open slots for one date.
func (h *Handler) AvailableTimeSlots(c *gin.Context) {
	providerID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid provider id", nil)
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		respondError(c, response.CodeBadRequest, "date is required", nil)
		return
	}

	slots, err := h.BookingService.AvailableTimeSlots(providerID, date)
	if err != nil {
		respondWithMappedError(c, err, bookingErrorRules, response.CodeInternal, "failed to load time slots")
		return
	}
	response.Success(c, gin.H{
		"provider_id": providerID,
		"date":        date,
		"slots":       slots,
	})
}

// PreviewCoupon quotes a coupon against a cart total without redeeming it.
func (h *Handler) PreviewCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "coupon code is required", nil)
		return
	}
	detail, err := h.CartService.Detail(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}

	quote, err := h.CouponService.Preview(code, detail.Subtotal.Decimal, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to preview coupon", err)
		return
	}
	response.Success(c, quote)
}

package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/heatspares-next/internal/http/handlers/shared"
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CouponRequest carries the editable coupon fields.
type CouponRequest struct {
	Code        string  `json:"code" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Value       float64 `json:"value" binding:"required"`
	MinAmount   float64 `json:"min_amount"`
	MaxDiscount float64 `json:"max_discount"`
	UsageLimit  int     `json:"usage_limit"`
	IsActive    *bool   `json:"is_active"`
	StartsAt    string  `json:"starts_at"` // RFC 3339, optional
	ExpiresAt   string  `json:"expires_at"`
}

func (r CouponRequest) apply(coupon *models.Coupon) error {
	startsAt, err := parseTimeNullable(r.StartsAt)
	if err != nil {
		return err
	}
	expiresAt, err := parseTimeNullable(r.ExpiresAt)
	if err != nil {
		return err
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	coupon.Type = strings.TrimSpace(r.Type)
	coupon.Value = models.NewMoneyFromFloat(r.Value)
	coupon.MinAmount = models.NewMoneyFromFloat(r.MinAmount)
	coupon.MaxDiscount = models.NewMoneyFromFloat(r.MaxDiscount)
	coupon.UsageLimit = r.UsageLimit
	coupon.StartsAt = startsAt
	coupon.ExpiresAt = expiresAt
	if r.IsActive != nil {
		coupon.IsActive = *r.IsActive
	}
	return nil
}

// ListCoupons is the admin coupon listing.
func (h *Handler) ListCoupons(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.CouponListFilter{
		Code:     strings.TrimSpace(c.Query("code")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &parsed
		}
	}
	if c.Query("currently_valid") == "true" {
		filter.CurrentlyValid = true
		filter.Now = time.Now()
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load coupons", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"coupons": coupons}, response.NewPagination(page, pageSize, total))
}

// GetCoupon returns one coupon.
func (h *Handler) GetCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	coupon, err := h.CouponAdminService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			response.NotFound(c, "coupon not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to load coupon", err)
		return
	}
	response.Success(c, coupon)
}

// CreateCoupon creates a coupon.
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	coupon := &models.Coupon{IsActive: true}
	if err := req.apply(coupon); err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}

	if err := h.CouponAdminService.Create(coupon); err != nil {
		if errors.Is(err, service.ErrCouponCodeTaken) {
			respondError(c, response.CodeConflict, "coupon code already exists", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to create coupon", err)
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon updates a coupon.
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	coupon, err := h.CouponAdminService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			response.NotFound(c, "coupon not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to load coupon", err)
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if err := req.apply(coupon); err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}

	if err := h.CouponAdminService.Update(coupon); err != nil {
		if errors.Is(err, service.ErrCouponCodeTaken) {
			respondError(c, response.CodeConflict, "coupon code already exists", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update coupon", err)
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon removes a coupon.
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CouponAdminService.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "failed to delete coupon", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ReleaseCouponUsage gives one redemption back, e.g. after a manual refund.
func (h *Handler) ReleaseCouponUsage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CouponAdminService.ReleaseUsage(id); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			response.NotFound(c, "coupon not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to release coupon usage", err)
		return
	}
	response.Success(c, gin.H{"released": true})
}

// ListCouponUsages returns a coupon's redemption history.
func (h *Handler) ListCouponUsages(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	usages, total, err := h.CouponAdminService.Usages(id, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load coupon usages", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"usages": usages}, response.NewPagination(page, pageSize, total))
}

func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

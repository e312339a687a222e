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

// ProviderRequest carries the editable provider fields.
type ProviderRequest struct {
	Name                   string `json:"name" binding:"required"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
	Category               string `json:"category" binding:"required"`
	City                   string `json:"city" binding:"required"`
	Area                   string `json:"area"`
	AvailabilityStatus     string `json:"availability_status"`
	MaxDailyOrders         int    `json:"max_daily_orders"`
	AvgServiceDuration     int    `json:"avg_service_duration"`
	MinAdvanceBookingHours int    `json:"min_advance_booking_hours"`
	IsActive               *bool  `json:"is_active"`
	IsVerified             *bool  `json:"is_verified"`
}

// WorkingHoursRequest replaces a provider's weekly schedule.
type WorkingHoursRequest struct {
	Hours []WorkingHoursEntry `json:"hours" binding:"required"`
}

// WorkingHoursEntry is one weekday's window.
type WorkingHoursEntry struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// LinkServiceRequest joins a provider to a service it can perform.
type LinkServiceRequest struct {
	ServiceID       uint     `json:"service_id" binding:"required"`
	CustomPrice     *float64 `json:"custom_price"`
	ExperienceLevel string   `json:"experience_level"`
	IsActive        *bool    `json:"is_active"`
}

// CompleteScheduleRequest closes out a finished job.
type CompleteScheduleRequest struct {
	Rating float64 `json:"rating" binding:"required"`
}

func (r ProviderRequest) apply(provider *models.ServiceProvider) {
	provider.Name = strings.TrimSpace(r.Name)
	provider.Email = strings.TrimSpace(r.Email)
	provider.Phone = strings.TrimSpace(r.Phone)
	provider.Category = strings.TrimSpace(r.Category)
	provider.City = strings.TrimSpace(r.City)
	provider.Area = strings.TrimSpace(r.Area)
	if r.AvailabilityStatus != "" {
		provider.AvailabilityStatus = r.AvailabilityStatus
	}
	if r.MaxDailyOrders > 0 {
		provider.MaxDailyOrders = r.MaxDailyOrders
	}
	if r.AvgServiceDuration > 0 {
		provider.AvgServiceDuration = r.AvgServiceDuration
	}
	if r.MinAdvanceBookingHours > 0 {
		provider.MinAdvanceBookingHours = r.MinAdvanceBookingHours
	}
	if r.IsActive != nil {
		provider.IsActive = *r.IsActive
	}
	if r.IsVerified != nil {
		provider.IsVerified = *r.IsVerified
	}
}

// ListProviders is the admin provider listing with filters.
func (h *Handler) ListProviders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.ProviderListFilter{
		Category: strings.TrimSpace(c.Query("category")),
		City:     strings.TrimSpace(c.Query("city")),
		Area:     strings.TrimSpace(c.Query("area")),
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			filter.IsActive = &parsed
		}
	}

	providers, total, err := h.ProviderAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load providers", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"providers": providers}, response.NewPagination(page, pageSize, total))
}

// GetProvider returns one provider with its working hours and service links.
func (h *Handler) GetProvider(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	provider, err := h.ProviderAdminService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			response.NotFound(c, "provider not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to load provider", err)
		return
	}
	response.Success(c, provider)
}

// CreateProvider registers a provider.
func (h *Handler) CreateProvider(c *gin.Context) {
	var req ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	provider := &models.ServiceProvider{
		AvailabilityStatus:     "available",
		MaxDailyOrders:         8,
		AvgServiceDuration:     60,
		MinAdvanceBookingHours: 2,
		IsActive:               true,
	}
	req.apply(provider)

	if err := h.ProviderAdminService.Create(provider); err != nil {
		respondError(c, response.CodeInternal, "failed to create provider", err)
		return
	}
	response.Success(c, provider)
}

// UpdateProvider saves provider changes.
func (h *Handler) UpdateProvider(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	provider, err := h.ProviderAdminService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			response.NotFound(c, "provider not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to load provider", err)
		return
	}

	var req ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	req.apply(provider)

	if err := h.ProviderAdminService.Update(provider); err != nil {
		respondError(c, response.CodeInternal, "failed to update provider", err)
		return
	}
	response.Success(c, provider)
}

// DeleteProvider removes a provider.
func (h *Handler) DeleteProvider(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProviderAdminService.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "failed to delete provider", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetWorkingHours replaces a provider's weekly availability windows.
func (h *Handler) SetWorkingHours(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req WorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	hours := make([]models.ProviderWorkingHours, 0, len(req.Hours))
	for _, entry := range req.Hours {
		hours = append(hours, models.ProviderWorkingHours{
			ProviderID: id,
			Weekday:    entry.Weekday,
			StartTime:  entry.StartTime,
			EndTime:    entry.EndTime,
			Available:  entry.Available,
		})
	}

	if err := h.ProviderAdminService.SetWorkingHours(id, hours); err != nil {
		switch {
		case errors.Is(err, service.ErrProviderNotFound):
			response.NotFound(c, "provider not found")
		case errors.Is(err, service.ErrInvalidTimeRange):
			respondError(c, response.CodeBadRequest, "invalid working hours window", nil)
		default:
			respondError(c, response.CodeInternal, "failed to save working hours", err)
		}
		return
	}
	response.Success(c, gin.H{"saved": true})
}

// LinkService joins a provider to a service it can perform.
func (h *Handler) LinkService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req LinkServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	link := &models.ProviderServiceLink{
		ProviderID:      id,
		ServiceID:       req.ServiceID,
		ExperienceLevel: req.ExperienceLevel,
		IsActive:        true,
	}
	if req.CustomPrice != nil {
		price := models.NewMoneyFromFloat(*req.CustomPrice)
		link.CustomPrice = &price
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}

	if err := h.ProviderAdminService.LinkService(link); err != nil {
		switch {
		case errors.Is(err, service.ErrProviderNotFound):
			response.NotFound(c, "provider not found")
		case errors.Is(err, service.ErrServiceNotFound):
			respondError(c, response.CodeBadRequest, "service not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to link service", err)
		}
		return
	}
	response.Success(c, link)
}

// UnlinkService removes a provider's service link.
func (h *Handler) UnlinkService(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	serviceID, ok := handlershared.ParseUintParam(c, "service_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid service id", nil)
		return
	}
	if err := h.ProviderAdminService.UnlinkService(id, serviceID); err != nil {
		respondError(c, response.CodeInternal, "failed to unlink service", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListProviderSchedules returns a provider's bookings.
func (h *Handler) ListProviderSchedules(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	schedules, total, err := h.ProviderAdminService.Schedules(id, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load schedules", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"schedules": schedules}, response.NewPagination(page, pageSize, total))
}

// CompleteSchedule closes out a finished job and records its rating.
func (h *Handler) CompleteSchedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CompleteScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if err := h.ProviderAdminService.CompleteJob(id, req.Rating); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			respondError(c, response.CodeBadRequest, "rating must be between 1 and 5", nil)
		case errors.Is(err, service.ErrScheduleNotFound):
			response.NotFound(c, "schedule not found")
		case errors.Is(err, service.ErrScheduleNotOpen):
			respondError(c, response.CodeBadRequest, "schedule is not open", nil)
		default:
			respondError(c, response.CodeInternal, "failed to complete schedule", err)
		}
		return
	}
	response.Success(c, gin.H{"completed": true})
}

package admin

import (
	"errors"

	handlershared "github.com/heatspares-next/internal/http/handlers/shared"
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPendingReviews returns reviews awaiting moderation.
func (h *Handler) ListPendingReviews(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	reviews, total, err := h.ReviewService.ListPending(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load reviews", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"reviews": reviews}, response.NewPagination(page, pageSize, total))
}

// ModerateReview approves or rejects a review; rejection deletes it.
func (h *Handler) ModerateReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if err := h.ReviewService.Moderate(id, *req.Approve); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			response.NotFound(c, "review not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to moderate review", err)
		return
	}
	response.Success(c, gin.H{"approved": *req.Approve})
}

// DeleteReview removes a review.
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "failed to delete review", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

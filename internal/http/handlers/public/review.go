package public

import (
	"errors"

	handlershared "github.com/heatspares-next/internal/http/handlers/shared"
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitReviewRequest rates a product.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ListProductReviews returns a product's approved reviews.
func (h *Handler) ListProductReviews(c *gin.Context) {
	product, err := h.ProductRepo.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load product", err)
		return
	}
	if product == nil {
		response.NotFound(c, "product not found")
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	reviews, total, err := h.ReviewService.ListForProduct(product.ID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load reviews", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"reviews": reviews}, response.NewPagination(page, pageSize, total))
}

// SubmitReview files a review; it awaits moderation before showing up.
func (h *Handler) SubmitReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	review, err := h.ReviewService.Submit(uid, productID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			respondError(c, response.CodeBadRequest, "rating must be between 1 and 5", nil)
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeBadRequest, "product not found", nil)
		case errors.Is(err, service.ErrReviewDuplicate):
			respondError(c, response.CodeConflict, "product already reviewed", nil)
		default:
			respondError(c, response.CodeInternal, "failed to submit review", err)
		}
		return
	}
	response.Success(c, review)
}

package service

import (
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"
)

// ReviewService manages product reviews and their moderation.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

// NewReviewService creates a review service.
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// Submit records a user's review of a product, one per product and user.
// New reviews await moderation before appearing publicly.
func (s *ReviewService) Submit(userID, productID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	existing, err := s.reviews.GetByProductAndUser(productID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewDuplicate
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviews.Create(review); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrReviewDuplicate
		}
		return nil, err
	}
	return review, nil
}

// ListForProduct returns a product's approved reviews.
func (s *ReviewService) ListForProduct(productID uint, page, pageSize int) ([]models.Review, int64, error) {
	return s.reviews.ListByProduct(productID, true, page, pageSize)
}

// ListPending returns reviews awaiting moderation.
func (s *ReviewService) ListPending(page, pageSize int) ([]models.Review, int64, error) {
	return s.reviews.ListPending(page, pageSize)
}

// Moderate approves or rejects a review.
func (s *ReviewService) Moderate(id uint, approve bool) error {
	review, err := s.reviews.GetByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if approve {
		return s.reviews.SetApproved(id, true)
	}
	return s.reviews.Delete(id)
}

// Delete removes a review.
func (s *ReviewService) Delete(id uint) error {
	review, err := s.reviews.GetByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	return s.reviews.Delete(id)
}

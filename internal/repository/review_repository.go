package repository

import (
	"errors"

	"github.com/heatspares-next/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository is the product-review data-access interface.
type ReviewRepository interface {
	GetByID(id uint) (*models.Review, error)
	GetByProductAndUser(productID, userID uint) (*models.Review, error)
	ListByProduct(productID uint, approvedOnly bool, page, pageSize int) ([]models.Review, int64, error)
	ListPending(page, pageSize int) ([]models.Review, int64, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	SetApproved(id uint, approved bool) error
	Delete(id uint) error
	AverageRating(productID uint) (float64, int64, error)
}

// GormReviewRepository is the GORM implementation.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a review repository.
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// GetByID fetches a review by id.
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// GetByProductAndUser fetches a user's review of a product.
func (r *GormReviewRepository) GetByProductAndUser(productID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("product_id = ? AND user_id = ?", productID, userID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ListByProduct lists a product's reviews, newest first.
func (r *GormReviewRepository) ListByProduct(productID uint, approvedOnly bool, page, pageSize int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).Where("product_id = ?", productID)
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := applyPagination(query, page, pageSize).
		Preload("User").
		Order("id desc").
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListPending lists reviews awaiting moderation, oldest first.
func (r *GormReviewRepository) ListPending(page, pageSize int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).Where("is_approved = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := applyPagination(query, page, pageSize).
		Preload("User").
		Order("id asc").
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Create inserts a review.
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Update saves a review.
func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// SetApproved flips a review's moderation state.
func (r *GormReviewRepository) SetApproved(id uint, approved bool) error {
	return r.db.Model(&models.Review{}).
		Where("id = ?", id).
		UpdateColumn("is_approved", approved).Error
}

// Delete soft-deletes a review.
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

// AverageRating returns the mean rating and count of approved reviews.
func (r *GormReviewRepository) AverageRating(productID uint) (float64, int64, error) {
	type aggregate struct {
		Avg   float64
		Count int64
	}
	var agg aggregate
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ? AND is_approved = ?", productID, true).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Avg, agg.Count, nil
}

package repository

import (
	"errors"

	"github.com/heatspares-next/internal/models"

	"gorm.io/gorm"
)

// ServiceRepository is the product-service data-access interface.
type ServiceRepository interface {
	GetByID(id uint) (*models.ProductService, error)
	ListByIDs(ids []uint) ([]models.ProductService, error)
	List(onlyActive bool) ([]models.ProductService, error)
	Create(service *models.ProductService) error
	Update(service *models.ProductService) error
	Delete(id uint) error

	GetAssignment(productID, serviceID uint) (*models.ProductServiceAssignment, error)
	ListAssignmentsByProduct(productID uint) ([]models.ProductServiceAssignment, error)
	ListAssignments(productIDs, serviceIDs []uint) ([]models.ProductServiceAssignment, error)
	UpsertAssignment(assignment *models.ProductServiceAssignment) error
	DeleteAssignment(productID, serviceID uint) error
}

// GormServiceRepository is the GORM implementation.
type GormServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a product-service repository.
func NewServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// GetByID fetches a service by id.
func (r *GormServiceRepository) GetByID(id uint) (*models.ProductService, error) {
	var service models.ProductService
	if err := r.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

// ListByIDs fetches services in bulk.
func (r *GormServiceRepository) ListByIDs(ids []uint) ([]models.ProductService, error) {
	if len(ids) == 0 {
		return []models.ProductService{}, nil
	}
	var services []models.ProductService
	if err := r.db.Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// List returns services in id order.
func (r *GormServiceRepository) List(onlyActive bool) ([]models.ProductService, error) {
	services := make([]models.ProductService, 0)
	query := r.db.Order("id asc")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// Create inserts a service.
func (r *GormServiceRepository) Create(service *models.ProductService) error {
	return r.db.Create(service).Error
}

// Update saves a service.
func (r *GormServiceRepository) Update(service *models.ProductService) error {
	return r.db.Save(service).Error
}

// Delete soft-deletes a service.
func (r *GormServiceRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductService{}, id).Error
}

// GetAssignment fetches one product/service assignment.
func (r *GormServiceRepository) GetAssignment(productID, serviceID uint) (*models.ProductServiceAssignment, error) {
	var assignment models.ProductServiceAssignment
	err := r.db.Preload("Service").
		Where("product_id = ? AND service_id = ?", productID, serviceID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

// ListAssignmentsByProduct lists a product's service assignments.
func (r *GormServiceRepository) ListAssignmentsByProduct(productID uint) ([]models.ProductServiceAssignment, error) {
	assignments := make([]models.ProductServiceAssignment, 0)
	err := r.db.Preload("Service").
		Where("product_id = ? AND is_active = ?", productID, true).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListAssignments fetches assignments for the given product/service id sets.
func (r *GormServiceRepository) ListAssignments(productIDs, serviceIDs []uint) ([]models.ProductServiceAssignment, error) {
	if len(productIDs) == 0 || len(serviceIDs) == 0 {
		return []models.ProductServiceAssignment{}, nil
	}
	assignments := make([]models.ProductServiceAssignment, 0)
	err := r.db.
		Where("product_id IN ? AND service_id IN ? AND is_active = ?", productIDs, serviceIDs, true).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// UpsertAssignment creates or updates a product/service assignment.
func (r *GormServiceRepository) UpsertAssignment(assignment *models.ProductServiceAssignment) error {
	existing, err := r.GetAssignment(assignment.ProductID, assignment.ServiceID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(assignment).Error
	}
	assignment.ID = existing.ID
	return r.db.Save(assignment).Error
}

// DeleteAssignment removes a product/service assignment.
func (r *GormServiceRepository) DeleteAssignment(productID, serviceID uint) error {
	return r.db.
		Where("product_id = ? AND service_id = ?", productID, serviceID).
		Delete(&models.ProductServiceAssignment{}).Error
}

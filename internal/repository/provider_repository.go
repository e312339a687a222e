package repository

import (
	"errors"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"

	"gorm.io/gorm"
)

// ProviderRepository is the service-provider data-access interface.
type ProviderRepository interface {
	GetByID(id uint) (*models.ServiceProvider, error)
	List(filter ProviderListFilter) ([]models.ServiceProvider, int64, error)
	ListCandidates(city, area, category string, serviceIDs []uint) ([]models.ServiceProvider, error)
	Create(provider *models.ServiceProvider) error
	Update(provider *models.ServiceProvider) error
	Delete(id uint) error
	IncrementDailyOrders(id uint) (bool, error)
	DecrementDailyOrders(id uint) error
	ResetDailyOrders() (int64, error)
	RecordCompletedJob(id uint, rating float64) error

	GetWorkingHours(providerID uint) ([]models.ProviderWorkingHours, error)
	ReplaceWorkingHours(providerID uint, hours []models.ProviderWorkingHours) error
	ListServiceLinks(providerID uint) ([]models.ProviderServiceLink, error)
	UpsertServiceLink(link *models.ProviderServiceLink) error
	DeleteServiceLink(providerID, serviceID uint) error

	WithTx(tx *gorm.DB) ProviderRepository
}

// ProviderListFilter narrows admin provider listings.
type ProviderListFilter struct {
	Category string
	City     string
	Area     string
	Status   string
	IsActive *bool
	Page     int
	PageSize int
}

// GormProviderRepository is the GORM implementation.
type GormProviderRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a service-provider repository.
func NewProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormProviderRepository) WithTx(tx *gorm.DB) ProviderRepository {
	if tx == nil {
		return r
	}
	return &GormProviderRepository{db: tx}
}

// GetByID fetches a provider with its service links and working hours.
func (r *GormProviderRepository) GetByID(id uint) (*models.ServiceProvider, error) {
	var provider models.ServiceProvider
	err := r.db.
		Preload("ServiceLinks", "is_active = ?", true).
		Preload("ServiceLinks.Service").
		Preload("WorkingHours").
		First(&provider, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

// List returns providers matching the filter.
func (r *GormProviderRepository) List(filter ProviderListFilter) ([]models.ServiceProvider, int64, error) {
	query := r.db.Model(&models.ServiceProvider{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Area != "" {
		query = query.Where("area = ?", filter.Area)
	}
	if filter.Status != "" {
		query = query.Where("availability_status = ?", filter.Status)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var providers []models.ServiceProvider
	err := applyPagination(query, filter.Page, filter.PageSize).
		Order("rating desc, total_jobs_completed desc, id asc").
		Find(&providers).Error
	if err != nil {
		return nil, 0, err
	}
	return providers, total, nil
}

// ListCandidates returns assignable providers for a location that cover every
// requested service, ranked best first. Capacity and working-hours checks are
// left to the caller.
func (r *GormProviderRepository) ListCandidates(city, area, category string, serviceIDs []uint) ([]models.ServiceProvider, error) {
	query := r.db.Model(&models.ServiceProvider{}).
		Where("city = ? AND is_active = ? AND is_verified = ?", city, true, true).
		Where("availability_status = ?", constants.ProviderStatusAvailable).
		Where("current_daily_orders < max_daily_orders")
	if area != "" {
		query = query.Where("area = ?", area)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if len(serviceIDs) > 0 {
		// A provider qualifies only when its active links cover the whole set.
		query = query.Where(
			"(SELECT COUNT(DISTINCT psl.service_id) FROM provider_service_links psl"+
				" WHERE psl.provider_id = service_providers.id"+
				" AND psl.service_id IN ?"+
				" AND psl.is_active = ?"+
				" AND psl.deleted_at IS NULL) = ?",
			serviceIDs, true, len(serviceIDs),
		)
	}

	var providers []models.ServiceProvider
	err := query.
		Preload("ServiceLinks", "is_active = ?", true).
		Preload("WorkingHours").
		Order("rating desc, total_jobs_completed desc, id asc").
		Find(&providers).Error
	if err != nil {
		return nil, err
	}
	return providers, nil
}

// Create inserts a provider with its associations.
func (r *GormProviderRepository) Create(provider *models.ServiceProvider) error {
	return r.db.Create(provider).Error
}

// Update saves a provider, leaving associations alone.
func (r *GormProviderRepository) Update(provider *models.ServiceProvider) error {
	return r.db.Omit("ServiceLinks", "WorkingHours").Save(provider).Error
}

// Delete soft-deletes a provider.
func (r *GormProviderRepository) Delete(id uint) error {
	return r.db.Delete(&models.ServiceProvider{}, id).Error
}

// IncrementDailyOrders bumps the daily counter while under capacity.
// A false return means the provider is already at its daily limit.
func (r *GormProviderRepository) IncrementDailyOrders(id uint) (bool, error) {
	result := r.db.Model(&models.ServiceProvider{}).
		Where("id = ? AND current_daily_orders < max_daily_orders", id).
		UpdateColumn("current_daily_orders", gorm.Expr("current_daily_orders + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DecrementDailyOrders releases one unit of daily capacity, floored at zero.
func (r *GormProviderRepository) DecrementDailyOrders(id uint) error {
	return r.db.Model(&models.ServiceProvider{}).
		Where("id = ? AND current_daily_orders > 0", id).
		UpdateColumn("current_daily_orders", gorm.Expr("current_daily_orders - 1")).Error
}

// ResetDailyOrders zeroes every provider's daily counter.
func (r *GormProviderRepository) ResetDailyOrders() (int64, error) {
	result := r.db.Model(&models.ServiceProvider{}).
		Where("current_daily_orders > 0").
		UpdateColumn("current_daily_orders", 0)
	return result.RowsAffected, result.Error
}

// RecordCompletedJob folds a job rating into the provider's running average
// and bumps the completed-jobs counter.
func (r *GormProviderRepository) RecordCompletedJob(id uint, rating float64) error {
	updates := map[string]interface{}{
		"total_jobs_completed": gorm.Expr("total_jobs_completed + 1"),
	}
	if rating > 0 {
		updates["rating"] = gorm.Expr(
			"(rating * total_jobs_completed + ?) / (total_jobs_completed + 1)", rating,
		)
	}
	return r.db.Model(&models.ServiceProvider{}).
		Where("id = ?", id).
		UpdateColumns(updates).Error
}

// GetWorkingHours returns a provider's weekly availability windows.
func (r *GormProviderRepository) GetWorkingHours(providerID uint) ([]models.ProviderWorkingHours, error) {
	hours := make([]models.ProviderWorkingHours, 0)
	err := r.db.Where("provider_id = ?", providerID).
		Order("weekday asc").
		Find(&hours).Error
	if err != nil {
		return nil, err
	}
	return hours, nil
}

// ReplaceWorkingHours swaps out a provider's weekly schedule in one transaction.
func (r *GormProviderRepository) ReplaceWorkingHours(providerID uint, hours []models.ProviderWorkingHours) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().
			Where("provider_id = ?", providerID).
			Delete(&models.ProviderWorkingHours{}).Error
		if err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		for i := range hours {
			hours[i].ID = 0
			hours[i].ProviderID = providerID
		}
		return tx.Create(&hours).Error
	})
}

// ListServiceLinks returns a provider's active service links with services.
func (r *GormProviderRepository) ListServiceLinks(providerID uint) ([]models.ProviderServiceLink, error) {
	links := make([]models.ProviderServiceLink, 0)
	err := r.db.Preload("Service").
		Where("provider_id = ? AND is_active = ?", providerID, true).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// UpsertServiceLink creates or updates a provider/service link.
func (r *GormProviderRepository) UpsertServiceLink(link *models.ProviderServiceLink) error {
	var existing models.ProviderServiceLink
	err := r.db.Where("provider_id = ? AND service_id = ?", link.ProviderID, link.ServiceID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(link).Error
		}
		return err
	}
	link.ID = existing.ID
	return r.db.Save(link).Error
}

// DeleteServiceLink removes a provider/service link.
func (r *GormProviderRepository) DeleteServiceLink(providerID, serviceID uint) error {
	return r.db.
		Where("provider_id = ? AND service_id = ?", providerID, serviceID).
		Delete(&models.ProviderServiceLink{}).Error
}

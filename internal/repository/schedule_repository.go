package repository

import (
	"errors"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"

	"gorm.io/gorm"
)

// ScheduleRepository is the provider-schedule data-access interface.
type ScheduleRepository interface {
	GetByID(id uint) (*models.ServiceProviderSchedule, error)
	GetByOrder(orderID uint) (*models.ServiceProviderSchedule, error)
	ListActiveByProviderDate(providerID uint, date string) ([]models.ServiceProviderSchedule, error)
	ListByProvider(providerID uint, page, pageSize int) ([]models.ServiceProviderSchedule, int64, error)
	Create(schedule *models.ServiceProviderSchedule) error
	ReclaimCancelled(providerID uint, date, start, end string, orderID *uint) (*models.ServiceProviderSchedule, error)
	UpdateStatus(id uint, from, to string) (bool, error)
	SweepPastScheduled(before string) (int64, error)
	WithTx(tx *gorm.DB) ScheduleRepository
}

// GormScheduleRepository is the GORM implementation.
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a schedule repository.
func NewScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormScheduleRepository) WithTx(tx *gorm.DB) ScheduleRepository {
	if tx == nil {
		return r
	}
	return &GormScheduleRepository{db: tx}
}

// GetByID fetches a schedule entry.
func (r *GormScheduleRepository) GetByID(id uint) (*models.ServiceProviderSchedule, error) {
	var schedule models.ServiceProviderSchedule
	if err := r.db.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// GetByOrder fetches the schedule entry attached to an order.
func (r *GormScheduleRepository) GetByOrder(orderID uint) (*models.ServiceProviderSchedule, error) {
	var schedule models.ServiceProviderSchedule
	err := r.db.Where("order_id = ?", orderID).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// ListActiveByProviderDate returns a provider's non-cancelled entries for one
// day. These are the bookings a new slot must not overlap.
func (r *GormScheduleRepository) ListActiveByProviderDate(providerID uint, date string) ([]models.ServiceProviderSchedule, error) {
	schedules := make([]models.ServiceProviderSchedule, 0)
	err := r.db.
		Where("provider_id = ? AND service_date = ? AND status <> ?",
			providerID, date, constants.ScheduleStatusCancelled).
		Order("start_time asc").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// ListByProvider lists a provider's schedule entries, newest day first.
func (r *GormScheduleRepository) ListByProvider(providerID uint, page, pageSize int) ([]models.ServiceProviderSchedule, int64, error) {
	query := r.db.Model(&models.ServiceProviderSchedule{}).
		Where("provider_id = ?", providerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var schedules []models.ServiceProviderSchedule
	err := applyPagination(query, page, pageSize).
		Order("service_date desc, start_time asc").
		Find(&schedules).Error
	if err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

// Create inserts a schedule entry. A duplicate-key error here means another
// booking claimed the same (provider, date, start) slot first; callers map it
// with IsDuplicateKey.
func (r *GormScheduleRepository) Create(schedule *models.ServiceProviderSchedule) error {
	return r.db.Create(schedule).Error
}

// ReclaimCancelled flips a cancelled entry for the slot back to scheduled.
// Cancelled rows stay in the table for history but still occupy the unique
// index, so rebooking the slot must reuse them instead of inserting. The
// status guard arbitrates concurrent rebookings: the loser sees zero rows,
// falls through to Create and hits the index. Returns nil when the slot has
// no cancelled entry.
func (r *GormScheduleRepository) ReclaimCancelled(providerID uint, date, start, end string, orderID *uint) (*models.ServiceProviderSchedule, error) {
	result := r.db.Model(&models.ServiceProviderSchedule{}).
		Where("provider_id = ? AND service_date = ? AND start_time = ? AND status = ?",
			providerID, date, start, constants.ScheduleStatusCancelled).
		Updates(map[string]interface{}{
			"status":   constants.ScheduleStatusScheduled,
			"order_id": orderID,
			"end_time": end,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var schedule models.ServiceProviderSchedule
	err := r.db.
		Where("provider_id = ? AND service_date = ? AND start_time = ?", providerID, date, start).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// UpdateStatus moves an entry from one status to another.
// A false return means the entry was not in the expected status.
func (r *GormScheduleRepository) UpdateStatus(id uint, from, to string) (bool, error) {
	result := r.db.Model(&models.ServiceProviderSchedule{}).
		Where("id = ? AND status = ?", id, from).
		UpdateColumn("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SweepPastScheduled marks still-scheduled entries on past dates completed.
func (r *GormScheduleRepository) SweepPastScheduled(before string) (int64, error) {
	result := r.db.Model(&models.ServiceProviderSchedule{}).
		Where("service_date < ? AND status = ?", before, constants.ScheduleStatusScheduled).
		UpdateColumn("status", constants.ScheduleStatusCompleted)
	return result.RowsAffected, result.Error
}

package service

import (
	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"
)

// ProviderAdminService is the back-office provider management surface.
type ProviderAdminService struct {
	providers repository.ProviderRepository
	schedules repository.ScheduleRepository
	services  repository.ServiceRepository
}

// NewProviderAdminService creates a provider admin service.
func NewProviderAdminService(
	providers repository.ProviderRepository,
	schedules repository.ScheduleRepository,
	services repository.ServiceRepository,
) *ProviderAdminService {
	return &ProviderAdminService{
		providers: providers,
		schedules: schedules,
		services:  services,
	}
}

// List returns providers matching the filter.
func (s *ProviderAdminService) List(filter repository.ProviderListFilter) ([]models.ServiceProvider, int64, error) {
	return s.providers.List(filter)
}

// Get fetches a provider with its links and working hours.
func (s *ProviderAdminService) Get(id uint) (*models.ServiceProvider, error) {
	provider, err := s.providers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	return provider, nil
}

// Create registers a provider.
func (s *ProviderAdminService) Create(provider *models.ServiceProvider) error {
	return s.providers.Create(provider)
}

// Update saves provider changes.
func (s *ProviderAdminService) Update(provider *models.ServiceProvider) error {
	existing, err := s.providers.GetByID(provider.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProviderNotFound
	}
	return s.providers.Update(provider)
}

// Delete soft-deletes a provider.
func (s *ProviderAdminService) Delete(id uint) error {
	return s.providers.Delete(id)
}

// SetWorkingHours replaces a provider's weekly schedule, validating each
// window first.
func (s *ProviderAdminService) SetWorkingHours(providerID uint, hours []models.ProviderWorkingHours) error {
	provider, err := s.providers.GetByID(providerID)
	if err != nil {
		return err
	}
	if provider == nil {
		return ErrProviderNotFound
	}
	for _, wh := range hours {
		if !wh.Available {
			continue
		}
		if _, err := parseRange(wh.StartTime, wh.EndTime); err != nil {
			return ErrInvalidTimeRange
		}
	}
	return s.providers.ReplaceWorkingHours(providerID, hours)
}

// LinkService attaches a service to a provider with optional overrides.
func (s *ProviderAdminService) LinkService(link *models.ProviderServiceLink) error {
	provider, err := s.providers.GetByID(link.ProviderID)
	if err != nil {
		return err
	}
	if provider == nil {
		return ErrProviderNotFound
	}
	svc, err := s.services.GetByID(link.ServiceID)
	if err != nil {
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}
	return s.providers.UpsertServiceLink(link)
}

// UnlinkService detaches a service from a provider.
func (s *ProviderAdminService) UnlinkService(providerID, serviceID uint) error {
	return s.providers.DeleteServiceLink(providerID, serviceID)
}

// Schedules lists a provider's schedule entries.
func (s *ProviderAdminService) Schedules(providerID uint, page, pageSize int) ([]models.ServiceProviderSchedule, int64, error) {
	return s.schedules.ListByProvider(providerID, page, pageSize)
}

// CompleteJob marks a schedule entry done and records the job against the
// provider's rating and counters.
func (s *ProviderAdminService) CompleteJob(scheduleID uint, rating float64) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	schedule, err := s.schedules.GetByID(scheduleID)
	if err != nil {
		return err
	}
	if schedule == nil {
		return ErrScheduleNotFound
	}
	if schedule.Status != constants.ScheduleStatusScheduled && schedule.Status != constants.ScheduleStatusInProgress {
		return ErrScheduleNotOpen
	}
	ok, err := s.schedules.UpdateStatus(scheduleID, schedule.Status, constants.ScheduleStatusCompleted)
	if err != nil {
		return err
	}
	if !ok {
		return ErrScheduleNotOpen
	}
	return s.providers.RecordCompletedJob(schedule.ProviderID, rating)
}

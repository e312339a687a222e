package service

import (
	"time"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"

	"gorm.io/gorm"
)

// BookingService matches orders to service providers and their time slots.
type BookingService struct {
	providers repository.ProviderRepository
	schedules repository.ScheduleRepository

	loc *time.Location
	now func() time.Time
}

// NewBookingService creates a booking service operating in the given location.
func NewBookingService(providers repository.ProviderRepository, schedules repository.ScheduleRepository, loc *time.Location) *BookingService {
	if loc == nil {
		loc = time.Local
	}
	return &BookingService{
		providers: providers,
		schedules: schedules,
		loc:       loc,
		now:       time.Now,
	}
}

// TimeSlot is one bookable window on a provider's day.
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ProviderQuery narrows the provider search for a booking.
type ProviderQuery struct {
	City        string
	Area        string
	Category    string
	ServiceIDs  []uint
	PreferredAt *time.Time // optional preferred visit time
}

// AvailableProviders returns providers able to take the booking, best first.
// A provider qualifies when it serves the location, is active, verified and
// available, has daily capacity left, and offers every requested service.
// With a preferred time set, its working hours must cover the visit and no
// existing booking may overlap it.
func (s *BookingService) AvailableProviders(query ProviderQuery) ([]models.ServiceProvider, error) {
	candidates, err := s.providers.ListCandidates(query.City, query.Area, query.Category, query.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if query.PreferredAt == nil {
		return candidates, nil
	}

	at := query.PreferredAt.In(s.loc)
	result := make([]models.ServiceProvider, 0, len(candidates))
	for i := range candidates {
		ok, err := s.coversPreferredTime(&candidates[i], at)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, candidates[i])
		}
	}
	return result, nil
}

// coversPreferredTime checks a provider's working hours and existing bookings
// against a visit of the provider's standard duration starting at the given
// time.
func (s *BookingService) coversPreferredTime(provider *models.ServiceProvider, at time.Time) (bool, error) {
	window, ok := workingWindow(provider, at.Weekday())
	if !ok {
		return false, nil
	}

	duration := serviceDuration(provider)
	visit := timeRange{
		start: at.Hour()*60 + at.Minute(),
		end:   at.Hour()*60 + at.Minute() + duration,
	}
	if visit.start < window.start || visit.end > window.end {
		return false, nil
	}

	booked, err := s.bookedRanges(provider.ID, at.Format(dateLayout))
	if err != nil {
		return false, err
	}
	for _, b := range booked {
		if visit.overlaps(b) {
			return false, nil
		}
	}
	return true, nil
}

// AvailableTimeSlots lists a provider's open slots on a date, chronological.
// Days off and fully booked days both come back as an empty list.
func (s *BookingService) AvailableTimeSlots(providerID uint, date string) ([]TimeSlot, error) {
	provider, err := s.providers.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	day, err := parseServiceDate(date, s.loc)
	if err != nil {
		return nil, err
	}
	window, ok := workingWindow(provider, day.Weekday())
	if !ok {
		return []TimeSlot{}, nil
	}

	booked, err := s.bookedRanges(providerID, date)
	if err != nil {
		return nil, err
	}

	// Same-day bookings need a lead time; earlier days are entirely past.
	now := s.now().In(s.loc)
	today := now.Format(dateLayout)
	earliest := -1
	if date == today {
		lead := now.Add(time.Duration(minAdvanceHours(provider)) * time.Hour)
		earliest = lead.Hour()*60 + lead.Minute()
		if lead.Format(dateLayout) != today {
			// Lead time pushes past midnight, nothing left today.
			return []TimeSlot{}, nil
		}
	} else if date < today {
		return []TimeSlot{}, nil
	}

	duration := serviceDuration(provider)
	slots := make([]TimeSlot, 0)
	for start := window.start; start+duration <= window.end; start += duration {
		candidate := timeRange{start: start, end: start + duration}
		if earliest >= 0 && candidate.start < earliest {
			continue
		}
		clash := false
		for _, b := range booked {
			if candidate.overlaps(b) {
				clash = true
				break
			}
		}
		if clash {
			continue
		}
		slots = append(slots, TimeSlot{
			StartTime: formatClock(candidate.start),
			EndTime:   formatClock(candidate.end),
		})
	}
	return slots, nil
}

// BookSlot claims a slot for an order inside the caller's transaction. The
// composite unique index decides races: a concurrent booking of the same slot
// surfaces as ErrSlotTaken and the caller retries with another slot.
func (s *BookingService) BookSlot(tx *gorm.DB, providerID uint, orderID *uint, date, startTime string) (*models.ServiceProviderSchedule, error) {
	providers := s.providers.WithTx(tx)
	schedules := s.schedules.WithTx(tx)

	provider, err := providers.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	if !provider.Eligible() {
		return nil, ErrProviderIneligible
	}

	day, err := parseServiceDate(date, s.loc)
	if err != nil {
		return nil, err
	}
	window, ok := workingWindow(provider, day.Weekday())
	if !ok {
		return nil, ErrSlotOutsideHours
	}

	start, err := parseClock(startTime)
	if err != nil {
		return nil, err
	}
	duration := serviceDuration(provider)
	slot := timeRange{start: start, end: start + duration}
	if slot.start < window.start || slot.end > window.end {
		return nil, ErrSlotOutsideHours
	}

	now := s.now().In(s.loc)
	slotStart := day.Add(time.Duration(slot.start) * time.Minute)
	if slotStart.Before(now.Add(time.Duration(minAdvanceHours(provider)) * time.Hour)) {
		return nil, ErrSlotTooSoon
	}

	booked, err := schedules.WithTx(tx).ListActiveByProviderDate(providerID, date)
	if err != nil {
		return nil, err
	}
	for _, b := range booked {
		existing, err := parseRange(b.StartTime, b.EndTime)
		if err != nil {
			continue
		}
		if slot.overlaps(existing) {
			return nil, ErrSlotTaken
		}
	}

	// A previously cancelled booking of this slot still holds the unique
	// index; take that row over before trying a fresh insert.
	schedule, err := schedules.ReclaimCancelled(providerID, date, formatClock(slot.start), formatClock(slot.end), orderID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		schedule = &models.ServiceProviderSchedule{
			ProviderID:  providerID,
			OrderID:     orderID,
			ServiceDate: date,
			StartTime:   formatClock(slot.start),
			EndTime:     formatClock(slot.end),
			Status:      constants.ScheduleStatusScheduled,
		}
		if err := schedules.Create(schedule); err != nil {
			if repository.IsDuplicateKey(err) {
				return nil, ErrSlotTaken
			}
			return nil, err
		}
	}

	ok, err = providers.IncrementDailyOrders(providerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProviderAtCapacity
	}
	return schedule, nil
}

// CancelBooking cancels a schedule entry and releases the provider's daily
// capacity when the entry had not run yet.
func (s *BookingService) CancelBooking(tx *gorm.DB, scheduleID uint) error {
	schedules := s.schedules.WithTx(tx)
	schedule, err := schedules.GetByID(scheduleID)
	if err != nil {
		return err
	}
	if schedule == nil {
		return nil
	}
	ok, err := schedules.UpdateStatus(scheduleID, constants.ScheduleStatusScheduled, constants.ScheduleStatusCancelled)
	if err != nil {
		return err
	}
	if ok {
		return s.providers.WithTx(tx).DecrementDailyOrders(schedule.ProviderID)
	}
	return nil
}

// bookedRanges loads a provider's non-cancelled windows for a day.
func (s *BookingService) bookedRanges(providerID uint, date string) ([]timeRange, error) {
	schedules, err := s.schedules.ListActiveByProviderDate(providerID, date)
	if err != nil {
		return nil, err
	}
	ranges := make([]timeRange, 0, len(schedules))
	for _, entry := range schedules {
		r, err := parseRange(entry.StartTime, entry.EndTime)
		if err != nil {
			continue
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// workingWindow returns the provider's window for a weekday, false when the
// day is off or missing.
func workingWindow(provider *models.ServiceProvider, weekday time.Weekday) (timeRange, bool) {
	for _, wh := range provider.WorkingHours {
		if wh.Weekday != int(weekday) {
			continue
		}
		if !wh.Available {
			return timeRange{}, false
		}
		window, err := parseRange(wh.StartTime, wh.EndTime)
		if err != nil {
			return timeRange{}, false
		}
		return window, true
	}
	return timeRange{}, false
}

func serviceDuration(provider *models.ServiceProvider) int {
	if provider.AvgServiceDuration > 0 {
		return provider.AvgServiceDuration
	}
	return constants.DefaultServiceDurationMinutes
}

func minAdvanceHours(provider *models.ServiceProvider) int {
	if provider.MinAdvanceBookingHours > 0 {
		return provider.MinAdvanceBookingHours
	}
	return constants.DefaultMinAdvanceBookingHours
}

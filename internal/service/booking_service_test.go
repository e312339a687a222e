package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupBookingTest(t *testing.T) (*BookingService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.ServiceProvider{},
		&models.ProviderWorkingHours{},
		&models.ProviderServiceLink{},
		&models.ServiceProviderSchedule{},
	)
	if err != nil {
		t.Fatalf("migrate booking tables failed: %v", err)
	}
	svc := NewBookingService(
		repository.NewProviderRepository(db),
		repository.NewScheduleRepository(db),
		time.UTC,
	)
	return svc, db
}

// createBookableProvider sets up a provider working the given window on the
// weekday of serviceDate.
func createBookableProvider(t *testing.T, db *gorm.DB, email, serviceDate, startTime, endTime string, duration int) *models.ServiceProvider {
	t.Helper()
	provider := &models.ServiceProvider{
		Name:                   "Test Installer",
		Email:                  email,
		Category:               constants.ProviderCategoryInstaller,
		City:                   "Leeds",
		Area:                   "Headingley",
		AvailabilityStatus:     constants.ProviderStatusAvailable,
		MaxDailyOrders:         5,
		AvgServiceDuration:     duration,
		MinAdvanceBookingHours: 2,
		IsActive:               true,
		IsVerified:             true,
	}
	if err := db.Create(provider).Error; err != nil {
		t.Fatalf("create provider failed: %v", err)
	}

	day, err := time.ParseInLocation("2006-01-02", serviceDate, time.UTC)
	if err != nil {
		t.Fatalf("parse service date failed: %v", err)
	}
	hours := &models.ProviderWorkingHours{
		ProviderID: provider.ID,
		Weekday:    int(day.Weekday()),
		StartTime:  startTime,
		EndTime:    endTime,
		Available:  true,
	}
	if err := db.Create(hours).Error; err != nil {
		t.Fatalf("create working hours failed: %v", err)
	}
	return provider
}

func TestAvailableTimeSlotsExcludesBookedWindows(t *testing.T) {
	svc, db := setupBookingTest(t)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}
	const date = "2026-09-07"
	provider := createBookableProvider(t, db, "slots@test.example", date, "09:00", "12:00", 60)

	slots, err := svc.AvailableTimeSlots(provider.ID, date)
	if err != nil {
		t.Fatalf("available slots failed: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("open day want 3 slots got %d: %+v", len(slots), slots)
	}

	booked := &models.ServiceProviderSchedule{
		ProviderID:  provider.ID,
		ServiceDate: date,
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      constants.ScheduleStatusScheduled,
	}
	if err := db.Create(booked).Error; err != nil {
		t.Fatalf("create schedule failed: %v", err)
	}

	slots, err = svc.AvailableTimeSlots(provider.ID, date)
	if err != nil {
		t.Fatalf("available slots failed: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("after booking want 2 slots got %d: %+v", len(slots), slots)
	}
	for _, slot := range slots {
		if slot.StartTime == "10:00" {
			t.Fatalf("booked slot still offered: %+v", slots)
		}
	}
}

func TestAvailableTimeSlotsSameDayLeadTime(t *testing.T) {
	svc, db := setupBookingTest(t)
	const date = "2026-09-08"
	provider := createBookableProvider(t, db, "leadtime@test.example", date, "09:00", "13:00", 60)

	// 08:30 on the day with a 2 hour lead keeps only slots from 10:30 on.
	svc.now = func() time.Time {
		return time.Date(2026, 9, 8, 8, 30, 0, 0, time.UTC)
	}
	slots, err := svc.AvailableTimeSlots(provider.ID, date)
	if err != nil {
		t.Fatalf("available slots failed: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("lead time want 2 slots got %d: %+v", len(slots), slots)
	}
	if slots[0].StartTime != "11:00" {
		t.Fatalf("first slot want 11:00 got %s", slots[0].StartTime)
	}
}

func TestAvailableTimeSlotsPastDateIsEmpty(t *testing.T) {
	svc, db := setupBookingTest(t)
	const date = "2026-09-09"
	provider := createBookableProvider(t, db, "past@test.example", date, "09:00", "17:00", 60)

	svc.now = func() time.Time {
		return time.Date(2026, 9, 20, 9, 0, 0, 0, time.UTC)
	}
	slots, err := svc.AvailableTimeSlots(provider.ID, date)
	if err != nil {
		t.Fatalf("available slots failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("past date want no slots got %+v", slots)
	}
}

func TestBookSlotRejectsOutsideWorkingHours(t *testing.T) {
	svc, db := setupBookingTest(t)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}
	const date = "2026-09-10"
	provider := createBookableProvider(t, db, "hours@test.example", date, "09:00", "12:00", 60)

	_, err := svc.BookSlot(db, provider.ID, nil, date, "13:00")
	if !errors.Is(err, ErrSlotOutsideHours) {
		t.Fatalf("outside hours want ErrSlotOutsideHours got %v", err)
	}

	// 11:30 start would run past the end of the window.
	_, err = svc.BookSlot(db, provider.ID, nil, date, "11:30")
	if !errors.Is(err, ErrSlotOutsideHours) {
		t.Fatalf("overrunning slot want ErrSlotOutsideHours got %v", err)
	}
}

func TestBookSlotRejectsTooSoon(t *testing.T) {
	svc, db := setupBookingTest(t)
	const date = "2026-09-11"
	provider := createBookableProvider(t, db, "soon@test.example", date, "09:00", "17:00", 60)

	svc.now = func() time.Time {
		return time.Date(2026, 9, 11, 8, 30, 0, 0, time.UTC)
	}
	_, err := svc.BookSlot(db, provider.ID, nil, date, "09:00")
	if !errors.Is(err, ErrSlotTooSoon) {
		t.Fatalf("inside lead time want ErrSlotTooSoon got %v", err)
	}

	schedule, err := svc.BookSlot(db, provider.ID, nil, date, "11:00")
	if err != nil {
		t.Fatalf("book slot failed: %v", err)
	}
	if schedule.EndTime != "12:00" {
		t.Fatalf("slot end want 12:00 got %s", schedule.EndTime)
	}
}

func TestBookSlotConflictAndCapacity(t *testing.T) {
	svc, db := setupBookingTest(t)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}
	const date = "2026-09-14"
	provider := createBookableProvider(t, db, "conflict@test.example", date, "09:00", "17:00", 60)

	if _, err := svc.BookSlot(db, provider.ID, nil, date, "09:00"); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.BookSlot(db, provider.ID, nil, date, "09:00"); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("same slot want ErrSlotTaken got %v", err)
	}

	var refreshed models.ServiceProvider
	if err := db.First(&refreshed, provider.ID).Error; err != nil {
		t.Fatalf("reload provider failed: %v", err)
	}
	if refreshed.CurrentDailyOrders != 1 {
		t.Fatalf("daily orders want 1 got %d", refreshed.CurrentDailyOrders)
	}

	// Exhaust the daily capacity.
	if err := db.Model(&models.ServiceProvider{}).Where("id = ?", provider.ID).
		UpdateColumn("current_daily_orders", refreshed.MaxDailyOrders).Error; err != nil {
		t.Fatalf("set capacity failed: %v", err)
	}
	if _, err := svc.BookSlot(db, provider.ID, nil, date, "13:00"); !errors.Is(err, ErrProviderIneligible) {
		t.Fatalf("at capacity want ErrProviderIneligible got %v", err)
	}
}

func TestRebookAfterCancelReopensSlot(t *testing.T) {
	svc, db := setupBookingTest(t)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}
	const date = "2026-09-16"
	provider := createBookableProvider(t, db, "rebook@test.example", date, "09:00", "12:00", 60)

	schedule, err := svc.BookSlot(db, provider.ID, nil, date, "10:00")
	if err != nil {
		t.Fatalf("book slot failed: %v", err)
	}
	if err := svc.CancelBooking(db, schedule.ID); err != nil {
		t.Fatalf("cancel booking failed: %v", err)
	}

	slots, err := svc.AvailableTimeSlots(provider.ID, date)
	if err != nil {
		t.Fatalf("available slots failed: %v", err)
	}
	reopened := false
	for _, slot := range slots {
		if slot.StartTime == "10:00" {
			reopened = true
		}
	}
	if !reopened {
		t.Fatalf("cancelled slot should be offered again, got %+v", slots)
	}

	rebooked, err := svc.BookSlot(db, provider.ID, nil, date, "10:00")
	if err != nil {
		t.Fatalf("rebook cancelled slot failed: %v", err)
	}
	if rebooked.ID != schedule.ID {
		t.Fatalf("rebooking should reuse the slot row, want %d got %d", schedule.ID, rebooked.ID)
	}
	if rebooked.Status != constants.ScheduleStatusScheduled {
		t.Fatalf("rebooked status want scheduled got %s", rebooked.Status)
	}

	var refreshed models.ServiceProvider
	if err := db.First(&refreshed, provider.ID).Error; err != nil {
		t.Fatalf("reload provider failed: %v", err)
	}
	if refreshed.CurrentDailyOrders != 1 {
		t.Fatalf("daily orders after rebook want 1 got %d", refreshed.CurrentDailyOrders)
	}
}

func TestAvailableProvidersPreferredTimeFilter(t *testing.T) {
	svc, db := setupBookingTest(t)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}
	const date = "2026-09-17"
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		t.Fatalf("parse date failed: %v", err)
	}

	makeProvider := func(email, start, end string, available bool) *models.ServiceProvider {
		t.Helper()
		provider := &models.ServiceProvider{
			Name:                   "Wigan " + email,
			Email:                  email,
			Category:               constants.ProviderCategoryInstaller,
			City:                   "Wigan",
			Area:                   "Centre",
			AvailabilityStatus:     constants.ProviderStatusAvailable,
			MaxDailyOrders:         5,
			AvgServiceDuration:     60,
			MinAdvanceBookingHours: 2,
			IsActive:               true,
			IsVerified:             true,
		}
		if err := db.Create(provider).Error; err != nil {
			t.Fatalf("create provider failed: %v", err)
		}
		hours := &models.ProviderWorkingHours{
			ProviderID: provider.ID,
			Weekday:    int(day.Weekday()),
			StartTime:  start,
			EndTime:    end,
			Available:  available,
		}
		if err := db.Create(hours).Error; err != nil {
			t.Fatalf("create working hours failed: %v", err)
		}
		return provider
	}

	open := makeProvider("open@wigan.example", "09:00", "17:00", true)
	makeProvider("dayoff@wigan.example", "09:00", "17:00", false)
	makeProvider("narrow@wigan.example", "09:30", "10:30", true)
	busy := makeProvider("busy@wigan.example", "09:00", "17:00", true)

	// An overlapping live booking excludes the provider; a cancelled one
	// does not.
	for _, entry := range []models.ServiceProviderSchedule{
		{ProviderID: busy.ID, ServiceDate: date, StartTime: "10:00", EndTime: "11:00", Status: constants.ScheduleStatusScheduled},
		{ProviderID: open.ID, ServiceDate: date, StartTime: "10:00", EndTime: "11:00", Status: constants.ScheduleStatusCancelled},
	} {
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("create schedule failed: %v", err)
		}
	}

	preferred := time.Date(2026, 9, 17, 10, 0, 0, 0, time.UTC)
	result, err := svc.AvailableProviders(ProviderQuery{City: "Wigan", PreferredAt: &preferred})
	if err != nil {
		t.Fatalf("available providers failed: %v", err)
	}
	if len(result) != 1 || result[0].ID != open.ID {
		ids := make([]uint, 0, len(result))
		for _, p := range result {
			ids = append(ids, p.ID)
		}
		t.Fatalf("want only the open provider %d, got %v", open.ID, ids)
	}

	// Without a preferred time the working-hours filter stays out of it.
	result, err = svc.AvailableProviders(ProviderQuery{City: "Wigan"})
	if err != nil {
		t.Fatalf("available providers failed: %v", err)
	}
	if len(result) != 4 {
		t.Fatalf("unfiltered candidates want 4 got %d", len(result))
	}
}

func TestCancelBookingReleasesCapacity(t *testing.T) {
	svc, db := setupBookingTest(t)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}
	const date = "2026-09-15"
	provider := createBookableProvider(t, db, "cancel@test.example", date, "09:00", "17:00", 60)

	schedule, err := svc.BookSlot(db, provider.ID, nil, date, "10:00")
	if err != nil {
		t.Fatalf("book slot failed: %v", err)
	}

	if err := svc.CancelBooking(db, schedule.ID); err != nil {
		t.Fatalf("cancel booking failed: %v", err)
	}

	var refreshed models.ServiceProvider
	if err := db.First(&refreshed, provider.ID).Error; err != nil {
		t.Fatalf("reload provider failed: %v", err)
	}
	if refreshed.CurrentDailyOrders != 0 {
		t.Fatalf("daily orders want 0 got %d", refreshed.CurrentDailyOrders)
	}

	var reloaded models.ServiceProviderSchedule
	if err := db.First(&reloaded, schedule.ID).Error; err != nil {
		t.Fatalf("reload schedule failed: %v", err)
	}
	if reloaded.Status != constants.ScheduleStatusCancelled {
		t.Fatalf("schedule status want cancelled got %s", reloaded.Status)
	}

	// Cancelling again is a no-op and must not release capacity twice.
	if err := svc.CancelBooking(db, schedule.ID); err != nil {
		t.Fatalf("second cancel failed: %v", err)
	}
	if err := db.First(&refreshed, provider.ID).Error; err != nil {
		t.Fatalf("reload provider failed: %v", err)
	}
	if refreshed.CurrentDailyOrders != 0 {
		t.Fatalf("daily orders after double cancel want 0 got %d", refreshed.CurrentDailyOrders)
	}
}

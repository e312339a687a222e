package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupScheduleRepositoryTest(t *testing.T) (*GormScheduleRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ServiceProviderSchedule{}); err != nil {
		t.Fatalf("migrate schedule failed: %v", err)
	}
	return NewScheduleRepository(db), db
}

func createScheduleFixture(t *testing.T, repo *GormScheduleRepository, providerID uint, date, start, end, status string) *models.ServiceProviderSchedule {
	t.Helper()
	schedule := &models.ServiceProviderSchedule{
		ProviderID:  providerID,
		ServiceDate: date,
		StartTime:   start,
		EndTime:     end,
		Status:      status,
	}
	if err := repo.Create(schedule); err != nil {
		t.Fatalf("create schedule failed: %v", err)
	}
	return schedule
}

func TestScheduleUniqueSlotIndex(t *testing.T) {
	repo, _ := setupScheduleRepositoryTest(t)
	createScheduleFixture(t, repo, 501, "2026-10-01", "09:00", "10:00", constants.ScheduleStatusScheduled)

	err := repo.Create(&models.ServiceProviderSchedule{
		ProviderID:  501,
		ServiceDate: "2026-10-01",
		StartTime:   "09:00",
		EndTime:     "10:00",
		Status:      constants.ScheduleStatusScheduled,
	})
	if !IsDuplicateKey(err) {
		t.Fatalf("same slot want duplicate-key error got %v", err)
	}

	// Another provider may hold the identical slot.
	err = repo.Create(&models.ServiceProviderSchedule{
		ProviderID:  502,
		ServiceDate: "2026-10-01",
		StartTime:   "09:00",
		EndTime:     "10:00",
		Status:      constants.ScheduleStatusScheduled,
	})
	if err != nil {
		t.Fatalf("other provider same slot should insert: %v", err)
	}
}

func TestListActiveExcludesCancelled(t *testing.T) {
	repo, _ := setupScheduleRepositoryTest(t)
	createScheduleFixture(t, repo, 503, "2026-10-02", "09:00", "10:00", constants.ScheduleStatusScheduled)
	createScheduleFixture(t, repo, 503, "2026-10-02", "10:00", "11:00", constants.ScheduleStatusCancelled)

	active, err := repo.ListActiveByProviderDate(503, "2026-10-02")
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 1 || active[0].StartTime != "09:00" {
		t.Fatalf("want only the scheduled entry, got %+v", active)
	}
}

func TestReclaimCancelledSlot(t *testing.T) {
	repo, _ := setupScheduleRepositoryTest(t)
	cancelled := createScheduleFixture(t, repo, 506, "2026-10-06", "09:00", "10:00", constants.ScheduleStatusCancelled)

	orderID := uint(9001)
	reclaimed, err := repo.ReclaimCancelled(506, "2026-10-06", "09:00", "10:00", &orderID)
	if err != nil {
		t.Fatalf("reclaim failed: %v", err)
	}
	if reclaimed == nil || reclaimed.ID != cancelled.ID {
		t.Fatalf("reclaim should reuse the cancelled row, got %+v", reclaimed)
	}
	if reclaimed.Status != constants.ScheduleStatusScheduled {
		t.Fatalf("reclaimed status want scheduled got %s", reclaimed.Status)
	}
	if reclaimed.OrderID == nil || *reclaimed.OrderID != orderID {
		t.Fatalf("reclaimed order id want %d got %v", orderID, reclaimed.OrderID)
	}

	// A live booking of the slot is not reclaimable.
	again, err := repo.ReclaimCancelled(506, "2026-10-06", "09:00", "10:00", nil)
	if err != nil {
		t.Fatalf("second reclaim failed: %v", err)
	}
	if again != nil {
		t.Fatalf("scheduled row should not be reclaimed, got %+v", again)
	}
}

func TestUpdateStatusGuardsExpectedState(t *testing.T) {
	repo, _ := setupScheduleRepositoryTest(t)
	schedule := createScheduleFixture(t, repo, 504, "2026-10-03", "09:00", "10:00", constants.ScheduleStatusScheduled)

	ok, err := repo.UpdateStatus(schedule.ID, constants.ScheduleStatusScheduled, constants.ScheduleStatusCompleted)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected-state transition should apply")
	}

	ok, err = repo.UpdateStatus(schedule.ID, constants.ScheduleStatusScheduled, constants.ScheduleStatusCancelled)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if ok {
		t.Fatalf("transition from wrong state should be refused")
	}
}

func TestSweepPastScheduledCompletesOldEntries(t *testing.T) {
	repo, _ := setupScheduleRepositoryTest(t)
	past := createScheduleFixture(t, repo, 505, "2026-10-04", "09:00", "10:00", constants.ScheduleStatusScheduled)
	today := createScheduleFixture(t, repo, 505, "2026-10-05", "09:00", "10:00", constants.ScheduleStatusScheduled)

	affected, err := repo.SweepPastScheduled("2026-10-05")
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("swept entries want 1 got %d", affected)
	}

	reloadedPast, err := repo.GetByID(past.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloadedPast.Status != constants.ScheduleStatusCompleted {
		t.Fatalf("past entry want completed got %s", reloadedPast.Status)
	}

	reloadedToday, err := repo.GetByID(today.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloadedToday.Status != constants.ScheduleStatusScheduled {
		t.Fatalf("today's entry should stay scheduled, got %s", reloadedToday.Status)
	}
}

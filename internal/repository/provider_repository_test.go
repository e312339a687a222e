package repository

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProviderRepositoryTest(t *testing.T) (*GormProviderRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.ServiceProvider{},
		&models.ProviderServiceLink{},
		&models.ProviderWorkingHours{},
	)
	if err != nil {
		t.Fatalf("migrate provider tables failed: %v", err)
	}
	return NewProviderRepository(db), db
}

func createProviderFixture(t *testing.T, repo *GormProviderRepository, email, city string, maxDaily, currentDaily int) *models.ServiceProvider {
	t.Helper()
	provider := &models.ServiceProvider{
		Name:               "Fixture " + email,
		Email:              email,
		Category:           constants.ProviderCategoryInstaller,
		City:               city,
		Area:               "Centre",
		AvailabilityStatus: constants.ProviderStatusAvailable,
		MaxDailyOrders:     maxDaily,
		CurrentDailyOrders: currentDaily,
		AvgServiceDuration: 60,
		IsActive:           true,
		IsVerified:         true,
	}
	if err := repo.Create(provider); err != nil {
		t.Fatalf("create provider failed: %v", err)
	}
	return provider
}

func TestIncrementDailyOrdersRespectsCapacity(t *testing.T) {
	repo, _ := setupProviderRepositoryTest(t)
	provider := createProviderFixture(t, repo, "capacity@repo.example", "Bristol", 2, 1)

	ok, err := repo.IncrementDailyOrders(provider.ID)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if !ok {
		t.Fatalf("increment under capacity should succeed")
	}

	ok, err = repo.IncrementDailyOrders(provider.ID)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if ok {
		t.Fatalf("increment at capacity should be refused")
	}

	if err := repo.DecrementDailyOrders(provider.ID); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	reloaded, err := repo.GetByID(provider.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.CurrentDailyOrders != 1 {
		t.Fatalf("daily orders want 1 got %d", reloaded.CurrentDailyOrders)
	}
}

func TestResetDailyOrdersZeroesBusyProviders(t *testing.T) {
	repo, _ := setupProviderRepositoryTest(t)
	busy := createProviderFixture(t, repo, "reset-busy@repo.example", "Derby", 8, 3)
	idle := createProviderFixture(t, repo, "reset-idle@repo.example", "Derby", 8, 0)

	affected, err := repo.ResetDailyOrders()
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if affected < 1 {
		t.Fatalf("reset should touch the busy provider, affected %d", affected)
	}

	for _, id := range []uint{busy.ID, idle.ID} {
		reloaded, err := repo.GetByID(id)
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if reloaded.CurrentDailyOrders != 0 {
			t.Fatalf("provider %d daily orders want 0 got %d", id, reloaded.CurrentDailyOrders)
		}
	}
}

func TestRecordCompletedJobUpdatesRunningAverage(t *testing.T) {
	repo, db := setupProviderRepositoryTest(t)
	provider := createProviderFixture(t, repo, "rating@repo.example", "York", 8, 0)

	if err := db.Model(&models.ServiceProvider{}).Where("id = ?", provider.ID).
		Updates(map[string]interface{}{"rating": 4.0, "total_jobs_completed": 1}).Error; err != nil {
		t.Fatalf("seed rating failed: %v", err)
	}

	if err := repo.RecordCompletedJob(provider.ID, 5); err != nil {
		t.Fatalf("record job failed: %v", err)
	}

	reloaded, err := repo.GetByID(provider.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.TotalJobsCompleted != 2 {
		t.Fatalf("jobs completed want 2 got %d", reloaded.TotalJobsCompleted)
	}
	if math.Abs(reloaded.Rating-4.5) > 0.001 {
		t.Fatalf("rating want 4.5 got %f", reloaded.Rating)
	}
}

func TestListCandidatesRequiresFullServiceCoverage(t *testing.T) {
	repo, db := setupProviderRepositoryTest(t)
	covered := createProviderFixture(t, repo, "covered@repo.example", "Norwich", 8, 0)
	partial := createProviderFixture(t, repo, "partial@repo.example", "Norwich", 8, 0)

	links := []models.ProviderServiceLink{
		{ProviderID: covered.ID, ServiceID: 11, IsActive: true},
		{ProviderID: covered.ID, ServiceID: 12, IsActive: true},
		{ProviderID: partial.ID, ServiceID: 11, IsActive: true},
	}
	for i := range links {
		if err := db.Create(&links[i]).Error; err != nil {
			t.Fatalf("create link failed: %v", err)
		}
	}

	candidates, err := repo.ListCandidates("Norwich", "", "", []uint{11, 12})
	if err != nil {
		t.Fatalf("list candidates failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != covered.ID {
		t.Fatalf("want only the fully covering provider, got %+v", candidates)
	}
}

func TestListCandidatesRankedByRatingThenJobs(t *testing.T) {
	repo, db := setupProviderRepositoryTest(t)
	veteran := createProviderFixture(t, repo, "rank-veteran@repo.example", "Salford", 8, 0)
	junior := createProviderFixture(t, repo, "rank-junior@repo.example", "Salford", 8, 0)
	top := createProviderFixture(t, repo, "rank-top@repo.example", "Salford", 8, 0)

	seed := []struct {
		id     uint
		rating float64
		jobs   int
	}{
		{veteran.ID, 4.8, 120},
		{junior.ID, 4.8, 80},
		{top.ID, 4.9, 10},
	}
	for _, s := range seed {
		if err := db.Model(&models.ServiceProvider{}).Where("id = ?", s.id).
			Updates(map[string]interface{}{"rating": s.rating, "total_jobs_completed": s.jobs}).Error; err != nil {
			t.Fatalf("seed ranking failed: %v", err)
		}
	}

	candidates, err := repo.ListCandidates("Salford", "", "", nil)
	if err != nil {
		t.Fatalf("list candidates failed: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("candidates want 3 got %d", len(candidates))
	}
	want := []uint{top.ID, veteran.ID, junior.ID}
	for i, id := range want {
		if candidates[i].ID != id {
			t.Fatalf("rank %d want provider %d got %d", i, id, candidates[i].ID)
		}
	}
}

func TestListCandidatesExcludesIneligibleProviders(t *testing.T) {
	repo, db := setupProviderRepositoryTest(t)
	eligible := createProviderFixture(t, repo, "eligible@repo.example", "Truro", 8, 0)
	createProviderFixture(t, repo, "full@repo.example", "Truro", 2, 2)
	offline := createProviderFixture(t, repo, "offline@repo.example", "Truro", 8, 0)
	if err := db.Model(&models.ServiceProvider{}).Where("id = ?", offline.ID).
		UpdateColumn("availability_status", constants.ProviderStatusOffline).Error; err != nil {
		t.Fatalf("set offline failed: %v", err)
	}

	candidates, err := repo.ListCandidates("Truro", "", "", nil)
	if err != nil {
		t.Fatalf("list candidates failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != eligible.ID {
		t.Fatalf("want only the eligible provider, got %d candidates", len(candidates))
	}
}

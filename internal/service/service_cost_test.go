package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupServiceCostTest(t *testing.T) (*ServiceCostCalculator, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ProductService{}, &models.ProductServiceAssignment{}); err != nil {
		t.Fatalf("migrate services failed: %v", err)
	}
	return NewServiceCostCalculator(repository.NewServiceRepository(db)), db
}

func createTestService(t *testing.T, db *gorm.DB, name string, price float64, isFree bool) *models.ProductService {
	t.Helper()
	svc := &models.ProductService{
		Name:       name,
		Type:       constants.ServiceTypeInstallation,
		Price:      models.NewMoneyFromFloat(price),
		IsOptional: true,
		IsFree:     isFree,
		IsActive:   true,
	}
	if err := db.Create(svc).Error; err != nil {
		t.Fatalf("create service failed: %v", err)
	}
	return svc
}

func TestServiceCostEmptySelectionIsZero(t *testing.T) {
	calc, _ := setupServiceCostTest(t)

	breakdown, err := calc.Calculate(nil, []uint{1})
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if len(breakdown.Lines) != 0 || !breakdown.Total.Decimal.IsZero() {
		t.Fatalf("empty selection want zero breakdown got %+v", breakdown)
	}
}

func TestServiceCostUnknownServiceFails(t *testing.T) {
	calc, _ := setupServiceCostTest(t)

	_, err := calc.Calculate([]uint{9999}, []uint{1})
	if !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("unknown service want ErrServiceNotFound got %v", err)
	}
}

func TestServiceCostPerProductLines(t *testing.T) {
	calc, db := setupServiceCostTest(t)
	install := createTestService(t, db, "fit part", 80, false)

	breakdown, err := calc.Calculate([]uint{install.ID}, []uint{101, 102})
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if len(breakdown.Lines) != 2 {
		t.Fatalf("lines want 2 got %d", len(breakdown.Lines))
	}
	if !breakdown.Total.Decimal.Equal(decimal.NewFromInt(160)) {
		t.Fatalf("total want 160 got %s", breakdown.Total.Decimal)
	}
}

func TestServiceCostAssignmentOverrides(t *testing.T) {
	calc, db := setupServiceCostTest(t)
	install := createTestService(t, db, "fit pcb", 80, false)

	custom := models.NewMoneyFromFloat(55)
	assignment := &models.ProductServiceAssignment{
		ProductID:   201,
		ServiceID:   install.ID,
		CustomPrice: &custom,
		IsActive:    true,
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("create assignment failed: %v", err)
	}

	breakdown, err := calc.Calculate([]uint{install.ID}, []uint{201, 202})
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	// 55 for the overridden product, 80 for the default one.
	if !breakdown.Total.Decimal.Equal(decimal.NewFromInt(135)) {
		t.Fatalf("total want 135 got %s", breakdown.Total.Decimal)
	}
}

func TestServiceCostFreeOverrideZeroesPrice(t *testing.T) {
	calc, db := setupServiceCostTest(t)
	delivery := createTestService(t, db, "tracked delivery", 6.95, false)

	isFree := true
	assignment := &models.ProductServiceAssignment{
		ProductID: 301,
		ServiceID: delivery.ID,
		IsFree:    &isFree,
		IsActive:  true,
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("create assignment failed: %v", err)
	}

	breakdown, err := calc.Calculate([]uint{delivery.ID}, []uint{301})
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !breakdown.Total.Decimal.IsZero() {
		t.Fatalf("free service want zero total got %s", breakdown.Total.Decimal)
	}
	if !breakdown.Lines[0].IsFree {
		t.Fatalf("line should be flagged free")
	}
}

func TestResolveEffectiveFallsBackToDefaults(t *testing.T) {
	svc := &models.ProductService{
		ID:         1,
		Name:       "setup",
		Price:      models.NewMoneyFromFloat(40),
		IsOptional: false,
		IsFree:     false,
	}
	effective := ResolveEffective(svc, nil)
	if !effective.Price.Decimal.Equal(decimal.NewFromInt(40)) || effective.IsOptional || effective.IsFree {
		t.Fatalf("nil assignment should keep defaults, got %+v", effective)
	}

	optional := true
	effective = ResolveEffective(svc, &models.ProductServiceAssignment{IsOptional: &optional})
	if !effective.IsOptional {
		t.Fatalf("optional override not applied")
	}
}

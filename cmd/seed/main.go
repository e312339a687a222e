package main

import (
	"time"

	"github.com/heatspares-next/internal/config"
	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/logger"
	"github.com/heatspares-next/internal/models"
)

// Seeds a small demo catalog: categories, brands, parts, services,
// a couple of installers and a welcome coupon. Safe to re-run.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Slug: "pcbs", Name: "Printed Circuit Boards", SortOrder: 10},
		{Slug: "pumps", Name: "Pumps", SortOrder: 20},
		{Slug: "diverter-valves", Name: "Diverter Valves", SortOrder: 30},
		{Slug: "ignition", Name: "Ignition & Electrodes", SortOrder: 40},
		{Slug: "thermostats", Name: "Thermostats & Controls", SortOrder: 50},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("category already exists: %s", cat.Slug)
		}
	}

	brands := []models.Brand{
		{Slug: "worcester-bosch", Name: "Worcester Bosch", SortOrder: 10, IsActive: true},
		{Slug: "vaillant", Name: "Vaillant", SortOrder: 20, IsActive: true},
		{Slug: "baxi", Name: "Baxi", SortOrder: 30, IsActive: true},
		{Slug: "ideal", Name: "Ideal", SortOrder: 40, IsActive: true},
	}
	for _, brand := range brands {
		var existing models.Brand
		if err := models.DB.Where("slug = ?", brand.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&brand).Error; err != nil {
				stdLog.Printf("failed to create brand %s: %v", brand.Slug, err)
			} else {
				stdLog.Printf("created brand: %s", brand.Slug)
			}
		} else {
			stdLog.Printf("brand already exists: %s", brand.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	brandIDs := map[string]uint{}
	var brandList []models.Brand
	if err := models.DB.Find(&brandList).Error; err != nil {
		stdLog.Printf("failed to load brands: %v", err)
	}
	for _, brand := range brandList {
		brandIDs[brand.Slug] = brand.ID
	}

	worcesterID := brandIDs["worcester-bosch"]
	vaillantID := brandIDs["vaillant"]
	baxiID := brandIDs["baxi"]

	products := []models.Product{
		{
			CategoryID:    categoryIDs["pcbs"],
			BrandID:       &worcesterID,
			Slug:          "worcester-cdi-main-pcb",
			PartNumber:    "87483008190",
			Name:          "Worcester Greenstar CDi Main PCB",
			Description:   "Replacement main control board for Greenstar 30/35/42 CDi Classic combi boilers.",
			Price:         models.NewMoneyFromFloat(189.99),
			StockQuantity: 12,
			Attributes: models.JSON(map[string]interface{}{
				"gc_number":   "47-311-69",
				"fits_models": []string{"30CDi", "35CDi", "42CDi"},
			}),
			IsActive:   true,
			IsFeatured: true,
			SortOrder:  10,
		},
		{
			CategoryID:    categoryIDs["pumps"],
			BrandID:       &vaillantID,
			Slug:          "vaillant-ecotec-pump-assembly",
			PartNumber:    "0020213145",
			Name:          "Vaillant ecoTEC Pump Assembly",
			Description:   "High-efficiency modulating pump for ecoTEC plus 824/831/837.",
			Price:         models.NewMoneyFromFloat(144.50),
			StockQuantity: 8,
			Attributes: models.JSON(map[string]interface{}{
				"fits_models": []string{"ecoTEC plus 824", "ecoTEC plus 831", "ecoTEC plus 837"},
			}),
			IsActive:   true,
			IsFeatured: true,
			SortOrder:  20,
		},
		{
			CategoryID:    categoryIDs["diverter-valves"],
			BrandID:       &baxiID,
			Slug:          "baxi-duo-tec-diverter-valve",
			PartNumber:    "720789901",
			Name:          "Baxi Duo-tec Diverter Valve",
			Description:   "Three-way diverter valve with motor for Duo-tec combi range.",
			Price:         models.NewMoneyFromFloat(68.95),
			StockQuantity: 20,
			IsActive:      true,
			SortOrder:     30,
		},
		{
			CategoryID:    categoryIDs["ignition"],
			BrandID:       &worcesterID,
			Slug:          "worcester-ignition-electrode",
			PartNumber:    "87161212440",
			Name:          "Worcester Ignition Electrode",
			Description:   "Spark electrode with gasket for Greenstar Ri and Si ranges.",
			Price:         models.NewMoneyFromFloat(24.99),
			StockQuantity: 45,
			IsActive:      true,
			SortOrder:     40,
		},
	}
	for _, product := range products {
		if product.CategoryID == 0 {
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("product already exists: %s", product.Slug)
		}
	}

	services := []models.ProductService{
		{
			Name:        "Boiler Part Installation",
			Type:        constants.ServiceTypeInstallation,
			Price:       models.NewMoneyFromFloat(85.00),
			IsOptional:  true,
			Description: "Gas Safe registered engineer fits the part at your property.",
			IsActive:    true,
		},
		{
			Name:       "Next-Day Delivery",
			Type:       constants.ServiceTypeDelivery,
			Price:      models.NewMoneyFromFloat(6.95),
			IsOptional: false,
			FreeRules: models.JSON(map[string]interface{}{
				"min_order_total": 75,
			}),
			Description: "Tracked courier delivery, free on orders over the threshold.",
			IsActive:    true,
		},
		{
			Name:        "Annual Boiler Service",
			Type:        constants.ServiceTypeMaintenance,
			Price:       models.NewMoneyFromFloat(69.00),
			IsOptional:  true,
			Description: "Full service and safety inspection while the engineer is on site.",
			IsActive:    true,
		},
	}
	for _, svc := range services {
		var existing models.ProductService
		if err := models.DB.Where("name = ?", svc.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&svc).Error; err != nil {
				stdLog.Printf("failed to create service %s: %v", svc.Name, err)
			} else {
				stdLog.Printf("created service: %s", svc.Name)
			}
		} else {
			stdLog.Printf("service already exists: %s", svc.Name)
		}
	}

	providers := []models.ServiceProvider{
		{
			Name:               "Dave Thornton Heating",
			Email:              "dave@thorntonheating.example",
			Phone:              "07700900101",
			Category:           constants.ProviderCategoryInstaller,
			City:               "Manchester",
			Area:               "Didsbury",
			AvailabilityStatus: constants.ProviderStatusAvailable,
			MaxDailyOrders:     6,
			AvgServiceDuration: 90,
			IsActive:           true,
			IsVerified:         true,
		},
		{
			Name:               "Northside Gas Services",
			Email:              "bookings@northsidegas.example",
			Phone:              "07700900102",
			Category:           constants.ProviderCategoryInstaller,
			City:               "Manchester",
			Area:               "Salford",
			AvailabilityStatus: constants.ProviderStatusAvailable,
			MaxDailyOrders:     8,
			AvgServiceDuration: 60,
			IsActive:           true,
			IsVerified:         true,
		},
	}
	weekdayHours := []struct {
		start string
		end   string
	}{
		{"08:00", "17:00"},
	}
	for _, p := range providers {
		var existing models.ServiceProvider
		if err := models.DB.Where("email = ?", p.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("failed to create provider %s: %v", p.Name, err)
				continue
			}
			stdLog.Printf("created provider: %s", p.Name)
			for weekday := 1; weekday <= 5; weekday++ {
				hours := models.ProviderWorkingHours{
					ProviderID: p.ID,
					Weekday:    weekday,
					StartTime:  weekdayHours[0].start,
					EndTime:    weekdayHours[0].end,
					Available:  true,
				}
				if err := models.DB.Create(&hours).Error; err != nil {
					stdLog.Printf("failed to create working hours for %s: %v", p.Name, err)
				}
			}
		} else {
			stdLog.Printf("provider already exists: %s", p.Name)
		}
	}

	expiresAt := time.Now().AddDate(0, 3, 0)
	coupon := models.Coupon{
		Code:        "WELCOME10",
		Type:        constants.CouponTypePercentage,
		Value:       models.NewMoneyFromFloat(10),
		MinAmount:   models.NewMoneyFromFloat(50),
		MaxDiscount: models.NewMoneyFromFloat(30),
		UsageLimit:  500,
		IsActive:    true,
		ExpiresAt:   &expiresAt,
	}
	var existingCoupon models.Coupon
	if err := models.DB.Where("code = ?", coupon.Code).First(&existingCoupon).Error; err != nil {
		if err := models.DB.Create(&coupon).Error; err != nil {
			stdLog.Printf("failed to create coupon %s: %v", coupon.Code, err)
		} else {
			stdLog.Printf("created coupon: %s", coupon.Code)
		}
	} else {
		stdLog.Printf("coupon already exists: %s", coupon.Code)
	}

	stdLog.Printf("seed complete")
}

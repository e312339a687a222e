package provider

import (
	"time"

	"github.com/heatspares-next/internal/authz"
	"github.com/heatspares-next/internal/cache"
	"github.com/heatspares-next/internal/config"
	"github.com/heatspares-next/internal/logger"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/queue"
	"github.com/heatspares-next/internal/repository"
	"github.com/heatspares-next/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo       repository.AdminRepository
	UserRepo        repository.UserRepository
	ProductRepo     repository.ProductRepository
	CategoryRepo    repository.CategoryRepository
	BrandRepo       repository.BrandRepository
	ServiceRepo     repository.ServiceRepository
	ProviderRepo    repository.ProviderRepository
	ScheduleRepo    repository.ScheduleRepository
	CartRepo        repository.CartRepository
	OrderRepo       repository.OrderRepository
	CouponRepo      repository.CouponRepository
	CouponUsageRepo repository.CouponUsageRepository
	ReviewRepo      repository.ReviewRepository
	WishlistRepo    repository.WishlistRepository
	SettingRepo     repository.SettingRepository

	// Services
	AdminTokens          *service.TokenIssuer
	UserTokens           *service.TokenIssuer
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	UserAuthService      *service.UserAuthService
	CaptchaService       *service.CaptchaService
	CatalogService       *service.CatalogService
	CatalogAdminService  *service.CatalogAdminService
	CartService          *service.CartService
	CouponService        *service.CouponService
	CouponAdminService   *service.CouponAdminService
	BookingService       *service.BookingService
	CostCalculator       *service.ServiceCostCalculator
	ProviderAdminService *service.ProviderAdminService
	OrderService         *service.OrderService
	ReviewService        *service.ReviewService
	WishlistService      *service.WishlistService
	SettingService       *service.SettingService
	NotificationService  *service.NotificationService
}

// NewContainer wires repositories and services over the shared database.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.ServiceRepo = repository.NewServiceRepository(db)
	c.ProviderRepo = repository.NewProviderRepository(db)
	c.ScheduleRepo = repository.NewScheduleRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	cfg := c.Config
	catalogTTL := time.Duration(cfg.Cache.CatalogTTLSeconds) * time.Second
	settingsTTL := time.Duration(cfg.Cache.SettingsTTLSeconds) * time.Second
	cartCountTTL := time.Duration(cfg.Cache.CartCountTTLSeconds) * time.Second

	c.AdminTokens = service.NewTokenIssuer(cfg.JWT.SecretKey, cfg.JWT.ExpireHours, "admin")
	c.UserTokens = service.NewTokenIssuer(cfg.UserJWT.SecretKey, cfg.UserJWT.ExpireHours, "user")

	c.AuthService = service.NewAuthService(c.AdminRepo, c.AdminTokens)
	c.UserAuthService = service.NewUserAuthService(c.UserRepo, c.UserTokens, cfg.Security.PasswordPolicy)
	c.CaptchaService = service.NewCaptchaService(cfg.Captcha)
	c.SettingService = service.NewSettingService(c.SettingRepo, settingsTTL)
	c.NotificationService = service.NewNotificationService()

	c.CatalogService = service.NewCatalogService(
		c.ProductRepo, c.CategoryRepo, c.BrandRepo, c.ServiceRepo, c.ReviewRepo, catalogTTL)
	c.CatalogAdminService = service.NewCatalogAdminService(
		c.ProductRepo, c.CategoryRepo, c.BrandRepo, c.ServiceRepo, c.CatalogService)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, cartCountTTL)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CouponUsageRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo, c.CouponUsageRepo)
	c.BookingService = service.NewBookingService(c.ProviderRepo, c.ScheduleRepo, time.Local)
	c.CostCalculator = service.NewServiceCostCalculator(c.ServiceRepo)
	c.ProviderAdminService = service.NewProviderAdminService(c.ProviderRepo, c.ScheduleRepo, c.ServiceRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)

	var tasks service.OrderTasks
	if c.QueueClient != nil {
		tasks = c.QueueClient
	}
	c.OrderService = service.NewOrderService(
		models.DB, c.OrderRepo, c.ProductRepo, c.CartRepo,
		c.CouponService, c.BookingService, c.CostCalculator,
		tasks, cfg.Order.TimeoutMinutes, time.Local)
}

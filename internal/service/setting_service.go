package service

import (
	"context"
	"time"

	"github.com/heatspares-next/internal/cache"
	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"
)

// SettingService reads and writes key/JSON settings with short-TTL caching.
type SettingService struct {
	settings repository.SettingRepository
	ttl      time.Duration
}

// NewSettingService creates a settings service.
func NewSettingService(settings repository.SettingRepository, ttl time.Duration) *SettingService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &SettingService{settings: settings, ttl: ttl}
}

// defaultSiteConfig is the base the stored site config merges over.
func defaultSiteConfig() models.JSON {
	return models.JSON{
		"site_name":             "HeatSpares",
		"currency":              "GBP",
		"support_email":         "",
		"support_phone":         "",
		"order_timeout_minutes": constants.DefaultOrderTimeoutMinutes,
	}
}

// GetSiteConfig returns the site configuration merged over defaults, cached.
func (s *SettingService) GetSiteConfig(ctx context.Context) (models.JSON, error) {
	return cache.RememberJSON(ctx, constants.CacheKeySiteConfig, s.ttl, func() (models.JSON, error) {
		merged := defaultSiteConfig()
		stored, err := s.settings.Get(constants.SettingKeySiteConfig)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			for key, value := range stored.Value {
				merged[key] = value
			}
		}
		return merged, nil
	})
}

// UpdateSiteConfig stores the site configuration and drops the cache.
func (s *SettingService) UpdateSiteConfig(ctx context.Context, value models.JSON) error {
	if err := s.settings.Set(constants.SettingKeySiteConfig, value); err != nil {
		return err
	}
	_ = cache.Del(ctx, constants.CacheKeySiteConfig)
	return nil
}

// Get reads one raw setting.
func (s *SettingService) Get(key string) (*models.Setting, error) {
	return s.settings.Get(key)
}

// Set writes one raw setting.
func (s *SettingService) Set(key string, value models.JSON) error {
	return s.settings.Set(key, value)
}

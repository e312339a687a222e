package service

import (
	"time"

	"github.com/heatspares-next/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaService issues and verifies image captchas for logins.
type CaptchaService struct {
	enabled bool
	captcha *base64Captcha.Captcha
}

// NewCaptchaService creates a captcha service; a disabled config makes every
// verification pass.
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	if !cfg.Enabled {
		return &CaptchaService{enabled: false}
	}
	driver := base64Captcha.NewDriverDigit(cfg.Height, cfg.Width, cfg.Length, 0.7, cfg.NoiseCount)
	store := base64Captcha.NewMemoryStore(cfg.MaxStore, defaultSeconds(cfg.ExpireSeconds, 300))
	return &CaptchaService{
		enabled: true,
		captcha: base64Captcha.NewCaptcha(driver, store),
	}
}

// Enabled reports whether captcha checks are active.
func (s *CaptchaService) Enabled() bool {
	return s.enabled
}

// Generate returns a captcha id and its base64 PNG.
func (s *CaptchaService) Generate() (id, image string, err error) {
	if !s.enabled {
		return "", "", nil
	}
	id, image, _, err = s.captcha.Generate()
	return id, image, err
}

// Verify checks an answer, consuming the captcha.
func (s *CaptchaService) Verify(id, answer string) error {
	if !s.enabled {
		return nil
	}
	if id == "" || answer == "" || !s.captcha.Verify(id, answer, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func defaultSeconds(value, fallback int) time.Duration {
	if value <= 0 {
		value = fallback
	}
	return time.Duration(value) * time.Second
}

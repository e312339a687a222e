package service

import (
	"github.com/heatspares-next/internal/logger"
	"github.com/heatspares-next/internal/models"
)

// NotificationService delivers customer notifications. Delivery is currently
// a structured log record; the call sites are the integration points for a
// real mail provider.
type NotificationService struct{}

// NewNotificationService creates a notification service.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// SendOrderConfirmation notifies a customer that their order was received.
func (s *NotificationService) SendOrderConfirmation(order *models.Order, user *models.User) error {
	if order == nil || user == nil {
		return nil
	}
	logger.Infow("notify_order_confirmation",
		"order_no", order.OrderNo,
		"email", user.Email,
		"total", order.TotalAmount.String(),
	)
	return nil
}

// SendBookingReminder reminds a customer of tomorrow's visit.
func (s *NotificationService) SendBookingReminder(schedule *models.ServiceProviderSchedule, provider *models.ServiceProvider, user *models.User) error {
	if schedule == nil {
		return nil
	}
	fields := []interface{}{
		"schedule_id", schedule.ID,
		"service_date", schedule.ServiceDate,
		"start_time", schedule.StartTime,
	}
	if provider != nil {
		fields = append(fields, "provider", provider.Name)
	}
	if user != nil {
		fields = append(fields, "email", user.Email)
	}
	logger.Infow("notify_booking_reminder", fields...)
	return nil
}

package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/logger"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/provider"
	"github.com/heatspares-next/internal/queue"
	"github.com/heatspares-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles the queued background tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register hooks the task handlers into the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
	mux.HandleFunc(queue.TaskBookingReminderEmail, c.handleBookingReminderEmail)
	mux.HandleFunc(queue.TaskOrderTimeoutCancel, c.handleOrderTimeoutCancel)
}

func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmation_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmation_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirmation_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_confirmation_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_confirmation_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	user, err := c.UserRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("worker_order_confirmation_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if user == nil {
		logger.Debugw("worker_order_confirmation_skip_user_not_found", "order_id", order.ID, "user_id", order.UserID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_order_confirmation_skip_notification_nil", "order_id", order.ID)
		return nil
	}
	if err := c.NotificationService.SendOrderConfirmation(order, user); err != nil {
		logger.Warnw("worker_order_confirmation_send_failed", "order_id", order.ID, "order_no", order.OrderNo, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleBookingReminderEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_booking_reminder_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.BookingReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_booking_reminder_unmarshal_failed", "error", err)
		return err
	}
	if payload.ScheduleID == 0 {
		logger.Debugw("worker_booking_reminder_skip_invalid_payload", "schedule_id", payload.ScheduleID)
		return nil
	}
	schedule, err := c.ScheduleRepo.GetByID(payload.ScheduleID)
	if err != nil {
		logger.Warnw("worker_booking_reminder_fetch_schedule_failed", "schedule_id", payload.ScheduleID, "error", err)
		return err
	}
	if schedule == nil || schedule.Status != constants.ScheduleStatusScheduled {
		logger.Debugw("worker_booking_reminder_skip_not_scheduled", "schedule_id", payload.ScheduleID)
		return nil
	}
	serviceProvider, err := c.ProviderRepo.GetByID(schedule.ProviderID)
	if err != nil {
		logger.Warnw("worker_booking_reminder_fetch_provider_failed", "schedule_id", schedule.ID, "provider_id", schedule.ProviderID, "error", err)
		return err
	}
	var user *models.User
	if schedule.OrderID != nil {
		order, err := c.OrderRepo.GetByID(*schedule.OrderID)
		if err != nil {
			logger.Warnw("worker_booking_reminder_fetch_order_failed", "schedule_id", schedule.ID, "order_id", *schedule.OrderID, "error", err)
			return err
		}
		if order != nil {
			user, err = c.UserRepo.GetByID(order.UserID)
			if err != nil {
				logger.Warnw("worker_booking_reminder_fetch_user_failed", "schedule_id", schedule.ID, "user_id", order.UserID, "error", err)
				return err
			}
		}
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_booking_reminder_skip_notification_nil", "schedule_id", schedule.ID)
		return nil
	}
	if err := c.NotificationService.SendBookingReminder(schedule, serviceProvider, user); err != nil {
		logger.Warnw("worker_booking_reminder_send_failed", "schedule_id", schedule.ID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderTimeoutCancel(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_timeout_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_timeout_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_timeout_cancel_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_timeout_cancel_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderService.Cancel(payload.OrderID, 0); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Debugw("worker_order_timeout_cancel_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		case errors.Is(err, service.ErrOrderNotCancelable):
			logger.Debugw("worker_order_timeout_cancel_skip_not_pending", "order_id", payload.OrderID)
			return nil
		default:
			logger.Warnw("worker_order_timeout_cancel_failed", "order_id", payload.OrderID, "error", err)
			return err
		}
	}
	logger.Infow("worker_order_timeout_cancelled", "order_id", payload.OrderID)
	return nil
}

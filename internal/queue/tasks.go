package queue

import (
	"encoding/json"

	"github.com/heatspares-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmationEmail is the order confirmation email task.
	TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail
	// TaskBookingReminderEmail is the day-before booking reminder task.
	TaskBookingReminderEmail = constants.TaskBookingReminderEmail
	// TaskOrderTimeoutCancel is the delayed unpaid-order cancellation task.
	TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel
)

// OrderConfirmationPayload carries the order to confirm by email.
type OrderConfirmationPayload struct {
	OrderID uint `json:"order_id"`
}

// BookingReminderPayload carries the schedule entry to remind about.
type BookingReminderPayload struct {
	ScheduleID uint `json:"schedule_id"`
}

// OrderTimeoutCancelPayload carries the order to cancel when still pending.
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderConfirmationTask builds an order confirmation email task.
func NewOrderConfirmationTask(payload OrderConfirmationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmationEmail, body), nil
}

// NewBookingReminderTask builds a booking reminder email task.
func NewBookingReminderTask(payload BookingReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBookingReminderEmail, body), nil
}

// NewOrderTimeoutCancelTask builds a timeout cancellation task.
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderTimeoutCancel, body), nil
}

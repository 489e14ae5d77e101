package tasks

import (
	"context"
	"encoding/json"
	"time"

	"uprocket/config"
	"uprocket/models"

	"github.com/hibiken/asynq"
)

const TypeBookingExpire = "booking:expire"

// BookingExpiryPayload identifies the pre-booking to sweep.
type BookingExpiryPayload struct {
	BookingID    string `json:"bookingId"`
	UserUID      string `json:"userUid"`
	ContractorID string `json:"contractorId"`
}

// NewBookingExpiryTask builds the delayed expiry task for a pre-booking.
func NewBookingExpiryTask(payload BookingExpiryPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqEnqueuer schedules expiry tasks on the asynq queue.
type AsynqEnqueuer struct {
	Client *asynq.Client
}

// EnqueueBookingExpiry schedules the cancel sweep to fire when the
// pre-booking hold runs out.
func (e *AsynqEnqueuer) EnqueueBookingExpiry(ctx context.Context, pending models.PendingBooking) error {
	fireAt := time.Now().Add(time.Duration(config.AppConfig.PendingBookingTTL) * time.Second)
	task, opts, err := NewBookingExpiryTask(BookingExpiryPayload{
		BookingID:    pending.BookingID,
		UserUID:      pending.UserUID,
		ContractorID: pending.ContractorID,
	}, fireAt)
	if err != nil {
		return err
	}
	_, err = e.Client.EnqueueContext(ctx, task, opts...)
	return err
}

// NewAsynqClient builds the asynq client on the task-queue Redis DB.
func NewAsynqClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
}

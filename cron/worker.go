package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"uprocket/config"
	recordsRepo "uprocket/database/repository/records"
	"uprocket/models"
	"uprocket/services/booking"
	"uprocket/services/directory"
	"uprocket/services/scheduling"
	"uprocket/services/tasks"

	"github.com/hibiken/asynq"
)

// InitExpiryWorker runs the async worker that cancels pre-bookings whose
// hold ran out without a confirm.
func InitExpiryWorker(pending booking.PendingBookingStore, dir directory.DirectoryService, nylas scheduling.NylasAPI, records recordsRepo.RecordRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingExpire, handleExpiryTask(pending, dir, nylas, records))

	go func() {
		log.Println("[ExpiryWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleExpiryTask(pending booking.PendingBookingStore, dir directory.DirectoryService, nylas scheduling.NylasAPI, records recordsRepo.RecordRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.BookingExpiryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryHandler] Invalid payload: %v", err)
			return err
		}

		held, err := pending.Get(ctx, p.UserUID)
		if err != nil {
			log.Printf("[ExpiryHandler] Failed to load pending booking %s: %v", p.BookingID, err)
			return err
		}
		// Already confirmed, cancelled, or superseded by a newer attempt.
		if held == nil || held.BookingID != p.BookingID {
			return nil
		}

		contractor, err := dir.GetUser(ctx, p.ContractorID)
		if err != nil || contractor == nil {
			log.Printf("[ExpiryHandler] Cannot resolve contractor %s for booking %s", p.ContractorID, p.BookingID)
			return err
		}

		envelope, err := nylas.BookingAction(ctx, contractor.Email, p.BookingID, "cancel")
		if err != nil {
			log.Printf("[ExpiryHandler] Cancel call failed for booking %s: %v", p.BookingID, err)
			return err
		}
		if envelope.HasError() {
			log.Printf("[ExpiryHandler] Provider refused cancel for booking %s: %s", p.BookingID, envelope.ErrorMessage())
		}

		if records != nil {
			record := models.BookingRecord{
				BookingID:    held.BookingID,
				UserUID:      held.UserUID,
				ContractorID: held.ContractorID,
				Action:       "expired",
				Duration:     held.Duration,
				StartTime:    held.Timeslot.StartTime,
				EndTime:      held.Timeslot.EndTime,
			}
			if _, err := records.Create(ctx, record); err != nil {
				log.Printf("[ExpiryHandler] Failed to record expiry for booking %s: %v", p.BookingID, err)
			}
		}

		if err := pending.Delete(ctx, p.UserUID); err != nil {
			log.Printf("[ExpiryHandler] Failed to clear pending booking %s: %v", p.BookingID, err)
		}

		log.Printf("[ExpiryHandler] Expired unpaid pre-booking %s", p.BookingID)
		return nil
	}
}

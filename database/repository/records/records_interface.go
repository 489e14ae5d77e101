package recordsRepo

import (
	"context"

	"uprocket/models"
)

// RecordRepository persists one activity row per booking transition.
type RecordRepository interface {
	Create(ctx context.Context, record models.BookingRecord) (string, error)
	GetByBookingID(ctx context.Context, bookingID string) ([]models.BookingRecord, error)
	GetByUserUID(ctx context.Context, uid string) ([]models.BookingRecord, error)
}

package recordsRepo

import (
	"context"
	"time"

	"uprocket/database"
	"uprocket/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoRecordRepo implements RecordRepository using MongoDB.
type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo creates a new RecordRepository backed by MongoDB.
func NewMongoRecordRepo() RecordRepository {
	coll := database.MongoClient.Database("uprocket").Collection("booking_records")
	return &mongoRecordRepo{coll: coll}
}

// Create inserts a new booking activity record and returns its ID.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.BookingRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// GetByBookingID fetches all activity rows for a provider booking id.
func (r *mongoRecordRepo) GetByBookingID(ctx context.Context, bookingID string) ([]models.BookingRecord, error) {
	return r.find(ctx, bson.M{"booking_id": bookingID})
}

// GetByUserUID fetches all activity rows for a user, newest first.
func (r *mongoRecordRepo) GetByUserUID(ctx context.Context, uid string) ([]models.BookingRecord, error) {
	return r.find(ctx, bson.M{"user_uid": uid})
}

func (r *mongoRecordRepo) find(ctx context.Context, filter bson.M) ([]models.BookingRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BookingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

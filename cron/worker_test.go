package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"uprocket/models"
	"uprocket/services/scheduling"
	"uprocket/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePending struct {
	held map[string]models.PendingBooking
}

func (f *fakePending) Save(ctx context.Context, pending models.PendingBooking) error {
	f.held[pending.UserUID] = pending
	return nil
}

func (f *fakePending) Get(ctx context.Context, userUID string) (*models.PendingBooking, error) {
	p, ok := f.held[userUID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakePending) Delete(ctx context.Context, userUID string) error {
	delete(f.held, userUID)
	return nil
}

type fakeDirectory struct {
	users map[string]*models.User
}

func (f *fakeDirectory) ListContractors(ctx context.Context) ([]models.Contractor, error) {
	return nil, nil
}

func (f *fakeDirectory) GetContractorByUID(ctx context.Context, uid string) (*models.Contractor, error) {
	return nil, nil
}

func (f *fakeDirectory) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return f.users[uid], nil
}

func (f *fakeDirectory) SaveUser(ctx context.Context, uid string, user models.User) error {
	user.UID = uid
	f.users[uid] = &user
	return nil
}

func (f *fakeDirectory) EnsureUser(ctx context.Context, uid, name, email, picture string) (*models.User, error) {
	return f.users[uid], nil
}

type fakeNylas struct {
	actions []string
	grants  []string
}

func (f *fakeNylas) CreateSessionToken(ctx context.Context, grantID, configID string, ttlSeconds int) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNylas) GetConfiguration(ctx context.Context, grantID, configID string) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNylas) CreateConfiguration(ctx context.Context, grantID string, cfg models.SchedulingConfig) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNylas) UpdateConfiguration(ctx context.Context, grantID, configID string, cfg models.SchedulingConfig) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNylas) ListCalendars(ctx context.Context, grantID string) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNylas) BookTimeslot(ctx context.Context, sessionID string, slot models.Timeslot, info models.BookingInfo) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNylas) BookingAction(ctx context.Context, grantKey, bookingID, action string) (*scheduling.Envelope, error) {
	f.grants = append(f.grants, grantKey)
	f.actions = append(f.actions, action)
	return &scheduling.Envelope{Data: json.RawMessage(`{"id":"` + bookingID + `"}`)}, nil
}

type fakeRecords struct {
	created []models.BookingRecord
}

func (f *fakeRecords) Create(ctx context.Context, record models.BookingRecord) (string, error) {
	f.created = append(f.created, record)
	return "rec-1", nil
}

func (f *fakeRecords) GetByBookingID(ctx context.Context, bookingID string) ([]models.BookingRecord, error) {
	return nil, nil
}

func (f *fakeRecords) GetByUserUID(ctx context.Context, uid string) ([]models.BookingRecord, error) {
	return nil, nil
}

func expiryTask(t *testing.T, payload tasks.BookingExpiryPayload) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypeBookingExpire, b)
}

func TestExpirySweepCancelsUnpaidPreBooking(t *testing.T) {
	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	pending := &fakePending{held: map[string]models.PendingBooking{
		"u1": {
			BookingID:    "bk-1",
			UserUID:      "u1",
			ContractorID: "c1",
			Duration:     30,
			Timeslot:     models.Timeslot{StartTime: start, EndTime: start.Add(30 * time.Minute)},
		},
	}}
	dir := &fakeDirectory{users: map[string]*models.User{
		"c1": {UID: "c1", Email: "c1@example.com"},
	}}
	nylas := &fakeNylas{}
	records := &fakeRecords{}

	handler := handleExpiryTask(pending, dir, nylas, records)
	task := expiryTask(t, tasks.BookingExpiryPayload{BookingID: "bk-1", UserUID: "u1", ContractorID: "c1"})

	require.NoError(t, handler(context.Background(), task))

	require.Len(t, nylas.actions, 1)
	assert.Equal(t, "cancel", nylas.actions[0])
	assert.Equal(t, "c1@example.com", nylas.grants[0])

	assert.Empty(t, pending.held)
	require.Len(t, records.created, 1)
	assert.Equal(t, "expired", records.created[0].Action)
	assert.Equal(t, "bk-1", records.created[0].BookingID)
}

func TestExpirySweepSkipsConfirmedBooking(t *testing.T) {
	// Pending was already cleared by the post-payment confirm.
	pending := &fakePending{held: map[string]models.PendingBooking{}}
	nylas := &fakeNylas{}

	handler := handleExpiryTask(pending, &fakeDirectory{users: map[string]*models.User{}}, nylas, &fakeRecords{})
	task := expiryTask(t, tasks.BookingExpiryPayload{BookingID: "bk-1", UserUID: "u1", ContractorID: "c1"})

	require.NoError(t, handler(context.Background(), task))
	assert.Empty(t, nylas.actions)
}

func TestExpirySweepSkipsSupersededBooking(t *testing.T) {
	// The user started a newer attempt; only the held booking id counts.
	pending := &fakePending{held: map[string]models.PendingBooking{
		"u1": {BookingID: "bk-2", UserUID: "u1", ContractorID: "c1"},
	}}
	nylas := &fakeNylas{}

	handler := handleExpiryTask(pending, &fakeDirectory{users: map[string]*models.User{}}, nylas, &fakeRecords{})
	task := expiryTask(t, tasks.BookingExpiryPayload{BookingID: "bk-1", UserUID: "u1", ContractorID: "c1"})

	require.NoError(t, handler(context.Background(), task))
	assert.Empty(t, nylas.actions)
	assert.Contains(t, pending.held, "u1")
}

func TestExpirySweepRejectsMalformedPayload(t *testing.T) {
	handler := handleExpiryTask(&fakePending{held: map[string]models.PendingBooking{}},
		&fakeDirectory{users: map[string]*models.User{}}, &fakeNylas{}, &fakeRecords{})

	err := handler(context.Background(), asynq.NewTask(tasks.TypeBookingExpire, []byte("not json")))
	assert.Error(t, err)
}

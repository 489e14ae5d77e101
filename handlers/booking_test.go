// File: handlers/booking_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"uprocket/middleware"
	"uprocket/models"
	"uprocket/services/booking"
	"uprocket/services/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeDirectory serves canned user records.
type fakeDirectory struct {
	users map[string]*models.User
}

func (f *fakeDirectory) ListContractors(ctx context.Context) ([]models.Contractor, error) {
	out := []models.Contractor{}
	for _, u := range f.users {
		if u.LookingForWork {
			out = append(out, u.Contractor())
		}
	}
	return out, nil
}

func (f *fakeDirectory) GetContractorByUID(ctx context.Context, uid string) (*models.Contractor, error) {
	u := f.users[uid]
	if u == nil || !u.LookingForWork {
		return nil, nil
	}
	c := u.Contractor()
	return &c, nil
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
	if u := f.users[uid]; u != nil {
		return u, nil
	}
	fresh := models.NewDefaultUser(uid, name, email, picture)
	f.users[uid] = &fresh
	return &fresh, nil
}

// fakeOrchestrator records the user it was handed and serves one outcome.
type fakeOrchestrator struct {
	outcome  *booking.Outcome
	err      error
	sawUser  *models.User
	sawCalls int
}

func (f *fakeOrchestrator) ConfirmTimeslot(ctx context.Context, user *models.User, req booking.ConfirmRequest) (*booking.Outcome, error) {
	f.sawUser = user
	f.sawCalls++
	return f.outcome, f.err
}

// fakePending is an in-memory pending booking store.
type fakePending struct {
	held map[string]models.PendingBooking
}

func newFakePending() *fakePending {
	return &fakePending{held: map[string]models.PendingBooking{}}
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

// fakeRecords collects created booking records.
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
	out := []models.BookingRecord{}
	for _, r := range f.created {
		if r.UserUID == uid {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeActionNylas records booking actions; other calls are unused here.
type fakeActionNylas struct {
	actions  []string
	grants   []string
	envelope *scheduling.Envelope
	err      error
}

func (f *fakeActionNylas) CreateSessionToken(ctx context.Context, grantID, configID string, ttlSeconds int) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeActionNylas) GetConfiguration(ctx context.Context, grantID, configID string) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeActionNylas) CreateConfiguration(ctx context.Context, grantID string, cfg models.SchedulingConfig) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeActionNylas) UpdateConfiguration(ctx context.Context, grantID, configID string, cfg models.SchedulingConfig) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeActionNylas) ListCalendars(ctx context.Context, grantID string) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeActionNylas) BookTimeslot(ctx context.Context, sessionID string, slot models.Timeslot, info models.BookingInfo) (*scheduling.Envelope, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeActionNylas) BookingAction(ctx context.Context, grantKey, bookingID, action string) (*scheduling.Envelope, error) {
	f.grants = append(f.grants, grantKey)
	f.actions = append(f.actions, action)
	if f.err != nil {
		return nil, f.err
	}
	if f.envelope != nil {
		return f.envelope, nil
	}
	return &scheduling.Envelope{Data: json.RawMessage(`{"id":"` + bookingID + `"}`)}, nil
}

// asUser injects an authenticated uid the way SessionAuthMiddleware would.
func asUser(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid != "" {
			c.Set(middleware.CtxUserUID, uid)
		}
		c.Next()
	}
}

type bookingFixture struct {
	handler   *BookingHandler
	directory *fakeDirectory
	orch      *fakeOrchestrator
	pending   *fakePending
	nylas     *fakeActionNylas
	records   *fakeRecords
}

func newBookingFixture(users ...*models.User) *bookingFixture {
	dir := &fakeDirectory{users: map[string]*models.User{}}
	for _, u := range users {
		dir.users[u.UID] = u
	}
	orch := &fakeOrchestrator{outcome: &booking.Outcome{State: booking.StateAwaitingCheckout}}
	pending := newFakePending()
	nylas := &fakeActionNylas{}
	records := &fakeRecords{}
	h := NewBookingHandler(dir, orch, pending, nylas, records, zap.NewNop())
	return &bookingFixture{handler: h, directory: dir, orch: orch, pending: pending, nylas: nylas, records: records}
}

func (fx *bookingFixture) router(uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/booking", asUser(uid), fx.handler.ConfirmTimeslotHandler)
	r.POST("/api/booking/:bookingId/confirm", asUser(uid), fx.handler.ConfirmBookingHandler)
	r.POST("/api/booking/:bookingId/cancel", asUser(uid), fx.handler.CancelBookingHandler)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func confirmBody() string {
	return `{
		"contractor_id": "c1",
		"duration": 30,
		"session_id": "sess-1",
		"timeslot": {"start_time": "2026-03-10T15:00:00Z", "end_time": "2026-03-10T15:30:00Z"}
	}`
}

func TestConfirmTimeslotMissingBody(t *testing.T) {
	fx := newBookingFixture()
	r := fx.router("")

	w := postJSON(t, r, "/api/booking", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Missing booking data"}`, w.Body.String())
	assert.Zero(t, fx.orch.sawCalls)
}

func TestConfirmTimeslotAnonymousPassesNilUser(t *testing.T) {
	fx := newBookingFixture()
	fx.orch.outcome = &booking.Outcome{
		State:      booking.StateRedirectLogin,
		RedirectTo: "/login?redirect=/contractor/c1",
	}
	r := fx.router("")

	w := postJSON(t, r, "/api/booking", confirmBody())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fx.orch.sawCalls)
	assert.Nil(t, fx.orch.sawUser)

	var outcome booking.Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, booking.StateRedirectLogin, outcome.State)
}

func TestConfirmTimeslotResolvesActingUser(t *testing.T) {
	fx := newBookingFixture(&models.User{UID: "u1", Name: "Ada", Email: "ada@example.com"})
	r := fx.router("u1")

	w := postJSON(t, r, "/api/booking", confirmBody())
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, fx.orch.sawUser)
	assert.Equal(t, "u1", fx.orch.sawUser.UID)
}

func TestBookingActionMissingContractorID(t *testing.T) {
	fx := newBookingFixture()
	r := fx.router("u1")

	w := postJSON(t, r, "/api/booking/bk-1/confirm", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Please provide contractor id"}`, w.Body.String())
	assert.Empty(t, fx.nylas.actions)
}

func TestBookingActionUnknownContractor(t *testing.T) {
	fx := newBookingFixture()
	r := fx.router("u1")

	w := postJSON(t, r, "/api/booking/bk-1/confirm", `{"contractorId":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid contractor id"}`, w.Body.String())
}

func TestBookingActionContractorNotLooking(t *testing.T) {
	fx := newBookingFixture(&models.User{UID: "c1", LookingForWork: false, ConfigID: "cfg-30"})
	r := fx.router("u1")

	w := postJSON(t, r, "/api/booking/bk-1/confirm", `{"contractorId":"c1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Contractor is not looking for work"}`, w.Body.String())
}

func TestBookingActionContractorMissingConfig(t *testing.T) {
	fx := newBookingFixture(&models.User{UID: "c1", LookingForWork: true})
	r := fx.router("u1")

	w := postJSON(t, r, "/api/booking/bk-1/confirm", `{"contractorId":"c1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Contractor has not completed their profile"}`, w.Body.String())
}

func TestBookingActionTransportFailure(t *testing.T) {
	fx := newBookingFixture(&models.User{
		UID: "c1", Email: "c1@example.com", LookingForWork: true, ConfigID: "cfg-30",
	})
	fx.nylas.err = errors.New("connection reset")
	r := fx.router("u1")

	w := postJSON(t, r, "/api/booking/bk-1/confirm", `{"contractorId":"c1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid session data"}`, w.Body.String())
}

func TestConfirmBookingForwardsActionKeyedByEmail(t *testing.T) {
	fx := newBookingFixture(&models.User{
		UID: "c1", Email: "c1@example.com", LookingForWork: true, ConfigID: "cfg-30",
	})
	r := fx.router("u1")

	w := postJSON(t, r, "/api/booking/bk-1/confirm", `{"contractorId":"c1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, fx.nylas.actions, 1)
	assert.Equal(t, "confirm", fx.nylas.actions[0])
	assert.Equal(t, "c1@example.com", fx.nylas.grants[0])
	assert.JSONEq(t, `{"data":{"id":"bk-1"}}`, w.Body.String())
}

func TestCancelBookingForwardsCancel(t *testing.T) {
	fx := newBookingFixture(&models.User{
		UID: "c1", Email: "c1@example.com", LookingForWork: true, ConfigID: "cfg-30",
	})
	r := fx.router("u1")

	w := postJSON(t, r, "/api/booking/bk-1/cancel", `{"contractorId":"c1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, fx.nylas.actions, 1)
	assert.Equal(t, "cancel", fx.nylas.actions[0])
}

func TestConfirmBookingClearsMatchingPending(t *testing.T) {
	fx := newBookingFixture(&models.User{
		UID: "c1", Email: "c1@example.com", LookingForWork: true, ConfigID: "cfg-30",
	})
	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	fx.pending.held["u1"] = models.PendingBooking{
		BookingID:    "bk-1",
		UserUID:      "u1",
		ContractorID: "c1",
		Duration:     30,
		Timeslot:     models.Timeslot{StartTime: start, EndTime: start.Add(30 * time.Minute)},
	}
	r := fx.router("u1")

	w := postJSON(t, r, "/api/booking/bk-1/confirm", `{"contractorId":"c1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, fx.pending.held)
	require.Len(t, fx.records.created, 1)
	rec := fx.records.created[0]
	assert.Equal(t, "confirmed", rec.Action)
	assert.Equal(t, "bk-1", rec.BookingID)
	assert.Equal(t, 30, rec.Duration)
}

func TestConfirmBookingLeavesUnrelatedPending(t *testing.T) {
	fx := newBookingFixture(&models.User{
		UID: "c1", Email: "c1@example.com", LookingForWork: true, ConfigID: "cfg-30",
	})
	// A newer attempt superseded the booking being confirmed.
	fx.pending.held["u1"] = models.PendingBooking{BookingID: "bk-2", UserUID: "u1"}
	r := fx.router("u1")

	w := postJSON(t, r, "/api/booking/bk-1/confirm", `{"contractorId":"c1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, fx.pending.held, "u1")
}

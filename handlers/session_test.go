// File: handlers/session_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"uprocket/services/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// fakeIssuer serves one canned result.
type fakeIssuer struct {
	envelope *scheduling.Envelope
	err      error
}

func (f *fakeIssuer) CreateSession(ctx context.Context, contractorID string, durationMinutes int) (*scheduling.Envelope, error) {
	return f.envelope, f.err
}

func newSessionRouter(issuer scheduling.SessionIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSessionHandler(issuer)
	r.POST("/api/session", h.CreateSessionHandler)
	return r
}

func postSession(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/session", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSessionMissingBody(t *testing.T) {
	r := newSessionRouter(&fakeIssuer{})

	w := postSession(t, r, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Missing session data"}`, w.Body.String())
}

func TestCreateSessionInvalidContractor(t *testing.T) {
	r := newSessionRouter(&fakeIssuer{err: scheduling.ErrInvalidContractor})

	w := postSession(t, r, `{"contractor_id":"nope","duration":30}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid contractor id"}`, w.Body.String())
}

func TestCreateSessionNotLookingForWork(t *testing.T) {
	r := newSessionRouter(&fakeIssuer{err: scheduling.ErrNotAcceptingWork})

	w := postSession(t, r, `{"contractor_id":"c1","duration":30}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Contractor is not looking for work"}`, w.Body.String())
}

func TestCreateSessionIncompleteProfile(t *testing.T) {
	r := newSessionRouter(&fakeIssuer{err: scheduling.IncompleteProfileError{Duration: 60}})

	w := postSession(t, r, `{"contractor_id":"c1","duration":60}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"contractor has not completed their profile for 60 minutes"}`, w.Body.String())
}

func TestCreateSessionUnexpectedError(t *testing.T) {
	r := newSessionRouter(&fakeIssuer{err: context.DeadlineExceeded})

	w := postSession(t, r, `{"contractor_id":"c1","duration":30}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid session data"}`, w.Body.String())
}

func TestCreateSessionPassthrough(t *testing.T) {
	envelope := &scheduling.Envelope{Data: json.RawMessage(`{"session_id":"sess-1"}`)}
	r := newSessionRouter(&fakeIssuer{envelope: envelope})

	w := postSession(t, r, `{"contractor_id":"c1","duration":30}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"session_id":"sess-1"}}`, w.Body.String())
}

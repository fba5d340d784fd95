package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parkslot/handlers"
	"parkslot/models"
	"parkslot/services/booking"
	"parkslot/services/wizard"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSessionSvc struct {
	booking.BookingSessionService

	view     *booking.SessionView
	err      error
	areas    []models.Area
	areasErr error

	gotUser     string
	gotSession  string
	gotSchedule booking.ScheduleRequest
}

func (s *stubSessionSvc) StartSession(_ context.Context, userID string) (*booking.SessionView, error) {
	s.gotUser = userID
	return s.view, s.err
}

func (s *stubSessionSvc) GetSession(_ context.Context, userID, sessionID string) (*booking.SessionView, error) {
	s.gotUser, s.gotSession = userID, sessionID
	return s.view, s.err
}

func (s *stubSessionSvc) SelectSchedule(_ context.Context, userID, sessionID string, req booking.ScheduleRequest) (*booking.SessionView, error) {
	s.gotUser, s.gotSession, s.gotSchedule = userID, sessionID, req
	return s.view, s.err
}

func (s *stubSessionSvc) Next(_ context.Context, userID, sessionID string) (*booking.SessionView, error) {
	s.gotUser, s.gotSession = userID, sessionID
	return s.view, s.err
}

func (s *stubSessionSvc) Submit(_ context.Context, userID, sessionID string) (*booking.SessionView, error) {
	s.gotUser, s.gotSession = userID, sessionID
	return s.view, s.err
}

func (s *stubSessionSvc) ListAreas(context.Context) ([]models.Area, error) {
	return s.areas, s.areasErr
}

type stubHistorySvc struct {
	active    []models.Booking
	past      []models.PastBooking
	err       error
	cancelled *models.PastBooking
}

func (s *stubHistorySvc) ListActive(context.Context, string) ([]models.Booking, error) {
	return s.active, s.err
}

func (s *stubHistorySvc) ListPast(_ context.Context, _, status string) ([]models.PastBooking, error) {
	if status == "bogus" {
		return nil, booking.ErrInvalidStatusFilter
	}
	return s.past, s.err
}

func (s *stubHistorySvc) CancelBooking(context.Context, string) (*models.PastBooking, error) {
	return s.cancelled, s.err
}

func newRouter(ss *stubSessionSvc, hs *stubHistorySvc) *gin.Engine {
	auth := func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Next()
	}
	hb := handlers.NewHandlerBundle(auth, handlers.NewBookingHandler(ss), handlers.NewHistoryHandler(hs))
	r := gin.New()
	RegisterRoutes(r, hb)
	return r
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestStartSession(t *testing.T) {
	ss := &stubSessionSvc{view: &booking.SessionView{SessionID: "sess-1", Step: 1, StepName: "area"}}
	w, body := do(newRouter(ss, &stubHistorySvc{}), http.MethodPost, "/api/booking/session", "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "sess-1", body["sessionId"])
	assert.Equal(t, "user-1", ss.gotUser)
}

func TestGetSession_NotFound(t *testing.T) {
	ss := &stubSessionSvc{err: booking.ErrSessionNotFound}
	w, _ := do(newRouter(ss, &stubHistorySvc{}), http.MethodGet, "/api/booking/session/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "missing", ss.gotSession)
}

func TestSelectSchedule_ParsesTimes(t *testing.T) {
	ss := &stubSessionSvc{view: &booking.SessionView{SessionID: "sess-1", Step: 3}}
	w, _ := do(newRouter(ss, &stubHistorySvc{}), http.MethodPut, "/api/booking/session/sess-1/schedule",
		`{"bookingType":"reserve","entryTime":"2025-03-06T10:00:00Z","exitTime":"2025-03-06T11:00:00Z"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, ss.gotSchedule.EntryTime)
	require.NotNil(t, ss.gotSchedule.ExitTime)
	assert.Equal(t, models.BookingReserve, ss.gotSchedule.BookingType)
	assert.True(t, ss.gotSchedule.ExitTime.Sub(*ss.gotSchedule.EntryTime) == time.Hour)
}

func TestSelectSchedule_BadBody(t *testing.T) {
	w, _ := do(newRouter(&stubSessionSvc{}, &stubHistorySvc{}), http.MethodPut, "/api/booking/session/sess-1/schedule", `{"entryTime":"tomorrow"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNext_ValidationCarriesSession(t *testing.T) {
	ss := &stubSessionSvc{
		view: &booking.SessionView{SessionID: "sess-1", Step: 1},
		err:  &wizard.ValidationError{Step: wizard.StepArea, Fields: []wizard.Field{wizard.FieldArea}},
	}
	w, body := do(newRouter(ss, &stubHistorySvc{}), http.MethodPost, "/api/booking/session/sess-1/next", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, map[string]interface{}{"areaId": "Please select a parking area"}, body["fields"])
	assert.NotNil(t, body["session"])
}

func TestNext_IllegalTransition(t *testing.T) {
	ss := &stubSessionSvc{err: wizard.ErrIllegalTransition}
	w, _ := do(newRouter(ss, &stubHistorySvc{}), http.MethodPost, "/api/booking/session/sess-1/next", "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmit_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"gateway failure", &booking.SubmitError{Step: booking.StepCreateBooking, Err: errors.New("insert failed")}, http.StatusBadGateway},
		{"in flight", booking.ErrSubmitInFlight, http.StatusConflict},
		{"missing details", &wizard.ValidationError{Step: wizard.StepConfirm, Fields: []wizard.Field{wizard.FieldCustomerName}}, http.StatusUnprocessableEntity},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(newRouter(&stubSessionSvc{err: tt.err}, &stubHistorySvc{}), http.MethodPost, "/api/booking/session/sess-1/submit", "")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSubmit_Success(t *testing.T) {
	ss := &stubSessionSvc{view: &booking.SessionView{SessionID: "sess-1", Step: 6, StepName: "submitted", BookingID: "B1"}}
	w, body := do(newRouter(ss, &stubHistorySvc{}), http.MethodPost, "/api/booking/session/sess-1/submit", "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "B1", body["bookingId"])
}

func TestListAreas(t *testing.T) {
	w, body := do(newRouter(&stubSessionSvc{areasErr: errors.New("down")}, &stubHistorySvc{}), http.MethodGet, "/api/areas", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, body["areas"])
	assert.Equal(t, "Failed to load parking areas", body["message"])

	w, body = do(newRouter(&stubSessionSvc{areas: []models.Area{}}, &stubHistorySvc{}), http.MethodGet, "/api/areas", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No parking areas available", body["emptyMessage"])
}

func TestQuote(t *testing.T) {
	r := newRouter(&stubSessionSvc{}, &stubHistorySvc{})

	w, body := do(r, http.MethodGet, "/api/quote?entry=2025-03-05T09:00:00Z&count=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	options, ok := body["options"].([]interface{})
	require.True(t, ok)
	require.Len(t, options, 2)
	first := options[0].(map[string]interface{})
	assert.Equal(t, float64(50), first["price"])
	assert.Equal(t, "Mar 05, 2025 03:00 PM IST", first["display"])
	assert.Equal(t, "₹100", options[1].(map[string]interface{})["priceDisplay"])

	w, body = do(r, http.MethodGet, "/api/quote?entry=2025-03-05T09:00:00Z", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["options"], 12)

	w, _ = do(r, http.MethodGet, "/api/quote?entry=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(r, http.MethodGet, "/api/quote?entry=2025-03-05T09:00:00Z&count=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryRoutes(t *testing.T) {
	hs := &stubHistorySvc{active: []models.Booking{}}
	r := newRouter(&stubSessionSvc{}, hs)

	w, body := do(r, http.MethodGet, "/api/bookings/active?q=ka01", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No active bookings", body["emptyMessage"])

	w, _ = do(r, http.MethodGet, "/api/bookings/past?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	hs.err = errors.New("down")
	w, body = do(r, http.MethodGet, "/api/bookings/past", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Failed to load bookings", body["message"])
}

func TestCancelBookingRoute(t *testing.T) {
	w, _ := do(newRouter(&stubSessionSvc{}, &stubHistorySvc{err: booking.ErrNotCancellable}), http.MethodPost, "/api/bookings/B2/cancel", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = do(newRouter(&stubSessionSvc{}, &stubHistorySvc{err: booking.ErrBookingNotFound}), http.MethodPost, "/api/bookings/nope/cancel", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	past := &models.PastBooking{ID: "P1", BookingID: "B1", Status: models.BookingStatusCancelled}
	w, body := do(newRouter(&stubSessionSvc{}, &stubHistorySvc{cancelled: past}), http.MethodPost, "/api/bookings/B1/cancel", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Booking cancelled", body["message"])
}

func TestAPIRequiresAuth(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	hb := handlers.NewHandlerBundle(deny, handlers.NewBookingHandler(&stubSessionSvc{}), handlers.NewHistoryHandler(&stubHistorySvc{}))
	r := gin.New()
	RegisterRoutes(r, hb)

	w, _ := do(r, http.MethodGet, "/api/areas", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

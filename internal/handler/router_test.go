package handler

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookiteasy/internal/middleware"
	"bookiteasy/internal/model"
	"bookiteasy/internal/repository"
	"bookiteasy/internal/service"
	"bookiteasy/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the full API against in-memory stores, the way the
// server does when no database is configured.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserStore(repository.SeedUsers())
	appts := repository.NewMemoryAppointmentStore(repository.SeedAppointments())
	flash := repository.NewMemoryFlashStore()
	catalog := repository.NewServiceCatalog()
	tokens := utils.NewDemoTokenIssuer()

	authService := service.NewAuthService(users, appts, flash, tokens, nil)
	availabilityService := service.NewAvailabilityService(appts, rand.New(rand.NewSource(1)))
	bookingService := service.NewBookingService(appts, flash, catalog, nil)
	appointmentService := service.NewAppointmentService(appts, flash)

	authMW := middleware.AuthMiddleware(tokens, users)
	noopMW := func(c *gin.Context) { c.Next() }

	r := gin.New()
	api := r.Group("/api")
	NewAuthHandler(authService).RegisterAuthRoutes(api, authMW, noopMW)
	NewServiceHandler(catalog, availabilityService).RegisterServiceRoutes(api)
	NewAppointmentHandler(bookingService, appointmentService).RegisterAppointmentRoutes(api, authMW)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestLoginEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "john@example.com", Password: "anything"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "demo_token_1", resp.Token)
	assert.Equal(t, "John Doe", resp.User.Name)
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestLoginEndpoint_MissingFields(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "john@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Name: "Sam Carter", Email: "sam@example.com", Password: "secret1", ConfirmPassword: "secret1",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	decode(t, w, &resp)
	assert.NotEmpty(t, resp.Token)

	me := doJSON(t, r, http.MethodGet, "/api/auth/me", resp.Token, nil)
	require.Equal(t, http.StatusOK, me.Code)
	var current model.User
	decode(t, me, &current)
	assert.Equal(t, "sam@example.com", current.Email)
}

func TestRegisterEndpoint_PasswordMismatch(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Name: "Sam", Email: "sam@example.com", Password: "secret1", ConfirmPassword: "secret2",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/appointments"},
		{http.MethodPost, "/api/appointments"},
		{http.MethodGet, "/api/appointments/flash"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/logout"},
	} {
		w := doJSON(t, r, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}

	w := doJSON(t, r, http.MethodGet, "/api/appointments", "demo_token_999", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "token for a missing user must not pass")
}

func TestServicesEndpointIsPublic(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/services?category=hair", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var services []model.Service
	decode(t, w, &services)
	require.Len(t, services, 1)
	assert.Equal(t, "haircut", services[0].ID)
}

func TestAvailabilityEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/services/haircut/availability?start=2026-09-01", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var window []model.Day
	decode(t, w, &window)
	require.Len(t, window, AvailabilityWindowDays)
	assert.Equal(t, "2026-09-01", window[0].Date)

	bad := doJSON(t, r, http.MethodGet, "/api/services/haircut/availability?start=tomorrow", "", nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestBookingFlow(t *testing.T) {
	r := newTestRouter(t)
	token := "demo_token_1"

	w := doJSON(t, r, http.MethodPost, "/api/appointments", token, model.BookingRequest{
		ServiceID: "massage", StaffID: "staff2", Date: "2026-09-10", Time: "11:30",
		FirstName: "Sam", LastName: "Carter", Email: "sam@example.com", Phone: "555-0100",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var appt model.Appointment
	decode(t, w, &appt)
	assert.Equal(t, "Therapeutic Massage", appt.Service)
	assert.Equal(t, "Jamie Smith", appt.Staff)
	assert.Equal(t, model.StatusUpcoming, appt.Status)

	list := doJSON(t, r, http.MethodGet, "/api/appointments?status=upcoming", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	var upcoming []model.Appointment
	decode(t, list, &upcoming)
	require.Len(t, upcoming, 3)
	assert.Equal(t, appt.ID, upcoming[2].ID)

	// The confirmation reads exactly once.
	flash := doJSON(t, r, http.MethodGet, "/api/appointments/flash", token, nil)
	require.Equal(t, http.StatusOK, flash.Code)
	var success model.BookingSuccess
	decode(t, flash, &success)
	assert.Equal(t, appt.ID, success.AppointmentID)

	empty := doJSON(t, r, http.MethodGet, "/api/appointments/flash", token, nil)
	assert.Equal(t, http.StatusNoContent, empty.Code)
}

func TestBookingValidationErrors(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/appointments", "demo_token_1", model.BookingRequest{
		ServiceID: "massage", Date: "2026-09-10", Time: "11:30",
		FirstName: "Sam", LastName: "Carter", Email: "not-an-email", Phone: "555-0100",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Please enter a valid email", resp.Errors["email"])
}

func TestCancelEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token := "demo_token_1"

	w := doJSON(t, r, http.MethodPost, "/api/appointments/apt1/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var appt model.Appointment
	decode(t, w, &appt)
	assert.Equal(t, model.StatusCancelled, appt.Status)

	again := doJSON(t, r, http.MethodPost, "/api/appointments/apt1/cancel", token, nil)
	assert.Equal(t, http.StatusConflict, again.Code)

	missing := doJSON(t, r, http.MethodPost, "/api/appointments/apt999/cancel", token, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestRescheduleEndpoint(t *testing.T) {
	r := newTestRouter(t)
	token := "demo_token_1"

	w := doJSON(t, r, http.MethodPost, "/api/appointments/apt1/reschedule", token,
		model.RescheduleRequest{Date: "2025-05-02", Time: "15:30"})

	require.Equal(t, http.StatusOK, w.Code)
	var appt model.Appointment
	decode(t, w, &appt)
	assert.Equal(t, "2025-05-02", appt.Date)
	assert.Equal(t, "15:30", appt.Time)

	noSlot := doJSON(t, r, http.MethodPost, "/api/appointments/apt1/reschedule", token,
		model.RescheduleRequest{Date: "2025-05-02"})
	assert.Equal(t, http.StatusBadRequest, noSlot.Code)

	missing := doJSON(t, r, http.MethodPost, "/api/appointments/apt999/reschedule", token,
		model.RescheduleRequest{Date: "2025-05-02", Time: "15:30"})
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestListEndpoint_InvalidStatus(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/appointments?status=pending", "demo_token_1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutEndpoint_ClearsUserAddedAppointments(t *testing.T) {
	r := newTestRouter(t)
	token := "demo_token_1"

	created := doJSON(t, r, http.MethodPost, "/api/appointments", token, model.BookingRequest{
		ServiceID: "haircut", Date: "2026-09-10", Time: "09:00",
		FirstName: "Sam", LastName: "Carter", Email: "sam@example.com", Phone: "555-0100",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	out := doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, out.Code)

	list := doJSON(t, r, http.MethodGet, "/api/appointments", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	var all []model.Appointment
	decode(t, list, &all)
	assert.Len(t, all, len(repository.SeedAppointments()), "logout keeps only the demo records")

	flash := doJSON(t, r, http.MethodGet, "/api/appointments/flash", token, nil)
	assert.Equal(t, http.StatusNoContent, flash.Code, "logout discards any pending confirmation")
}

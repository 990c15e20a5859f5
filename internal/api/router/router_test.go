package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoshop/internal/auth"
	"autoshop/internal/cache"
	"autoshop/internal/core/repository"
	"autoshop/internal/core/service"
)

type testServer struct {
	handler http.Handler
	tokens  *auth.TokenManager
}

func newTestServer() *testServer {
	userRepo := repository.NewInMemoryUserRepository()
	vehicleRepo := repository.NewInMemoryVehicleRepository()
	recordRepo := repository.NewInMemoryServiceRecordRepository()

	tokens := auth.NewTokenManager("test-secret", time.Hour)

	authService := service.NewAuthService(userRepo, tokens)
	vehicleService := service.NewVehicleService(vehicleRepo)
	recordService := service.NewRecordService(recordRepo, vehicleRepo, userRepo, cache.New(""))

	return &testServer{
		handler: NewRouter(authService, vehicleService, recordService, tokens),
		tokens:  tokens,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec, decoded
}

func (s *testServer) register(t *testing.T, name, email, password string) string {
	t.Helper()
	rec, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	token, err := s.tokens.Issue("admin-1", "Admin", true)
	require.NoError(t, err)
	return token
}

func TestHealthNeedsNoAuth(t *testing.T) {
	s := newTestServer()

	rec, body := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterAndLoginScenario(t *testing.T) {
	s := newTestServer()

	s.register(t, "Alice", "a@x.com", "secret1")

	rec, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid Credentials", body["msg"])

	rec, body = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["token"])
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer()

	rec, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, errs, 3)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestServer()

	s.register(t, "Alice", "a@x.com", "secret1")

	rec, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Alice Again", "email": "A@X.com", "password": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", body["msg"])
}

func TestVehicleLifecycle(t *testing.T) {
	s := newTestServer()
	alice := s.register(t, "Alice", "a@x.com", "secret1")
	bob := s.register(t, "Bob", "b@x.com", "secret2")

	// Unauthenticated create is rejected.
	rec, _ := s.do(t, http.MethodPost, "/api/vehicles", "", map[string]interface{}{
		"make": "Toyota", "model": "Corolla", "year": 2020, "licensePlate": "abc-123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := s.do(t, http.MethodPost, "/api/vehicles", alice, map[string]interface{}{
		"make": "Toyota", "model": "Corolla", "year": 2020, "licensePlate": "abc-123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	vehicle := body["vehicle"].(map[string]interface{})
	assert.Equal(t, "ABC-123", vehicle["licensePlate"])
	vehicleID := vehicle["id"].(string)

	// Duplicate plate for the same user, regardless of case.
	rec, body = s.do(t, http.MethodPost, "/api/vehicles", alice, map[string]interface{}{
		"make": "Honda", "model": "Civic", "year": 2021, "licensePlate": "ABC-123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Vehicle with this license plate already exists", body["msg"])

	// Bob deleting Alice's vehicle gets 404, never 403.
	rec, body = s.do(t, http.MethodDelete, "/api/vehicles/"+vehicleID, bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Vehicle not found", body["msg"])

	// The row is still there for Alice.
	rec, _ = s.do(t, http.MethodGet, "/api/vehicles", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var vehicles []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vehicles))
	assert.Len(t, vehicles, 1)

	rec, _ = s.do(t, http.MethodDelete, "/api/vehicles/"+vehicleID, alice, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServiceBookingScenario(t *testing.T) {
	s := newTestServer()
	alice := s.register(t, "Alice", "a@x.com", "secret1")
	bob := s.register(t, "Bob", "b@x.com", "secret2")

	rec, body := s.do(t, http.MethodPost, "/api/vehicles", alice, map[string]interface{}{
		"make": "Toyota", "model": "Corolla", "year": 2020, "licensePlate": "ABC-123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	vehicleID := body["vehicle"].(map[string]interface{})["id"].(string)

	// Booking against someone else's vehicle.
	rec, body = s.do(t, http.MethodPost, "/api/services", bob, map[string]interface{}{
		"vehicleId": vehicleID, "date": "2026-08-01", "type": "Oil Change",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Vehicle not found or does not belong to user", body["msg"])

	rec, body = s.do(t, http.MethodPost, "/api/services", alice, map[string]interface{}{
		"vehicleId": vehicleID, "date": "2026-08-01", "type": "Oil Change",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	booked := body["service"].(map[string]interface{})
	assert.Equal(t, "Oil Change", booked["status"])
	assert.Equal(t, "Alice", booked["customerName"])
	serviceID := booked["id"].(string)

	// Admin mutations are gated on the role flag.
	rec, _ = s.do(t, http.MethodPatch, "/api/services/"+serviceID+"/status", alice, map[string]string{
		"status": "In Progress",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := s.adminToken(t)

	rec, body = s.do(t, http.MethodPatch, "/api/services/no-such-id/status", admin, map[string]string{
		"status": "In Progress",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Service not found", body["msg"])

	rec, body = s.do(t, http.MethodPatch, "/api/services/"+serviceID+"/status", admin, map[string]string{
		"status": "In Progress",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := body["service"].(map[string]interface{})
	assert.Equal(t, "In Progress", updated["status"])
	assert.Equal(t, "Alice", updated["customerName"])

	// Partial update: only the sent field changes.
	rec, body = s.do(t, http.MethodPut, "/api/services/"+serviceID, admin, map[string]interface{}{
		"totalBill": 120.5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated = body["service"].(map[string]interface{})
	assert.Equal(t, 120.5, updated["totalBill"])
	assert.Equal(t, "In Progress", updated["status"])

	rec, _ = s.do(t, http.MethodDelete, "/api/services/"+serviceID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/services/"+serviceID, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServiceListingScopes(t *testing.T) {
	s := newTestServer()
	alice := s.register(t, "Alice", "a@x.com", "secret1")
	bob := s.register(t, "Bob", "b@x.com", "secret2")
	admin := s.adminToken(t)

	bookFor := func(token, plate string) string {
		rec, body := s.do(t, http.MethodPost, "/api/vehicles", token, map[string]interface{}{
			"make": "Toyota", "model": "Corolla", "year": 2020, "licensePlate": plate,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		vehicleID := body["vehicle"].(map[string]interface{})["id"].(string)

		rec, body = s.do(t, http.MethodPost, "/api/services", token, map[string]interface{}{
			"vehicleId": vehicleID, "date": "2026-08-01",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		return body["service"].(map[string]interface{})["id"].(string)
	}

	bookFor(alice, "AAA-111")
	bobService := bookFor(bob, "BBB-222")

	_, body := s.do(t, http.MethodPatch, "/api/services/"+bobService+"/status", admin, map[string]string{
		"status": "Picked Up",
	})
	require.Equal(t, "Status updated", body["msg"])

	list := func(token, query string) []map[string]interface{} {
		rec, _ := s.do(t, http.MethodGet, "/api/services"+query, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var records []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		return records
	}

	// Non-admin only ever sees their own records.
	for _, query := range []string{"", "?includePickedUp=true"} {
		records := list(alice, query)
		require.Len(t, records, 1, fmt.Sprintf("query %q", query))
		assert.Equal(t, "AAA-111", records[0]["licensePlate"])
	}

	// Admin default excludes picked-up records.
	records := list(admin, "")
	require.Len(t, records, 1)
	assert.Equal(t, "AAA-111", records[0]["licensePlate"])

	records = list(admin, "?includePickedUp=true")
	assert.Len(t, records, 2)
}

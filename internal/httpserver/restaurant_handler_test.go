package httpserver_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearbyHandler_MissingLatitude(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/api/v1/restaurants/nearby?longitude=-74.0060", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["message"], "latitude is required")
}

func TestNearbyHandler_NonNumericLatitude(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/api/v1/restaurants/nearby?latitude=abc&longitude=-74.0060", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["message"], "latitude must be a number")
}

func TestNearbyHandler_BadOptionalParams(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{
		"/api/v1/restaurants/nearby?latitude=40.7&longitude=-74.0&radius=wide",
		"/api/v1/restaurants/nearby?latitude=40.7&longitude=-74.0&radius=0",
		"/api/v1/restaurants/nearby?latitude=40.7&longitude=-74.0&radius=99999",
		"/api/v1/restaurants/nearby?latitude=40.7&longitude=-74.0&limit=ten",
		"/api/v1/restaurants/nearby?latitude=40.7&longitude=-74.0&limit=0",
		"/api/v1/restaurants/nearby?latitude=40.7&longitude=-74.0&minRating=great",
	} {
		rec, _ := s.do(t, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestNearbyHandler_Envelope(t *testing.T) {
	s := newTestServer(t)

	seedRestaurant(t, s, "Close Cafe", 40.7178, -74.0060)
	seedRestaurant(t, s, "Closer Cafe", 40.7128, -74.0060)

	rec, body := s.do(t, http.MethodGet, "/api/v1/restaurants/nearby?latitude=40.7128&longitude=-74.0060", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 5000, body["radius"])
	assert.EqualValues(t, 2, body["count"])

	center, ok := body["center"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 40.7128, center["latitude"])
	assert.EqualValues(t, -74.0060, center["longitude"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)

	first, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Closer Cafe", first["name"])
	assert.EqualValues(t, 0, first["distance_meters"])
	// Raw geometry never leaks into the payload.
	assert.NotContains(t, first, "location")
}

func TestRestaurantHandler_CreateRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	payload := map[string]any{
		"name":      "Pizza Palace",
		"address":   "123 Main St",
		"latitude":  40.7128,
		"longitude": -74.0060,
	}

	rec, _ := s.do(t, http.MethodPost, "/api/v1/restaurants", "", payload)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := s.do(t, http.MethodPost, "/api/v1/restaurants", s.login(t), payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Pizza Palace", data["name"])
	assert.NotZero(t, data["id"])
}

func TestRestaurantHandler_CreateValidationStatus(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec, body := s.do(t, http.MethodPost, "/api/v1/restaurants", token, map[string]any{
		"name":      "Pizza Palace",
		"address":   "123 Main St",
		"latitude":  91,
		"longitude": -74.0060,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["message"], "latitude")
}

func TestRestaurantHandler_GetByID(t *testing.T) {
	s := newTestServer(t)
	rest := seedRestaurant(t, s, "Pizza Palace", 40.7128, -74.0060)

	rec, body := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/restaurants/%d", rest.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Pizza Palace", data["name"])

	rec, _ = s.do(t, http.MethodGet, "/api/v1/restaurants/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/restaurants/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRestaurantHandler_DeleteLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	rest := seedRestaurant(t, s, "Pizza Palace", 40.7128, -74.0060)

	rec, _ := s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/restaurants/%d", rest.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/restaurants/%d", rest.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchHandler_UnconfiguredReturns503(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/restaurants/search?q=pizza", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

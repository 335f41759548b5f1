package seed_rooms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/service/rooms/models"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
)

type serviceStub struct {
	resp *models.SeedResponse
	err  error
}

func (s *serviceStub) Seed(context.Context) (*models.SeedResponse, error) {
	return s.resp, s.err
}

func TestHandler(t *testing.T) {
	svc := &serviceStub{resp: &models.SeedResponse{
		Message: "Rooms added successfully",
		Rooms: []models.RoomResponse{
			{ID: "r-1", Name: "Conference A", Capacity: 10},
			{ID: "r-2", Name: "Meeting B", Capacity: 4},
		},
	}}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/rooms/seed", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body models.SeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Rooms added successfully", body.Message)
	assert.Len(t, body.Rooms, 2)
}

func TestHandler_Error(t *testing.T) {
	h := NewHandler(&serviceStub{err: errors.New("boom")}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/rooms/seed", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

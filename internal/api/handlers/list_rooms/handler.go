package list_rooms

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/service/rooms"
)

const (
	msgInvalidCapacity = "capacity must be a non-negative integer"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms
// Query params: capacity (optional, минимальная вместимость)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var minCapacity *int
	if capacityStr := r.URL.Query().Get("capacity"); capacityStr != "" {
		capacity, err := strconv.Atoi(capacityStr)
		if err != nil {
			h.logger.Warn("GET /rooms - Invalid capacity: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidCapacity)
			return
		}
		minCapacity = &capacity
	}

	result, err := h.service.List(r.Context(), minCapacity)
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("GET /rooms - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidCapacity)

		default:
			h.logger.Error("GET /rooms - Failed to list rooms: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms - Rooms retrieved successfully: count=%d", len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, result)
}

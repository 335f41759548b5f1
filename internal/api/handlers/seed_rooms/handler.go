package seed_rooms

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
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

// Handle POST /api/v1/rooms/seed
// Некорректный seed в конфигурации - ошибка сервера, а не клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Seed(r.Context())
	if err != nil {
		h.logger.Error("POST /rooms/seed - Failed to seed rooms: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /rooms/seed - Rooms added successfully: count=%d", len(result.Rooms))
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-RoomBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingDate  = "date is required"
	msgInvalidDate  = "Invalid date format, expected YYYY-MM-DD"
	msgInvalidInput = "Invalid room ID"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /rooms/{roomId}/availability - Missing date")
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(roomID, dateStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{roomId}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{roomId}/availability - Invalid input: room_id=%s, error=%v", roomID, err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("GET /rooms/{roomId}/availability - Failed to get slots: room_id=%s, date=%s, error=%v",
				roomID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{roomId}/availability - Slots retrieved successfully: room_id=%s, date=%s, count=%d",
		roomID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

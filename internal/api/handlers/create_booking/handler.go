package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "Invalid request body"
	msgInvalidTime          = "startTime and endTime must be RFC3339 timestamps"
	msgInvalidInput         = "roomId, startTime and endTime are required"
	msgPastStart            = "Cannot book a room in the past"
	msgInvalidRange         = "End time must be after start time"
	msgNotHourly            = "Bookings must start and end on full hours only"
	msgOutsideBusinessHours = "Bookings are only allowed between 08:00 and 18:00"
	msgRoomOccupied         = "Room is already booked for this time"
	msgRoomBusy             = "Room is being booked by another request, retry later"
	msgMissingUserID        = "Authentication failed"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrPastStart):
			h.logger.Warn("POST /bookings - Start in the past: user_id=%s, room_id=%s", userID, req.RoomID)
			handlers.RespondBadRequest(w, handlers.CodePastStart, msgPastStart)

		case errors.Is(err, createBooking.ErrInvalidRange):
			h.logger.Warn("POST /bookings - Invalid range: user_id=%s, room_id=%s", userID, req.RoomID)
			handlers.RespondBadRequest(w, handlers.CodeInvalidRange, msgInvalidRange)

		case errors.Is(err, createBooking.ErrNotHourly):
			h.logger.Warn("POST /bookings - Not on full hours: user_id=%s, room_id=%s", userID, req.RoomID)
			handlers.RespondBadRequest(w, handlers.CodeNotHourly, msgNotHourly)

		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /bookings - Outside business hours: user_id=%s, room_id=%s", userID, req.RoomID)
			handlers.RespondBadRequest(w, handlers.CodeOutsideBusinessHours, msgOutsideBusinessHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, handlers.CodeInvalidInput, msgInvalidInput)

		case errors.Is(err, createBooking.ErrRoomOccupied):
			h.logger.Warn("POST /bookings - Room occupied: user_id=%s, room_id=%s", userID, req.RoomID)
			handlers.RespondConflict(w, handlers.CodeRoomOccupied, msgRoomOccupied)

		case errors.Is(err, createBooking.ErrRoomBusy):
			h.logger.Warn("POST /bookings - Room busy: user_id=%s, room_id=%s", userID, req.RoomID)
			handlers.RespondConflict(w, handlers.CodeRoomBusy, msgRoomBusy)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, room_id=%s, error=%v",
				userID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, room_id=%s",
		result.ID, userID, result.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

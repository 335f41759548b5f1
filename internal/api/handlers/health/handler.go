package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

const (
	pingTimeout = 2 * time.Second

	msgRunning       = "Server is running"
	msgDBUnavailable = "Database is unavailable"
)

type Handler struct {
	db           Pinger
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:           db,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Handle GET /api/v1/healthz
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	now := h.timeProvider.Now().UTC().Format(domain.TimeFormat)

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("GET /healthz - Database ping failed: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, &HealthResponse{
			Status:    StatusDown,
			Message:   msgDBUnavailable,
			Timestamp: now,
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &HealthResponse{
		Status:    StatusUp,
		Message:   msgRunning,
		Timestamp: now,
	})
}

package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID == "" {
		return fmt.Errorf("%w: roomId is required", ErrInvalidInput)
	}

	if _, err := uuid.Parse(req.RoomID); err != nil {
		return fmt.Errorf("%w: roomId must be a valid id", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID    string `json:"roomId"`
	StartTime string `json:"startTime"` // RFC3339, "2026-05-05T10:00:00+03:00"
	EndTime   string `json:"endTime"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	RoomID    string `json:"roomId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	start, err := time.Parse(domain.TimeFormat, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	end, err := time.Parse(domain.TimeFormat, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &createBooking.Request{
		UserID:    userID,
		RoomID:    r.RoomID,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		RoomID:    resp.RoomID,
		StartTime: resp.StartTime.Format(domain.TimeFormat),
		EndTime:   resp.EndTime.Format(domain.TimeFormat),
		CreatedAt: resp.CreatedAt.Format(domain.TimeFormat),
	}
}

package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями пользователя
type Service struct {
	bookingRepo  BookingRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &Service{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования; чужое и несуществующее неразличимы
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	if !isValidID(id) {
		s.logger.Warn("GetByID: malformed booking id=%q", id)
		return nil, ErrBookingNotFound
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !booking.IsOwnedBy(userID) {
		s.logger.Warn("GetByID: booking id=%s is not owned by user=%s", id, userID)
		return nil, ErrBookingNotFound
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя, сначала самые поздние
func (s *Service) GetUserBookings(ctx context.Context, userID string) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s", userID)

	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), userID)
	return models.FromDomainBookingList(bookings), nil
}

// Delete удаляет бронирование пользователя
// Удаление выполняется одним запросом по (id, user_id), поэтому чужое бронирование не удаляется
func (s *Service) Delete(ctx context.Context, id string, userID string) error {
	s.logger.Info("Delete: deleting booking id=%s for user=%s", id, userID)

	if userID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	if !isValidID(id) {
		s.logger.Warn("Delete: malformed booking id=%q", id)
		return ErrBookingNotFound
	}

	deleted, err := s.bookingRepo.DeleteByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found for user=%s", id, userID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%s", id)

	if err := s.publisher.Publish(ctx, events.BookingDeleted(deleted, s.timeProvider.Now())); err != nil {
		s.logger.Error("Delete: failed to publish event for booking id=%s: %v", id, err)
	}

	return nil
}

// isValidID ID бронирований - UUID; всё остальное заведомо не найдется
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

package rooms

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/internal/service/rooms/models"
)

// DefaultSeed комнаты по умолчанию для POST /rooms/seed
var DefaultSeed = []models.SeedRoom{
	{Name: "Conference A", Capacity: 10},
	{Name: "Meeting B", Capacity: 4},
}

// Service сервис каталога комнат
type Service struct {
	roomRepo RoomRepository
	seed     []models.SeedRoom
	logger   Logger
}

// NewService создает новый экземпляр сервиса комнат
// Если seed пустой, используется DefaultSeed
func NewService(roomRepo RoomRepository, seed []models.SeedRoom, logger Logger) *Service {
	if len(seed) == 0 {
		seed = DefaultSeed
	}

	return &Service{
		roomRepo: roomRepo,
		seed:     seed,
		logger:   logger,
	}
}

// List возвращает комнаты, отсортированные по названию
// minCapacity == nil - без фильтра
func (s *Service) List(ctx context.Context, minCapacity *int) (*models.RoomListResponse, error) {
	if minCapacity != nil {
		s.logger.Info("List: fetching rooms with capacity >= %d", *minCapacity)
		if *minCapacity < 0 {
			return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
		}
	} else {
		s.logger.Info("List: fetching all rooms")
	}

	rooms, err := s.roomRepo.List(ctx, domain.RoomsFilter{MinCapacity: minCapacity})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d rooms", len(rooms))
	return &models.RoomListResponse{Rooms: models.FromDomainRoomList(rooms)}, nil
}

// Seed добавляет в каталог комнаты из конфигурации
func (s *Service) Seed(ctx context.Context) (*models.SeedResponse, error) {
	s.logger.Info("Seed: adding %d rooms", len(s.seed))

	rooms := make([]*domain.Room, 0, len(s.seed))
	for i, r := range s.seed {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: room #%d has empty name", ErrInvalidSeed, i)
		}
		if r.Capacity <= 0 {
			return nil, fmt.Errorf("%w: room %q has non-positive capacity %d", ErrInvalidSeed, name, r.Capacity)
		}
		rooms = append(rooms, &domain.Room{Name: name, Capacity: r.Capacity})
	}

	created, err := s.roomRepo.CreateMany(ctx, rooms)
	if err != nil {
		s.logger.Error("Seed: repository error: %v", err)
		return nil, fmt.Errorf("%w: Seed - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Seed: successfully added %d rooms", len(created))
	return &models.SeedResponse{
		Message: "Rooms added successfully",
		Rooms:   models.FromDomainRoomList(created),
	}, nil
}

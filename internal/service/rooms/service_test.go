package rooms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/internal/service/rooms/models"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
)

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) List(ctx context.Context, filter domain.RoomsFilter) ([]*domain.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Room), args.Error(1)
}

func (m *mockRoomRepo) CreateMany(ctx context.Context, rooms []*domain.Room) ([]*domain.Room, error) {
	args := m.Called(ctx, rooms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Room), args.Error(1)
}

func TestService_List_PassesCapacityFilter(t *testing.T) {
	repo := new(mockRoomRepo)
	minCapacity := 5
	repo.On("List", mock.Anything, domain.RoomsFilter{MinCapacity: &minCapacity}).
		Return([]*domain.Room{{ID: "r1", Name: "Conference A", Capacity: 10}}, nil)

	svc := NewService(repo, nil, logger.NewNop())
	resp, err := svc.List(context.Background(), &minCapacity)

	require.NoError(t, err)
	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, "Conference A", resp.Rooms[0].Name)
	repo.AssertExpectations(t)
}

func TestService_List_NoFilter(t *testing.T) {
	repo := new(mockRoomRepo)
	repo.On("List", mock.Anything, domain.RoomsFilter{}).Return([]*domain.Room{}, nil)

	resp, err := NewService(repo, nil, logger.NewNop()).List(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, resp.Rooms)
	assert.Empty(t, resp.Rooms)
}

func TestService_List_NegativeCapacity(t *testing.T) {
	repo := new(mockRoomRepo)
	negative := -1

	_, err := NewService(repo, nil, logger.NewNop()).List(context.Background(), &negative)

	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestService_List_RepositoryError(t *testing.T) {
	repo := new(mockRoomRepo)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := NewService(repo, nil, logger.NewNop()).List(context.Background(), nil)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_Seed_Default(t *testing.T) {
	repo := new(mockRoomRepo)
	repo.On("CreateMany", mock.Anything, mock.MatchedBy(func(rooms []*domain.Room) bool {
		return len(rooms) == 2 &&
			rooms[0].Name == "Conference A" && rooms[0].Capacity == 10 &&
			rooms[1].Name == "Meeting B" && rooms[1].Capacity == 4
	})).Return([]*domain.Room{
		{ID: "r1", Name: "Conference A", Capacity: 10},
		{ID: "r2", Name: "Meeting B", Capacity: 4},
	}, nil)

	resp, err := NewService(repo, nil, logger.NewNop()).Seed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Rooms added successfully", resp.Message)
	assert.Len(t, resp.Rooms, 2)
	repo.AssertExpectations(t)
}

func TestService_Seed_Invalid(t *testing.T) {
	tests := []struct {
		name string
		seed []models.SeedRoom
	}{
		{name: "empty name", seed: []models.SeedRoom{{Name: "  ", Capacity: 3}}},
		{name: "zero capacity", seed: []models.SeedRoom{{Name: "Huddle", Capacity: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRoomRepo)

			_, err := NewService(repo, tt.seed, logger.NewNop()).Seed(context.Background())

			assert.ErrorIs(t, err, ErrInvalidSeed)
			repo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
		})
	}
}

package room

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/psqlbuilder"
)

// Repository репозиторий для работы с комнатами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает комнаты, отсортированные по названию
// Если задан filter.MinCapacity, возвращаются только комнаты с capacity >= MinCapacity
func (r *Repository) List(ctx context.Context, filter domain.RoomsFilter) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "capacity", "created_at").
		From("rooms").
		OrderBy("name ASC", "id ASC")

	if filter.MinCapacity != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"capacity": *filter.MinCapacity})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// CreateMany вставляет несколько комнат одним запросом
// Пустые ID заполняются новыми UUID
func (r *Repository) CreateMany(ctx context.Context, rooms []*domain.Room) ([]*domain.Room, error) {
	if len(rooms) == 0 {
		return rooms, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("rooms").
		Columns("id", "name", "capacity").
		Suffix("RETURNING id, created_at")

	byID := make(map[string]*domain.Room, len(rooms))
	for _, room := range rooms {
		if room.ID == "" {
			room.ID = uuid.NewString()
		}
		byID[room.ID] = room
		insertBuilder = insertBuilder.Values(room.ID, room.Name, room.Capacity)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateMany - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateMany - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var createdAt sql.NullTime
		if err := rows.Scan(&id, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: CreateMany - scan row: %v", ErrScanRow, err)
		}
		if room, ok := byID[id]; ok {
			room.CreatedAt = createdAt.Time
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateMany - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	var createdAt sql.NullTime

	if err := row.Scan(&room.ID, &room.Name, &room.Capacity, &createdAt); err != nil {
		return nil, err
	}

	room.CreatedAt = createdAt.Time
	return &room, nil
}

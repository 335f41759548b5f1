package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/internal/infra/events"
	"github.com/m04kA/SMC-RoomBooking/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
)

const (
	testUserID = "user-1"
	testRoomID = "0b5d5bd4-3c4e-4f44-9d1b-8d3c0fb7a0d2"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) FindOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, roomID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	if fn, ok := args.Get(0).(func(*domain.Booking) *domain.Booking); ok {
		return fn(b), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

// txStub выполняет fn без БД и отдает commitErr как ошибку коммита
type txStub struct {
	commitErr error
	calls     int
}

func (s *txStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return s.commitErr
}

type lockStub struct {
	err      error
	acquired int
	released int
}

func (l *lockStub) Acquire(ctx context.Context, roomID string) (lock.ReleaseFunc, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired++
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

type publisherStub struct {
	events []events.Event
	err    error
}

func (p *publisherStub) Publish(ctx context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return p.err
}

type metricsStub struct {
	outcomes []string
}

func (m *metricsStub) IncBookingAdmission(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	repo      *mockBookingRepo
	tx        *txStub
	lock      *lockStub
	publisher *publisherStub
	metrics   *metricsStub
	uc        *UseCase
}

// now: 2026-05-04 07:30 UTC, бронируем на следующий день
var (
	testNow = time.Date(2026, 5, 4, 7, 30, 0, 0, time.UTC)
	testDay = time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)
)

func hour(h int) time.Time {
	return testDay.Add(time.Duration(h) * time.Hour)
}

func newFixture() *fixture {
	f := &fixture{
		repo:      new(mockBookingRepo),
		tx:        &txStub{},
		lock:      &lockStub{},
		publisher: &publisherStub{},
		metrics:   &metricsStub{},
	}
	f.uc = NewUseCase(f.repo, f.tx, f.lock, f.publisher, f.metrics, time.UTC, logger.NewNop()).
		WithTimeProvider(fixedTime{now: testNow})
	return f
}

func (f *fixture) expectFreeAndCreate(start, end time.Time) {
	f.repo.On("FindOverlapping", mock.Anything, testRoomID, start, end).Return([]*domain.Booking{}, nil).Once()
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Return(func(b *domain.Booking) *domain.Booking {
			b.ID = "booking-1"
			b.CreatedAt = testNow
			return b
		}, nil).Once()
}

func request(start, end time.Time) *Request {
	return &Request{UserID: testUserID, RoomID: testRoomID, StartTime: start, EndTime: end}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture()
	f.expectFreeAndCreate(hour(10), hour(11))

	resp, err := f.uc.Execute(context.Background(), request(hour(10), hour(11)))

	require.NoError(t, err)
	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, testUserID, resp.UserID)
	assert.Equal(t, hour(10), resp.StartTime)
	assert.Equal(t, hour(11), resp.EndTime)

	assert.Equal(t, 1, f.lock.acquired)
	assert.Equal(t, 1, f.lock.released)
	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingCreated, f.publisher.events[0].Type)
	assert.Equal(t, []string{"ADMITTED"}, f.metrics.outcomes)
	f.repo.AssertExpectations(t)
}

func TestUseCase_Execute_ValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{
			name:    "start in the past",
			start:   testNow.Add(-time.Hour),
			end:     testNow.Add(time.Hour),
			wantErr: ErrPastStart,
		},
		{
			name:    "start equals now",
			start:   testNow,
			end:     testNow.Add(time.Hour),
			wantErr: ErrPastStart,
		},
		{
			name:    "past start wins over invalid range",
			start:   testNow.Add(-time.Hour),
			end:     testNow.Add(-2 * time.Hour),
			wantErr: ErrPastStart,
		},
		{
			name:    "end before start",
			start:   hour(11),
			end:     hour(10),
			wantErr: ErrInvalidRange,
		},
		{
			name:    "end equals start",
			start:   hour(10),
			end:     hour(10),
			wantErr: ErrInvalidRange,
		},
		{
			name:    "start not on the hour",
			start:   hour(10).Add(15 * time.Minute),
			end:     hour(11),
			wantErr: ErrNotHourly,
		},
		{
			name:    "end with seconds",
			start:   hour(10),
			end:     hour(11).Add(30 * time.Second),
			wantErr: ErrNotHourly,
		},
		{
			name:    "end with nanoseconds",
			start:   hour(10),
			end:     hour(11).Add(time.Nanosecond),
			wantErr: ErrNotHourly,
		},
		{
			name:    "not hourly wins over business hours",
			start:   hour(4).Add(30 * time.Minute),
			end:     hour(5),
			wantErr: ErrNotHourly,
		},
		{
			name:    "start before opening",
			start:   hour(4),
			end:     hour(9),
			wantErr: ErrOutsideBusinessHours,
		},
		{
			name:    "end after closing",
			start:   hour(17),
			end:     hour(19),
			wantErr: ErrOutsideBusinessHours,
		},
		{
			name:    "start at closing",
			start:   hour(18),
			end:     hour(19),
			wantErr: ErrOutsideBusinessHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), request(tt.start, tt.end))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.lock.acquired, "validation must short-circuit before the store")
			assert.Equal(t, 0, f.tx.calls)
			f.repo.AssertNotCalled(t, "FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_Execute_FullBusinessDay(t *testing.T) {
	f := newFixture()
	f.expectFreeAndCreate(hour(8), hour(18))

	_, err := f.uc.Execute(context.Background(), request(hour(8), hour(18)))

	assert.NoError(t, err)
}

func TestUseCase_Execute_MidnightEndAccepted(t *testing.T) {
	f := newFixture()
	f.expectFreeAndCreate(hour(17), hour(24))

	_, err := f.uc.Execute(context.Background(), request(hour(17), hour(24)))

	assert.NoError(t, err, "end hour 0 passes the raw hour check")
}

func TestUseCase_Execute_BusinessHoursInLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	f := newFixture()
	f.uc.location = loc

	// 06:00-07:00 UTC = 09:00-10:00 UTC+3
	start := hour(6)
	end := hour(7)
	f.expectFreeAndCreate(start, end)

	_, err := f.uc.Execute(context.Background(), request(start, end))
	require.NoError(t, err)

	// 16:00 UTC = 19:00 UTC+3
	_, err = f.uc.Execute(context.Background(), request(hour(16), hour(17)))
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestUseCase_Execute_RoomOccupied(t *testing.T) {
	f := newFixture()
	existing := &domain.Booking{ID: "a", RoomID: testRoomID, StartTime: hour(10), EndTime: hour(11)}
	f.repo.On("FindOverlapping", mock.Anything, testRoomID, hour(10), hour(12)).
		Return([]*domain.Booking{existing}, nil)

	_, err := f.uc.Execute(context.Background(), request(hour(10), hour(12)))

	assert.ErrorIs(t, err, ErrRoomOccupied)
	assert.Empty(t, f.publisher.events)
	assert.Equal(t, 1, f.lock.released)
	assert.Equal(t, []string{"ROOM_OCCUPIED"}, f.metrics.outcomes)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_AdjacentAccepted(t *testing.T) {
	f := newFixture()
	f.expectFreeAndCreate(hour(11), hour(12))

	_, err := f.uc.Execute(context.Background(), request(hour(11), hour(12)))

	assert.NoError(t, err)
}

func TestUseCase_Execute_ExclusionViolationOnInsert(t *testing.T) {
	f := newFixture()
	f.repo.On("FindOverlapping", mock.Anything, testRoomID, hour(10), hour(11)).Return([]*domain.Booking{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: Create - %v", bookingRepo.ErrSlotNotAvailable, &pq.Error{Code: "23P01"}))

	_, err := f.uc.Execute(context.Background(), request(hour(10), hour(11)))

	assert.ErrorIs(t, err, ErrRoomOccupied)
}

func TestUseCase_Execute_SerializationFailureOnCommit(t *testing.T) {
	f := newFixture()
	f.tx.commitErr = fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})
	f.expectFreeAndCreate(hour(10), hour(11))

	_, err := f.uc.Execute(context.Background(), request(hour(10), hour(11)))

	assert.ErrorIs(t, err, ErrRoomBusy)
	assert.NotErrorIs(t, err, ErrRoomOccupied)
	assert.Empty(t, f.publisher.events)
	assert.Equal(t, []string{"ROOM_BUSY"}, f.metrics.outcomes)
}

func TestUseCase_Execute_ExclusionViolationOnCommit(t *testing.T) {
	f := newFixture()
	f.tx.commitErr = fmt.Errorf("commit: %w", &pq.Error{Code: "23P01"})
	f.expectFreeAndCreate(hour(10), hour(11))

	_, err := f.uc.Execute(context.Background(), request(hour(10), hour(11)))

	assert.ErrorIs(t, err, ErrRoomOccupied)
	assert.Equal(t, []string{"ROOM_OCCUPIED"}, f.metrics.outcomes)
}

func TestUseCase_Execute_SerializationFailureOnInsert(t *testing.T) {
	f := newFixture()
	f.repo.On("FindOverlapping", mock.Anything, testRoomID, hour(10), hour(11)).Return([]*domain.Booking{}, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: Create - %v", bookingRepo.ErrSerializationFailure, &pq.Error{Code: "40001"}))

	_, err := f.uc.Execute(context.Background(), request(hour(10), hour(11)))

	assert.ErrorIs(t, err, ErrRoomBusy)
	assert.Empty(t, f.publisher.events)
	assert.Equal(t, []string{"ROOM_BUSY"}, f.metrics.outcomes)
}

func TestUseCase_Execute_SerializationFailureOnOverlapCheck(t *testing.T) {
	f := newFixture()
	f.repo.On("FindOverlapping", mock.Anything, testRoomID, hour(10), hour(11)).
		Return(nil, fmt.Errorf("%w: FindOverlapping - %v", bookingRepo.ErrSerializationFailure, &pq.Error{Code: "40001"}))

	_, err := f.uc.Execute(context.Background(), request(hour(10), hour(11)))

	assert.ErrorIs(t, err, ErrRoomBusy)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_RoomBusy(t *testing.T) {
	f := newFixture()
	f.lock.err = fmt.Errorf("%w: room=%s", lock.ErrLockNotAcquired, testRoomID)

	_, err := f.uc.Execute(context.Background(), request(hour(10), hour(11)))

	assert.ErrorIs(t, err, ErrRoomBusy)
	assert.Equal(t, 0, f.tx.calls)
	assert.Equal(t, []string{"ROOM_BUSY"}, f.metrics.outcomes)
}

func TestUseCase_Execute_LockBackendFailure(t *testing.T) {
	f := newFixture()
	f.lock.err = fmt.Errorf("%w: connection refused", lock.ErrRedis)

	_, err := f.uc.Execute(context.Background(), request(hour(10), hour(11)))

	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_StoreFailure(t *testing.T) {
	f := newFixture()
	f.repo.On("FindOverlapping", mock.Anything, testRoomID, hour(10), hour(11)).
		Return(nil, fmt.Errorf("%w: boom", bookingRepo.ErrExecQuery))

	_, err := f.uc.Execute(context.Background(), request(hour(10), hour(11)))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"INTERNAL"}, f.metrics.outcomes)
}

func TestUseCase_Execute_PublishFailureIgnored(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")
	f.expectFreeAndCreate(hour(10), hour(11))

	resp, err := f.uc.Execute(context.Background(), request(hour(10), hour(11)))

	require.NoError(t, err)
	assert.Equal(t, "booking-1", resp.ID)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "no user", req: &Request{RoomID: testRoomID, StartTime: hour(10), EndTime: hour(11)}},
		{name: "no room", req: &Request{UserID: testUserID, StartTime: hour(10), EndTime: hour(11)}},
		{name: "malformed room", req: &Request{UserID: testUserID, RoomID: "abc", StartTime: hour(10), EndTime: hour(11)}},
		{name: "no times", req: &Request{UserID: testUserID, RoomID: testRoomID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

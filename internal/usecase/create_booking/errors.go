package create_booking

import "errors"

var (
	// ErrPastStart возвращается, когда время начала не в будущем
	ErrPastStart = errors.New("create_booking: cannot book a room in the past")

	// ErrInvalidRange возвращается, когда время окончания не позже времени начала
	ErrInvalidRange = errors.New("create_booking: end time must be after start time")

	// ErrNotHourly возвращается, когда время начала или окончания не на границе часа
	ErrNotHourly = errors.New("create_booking: bookings must start and end on full hours")

	// ErrOutsideBusinessHours возвращается, когда бронирование выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("create_booking: bookings are only allowed between 08:00 and 18:00")

	// ErrRoomOccupied возвращается, когда интервал пересекается с существующим бронированием
	ErrRoomOccupied = errors.New("create_booking: room is occupied")

	// ErrRoomBusy возвращается, когда комнату в этот момент бронирует другой запрос
	// (занята блокировка или SERIALIZABLE транзакция откатилась с 40001). Запрос можно повторить
	ErrRoomBusy = errors.New("create_booking: room is being booked by another request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

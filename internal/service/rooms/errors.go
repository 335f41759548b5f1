package rooms

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rooms: invalid input data")

	// ErrInvalidSeed возвращается, когда в списке комнат для наполнения есть некорректная запись
	ErrInvalidSeed = errors.New("rooms: invalid seed room")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rooms: internal error")
)

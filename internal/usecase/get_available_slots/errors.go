package get_available_slots

import "errors"

var (
	// ErrVetNotFound возвращается, когда врач не найден
	ErrVetNotFound = errors.New("vet not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

package book_appointment

import "errors"

var (
	// ErrVetNotFound возвращается, когда врач не найден
	ErrVetNotFound = errors.New("vet not found")

	// ErrInvalidSlot возвращается, когда время не входит в слоты врача на дату или уже прошло
	ErrInvalidSlot = errors.New("invalid slot")

	// ErrServiceUnavailable возвращается, когда тип приема выключен у врача
	ErrServiceUnavailable = errors.New("appointment type is not available")

	// ErrSlotTaken возвращается, когда слот успели занять
	ErrSlotTaken = errors.New("slot already taken")

	// ErrPaymentUnavailable возвращается, когда шлюз не создал платеж; запись при этом отменяется
	ErrPaymentUnavailable = errors.New("payment gateway unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

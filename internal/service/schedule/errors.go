package schedule

import "errors"

var (
	// ErrVetNotFound возвращается, когда врач не найден
	ErrVetNotFound = errors.New("vet not found")

	// ErrInvalidTemplate возвращается при некорректном дне шаблона
	ErrInvalidTemplate = errors.New("invalid availability template")

	// ErrAccessDenied возвращается, когда расписание меняет не сам врач
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

package vets

import "errors"

var (
	// ErrVetNotFound возвращается, когда врач не найден
	ErrVetNotFound = errors.New("vet not found")

	// ErrAccessDenied возвращается, когда настройки меняет не сам врач
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

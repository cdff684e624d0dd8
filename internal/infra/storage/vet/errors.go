package vet

import "errors"

var (
	// ErrVetNotFound возвращается, когда врач не найден
	ErrVetNotFound = errors.New("vet.repository: vet not found")

	// ErrAppointmentTypeNotFound возвращается, когда у врача нет настройки для типа приема
	ErrAppointmentTypeNotFound = errors.New("vet.repository: appointment type setting not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vet.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vet.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vet.repository: failed to scan row")
)

package book_appointment

import (
	"context"

	"github.com/m04kA/VetBookingService/internal/usecase/book_appointment"
)

type UseCase interface {
	Execute(ctx context.Context, req *book_appointment.Request) (*book_appointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

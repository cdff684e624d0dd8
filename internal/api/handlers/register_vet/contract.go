package register_vet

import (
	"context"

	"github.com/m04kA/VetBookingService/internal/service/vets/models"
)

type VetService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.VetResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package book_appointment

import (
	"time"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/pkg/types"
)

// Request модель запроса на запись к врачу
type Request struct {
	UserID    int64                  // ID клиента
	VetID     int64                  // ID врача
	Date      time.Time              // Календарная дата приема
	StartTime types.TimeString       // Время начала слота ("09:35")
	Type      domain.AppointmentType // Тип приема
	Customer  domain.CustomerInfo    // Контакты клиента и данные питомца
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
	PaymentURL  *string // Пусто для бесплатного приема
}

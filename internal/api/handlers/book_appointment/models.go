package book_appointment

import (
	"github.com/m04kA/VetBookingService/internal/api/handlers"
	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/internal/service/appointments/models"
	"github.com/m04kA/VetBookingService/internal/usecase/book_appointment"
	"github.com/m04kA/VetBookingService/pkg/types"
)

// CustomerRequest контакты клиента и данные питомца
type CustomerRequest struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	PetName    string  `json:"petName"`
	PetSpecies string  `json:"petSpecies"`
	Notes      *string `json:"notes,omitempty"`
}

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	VetID           int64           `json:"vetId"`
	Date            string          `json:"date"`      // "2026-10-20"
	StartTime       string          `json:"startTime"` // "09:35"
	AppointmentType string          `json:"appointmentType"`
	Customer        CustomerRequest `json:"customer"`
}

// ToUseCaseRequest конвертирует HTTP request в модель usecase
func (r *BookAppointmentRequest) ToUseCaseRequest(userID int64) (*book_appointment.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &book_appointment.Request{
		UserID:    userID,
		VetID:     r.VetID,
		Date:      date,
		StartTime: types.TimeString(r.StartTime),
		Type:      domain.ParseAppointmentType(r.AppointmentType),
		Customer: domain.CustomerInfo{
			Name:       r.Customer.Name,
			Phone:      r.Customer.Phone,
			Email:      r.Customer.Email,
			PetName:    r.Customer.PetName,
			PetSpecies: r.Customer.PetSpecies,
			Notes:      r.Customer.Notes,
		},
	}, nil
}

// BookAppointmentResponse HTTP response model
type BookAppointmentResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	PaymentURL  *string                     `json:"paymentUrl,omitempty"`
}

// FromUseCaseResponse конвертирует ответ usecase в HTTP response
func FromUseCaseResponse(resp *book_appointment.Response) *BookAppointmentResponse {
	return &BookAppointmentResponse{
		Appointment: models.FromDomainAppointment(resp.Appointment),
		PaymentURL:  resp.PaymentURL,
	}
}

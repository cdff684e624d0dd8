package update_appointment_status

import (
	"github.com/m04kA/VetBookingService/internal/service/appointments/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(userID int64) *models.UpdateStatusRequest {
	req := &models.UpdateStatusRequest{
		UserID: userID,
		Status: r.Status,
	}
	if r.CancellationReason != nil {
		req.Reason = *r.CancellationReason
	}
	return req
}

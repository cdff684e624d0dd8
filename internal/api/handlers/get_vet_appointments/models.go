package get_vet_appointments

import (
	"net/url"
	"strconv"

	"github.com/m04kA/VetBookingService/internal/api/handlers"
	"github.com/m04kA/VetBookingService/internal/service/appointments/models"
)

// ParseQuery разбирает фильтры startDate, endDate, status, includeInactive
func ParseQuery(q url.Values, actorID, vetID int64) (*models.GetVetAppointmentsRequest, error) {
	req := &models.GetVetAppointmentsRequest{ActorID: actorID, VetID: vetID}

	if raw := q.Get("startDate"); raw != "" {
		date, err := handlers.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
	}

	if raw := q.Get("endDate"); raw != "" {
		date, err := handlers.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &date
	}

	if raw := q.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := q.Get("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = include
	}

	return req, nil
}

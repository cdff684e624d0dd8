package book_appointment

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/pkg/types"
)

// validateRequest валидирует входные данные и нормализует время и контакты
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VetID <= 0 {
		return fmt.Errorf("%w: vetID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime.String())
	if err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}
	req.StartTime = start

	if !req.Type.Valid() {
		return fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, req.Type)
	}

	return validateCustomer(&req.Customer)
}

func validateCustomer(c *domain.CustomerInfo) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.PetName = strings.TrimSpace(c.PetName)
	c.PetSpecies = strings.TrimSpace(c.PetSpecies)

	required := map[string]string{
		"customer name": c.Name,
		"phone":         c.Phone,
		"pet name":      c.PetName,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
		}
	}

	for field, value := range map[string]string{
		"customer name": c.Name,
		"phone":         c.Phone,
		"email":         c.Email,
		"pet name":      c.PetName,
		"pet species":   c.PetSpecies,
	} {
		if len(value) > domain.MaxCustomerFieldLength {
			return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, domain.MaxCustomerFieldLength)
		}
	}

	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
		}
	}

	if c.Notes != nil && len(*c.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

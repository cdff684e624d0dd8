package get_available_slots

import (
	"time"

	"github.com/m04kA/VetBookingService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	VetID int64     // ID врача
	Date  time.Time // Календарная дата, время суток игнорируется
}

// Response модель ответа со списком свободных слотов
type Response struct {
	VetID int64
	Date  time.Time
	Slots []Slot // В порядке генератора, пустой для выходного или занятого дня
}

// Slot свободный слот
type Slot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

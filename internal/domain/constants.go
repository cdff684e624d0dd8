package domain

// Default template values
const (
	DefaultSlotDurationMinutes  = 30
	DefaultBreakIntervalMinutes = 5
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MaxBreakIntervalMinutes     = 240
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerFieldLength      = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Reasons recorded when the system cancels an appointment
const (
	ReasonPaymentInitiationFailed = "payment initiation failed"
	ReasonPaymentTimeout          = "payment timeout"
)

// ActiveStatuses lists the statuses in which an appointment occupies its slot
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

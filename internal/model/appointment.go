package model

const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// AnyAvailableStaff is recorded when the customer does not pick a staff member.
const AnyAvailableStaff = "Any Available Staff"

// Appointment is a booked service occurrence with a lifecycle state.
// Appointments are never hard-deleted; cancellation only flips the status.
type Appointment struct {
	ID            string `json:"id"`   // "apt" + millisecond timestamp
	Service       string `json:"service"`
	Date          string `json:"date"` // YYYY-MM-DD
	Time          string `json:"time"` // HH:MM
	Staff         string `json:"staff"`
	Status        string `json:"status"`
	Price         string `json:"price"` // display string, e.g. "$35"
	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Seeded        bool   `json:"-"` // demo fixture rows survive logout
}

// ValidStatus reports whether s is one of the appointment lifecycle states.
func ValidStatus(s string) bool {
	return s == StatusUpcoming || s == StatusCompleted || s == StatusCancelled
}

// BookingRequest carries both wizard steps of a booking submission:
// the selected slot and the contact details. Field-level validation is
// done by the booking wizard, not by binding tags, so that errors come
// back scoped to individual fields.
type BookingRequest struct {
	ServiceID     string `json:"serviceId"`
	StaffID       string `json:"staffId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Notes         string `json:"notes"`
	ReceiveEmails bool   `json:"receiveEmails"`
}

// RescheduleRequest moves an existing appointment to a new slot.
type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// BookingSuccess is the transient confirmation shown once on the dashboard
// after a booking, then discarded.
type BookingSuccess struct {
	Message       string `json:"message"`
	AppointmentID string `json:"appointmentId"`
	Date          string `json:"date"` // long-form label, e.g. "Monday, April 20, 2026"
	Time          string `json:"time"`
}

package model

import (
	"slices"
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment. Completed is
// never stored; it is derived when the appointment time has passed.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "Scheduled"
	AppointmentCancelled AppointmentStatus = "Cancelled"
	AppointmentCompleted AppointmentStatus = "Completed"
)

// AppointmentType is how the meeting takes place.
type AppointmentType string

const (
	AppointmentOnline   AppointmentType = "Online"
	AppointmentInPerson AppointmentType = "In-person"
)

// Advisor is a placement advisor students can book.
type Advisor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Office      string   `json:"office"`
	Specialties []string `json:"specialties"`
	Languages   []string `json:"languages"`
}

// Key returns the store key of the advisor.
func (a Advisor) Key() string { return a.ID }

// Clone returns a deep copy.
func (a Advisor) Clone() Advisor {
	a.Specialties = slices.Clone(a.Specialties)
	a.Languages = slices.Clone(a.Languages)
	return a
}

// Appointment is a booked meeting with an advisor.
type Appointment struct {
	ID              string            `json:"id"`
	AdvisorID       string            `json:"advisor_id"`
	AdvisorName     string            `json:"advisor_name"`
	DateTime        time.Time         `json:"date_time"`
	DurationMinutes int               `json:"duration_minutes"`
	Type            AppointmentType   `json:"type"`
	LocationOrLink  string            `json:"location_or_link"`
	Topic           string            `json:"topic,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Status          AppointmentStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Key returns the store key of the appointment.
func (a Appointment) Key() string { return a.ID }

// Clone returns a copy; Appointment holds no reference fields.
func (a Appointment) Clone() Appointment { return a }

// BookingRequest is the payload for booking or rescheduling.
// Date is YYYY-MM-DD and TimeSlot is HH:MM, both interpreted in UTC.
type BookingRequest struct {
	AdvisorID string          `json:"advisor_id"`
	Date      string          `json:"date"`
	TimeSlot  string          `json:"time_slot"`
	Type      AppointmentType `json:"type"`
	Topic     string          `json:"topic,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// Slot is a bookable time for an advisor.
type Slot struct {
	AdvisorID string    `json:"advisor_id"`
	DateTime  time.Time `json:"date_time"`
	TimeSlot  string    `json:"time_slot"`
}

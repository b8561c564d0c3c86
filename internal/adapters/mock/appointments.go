package mock

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/lifecycle"
	"github.com/okian/placement/internal/domain/model"
)

const (
	firstSlotHour = 9
	lastSlotHour  = 16
	slotMinutes   = 45

	dateLayout = "2006-01-02"
	slotLayout = "15:04"

	meetingBaseURL = "https://meet.placement.local/"
)

func meetingLink(id string) string { return meetingBaseURL + id }

func (s *Source) ListAdvisors(ctx context.Context) ([]model.Advisor, error) {
	const op = "appointments.list_advisors"
	if err := s.wait(ctx, op); err != nil {
		return nil, err
	}
	return s.advisors.List(ctx), nil
}

// ListSlots returns the hourly slots of the advisor's day that are still in
// the future and not held by a scheduled appointment.
func (s *Source) ListSlots(ctx context.Context, advisorID, date string) ([]model.Slot, error) {
	const op = "appointments.list_slots"
	if err := s.wait(ctx, op); err != nil {
		return nil, err
	}
	if _, err := s.advisors.Get(ctx, advisorID); err != nil {
		return nil, fault.Wrap(op, err)
	}
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return nil, fault.Validation(op, fmt.Sprintf("date %q must be YYYY-MM-DD", date))
	}

	now := s.now()
	taken := s.takenSlots(ctx, advisorID, "")
	slots := make([]model.Slot, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		at := day.Add(time.Duration(h) * time.Hour)
		if !at.After(now) || taken[at.Unix()] {
			continue
		}
		slots = append(slots, model.Slot{AdvisorID: advisorID, DateTime: at, TimeSlot: at.Format(slotLayout)})
	}
	return slots, nil
}

// ListAppointments returns every appointment with its derived status, soonest
// first.
func (s *Source) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	const op = "appointments.list"
	if err := s.wait(ctx, op); err != nil {
		return nil, err
	}
	now := s.now()
	list := s.appointments.List(ctx)
	for i := range list {
		list[i] = lifecycle.WithEffectiveStatus(list[i], now)
	}
	slices.SortStableFunc(list, func(a, b model.Appointment) int { return a.DateTime.Compare(b.DateTime) })
	return list, nil
}

func (s *Source) BookAppointment(ctx context.Context, req model.BookingRequest) (model.Appointment, error) {
	const op = "appointments.book"
	if err := s.wait(ctx, op); err != nil {
		return model.Appointment{}, err
	}
	if strings.TrimSpace(req.AdvisorID) == "" {
		return model.Appointment{}, fault.Validation(op, "advisor is required")
	}
	if err := validType(req.Type); err != nil {
		return model.Appointment{}, fault.Wrap(op, err)
	}
	adv, err := s.advisors.Get(ctx, req.AdvisorID)
	if err != nil {
		return model.Appointment{}, fault.Wrap(op, err)
	}
	now := s.now()
	at, err := slotTime(req.Date, req.TimeSlot, now)
	if err != nil {
		return model.Appointment{}, fault.Wrap(op, err)
	}

	s.bookMu.Lock()
	defer s.bookMu.Unlock()

	if s.takenSlots(ctx, adv.ID, "")[at.Unix()] {
		return model.Appointment{}, fault.Validation(op, "time slot is already booked")
	}

	id := uuid.NewString()
	a := model.Appointment{
		ID:              id,
		AdvisorID:       adv.ID,
		AdvisorName:     adv.Name,
		DateTime:        at,
		DurationMinutes: slotMinutes,
		Type:            req.Type,
		LocationOrLink:  location(req.Type, adv, id),
		Topic:           strings.TrimSpace(req.Topic),
		Notes:           strings.TrimSpace(req.Notes),
		Status:          model.AppointmentScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.appointments.Upsert(ctx, a); err != nil {
		return model.Appointment{}, fault.Wrap(op, err)
	}
	return a, nil
}

// RescheduleAppointment moves a scheduled appointment. An empty advisor or
// type in req keeps the current value.
func (s *Source) RescheduleAppointment(ctx context.Context, id string, req model.BookingRequest) (model.Appointment, error) {
	const op = "appointments.reschedule"
	if err := s.wait(ctx, op); err != nil {
		return model.Appointment{}, err
	}
	cur, err := s.appointments.Get(ctx, id)
	if err != nil {
		return model.Appointment{}, fault.Wrap(op, err)
	}

	advisorID := cmp.Or(strings.TrimSpace(req.AdvisorID), cur.AdvisorID)
	typ := cmp.Or(req.Type, cur.Type)
	if err := validType(typ); err != nil {
		return model.Appointment{}, fault.Wrap(op, err)
	}
	adv, err := s.advisors.Get(ctx, advisorID)
	if err != nil {
		return model.Appointment{}, fault.Wrap(op, err)
	}
	now := s.now()
	at, err := slotTime(req.Date, req.TimeSlot, now)
	if err != nil {
		return model.Appointment{}, fault.Wrap(op, err)
	}

	s.bookMu.Lock()
	defer s.bookMu.Unlock()

	if s.takenSlots(ctx, adv.ID, id)[at.Unix()] {
		return model.Appointment{}, fault.Validation(op, "time slot is already booked")
	}

	a, err := s.appointments.Update(ctx, id, func(a *model.Appointment) error {
		if err := lifecycle.Reschedule(a, at, now); err != nil {
			return err
		}
		keepLink := a.Type == model.AppointmentOnline && typ == model.AppointmentOnline
		a.AdvisorID = adv.ID
		a.AdvisorName = adv.Name
		a.Type = typ
		if !keepLink {
			a.LocationOrLink = location(typ, adv, a.ID)
		}
		if t := strings.TrimSpace(req.Topic); t != "" {
			a.Topic = t
		}
		if n := strings.TrimSpace(req.Notes); n != "" {
			a.Notes = n
		}
		return nil
	})
	return a, fault.Wrap(op, err)
}

// CancelAppointment cancels a scheduled appointment. Cancelling twice is
// not an error.
func (s *Source) CancelAppointment(ctx context.Context, id string) (model.Appointment, error) {
	const op = "appointments.cancel"
	if err := s.wait(ctx, op); err != nil {
		return model.Appointment{}, err
	}
	now := s.now()
	a, err := s.appointments.Update(ctx, id, func(a *model.Appointment) error {
		return lifecycle.Cancel(a, now)
	})
	if err != nil {
		return model.Appointment{}, fault.Wrap(op, err)
	}
	return lifecycle.WithEffectiveStatus(a, now), nil
}

// takenSlots returns the start times held by scheduled appointments of the
// advisor, ignoring the appointment named by except.
func (s *Source) takenSlots(ctx context.Context, advisorID, except string) map[int64]bool {
	taken := map[int64]bool{}
	for _, a := range s.appointments.List(ctx) {
		if a.AdvisorID == advisorID && a.ID != except && a.Status == model.AppointmentScheduled {
			taken[a.DateTime.Unix()] = true
		}
	}
	return taken
}

var errSlot = errors.New("time slot must be on the hour between 09:00 and 16:00")

// slotTime combines date and slot into a UTC instant and checks it is an
// offered slot that has not started yet.
func slotTime(date, slot string, now time.Time) (time.Time, error) {
	date, slot = strings.TrimSpace(date), strings.TrimSpace(slot)
	if date == "" {
		return time.Time{}, fmt.Errorf("date is required: %w", fault.ErrValidation)
	}
	if slot == "" {
		return time.Time{}, fmt.Errorf("time slot is required: %w", fault.ErrValidation)
	}
	at, err := time.ParseInLocation(dateLayout+" "+slotLayout, date+" "+slot, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q and slot %q must be YYYY-MM-DD and HH:MM: %w", date, slot, fault.ErrValidation)
	}
	if at.Minute() != 0 || at.Hour() < firstSlotHour || at.Hour() > lastSlotHour {
		return time.Time{}, fmt.Errorf("%w: %w", errSlot, fault.ErrValidation)
	}
	if !at.After(now) {
		return time.Time{}, fmt.Errorf("time slot is in the past: %w", fault.ErrValidation)
	}
	return at, nil
}

func validType(t model.AppointmentType) error {
	switch t {
	case model.AppointmentOnline, model.AppointmentInPerson:
		return nil
	case "":
		return fmt.Errorf("appointment type is required: %w", fault.ErrValidation)
	}
	return fmt.Errorf("appointment type %q must be Online or In-person: %w", t, fault.ErrValidation)
}

func location(t model.AppointmentType, adv model.Advisor, id string) string {
	if t == model.AppointmentInPerson {
		return adv.Office
	}
	return meetingLink(id)
}

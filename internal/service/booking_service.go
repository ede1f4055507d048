package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"bookiteasy/internal/model"
	"bookiteasy/internal/repository"
)

// BookingService runs the booking wizard end to end for one submission.
type BookingService interface {
	// Book validates both wizard steps and persists the appointment.
	// Validation failures come back as FieldErrors with a nil error and
	// nothing written; a persist failure returns FieldErrors carrying the
	// form-level banner plus the underlying error.
	Book(ctx context.Context, userID string, req model.BookingRequest) (*model.Appointment, FieldErrors, error)
}

type bookingService struct {
	appts   repository.AppointmentStore
	flash   repository.FlashStore
	catalog *repository.ServiceCatalog
	now     func() time.Time
}

// NewBookingService creates a new BookingService
func NewBookingService(appts repository.AppointmentStore, flash repository.FlashStore, catalog *repository.ServiceCatalog, now func() time.Time) BookingService {
	if now == nil {
		now = time.Now
	}
	return &bookingService{appts: appts, flash: flash, catalog: catalog, now: now}
}

func (s *bookingService) Book(ctx context.Context, userID string, req model.BookingRequest) (*model.Appointment, FieldErrors, error) {
	w := NewWizard()

	date := req.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	w.SelectSlot(SlotSelection{
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Date:      date,
		Time:      req.Time,
	})
	if !w.Continue() {
		return nil, w.Errors(), nil
	}

	w.EnterDetails(ContactDetails{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Notes:         req.Notes,
		ReceiveEmails: req.ReceiveEmails,
	})

	svc := s.catalog.Get(req.ServiceID)
	appt := &model.Appointment{
		ID:            "apt" + strconv.FormatInt(s.now().UnixMilli(), 10),
		Service:       svc.Name,
		Date:          date,
		Time:          req.Time,
		Staff:         s.catalog.StaffName(req.StaffID),
		Status:        model.StatusUpcoming,
		Price:         svc.Price,
		CustomerName:  strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName),
		CustomerEmail: req.Email,
		CustomerPhone: req.Phone,
		Notes:         req.Notes,
	}

	var persistErr error
	if !w.Submit(ctx, func(ctx context.Context) error {
		persistErr = s.appts.Create(ctx, appt)
		return persistErr
	}) {
		if persistErr != nil {
			return nil, w.Errors(), fmt.Errorf("failed to submit booking: %w", persistErr)
		}
		return nil, w.Errors(), nil
	}

	flash := model.BookingSuccess{
		Message:       fmt.Sprintf("Your %s appointment has been successfully booked!", svc.Name),
		AppointmentID: appt.ID,
		Date:          longDateLabel(date),
		Time:          req.Time,
	}
	// The booking already succeeded; a lost flash only costs the banner.
	if err := s.flash.Put(ctx, userID, flash); err != nil {
		log.Printf("WARN: booking %s stored but flash not recorded: %v", appt.ID, err)
	}

	return appt, nil, nil
}

func longDateLabel(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("Monday, January 2, 2006")
}

package service

import (
	"context"
	"errors"
	"fmt"

	"bookiteasy/internal/model"
	"bookiteasy/internal/repository"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("only upcoming appointments can be cancelled")
	ErrSlotNotSelected     = errors.New("a date and time must be selected")
	ErrInvalidStatusFilter = errors.New("invalid status filter")
)

// AppointmentService covers the dashboard operations: listing by status
// tab, cancelling, rescheduling, and consuming the booking flash.
type AppointmentService interface {
	// List filters by status; "" and "all" return everything, in
	// insertion order.
	List(ctx context.Context, status string) ([]model.Appointment, error)
	Cancel(ctx context.Context, id string) (*model.Appointment, error)
	Reschedule(ctx context.Context, id string, req model.RescheduleRequest) (*model.Appointment, error)
	// TakeFlash returns the pending booking confirmation once, or nil.
	TakeFlash(ctx context.Context, userID string) (*model.BookingSuccess, error)
}

type appointmentService struct {
	appts repository.AppointmentStore
	flash repository.FlashStore
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(appts repository.AppointmentStore, flash repository.FlashStore) AppointmentService {
	return &appointmentService{appts: appts, flash: flash}
}

func (s *appointmentService) List(ctx context.Context, status string) ([]model.Appointment, error) {
	if status != "" && status != "all" && !model.ValidStatus(status) {
		return nil, ErrInvalidStatusFilter
	}
	appts, err := s.appts.FindAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

func (s *appointmentService) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	appt, err := s.appts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment for cancel: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.Status != model.StatusUpcoming {
		return nil, ErrInvalidTransition
	}

	updated, err := s.appts.UpdateStatus(ctx, id, model.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	if updated == nil {
		return nil, ErrAppointmentNotFound
	}
	return updated, nil
}

func (s *appointmentService) Reschedule(ctx context.Context, id string, req model.RescheduleRequest) (*model.Appointment, error) {
	// Same guard as the wizard's first step: a slot must be chosen before
	// the confirm action does anything.
	if req.Date == "" || req.Time == "" {
		return nil, ErrSlotNotSelected
	}

	updated, err := s.appts.Reschedule(ctx, id, req.Date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to reschedule appointment: %w", err)
	}
	if updated == nil {
		return nil, ErrAppointmentNotFound
	}
	return updated, nil
}

func (s *appointmentService) TakeFlash(ctx context.Context, userID string) (*model.BookingSuccess, error) {
	flash, err := s.flash.Take(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to take booking flash: %w", err)
	}
	return flash, nil
}

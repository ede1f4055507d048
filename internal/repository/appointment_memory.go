package repository

import (
	"context"
	"sync"

	"bookiteasy/internal/model"
)

// memoryAppointmentStore keeps appointments in a slice so listings come
// back in insertion order, matching what the persistent store does with
// its position column.
type memoryAppointmentStore struct {
	mu    sync.RWMutex
	appts []model.Appointment
}

// NewMemoryAppointmentStore creates an in-memory AppointmentStore preloaded
// with seed appointments.
func NewMemoryAppointmentStore(seed []model.Appointment) AppointmentStore {
	s := &memoryAppointmentStore{}
	s.appts = append(s.appts, seed...)
	return s
}

func (s *memoryAppointmentStore) Create(_ context.Context, appt *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appts = append(s.appts, *appt)
	return nil
}

func (s *memoryAppointmentStore) FindByID(_ context.Context, id string) (*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.appts {
		if s.appts[i].ID == id {
			out := s.appts[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (s *memoryAppointmentStore) FindAll(_ context.Context, status string) ([]model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Appointment, 0, len(s.appts))
	for _, a := range s.appts {
		if status == "" || status == "all" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memoryAppointmentStore) Reschedule(_ context.Context, id, date, timeOfDay string) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appts {
		if s.appts[i].ID == id {
			s.appts[i].Date = date
			s.appts[i].Time = timeOfDay
			out := s.appts[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (s *memoryAppointmentStore) UpdateStatus(_ context.Context, id, status string) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appts {
		if s.appts[i].ID == id {
			s.appts[i].Status = status
			out := s.appts[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (s *memoryAppointmentStore) ClearUserAdded(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.appts[:0]
	for _, a := range s.appts {
		if a.Seeded {
			kept = append(kept, a)
		}
	}
	s.appts = kept
	return nil
}

package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"bookiteasy/internal/model"
	"bookiteasy/internal/repository"
)

// Business hours: half-hour slots, 09:00 through 17:30.
const (
	openingHour = 9
	closingHour = 17
	// AvailabilityProbability is the chance any one slot is offered.
	AvailabilityProbability = 0.7
)

// AvailabilityService produces multi-day windows of bookable slots.
// Availability is demo data drawn from an injected random source, so a
// seeded source makes the window reproducible; slots already taken by an
// upcoming appointment are withheld regardless of the draw.
type AvailabilityService interface {
	Window(ctx context.Context, start time.Time, days int) ([]model.Day, error)
}

type availabilityService struct {
	appts repository.AppointmentStore
	mu    sync.Mutex // rand.Rand is not safe for concurrent use
	rng   *rand.Rand
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(appts repository.AppointmentStore, rng *rand.Rand) AvailabilityService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &availabilityService{appts: appts, rng: rng}
}

func (s *availabilityService) Window(ctx context.Context, start time.Time, days int) ([]model.Day, error) {
	booked, err := s.bookedSlots(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	window := make([]model.Day, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		day := model.Day{
			Date:     date.Format("2006-01-02"),
			DayName:  date.Format("Mon"),
			MonthDay: date.Format("Jan 2"),
		}
		for hour := openingHour; hour <= closingHour; hour++ {
			for _, minute := range []int{0, 30} {
				slot := fmt.Sprintf("%02d:%02d", hour, minute)
				if booked[day.Date+" "+slot] {
					continue
				}
				if s.rng.Float64() < AvailabilityProbability {
					day.Slots = append(day.Slots, model.Slot{Time: slot, Available: true})
				}
			}
		}
		window = append(window, day)
	}
	return window, nil
}

func (s *availabilityService) bookedSlots(ctx context.Context) (map[string]bool, error) {
	upcoming, err := s.appts.FindAll(ctx, model.StatusUpcoming)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}
	booked := make(map[string]bool, len(upcoming))
	for _, a := range upcoming {
		booked[a.Date+" "+a.Time] = true
	}
	return booked, nil
}

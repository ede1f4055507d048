package repository

import (
	"time"

	"bookiteasy/internal/model"
)

// Demo fixtures. Both store flavors start from the same records so the
// dashboard always has something to show; seeded rows survive logout.

// SeedUsers returns the built-in demo accounts.
func SeedUsers() []model.User {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.User{
		{
			ID:        "1",
			Name:      "John Doe",
			Email:     "john@example.com",
			Avatar:    "JD",
			Role:      model.RoleUser,
			CreatedAt: created,
		},
		{
			ID:        "2",
			Name:      "Admin User",
			Email:     "admin@bookiteasy.com",
			Avatar:    "AU",
			Role:      model.RoleAdmin,
			CreatedAt: created,
		},
	}
}

// SeedAppointments returns the demo appointment history.
func SeedAppointments() []model.Appointment {
	return []model.Appointment{
		{ID: "apt1", Service: "Haircut & Styling", Date: "2025-04-20", Time: "10:00", Staff: "Alex Johnson", Status: model.StatusUpcoming, Price: "$35", Seeded: true},
		{ID: "apt2", Service: "Therapeutic Massage", Date: "2025-04-25", Time: "14:30", Staff: "Jamie Smith", Status: model.StatusUpcoming, Price: "$75", Seeded: true},
		{ID: "apt3", Service: "Facial Treatment", Date: "2025-03-15", Time: "11:00", Staff: "Taylor Wilson", Status: model.StatusCompleted, Price: "$65", Seeded: true},
		{ID: "apt4", Service: "Haircut & Styling", Date: "2025-03-05", Time: "09:30", Staff: "Alex Johnson", Status: model.StatusCompleted, Price: "$35", Seeded: true},
		{ID: "apt5", Service: "Therapeutic Massage", Date: "2025-03-01", Time: "16:00", Staff: "Jamie Smith", Status: model.StatusCancelled, Price: "$75", Seeded: true},
	}
}

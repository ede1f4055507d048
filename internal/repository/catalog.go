package repository

import (
	"sort"
	"strconv"
	"strings"

	"bookiteasy/internal/model"
)

// ServiceCatalog is the static set of bookable services and staff. The
// catalog is read-only demo data, so it lives in memory rather than in
// the database.
type ServiceCatalog struct {
	services []model.Service
	staff    []model.StaffMember
}

// CatalogFilters narrows and orders a catalog listing.
type CatalogFilters struct {
	Category string // "" or "all" matches everything
	Query    string // case-insensitive name search
	SortBy   string // "popular" (default), "price", "rating", "duration"
}

// NewServiceCatalog builds the demo catalog.
func NewServiceCatalog() *ServiceCatalog {
	return &ServiceCatalog{
		services: []model.Service{
			{
				ID:            "haircut",
				Name:          "Haircut & Styling",
				Description:   "Professional haircut and styling services for all hair types. Includes wash, cut, and basic styling.",
				Duration:      "45 min",
				Price:         "$35",
				OriginalPrice: "$45",
				Rating:        4.9,
				Reviews:       1250,
				Category:      "Hair",
				Popular:       true,
				Features:      []string{"Wash included", "Professional styling", "Hair consultation"},
			},
			{
				ID:            "massage",
				Name:          "Therapeutic Massage",
				Description:   "Relaxing massage therapy to relieve stress and muscle tension. Perfect for unwinding after a long day.",
				Duration:      "60 min",
				Price:         "$75",
				OriginalPrice: "$85",
				Rating:        4.8,
				Reviews:       890,
				Category:      "Wellness",
				Popular:       false,
				Features:      []string{"Deep tissue", "Stress relief", "Muscle recovery"},
			},
			{
				ID:            "facial",
				Name:          "Facial Treatment",
				Description:   "Rejuvenating facial treatment for healthy, glowing skin. Customized to your skin type and needs.",
				Duration:      "50 min",
				Price:         "$65",
				OriginalPrice: "$75",
				Rating:        4.7,
				Reviews:       670,
				Category:      "Beauty",
				Popular:       false,
				Features:      []string{"Skin analysis", "Custom treatment", "Moisturizing"},
			},
		},
		staff: []model.StaffMember{
			{ID: "staff1", Name: "Alex Johnson", Role: "Senior Stylist", Rating: 4.9, Experience: "8 years", Avatar: "AJ"},
			{ID: "staff2", Name: "Jamie Smith", Role: "Massage Therapist", Rating: 4.8, Experience: "6 years", Avatar: "JS"},
			{ID: "staff3", Name: "Taylor Wilson", Role: "Esthetician", Rating: 4.7, Experience: "5 years", Avatar: "TW"},
		},
	}
}

// List returns services matching the filters, ordered per SortBy.
func (c *ServiceCatalog) List(filters CatalogFilters) []model.Service {
	out := make([]model.Service, 0, len(c.services))
	for _, s := range c.services {
		if filters.Query != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filters.Query)) {
			continue
		}
		if filters.Category != "" && filters.Category != "all" && !strings.EqualFold(s.Category, filters.Category) {
			continue
		}
		out = append(out, s)
	}

	switch filters.SortBy {
	case "price":
		sort.SliceStable(out, func(i, j int) bool {
			return priceValue(out[i].Price) < priceValue(out[j].Price)
		})
	case "rating":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case "duration":
		sort.SliceStable(out, func(i, j int) bool {
			return durationMinutes(out[i].Duration) < durationMinutes(out[j].Duration)
		})
	default: // popular first, then by review volume
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Popular != out[j].Popular {
				return out[i].Popular
			}
			return out[i].Reviews > out[j].Reviews
		})
	}
	return out
}

// Get returns the service with the given ID, or a default placeholder
// service for unknown IDs so booking links never dead-end.
func (c *ServiceCatalog) Get(id string) model.Service {
	for _, s := range c.services {
		if s.ID == id {
			return s
		}
	}
	return model.Service{
		ID:            "default",
		Name:          "Default Service",
		Description:   "This is a default service.",
		Duration:      "30 min",
		Price:         "$25",
		OriginalPrice: "$30",
		Rating:        4.5,
		Reviews:       100,
		Category:      "General",
		Features:      []string{"Professional service"},
	}
}

// Staff lists the selectable providers.
func (c *ServiceCatalog) Staff() []model.StaffMember {
	return c.staff
}

// StaffName resolves a staff ID to a display name, falling back to
// "Any Available Staff" when the ID is empty or unknown.
func (c *ServiceCatalog) StaffName(id string) string {
	for _, m := range c.staff {
		if m.ID == id {
			return m.Name
		}
	}
	return model.AnyAvailableStaff
}

func priceValue(display string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(display, "$"))
	return n
}

func durationMinutes(display string) int {
	n, _ := strconv.Atoi(strings.TrimSuffix(display, " min"))
	return n
}

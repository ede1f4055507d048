package model

// Service is a bookable offering from the catalog.
type Service struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Duration      string   `json:"duration"` // display string, e.g. "45 min"
	Price         string   `json:"price"`
	OriginalPrice string   `json:"originalPrice"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Category      string   `json:"category"`
	Popular       bool     `json:"popular"`
	Features      []string `json:"features"`
}

// StaffMember is a provider a customer can request for an appointment.
type StaffMember struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Rating     float64 `json:"rating"`
	Experience string  `json:"experience"`
	Avatar     string  `json:"avatar"`
}

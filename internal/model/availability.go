package model

// Slot is a half-hour offset within a business day.
type Slot struct {
	Time      string `json:"time"` // HH:MM
	Available bool   `json:"available"`
}

// Day is one calendar day of availability. Days are ephemeral UI
// scaffolding: they are regenerated per request and never persisted.
type Day struct {
	Date     string `json:"date"`     // YYYY-MM-DD
	DayName  string `json:"dayName"`  // "Mon"
	MonthDay string `json:"monthDay"` // "Apr 20"
	Slots    []Slot `json:"slots"`
}

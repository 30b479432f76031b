package models

import "time"

// Slot identifies a half-day window used to rate-limit exchange rate fetches
type Slot string

const (
	SlotAM Slot = "AM" // local hour < 12
	SlotPM Slot = "PM" // local hour >= 12
)

// SlotFor returns the half-day slot for the given local time
func SlotFor(t time.Time) Slot {
	if t.Hour() < 12 {
		return SlotAM
	}
	return SlotPM
}

// RateSnapshot is one cached XMR/EUR exchange rate fetch
type RateSnapshot struct {
	EURPerXMR float64 `json:"eur"`
	Date      string  `json:"date"` // ISO date, e.g. "2026-08-28"
	Slot      Slot    `json:"slot"`
}

// FreshAt reports whether the snapshot can be reused at the given time:
// same calendar day and same AM/PM slot
func (s *RateSnapshot) FreshAt(t time.Time) bool {
	if s == nil {
		return false
	}
	return s.Date == t.Format("2006-01-02") && s.Slot == SlotFor(t)
}

// RateQuote is what checkout reads: a fallback-guaranteed rate plus status
type RateQuote struct {
	EURPerXMR float64 `json:"eur_per_xmr"`
	Loading   bool    `json:"loading"`
	Error     string  `json:"error,omitempty"`
	Date      string  `json:"date,omitempty"`
	Slot      Slot    `json:"slot,omitempty"`
	Fallback  bool    `json:"fallback"` // true when no live snapshot backs the value
}

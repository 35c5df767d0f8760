package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of wall-clock minutes in a day
const MinutesPerDay = 24 * 60

// TimeOfDay represents a wall-clock time without a date
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay creates a validated TimeOfDay
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("hour must be between 0 and 23, got %d", hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute must be between 0 and 59, got %d", minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay parses a 24-hour "HH:MM" value
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hourPart, minutePart, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q (expected HH:MM)", s)
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	return NewTimeOfDay(hour, minute)
}

// TimeOfDayFromMinutes converts minutes since midnight into a TimeOfDay
func TimeOfDayFromMinutes(minutes int) TimeOfDay {
	return TimeOfDay{Hour: minutes / 60, Minute: minutes % 60}
}

// TimeOfDayOf returns the wall-clock time of t in its own location
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns minutes since midnight
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is earlier than other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// String returns the 24-hour "HH:MM" form
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Label returns the 12-hour form, e.g. "8:15 AM"
func (t TimeOfDay) Label() string {
	suffix := "AM"
	if t.Hour >= 12 {
		suffix = "PM"
	}
	hour := t.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, suffix)
}

// On places t on the calendar day of day, in day's location
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// BusinessHours holds a store's opening window for a single day.
// Either end may be absent, which means the store takes no bookings.
type BusinessHours struct {
	Open  *TimeOfDay
	Close *TimeOfDay
}

// NewBusinessHours parses "HH:MM" values. Empty strings leave that end absent.
func NewBusinessHours(open, close string) (BusinessHours, error) {
	var hours BusinessHours
	if strings.TrimSpace(open) != "" {
		o, err := ParseTimeOfDay(open)
		if err != nil {
			return BusinessHours{}, fmt.Errorf("open: %w", err)
		}
		hours.Open = &o
	}
	if strings.TrimSpace(close) != "" {
		c, err := ParseTimeOfDay(close)
		if err != nil {
			return BusinessHours{}, fmt.Errorf("close: %w", err)
		}
		hours.Close = &c
	}
	if hours.Open != nil && hours.Close != nil && hours.Close.Before(*hours.Open) {
		return BusinessHours{}, fmt.Errorf("close %s cannot be before open %s", hours.Close, hours.Open)
	}
	return hours, nil
}

// IsSet reports whether both ends of the window are present
func (h BusinessHours) IsSet() bool {
	return h.Open != nil && h.Close != nil
}

// String renders the window as "HH:MM - HH:MM"
func (h BusinessHours) String() string {
	if !h.IsSet() {
		return "closed"
	}
	return fmt.Sprintf("%s - %s", h.Open, h.Close)
}

// PickupSlot is a bookable pickup time. Slots are generated, never persisted.
type PickupSlot struct {
	Value string    `json:"value"`
	Label string    `json:"label"`
	Time  TimeOfDay `json:"-"`
}

// NewPickupSlot builds the slot for a wall-clock time
func NewPickupSlot(t TimeOfDay) PickupSlot {
	return PickupSlot{Value: t.String(), Label: t.Label(), Time: t}
}

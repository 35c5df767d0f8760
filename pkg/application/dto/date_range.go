package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

// ParseDateRange reads optional YYYY-MM-DD bounds in loc. The end day is
// included through its last instant.
func ParseDateRange(start, end string, loc *time.Location) (entities.DateRange, error) {
	if loc == nil {
		loc = time.Local
	}

	var dateRange entities.DateRange
	if raw := strings.TrimSpace(start); raw != "" {
		day, err := time.ParseInLocation(DateLayout, raw, loc)
		if err != nil {
			return entities.DateRange{}, fmt.Errorf("invalid start date %q (expected YYYY-MM-DD)", raw)
		}
		dateRange.Start = &day
	}
	if raw := strings.TrimSpace(end); raw != "" {
		day, err := time.ParseInLocation(DateLayout, raw, loc)
		if err != nil {
			return entities.DateRange{}, fmt.Errorf("invalid end date %q (expected YYYY-MM-DD)", raw)
		}
		last := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		dateRange.End = &last
	}
	if dateRange.IsSet() && dateRange.End.Before(*dateRange.Start) {
		return entities.DateRange{}, fmt.Errorf("end date cannot be before start date")
	}
	return dateRange, nil
}

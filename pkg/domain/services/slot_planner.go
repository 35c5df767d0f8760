package services

import (
	"fmt"
	"time"

	"github.com/vsinha/liquorstore/pkg/domain/entities"
)

const (
	// DefaultSlotStepMinutes is the spacing between offered pickup slots
	DefaultSlotStepMinutes = 30
	// DefaultSlotRoundingMinutes is the boundary the first slot is rounded up to
	DefaultSlotRoundingMinutes = 15
)

// PickupSlotPlanner derives bookable pickup slots from business hours and the current time
type PickupSlotPlanner struct {
	stepMinutes     int
	roundingMinutes int
}

// NewPickupSlotPlanner creates a planner with 30-minute slots starting on a quarter-hour
func NewPickupSlotPlanner() *PickupSlotPlanner {
	return &PickupSlotPlanner{
		stepMinutes:     DefaultSlotStepMinutes,
		roundingMinutes: DefaultSlotRoundingMinutes,
	}
}

// NewPickupSlotPlannerWithIntervals creates a planner with custom step and rounding
func NewPickupSlotPlannerWithIntervals(stepMinutes, roundingMinutes int) (*PickupSlotPlanner, error) {
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("slot step must be positive, got %d", stepMinutes)
	}
	if roundingMinutes <= 0 {
		return nil, fmt.Errorf("slot rounding must be positive, got %d", roundingMinutes)
	}
	return &PickupSlotPlanner{
		stepMinutes:     stepMinutes,
		roundingMinutes: roundingMinutes,
	}, nil
}

// GenerateSlots returns the ordered pickup slots still bookable today.
// The first slot is max(open, now) rounded up to the rounding boundary; slots
// follow every step minutes up to and including the closing time. Absent,
// inverted or already-passed hours yield an empty sequence.
func (p *PickupSlotPlanner) GenerateSlots(hours entities.BusinessHours, now time.Time) []entities.PickupSlot {
	slots := []entities.PickupSlot{}
	if !hours.IsSet() {
		return slots
	}

	openAt := hours.Open.Minutes()
	closeAt := hours.Close.Minutes()
	if closeAt < openAt {
		return slots
	}

	start := max(openAt, entities.TimeOfDayOf(now).Minutes())
	start = roundUp(start, p.roundingMinutes)

	for m := start; m <= closeAt && m < entities.MinutesPerDay; m += p.stepMinutes {
		slots = append(slots, entities.NewPickupSlot(entities.TimeOfDayFromMinutes(m)))
	}
	return slots
}

// IsValidSlot reports whether candidate matches the value of one of slots
func IsValidSlot(candidate string, slots []entities.PickupSlot) bool {
	for _, slot := range slots {
		if slot.Value == candidate {
			return true
		}
	}
	return false
}

func roundUp(minutes, boundary int) int {
	if rem := minutes % boundary; rem != 0 {
		return minutes + boundary - rem
	}
	return minutes
}

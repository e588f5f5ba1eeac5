package wellness

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Validation errors returned by ValidateEntry.
var (
	ErrMoodOutOfRange       = errors.New("mood must be between 1 and 5")
	ErrNegativeScreenTime   = errors.New("screen time cannot be negative")
	ErrScreenTimeExceedsDay = errors.New("screen time cannot exceed 24 hours")
	ErrInvalidHours         = errors.New("screen time must be a finite number")
	ErrNegativeCategory     = errors.New("category hours cannot be negative")
	ErrInvalidDate          = errors.New("date must be in YYYY-MM-DD format")
)

// HoursPerDay is the upper bound for any screen-time figure.
const HoursPerDay = 24.0

// ValidateHours checks a single screen-time figure.
func ValidateHours(h float64) error {
	switch {
	case math.IsNaN(h) || math.IsInf(h, 0):
		return ErrInvalidHours
	case h < 0:
		return ErrNegativeScreenTime
	case h > HoursPerDay:
		return ErrScreenTimeExceedsDay
	}
	return nil
}

// ValidateEntry rejects out-of-domain input before it reaches the
// recommendation engine. When a breakdown is present its categories are
// checked individually and their sum replaces ScreenTime.
func ValidateEntry(e *DailyEntry) error {
	if !e.Mood.Valid() {
		return fmt.Errorf("%w (got %d)", ErrMoodOutOfRange, e.Mood)
	}
	if _, err := time.Parse(DateFormat, e.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, e.Date)
	}

	if b := e.Breakdown; b != nil {
		for name, h := range map[string]float64{
			"study":         b.Study,
			"social":        b.Social,
			"entertainment": b.Entertainment,
		} {
			if math.IsNaN(h) || math.IsInf(h, 0) {
				return fmt.Errorf("%s: %w", name, ErrInvalidHours)
			}
			if h < 0 {
				return fmt.Errorf("%s: %w", name, ErrNegativeCategory)
			}
		}
		e.ScreenTime = b.Total()
	}

	return ValidateHours(e.ScreenTime)
}

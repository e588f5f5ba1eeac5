package wellness

import "time"

// UsageBand classifies a day's total screen time.
type UsageBand string

const (
	UsageHealthy  UsageBand = "healthy"
	UsageModerate UsageBand = "moderate"
	UsageHigh     UsageBand = "high"
)

// ClassifyUsage buckets screen time: up to 2h is healthy, up to 5h moderate,
// anything above is high exposure.
func ClassifyUsage(hours float64) UsageBand {
	switch {
	case hours <= 2:
		return UsageHealthy
	case hours <= 5:
		return UsageModerate
	default:
		return UsageHigh
	}
}

// Message returns the short status line shown next to the band.
func (b UsageBand) Message() string {
	switch b {
	case UsageHealthy:
		return "Healthy screen usage"
	case UsageModerate:
		return "Moderate usage"
	default:
		return "High screen exposure"
	}
}

// LoadLocation loads an IANA timezone. Empty or "Local" returns time.Local.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// Today returns the current calendar date in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(DateFormat)
}

// PreviousDay returns the calendar date before date. The input must already
// be valid.
func PreviousDay(date string) string {
	t, err := time.Parse(DateFormat, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateFormat)
}

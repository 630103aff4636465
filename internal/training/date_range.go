package training

import "time"

// DateRange is an inclusive [Start, End] interval.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ThisWeek returns the Monday-to-Sunday week containing now.
func ThisWeek(now time.Time) DateRange {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	monday := DateOnly(now).AddDate(0, 0, -(weekday - 1))
	return DateRange{
		Start: monday,
		End:   monday.AddDate(0, 0, 7).Add(-time.Nanosecond),
	}
}

func MonthRange(year int, month time.Month) DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}
}

func YearRange(year int) DateRange {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{
		Start: start,
		End:   start.AddDate(1, 0, 0).Add(-time.Nanosecond),
	}
}

// DateOnly normalizes t to midnight of its calendar day. Grouping by calendar
// fields (not 24h truncation) keeps sets on month/year boundaries in the right
// bucket regardless of time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

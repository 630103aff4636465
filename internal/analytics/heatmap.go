package analytics

import (
	"time"

	"github.com/bstanar/gymtree/internal/training"
)

// Intensity classifies how much activity a single day saw.
type Intensity string

const (
	IntensityNone     Intensity = "none"
	IntensityLow      Intensity = "low"
	IntensityMedium   Intensity = "medium"
	IntensityHigh     Intensity = "high"
	IntensityVeryHigh Intensity = "veryHigh"
)

// IntensityForCount maps a per-day count onto the fixed intensity bands:
// 0 none, 1 low, 2-19 medium, 20-29 high, 30+ veryHigh.
func IntensityForCount(count int) Intensity {
	switch {
	case count <= 0:
		return IntensityNone
	case count == 1:
		return IntensityLow
	case count < 20:
		return IntensityMedium
	case count < 30:
		return IntensityHigh
	default:
		return IntensityVeryHigh
	}
}

// ActivityHeatmapData is the per-day activity view for a year or month.
// Day keys use the "2006-01-02" format; days without activity are absent
// from the maps and read as zero/none.
type ActivityHeatmapData struct {
	UserID         string               `json:"userId"`
	Year           int                  `json:"year"`
	Month          time.Month           `json:"month,omitempty"`
	ProgramID      string               `json:"programId,omitempty"`
	DailySetCounts map[string]int       `json:"dailySetCounts"`
	Intensity      map[string]Intensity `json:"intensity"`
	TotalSets      int                  `json:"totalSets"`
	CurrentStreak  int                  `json:"currentStreak"`
	LongestStreak  int                  `json:"longestStreak"`
	FetchedAt      time.Time            `json:"fetchedAt"`
}

func (d ActivityHeatmapData) CountOn(year int, month time.Month, day int) int {
	return d.DailySetCounts[time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)]
}

func (d ActivityHeatmapData) IntensityOn(year int, month time.Month, day int) Intensity {
	return IntensityForCount(d.CountOn(year, month, day))
}

// GenerateSetBasedHeatmapData builds a heatmap from raw sets. Only checked
// sets within the range are counted; grouping is by the set's calendar day,
// so a set on the last instant of December lands in December and one on the
// first instant of January lands in January.
func GenerateSetBasedHeatmapData(
	userID string,
	dateRange training.DateRange,
	programID string,
	sets []training.ExerciseSet,
	now time.Time,
) ActivityHeatmapData {
	data := ActivityHeatmapData{
		UserID:         userID,
		Year:           dateRange.Start.Year(),
		ProgramID:      programID,
		DailySetCounts: make(map[string]int),
		Intensity:      make(map[string]Intensity),
		FetchedAt:      now,
	}
	if sameMonth(dateRange) {
		data.Month = dateRange.Start.Month()
	}

	days := make(map[time.Time]int)
	for _, set := range sets {
		if !set.Checked {
			continue
		}
		if !dateRange.Contains(set.CreatedAt) {
			continue
		}
		days[training.DateOnly(set.CreatedAt)]++
		data.TotalSets++
	}

	for day, count := range days {
		key := day.Format(time.DateOnly)
		data.DailySetCounts[key] = count
		data.Intensity[key] = IntensityForCount(count)
	}

	data.CurrentStreak = currentStreak(days, now)
	data.LongestStreak = longestStreak(days)
	return data
}

// FromWorkouts is the whole-year view counting workouts per calendar day
// instead of checked sets.
func FromWorkouts(userID string, year int, workouts []training.Workout, now time.Time) ActivityHeatmapData {
	data := ActivityHeatmapData{
		UserID:         userID,
		Year:           year,
		DailySetCounts: make(map[string]int),
		Intensity:      make(map[string]Intensity),
		FetchedAt:      now,
	}

	yearRange := training.YearRange(year)
	days := make(map[time.Time]int)
	for _, workout := range workouts {
		if !yearRange.Contains(workout.CreatedAt) {
			continue
		}
		days[training.DateOnly(workout.CreatedAt)]++
		data.TotalSets++
	}

	for day, count := range days {
		key := day.Format(time.DateOnly)
		data.DailySetCounts[key] = count
		data.Intensity[key] = IntensityForCount(count)
	}

	data.CurrentStreak = currentStreak(days, now)
	data.LongestStreak = longestStreak(days)
	return data
}

// currentStreak counts consecutive active days ending at today. A streak
// still running yesterday (nothing logged yet today) is not broken, the
// walk may start one day back.
func currentStreak(days map[time.Time]int, now time.Time) int {
	day := training.DateOnly(now)
	if days[day] == 0 {
		day = day.AddDate(0, 0, -1)
		if days[day] == 0 {
			return 0
		}
	}

	streak := 0
	for days[day] > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak finds the longest run of consecutive active days anywhere
// in the data.
func longestStreak(days map[time.Time]int) int {
	longest := 0
	for day := range days {
		// only start counting at the beginning of a run
		if days[day.AddDate(0, 0, -1)] > 0 {
			continue
		}
		streak := 0
		for d := day; days[d] > 0; d = d.AddDate(0, 0, 1) {
			streak++
		}
		if streak > longest {
			longest = streak
		}
	}
	return longest
}

func sameMonth(dateRange training.DateRange) bool {
	return dateRange.Start.Year() == dateRange.End.Year() &&
		dateRange.Start.Month() == dateRange.End.Month()
}

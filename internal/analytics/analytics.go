package analytics

import (
	"github.com/bstanar/gymtree/internal/training"
)

// WorkoutAnalytics summarizes a user's training over a date range.
type WorkoutAnalytics struct {
	UserID                string                       `json:"userId"`
	Range                 training.DateRange           `json:"range"`
	TotalWorkouts         int                          `json:"totalWorkouts"`
	TotalSets             int                          `json:"totalSets"`
	TotalVolume           float64                      `json:"totalVolume"`
	ExerciseTypeBreakdown map[training.ExerciseType]int `json:"exerciseTypeBreakdown"`
	AverageSetsPerWorkout float64                      `json:"averageSetsPerWorkout"`
	// mean, per workout in range, of the summed set durations (seconds)
	AverageWorkoutDuration float64               `json:"averageWorkoutDuration"`
	MostUsedExerciseType   training.ExerciseType `json:"mostUsedExerciseType,omitempty"`
	CompletedWorkoutIDs    []string              `json:"completedWorkoutIds"`
}

// ComputeWorkoutAnalytics aggregates already-fetched entities, it never
// touches the store. A workout counts iff its creation time falls inside
// the inclusive range; exercises and sets count iff they belong to a
// counted workout. Empty input yields a zeroed result, never an error.
func ComputeWorkoutAnalytics(
	userID string,
	dateRange training.DateRange,
	workouts []training.Workout,
	exercises []training.Exercise,
	sets []training.ExerciseSet,
) WorkoutAnalytics {
	analytics := WorkoutAnalytics{
		UserID:                userID,
		Range:                 dateRange,
		ExerciseTypeBreakdown: make(map[training.ExerciseType]int),
		CompletedWorkoutIDs:   make([]string, 0),
	}

	completedWorkouts := make(map[string]bool)
	for _, workout := range workouts {
		if !dateRange.Contains(workout.CreatedAt) {
			continue
		}
		completedWorkouts[workout.ID] = true
		analytics.CompletedWorkoutIDs = append(analytics.CompletedWorkoutIDs, workout.ID)
	}
	analytics.TotalWorkouts = len(analytics.CompletedWorkoutIDs)

	for _, exercise := range exercises {
		if !completedWorkouts[exercise.WorkoutID] {
			continue
		}
		analytics.ExerciseTypeBreakdown[exercise.Type]++
	}
	analytics.MostUsedExerciseType = mostUsedType(analytics.ExerciseTypeBreakdown)

	durationPerWorkout := make(map[string]int)
	for _, set := range sets {
		if !completedWorkouts[set.WorkoutID] {
			continue
		}
		analytics.TotalSets++
		// sets missing weight or reps contribute 0 volume, not an error
		analytics.TotalVolume += set.Volume()
		if set.DurationSeconds != nil {
			durationPerWorkout[set.WorkoutID] += *set.DurationSeconds
		}
	}

	if analytics.TotalWorkouts > 0 {
		analytics.AverageSetsPerWorkout = float64(analytics.TotalSets) / float64(analytics.TotalWorkouts)
		totalDuration := 0
		for _, workoutID := range analytics.CompletedWorkoutIDs {
			totalDuration += durationPerWorkout[workoutID]
		}
		analytics.AverageWorkoutDuration = float64(totalDuration) / float64(analytics.TotalWorkouts)
	}

	return analytics
}

// mostUsedType picks the exercise type with the highest count. Ties go to
// the type declared first in training.ExerciseTypes, so the result is
// stable regardless of map iteration order.
func mostUsedType(breakdown map[training.ExerciseType]int) training.ExerciseType {
	var best training.ExerciseType
	bestCount := 0
	for _, exerciseType := range training.ExerciseTypes {
		if count := breakdown[exerciseType]; count > bestCount {
			best = exerciseType
			bestCount = count
		}
	}
	return best
}

package training

import (
	"fmt"
	"time"
)

// The training hierarchy is Program -> Week -> Workout -> Exercise -> ExerciseSet.
// Entities are flat and carry explicit parent ids all the way up, so any level
// can be queried or counted directly without walking the tree in memory.

type Program struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Week struct {
	ID        string    `json:"id"`
	ProgramID string    `json:"programId"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Workout struct {
	ID         string    `json:"id"`
	WeekID     string    `json:"weekId"`
	ProgramID  string    `json:"programId"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	DayOfWeek  *int      `json:"dayOfWeek,omitempty"` // 0-6, nil when not scheduled
	OrderIndex int       `json:"orderIndex"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Exercise struct {
	ID         string       `json:"id"`
	WorkoutID  string       `json:"workoutId"`
	WeekID     string       `json:"weekId"`
	ProgramID  string       `json:"programId"`
	UserID     string       `json:"userId"`
	Name       string       `json:"name"`
	Type       ExerciseType `json:"exerciseType"`
	OrderIndex int          `json:"orderIndex"`
	Notes      *string      `json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type ExerciseSet struct {
	ID         string `json:"id"`
	ExerciseID string `json:"exerciseId"`
	WorkoutID  string `json:"workoutId"`
	WeekID     string `json:"weekId"`
	ProgramID  string `json:"programId"`
	UserID     string `json:"userId"`
	SetNumber  int    `json:"setNumber"`
	Checked    bool   `json:"checked"`

	// metric fields, all optional; which ones apply depends on the exercise type
	Reps            *int     `json:"reps,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	DurationSeconds *int     `json:"duration,omitempty"`
	Distance        *float64 `json:"distance,omitempty"`
	RestSeconds     *int     `json:"restTime,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Volume is weight x reps; sets missing either metric contribute 0.
func (s ExerciseSet) Volume() float64 {
	if s.Weight == nil || s.Reps == nil {
		return 0
	}
	return *s.Weight * float64(*s.Reps)
}

func (s ExerciseSet) metric(field MetricField) bool {
	switch field {
	case MetricReps:
		return s.Reps != nil
	case MetricWeight:
		return s.Weight != nil
	case MetricDuration:
		return s.DurationSeconds != nil
	case MetricDistance:
		return s.Distance != nil
	case MetricRestTime:
		return s.RestSeconds != nil
	}
	return false
}

func (s ExerciseSet) HasAnyMetric() bool {
	return s.Reps != nil || s.Weight != nil || s.DurationSeconds != nil ||
		s.Distance != nil || s.RestSeconds != nil
}

// ValidateMetrics checks the set against the metric requirements of the given
// exercise type. Custom sets just need at least one metric present.
func (s ExerciseSet) ValidateMetrics(exerciseType ExerciseType) error {
	if !exerciseType.Valid() {
		return fmt.Errorf("unknown exercise type: %s", exerciseType)
	}

	if exerciseType == ExerciseTypeCustom {
		if !s.HasAnyMetric() {
			return fmt.Errorf("custom set %s has no metrics", s.ID)
		}
		return nil
	}

	for _, field := range MetricsByType[exerciseType].Required {
		if !s.metric(field) {
			return fmt.Errorf("set %s missing required metric %q for type %s", s.ID, field, exerciseType)
		}
	}
	return nil
}

package training

type ExerciseType string

const (
	ExerciseTypeStrength   ExerciseType = "strength"
	ExerciseTypeCardio     ExerciseType = "cardio"
	ExerciseTypeBodyweight ExerciseType = "bodyweight"
	ExerciseTypeCustom     ExerciseType = "custom"
	ExerciseTypeTimeBased  ExerciseType = "timeBased"
)

// ExerciseTypes holds all known types in declaration order. Analytics
// tie-breaks (most used type) rely on this order being stable.
var ExerciseTypes = []ExerciseType{
	ExerciseTypeStrength,
	ExerciseTypeCardio,
	ExerciseTypeBodyweight,
	ExerciseTypeCustom,
	ExerciseTypeTimeBased,
}

func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseTypeStrength, ExerciseTypeCardio, ExerciseTypeBodyweight,
		ExerciseTypeCustom, ExerciseTypeTimeBased:
		return true
	}
	return false
}

// TracksDuration reports whether duration is the primary metric for the type,
// i.e. whether duration personal records apply.
func (t ExerciseType) TracksDuration() bool {
	return t == ExerciseTypeCardio || t == ExerciseTypeTimeBased
}

type MetricField string

const (
	MetricReps     MetricField = "reps"
	MetricWeight   MetricField = "weight"
	MetricDuration MetricField = "duration"
	MetricDistance MetricField = "distance"
	MetricRestTime MetricField = "restTime"
)

type MetricRequirements struct {
	Required []MetricField
	Optional []MetricField
}

// MetricsByType maps each exercise type to the set metrics it needs.
// Custom has no fixed required metric, but a custom set must carry at
// least one metric (checked in ExerciseSet.ValidateMetrics).
var MetricsByType = map[ExerciseType]MetricRequirements{
	ExerciseTypeStrength: {
		Required: []MetricField{MetricReps, MetricWeight},
		Optional: []MetricField{MetricRestTime},
	},
	ExerciseTypeCardio: {
		Required: []MetricField{MetricDuration},
		Optional: []MetricField{MetricDistance, MetricRestTime},
	},
	ExerciseTypeBodyweight: {
		Required: []MetricField{MetricReps},
		Optional: []MetricField{MetricWeight, MetricRestTime},
	},
	ExerciseTypeCustom: {
		Optional: []MetricField{MetricReps, MetricWeight, MetricDuration, MetricDistance, MetricRestTime},
	},
	ExerciseTypeTimeBased: {
		Required: []MetricField{MetricDuration},
		Optional: []MetricField{MetricRestTime},
	},
}

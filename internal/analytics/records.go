package analytics

import (
	"fmt"
	"time"

	"github.com/bstanar/gymtree/internal/training"
)

type PRType string

const (
	PRMaxWeight   PRType = "maxWeight"
	PRMaxVolume   PRType = "maxVolume"
	PRMaxDuration PRType = "maxDuration"
)

// PersonalRecord marks a set that strictly beat the best prior value for
// its exercise and metric.
type PersonalRecord struct {
	UserID        string                `json:"userId"`
	ExerciseID    string                `json:"exerciseId"`
	ExerciseName  string                `json:"exerciseName"`
	ExerciseType  training.ExerciseType `json:"exerciseType"`
	Type          PRType                `json:"prType"`
	Value         float64               `json:"value"`
	PreviousValue *float64              `json:"previousValue,omitempty"`
	AchievedAt    time.Time             `json:"achievedAt"`
	WorkoutID     string                `json:"workoutId"`
	SetID         string                `json:"setId"`
}

// Improvement is the delta over the previous best, or the full value for a
// first-ever record.
func (pr PersonalRecord) Improvement() float64 {
	if pr.PreviousValue == nil {
		return pr.Value
	}
	return pr.Value - *pr.PreviousValue
}

// ImprovementString formats the improvement with an explicit sign, e.g. "+5".
func (pr PersonalRecord) ImprovementString() string {
	return fmt.Sprintf("%+g", pr.Improvement())
}

// DetectRecords compares a candidate set against the exercise's history and
// returns a record per metric the candidate strictly improved. Equalling
// the previous best is not a record. A metric with no prior value at all
// yields a first-ever record with a nil previous value.
func DetectRecords(
	userID string,
	exercise training.Exercise,
	candidate training.ExerciseSet,
	history []training.ExerciseSet,
) []PersonalRecord {
	records := make([]PersonalRecord, 0)

	newRecord := func(prType PRType, value float64, previous *float64) PersonalRecord {
		return PersonalRecord{
			UserID:        userID,
			ExerciseID:    exercise.ID,
			ExerciseName:  exercise.Name,
			ExerciseType:  exercise.Type,
			Type:          prType,
			Value:         value,
			PreviousValue: previous,
			AchievedAt:    candidate.CreatedAt,
			WorkoutID:     candidate.WorkoutID,
			SetID:         candidate.ID,
		}
	}

	if candidate.Weight != nil {
		best := bestPrior(history, candidate.ID, func(s training.ExerciseSet) (float64, bool) {
			if s.Weight == nil {
				return 0, false
			}
			return *s.Weight, true
		})
		if best == nil || *candidate.Weight > *best {
			records = append(records, newRecord(PRMaxWeight, *candidate.Weight, best))
		}
	}

	if volume := candidate.Volume(); volume > 0 {
		best := bestPrior(history, candidate.ID, func(s training.ExerciseSet) (float64, bool) {
			v := s.Volume()
			return v, v > 0
		})
		if best == nil || volume > *best {
			records = append(records, newRecord(PRMaxVolume, volume, best))
		}
	}

	if candidate.DurationSeconds != nil && exercise.Type.TracksDuration() {
		best := bestPrior(history, candidate.ID, func(s training.ExerciseSet) (float64, bool) {
			if s.DurationSeconds == nil {
				return 0, false
			}
			return float64(*s.DurationSeconds), true
		})
		duration := float64(*candidate.DurationSeconds)
		if best == nil || duration > *best {
			records = append(records, newRecord(PRMaxDuration, duration, best))
		}
	}

	return records
}

// bestPrior finds the highest metric value in the history, skipping the
// candidate itself should it already be stored.
func bestPrior(
	history []training.ExerciseSet,
	candidateID string,
	metric func(training.ExerciseSet) (float64, bool),
) *float64 {
	var best *float64
	for _, s := range history {
		if candidateID != "" && s.ID == candidateID {
			continue
		}
		value, ok := metric(s)
		if !ok {
			continue
		}
		if best == nil || value > *best {
			v := value
			best = &v
		}
	}
	return best
}

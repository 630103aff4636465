package analytics_test

import (
	"testing"
	"time"

	"github.com/bstanar/gymtree/internal/analytics"
	"github.com/bstanar/gymtree/internal/training"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var benchPress = training.Exercise{
	ID:   "ex-bench",
	Name: "Bench Press",
	Type: training.ExerciseTypeStrength,
}

func strengthSet(id string, weight float64, reps int) training.ExerciseSet {
	return training.ExerciseSet{
		ID:         id,
		ExerciseID: benchPress.ID,
		WorkoutID:  "w1",
		Weight:     &weight,
		Reps:       &reps,
		CreatedAt:  time.Date(2024, time.May, 10, 18, 0, 0, 0, time.UTC),
	}
}

func recordOfType(t *testing.T, records []analytics.PersonalRecord, prType analytics.PRType) *analytics.PersonalRecord {
	t.Helper()
	for i := range records {
		if records[i].Type == prType {
			return &records[i]
		}
	}
	return nil
}

func TestDetectRecords_WeightPR(t *testing.T) {
	history := []training.ExerciseSet{
		strengthSet("old1", 90, 5),
		strengthSet("old2", 100, 3),
	}
	candidate := strengthSet("new", 105, 3)

	records := analytics.DetectRecords("user1", benchPress, candidate, history)

	weightPR := recordOfType(t, records, analytics.PRMaxWeight)
	require.NotNil(t, weightPR)
	assert.Equal(t, float64(105), weightPR.Value)
	require.NotNil(t, weightPR.PreviousValue)
	assert.Equal(t, float64(100), *weightPR.PreviousValue)
	assert.Equal(t, float64(5), weightPR.Improvement())
	assert.Equal(t, "+5", weightPR.ImprovementString())
	assert.Equal(t, "new", weightPR.SetID)
	assert.Equal(t, benchPress.Name, weightPR.ExerciseName)
}

func TestDetectRecords_EqualIsNotARecord(t *testing.T) {
	history := []training.ExerciseSet{strengthSet("old", 100, 5)}
	candidate := strengthSet("new", 100, 5)

	records := analytics.DetectRecords("user1", benchPress, candidate, history)
	assert.Nil(t, recordOfType(t, records, analytics.PRMaxWeight))
	assert.Nil(t, recordOfType(t, records, analytics.PRMaxVolume))
}

func TestDetectRecords_VolumePRWithLowerWeight(t *testing.T) {
	// prior best: 100kg x 5 = 500 volume, 100kg best weight
	history := []training.ExerciseSet{strengthSet("old", 100, 5)}
	// candidate: 80kg x 8 = 640 volume, weight went down
	candidate := strengthSet("new", 80, 8)

	records := analytics.DetectRecords("user1", benchPress, candidate, history)

	assert.Nil(t, recordOfType(t, records, analytics.PRMaxWeight))
	volumePR := recordOfType(t, records, analytics.PRMaxVolume)
	require.NotNil(t, volumePR)
	assert.Equal(t, float64(640), volumePR.Value)
	require.NotNil(t, volumePR.PreviousValue)
	assert.Equal(t, float64(500), *volumePR.PreviousValue)
	assert.Equal(t, "+140", volumePR.ImprovementString())
}

func TestDetectRecords_FirstEver(t *testing.T) {
	candidate := strengthSet("first", 60, 10)

	records := analytics.DetectRecords("user1", benchPress, candidate, nil)

	weightPR := recordOfType(t, records, analytics.PRMaxWeight)
	require.NotNil(t, weightPR)
	assert.Nil(t, weightPR.PreviousValue)
	// no previous value, the improvement is the full value
	assert.Equal(t, float64(60), weightPR.Improvement())
	assert.Equal(t, "+60", weightPR.ImprovementString())

	volumePR := recordOfType(t, records, analytics.PRMaxVolume)
	require.NotNil(t, volumePR)
	assert.Equal(t, float64(600), volumePR.Value)
}

func TestDetectRecords_DurationPR(t *testing.T) {
	plank := training.Exercise{ID: "ex-plank", Name: "Plank", Type: training.ExerciseTypeTimeBased}
	durationSet := func(id string, seconds int) training.ExerciseSet {
		return training.ExerciseSet{ID: id, ExerciseID: plank.ID, DurationSeconds: &seconds}
	}

	history := []training.ExerciseSet{durationSet("old", 90)}
	records := analytics.DetectRecords("user1", plank, durationSet("new", 120), history)

	durationPR := recordOfType(t, records, analytics.PRMaxDuration)
	require.NotNil(t, durationPR)
	assert.Equal(t, float64(120), durationPR.Value)
	assert.Equal(t, "+30", durationPR.ImprovementString())
	assert.Nil(t, recordOfType(t, records, analytics.PRMaxWeight))
	assert.Nil(t, recordOfType(t, records, analytics.PRMaxVolume))
}

func TestDetectRecords_DurationIgnoredForStrength(t *testing.T) {
	seconds := 120
	candidate := strengthSet("new", 105, 3)
	candidate.DurationSeconds = &seconds

	records := analytics.DetectRecords("user1", benchPress, candidate, nil)
	assert.Nil(t, recordOfType(t, records, analytics.PRMaxDuration))
}

func TestDetectRecords_CandidateAlreadyInHistory(t *testing.T) {
	candidate := strengthSet("new", 105, 3)
	history := []training.ExerciseSet{
		strengthSet("old", 100, 3),
		candidate, // already persisted before detection ran
	}

	records := analytics.DetectRecords("user1", benchPress, candidate, history)

	weightPR := recordOfType(t, records, analytics.PRMaxWeight)
	require.NotNil(t, weightPR)
	require.NotNil(t, weightPR.PreviousValue)
	assert.Equal(t, float64(100), *weightPR.PreviousValue)
}

func TestImprovementString_Negative(t *testing.T) {
	previous := float64(100)
	pr := analytics.PersonalRecord{Value: 95, PreviousValue: &previous}
	assert.Equal(t, "-5", pr.ImprovementString())
}

package store

import (
	"errors"
	"fmt"
	"time"
)

// MaxBatchOps is the number of delete operations committed per batch.
// The underlying store caps a single atomic write batch at 500 operations;
// staying below that leaves margin for bookkeeping writes in the same batch.
const MaxBatchOps = 450

var (
	ErrProgramNotFound  = errors.New("program not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrDuplicateID      = errors.New("document with that id already exists")
	ErrBatchTooLarge    = fmt.Errorf("delete batch exceeds %d operations", MaxBatchOps)
)

type EntityKind string

const (
	KindProgram  EntityKind = "program"
	KindWeek     EntityKind = "week"
	KindWorkout  EntityKind = "workout"
	KindExercise EntityKind = "exercise"
	KindSet      EntityKind = "set"
)

func (k EntityKind) table() (string, error) {
	switch k {
	case KindProgram:
		return "program", nil
	case KindWeek:
		return "week", nil
	case KindWorkout:
		return "workout", nil
	case KindExercise:
		return "exercise", nil
	case KindSet:
		return "exercise_set", nil
	}
	return "", fmt.Errorf("unknown entity kind: %s", k)
}

// DeleteOp is a single document removal within a batch.
type DeleteOp struct {
	Kind EntityKind
	ID   string
}

// ScopeParams narrows queries to a subtree of one user's hierarchy.
// Empty id fields are ignored; From/To bound created_at inclusively.
type ScopeParams struct {
	UserID     string
	ProgramID  string
	WeekID     string
	WorkoutID  string
	ExerciseID string

	From        *time.Time
	To          *time.Time
	OnlyChecked bool
}

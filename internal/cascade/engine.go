package cascade

import (
	"context"

	"github.com/bstanar/gymtree/internal/telemetry/tracing"
	"github.com/bstanar/gymtree/internal/training/store"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=engine_mocks_test.go -package=cascade_test

type countsStore interface {
	CountWorkouts(ctx context.Context, params store.ScopeParams) (int, error)
	CountExercises(ctx context.Context, params store.ScopeParams) (int, error)
	CountSets(ctx context.Context, params store.ScopeParams) (int, error)
}

// Target points at the node about to be deleted. WorkoutID and ExerciseID
// are optional; the deepest non-empty id wins.
type Target struct {
	UserID     string
	ProgramID  string
	WeekID     string
	WorkoutID  string
	ExerciseID string
}

// Engine computes how many descendants a delete would remove. Counting is
// done server-side, so the cost does not grow with subtree size. A target
// that does not exist simply counts to zero, that is not an error.
type Engine struct {
	store countsStore
}

func NewEngine(store countsStore) *Engine {
	return &Engine{
		store: store,
	}
}

func (e *Engine) Counts(ctx context.Context, target Target) (_ DeleteCounts, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cascade.counts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("week.id", target.WeekID),
		attribute.String("workout.id", target.WorkoutID),
		attribute.String("exercise.id", target.ExerciseID),
	)

	switch {
	case target.ExerciseID != "":
		// deleting an exercise removes only its sets
		sets, err := e.store.CountSets(ctx, store.ScopeParams{
			UserID:     target.UserID,
			ExerciseID: target.ExerciseID,
		})
		if err != nil {
			return DeleteCounts{}, err
		}
		return DeleteCounts{Sets: sets}, nil

	case target.WorkoutID != "":
		workoutScope := store.ScopeParams{
			UserID:    target.UserID,
			WorkoutID: target.WorkoutID,
		}
		exercises, err := e.store.CountExercises(ctx, workoutScope)
		if err != nil {
			return DeleteCounts{}, err
		}
		sets, err := e.store.CountSets(ctx, workoutScope)
		if err != nil {
			return DeleteCounts{}, err
		}
		return DeleteCounts{Exercises: exercises, Sets: sets}, nil

	default:
		weekScope := store.ScopeParams{
			UserID: target.UserID,
			WeekID: target.WeekID,
		}
		workouts, err := e.store.CountWorkouts(ctx, weekScope)
		if err != nil {
			return DeleteCounts{}, err
		}
		exercises, err := e.store.CountExercises(ctx, weekScope)
		if err != nil {
			return DeleteCounts{}, err
		}
		sets, err := e.store.CountSets(ctx, weekScope)
		if err != nil {
			return DeleteCounts{}, err
		}
		return DeleteCounts{Workouts: workouts, Exercises: exercises, Sets: sets}, nil
	}
}

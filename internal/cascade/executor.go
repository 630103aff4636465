package cascade

import (
	"context"
	"fmt"

	"github.com/bstanar/gymtree/internal/telemetry/metrics"
	"github.com/bstanar/gymtree/internal/telemetry/tracing"
	"github.com/bstanar/gymtree/internal/training/store"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=executor_mocks_test.go -package=cascade_test

type deleteStore interface {
	ListWorkoutIDs(ctx context.Context, params store.ScopeParams) ([]string, error)
	ListExerciseIDs(ctx context.Context, params store.ScopeParams) ([]string, error)
	ListSetIDs(ctx context.Context, params store.ScopeParams) ([]string, error)
	DeleteBatch(ctx context.Context, userID string, ops []store.DeleteOp) error
	ArchiveProgram(ctx context.Context, userID, programID string) error
}

// Executor removes a node and its whole subtree. Operations are collected
// deepest-first (sets, then exercises, then workouts, then the target) and
// committed in batches of at most store.MaxBatchOps. Each batch is atomic
// on its own; the cascade as a whole is NOT, a failed batch leaves the
// earlier ones committed. The error then names how many went through.
type Executor struct {
	store   deleteStore
	metrics *metrics.Manager
}

func NewExecutor(deleteStore deleteStore, metricsManager *metrics.Manager) *Executor {
	return &Executor{
		store:   deleteStore,
		metrics: metricsManager,
	}
}

func (x *Executor) DeleteWeek(ctx context.Context, target Target) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cascade.deleteWeek")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("week.id", target.WeekID))

	x.metrics.CounterCascadeDeletes.WithLabelValues("week").Inc()

	scope := store.ScopeParams{UserID: target.UserID, WeekID: target.WeekID}
	b := x.newBatcher(target.UserID)
	if err := x.enqueueSubtree(ctx, b, scope); err != nil {
		return err
	}

	workoutIDs, err := x.store.ListWorkoutIDs(ctx, scope)
	if err != nil {
		return fmt.Errorf("list workouts: %w", err)
	}
	for _, id := range workoutIDs {
		if err := b.add(ctx, store.DeleteOp{Kind: store.KindWorkout, ID: id}); err != nil {
			return err
		}
	}

	if err := b.add(ctx, store.DeleteOp{Kind: store.KindWeek, ID: target.WeekID}); err != nil {
		return err
	}
	return b.flush(ctx)
}

func (x *Executor) DeleteWorkout(ctx context.Context, target Target) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cascade.deleteWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", target.WorkoutID))

	x.metrics.CounterCascadeDeletes.WithLabelValues("workout").Inc()

	scope := store.ScopeParams{UserID: target.UserID, WorkoutID: target.WorkoutID}
	b := x.newBatcher(target.UserID)
	if err := x.enqueueSubtree(ctx, b, scope); err != nil {
		return err
	}

	if err := b.add(ctx, store.DeleteOp{Kind: store.KindWorkout, ID: target.WorkoutID}); err != nil {
		return err
	}
	return b.flush(ctx)
}

func (x *Executor) DeleteExercise(ctx context.Context, target Target) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cascade.deleteExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", target.ExerciseID))

	x.metrics.CounterCascadeDeletes.WithLabelValues("exercise").Inc()

	scope := store.ScopeParams{UserID: target.UserID, ExerciseID: target.ExerciseID}
	setIDs, err := x.store.ListSetIDs(ctx, scope)
	if err != nil {
		return fmt.Errorf("list sets: %w", err)
	}

	b := x.newBatcher(target.UserID)
	for _, id := range setIDs {
		if err := b.add(ctx, store.DeleteOp{Kind: store.KindSet, ID: id}); err != nil {
			return err
		}
	}
	if err := b.add(ctx, store.DeleteOp{Kind: store.KindExercise, ID: target.ExerciseID}); err != nil {
		return err
	}
	return b.flush(ctx)
}

// ArchiveProgram soft-deletes a program. No cascade, the subtree stays
// in place under the archived program.
func (x *Executor) ArchiveProgram(ctx context.Context, userID, programID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cascade.archiveProgram")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("program.id", programID))

	x.metrics.CounterCascadeDeletes.WithLabelValues("program").Inc()
	return x.store.ArchiveProgram(ctx, userID, programID)
}

// enqueueSubtree collects sets and exercises under the given scope,
// deepest level first.
func (x *Executor) enqueueSubtree(ctx context.Context, b *batcher, scope store.ScopeParams) error {
	setIDs, err := x.store.ListSetIDs(ctx, scope)
	if err != nil {
		return fmt.Errorf("list sets: %w", err)
	}
	for _, id := range setIDs {
		if err := b.add(ctx, store.DeleteOp{Kind: store.KindSet, ID: id}); err != nil {
			return err
		}
	}

	exerciseIDs, err := x.store.ListExerciseIDs(ctx, scope)
	if err != nil {
		return fmt.Errorf("list exercises: %w", err)
	}
	for _, id := range exerciseIDs {
		if err := b.add(ctx, store.DeleteOp{Kind: store.KindExercise, ID: id}); err != nil {
			return err
		}
	}
	return nil
}

func (x *Executor) newBatcher(userID string) *batcher {
	return &batcher{
		store:   x.store,
		metrics: x.metrics,
		userID:  userID,
	}
}

// batcher accumulates delete operations and flushes them once the batch
// ceiling is reached.
type batcher struct {
	store     deleteStore
	metrics   *metrics.Manager
	userID    string
	ops       []store.DeleteOp
	committed int
}

func (b *batcher) add(ctx context.Context, op store.DeleteOp) error {
	b.ops = append(b.ops, op)
	if len(b.ops) >= store.MaxBatchOps {
		return b.flush(ctx)
	}
	return nil
}

func (b *batcher) flush(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}

	batchSize := len(b.ops)
	if err := b.store.DeleteBatch(ctx, b.userID, b.ops); err != nil {
		return fmt.Errorf(
			"cascade delete incomplete, %d batches committed before failure: %w",
			b.committed, err,
		)
	}

	b.committed++
	b.ops = b.ops[:0]
	b.metrics.HistCascadeDeleteBatchSize.Observe(float64(batchSize))
	b.metrics.CounterDeletedDocuments.Add(float64(batchSize))
	return nil
}

package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bstanar/gymtree/internal/telemetry/metrics"
	"github.com/bstanar/gymtree/internal/telemetry/tracing"
	"github.com/bstanar/gymtree/internal/training"
	"github.com/bstanar/gymtree/internal/training/store"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=analytics_test

type trainingStore interface {
	GetExercise(ctx context.Context, userID, exerciseID string) (*training.Exercise, error)
	ListWorkouts(ctx context.Context, params store.ScopeParams) ([]training.Workout, error)
	ListExercises(ctx context.Context, params store.ScopeParams) ([]training.Exercise, error)
	ListSets(ctx context.Context, params store.ScopeParams) ([]training.ExerciseSet, error)
}

// Service ties the pure aggregation functions to the store and the cache.
// Every read consults the cache first; misses fetch, compute, cache, and
// may warm adjacent periods in the background.
type Service struct {
	store   trainingStore
	cache   *Cache
	metrics *metrics.Manager
	nowFn   func() time.Time

	prefetches sync.WaitGroup
}

type NewServiceParams struct {
	Store   trainingStore
	Cache   *Cache
	Metrics *metrics.Manager
	NowFn   func() time.Time
}

func NewService(params NewServiceParams) *Service {
	if params.NowFn == nil {
		params.NowFn = time.Now
	}
	return &Service{
		store:   params.Store,
		cache:   params.Cache,
		metrics: params.Metrics,
		nowFn:   params.NowFn,
	}
}

func (s *Service) WorkoutAnalytics(
	ctx context.Context,
	userID string,
	dateRange training.DateRange,
	programID string,
) (_ WorkoutAnalytics, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analytics.workoutAnalytics")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := CacheKey{
		UserID: userID,
		Scope: fmt.Sprintf(
			"%s..%s",
			dateRange.Start.Format(time.RFC3339), dateRange.End.Format(time.RFC3339),
		),
		ProgramID: programID,
	}
	var cached WorkoutAnalytics
	if s.cache.Get(key, &cached) {
		s.metrics.CounterAnalyticsCacheHits.Inc()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}
	s.metrics.CounterAnalyticsCacheMiss.Inc()

	scope := store.ScopeParams{UserID: userID, ProgramID: programID}
	workoutScope := scope
	workoutScope.From = &dateRange.Start
	workoutScope.To = &dateRange.End

	workouts, err := s.store.ListWorkouts(ctx, workoutScope)
	if err != nil {
		return WorkoutAnalytics{}, fmt.Errorf("list workouts: %w", err)
	}
	exercises, err := s.store.ListExercises(ctx, scope)
	if err != nil {
		return WorkoutAnalytics{}, fmt.Errorf("list exercises: %w", err)
	}
	sets, err := s.store.ListSets(ctx, scope)
	if err != nil {
		return WorkoutAnalytics{}, fmt.Errorf("list sets: %w", err)
	}

	analytics := ComputeWorkoutAnalytics(userID, dateRange, workouts, exercises, sets)
	s.cache.Set(key, s.nowFn(), analytics)
	return analytics, nil
}

// ExerciseRecords checks the most recent completed set of an exercise
// against the rest of its history and returns the records it broke.
func (s *Service) ExerciseRecords(ctx context.Context, userID, exerciseID string) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analytics.exerciseRecords")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	exercise, err := s.store.GetExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}

	sets, err := s.store.ListSets(ctx, store.ScopeParams{
		UserID:      userID,
		ExerciseID:  exerciseID,
		OnlyChecked: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	if len(sets) == 0 {
		return []PersonalRecord{}, nil
	}

	// sets arrive ordered by creation time, the newest is the candidate
	candidate := sets[len(sets)-1]
	return DetectRecords(userID, *exercise, candidate, sets[:len(sets)-1]), nil
}

// SetHeatmap builds a checked-set heatmap over an arbitrary range.
func (s *Service) SetHeatmap(
	ctx context.Context,
	userID string,
	dateRange training.DateRange,
	programID string,
	scope string,
) (_ ActivityHeatmapData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analytics.setHeatmap")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("scope", scope))

	key := CacheKey{UserID: userID, Scope: scope, ProgramID: programID}
	var cached ActivityHeatmapData
	if s.cache.Get(key, &cached) {
		s.metrics.CounterAnalyticsCacheHits.Inc()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}
	s.metrics.CounterAnalyticsCacheMiss.Inc()

	sets, err := s.store.ListSets(ctx, store.ScopeParams{
		UserID:      userID,
		ProgramID:   programID,
		From:        &dateRange.Start,
		To:          &dateRange.End,
		OnlyChecked: true,
	})
	if err != nil {
		return ActivityHeatmapData{}, fmt.Errorf("list sets: %w", err)
	}

	data := GenerateSetBasedHeatmapData(userID, dateRange, programID, sets, s.nowFn())
	s.cache.Set(key, data.FetchedAt, data)
	return data, nil
}

func (s *Service) MonthHeatmap(
	ctx context.Context,
	userID string,
	year int,
	month time.Month,
	programID string,
) (ActivityHeatmapData, error) {
	return s.SetHeatmap(ctx, userID, training.MonthRange(year, month), programID, MonthScope(year, month))
}

func (s *Service) YearHeatmap(
	ctx context.Context,
	userID string,
	year int,
	programID string,
) (ActivityHeatmapData, error) {
	return s.SetHeatmap(ctx, userID, training.YearRange(year), programID, YearScope(year))
}

// PrefetchAdjacentMonths warms the cache for the months either side of the
// one just viewed, in the background. Failures are only logged, the user
// already has the month they asked for.
func (s *Service) PrefetchAdjacentMonths(userID string, year int, month time.Month, programID string) {
	prevYear, prevMonth, nextYear, nextMonth := adjacentMonths(year, month)

	s.prefetches.Add(1)
	go func() {
		defer s.prefetches.Done()
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := s.MonthHeatmap(ctx, userID, prevYear, prevMonth, programID); err != nil {
			log.Errorf("prefetch heatmap %d-%d: %s", prevYear, prevMonth, err)
		}
		if _, err := s.MonthHeatmap(ctx, userID, nextYear, nextMonth, programID); err != nil {
			log.Errorf("prefetch heatmap %d-%d: %s", nextYear, nextMonth, err)
		}
	}()
}

// Wait blocks until outstanding prefetches finish. Used on shutdown.
func (s *Service) Wait() {
	s.prefetches.Wait()
}

func (s *Service) ClearCache() {
	s.cache.Clear()
}

// adjacentMonths handles the year rollover: December's neighbor is January
// of the next year, January's is December of the previous one.
func adjacentMonths(year int, month time.Month) (prevYear int, prevMonth time.Month, nextYear int, nextMonth time.Month) {
	prev := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	next := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return prev.Year(), prev.Month(), next.Year(), next.Month()
}

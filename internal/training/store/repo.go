package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/bstanar/gymtree/internal/telemetry/tracing"
	"github.com/bstanar/gymtree/internal/training"
	"github.com/bstanar/gymtree/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Repo is the gateway to the hierarchical training store. Every query is
// scoped by user_id; children carry all ancestor ids, so counting or listing
// a whole subtree is a single scoped query instead of a tree walk.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) CreateProgram(ctx context.Context, program *training.Program) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.createProgram")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if program.ID == "" {
		program.ID = uuid.NewString()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO program (id, user_id, name, description, archived, created_at, updated_at)
			VALUES ($1, $2, $3, $4, FALSE, NOW(), NOW())
			RETURNING created_at, updated_at;`,
		program.ID, program.UserID, program.Name, program.Description,
	).Scan(&program.CreatedAt, &program.UpdatedAt)
	if pkg.IsUniqueViolationError(err) {
		return ErrDuplicateID
	}
	return err
}

func (r *Repo) CreateWeek(ctx context.Context, week *training.Week) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.createWeek")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if week.ID == "" {
		week.ID = uuid.NewString()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO week (id, program_id, user_id, name, ord, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING created_at, updated_at;`,
		week.ID, week.ProgramID, week.UserID, week.Name, week.Order, week.Notes,
	).Scan(&week.CreatedAt, &week.UpdatedAt)
	if pkg.IsUniqueViolationError(err) {
		return ErrDuplicateID
	}
	return err
}

func (r *Repo) CreateWorkout(ctx context.Context, workout *training.Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.createWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if workout.ID == "" {
		workout.ID = uuid.NewString()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout (id, week_id, program_id, user_id, name, day_of_week, order_index, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			RETURNING created_at, updated_at;`,
		workout.ID, workout.WeekID, workout.ProgramID, workout.UserID,
		workout.Name, workout.DayOfWeek, workout.OrderIndex, workout.Notes,
	).Scan(&workout.CreatedAt, &workout.UpdatedAt)
	if pkg.IsUniqueViolationError(err) {
		return ErrDuplicateID
	}
	return err
}

func (r *Repo) CreateExercise(ctx context.Context, exercise *training.Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.createExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !exercise.Type.Valid() {
		return fmt.Errorf("invalid exercise type: %s", exercise.Type)
	}
	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise (id, workout_id, week_id, program_id, user_id, name, exercise_type, order_index, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			RETURNING created_at, updated_at;`,
		exercise.ID, exercise.WorkoutID, exercise.WeekID, exercise.ProgramID, exercise.UserID,
		exercise.Name, exercise.Type, exercise.OrderIndex, exercise.Notes,
	).Scan(&exercise.CreatedAt, &exercise.UpdatedAt)
	if pkg.IsUniqueViolationError(err) {
		return ErrDuplicateID
	}
	return err
}

func (r *Repo) CreateSet(ctx context.Context, set *training.ExerciseSet) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.createSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if set.ID == "" {
		set.ID = uuid.NewString()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise_set
				(id, exercise_id, workout_id, week_id, program_id, user_id,
				set_number, checked, reps, weight, duration_seconds, distance, rest_seconds,
				created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
			RETURNING created_at, updated_at;`,
		set.ID, set.ExerciseID, set.WorkoutID, set.WeekID, set.ProgramID, set.UserID,
		set.SetNumber, set.Checked, set.Reps, set.Weight, set.DurationSeconds, set.Distance, set.RestSeconds,
	).Scan(&set.CreatedAt, &set.UpdatedAt)
	if pkg.IsUniqueViolationError(err) {
		return ErrDuplicateID
	}
	return err
}

func (r *Repo) GetProgram(ctx context.Context, userID, programID string) (_ *training.Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.getProgram")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("program.id", programID))

	var p training.Program
	err = r.db.QueryRow(
		ctx,
		`SELECT id, user_id, name, description, archived, created_at, updated_at
			FROM program WHERE id = $1 AND user_id = $2;`,
		programID, userID,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Archived, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetExercise(ctx context.Context, userID, exerciseID string) (_ *training.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.getExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	var e training.Exercise
	err = r.db.QueryRow(
		ctx,
		`SELECT id, workout_id, week_id, program_id, user_id, name, exercise_type, order_index, notes, created_at, updated_at
			FROM exercise WHERE id = $1 AND user_id = $2;`,
		exerciseID, userID,
	).Scan(
		&e.ID, &e.WorkoutID, &e.WeekID, &e.ProgramID, &e.UserID,
		&e.Name, &e.Type, &e.OrderIndex, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListPrograms returns the user's programs; archived ones are excluded.
func (r *Repo) ListPrograms(ctx context.Context, userID string) (_ []training.Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listPrograms")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, name, description, archived, created_at, updated_at
			FROM program
			WHERE user_id = $1 AND archived = FALSE
			ORDER BY created_at ASC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	programs := make([]training.Program, 0)
	for rows.Next() {
		var p training.Program
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Archived, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

// ArchiveProgram soft-deletes a program. Its subtree stays in place.
func (r *Repo) ArchiveProgram(ctx context.Context, userID, programID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.archiveProgram")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("program.id", programID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE program SET archived = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2;`,
		programID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProgramNotFound
	}
	return nil
}

func (r *Repo) CountWorkouts(ctx context.Context, params ScopeParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.countWorkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("week.id", params.WeekID))

	var count int
	err = r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workout
			WHERE user_id = $1
			AND ($2::text = '' OR program_id = $2)
			AND ($3::text = '' OR week_id = $3);`,
		params.UserID, params.ProgramID, params.WeekID,
	).Scan(&count)
	if err != nil {
		return -1, err
	}
	return count, nil
}

func (r *Repo) CountExercises(ctx context.Context, params ScopeParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.countExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM exercise
			WHERE user_id = $1
			AND ($2::text = '' OR program_id = $2)
			AND ($3::text = '' OR week_id = $3)
			AND ($4::text = '' OR workout_id = $4);`,
		params.UserID, params.ProgramID, params.WeekID, params.WorkoutID,
	).Scan(&count)
	if err != nil {
		return -1, err
	}
	return count, nil
}

func (r *Repo) CountSets(ctx context.Context, params ScopeParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.countSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM exercise_set
			WHERE user_id = $1
			AND ($2::text = '' OR program_id = $2)
			AND ($3::text = '' OR week_id = $3)
			AND ($4::text = '' OR workout_id = $4)
			AND ($5::text = '' OR exercise_id = $5);`,
		params.UserID, params.ProgramID, params.WeekID, params.WorkoutID, params.ExerciseID,
	).Scan(&count)
	if err != nil {
		return -1, err
	}
	return count, nil
}

func (r *Repo) ListWorkouts(ctx context.Context, params ScopeParams) (_ []training.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listWorkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, week_id, program_id, user_id, name, day_of_week, order_index, notes, created_at, updated_at
			FROM workout
			WHERE user_id = $1
			AND ($2::text = '' OR program_id = $2)
			AND ($3::text = '' OR week_id = $3)
			AND ($4::timestamptz IS NULL OR created_at >= $4)
			AND ($5::timestamptz IS NULL OR created_at <= $5)
			ORDER BY created_at ASC;`,
		params.UserID, params.ProgramID, params.WeekID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2workouts(rows)
}

func (r *Repo) ListExercises(ctx context.Context, params ScopeParams) (_ []training.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, workout_id, week_id, program_id, user_id, name, exercise_type, order_index, notes, created_at, updated_at
			FROM exercise
			WHERE user_id = $1
			AND ($2::text = '' OR program_id = $2)
			AND ($3::text = '' OR week_id = $3)
			AND ($4::text = '' OR workout_id = $4)
			ORDER BY created_at ASC;`,
		params.UserID, params.ProgramID, params.WeekID, params.WorkoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2exercises(rows)
}

func (r *Repo) ListSets(ctx context.Context, params ScopeParams) (_ []training.ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("only-checked", params.OnlyChecked))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, exercise_id, workout_id, week_id, program_id, user_id,
				set_number, checked, reps, weight, duration_seconds, distance, rest_seconds,
				created_at, updated_at
			FROM exercise_set
			WHERE user_id = $1
			AND ($2::text = '' OR program_id = $2)
			AND ($3::text = '' OR week_id = $3)
			AND ($4::text = '' OR workout_id = $4)
			AND ($5::text = '' OR exercise_id = $5)
			AND ($6::timestamptz IS NULL OR created_at >= $6)
			AND ($7::timestamptz IS NULL OR created_at <= $7)
			AND ($8::boolean IS FALSE OR checked IS TRUE)
			ORDER BY created_at ASC;`,
		params.UserID, params.ProgramID, params.WeekID, params.WorkoutID, params.ExerciseID,
		params.From, params.To, params.OnlyChecked,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return rows2sets(rows)
}

func (r *Repo) ListWorkoutIDs(ctx context.Context, params ScopeParams) ([]string, error) {
	return r.listIDs(ctx, "workout", params)
}

func (r *Repo) ListExerciseIDs(ctx context.Context, params ScopeParams) ([]string, error) {
	return r.listIDs(ctx, "exercise", params)
}

func (r *Repo) ListSetIDs(ctx context.Context, params ScopeParams) ([]string, error) {
	return r.listIDs(ctx, "exercise_set", params)
}

func (r *Repo) listIDs(ctx context.Context, table string, params ScopeParams) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listIDs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("table", table))

	// workout has no workout_id/exercise_id columns, exercise no exercise_id
	whereParent := ""
	args := []any{params.UserID, params.ProgramID, params.WeekID}
	switch table {
	case "exercise":
		whereParent = `AND ($4::text = '' OR workout_id = $4)`
		args = append(args, params.WorkoutID)
	case "exercise_set":
		whereParent = `AND ($4::text = '' OR workout_id = $4) AND ($5::text = '' OR exercise_id = $5)`
		args = append(args, params.WorkoutID, params.ExerciseID)
	}

	//nolint:gosec // table comes from a fixed internal switch, never from input
	query := fmt.Sprintf(
		`SELECT id FROM %s
			WHERE user_id = $1
			AND ($2::text = '' OR program_id = $2)
			AND ($3::text = '' OR week_id = $3)
			%s;`,
		table, whereParent,
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteBatch commits up to MaxBatchOps delete operations as one atomic
// batch. Callers chunk larger cascades; atomicity holds per batch only.
func (r *Repo) DeleteBatch(ctx context.Context, userID string, ops []DeleteOp) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.deleteBatch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("ops", len(ops)))

	if len(ops) == 0 {
		return nil
	}
	if len(ops) > MaxBatchOps {
		return ErrBatchTooLarge
	}

	batch := &pgx.Batch{}
	for _, op := range ops {
		table, err := op.Kind.table()
		if err != nil {
			return err
		}
		//nolint:gosec // table name resolved from the closed EntityKind set
		batch.Queue(
			fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2;`, table),
			op.ID, userID,
		)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	results := tx.SendBatch(ctx, batch)
	for range ops {
		if _, err = results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	if err = results.Close(); err != nil {
		return fmt.Errorf("batch close: %w", err)
	}

	return tx.Commit(ctx)
}

func rows2workouts(rows pgx.Rows) ([]training.Workout, error) {
	workouts := make([]training.Workout, 0)
	for rows.Next() {
		var w training.Workout
		if err := rows.Scan(
			&w.ID, &w.WeekID, &w.ProgramID, &w.UserID, &w.Name,
			&w.DayOfWeek, &w.OrderIndex, &w.Notes, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func rows2exercises(rows pgx.Rows) ([]training.Exercise, error) {
	exercises := make([]training.Exercise, 0)
	for rows.Next() {
		var e training.Exercise
		if err := rows.Scan(
			&e.ID, &e.WorkoutID, &e.WeekID, &e.ProgramID, &e.UserID, &e.Name,
			&e.Type, &e.OrderIndex, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func rows2sets(rows pgx.Rows) ([]training.ExerciseSet, error) {
	sets := make([]training.ExerciseSet, 0)
	for rows.Next() {
		var s training.ExerciseSet
		if err := rows.Scan(
			&s.ID, &s.ExerciseID, &s.WorkoutID, &s.WeekID, &s.ProgramID, &s.UserID,
			&s.SetNumber, &s.Checked, &s.Reps, &s.Weight, &s.DurationSeconds, &s.Distance, &s.RestSeconds,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

package cascade

import (
	"encoding/json"
	"net/http"

	"github.com/bstanar/gymtree/internal/telemetry/tracing"
	"github.com/bstanar/gymtree/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// UserIDHeader carries the authenticated user id, set by the auth layer
// in front of this service.
const UserIDHeader = "X-GymTree-UserID"

type CountsResponse struct {
	Counts  DeleteCounts `json:"counts"`
	Summary string       `json:"summary"`
}

type DeleteResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	engine   *Engine
	executor *Executor
}

func NewHandler(engine *Engine, executor *Executor) *Handler {
	return &Handler{
		engine:   engine,
		executor: executor,
	}
}

func (handler *Handler) HandleGetCounts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cascade.counts")
	defer span.End()

	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	target := Target{
		UserID:     userID,
		ProgramID:  query.Get("program_id"),
		WeekID:     query.Get("week_id"),
		WorkoutID:  query.Get("workout_id"),
		ExerciseID: query.Get("exercise_id"),
	}
	if target.WeekID == "" && target.WorkoutID == "" && target.ExerciseID == "" {
		http.Error(w, "error, target id empty", http.StatusBadRequest)
		return
	}

	counts, err := handler.engine.Counts(ctx, target)
	if err != nil {
		log.Errorf("failed to get cascade delete counts %+v: %s", target, err)
		http.Error(w, "failed to get delete counts", http.StatusInternalServerError)
		return
	}

	countsJson, err := json.Marshal(CountsResponse{
		Counts:  counts,
		Summary: counts.GetSummary(),
	})
	if err != nil {
		log.Errorf("failed to marshal delete counts: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, countsJson, http.StatusOK)
}

func (handler *Handler) HandleDeleteWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cascade.deleteWeek")
	defer span.End()

	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusUnauthorized)
		return
	}

	weekID := mux.Vars(r)["id"]
	if weekID == "" {
		http.Error(w, "error, week id empty", http.StatusBadRequest)
		return
	}

	if err := handler.executor.DeleteWeek(ctx, Target{UserID: userID, WeekID: weekID}); err != nil {
		log.Errorf("failed to delete week %s: %s", weekID, err)
		http.Error(w, "week delete failed or incomplete", http.StatusInternalServerError)
		return
	}

	handler.writeDeleted(w, weekID)
}

func (handler *Handler) HandleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cascade.deleteWorkout")
	defer span.End()

	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusUnauthorized)
		return
	}

	workoutID := mux.Vars(r)["id"]
	if workoutID == "" {
		http.Error(w, "error, workout id empty", http.StatusBadRequest)
		return
	}

	if err := handler.executor.DeleteWorkout(ctx, Target{UserID: userID, WorkoutID: workoutID}); err != nil {
		log.Errorf("failed to delete workout %s: %s", workoutID, err)
		http.Error(w, "workout delete failed or incomplete", http.StatusInternalServerError)
		return
	}

	handler.writeDeleted(w, workoutID)
}

func (handler *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cascade.deleteExercise")
	defer span.End()

	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusUnauthorized)
		return
	}

	exerciseID := mux.Vars(r)["id"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	if err := handler.executor.DeleteExercise(ctx, Target{UserID: userID, ExerciseID: exerciseID}); err != nil {
		log.Errorf("failed to delete exercise %s: %s", exerciseID, err)
		http.Error(w, "exercise delete failed or incomplete", http.StatusInternalServerError)
		return
	}

	handler.writeDeleted(w, exerciseID)
}

func (handler *Handler) HandleArchiveProgram(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cascade.archiveProgram")
	defer span.End()

	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusUnauthorized)
		return
	}

	programID := mux.Vars(r)["id"]
	if programID == "" {
		http.Error(w, "error, program id empty", http.StatusBadRequest)
		return
	}

	if err := handler.executor.ArchiveProgram(ctx, userID, programID); err != nil {
		log.Errorf("failed to archive program %s: %s", programID, err)
		http.Error(w, "program archive failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("program %s archived", programID)
	pkg.WriteJSONResponseOK(w, `{"archived":true}`)
}

func (handler *Handler) writeDeleted(w http.ResponseWriter, id string) {
	deleteRespJson, err := json.Marshal(DeleteResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

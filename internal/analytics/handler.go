package analytics

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bstanar/gymtree/internal/telemetry/tracing"
	"github.com/bstanar/gymtree/internal/training"
	"github.com/bstanar/gymtree/internal/training/store"
	"github.com/bstanar/gymtree/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// UserIDHeader carries the authenticated user id, set by the auth layer
// in front of this service.
const UserIDHeader = "X-GymTree-UserID"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleGetAnalytics serves workout analytics for an explicit from/to range
// or, when both are absent, for the current week.
func (handler *Handler) HandleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.get")
	defer span.End()

	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	dateRange := training.ThisWeek(time.Now())
	fromStr, toStr := query.Get("from"), query.Get("to")
	if fromStr != "" || toStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			http.Error(w, "parse form error, parameter <from>", http.StatusBadRequest)
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			http.Error(w, "parse form error, parameter <to>", http.StatusBadRequest)
			return
		}
		if to.Before(from) {
			http.Error(w, "error, <to> before <from>", http.StatusBadRequest)
			return
		}
		dateRange = training.DateRange{Start: from, End: to}
	}

	analytics, err := handler.service.WorkoutAnalytics(ctx, userID, dateRange, query.Get("program_id"))
	if err != nil {
		log.Errorf("failed to compute workout analytics for %s: %s", userID, err)
		http.Error(w, "failed to compute workout analytics", http.StatusInternalServerError)
		return
	}

	analyticsJson, err := json.Marshal(analytics)
	if err != nil {
		log.Errorf("failed to marshal workout analytics: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, analyticsJson, http.StatusOK)
}

func (handler *Handler) HandleYearHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.yearHeatmap")
	defer span.End()

	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusUnauthorized)
		return
	}

	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		http.Error(w, "error, year NaN", http.StatusBadRequest)
		return
	}

	data, err := handler.service.YearHeatmap(ctx, userID, year, r.URL.Query().Get("program_id"))
	if err != nil {
		log.Errorf("failed to get year heatmap %d for %s: %s", year, userID, err)
		http.Error(w, "failed to get heatmap", http.StatusInternalServerError)
		return
	}

	handler.writeHeatmap(w, data)
}

func (handler *Handler) HandleMonthHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.monthHeatmap")
	defer span.End()

	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		http.Error(w, "error, year NaN", http.StatusBadRequest)
		return
	}
	monthNum, err := strconv.Atoi(vars["month"])
	if err != nil || monthNum < 1 || monthNum > 12 {
		http.Error(w, "error, invalid month", http.StatusBadRequest)
		return
	}
	month := time.Month(monthNum)
	programID := r.URL.Query().Get("program_id")

	data, err := handler.service.MonthHeatmap(ctx, userID, year, month, programID)
	if err != nil {
		log.Errorf("failed to get month heatmap %d-%d for %s: %s", year, month, userID, err)
		http.Error(w, "failed to get heatmap", http.StatusInternalServerError)
		return
	}

	// warm the months the user is likely to flip to next
	handler.service.PrefetchAdjacentMonths(userID, year, month, programID)

	handler.writeHeatmap(w, data)
}

// HandleExerciseRecords reports which personal records the latest completed
// set of an exercise broke, if any.
func (handler *Handler) HandleExerciseRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.exerciseRecords")
	defer span.End()

	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusUnauthorized)
		return
	}

	exerciseID := mux.Vars(r)["exerciseId"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	records, err := handler.service.ExerciseRecords(ctx, userID, exerciseID)
	if err != nil {
		if errors.Is(err, store.ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to detect records for exercise %s: %s", exerciseID, err)
		http.Error(w, "failed to detect records", http.StatusInternalServerError)
		return
	}

	recordsJson, err := json.Marshal(records)
	if err != nil {
		log.Errorf("failed to marshal personal records: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordsJson, http.StatusOK)
}

func (handler *Handler) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.clearCache")
	defer span.End()

	handler.service.ClearCache()
	log.Debugf("analytics cache cleared")
	pkg.WriteJSONResponseOK(w, `{"cleared":true}`)
}

func (handler *Handler) writeHeatmap(w http.ResponseWriter, data ActivityHeatmapData) {
	dataJson, err := json.Marshal(data)
	if err != nil {
		log.Errorf("failed to marshal heatmap data: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, dataJson, http.StatusOK)
}

package analytics_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bstanar/gymtree/internal/analytics"
	"github.com/bstanar/gymtree/internal/telemetry/metrics"
	"github.com/bstanar/gymtree/internal/training"
	"github.com/bstanar/gymtree/internal/training/store"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analyticsHandlerTestSetup struct {
	storeMock *MocktrainingStore
	service   *analytics.Service
	router    *mux.Router
}

func newAnalyticsHandlerTestSetup(t *testing.T) *analyticsHandlerTestSetup {
	t.Helper()
	ctrl := gomock.NewController(t)
	storeMock := NewMocktrainingStore(ctrl)

	service := analytics.NewService(analytics.NewServiceParams{
		Store:   storeMock,
		Cache:   analytics.NewCache(1024*1024, nil),
		Metrics: metrics.NewTestManager(),
	})

	handler := analytics.NewHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/analytics", handler.HandleGetAnalytics).Methods("GET")
	router.HandleFunc("/analytics/heatmap/{year}", handler.HandleYearHeatmap).Methods("GET")
	router.HandleFunc("/analytics/heatmap/{year}/{month}", handler.HandleMonthHeatmap).Methods("GET")
	router.HandleFunc("/analytics/records/{exerciseId}", handler.HandleExerciseRecords).Methods("GET")
	router.HandleFunc("/analytics/cache/clear", handler.HandleClearCache).Methods("POST")

	t.Cleanup(service.Wait)

	return &analyticsHandlerTestSetup{
		storeMock: storeMock,
		service:   service,
		router:    router,
	}
}

func TestHandler_GetAnalytics(t *testing.T) {
	setup := newAnalyticsHandlerTestSetup(t)

	workouts := []training.Workout{
		{ID: "w1", CreatedAt: time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)},
	}
	sets := []training.ExerciseSet{
		{ID: "s1", WorkoutID: "w1", Weight: floatPtr(60), Reps: intPtr(10)},
	}
	setup.storeMock.EXPECT().ListWorkouts(gomock.Any(), gomock.Any()).Return(workouts, nil)
	setup.storeMock.EXPECT().ListExercises(gomock.Any(), gomock.Any()).Return(nil, nil)
	setup.storeMock.EXPECT().ListSets(gomock.Any(), gomock.Any()).Return(sets, nil)

	req := httptest.NewRequest("GET", "/analytics?from=2024-05-01T00:00:00Z&to=2024-05-31T23:59:59Z", nil)
	req.Header.Set(analytics.UserIDHeader, "user1")
	rr := httptest.NewRecorder()
	setup.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp analytics.WorkoutAnalytics
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalWorkouts)
	assert.Equal(t, float64(600), resp.TotalVolume)
}

func TestHandler_GetAnalytics_BadRange(t *testing.T) {
	setup := newAnalyticsHandlerTestSetup(t)

	req := httptest.NewRequest("GET", "/analytics?from=not-a-date&to=2024-05-31T23:59:59Z", nil)
	req.Header.Set(analytics.UserIDHeader, "user1")
	rr := httptest.NewRecorder()
	setup.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest("GET", "/analytics?from=2024-05-31T00:00:00Z&to=2024-05-01T00:00:00Z", nil)
	req.Header.Set(analytics.UserIDHeader, "user1")
	rr = httptest.NewRecorder()
	setup.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_GetAnalytics_NoUser(t *testing.T) {
	setup := newAnalyticsHandlerTestSetup(t)

	req := httptest.NewRequest("GET", "/analytics", nil)
	rr := httptest.NewRecorder()
	setup.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandler_MonthHeatmap(t *testing.T) {
	setup := newAnalyticsHandlerTestSetup(t)

	// the viewed month plus the two prefetched neighbors
	setup.storeMock.EXPECT().ListSets(gomock.Any(), gomock.Any()).
		Return(checkedSets(time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC), 3), nil).
		Times(3)

	req := httptest.NewRequest("GET", "/analytics/heatmap/2024/5", nil)
	req.Header.Set(analytics.UserIDHeader, "user1")
	rr := httptest.NewRecorder()
	setup.router.ServeHTTP(rr, req)
	setup.service.Wait()

	require.Equal(t, http.StatusOK, rr.Code)
	var resp analytics.ActivityHeatmapData
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalSets)
	assert.Equal(t, time.May, resp.Month)
}

func TestHandler_MonthHeatmap_InvalidMonth(t *testing.T) {
	setup := newAnalyticsHandlerTestSetup(t)

	req := httptest.NewRequest("GET", "/analytics/heatmap/2024/13", nil)
	req.Header.Set(analytics.UserIDHeader, "user1")
	rr := httptest.NewRecorder()
	setup.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_ExerciseRecords(t *testing.T) {
	setup := newAnalyticsHandlerTestSetup(t)

	exercise := &training.Exercise{ID: "e1", Name: "Deadlift", Type: training.ExerciseTypeStrength}
	history := []training.ExerciseSet{
		{ID: "s1", ExerciseID: "e1", Checked: true, Weight: floatPtr(140), Reps: intPtr(3)},
		{ID: "s2", ExerciseID: "e1", Checked: true, Weight: floatPtr(150), Reps: intPtr(3)},
	}
	setup.storeMock.EXPECT().GetExercise(gomock.Any(), "user1", "e1").Return(exercise, nil)
	setup.storeMock.EXPECT().ListSets(gomock.Any(), gomock.Any()).Return(history, nil)

	req := httptest.NewRequest("GET", "/analytics/records/e1", nil)
	req.Header.Set(analytics.UserIDHeader, "user1")
	rr := httptest.NewRecorder()
	setup.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var records []analytics.PersonalRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.NotEmpty(t, records)
	assert.Equal(t, "Deadlift", records[0].ExerciseName)
	assert.Equal(t, "s2", records[0].SetID)
}

func TestHandler_ExerciseRecords_NotFound(t *testing.T) {
	setup := newAnalyticsHandlerTestSetup(t)

	setup.storeMock.EXPECT().GetExercise(gomock.Any(), "user1", "nope").
		Return(nil, store.ErrExerciseNotFound)

	req := httptest.NewRequest("GET", "/analytics/records/nope", nil)
	req.Header.Set(analytics.UserIDHeader, "user1")
	rr := httptest.NewRecorder()
	setup.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_ClearCache(t *testing.T) {
	setup := newAnalyticsHandlerTestSetup(t)

	// two reads of the same month around a cache clear hit the store twice
	setup.storeMock.EXPECT().ListSets(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	_, err := setup.service.MonthHeatmap(
		httptest.NewRequest("GET", "/", nil).Context(), "user1", 2024, time.May, "")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/analytics/cache/clear", nil)
	rr := httptest.NewRecorder()
	setup.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"cleared":true`)

	_, err = setup.service.MonthHeatmap(
		httptest.NewRequest("GET", "/", nil).Context(), "user1", 2024, time.May, "")
	require.NoError(t, err)
}

package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"career-sync/internal/delivery/http/middleware"
	"career-sync/internal/domain/career"
	"career-sync/internal/domain/model/forest"
	"career-sync/internal/domain/recommend"
	"career-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

func singleCareerStore(t *testing.T) *usecase.SnapshotStore {
	t.Helper()
	corpus := career.Corpus{
		Skills: []career.SkillSample{{Skills: "python sql"}, {Skills: "python excel"}},
		Careers: []career.CareerRecord{
			{Career: "Data Analyst", AverageSalary: 60000, RequiredSkills: "python,sql,excel", JobGrowth: 10, Industry: "Tech"},
			{Career: "Data Analyst", AverageSalary: 60000, RequiredSkills: "python,sql,excel", JobGrowth: 10, Industry: "Tech"},
		},
		Trends: []career.IndustryTrend{{Industry: "Tech", Attributes: map[string]any{"growth": "high"}}},
	}
	snap, err := recommend.Build(corpus, recommend.Options{
		Classifier: forest.Options{Trees: 10},
		Regressor:  forest.Options{Trees: 10},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	store := usecase.NewSnapshotStore()
	store.Swap(snap)
	return store
}

func newTestApp(register func(app *fiber.App)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(zerolog.Nop()).Middleware())
	register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, b
}

const validProfile = `{"skills":["Python"],"interests":["data"],"academic_performance":3.5}`

func TestProfileHandler_Compat(t *testing.T) {
	h := NewProfileHandler(usecase.NewRecommendationUsecase(singleCareerStore(t)), zerolog.Nop())
	app := newTestApp(func(app *fiber.App) { h.RegisterCompatRoutes(app) })

	status, body := doJSON(t, app, http.MethodPost, "/analyze_profile", validProfile)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d body=%s", status, body)
	}

	var rec career.Recommendation
	if err := json.Unmarshal(body, &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rec.RecommendedCareers) != 1 || rec.RecommendedCareers[0] != "Data Analyst" {
		t.Fatalf("recommended = %v", rec.RecommendedCareers)
	}
	if rec.PredictedSalary != 60000 {
		t.Fatalf("salary = %v", rec.PredictedSalary)
	}
	if strings.Join(rec.SkillGaps, ",") != "sql,excel" {
		t.Fatalf("gaps = %v", rec.SkillGaps)
	}
	if rec.IndustryTrend.Industry != "Tech" || rec.IndustryTrend.Attributes["growth"] != "high" {
		t.Fatalf("trend = %+v", rec.IndustryTrend)
	}
}

func TestProfileHandler_Envelope(t *testing.T) {
	h := NewProfileHandler(usecase.NewRecommendationUsecase(singleCareerStore(t)), zerolog.Nop())
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app.Group("/api/v1")) })

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/profile/analyze", validProfile)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d body=%s", status, body)
	}

	var env struct {
		Status  int                   `json:"status"`
		Message string                `json:"message"`
		Data    career.Recommendation `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Status != fiber.StatusOK || env.Message != "ok" || len(env.Data.RecommendedCareers) != 1 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestProfileHandler_ValidationErrors(t *testing.T) {
	h := NewProfileHandler(usecase.NewRecommendationUsecase(singleCareerStore(t)), zerolog.Nop())
	app := newTestApp(func(app *fiber.App) { h.RegisterCompatRoutes(app) })

	tests := []struct {
		name   string
		body   string
		fields int
	}{
		{name: "missing interests and performance", body: `{"skills":["python"]}`, fields: 2},
		{name: "empty object", body: `{}`, fields: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, http.MethodPost, "/analyze_profile", tt.body)
			if status != fiber.StatusUnprocessableEntity {
				t.Fatalf("status = %d body=%s", status, body)
			}
			var env struct {
				Data []map[string]string `json:"data"`
			}
			if err := json.Unmarshal(body, &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(env.Data) != tt.fields {
				t.Fatalf("field errors = %v", env.Data)
			}
		})
	}

	status, _ := doJSON(t, app, http.MethodPost, "/analyze_profile", `{"skills":`)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("malformed body status = %d", status)
	}
}

func TestProfileHandler_EmptySkillsIsValid(t *testing.T) {
	h := NewProfileHandler(usecase.NewRecommendationUsecase(singleCareerStore(t)), zerolog.Nop())
	app := newTestApp(func(app *fiber.App) { h.RegisterCompatRoutes(app) })

	status, body := doJSON(t, app, http.MethodPost, "/analyze_profile", `{"skills":[],"interests":[],"academic_performance":0}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d body=%s", status, body)
	}
}

func TestProfileHandler_ModelNotReady(t *testing.T) {
	h := NewProfileHandler(usecase.NewRecommendationUsecase(usecase.NewSnapshotStore()), zerolog.Nop())
	app := newTestApp(func(app *fiber.App) { h.RegisterCompatRoutes(app) })

	status, body := doJSON(t, app, http.MethodPost, "/analyze_profile", validProfile)
	if status != fiber.StatusServiceUnavailable {
		t.Fatalf("status = %d body=%s", status, body)
	}
}

type fakeModelUsecase struct {
	info   recommend.Info
	status usecase.ModelStatus
	err    error
}

func (f *fakeModelUsecase) Retrain(context.Context) (recommend.Info, error) {
	return f.info, f.err
}

func (f *fakeModelUsecase) Status(context.Context) (usecase.ModelStatus, error) {
	return f.status, nil
}

func TestModelHandler(t *testing.T) {
	info := recommend.Info{Samples: 8, Classes: []string{"Accountant", "Backend Engineer", "Data Analyst", "Data Scientist", "Nurse", "UX Designer"}}
	fake := &fakeModelUsecase{info: info, status: usecase.ModelStatus{Ready: true, Source: "csv:data", Snapshot: &info}}
	h := NewModelHandler(fake, zerolog.Nop())
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app) })

	status, body := doJSON(t, app, http.MethodGet, "/model", "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d body=%s", status, body)
	}
	var env struct {
		Data struct {
			Ready    bool           `json:"ready"`
			Source   string         `json:"source"`
			Snapshot recommend.Info `json:"snapshot"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Data.Ready || env.Data.Source != "csv:data" || len(env.Data.Snapshot.Classes) != 6 {
		t.Fatalf("unexpected status body: %s", body)
	}

	status, body = doJSON(t, app, http.MethodPost, "/model/retrain", "")
	if status != fiber.StatusOK {
		t.Fatalf("retrain status = %d body=%s", status, body)
	}

	fake.err = usecase.ErrRetrainInProgress
	if status, _ = doJSON(t, app, http.MethodPost, "/model/retrain", ""); status != fiber.StatusConflict {
		t.Fatalf("in-progress status = %d", status)
	}

	fake.err = usecase.ErrTrainingFailed
	if status, _ = doJSON(t, app, http.MethodPost, "/model/retrain", ""); status != fiber.StatusInternalServerError {
		t.Fatalf("failed retrain status = %d", status)
	}
}

func TestHealthHandler(t *testing.T) {
	store := usecase.NewSnapshotStore()
	h := NewHealthHandler(store)
	app := newTestApp(func(app *fiber.App) { h.RegisterRoutes(app) })

	if status, _ := doJSON(t, app, http.MethodGet, "/health", ""); status != fiber.StatusOK {
		t.Fatalf("live status = %d", status)
	}
	if status, _ := doJSON(t, app, http.MethodGet, "/health/ready", ""); status != fiber.StatusServiceUnavailable {
		t.Fatalf("ready before training = %d", status)
	}

	store.Swap(singleCareerStore(t).Load())
	if status, _ := doJSON(t, app, http.MethodGet, "/health/ready", ""); status != fiber.StatusOK {
		t.Fatalf("ready after training = %d", status)
	}
}

func TestMapUsecaseError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{usecase.ErrModelNotReady, fiber.StatusServiceUnavailable},
		{usecase.ErrRetrainInProgress, fiber.StatusConflict},
		{usecase.ErrCareerNotFound, fiber.StatusUnprocessableEntity},
		{usecase.ErrTrendNotFound, fiber.StatusUnprocessableEntity},
		{usecase.ErrInvalidInput, fiber.StatusBadRequest},
		{context.Canceled, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		appErr, ok := mapUsecaseError(tt.err).(*middleware.AppError)
		if !ok {
			t.Fatalf("%v: not an AppError", tt.err)
		}
		if appErr.StatusCode != tt.want {
			t.Fatalf("%v: status = %d, want %d", tt.err, appErr.StatusCode, tt.want)
		}
	}
}

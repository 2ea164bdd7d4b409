package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hjyoomkt/growth-dashboard-sub002/internal/api/handler/router"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/authenticating"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/jobrunning"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/triggering"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/apiErrors"
	"github.com/hjyoomkt/growth-dashboard-sub002/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrigger struct {
	platform       domain.Platform
	collectionType domain.CollectionType
	err            error
}

func (f *fakeTrigger) Trigger(_ context.Context, platform domain.Platform, collectionType domain.CollectionType) (*triggering.Summary, error) {
	f.platform, f.collectionType = platform, collectionType
	if f.err != nil {
		return nil, f.err
	}
	return &triggering.Summary{Platform: platform, CollectionType: collectionType, Date: "2026-01-20", Total: 2, Processed: 2}, nil
}

type fakeRunner struct {
	executed *domain.NewJobRequest
	filters  *domain.JobFilters
	job      *domain.CollectionJob
	summary  *jobrunning.RunSummary
	err      error
}

func (f *fakeRunner) ExecuteJob(_ context.Context, req domain.NewJobRequest) (*domain.CollectionJob, error) {
	f.executed = &req
	return f.job, f.err
}

func (f *fakeRunner) RunPending(context.Context) (*jobrunning.RunSummary, error) {
	return f.summary, f.err
}

func (f *fakeRunner) Retry(_ context.Context, jobID string) (*domain.CollectionJob, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.CollectionJob{ID: jobID + "-retry", Status: domain.JobStatusPending}, nil
}

func (f *fakeRunner) GetJob(_ context.Context, jobID string) (*domain.CollectionJob, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.CollectionJob{ID: jobID}, nil
}

func (f *fakeRunner) ListJobs(_ context.Context, filters domain.JobFilters) ([]*domain.CollectionJob, error) {
	f.filters = &filters
	return []*domain.CollectionJob{{ID: "job-1"}}, f.err
}

type fakeCron struct {
	busy      bool
	triggered int
}

func (f *fakeCron) TriggerManualSync() bool {
	if f.busy {
		return false
	}
	f.triggered++
	return true
}

func (f *fakeCron) GetStatus() map[string]any {
	return map[string]any{"running": f.busy}
}

type testServer struct {
	handler http.Handler
	token   string
	viewer  string
}

func newTestServer(t *testing.T, trigger triggering.Trigger, runner jobrunning.Runner, crons CronJobServices) *testServer {
	t.Helper()

	auth := authenticating.NewService(config.Auth{Secret: "handler-secret"})
	serviceToken, err := auth.IssueToken(domain.RoleAdmin, "ops", time.Hour)
	require.NoError(t, err)
	viewerToken, err := auth.IssueToken(domain.RoleViewer, "dashboard", time.Hour)
	require.NoError(t, err)

	rt := router.New(
		router.WithRoutes(Healthcheck(nil)...),
		router.WithRoutes(Collection(trigger, runner)...),
		router.WithRoutes(CronJobs(crons)...),
	)

	return &testServer{
		handler: middleware.AuthMiddleware(auth)(rt),
		token:   serviceToken,
		viewer:  viewerToken,
	}
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestTriggerCollection(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		trigger := &fakeTrigger{}
		srv := newTestServer(t, trigger, &fakeRunner{}, CronJobServices{})

		rec := srv.do(http.MethodPost, "/v1/collection/trigger", `{"platform":"meta","collection_type":"daily"}`, srv.token)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.PlatformMeta, trigger.platform)
		body := decode(t, rec)
		assert.Equal(t, "Meta", body["platform"])
		assert.Equal(t, "2026-01-20", body["date"])
		assert.EqualValues(t, 2, body["total"])
		assert.EqualValues(t, 2, body["processed"])
	})

	tests := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{name: "missing fields", body: `{}`, status: http.StatusBadRequest, code: apiErrors.ErrMissingRequiredData},
		{name: "unknown platform", body: `{"platform":"kakao","collection_type":"ads"}`, status: http.StatusBadRequest, code: apiErrors.ErrInvalidRequest},
		{name: "unknown type", body: `{"platform":"meta","collection_type":"hourly"}`, status: http.StatusBadRequest, code: apiErrors.ErrInvalidRequest},
		{name: "malformed json", body: `{"platform": 12}`, status: http.StatusBadRequest, code: apiErrors.ErrInvalidRequest},
		{
			name:   "unsupported pair",
			body:   `{"platform":"google","collection_type":"creatives"}`,
			err:    fmt.Errorf("%w: %w: Google não suporta creatives", domain.ErrValidation, domain.ErrUnsupportedCollection),
			status: http.StatusBadRequest,
			code:   apiErrors.ErrInvalidRequest,
		},
		{
			name:   "already running",
			body:   `{"platform":"naver","collection_type":"ads"}`,
			err:    triggering.ErrAlreadyRunning,
			status: http.StatusConflict,
			code:   apiErrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &fakeTrigger{err: tt.err}, &fakeRunner{}, CronJobServices{})

			rec := srv.do(http.MethodPost, "/v1/collection/trigger", tt.body, srv.token)

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.code, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRunPendingJobs(t *testing.T) {
	runner := &fakeRunner{summary: &jobrunning.RunSummary{Total: 3, Processed: 2}}
	srv := newTestServer(t, &fakeTrigger{}, runner, CronJobServices{})

	rec := srv.do(http.MethodPost, "/v1/collection/run", "", srv.token)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Jobs pendentes processados", body["message"])
	assert.EqualValues(t, 3, body["total"])
	assert.EqualValues(t, 2, body["processed"])
}

func TestExecuteJob(t *testing.T) {
	t.Run("failed job still answers 200", func(t *testing.T) {
		msg := "credential missing: integration int-1 (Meta) has no access_token"
		runner := &fakeRunner{job: &domain.CollectionJob{ID: "job-1", Status: domain.JobStatusFailed, ErrorMessage: &msg}}
		srv := newTestServer(t, &fakeTrigger{}, runner, CronJobServices{})

		rec := srv.do(http.MethodPost, "/v1/collection/jobs",
			`{"integration_id":"int-1","start_date":"2026-01-01","end_date":"2026-01-05","mode":"initial","collection_type":"ads"}`,
			srv.token)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, runner.executed)
		assert.Equal(t, "int-1", runner.executed.IntegrationID)
		assert.Equal(t, domain.CollectionTypeAds, runner.executed.CollectionType)
		assert.Equal(t, domain.JobModeInitial, runner.executed.Mode)
		assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), runner.executed.EndDate)

		body := decode(t, rec)
		assert.Equal(t, "failed", body["status"])
		assert.Equal(t, msg, body["error_message"])
	})

	t.Run("defaults mode and collection type", func(t *testing.T) {
		runner := &fakeRunner{job: &domain.CollectionJob{ID: "job-2", Status: domain.JobStatusCompleted}}
		srv := newTestServer(t, &fakeTrigger{}, runner, CronJobServices{})

		rec := srv.do(http.MethodPost, "/v1/collection/jobs",
			`{"integration_id":"int-1","start_date":"2026-01-01","end_date":"2026-01-01"}`, srv.token)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.CollectionTypeDaily, runner.executed.CollectionType)
		assert.Equal(t, domain.JobModeInitial, runner.executed.Mode)
	})

	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "start after end", body: `{"integration_id":"int-1","start_date":"2026-01-05","end_date":"2026-01-01"}`, status: http.StatusBadRequest},
		{name: "bad date", body: `{"integration_id":"int-1","start_date":"01/05/2026","end_date":"2026-01-01"}`, status: http.StatusBadRequest},
		{name: "bad mode", body: `{"integration_id":"int-1","start_date":"2026-01-01","end_date":"2026-01-01","mode":"weekly"}`, status: http.StatusBadRequest},
		{name: "missing integration", body: `{"start_date":"2026-01-01","end_date":"2026-01-01"}`, status: http.StatusBadRequest},
		{
			name:   "integration not found",
			body:   `{"integration_id":"int-x","start_date":"2026-01-01","end_date":"2026-01-01"}`,
			err:    fmt.Errorf("%w: int-x", domain.ErrIntegrationNotFound),
			status: http.StatusNotFound,
		},
		{
			name:   "storage failure",
			body:   `{"integration_id":"int-1","start_date":"2026-01-01","end_date":"2026-01-01"}`,
			err:    fmt.Errorf("%w: connection reset", domain.ErrStorageWrite),
			status: http.StatusInternalServerError,
		},
		{
			name:   "claim taken over by another runner",
			body:   `{"integration_id":"int-1","start_date":"2026-01-01","end_date":"2026-01-01"}`,
			err:    fmt.Errorf("erro ao finalizar job job-1: %w", domain.ErrJobClaimLost),
			status: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{err: tt.err}
			srv := newTestServer(t, &fakeTrigger{}, runner, CronJobServices{})

			rec := srv.do(http.MethodPost, "/v1/collection/jobs", tt.body, srv.token)

			assert.Equal(t, tt.status, rec.Code)
			if tt.err == nil {
				assert.Nil(t, runner.executed, "validation failures never reach the runner")
			}
		})
	}
}

func TestListAndGetJobs(t *testing.T) {
	runner := &fakeRunner{}
	srv := newTestServer(t, &fakeTrigger{}, runner, CronJobServices{})

	rec := srv.do(http.MethodGet, "/v1/collection/jobs?status=partial&integration_id=int-1&limit=1000", "", srv.viewer)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, runner.filters)
	assert.Equal(t, domain.JobStatusPartial, *runner.filters.Status)
	assert.Equal(t, "int-1", *runner.filters.IntegrationID)
	assert.Equal(t, maxJobListLimit, runner.filters.Limit)

	rec = srv.do(http.MethodGet, "/v1/collection/jobs?status=done", "", srv.viewer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodGet, "/v1/collection/jobs/job-9", "", srv.viewer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "job-9", decode(t, rec)["id"])

	// Visualizador não pode disparar coleta
	rec = srv.do(http.MethodPost, "/v1/collection/run", "", srv.viewer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetJob_NotFound(t *testing.T) {
	srv := newTestServer(t, &fakeTrigger{}, &fakeRunner{err: fmt.Errorf("%w: job-x", domain.ErrJobNotFound)}, CronJobServices{})

	rec := srv.do(http.MethodGet, "/v1/collection/jobs/job-x", "", srv.token)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrResourceNotFound, decode(t, rec)["code"])
}

func TestRetryJob(t *testing.T) {
	srv := newTestServer(t, &fakeTrigger{}, &fakeRunner{}, CronJobServices{})

	rec := srv.do(http.MethodPost, "/v1/collection/jobs/job-1/retry", "", srv.token)

	require.Equal(t, http.StatusAccepted, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "job-1-retry", body["id"])
	assert.Equal(t, "pending", body["status"])
}

func TestCronJobs(t *testing.T) {
	daily := &fakeCron{}
	runner := &fakeCron{busy: true}
	srv := newTestServer(t, &fakeTrigger{}, &fakeRunner{}, CronJobServices{DailyTrigger: daily, JobRunner: runner})

	rec := srv.do(http.MethodPost, "/v1/cron/run/daily-trigger", "", srv.token)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, daily.triggered)

	rec = srv.do(http.MethodPost, "/v1/cron/run/job-runner", "", srv.token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(http.MethodPost, "/v1/cron/run/monthly", "", srv.token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodGet, "/v1/cron/status", "", srv.viewer)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Contains(t, body, CronJobTypeDailyTrigger)
	assert.Contains(t, body, CronJobTypeJobRunner)
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthcheck(t *testing.T) {
	handler := HealthcheckHandler(map[string]Pinger{
		"postgres": fakePinger{},
		"redis":    fakePinger{err: fmt.Errorf("dial tcp: connection refused")},
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	checks := decode(t, rec)["checks"].(map[string]any)
	assert.Equal(t, "ok", checks["postgres"])
	assert.Contains(t, checks["redis"], "connection refused")
}

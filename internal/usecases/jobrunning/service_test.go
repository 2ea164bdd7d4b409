package jobrunning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/lock"
	repomocks "github.com/hjyoomkt/growth-dashboard-sub002/infrastructure/repository/mocks"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting"
	collectingmocks "github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting/mocks"
	credentialmocks "github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/credentialing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	service      *Service
	jobs         *repomocks.MockCollectionJobRepository
	integrations *repomocks.MockIntegrationRepository
	resolver     *credentialmocks.MockResolver
	collector    *collectingmocks.MockCollector
	locker       *lock.LocalLocker
}

func newFixture(t *testing.T, cfg config.JobRunner) *fixture {
	t.Helper()

	f := newFixtureWithoutProgress(t, cfg)
	f.jobs.EXPECT().UpdateProgress(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return f
}

func newFixtureWithoutProgress(t *testing.T, cfg config.JobRunner) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		jobs:         repomocks.NewMockCollectionJobRepository(ctrl),
		integrations: repomocks.NewMockIntegrationRepository(ctrl),
		resolver:     credentialmocks.NewMockResolver(ctrl),
		collector:    collectingmocks.NewMockCollector(ctrl),
		locker:       lock.NewLocalLocker(),
	}

	f.collector.EXPECT().Platform().Return(domain.PlatformMeta).AnyTimes()

	f.service = NewService(cfg, f.jobs, f.integrations, collecting.NewRegistry(f.collector), f.resolver, f.locker)
	return f
}

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

var integration = &domain.Integration{ID: "int-1", AdvertiserID: "adv-1", Platform: domain.PlatformMeta}

func newJobRequest() domain.NewJobRequest {
	return domain.NewJobRequest{
		IntegrationID:  "int-1",
		CollectionType: domain.CollectionTypeAds,
		Mode:           domain.JobModeInitial,
		StartDate:      day("2026-01-01"),
		EndDate:        day("2026-01-05"),
	}
}

func pendingJob(id string) *domain.CollectionJob {
	req := newJobRequest()
	return &domain.CollectionJob{
		ID:             id,
		IntegrationID:  req.IntegrationID,
		Platform:       domain.PlatformMeta,
		CollectionType: req.CollectionType,
		Mode:           req.Mode,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         domain.JobStatusPending,
	}
}

func withStatus(job *domain.CollectionJob, status domain.JobStatus) *domain.CollectionJob {
	copied := *job
	copied.Status = status
	return &copied
}

// claimed simula o retorno do Claim, com o token do executor
func claimed(job *domain.CollectionJob) *domain.CollectionJob {
	running := withStatus(job, domain.JobStatusRunning)
	token := "token-" + job.ID
	running.ClaimToken = &token
	return running
}

// collectChunks simula um coletor que reporta cada chunk pelo tracker
func collectChunks(outcomes []error, rowsPerChunk int) func(context.Context, collecting.Request) (*domain.CollectionResult, error) {
	return func(ctx context.Context, req collecting.Request) (*domain.CollectionResult, error) {
		result := &domain.CollectionResult{}
		result.Total = len(outcomes)
		req.Tracker.AddTotal(ctx, len(outcomes))

		for _, err := range outcomes {
			if err != nil {
				result.Failed++
				if result.FirstError == nil {
					result.FirstError = err
				}
				req.Tracker.ChunkFailed(ctx, err)
				continue
			}
			result.Completed++
			result.RowsWritten += rowsPerChunk
			req.Tracker.ChunkSucceeded(ctx, rowsPerChunk)
		}
		return result, nil
	}
}

func expectFreshJob(f *fixture, job *domain.CollectionJob) {
	req := newJobRequest()
	f.collector.EXPECT().Supports(domain.CollectionTypeAds).Return(true).AnyTimes()
	f.integrations.EXPECT().GetByID(gomock.Any(), "int-1").Return(integration, nil)
	f.jobs.EXPECT().FindPending(gomock.Any(), req.Key()).Return(nil, nil)
	f.jobs.EXPECT().Create(gomock.Any(), req, domain.PlatformMeta).Return(job, nil)
	f.jobs.EXPECT().Claim(gomock.Any(), job.ID).Return(claimed(job), nil)
}

func TestExecuteJob_CredentialMissing(t *testing.T) {
	f := newFixture(t, config.JobRunner{JobTimeout: time.Minute})
	job := pendingJob("job-1")
	expectFreshJob(f, job)

	f.resolver.EXPECT().Resolve(gomock.Any(), integration).
		Return(nil, domain.NewCredentialError(integration, "access_token", nil))

	var recorded string
	f.jobs.EXPECT().Finish(gomock.Any(), "job-1", "token-job-1", domain.JobStatusFailed, domain.ChunkProgress{}, 0, gomock.Not(gomock.Nil())).
		DoAndReturn(func(_ context.Context, _, _ string, _ domain.JobStatus, _ domain.ChunkProgress, _ int, msg *string) error {
			recorded = *msg
			return nil
		})

	failed := withStatus(job, domain.JobStatusFailed)
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").DoAndReturn(func(context.Context, string) (*domain.CollectionJob, error) {
		failed.ErrorMessage = &recorded
		return failed, nil
	})

	result, err := f.service.ExecuteJob(context.Background(), newJobRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, result.Status)
	assert.True(t, strings.HasPrefix(recorded, "credential missing"), recorded)
	assert.Zero(t, result.RowsWritten)
}

func TestExecuteJob_PartialThenRerunCompletes(t *testing.T) {
	boom := errors.New("meta /insights: status 500")

	t.Run("3 de 5 chunks falham", func(t *testing.T) {
		f := newFixture(t, config.JobRunner{JobTimeout: time.Minute})
		job := pendingJob("job-1")
		expectFreshJob(f, job)

		f.resolver.EXPECT().Resolve(gomock.Any(), integration).Return(&domain.Credential{Platform: domain.PlatformMeta}, nil)
		f.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).
			DoAndReturn(collectChunks([]error{nil, boom, boom, nil, boom}, 4))

		f.jobs.EXPECT().Finish(gomock.Any(), "job-1", "token-job-1", domain.JobStatusPartial,
			domain.ChunkProgress{Total: 5, Completed: 2, Failed: 3}, 8, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, _ domain.JobStatus, _ domain.ChunkProgress, _ int, msg *string) error {
				require.NotNil(t, msg)
				assert.Equal(t, "chunk partial failure: 3 of 5 chunks failed: meta /insights: status 500", *msg)
				return nil
			})
		f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(withStatus(job, domain.JobStatusPartial), nil)

		result, err := f.service.ExecuteJob(context.Background(), newJobRequest())

		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPartial, result.Status)
	})

	t.Run("nova execução completa", func(t *testing.T) {
		f := newFixture(t, config.JobRunner{JobTimeout: time.Minute})
		job := pendingJob("job-2")
		expectFreshJob(f, job)

		f.resolver.EXPECT().Resolve(gomock.Any(), integration).Return(&domain.Credential{Platform: domain.PlatformMeta}, nil)
		f.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).
			DoAndReturn(collectChunks([]error{nil, nil, nil, nil, nil}, 4))

		f.jobs.EXPECT().Finish(gomock.Any(), "job-2", "token-job-2", domain.JobStatusCompleted,
			domain.ChunkProgress{Total: 5, Completed: 5}, 20, gomock.Nil()).Return(nil)
		f.jobs.EXPECT().GetByID(gomock.Any(), "job-2").Return(withStatus(job, domain.JobStatusCompleted), nil)

		result, err := f.service.ExecuteJob(context.Background(), newJobRequest())

		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusCompleted, result.Status)
	})
}

func TestExecuteJob_ReusesPendingJob(t *testing.T) {
	f := newFixture(t, config.JobRunner{})
	job := pendingJob("job-1")
	req := newJobRequest()

	f.collector.EXPECT().Supports(domain.CollectionTypeAds).Return(true).AnyTimes()
	f.integrations.EXPECT().GetByID(gomock.Any(), "int-1").Return(integration, nil)
	f.jobs.EXPECT().FindPending(gomock.Any(), req.Key()).Return(job, nil)
	f.jobs.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.jobs.EXPECT().Claim(gomock.Any(), "job-1").Return(claimed(job), nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), integration).Return(&domain.Credential{}, nil)
	f.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).DoAndReturn(collectChunks([]error{nil}, 1))
	f.jobs.EXPECT().Finish(gomock.Any(), "job-1", "token-job-1", domain.JobStatusCompleted, gomock.Any(), 1, gomock.Nil()).Return(nil)
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(withStatus(job, domain.JobStatusCompleted), nil)

	result, err := f.service.ExecuteJob(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "job-1", result.ID)
}

func TestExecuteJob_Timeout(t *testing.T) {
	f := newFixture(t, config.JobRunner{JobTimeout: 20 * time.Millisecond})
	job := pendingJob("job-1")
	expectFreshJob(f, job)

	f.resolver.EXPECT().Resolve(gomock.Any(), integration).Return(&domain.Credential{}, nil)
	f.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req collecting.Request) (*domain.CollectionResult, error) {
			result := &domain.CollectionResult{}
			result.Total = 3
			result.Completed = 1
			<-ctx.Done()
			return result, ctx.Err()
		})

	f.jobs.EXPECT().Finish(gomock.Any(), "job-1", "token-job-1", domain.JobStatusFailed,
		domain.ChunkProgress{Total: 3, Completed: 1}, 0, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _ domain.JobStatus, _ domain.ChunkProgress, _ int, msg *string) error {
			require.NotNil(t, msg)
			assert.True(t, strings.HasPrefix(*msg, "job timeout"), *msg)
			return nil
		})
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(withStatus(job, domain.JobStatusFailed), nil)

	result, err := f.service.ExecuteJob(context.Background(), newJobRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, result.Status)
}

func TestExecuteJob_ClaimLostStopsCollection(t *testing.T) {
	f := newFixtureWithoutProgress(t, config.JobRunner{JobTimeout: time.Minute})
	job := pendingJob("job-1")
	expectFreshJob(f, job)
	lost := fmt.Errorf("%w: job-1", domain.ErrJobClaimLost)

	f.resolver.EXPECT().Resolve(gomock.Any(), integration).Return(&domain.Credential{}, nil)
	f.jobs.EXPECT().UpdateProgress(gomock.Any(), "job-1", "token-job-1", gomock.Any(), gomock.Any()).Return(lost).AnyTimes()

	var collectErr error
	f.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req collecting.Request) (*domain.CollectionResult, error) {
			req.Tracker.AddTotal(ctx, 3)
			select {
			case <-ctx.Done():
				collectErr = ctx.Err()
			case <-time.After(time.Second):
			}
			result := &domain.CollectionResult{}
			result.Total = 3
			return result, collectErr
		})

	// o Finish com o token antigo não encontra mais o job
	f.jobs.EXPECT().Finish(gomock.Any(), "job-1", "token-job-1", domain.JobStatusFailed,
		domain.ChunkProgress{Total: 3}, 0, gomock.Any()).Return(lost)
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Times(0)

	result, err := f.service.ExecuteJob(context.Background(), newJobRequest())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrJobClaimLost)
	assert.ErrorIs(t, collectErr, context.Canceled)
}

func TestExecuteJob_RejectsInvalidRequests(t *testing.T) {
	t.Run("intervalo invertido", func(t *testing.T) {
		f := newFixture(t, config.JobRunner{})
		req := newJobRequest()
		req.StartDate, req.EndDate = req.EndDate, req.StartDate

		_, err := f.service.ExecuteJob(context.Background(), req)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("tipo não suportado pela plataforma", func(t *testing.T) {
		f := newFixture(t, config.JobRunner{})
		f.integrations.EXPECT().GetByID(gomock.Any(), "int-1").Return(integration, nil)
		f.collector.EXPECT().Supports(domain.CollectionTypeAds).Return(false)

		_, err := f.service.ExecuteJob(context.Background(), newJobRequest())

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, err, domain.ErrUnsupportedCollection)
	})

	t.Run("integração inexistente", func(t *testing.T) {
		f := newFixture(t, config.JobRunner{})
		f.integrations.EXPECT().GetByID(gomock.Any(), "int-1").Return(nil, domain.ErrIntegrationNotFound)

		_, err := f.service.ExecuteJob(context.Background(), newJobRequest())

		assert.ErrorIs(t, err, domain.ErrIntegrationNotFound)
	})
}

func TestRunPending(t *testing.T) {
	now := time.Date(2026, 1, 21, 6, 0, 0, 0, time.UTC)
	f := newFixture(t, config.JobRunner{BatchSize: 10, StaleAfter: 45 * time.Minute})
	f.service.now = func() time.Time { return now }

	first, second := pendingJob("job-1"), pendingJob("job-2")

	gomock.InOrder(
		f.jobs.EXPECT().RequeueStale(gomock.Any(), now.Add(-45*time.Minute)).Return(1, nil),
		f.jobs.EXPECT().ListPending(gomock.Any(), 10).Return([]*domain.CollectionJob{first, second}, nil),
		f.jobs.EXPECT().Claim(gomock.Any(), "job-1").Return(nil, domain.ErrJobAlreadyClaimed),
		f.jobs.EXPECT().Claim(gomock.Any(), "job-2").Return(claimed(second), nil),
	)

	f.collector.EXPECT().Supports(domain.CollectionTypeAds).Return(true).AnyTimes()
	f.integrations.EXPECT().GetByID(gomock.Any(), "int-1").Return(integration, nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), integration).Return(&domain.Credential{}, nil)
	f.collector.EXPECT().Collect(gomock.Any(), gomock.Any()).DoAndReturn(collectChunks([]error{nil, nil}, 3))
	f.jobs.EXPECT().Finish(gomock.Any(), "job-2", "token-job-2", domain.JobStatusCompleted, domain.ChunkProgress{Total: 2, Completed: 2}, 6, gomock.Nil()).Return(nil)
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-2").Return(withStatus(second, domain.JobStatusCompleted), nil)

	summary, err := f.service.RunPending(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &RunSummary{Total: 2, Processed: 1}, summary)

	// o lock foi liberado ao final do ciclo
	_, err = f.locker.TryLock(context.Background(), runnerLockKey, time.Minute)
	assert.NoError(t, err)
}

func TestRunPending_FailsJobWithMissingIntegration(t *testing.T) {
	f := newFixture(t, config.JobRunner{BatchSize: 5})
	job := pendingJob("job-1")

	f.jobs.EXPECT().ListPending(gomock.Any(), 5).Return([]*domain.CollectionJob{job}, nil)
	f.jobs.EXPECT().Claim(gomock.Any(), "job-1").Return(claimed(job), nil)
	f.integrations.EXPECT().GetByID(gomock.Any(), "int-1").Return(nil, domain.ErrIntegrationNotFound)
	f.jobs.EXPECT().Finish(gomock.Any(), "job-1", "token-job-1", domain.JobStatusFailed, domain.ChunkProgress{}, 0, gomock.Not(gomock.Nil())).Return(nil)
	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(withStatus(job, domain.JobStatusFailed), nil)

	summary, err := f.service.RunPending(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
}

func TestRunPending_SkipsWhenLocked(t *testing.T) {
	f := newFixture(t, config.JobRunner{BatchSize: 10})

	_, err := f.locker.TryLock(context.Background(), runnerLockKey, time.Minute)
	require.NoError(t, err)

	summary, err := f.service.RunPending(context.Background())

	require.NoError(t, err)
	assert.True(t, summary.Skipped)
	assert.Zero(t, summary.Total)
}

func TestRetry(t *testing.T) {
	t.Run("job finalizado gera novo pendente", func(t *testing.T) {
		f := newFixture(t, config.JobRunner{})
		failed := withStatus(pendingJob("job-1"), domain.JobStatusFailed)
		req := newJobRequest()

		f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(failed, nil)
		f.jobs.EXPECT().FindPending(gomock.Any(), req.Key()).Return(nil, nil)
		f.jobs.EXPECT().Create(gomock.Any(), req, domain.PlatformMeta).Return(pendingJob("job-2"), nil)

		retried, err := f.service.Retry(context.Background(), "job-1")

		require.NoError(t, err)
		assert.Equal(t, "job-2", retried.ID)
		assert.Equal(t, domain.JobStatusPending, retried.Status)
	})

	t.Run("job em execução é rejeitado", func(t *testing.T) {
		f := newFixture(t, config.JobRunner{})
		f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(withStatus(pendingJob("job-1"), domain.JobStatusRunning), nil)

		_, err := f.service.Retry(context.Background(), "job-1")

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
